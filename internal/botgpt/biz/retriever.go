package biz

import (
	"context"
	"sort"

	"github.com/kart-io/logger"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

// RetrieverConfig 检索器配置。
type RetrieverConfig struct {
	// TopK 相似度搜索返回的候选数量。
	TopK int
	// SimilarityThreshold 相似度阈值，低于该值的候选被丢弃。
	SimilarityThreshold float64
}

// Retriever 负责基于向量相似度的文档块检索。
type Retriever struct {
	store         vstore.VectorStore
	embedProvider llm.EmbeddingProvider
	config        *RetrieverConfig
}

// NewRetriever 创建检索器实例。
func NewRetriever(vectorStore vstore.VectorStore, embedProvider llm.EmbeddingProvider, config *RetrieverConfig) *Retriever {
	return &Retriever{
		store:         vectorStore,
		embedProvider: embedProvider,
		config:        config,
	}
}

// Retrieve 在指定文档范围内检索与查询最相似的文档块。
// 相似度 = 1 - 余弦距离；低于阈值的候选被丢弃，剩余结果按相似度
// 降序排列并从 1 开始编号。无命中时返回空切片而非错误。
func (r *Retriever) Retrieve(ctx context.Context, query string, documentIDs []string) ([]*model.RetrievedChunk, error) {
	embedding, err := r.embedProvider.EmbedSingle(ctx, query)
	if err != nil {
		return nil, errors.ErrEmbeddingFailed.WithCause(err)
	}

	hits, err := r.store.Search(ctx, embedding, r.config.TopK, documentIDs)
	if err != nil {
		return nil, errors.ErrVectorStore.WithCause(err)
	}

	chunks := make([]*model.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		similarity := 1 - hit.Distance
		if similarity < r.config.SimilarityThreshold {
			continue
		}
		chunks = append(chunks, &model.RetrievedChunk{
			Content:       hit.Content,
			DocumentID:    hit.DocumentID,
			DocumentTitle: hit.DocumentTitle,
			ChunkIndex:    hit.ChunkIndex,
			Similarity:    similarity,
		})
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Similarity > chunks[j].Similarity
	})
	for i, chunk := range chunks {
		chunk.Rank = i + 1
	}

	logger.Infow("检索完成", "candidates", len(hits), "kept", len(chunks))

	return chunks, nil
}
