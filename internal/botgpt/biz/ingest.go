package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/logger"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/extract"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/pool"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/textutil"
	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

// embedBatchSize 每次 Embed 调用携带的文本数量。
const embedBatchSize = 16

// IngestorConfig 文档索引配置。
type IngestorConfig struct {
	// ChunkSize 切块大小（Unicode 字符数）。
	ChunkSize int
	// ChunkOverlap 相邻块之间的重叠大小。
	ChunkOverlap int
}

// Ingestor 负责文档索引流水线：提取文本、切块、向量化、写入向量索引。
type Ingestor struct {
	store         vstore.VectorStore
	embedProvider llm.EmbeddingProvider
	workers       *pool.Pool
	config        *IngestorConfig
}

// NewIngestor 创建索引流水线实例。
func NewIngestor(vectorStore vstore.VectorStore, embedProvider llm.EmbeddingProvider, workers *pool.Pool, config *IngestorConfig) *Ingestor {
	return &Ingestor{
		store:         vectorStore,
		embedProvider: embedProvider,
		workers:       workers,
		config:        config,
	}
}

// IngestDocument 同步执行文档索引，返回写入的块数。
// 块 ID 为 {document_id}_chunk_{index}，重复索引同一文档会覆盖旧块。
func (ig *Ingestor) IngestDocument(ctx context.Context, doc *model.Document) (int, error) {
	text, err := extract.Text(doc.FilePath)
	if err != nil {
		return 0, errors.ErrExtractionFailed.WithCause(err)
	}

	chunks := textutil.SplitIntoChunks(text, ig.config.ChunkSize, ig.config.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, errors.ErrEmptyChunkSet
	}

	embeddings, err := ig.embedChunks(ctx, chunks)
	if err != nil {
		return 0, errors.ErrEmbeddingFailed.WithCause(err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	records := make([]*vstore.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &vstore.ChunkRecord{
			ID:            fmt.Sprintf("%s_chunk_%d", doc.ID, i),
			DocumentID:    doc.ID,
			DocumentTitle: doc.Filename,
			ChunkIndex:    i,
			Content:       chunk,
			Embedding:     embeddings[i],
			CreatedAt:     now,
		}
	}

	if err := ig.store.Upsert(ctx, records); err != nil {
		return 0, errors.ErrIngestionFailed.WithCause(err)
	}

	logger.Infow("文档索引完成", "document_id", doc.ID, "chunks", len(chunks))

	return len(chunks), nil
}

// DeleteDocumentChunks 删除某文档的全部块，返回删除的块数。
func (ig *Ingestor) DeleteDocumentChunks(ctx context.Context, documentID string) (int, error) {
	deleted, err := ig.store.DeleteByDocument(ctx, documentID)
	if err != nil {
		return 0, errors.ErrVectorStore.WithCause(err)
	}
	return deleted, nil
}

// embedChunks 并发地按批向量化文档块，保持与输入相同的顺序。
func (ig *Ingestor) embedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	batchCount := (len(chunks) + embedBatchSize - 1) / embedBatchSize
	results := make([][][]float32, batchCount)
	batchErrs := make([]error, batchCount)

	tasks := make([]func(), 0, batchCount)
	for b := 0; b < batchCount; b++ {
		b := b
		start := b * embedBatchSize
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		tasks = append(tasks, func() {
			vectors, err := ig.embedProvider.Embed(ctx, batch)
			if err != nil {
				batchErrs[b] = err
				return
			}
			if len(vectors) != len(batch) {
				batchErrs[b] = fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(batch))
				return
			}
			results[b] = vectors
		})
	}

	ig.workers.Run(tasks)

	embeddings := make([][]float32, 0, len(chunks))
	for b := 0; b < batchCount; b++ {
		if batchErrs[b] != nil {
			return nil, batchErrs[b]
		}
		embeddings = append(embeddings, results[b]...)
	}
	return embeddings, nil
}
