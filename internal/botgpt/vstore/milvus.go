package vstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/NikhilAnand12/BOT-GPT/pkg/component/milvus"
)

const (
	pkField = "chunk_id"

	fieldDocumentID    = "document_id"
	fieldDocumentTitle = "document_title"
	fieldChunkIndex    = "chunk_index"
	fieldContent       = "content"
	fieldCreatedAt     = "created_at"
)

var outputFields = []string{fieldDocumentID, fieldDocumentTitle, fieldChunkIndex, fieldContent}

// MilvusStore 实现基于 Milvus 的向量索引。
// Milvus 集合使用余弦度量，score 即余弦相似度；对外统一转换为余弦距离。
type MilvusStore struct {
	client     *milvus.Client
	collection string
}

// NewMilvusStore 创建 Milvus 向量索引实例。
func NewMilvusStore(client *milvus.Client, collection string) *MilvusStore {
	return &MilvusStore{
		client:     client,
		collection: collection,
	}
}

// EnsureCollection 确保集合存在并已加载。
func (s *MilvusStore) EnsureCollection(ctx context.Context, dim int) error {
	schema := &milvus.CollectionSchema{
		Name:        s.collection,
		Description: "Document chunks for grounded conversations",
		Dimension:   dim,
		PKField:     pkField,
		PKMaxLen:    128,
		MetaFields: []milvus.MetaField{
			{Name: fieldDocumentID, DataType: entity.FieldTypeVarChar, MaxLen: 64},
			{Name: fieldDocumentTitle, DataType: entity.FieldTypeVarChar, MaxLen: 255},
			{Name: fieldChunkIndex, DataType: entity.FieldTypeInt64},
			{Name: fieldContent, DataType: entity.FieldTypeVarChar, MaxLen: 65535},
			{Name: fieldCreatedAt, DataType: entity.FieldTypeVarChar, MaxLen: 64},
		},
	}
	return s.client.EnsureCollection(ctx, schema)
}

// Upsert 批量写入文档块。
func (s *MilvusStore) Upsert(ctx context.Context, chunks []*ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	embeddings := make([][]float32, len(chunks))
	metadata := map[string][]any{
		fieldDocumentID:    make([]any, len(chunks)),
		fieldDocumentTitle: make([]any, len(chunks)),
		fieldChunkIndex:    make([]any, len(chunks)),
		fieldContent:       make([]any, len(chunks)),
		fieldCreatedAt:     make([]any, len(chunks)),
	}

	for i, chunk := range chunks {
		ids[i] = chunk.ID
		embeddings[i] = chunk.Embedding
		metadata[fieldDocumentID][i] = chunk.DocumentID
		metadata[fieldDocumentTitle][i] = chunk.DocumentTitle
		metadata[fieldChunkIndex][i] = int64(chunk.ChunkIndex)
		metadata[fieldContent][i] = chunk.Content
		metadata[fieldCreatedAt][i] = chunk.CreatedAt
	}

	data := &milvus.UpsertData{
		PKField:    pkField,
		IDs:        ids,
		Embeddings: embeddings,
		Metadata:   metadata,
	}

	if err := s.client.Upsert(ctx, s.collection, data); err != nil {
		return fmt.Errorf("failed to upsert into milvus: %w", err)
	}
	return nil
}

// Search 在指定文档范围内执行相似度搜索。
func (s *MilvusStore) Search(ctx context.Context, embedding []float32, topK int, documentIDs []string) ([]*Hit, error) {
	expr := documentFilterExpr(documentIDs)

	results, err := s.client.Search(ctx, s.collection, embedding, topK, expr, outputFields)
	if err != nil {
		return nil, fmt.Errorf("failed to search milvus: %w", err)
	}

	hits := make([]*Hit, 0, len(results))
	for _, r := range results {
		hit := &Hit{
			ID: r.ID,
			// 余弦相似度转余弦距离
			Distance: 1 - float64(r.Score),
		}
		if v, ok := r.Metadata[fieldDocumentID].(string); ok {
			hit.DocumentID = v
		}
		if v, ok := r.Metadata[fieldDocumentTitle].(string); ok {
			hit.DocumentTitle = v
		}
		if v, ok := r.Metadata[fieldChunkIndex].(int64); ok {
			hit.ChunkIndex = int(v)
		}
		if v, ok := r.Metadata[fieldContent].(string); ok {
			hit.Content = v
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// DeleteByDocument 先按 document_id 扫描块 ID，再批量删除。
func (s *MilvusStore) DeleteByDocument(ctx context.Context, documentID string) (int, error) {
	expr := documentFilterExpr([]string{documentID})

	ids, err := s.client.QueryStringField(ctx, s.collection, expr, pkField)
	if err != nil {
		return 0, fmt.Errorf("failed to scan chunk ids: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := s.client.DeleteByIDs(ctx, s.collection, pkField, ids); err != nil {
		return 0, fmt.Errorf("failed to delete chunks: %w", err)
	}
	return len(ids), nil
}

// Stats 返回集合中的记录总数。
func (s *MilvusStore) Stats(ctx context.Context) (int64, error) {
	return s.client.GetCollectionStats(ctx, s.collection)
}

// Close 关闭 Milvus 连接。
func (s *MilvusStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// documentFilterExpr 构造 document_id 过滤表达式。空列表返回空串（不过滤）。
func documentFilterExpr(documentIDs []string) string {
	if len(documentIDs) == 0 {
		return ""
	}
	quoted := make([]string, len(documentIDs))
	for i, id := range documentIDs {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("%s in [%s]", fieldDocumentID, strings.Join(quoted, ", "))
}

// 确保 MilvusStore 实现了 VectorStore 接口。
var _ VectorStore = (*MilvusStore)(nil)
