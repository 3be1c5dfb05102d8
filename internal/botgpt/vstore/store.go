// Package vstore 提供文档块向量索引的存储抽象。
package vstore

import (
	"context"
)

// ChunkRecord 表示写入向量索引的一条文档块记录。
// ID 的格式为 {document_id}_chunk_{index}，重复写入同一 ID 会覆盖旧记录。
type ChunkRecord struct {
	// ID 文档块 ID。
	ID string
	// DocumentID 所属文档 ID。
	DocumentID string
	// DocumentTitle 文档标题（原始文件名）。
	DocumentTitle string
	// ChunkIndex 块在文档中的序号，从 0 开始。
	ChunkIndex int
	// Content 块文本内容。
	Content string
	// Embedding 嵌入向量。
	Embedding []float32
	// CreatedAt 入库时间（RFC 3339）。
	CreatedAt string
}

// Hit 表示一次相似度搜索的命中结果。
// Distance 是余弦距离（1 - 余弦相似度），越小越相似。
type Hit struct {
	// ID 文档块 ID。
	ID string
	// DocumentID 所属文档 ID。
	DocumentID string
	// DocumentTitle 文档标题。
	DocumentTitle string
	// ChunkIndex 块序号。
	ChunkIndex int
	// Content 块文本内容。
	Content string
	// Distance 余弦距离。
	Distance float64
}

// VectorStore 定义向量索引接口。
type VectorStore interface {
	// EnsureCollection 确保集合存在并已加载。dim 为向量维度。
	EnsureCollection(ctx context.Context, dim int) error

	// Upsert 批量写入文档块，按 ID 覆盖。
	Upsert(ctx context.Context, chunks []*ChunkRecord) error

	// Search 在指定文档范围内执行相似度搜索。
	// documentIDs 为空时不加过滤；返回最多 topK 条命中。
	Search(ctx context.Context, embedding []float32, topK int, documentIDs []string) ([]*Hit, error)

	// DeleteByDocument 删除某文档的全部块：先扫描块 ID，再批量删除。
	// 返回删除的块数。
	DeleteByDocument(ctx context.Context, documentID string) (int, error)

	// Stats 返回集合中的记录总数。
	Stats(ctx context.Context) (int64, error)

	// Close 关闭连接。
	Close(ctx context.Context) error
}
