package model

import (
	"time"
)

// DocumentStatus 文档索引状态。
type DocumentStatus string

const (
	// DocumentStatusPending 已上传，尚未完成索引。
	DocumentStatusPending DocumentStatus = "pending"
	// DocumentStatusIndexed 文本已切块并写入向量索引。
	DocumentStatusIndexed DocumentStatus = "indexed"
	// DocumentStatusFailed 索引失败。
	DocumentStatusFailed DocumentStatus = "failed"
)

// Document represents an uploaded file that can back grounded conversations.
type Document struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID     string         `json:"user_id" gorm:"type:varchar(64);index;not null"`
	Filename   string         `json:"filename" gorm:"size:255;not null"`
	FilePath   string         `json:"file_path" gorm:"size:512;not null"`
	FileSize   int64          `json:"file_size" gorm:"not null"`
	FileType   string         `json:"file_type" gorm:"size:50;not null"`
	ChunkCount int            `json:"chunk_count" gorm:"default:0"`
	Status     DocumentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM.
func (Document) TableName() string {
	return "documents"
}

// DocumentList contains a page of documents and the total count.
type DocumentList struct {
	TotalCount int64       `json:"total"`
	Documents  []*Document `json:"documents"`
}
