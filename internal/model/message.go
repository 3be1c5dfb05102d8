package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MessageRole 消息角色。
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Valid reports whether the role is one of the closed set of roles.
func (r MessageRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// MessageMetadata records how an assistant message was produced when
// retrieval was involved. Stored as a JSON-encoded TEXT column; nil for
// messages produced without retrieval.
type MessageMetadata struct {
	ChunksUsed       int       `json:"rag_chunks_used"`
	SimilarityScores []float64 `json:"rag_similarity_scores"`
}

// Value implements driver.Valuer.
func (m *MessageMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (m *MessageMetadata) Scan(src any) error {
	if src == nil {
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into MessageMetadata", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, m)
}

// Message represents a single message within a conversation.
//
// SequenceNumber is scoped per conversation, starts at 0 and is strictly
// increasing. Messages are immutable once created; Metadata is attached at
// creation time only.
type Message struct {
	ID             string           `json:"id" gorm:"primaryKey;type:varchar(64)"`
	ConversationID string           `json:"conversation_id" gorm:"type:varchar(64);index:idx_conv_seq;not null"`
	Role           MessageRole      `json:"role" gorm:"type:varchar(20);not null"`
	Content        string           `json:"content" gorm:"type:text;not null"`
	Tokens         int              `json:"tokens" gorm:"default:0"`
	SequenceNumber int              `json:"sequence_number" gorm:"index:idx_conv_seq;not null"`
	Metadata       *MessageMetadata `json:"metadata,omitempty" gorm:"type:text"`
	CreatedAt      time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM.
func (Message) TableName() string {
	return "messages"
}
