package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ConversationMode 对话模式。
type ConversationMode string

const (
	// ModeOpenChat 自由对话，不使用知识库。
	ModeOpenChat ConversationMode = "open_chat"
	// ModeGrounded 基于文档的问答，回答必须来自检索到的文档块。
	ModeGrounded ConversationMode = "grounded"
)

// Valid reports whether the mode is one of the closed set of modes.
func (m ConversationMode) Valid() bool {
	switch m {
	case ModeOpenChat, ModeGrounded:
		return true
	}
	return false
}

// StringList stores a []string as a JSON-encoded TEXT column.
// Encoding happens only at the persistence boundary; core logic always
// sees a plain slice.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

// Conversation represents a chat session owned by a user.
//
// DocumentIDs is only meaningful when Mode is grounded; grounded behavior
// activates only when Mode is grounded AND DocumentIDs is non-empty.
type Conversation struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID      string           `json:"user_id" gorm:"type:varchar(64);index;not null"`
	Title       string           `json:"title" gorm:"size:255;not null"`
	Mode        ConversationMode `json:"mode" gorm:"type:varchar(20);not null;default:'open_chat'"`
	DocumentIDs StringList       `json:"document_ids" gorm:"type:text"`
	TotalTokens int              `json:"total_tokens" gorm:"default:0"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Conversation) TableName() string {
	return "conversations"
}

// Grounded reports whether retrieval should run for this conversation.
func (c *Conversation) Grounded() bool {
	return c.Mode == ModeGrounded && len(c.DocumentIDs) > 0
}

// ConversationList contains a page of conversations and the total count.
type ConversationList struct {
	TotalCount    int64           `json:"total"`
	Conversations []*Conversation `json:"conversations"`
}
