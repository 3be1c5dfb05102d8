// Package store 提供会话、消息、用户与文档的关系型存储。
package store

import (
	"context"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
)

// Factory defines the factory interface for creating stores.
type Factory interface {
	Users() UserStore
	Conversations() ConversationStore
	Messages() MessageStore
	Documents() DocumentStore

	// Tx runs fn inside a database transaction. The Factory passed to fn
	// operates on the transaction; returning an error rolls everything back.
	Tx(ctx context.Context, fn func(Factory) error) error

	Close() error
}

// UserStore defines the user storage interface.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用。
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// ConversationStore defines the conversation storage interface.
type ConversationStore interface {
	Create(ctx context.Context, conv *model.Conversation) error
	Get(ctx context.Context, id string) (*model.Conversation, error)
	// Save persists all fields of an existing conversation.
	Save(ctx context.Context, conv *model.Conversation) error
	// List returns conversations of a user ordered by updated_at desc.
	// mode is an optional filter; empty means all modes.
	List(ctx context.Context, userID string, mode model.ConversationMode, offset, limit int) (int64, []*model.Conversation, error)
	Delete(ctx context.Context, id string) error
}

// MessageStore defines the message storage interface.
type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	// ListByConversation returns all messages ordered by sequence_number asc.
	ListByConversation(ctx context.Context, conversationID string) ([]*model.Message, error)
	// MaxSequenceNumber returns the highest sequence number in the
	// conversation, or -1 when the conversation has no messages.
	MaxSequenceNumber(ctx context.Context, conversationID string) (int, error)
	DeleteByConversation(ctx context.Context, conversationID string) error
}

// DocumentStore defines the document storage interface.
type DocumentStore interface {
	Create(ctx context.Context, doc *model.Document) error
	Get(ctx context.Context, id string) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	// List returns documents of a user ordered by created_at desc.
	List(ctx context.Context, userID string, offset, limit int) (int64, []*model.Document, error)
	Delete(ctx context.Context, id string) error
}
