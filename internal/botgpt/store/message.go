package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
)

type messages struct {
	db *gorm.DB
}

func newMessages(db *gorm.DB) *messages {
	return &messages{db}
}

// Create creates a new message.
func (m *messages) Create(ctx context.Context, msg *model.Message) error {
	return m.db.WithContext(ctx).Create(msg).Error
}

// ListByConversation returns all messages ordered by sequence_number asc.
func (m *messages) ListByConversation(ctx context.Context, conversationID string) ([]*model.Message, error) {
	var msgs []*model.Message
	err := m.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sequence_number ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MaxSequenceNumber returns the highest sequence number in the conversation,
// or -1 when the conversation has no messages.
func (m *messages) MaxSequenceNumber(ctx context.Context, conversationID string) (int, error) {
	var max int
	err := m.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ?", conversationID).
		Select("COALESCE(MAX(sequence_number), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// DeleteByConversation deletes all messages of a conversation.
func (m *messages) DeleteByConversation(ctx context.Context, conversationID string) error {
	return m.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&model.Message{}).Error
}
