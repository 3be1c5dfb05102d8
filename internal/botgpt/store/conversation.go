package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
)

type conversations struct {
	db *gorm.DB
}

func newConversations(db *gorm.DB) *conversations {
	return &conversations{db}
}

// Create creates a new conversation.
func (c *conversations) Create(ctx context.Context, conv *model.Conversation) error {
	return c.db.WithContext(ctx).Create(conv).Error
}

// Get retrieves a conversation by id.
func (c *conversations) Get(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// Save persists all fields of an existing conversation.
func (c *conversations) Save(ctx context.Context, conv *model.Conversation) error {
	return c.db.WithContext(ctx).Save(conv).Error
}

// List returns conversations of a user ordered by updated_at desc.
func (c *conversations) List(ctx context.Context, userID string, mode model.ConversationMode, offset, limit int) (int64, []*model.Conversation, error) {
	query := c.db.WithContext(ctx).Model(&model.Conversation{}).Where("user_id = ?", userID)
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, nil, err
	}

	var convs []*model.Conversation
	if err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&convs).Error; err != nil {
		return 0, nil, err
	}

	return count, convs, nil
}

// Delete deletes a conversation. Messages are removed by the caller inside
// the same transaction.
func (c *conversations) Delete(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Conversation{}).Error
}
