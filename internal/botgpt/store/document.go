package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
)

type documents struct {
	db *gorm.DB
}

func newDocuments(db *gorm.DB) *documents {
	return &documents{db}
}

// Create creates a new document record.
func (d *documents) Create(ctx context.Context, doc *model.Document) error {
	return d.db.WithContext(ctx).Create(doc).Error
}

// Get retrieves a document by id.
func (d *documents) Get(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save persists all fields of an existing document.
func (d *documents) Save(ctx context.Context, doc *model.Document) error {
	return d.db.WithContext(ctx).Save(doc).Error
}

// List returns documents of a user ordered by created_at desc.
func (d *documents) List(ctx context.Context, userID string, offset, limit int) (int64, []*model.Document, error) {
	query := d.db.WithContext(ctx).Model(&model.Document{}).Where("user_id = ?", userID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, nil, err
	}

	var docs []*model.Document
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&docs).Error; err != nil {
		return 0, nil, err
	}

	return count, docs, nil
}

// Delete deletes a document record.
func (d *documents) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Document{}).Error
}
