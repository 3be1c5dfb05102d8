package biz

import (
	"context"
	stderrors "errors"
	"strings"

	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/textutil"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/id"
)

// CreateConversationRequest 创建会话的参数。
type CreateConversationRequest struct {
	UserID       string
	Title        string
	Mode         model.ConversationMode
	DocumentIDs  []string
	FirstMessage string
}

// ConversationService handles conversation business logic.
type ConversationService struct {
	store     store.Factory
	generator *Generator
	turns     *TurnService
}

// NewConversationService creates a new ConversationService.
func NewConversationService(factory store.Factory, generator *Generator, turns *TurnService) *ConversationService {
	return &ConversationService{
		store:     factory,
		generator: generator,
		turns:     turns,
	}
}

// Create 创建会话。标题为空且带首条消息时由模型生成标题；带首条消息时
// 创建后立即执行第一轮对话。返回的 TurnResult 在无首条消息时为 nil。
func (s *ConversationService) Create(ctx context.Context, req *CreateConversationRequest) (*model.Conversation, *model.TurnResult, error) {
	if !req.Mode.Valid() {
		return nil, nil, errors.ErrInvalidMode
	}
	if _, err := s.store.Users().Get(ctx, req.UserID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.ErrUserNotFound
		}
		return nil, nil, errors.ErrDatabase.WithCause(err)
	}
	for _, docID := range req.DocumentIDs {
		if _, err := s.store.Documents().Get(ctx, docID); err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, errors.ErrDocumentNotFound
			}
			return nil, nil, errors.ErrDatabase.WithCause(err)
		}
	}

	title := strings.TrimSpace(req.Title)
	firstMessage := strings.TrimSpace(req.FirstMessage)
	if title == "" {
		if firstMessage != "" {
			title = s.generator.GenerateTitle(ctx, firstMessage)
		} else {
			title = "New conversation"
		}
	}
	title = textutil.CleanTitle(title, maxTitleLen)

	conv := &model.Conversation{
		ID:          id.NewUUID(),
		UserID:      req.UserID,
		Title:       title,
		Mode:        req.Mode,
		DocumentIDs: req.DocumentIDs,
	}
	if err := s.store.Conversations().Create(ctx, conv); err != nil {
		return nil, nil, errors.ErrDatabase.WithCause(err)
	}

	if firstMessage == "" {
		return conv, nil, nil
	}

	turn, err := s.turns.StartTurn(ctx, conv.ID, firstMessage)
	if err != nil {
		return nil, nil, err
	}
	return turn.Conversation, turn, nil
}

// Get retrieves a conversation by id.
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	conv, err := s.store.Conversations().Get(ctx, conversationID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrConversationNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return conv, nil
}

// Messages 返回会话的全部消息，按序号升序。
func (s *ConversationService) Messages(ctx context.Context, conversationID string) ([]*model.Message, error) {
	if _, err := s.Get(ctx, conversationID); err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages().ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return msgs, nil
}

// List lists conversations of a user ordered by recent activity.
func (s *ConversationService) List(ctx context.Context, userID string, mode model.ConversationMode, offset, limit int) (*model.ConversationList, error) {
	if mode != "" && !mode.Valid() {
		return nil, errors.ErrInvalidMode
	}
	count, convs, err := s.store.Conversations().List(ctx, userID, mode, offset, limit)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &model.ConversationList{TotalCount: count, Conversations: convs}, nil
}

// Delete 删除会话及其全部消息。
func (s *ConversationService) Delete(ctx context.Context, conversationID string) error {
	if _, err := s.Get(ctx, conversationID); err != nil {
		return err
	}
	return s.store.Tx(ctx, func(tx store.Factory) error {
		if err := tx.Messages().DeleteByConversation(ctx, conversationID); err != nil {
			return errors.ErrDatabase.WithCause(err)
		}
		if err := tx.Conversations().Delete(ctx, conversationID); err != nil {
			return errors.ErrDatabase.WithCause(err)
		}
		return nil
	})
}
