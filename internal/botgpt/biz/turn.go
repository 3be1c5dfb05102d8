package biz

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/kart-io/logger"
	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/textutil"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/id"
)

// TurnService 协调一轮完整的对话：持久化用户消息、检索、组装上下文、
// 生成回复、持久化助手消息并更新会话统计。
//
// 同一会话的多轮并发请求被串行化，保证序号连续且不重复；不同会话
// 之间互不阻塞。整轮在单个事务中执行，生成失败时回滚，用户消息不会
// 留下孤儿记录。
type TurnService struct {
	store     store.Factory
	composer  *Composer
	retriever *Retriever
	generator *Generator

	// locks 按会话 ID 维护互斥锁。
	locks sync.Map
}

// NewTurnService creates a new TurnService.
func NewTurnService(factory store.Factory, composer *Composer, retriever *Retriever, generator *Generator) *TurnService {
	return &TurnService{
		store:     factory,
		composer:  composer,
		retriever: retriever,
		generator: generator,
	}
}

// StartTurn 在指定会话中执行一轮对话并返回结果。
func (s *TurnService) StartTurn(ctx context.Context, conversationID, content string) (*model.TurnResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.ErrEmptyMessage
	}

	mu := s.lockFor(conversationID)
	mu.Lock()
	defer mu.Unlock()

	var result *model.TurnResult
	err := s.store.Tx(ctx, func(tx store.Factory) error {
		turn, err := s.runTurn(ctx, tx, conversationID, content)
		if err != nil {
			return err
		}
		result = turn
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// runTurn 执行一轮对话的全部步骤。必须在事务内调用。
func (s *TurnService) runTurn(ctx context.Context, tx store.Factory, conversationID, content string) (*model.TurnResult, error) {
	conv, err := tx.Conversations().Get(ctx, conversationID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrConversationNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}

	maxSeq, err := tx.Messages().MaxSequenceNumber(ctx, conversationID)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	userMsg := &model.Message{
		ID:             id.NewUUID(),
		ConversationID: conversationID,
		Role:           model.RoleUser,
		Content:        content,
		Tokens:         textutil.EstimateTokens(content),
		SequenceNumber: maxSeq + 1,
	}
	if err := tx.Messages().Create(ctx, userMsg); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	var chunks []*model.RetrievedChunk
	grounded := conv.Grounded()
	if grounded {
		chunks, err = s.retriever.Retrieve(ctx, content, conv.DocumentIDs)
		if err != nil {
			return nil, err
		}
	}

	history, err := tx.Messages().ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	window := s.composer.Window(history)

	reply, err := s.generator.GenerateReply(ctx, window, grounded, chunks)
	if err != nil {
		return nil, err
	}

	assistantMsg := &model.Message{
		ID:             id.NewUUID(),
		ConversationID: conversationID,
		Role:           model.RoleAssistant,
		Content:        reply.Content,
		Tokens:         reply.OutputTokens,
		SequenceNumber: userMsg.SequenceNumber + 1,
	}
	if len(chunks) > 0 {
		scores := make([]float64, len(chunks))
		for i, chunk := range chunks {
			scores[i] = chunk.Similarity
		}
		assistantMsg.Metadata = &model.MessageMetadata{
			ChunksUsed:       len(chunks),
			SimilarityScores: scores,
		}
	}
	if err := tx.Messages().Create(ctx, assistantMsg); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	conv.TotalTokens += userMsg.Tokens + reply.OutputTokens
	conv.UpdatedAt = userMsg.CreatedAt
	if err := tx.Conversations().Save(ctx, conv); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	logger.Infow("对话轮完成",
		"conversation_id", conversationID,
		"user_seq", userMsg.SequenceNumber,
		"grounded", grounded,
		"chunks_used", len(chunks),
		"total_tokens", conv.TotalTokens,
	)

	result := &model.TurnResult{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		Conversation:     conv,
	}
	if grounded {
		result.RetrievedContext = chunks
	}
	return result, nil
}

func (s *TurnService) lockFor(conversationID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
