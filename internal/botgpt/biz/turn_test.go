package biz

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

func newTurnService(t *testing.T, factory store.Factory, vs *fakeVectorStore, chat *fakeChat) *TurnService {
	t.Helper()
	retriever := NewRetriever(vs, &fakeEmbedder{}, &RetrieverConfig{
		TopK:                5,
		SimilarityThreshold: 0.7,
	})
	return NewTurnService(factory, NewComposer(8000), retriever, NewGenerator(chat))
}

func createConversation(t *testing.T, factory store.Factory, conv *model.Conversation) {
	t.Helper()
	require.NoError(t, factory.Conversations().Create(context.Background(), conv))
}

func TestStartTurnFirstTurnSequence(t *testing.T) {
	factory := newTestFactory(t)
	createConversation(t, factory, &model.Conversation{
		ID: "c-1", UserID: "u-1", Title: "t", Mode: model.ModeOpenChat,
	})
	svc := newTurnService(t, factory, &fakeVectorStore{}, &fakeChat{reply: "hello back"})

	result, err := svc.StartTurn(context.Background(), "c-1", "hello bot")
	require.NoError(t, err)

	assert.Equal(t, 0, result.UserMessage.SequenceNumber)
	assert.Equal(t, 1, result.AssistantMessage.SequenceNumber)
	assert.Equal(t, model.RoleUser, result.UserMessage.Role)
	assert.Equal(t, model.RoleAssistant, result.AssistantMessage.Role)
	assert.Nil(t, result.AssistantMessage.Metadata)
	assert.Nil(t, result.RetrievedContext)

	// total_tokens = 用户消息 + 助手回复
	assert.Equal(t, result.UserMessage.Tokens+result.AssistantMessage.Tokens, result.Conversation.TotalTokens)
	assert.Equal(t, result.UserMessage.CreatedAt, result.Conversation.UpdatedAt)
}

func TestStartTurnSequenceContinues(t *testing.T) {
	factory := newTestFactory(t)
	createConversation(t, factory, &model.Conversation{
		ID: "c-1", UserID: "u-1", Title: "t", Mode: model.ModeOpenChat,
	})
	svc := newTurnService(t, factory, &fakeVectorStore{}, &fakeChat{reply: "reply"})

	first, err := svc.StartTurn(context.Background(), "c-1", "first")
	require.NoError(t, err)
	second, err := svc.StartTurn(context.Background(), "c-1", "second")
	require.NoError(t, err)

	assert.Equal(t, 0, first.UserMessage.SequenceNumber)
	assert.Equal(t, 1, first.AssistantMessage.SequenceNumber)
	assert.Equal(t, 2, second.UserMessage.SequenceNumber)
	assert.Equal(t, 3, second.AssistantMessage.SequenceNumber)

	msgs, err := factory.Messages().ListByConversation(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
}

func TestStartTurnGrounded(t *testing.T) {
	factory := newTestFactory(t)
	createConversation(t, factory, &model.Conversation{
		ID: "c-1", UserID: "u-1", Title: "t",
		Mode:        model.ModeGrounded,
		DocumentIDs: model.StringList{"doc-1"},
	})
	vs := &fakeVectorStore{hits: []*vstore.Hit{
		hitWithDistance(0, 0.1),
		hitWithDistance(1, 0.2),
	}}
	svc := newTurnService(t, factory, vs, &fakeChat{reply: "grounded answer"})

	result, err := svc.StartTurn(context.Background(), "c-1", "what does the manual say?")
	require.NoError(t, err)

	require.Len(t, result.RetrievedContext, 2)
	require.NotNil(t, result.AssistantMessage.Metadata)
	assert.Equal(t, 2, result.AssistantMessage.Metadata.ChunksUsed)
	assert.InDelta(t, 0.9, result.AssistantMessage.Metadata.SimilarityScores[0], 1e-9)
	assert.InDelta(t, 0.8, result.AssistantMessage.Metadata.SimilarityScores[1], 1e-9)
}

func TestStartTurnGroundedNoMatches(t *testing.T) {
	factory := newTestFactory(t)
	createConversation(t, factory, &model.Conversation{
		ID: "c-1", UserID: "u-1", Title: "t",
		Mode:        model.ModeGrounded,
		DocumentIDs: model.StringList{"doc-1"},
	})
	// 全部命中低于阈值
	vs := &fakeVectorStore{hits: []*vstore.Hit{hitWithDistance(0, 0.9)}}
	chat := &fakeChat{reply: "should not be used"}
	svc := newTurnService(t, factory, vs, chat)

	result, err := svc.StartTurn(context.Background(), "c-1", "unknown topic?")
	require.NoError(t, err)

	assert.Equal(t, GroundedFallback, result.AssistantMessage.Content)
	assert.Nil(t, result.AssistantMessage.Metadata)
	assert.Empty(t, chat.messages)
	assert.NotNil(t, result.RetrievedContext)
	assert.Empty(t, result.RetrievedContext)
}

func TestStartTurnEmptyMessage(t *testing.T) {
	factory := newTestFactory(t)
	svc := newTurnService(t, factory, &fakeVectorStore{}, &fakeChat{reply: "x"})

	_, err := svc.StartTurn(context.Background(), "c-1", "   ")
	assert.ErrorIs(t, err, errors.ErrEmptyMessage)
}

func TestStartTurnConversationNotFound(t *testing.T) {
	factory := newTestFactory(t)
	svc := newTurnService(t, factory, &fakeVectorStore{}, &fakeChat{reply: "x"})

	_, err := svc.StartTurn(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, errors.ErrConversationNotFound)
}

func TestStartTurnGenerationFailureRollsBack(t *testing.T) {
	factory := newTestFactory(t)
	createConversation(t, factory, &model.Conversation{
		ID: "c-1", UserID: "u-1", Title: "t", Mode: model.ModeOpenChat,
	})
	svc := newTurnService(t, factory, &fakeVectorStore{}, &fakeChat{err: assert.AnError})

	_, err := svc.StartTurn(context.Background(), "c-1", "hello")
	require.ErrorIs(t, err, errors.ErrGenerationFailed)

	msgs, err := factory.Messages().ListByConversation(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Empty(t, msgs, "生成失败时用户消息随事务回滚")

	conv, err := factory.Conversations().Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 0, conv.TotalTokens)
}

func TestStartTurnSerializesPerConversation(t *testing.T) {
	factory := newTestFactory(t)
	createConversation(t, factory, &model.Conversation{
		ID: "c-1", UserID: "u-1", Title: "t", Mode: model.ModeOpenChat,
	})
	svc := newTurnService(t, factory, &fakeVectorStore{}, &fakeChat{reply: "ok"})

	const turns = 8
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartTurn(context.Background(), "c-1", "concurrent message")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	msgs, err := factory.Messages().ListByConversation(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, msgs, turns*2)

	// 序号连续且无重复
	for i, msg := range msgs {
		assert.Equal(t, i, msg.SequenceNumber)
	}
}
