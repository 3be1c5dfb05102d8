package biz

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

func TestGenerateReplyOpenChat(t *testing.T) {
	chat := &fakeChat{reply: "Hello there, how can I help?"}
	generator := NewGenerator(chat)

	history := []*model.Message{
		{Role: model.RoleUser, Content: "hello bot", Tokens: 2},
	}
	reply, err := generator.GenerateReply(context.Background(), history, false, nil)
	require.NoError(t, err)

	assert.Equal(t, "Hello there, how can I help?", reply.Content)
	assert.Equal(t, 2, reply.InputTokens, "9个字符除以4")
	assert.Equal(t, 7, reply.OutputTokens, "28个字符除以4")

	require.NotEmpty(t, chat.messages)
	assert.Equal(t, llm.RoleSystem, chat.messages[0].Role)
	assert.Equal(t, openChatInstruction, chat.messages[0].Content)
}

func TestGenerateReplyGrounded(t *testing.T) {
	chat := &fakeChat{reply: "The warranty lasts two years."}
	generator := NewGenerator(chat)

	chunks := []*model.RetrievedChunk{
		{Content: "Warranty: two years.", DocumentTitle: "manual.pdf", ChunkIndex: 3, Similarity: 0.92, Rank: 1},
	}
	history := []*model.Message{
		{Role: model.RoleUser, Content: "how long is the warranty?", Tokens: 6},
	}
	reply, err := generator.GenerateReply(context.Background(), history, true, chunks)
	require.NoError(t, err)
	assert.Equal(t, "The warranty lasts two years.", reply.Content)

	require.NotEmpty(t, chat.messages)
	instruction := chat.messages[0].Content
	assert.Contains(t, instruction, "Warranty: two years.")
	assert.Contains(t, instruction, "manual.pdf")
	assert.Contains(t, instruction, GroundedFallback)
}

func TestGenerateReplyGroundedNoChunks(t *testing.T) {
	chat := &fakeChat{reply: "should not be called"}
	generator := NewGenerator(chat)

	reply, err := generator.GenerateReply(context.Background(), []*model.Message{
		{Role: model.RoleUser, Content: "anything?"},
	}, true, nil)
	require.NoError(t, err)

	assert.Equal(t, GroundedFallback, reply.Content)
	assert.Empty(t, chat.messages, "无可用文档块时不调用供应商")
}

func TestGenerateReplyInputTokensExcludeInstruction(t *testing.T) {
	chat := &fakeChat{reply: "ok"}
	generator := NewGenerator(chat)

	history := []*model.Message{
		{Role: model.RoleUser, Content: strings.Repeat("a", 40)},
		{Role: model.RoleAssistant, Content: strings.Repeat("b", 20)},
		{Role: model.RoleUser, Content: strings.Repeat("c", 8)},
	}
	reply, err := generator.GenerateReply(context.Background(), history, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 10+5+2, reply.InputTokens)
}

func TestGenerateReplyFailure(t *testing.T) {
	generator := NewGenerator(&fakeChat{err: assert.AnError})

	_, err := generator.GenerateReply(context.Background(), []*model.Message{
		{Role: model.RoleUser, Content: "hi"},
	}, false, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGenerationFailed)
}

func TestGenerateReplyTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	generator := NewGenerator(&fakeChat{err: ctx.Err()})

	_, err := generator.GenerateReply(ctx, []*model.Message{
		{Role: model.RoleUser, Content: "hi"},
	}, false, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGenerationTimeout)
}

func TestGenerateTitle(t *testing.T) {
	t.Run("清理引号和空白", func(t *testing.T) {
		generator := NewGenerator(&fakeChat{reply: `  "Warranty Questions"  `})
		title := generator.GenerateTitle(context.Background(), "how long is the warranty?")
		assert.Equal(t, "Warranty Questions", title)
	})

	t.Run("生成失败回退到首条消息", func(t *testing.T) {
		generator := NewGenerator(&fakeChat{err: assert.AnError})
		title := generator.GenerateTitle(context.Background(), "tell me about the product warranty")
		assert.Equal(t, "tell me about the product warranty", title)
	})

	t.Run("超长标题截断到60字符", func(t *testing.T) {
		generator := NewGenerator(&fakeChat{reply: strings.Repeat("x", 100)})
		title := generator.GenerateTitle(context.Background(), "hi")
		assert.Len(t, title, 60)
	})
}
