package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/textutil"
	"github.com/NikhilAnand12/BOT-GPT/pkg/llm"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
)

const (
	// openChatInstruction 自由对话的系统提示。
	openChatInstruction = "You are a helpful, knowledgeable assistant. Answer clearly and concisely."

	// GroundedFallback 知识库中没有答案时的固定回复。
	GroundedFallback = "I don't have that information in the uploaded documents."

	// titleInstruction 标题生成的系统提示。
	titleInstruction = "Generate a short title (6 words or fewer) summarizing the user's message. Reply with the title only, no quotes."

	// maxTitleLen 标题最大字符数。
	maxTitleLen = 60
)

// Reply 表示一次生成的回复及其 token 统计。
// token 数使用与消息入库一致的估算方式，不依赖供应商返回值。
type Reply struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Generator 负责调用 Chat 供应商生成回复和标题。
type Generator struct {
	chat llm.ChatProvider
}

// NewGenerator creates a new Generator.
func NewGenerator(chat llm.ChatProvider) *Generator {
	return &Generator{chat: chat}
}

// GenerateReply 根据对话历史生成回复。
// grounded 为真时使用检索到的文档块构造系统提示；文档块为空时不调用
// 供应商，直接返回固定回复。InputTokens 统计历史消息，不含系统提示。
func (g *Generator) GenerateReply(ctx context.Context, history []*model.Message, grounded bool, chunks []*model.RetrievedChunk) (*Reply, error) {
	inputTokens := 0
	for _, msg := range history {
		inputTokens += textutil.EstimateTokens(msg.Content)
	}

	if grounded && len(chunks) == 0 {
		return &Reply{
			Content:      GroundedFallback,
			InputTokens:  inputTokens,
			OutputTokens: textutil.EstimateTokens(GroundedFallback),
		}, nil
	}

	instruction := openChatInstruction
	if grounded {
		instruction = groundedInstruction(chunks)
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: instruction})
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: llm.Role(msg.Role), Content: msg.Content})
	}

	content, err := g.chat.Chat(ctx, messages)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.ErrGenerationTimeout.WithCause(err)
		}
		return nil, errors.ErrGenerationFailed.WithCause(err)
	}

	return &Reply{
		Content:      content,
		InputTokens:  inputTokens,
		OutputTokens: textutil.EstimateTokens(content),
	}, nil
}

// GenerateTitle 为对话生成简短标题。生成失败时回退到首条消息的截断。
func (g *Generator) GenerateTitle(ctx context.Context, firstMessage string) string {
	title, err := g.chat.Generate(ctx, firstMessage, titleInstruction)
	if err != nil {
		logger.Warnw("标题生成失败，使用首条消息", "error", err.Error())
		return textutil.CleanTitle(firstMessage, maxTitleLen)
	}

	title = textutil.CleanTitle(title, maxTitleLen)
	if title == "" {
		return textutil.CleanTitle(firstMessage, maxTitleLen)
	}
	return title
}

// groundedInstruction 构造带检索上下文的系统提示。
func groundedInstruction(chunks []*model.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString("You are an assistant that answers strictly from the provided context.\n")
	b.WriteString("If the answer is not contained in the context, reply exactly: ")
	b.WriteString(GroundedFallback)
	b.WriteString("\n\nContext:\n")

	for _, chunk := range chunks {
		fmt.Fprintf(&b, "[Source: %s, chunk %d]\n%s\n\n", chunk.DocumentTitle, chunk.ChunkIndex, chunk.Content)
	}

	return strings.TrimRight(b.String(), "\n")
}
