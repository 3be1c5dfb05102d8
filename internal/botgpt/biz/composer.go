// Package biz implements the conversation, retrieval and ingestion
// business logic of the BOT-GPT backend.
package biz

import (
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
)

// Composer selects the suffix of a conversation history that fits a
// token budget.
type Composer struct {
	budget int
}

// NewComposer creates a composer with the given token budget.
func NewComposer(budget int) *Composer {
	return &Composer{budget: budget}
}

// Window 从最新消息向前累加 token，超出预算即停止，返回按时间顺序
// 排列的历史后缀。使用消息入库时记录的 token 数，不重新估算。
//
// 预算本身不会导致空窗口以外的错误：最新一条消息超预算时返回空切片。
func (c *Composer) Window(msgs []*model.Message) []*model.Message {
	used := 0
	start := len(msgs)

	for i := len(msgs) - 1; i >= 0; i-- {
		if used+msgs[i].Tokens > c.budget {
			break
		}
		used += msgs[i].Tokens
		start = i
	}

	return msgs[start:]
}

// Budget returns the configured token budget.
func (c *Composer) Budget() int {
	return c.budget
}
