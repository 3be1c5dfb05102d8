package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
)

func msgsWithTokens(tokens ...int) []*model.Message {
	msgs := make([]*model.Message, len(tokens))
	for i, n := range tokens {
		msgs[i] = &model.Message{
			SequenceNumber: i,
			Tokens:         n,
		}
	}
	return msgs
}

func TestComposerWindow(t *testing.T) {
	tests := []struct {
		name    string
		budget  int
		tokens  []int
		wantSeq []int
	}{
		{
			name:    "预算3500只容纳最新3条",
			budget:  3500,
			tokens:  []int{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000},
			wantSeq: []int{7, 8, 9},
		},
		{
			name:    "全部消息在预算内",
			budget:  100,
			tokens:  []int{10, 20, 30},
			wantSeq: []int{0, 1, 2},
		},
		{
			name:    "最新一条消息超预算返回空窗口",
			budget:  5,
			tokens:  []int{3, 10},
			wantSeq: []int{},
		},
		{
			name:    "恰好用满预算",
			budget:  60,
			tokens:  []int{50, 10, 20, 30},
			wantSeq: []int{2, 3},
		},
		{
			name:    "空历史",
			budget:  1000,
			tokens:  nil,
			wantSeq: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := NewComposer(tt.budget)
			window := composer.Window(msgsWithTokens(tt.tokens...))

			gotSeq := make([]int, 0, len(window))
			for _, msg := range window {
				gotSeq = append(gotSeq, msg.SequenceNumber)
			}
			assert.Equal(t, tt.wantSeq, gotSeq)
		})
	}
}

func TestComposerWindowPreservesOrder(t *testing.T) {
	composer := NewComposer(100)
	msgs := msgsWithTokens(10, 10, 10)
	window := composer.Window(msgs)

	assert.Len(t, window, 3)
	for i := 1; i < len(window); i++ {
		assert.Greater(t, window[i].SequenceNumber, window[i-1].SequenceNumber)
	}
}
