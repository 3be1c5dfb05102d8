package textutil_test

import (
	"strings"
	"testing"

	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/textutil"
	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"空字符串", "", 0},
		{"不足 4 字符", "abc", 0},
		{"恰好 4 字符", "abcd", 1},
		{"向下取整", "abcdefg", 1},
		{"8 字符", "abcdefgh", 2},
		{"中文按字符计数", "你好世界你好世界", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutil.EstimateTokens(tt.input))
		})
	}
}

func TestEstimateTokensDeterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 100)
	first := textutil.EstimateTokens(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, textutil.EstimateTokens(text))
	}
}

func TestHashString(t *testing.T) {
	// 相同输入应产生相同输出
	hash1 := textutil.HashString("test")
	hash2 := textutil.HashString("test")
	assert.Equal(t, hash1, hash2)

	// 不同输入应产生不同输出
	hash3 := textutil.HashString("different")
	assert.NotEqual(t, hash1, hash3)

	// 哈希应为32字符的十六进制字符串
	assert.Len(t, hash1, 32)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "短于限制",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "等于限制",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "超过限制",
			input:    "hello world",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "中文字符",
			input:    "你好世界",
			maxLen:   2,
			expected: "你好",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := textutil.TruncateString(tt.input, tt.maxLen)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		expected  int // 期望的块数
	}{
		{
			name:      "短文本无需分割",
			text:      "hello",
			chunkSize: 10,
			overlap:   2,
			expected:  1,
		},
		{
			name:      "正常分割",
			text:      "hello world test",
			chunkSize: 5,
			overlap:   2,
			expected:  5,
		},
		{
			name:      "无重叠分割",
			text:      "abcdefghij",
			chunkSize: 5,
			overlap:   0,
			expected:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := textutil.SplitIntoChunks(tt.text, tt.chunkSize, tt.overlap)
			assert.Len(t, chunks, tt.expected)
		})
	}
}

func TestSplitIntoChunksOverlap(t *testing.T) {
	chunks := textutil.SplitIntoChunks("abcdefghij", 4, 2)
	// 步长为 2：abcd, cdef, efgh, ghij
	assert.Equal(t, []string{"abcd", "cdef", "efgh", "ghij"}, chunks)

	// 相邻块共享 overlap 个字符
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		assert.Equal(t, string(prev[len(prev)-2:]), chunks[i][:2])
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"去除引号", `"Machine Learning Basics"`, "Machine Learning Basics"},
		{"去除空白", "  Weather Talk  ", "Weather Talk"},
		{"截断超长标题", strings.Repeat("a", 80), strings.Repeat("a", 60)},
		{"单引号", "'Quick Question'", "Quick Question"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutil.CleanTitle(tt.input, 60))
		})
	}
}
