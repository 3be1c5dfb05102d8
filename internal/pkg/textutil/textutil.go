// Package textutil 提供文本处理工具函数：token 估算、切块、截断。
package textutil

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// EstimateTokens 估算文本的 token 数：字符数除以 4，向下取整。
// 这是一个确定性的近似值，不调用任何分词器；空字符串返回 0。
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// HashString 计算字符串的 MD5 哈希值。
func HashString(s string) string {
	hash := md5.Sum([]byte(s))
	return hex.EncodeToString(hash[:])
}

// TruncateString 截断字符串到指定的最大 Unicode 字符数。
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}

// SplitIntoChunks 将文本分割成重叠的块。
// chunkSize 是每个块的大小（Unicode 字符数），overlap 是块之间的重叠大小。
func SplitIntoChunks(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	step := chunkSize - overlap

	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[i:end])
		chunks = append(chunks, chunk)
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// CleanTitle 清理模型生成的对话标题：去除首尾空白和引号，截断到 maxLen 字符。
func CleanTitle(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	return TruncateString(s, maxLen)
}
