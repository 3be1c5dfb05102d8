package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCode(t *testing.T) {
	tests := []struct {
		name     string
		service  int
		category int
		sequence int
		expected int
	}{
		{"通用请求错误", 0, 1, 1, 1001},
		{"用户未找到", 2, 4, 1, 204001},
		{"对话生成失败", 20, 7, 1, 2007001},
		{"文档提取失败", 21, 7, 1, 2107001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeCode(tt.service, tt.category, tt.sequence))
		})
	}
}

func TestParseCode(t *testing.T) {
	service, category, sequence := ParseCode(2007001)
	assert.Equal(t, 20, service)
	assert.Equal(t, 7, category)
	assert.Equal(t, 1, sequence)
}

func TestErrnoIs(t *testing.T) {
	wrapped := ErrConversationNotFound.WithCause(fmt.Errorf("record not found"))
	assert.True(t, stderrors.Is(wrapped, ErrConversationNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrUserNotFound))
}

func TestErrnoWithCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := ErrDatabase.WithCause(cause)

	// 原始错误不被修改
	assert.Nil(t, ErrDatabase.Unwrap())
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "disk full")
}

func TestErrnoWithMessage(t *testing.T) {
	err := ErrInvalidParam.WithMessage("username is required")
	assert.Equal(t, ErrInvalidParam.Code, err.Code)
	assert.Equal(t, "username is required", err.MessageEN)
	assert.Equal(t, "Invalid request parameters", ErrInvalidParam.MessageEN)
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *Errno
		http int
	}{
		{"未找到用户", ErrUserNotFound, 404},
		{"用户冲突", ErrUserAlreadyExists, 409},
		{"参数无效", ErrInvalidParam, 400},
		{"生成失败", ErrGenerationFailed, 500},
		{"生成超时", ErrGenerationTimeout, 504},
		{"提取失败", ErrExtractionFailed, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.http, tt.err.HTTPStatus())
		})
	}
}

func TestIsClientServerError(t *testing.T) {
	assert.True(t, IsClientError(ErrInvalidParam.Code))
	assert.True(t, IsClientError(ErrUserAlreadyExists.Code))
	assert.False(t, IsClientError(ErrGenerationFailed.Code))
	assert.True(t, IsServerError(ErrGenerationTimeout.Code))
	assert.True(t, IsServerError(ErrDatabase.Code))
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(ErrDocumentNotFound.Code)
	assert.True(t, ok)
	assert.Equal(t, ErrDocumentNotFound, e)

	_, ok = Lookup(9999999)
	assert.False(t, ok)
}
