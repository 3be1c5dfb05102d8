package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/biz"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/httputils"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/response"
)

// ConversationHandler handles conversation-related HTTP requests.
type ConversationHandler struct {
	svc   *biz.ConversationService
	turns *biz.TurnService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(svc *biz.ConversationService, turns *biz.TurnService) *ConversationHandler {
	return &ConversationHandler{svc: svc, turns: turns}
}

// CreateConversationRequest is the request body for creating a conversation.
type CreateConversationRequest struct {
	UserID       string   `json:"user_id" binding:"required"`
	Title        string   `json:"title"`
	Mode         string   `json:"mode" binding:"required"`
	DocumentIDs  []string `json:"document_ids"`
	FirstMessage string   `json:"first_message"`
}

// CreateConversationResponse 创建会话的响应。带首条消息时包含首轮结果。
type CreateConversationResponse struct {
	Conversation *model.Conversation `json:"conversation"`
	Turn         *model.TurnResult   `json:"turn,omitempty"`
}

// Create handles conversation creation.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage(err.Error()), nil)
		return
	}

	conv, turn, err := h.svc.Create(c.Request.Context(), &biz.CreateConversationRequest{
		UserID:       req.UserID,
		Title:        req.Title,
		Mode:         model.ConversationMode(req.Mode),
		DocumentIDs:  req.DocumentIDs,
		FirstMessage: req.FirstMessage,
	})
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteCreated(c, nil, &CreateConversationResponse{
		Conversation: conv,
		Turn:         turn,
	})
}

// List handles conversation listing for a user.
func (h *ConversationHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage("user_id is required"), nil)
		return
	}
	offset, limit := pagination(c)

	list, err := h.svc.List(c.Request.Context(), userID, model.ConversationMode(c.Query("mode")), offset, limit)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(list.Conversations, list.TotalCount, limit, offset))
}

// ConversationDetail 会话详情，包含全部消息。
type ConversationDetail struct {
	Conversation *model.Conversation `json:"conversation"`
	Messages     []*model.Message    `json:"messages"`
}

// Get handles conversation retrieval with its messages.
func (h *ConversationHandler) Get(c *gin.Context) {
	conversationID := c.Param("id")

	conv, err := h.svc.Get(c.Request.Context(), conversationID)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	msgs, err := h.svc.Messages(c.Request.Context(), conversationID)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, &ConversationDetail{
		Conversation: conv,
		Messages:     msgs,
	})
}

// Delete handles conversation deletion.
func (h *ConversationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, gin.H{"deleted": true})
}

// SendMessageRequest is the request body for sending a message.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage 在会话中执行一轮对话。
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputils.WriteResponse(c, errors.ErrEmptyMessage, nil)
		return
	}

	result, err := h.turns.StartTurn(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteCreated(c, nil, result)
}

// pagination 解析 offset/limit 查询参数，limit 默认 20，上限 100。
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
