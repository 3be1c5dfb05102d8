package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/biz"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/httputils"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/response"
)

// DocumentHandler handles document-related HTTP requests.
type DocumentHandler struct {
	svc *biz.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(svc *biz.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Upload 处理 multipart 文件上传并同步建立索引。
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID := c.PostForm("user_id")
	if userID == "" {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage("user_id is required"), nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage("file is required"), nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httputils.WriteResponse(c, errors.ErrInternal.WithCause(err), nil)
		return
	}
	defer src.Close()

	doc, err := h.svc.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteCreated(c, nil, doc)
}

// List handles document listing for a user.
func (h *DocumentHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessage("user_id is required"), nil)
		return
	}
	offset, limit := pagination(c)

	list, err := h.svc.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, response.Page(list.Documents, list.TotalCount, limit, offset))
}

// Get handles document retrieval by id.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, doc)
}

// Delete 删除文档及其向量索引中的块。
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, gin.H{"deleted": true})
}
