package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/vstore"
	"github.com/NikhilAnand12/BOT-GPT/internal/pkg/httputils"
)

// HealthHandler exposes liveness and index statistics endpoints.
type HealthHandler struct {
	vectorStore vstore.VectorStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(vectorStore vstore.VectorStore) *HealthHandler {
	return &HealthHandler{vectorStore: vectorStore}
}

// Healthz handles liveness checks.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Stats 返回向量索引的统计信息。
func (h *HealthHandler) Stats(c *gin.Context) {
	total, err := h.vectorStore.Stats(c.Request.Context())
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	httputils.WriteResponse(c, nil, gin.H{"total_chunks": total})
}
