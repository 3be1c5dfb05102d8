// Package router provides BOT-GPT API routing.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/handler"
)

// Handlers 路由注册所需的全部 handler。
type Handlers struct {
	User         *handler.UserHandler
	Conversation *handler.ConversationHandler
	Document     *handler.DocumentHandler
	Health       *handler.HealthHandler
}

// Register registers the BOT-GPT API routes.
func Register(engine *gin.Engine, h *Handlers) {
	logger.Info("Registering BOT-GPT routes...")

	engine.GET("/healthz", h.Health.Healthz)

	v1 := engine.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", h.User.Create)
			users.GET("/:id", h.User.Get)
		}

		conversations := v1.Group("/conversations")
		{
			conversations.POST("", h.Conversation.Create)
			conversations.GET("", h.Conversation.List)
			conversations.GET("/:id", h.Conversation.Get)
			conversations.DELETE("/:id", h.Conversation.Delete)
			conversations.POST("/:id/messages", h.Conversation.SendMessage)
		}

		documents := v1.Group("/documents")
		{
			documents.POST("", h.Document.Upload)
			documents.GET("", h.Document.List)
			documents.GET("/:id", h.Document.Get)
			documents.DELETE("/:id", h.Document.Delete)
		}

		rag := v1.Group("/rag")
		{
			rag.GET("/stats", h.Health.Stats)
		}
	}

	logger.Info("HTTP routes registered")
}
