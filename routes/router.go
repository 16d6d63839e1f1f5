package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ticketflowai/ticketflow/handlers"
	"github.com/ticketflowai/ticketflow/middleware"
)

// RegisterRoutes wires every endpoint. Trailing-slash variants are kept
// because the historical API exposed them and clients still call both.
func RegisterRoutes(r *gin.Engine, h *handlers.Container) {
	r.RedirectTrailingSlash = true

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)

	r.GET("/ws/documents", h.WS.Documents)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		documents := auth.Group("/documents")
		{
			documents.GET("", h.Document.List)
			documents.POST("/upload", h.Document.Upload)
			documents.GET("/jira-projects", h.Document.JiraProjects)
			documents.GET("/gitlab-projects", h.Document.GitLabProjects)
			documents.GET("/:id", h.Document.Get)
			documents.GET("/:id/view", h.Document.View)
			documents.POST("/:id/push-to-jira", h.Document.Push)
		}
		tickets := auth.Group("/tickets")
		{
			tickets.PATCH("/:id", h.Ticket.Update)
		}
	}
}
