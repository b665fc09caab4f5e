package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /auth. limit guards both endpoints; it may be nil.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, limit gin.HandlerFunc) {
	auth := router.Group("/auth")
	if limit != nil {
		auth.Use(limit)
	}
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
	}
}
