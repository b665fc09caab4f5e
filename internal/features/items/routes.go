package items

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /items. auth guards report submission only.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	items := router.Group("/items")
	{
		items.POST("/report", auth, handler.Report)
		items.GET("/all", handler.All)
		items.GET("/search", handler.Search)
		items.GET("/history/:username", handler.History)
	}
}
