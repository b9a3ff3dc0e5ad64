package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/app"
)

// SetupRouter wires every HTTP endpoint, using thin closure wrappers so
// each handler receives the running *app.App instance.
func SetupRouter(a *app.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	/* ---------- public endpoints ---------- */
	r.POST("/api/register", func(c *gin.Context) { handleRegister(a, c) })
	r.POST("/api/login", func(c *gin.Context) { handleLogin(a, c) })
	r.GET("/api/items", func(c *gin.Context) { handleListItems(a, c) })
	r.GET("/api/items/:itemId", func(c *gin.Context) { handleGetItem(a, c) })

	/* ---------- protected endpoints ---------- */
	api := r.Group("/api")
	api.Use(authMiddleware(a))
	{
		api.POST("/items", func(c *gin.Context) { handleCreateItem(a, c) })
		api.PUT("/items/:itemId", func(c *gin.Context) { handleUpdateItem(a, c) })
		api.DELETE("/items/:itemId", func(c *gin.Context) { handleDeleteItem(a, c) })

		api.POST("/items/:itemId/chat-requests",
			func(c *gin.Context) { handleSubmitAnswer(a, c) })
		api.GET("/items/:itemId/chat-requests/me",
			func(c *gin.Context) { handleQueryStatus(a, c) })
		api.GET("/chat-requests/incoming",
			func(c *gin.Context) { handleListIncoming(a, c) })
		api.POST("/chat-requests/:requestId/approve",
			func(c *gin.Context) { handleApprove(a, c) })
		api.POST("/chat-requests/:requestId/decline",
			func(c *gin.Context) { handleDecline(a, c) })

		api.POST("/channels/:channelId/messages",
			func(c *gin.Context) { handleSendMessage(a, c) })
		api.GET("/channels/:channelId/messages",
			func(c *gin.Context) { handleListMessages(a, c) })

		api.GET("/ws", func(c *gin.Context) { handleWebsocket(a, c) })
	}

	return r
}
