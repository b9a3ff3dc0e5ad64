package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and parks it in the hub until the
// client hangs up. The socket is push-only; client frames are drained and
// ignored.
func handleWebsocket(a *app.App, c *gin.Context) {
	userID := c.GetString("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade for %s: %v", userID, err)
		return
	}

	a.Hub().Register(userID, conn)
	defer a.Hub().Unregister(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
