package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/app"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/channel"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/chat"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/items"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/ledger"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/notify"
)

type AnswerSubmission struct {
	Answer string `json:"answer" binding:"required"`
}

type MessageSubmission struct {
	Content string `json:"content" binding:"required"`
}

// respondChatError maps the workflow's sentinel errors onto HTTP statuses.
func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, items.ErrNotFound),
		errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, channel.ErrNotFound):
		c.JSON(404, gin.H{"error": "Not found"})
	case errors.Is(err, chat.ErrForbidden):
		c.JSON(403, gin.H{"error": "Not the item owner"})
	case errors.Is(err, ledger.ErrSelfContact):
		c.JSON(400, gin.H{"error": "Cannot request chat on your own item"})
	case errors.Is(err, ledger.ErrVerificationNotConfigured):
		c.JSON(400, gin.H{"error": "Item has no verification question"})
	case errors.Is(err, chat.ErrAnswerNotVerified):
		c.JSON(409, gin.H{"error": "Requester has not answered correctly"})
	default:
		c.JSON(500, gin.H{"error": "Internal error"})
	}
}

/* ================================================================
   CHAT REQUEST FLOW
================================================================ */

func handleSubmitAnswer(a *app.App, c *gin.Context) {
	userID, itemID := c.GetString("userID"), c.Param("itemId")

	var in AnswerSubmission
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	res, err := a.Coordinator().SubmitAnswer(c.Request.Context(), itemID, userID, in.Answer)
	if err != nil {
		respondChatError(c, err)
		return
	}

	result := "incorrect"
	if res.AnswerCorrect {
		result = "correct"
	}
	submissionsTotal.WithLabelValues(result).Inc()

	c.JSON(200, gin.H{
		"chat_request_id": res.RequestID,
		"answer_correct":  res.AnswerCorrect,
	})
}

func handleQueryStatus(a *app.App, c *gin.Context) {
	userID, itemID := c.GetString("userID"), c.Param("itemId")

	view, err := a.Coordinator().Status(c.Request.Context(), itemID, userID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(200, view)
}

func handleListIncoming(a *app.App, c *gin.Context) {
	userID := c.GetString("userID")

	requests, err := a.Coordinator().ListIncoming(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list requests"})
		return
	}
	c.JSON(200, gin.H{"chat_requests": requests})
}

func handleApprove(a *app.App, c *gin.Context) {
	userID, requestID := c.GetString("userID"), c.Param("requestId")

	channelID, err := a.Coordinator().Approve(c.Request.Context(), requestID, userID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	decisionsTotal.WithLabelValues("approve").Inc()
	c.JSON(200, gin.H{"channel_id": channelID})
}

func handleDecline(a *app.App, c *gin.Context) {
	userID, requestID := c.GetString("userID"), c.Param("requestId")

	if err := a.Coordinator().Decline(c.Request.Context(), requestID, userID); err != nil {
		respondChatError(c, err)
		return
	}
	decisionsTotal.WithLabelValues("decline").Inc()
	c.JSON(200, gin.H{"message": "Request declined"})
}

/* ================================================================
   MESSAGING
================================================================ */

func handleSendMessage(a *app.App, c *gin.Context) {
	userID, channelID := c.GetString("userID"), c.Param("channelId")
	ctx := c.Request.Context()

	var in MessageSubmission
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	ch, err := a.Channels().Get(ctx, channelID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	if !ch.HasParticipant(userID) {
		c.JSON(403, gin.H{"error": "Not a channel participant"})
		return
	}

	// checked on every send, never cached: a decline takes effect for the
	// very next attempt
	if !a.Gate().CanSendMessage(ctx, ch.ItemID, userID, ch.ID) {
		gateDenialsTotal.Inc()
		c.JSON(403, gin.H{"error": "Sending not authorized on this channel"})
		return
	}

	msg, err := a.Channels().Append(ctx, ch.ID, userID, in.Content)
	if err != nil {
		respondChatError(c, err)
		return
	}

	recipient := ch.UserA
	if recipient == userID {
		recipient = ch.UserB
	}
	a.Notifier().Emit(ctx, recipient, notify.Event{
		Type: notify.EventChatMessage,
		Payload: map[string]any{
			"channel_id": ch.ID,
			"message_id": msg.ID,
			"sender_id":  userID,
			"content":    msg.Content,
		},
	})

	c.JSON(201, gin.H{"message": msg})
}

func handleListMessages(a *app.App, c *gin.Context) {
	userID, channelID := c.GetString("userID"), c.Param("channelId")
	ctx := c.Request.Context()

	ch, err := a.Channels().Get(ctx, channelID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	if !ch.HasParticipant(userID) {
		c.JSON(403, gin.H{"error": "Not a channel participant"})
		return
	}

	msgs, err := a.Channels().Messages(ctx, ch.ID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(200, gin.H{"messages": msgs})
}
