package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/app"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/items"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/storage"
)

/* ----------------------------------------------------------------
   DTO types
-----------------------------------------------------------------*/

type UserRegistration struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

type UserLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ItemUpsert struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description"`
	Kind                 string  `json:"kind" binding:"required"`
	Location             string  `json:"location"`
	Status               string  `json:"status"`
	VerificationQuestion *string `json:"verification_question"`
	VerificationAnswer   *string `json:"verification_answer"`
}

/* ================================================================
   USER AUTHENTICATION
================================================================ */

func handleRegister(a *app.App, c *gin.Context) {
	var in UserRegistration
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}
	if !strings.Contains(in.Email, "@") {
		c.JSON(400, gin.H{"error": "Invalid email address"})
		return
	}

	hash, err := a.Auth().HashPassword(in.Password)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	u := models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Users().CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			c.JSON(400, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(201, gin.H{"id": u.ID, "message": "User registered successfully"})
}

func handleLogin(a *app.App, c *gin.Context) {
	var in UserLogin
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	u, err := a.Users().GetUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid credentials"})
		return
	}
	if !u.IsActive || a.Auth().CheckPassword(in.Password, u.PasswordHash) != nil {
		c.JSON(401, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := a.Auth().GenerateToken(u)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(200, gin.H{"token": token})
}

/* ================================================================
   ITEM REGISTRY
================================================================ */

func handleCreateItem(a *app.App, c *gin.Context) {
	userID := c.GetString("userID")

	var in ItemUpsert
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	item, err := a.Items().Create(c.Request.Context(), models.Item{
		OwnerID:              userID,
		Title:                in.Title,
		Description:          in.Description,
		Kind:                 in.Kind,
		Location:             in.Location,
		VerificationQuestion: in.VerificationQuestion,
		VerificationAnswer:   in.VerificationAnswer,
	})
	if err != nil {
		if errors.Is(err, items.ErrVerificationPair) || errors.Is(err, items.ErrInvalidKind) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create item"})
		return
	}
	c.JSON(201, gin.H{"item": item})
}

func handleUpdateItem(a *app.App, c *gin.Context) {
	userID, itemID := c.GetString("userID"), c.Param("itemId")
	ctx := c.Request.Context()

	existing, err := a.Items().Get(ctx, itemID)
	if err != nil {
		c.JSON(404, gin.H{"error": "Item not found"})
		return
	}
	if existing.OwnerID != userID {
		c.JSON(403, gin.H{"error": "Not the item owner"})
		return
	}

	var in ItemUpsert
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}
	status := in.Status
	if status == "" {
		status = existing.Status
	}

	item, err := a.Items().Update(ctx, models.Item{
		ID:                   itemID,
		OwnerID:              existing.OwnerID,
		Title:                in.Title,
		Description:          in.Description,
		Kind:                 in.Kind,
		Location:             in.Location,
		Status:               status,
		VerificationQuestion: in.VerificationQuestion,
		VerificationAnswer:   in.VerificationAnswer,
	})
	if err != nil {
		if errors.Is(err, items.ErrVerificationPair) || errors.Is(err, items.ErrInvalidKind) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(200, gin.H{"item": item})
}

func handleDeleteItem(a *app.App, c *gin.Context) {
	userID, itemID := c.GetString("userID"), c.Param("itemId")
	ctx := c.Request.Context()

	existing, err := a.Items().Get(ctx, itemID)
	if err != nil {
		c.JSON(404, gin.H{"error": "Item not found"})
		return
	}
	if existing.OwnerID != userID {
		c.JSON(403, gin.H{"error": "Not the item owner"})
		return
	}
	if err := a.Items().Delete(ctx, itemID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(200, gin.H{"message": "Item deleted"})
}

func handleGetItem(a *app.App, c *gin.Context) {
	item, err := a.Items().Get(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		c.JSON(404, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(200, gin.H{"item": item})
}

func handleListItems(a *app.App, c *gin.Context) {
	list, err := a.Items().List(c.Request.Context(), items.Filter{
		Kind:   c.Query("kind"),
		Status: c.Query("status"),
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list items"})
		return
	}
	c.JSON(200, gin.H{"items": list})
}
