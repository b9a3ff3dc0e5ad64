package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/api"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/app"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/channel"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/config"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/items"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/ledger"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/notify"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/storage"
)

type testEnv struct {
	app    *app.App
	router *gin.Engine
	users  *storage.MemoryUserStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := storage.NewMemoryUserStore()
	a := app.NewWithStores(
		config.Config{JWTSecret: "test-secret"},
		users,
		items.NewMemoryStore(),
		ledger.NewMemoryLedger(),
		channel.NewMemoryStore(),
		notify.Discard{},
	)
	return &testEnv{app: a, router: api.SetupRouter(a), users: users}
}

func (e *testEnv) addUser(t *testing.T, email string) (id, token string) {
	t.Helper()
	u := models.User{
		ID:        uuid.New().String(),
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, e.users.CreateUser(context.Background(), u))
	token, err := e.app.Auth().GenerateToken(u)
	require.NoError(t, err)
	return u.ID, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestChatAuthorizationFlow(t *testing.T) {
	e := newTestEnv(t)
	_, ownerToken := e.addUser(t, "owner@example.com")
	_, finderToken := e.addUser(t, "finder@example.com")

	// owner posts a verified item
	w := e.do(t, http.MethodPost, "/api/items", ownerToken, gin.H{
		"title":                 "Blue wallet",
		"kind":                  "found",
		"verification_question": "What color?",
		"verification_answer":   "Blue",
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	itemID := decode(t, w)["item"].(map[string]any)["id"].(string)

	// wrong answer: recorded, retryable, not listed for the owner
	w = e.do(t, http.MethodPost, "/api/items/"+itemID+"/chat-requests", finderToken,
		gin.H{"answer": "red"})
	require.Equal(t, 200, w.Code, w.Body.String())
	require.False(t, decode(t, w)["answer_correct"].(bool))

	w = e.do(t, http.MethodGet, "/api/chat-requests/incoming", ownerToken, nil)
	require.Equal(t, 200, w.Code)
	require.Empty(t, decode(t, w)["chat_requests"])

	// correct answer on retry
	w = e.do(t, http.MethodPost, "/api/items/"+itemID+"/chat-requests", finderToken,
		gin.H{"answer": " BLUE "})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	require.True(t, body["answer_correct"].(bool))
	requestID := body["chat_request_id"].(string)

	// only the owner may decide
	w = e.do(t, http.MethodPost, "/api/chat-requests/"+requestID+"/approve", finderToken, nil)
	require.Equal(t, 403, w.Code)

	w = e.do(t, http.MethodPost, "/api/chat-requests/"+requestID+"/approve", ownerToken, nil)
	require.Equal(t, 200, w.Code, w.Body.String())
	channelID := decode(t, w)["channel_id"].(string)

	// both sides can talk now
	w = e.do(t, http.MethodPost, "/api/channels/"+channelID+"/messages", finderToken,
		gin.H{"content": "hi, found your wallet"})
	require.Equal(t, 201, w.Code, w.Body.String())
	w = e.do(t, http.MethodPost, "/api/channels/"+channelID+"/messages", ownerToken,
		gin.H{"content": "which card is inside?"})
	require.Equal(t, 201, w.Code)

	w = e.do(t, http.MethodGet, "/api/channels/"+channelID+"/messages", finderToken, nil)
	require.Equal(t, 200, w.Code)
	require.Len(t, decode(t, w)["messages"], 2)

	// status view from the requester side
	w = e.do(t, http.MethodGet, "/api/items/"+itemID+"/chat-requests/me", finderToken, nil)
	require.Equal(t, 200, w.Code)
	status := decode(t, w)
	require.True(t, status["has_request"].(bool))
	require.Equal(t, "approved", status["status"].(string))

	// decline revokes sending mid-conversation
	w = e.do(t, http.MethodPost, "/api/chat-requests/"+requestID+"/decline", ownerToken, nil)
	require.Equal(t, 200, w.Code)
	w = e.do(t, http.MethodPost, "/api/channels/"+channelID+"/messages", finderToken,
		gin.H{"content": "hello?"})
	require.Equal(t, 403, w.Code)
}

func TestSubmitOnOwnItemRejected(t *testing.T) {
	e := newTestEnv(t)
	_, ownerToken := e.addUser(t, "owner@example.com")

	w := e.do(t, http.MethodPost, "/api/items", ownerToken, gin.H{
		"title":                 "Keys",
		"kind":                  "lost",
		"verification_question": "How many?",
		"verification_answer":   "three",
	})
	require.Equal(t, 201, w.Code)
	itemID := decode(t, w)["item"].(map[string]any)["id"].(string)

	w = e.do(t, http.MethodPost, "/api/items/"+itemID+"/chat-requests", ownerToken,
		gin.H{"answer": "three"})
	require.Equal(t, 400, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEnv(t)
	for _, path := range []string{"/api/items", "/api/chat-requests/incoming"} {
		w := e.do(t, http.MethodGet, path, "", nil)
		if path == "/api/items" {
			// public listing
			require.Equal(t, 200, w.Code)
			continue
		}
		require.Equal(t, 401, w.Code)
	}

	w := e.do(t, http.MethodPost, "/api/items", "", gin.H{"title": "x", "kind": "lost"})
	require.Equal(t, 401, w.Code)

	w = e.do(t, http.MethodPost, "/api/items", "Bearer not-a-token", gin.H{"title": "x", "kind": "lost"})
	require.Equal(t, 401, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/register", "", gin.H{
		"email":    "user@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	// duplicate registration
	w = e.do(t, http.MethodPost, "/api/register", "", gin.H{
		"email":    "user@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 400, w.Code)

	w = e.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "user@example.com",
		"password": "hunter22",
	})
	require.Equal(t, 200, w.Code)
	require.NotEmpty(t, decode(t, w)["token"])

	w = e.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrong",
	})
	require.Equal(t, 401, w.Code)
}

func TestOpenItemChannelUnrestricted(t *testing.T) {
	e := newTestEnv(t)
	ownerID, ownerToken := e.addUser(t, "owner@example.com")
	finderID, finderToken := e.addUser(t, "finder@example.com")

	w := e.do(t, http.MethodPost, "/api/items", ownerToken, gin.H{
		"title": "Umbrella", "kind": "found",
	})
	require.Equal(t, 201, w.Code)
	itemID := decode(t, w)["item"].(map[string]any)["id"].(string)

	// no verification question: sends pass without any chat request
	ch, err := e.app.Channels().CreateOrGet(context.Background(), itemID, ownerID, finderID)
	require.NoError(t, err)

	w = e.do(t, http.MethodPost, fmt.Sprintf("/api/channels/%s/messages", ch.ID), finderToken,
		gin.H{"content": "that's mine"})
	require.Equal(t, 201, w.Code, w.Body.String())
}
