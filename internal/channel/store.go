package channel

import (
	"context"
	"errors"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

// ErrNotFound means no channel exists with the given id.
var ErrNotFound = errors.New("channel not found")

// Store holds the two-party conversation containers and their messages.
// CreateOrGet is keyed on (itemID, sorted participants), so repeated calls
// for the same triple always land on the same channel.
type Store interface {
	CreateOrGet(ctx context.Context, itemID, userA, userB string) (models.Channel, error)
	Get(ctx context.Context, id string) (models.Channel, error)
	Append(ctx context.Context, channelID, senderID, content string) (models.Message, error)
	Messages(ctx context.Context, channelID string) ([]models.Message, error)
}

// orderedPair returns the two participants in lexicographic order.
func orderedPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
