package chat

import (
	"context"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/items"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/ledger"
	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/models"
)

// Gate answers the only question the messaging path asks: may this sender
// append to this channel right now. It reads the ledger fresh on every call,
// so a decline revokes sending ability for the very next attempt.
type Gate struct {
	items  items.Store
	ledger ledger.Ledger
}

func NewGate(is items.Store, l ledger.Ledger) *Gate {
	return &Gate{items: is, ledger: l}
}

// CanSendMessage never returns an error; any lookup failure denies. Items
// without a verification question are open channels and always pass.
func (g *Gate) CanSendMessage(ctx context.Context, itemID, senderID, channelID string) bool {
	item, err := g.items.Get(ctx, itemID)
	if err != nil {
		return false
	}
	if !item.HasVerification() {
		return true
	}

	if senderID == item.OwnerID {
		// The owner holds no request of their own; their side of the
		// conversation rides on the approval that provisioned the channel.
		req, err := g.ledger.GetByChannel(ctx, channelID)
		return err == nil && req.ItemID == itemID && req.Status == models.StatusApproved
	}

	req, err := g.ledger.Get(ctx, itemID, senderID)
	if err != nil {
		return false
	}
	return req.Status == models.StatusApproved &&
		req.ChannelID != nil && *req.ChannelID == channelID
}
