package models

import "time"

// Channel is a two-party, item-scoped conversation container. UserA and
// UserB are stored in lexicographic order so the triple maps to exactly
// one row.
type Channel struct {
	ID        string    `db:"id" json:"id"`
	ItemID    string    `db:"item_id" json:"item_id"`
	UserA     string    `db:"user_a" json:"user_a"`
	UserB     string    `db:"user_b" json:"user_b"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasParticipant reports whether userID is one of the two parties.
func (c Channel) HasParticipant(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

// Message is one entry in a channel.
type Message struct {
	ID        string    `db:"id" json:"id"`
	ChannelID string    `db:"channel_id" json:"channel_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
