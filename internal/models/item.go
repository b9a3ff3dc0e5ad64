package models

import "time"

// Item kinds and statuses
const (
	ItemKindLost  = "lost"
	ItemKindFound = "found"

	ItemStatusOpen   = "open"
	ItemStatusClosed = "closed"
)

// Item is a lost or found object record. The verification question and
// answer are either both set or both nil; the answer is stored normalized.
type Item struct {
	ID                   string    `db:"id" json:"id"`
	OwnerID              string    `db:"owner_id" json:"owner_id"`
	Title                string    `db:"title" json:"title"`
	Description          string    `db:"description" json:"description"`
	Kind                 string    `db:"kind" json:"kind"`
	Location             string    `db:"location" json:"location"`
	Status               string    `db:"status" json:"status"`
	VerificationQuestion *string   `db:"verification_question" json:"verification_question,omitempty"`
	VerificationAnswer   *string   `db:"verification_answer" json:"-"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// HasVerification reports whether contacting the owner requires answering
// the item's question first.
func (i Item) HasVerification() bool {
	return i.VerificationQuestion != nil && i.VerificationAnswer != nil
}
