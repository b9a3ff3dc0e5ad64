package models

import "time"

// ChatRequest statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ChatRequest is the authorization record for one requester trying to reach
// one item's owner. At most one exists per (item, requester, owner) triple.
// Question and CorrectAnswer are snapshots taken at first submission; editing
// the item afterwards does not rewrite them.
type ChatRequest struct {
	ID              string     `db:"id" json:"id"`
	ItemID          string     `db:"item_id" json:"item_id"`
	RequesterID     string     `db:"requester_id" json:"requester_id"`
	OwnerID         string     `db:"owner_id" json:"owner_id"`
	Question        string     `db:"question" json:"question"`
	CorrectAnswer   string     `db:"correct_answer" json:"-"`
	SubmittedAnswer *string    `db:"submitted_answer" json:"submitted_answer,omitempty"`
	AnswerCorrect   bool       `db:"answer_correct" json:"answer_correct"`
	Status          string     `db:"status" json:"status"`
	ChannelID       *string    `db:"channel_id" json:"channel_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
