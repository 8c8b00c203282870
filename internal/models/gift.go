package models

import "time"

const (
	// GiftStatusProcessing indicates the extraction job has been enqueued
	// but has not produced a result yet
	GiftStatusProcessing = "processing"
	// GiftStatusCompleted indicates the extraction finished and the gift
	// carries whatever data the page yielded
	GiftStatusCompleted = "completed"
	// GiftStatusFailed indicates the extraction job failed permanently
	GiftStatusFailed = "failed"
)

// Gift is one wishlist entry. Name, Cost and Photo are filled in by the
// extraction worker once the job completes; until then the row exists with
// status "processing" so clients can poll it.
type Gift struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Cost         float64   `json:"cost"`
	Link         string    `json:"link"`
	Photo        string    `json:"photo"`
	IsReserved   bool      `json:"is_reserved"`
	ReserveOwner string    `json:"reserve_owner"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type User struct {
	ID           string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
