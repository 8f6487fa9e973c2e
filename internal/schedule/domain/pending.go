package domain

import (
	"errors"
	"time"

	"studysync-backend/pkg/ai"
)

// PendingAction is a parsed item waiting for the user's confirm/cancel.
// It is request-scoped: identified by its own id, bound to the user who
// asked, and expired explicitly rather than living for the process lifetime.
type PendingAction struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Item      ai.ParsedItem `json:"item"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// Expired reports whether the confirmation window has closed.
func (p *PendingAction) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

var (
	ErrPendingNotFound = errors.New("pending action not found")
	ErrPendingExpired  = errors.New("pending action expired")
	ErrNotOwner        = errors.New("pending action belongs to another user")
)
