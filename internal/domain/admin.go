package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a staff operator allowed to read and move records.
type Admin struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is the server-side row backing an issued operator token.
type Session struct {
	ID        uuid.UUID
	AdminID   uuid.UUID
	CreatedAt time.Time
	ExpiresAt *time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the session has been logged out.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsExpired returns true if the session has an expiry and it has passed.
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

// OperatorSession is what a successful login hands back. Token is the
// bearer credential passed explicitly to every operator call.
type OperatorSession struct {
	Token     string
	Admin     Admin
	ExpiresAt *time.Time
}
