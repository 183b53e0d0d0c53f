package domain

import "time"

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	UserID    string
	SessionID string
	ExpiresAt time.Time
}
