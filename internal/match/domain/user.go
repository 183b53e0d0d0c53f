package domain

import "time"

// User is a registered account. Users are never modified after creation.
type User struct {
	ID           string
	Username     string // stored trimmed, unique
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
}
