package domain

import "time"

// Interest is a one-directional "crush": OwnerID is interested in whoever
// is called TargetName. TargetName need not name a registered user.
type Interest struct {
	ID         string
	OwnerID    string
	TargetName string
	CreatedAt  time.Time
}
