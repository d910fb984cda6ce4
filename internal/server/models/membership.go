package models

import "time"

// Membership is one (family, user) row of the membership store. The gateway
// itself only consumes the is-a-member fact; Role exists for the surrounding
// application.
type Membership struct {
	FamilyID string
	UserID   string
	Role     string
	AddedAt  time.Time
}
