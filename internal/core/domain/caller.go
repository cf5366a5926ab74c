package domain

import "github.com/google/uuid"

// Caller identifies who is making a request.
// An anonymous caller has a nil UserID and can only see public wallets.
type Caller struct {
	UserID uuid.UUID
}

// Anonymous returns the caller used for unauthenticated reads.
func Anonymous() Caller {
	return Caller{}
}

// IsAnonymous reports whether no user is attached.
func (c Caller) IsAnonymous() bool {
	return c.UserID == uuid.Nil
}
