// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Tokens reference users by
// username, so the username is unique and immutable once created.
type User struct {
	ID        uuid.UUID // The unique identifier for the user account.
	Username  string    // The login identifier embedded in token claims.
	Name      string    // The user's display name.
	Role      string    // Coarse account role, e.g. "user" or "admin".
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}
