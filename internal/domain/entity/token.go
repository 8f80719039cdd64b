package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the server-side record of a long-lived session. Access
// tokens embed this record's ID; deleting the record invalidates every
// access token derived from it once they expire.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID referenced by access-token claims.
	UserID    uuid.UUID // Links the session to the User it belongs to.
	Token     string    // The signed refresh token string itself; carries its own expiry.
	CreatedAt time.Time // Timestamp of when this session was created (login time).
}
