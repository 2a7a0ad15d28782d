package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs issued JWTs. The token carries the session ID, so revoking
// the row invalidates the token before its natural expiry.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
