// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity for a registered account.
type User struct {
	ID           uuid.UUID   // The store-assigned unique identifier, immutable once set.
	Username     string      // The unique public handle chosen at registration.
	PasswordHash string      // Self-describing Argon2id encoded string (algorithm, parameters, salt, digest).
	Location     Coordinates // Best-effort geographic location inferred from the caller's network address.
	RealName     *string     // Optional display name, unset at registration time.
	Bio          *string     // Optional profile text, unset at registration time.
	CreatedAt    time.Time   // Timestamp of when this account was created.
	UpdatedAt    time.Time   // Timestamp of the last modification.
}
