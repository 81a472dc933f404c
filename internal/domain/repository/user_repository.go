// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"onlyoomfs/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsername retrieves a single user by their username, returning
	// ErrUserNotFound when no account holds it. The advisory availability
	// check is built on this lookup.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user entity to the storage. The store's unique
	// constraint on username is the single serialization point for duplicate
	// registrations; a violation is surfaced as a duplicate-username error.
	Create(ctx context.Context, user *entity.User) error
}
