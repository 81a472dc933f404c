// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"onlyoomfs/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
// RemoteAddr carries the client address of the registration request; it is
// taken from the connection, never from the request body.
type RegisterUserInput struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RemoteAddr string `json:"-"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)

	// CheckUsername reports whether the given username is still available.
	// The answer is advisory: registration may still fail with a conflict
	// if another request claims the name first.
	CheckUsername(ctx context.Context, username string) (bool, error)
}
