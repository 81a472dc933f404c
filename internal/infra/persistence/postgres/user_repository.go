// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"onlyoomfs/internal/domain/entity"
	domainerrors "onlyoomfs/internal/domain/errors"
	"onlyoomfs/internal/domain/repository"
	"onlyoomfs/internal/errors"
	"onlyoomfs/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByUsername retrieves a single user by their username. It is the
// advisory availability lookup: the unique index on username remains the
// authority, so a not-found result never guarantees a later Create will win.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find user by username")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database. Username uniqueness is
// enforced by the database constraint; a violation is translated into the
// domain's ErrUsernameTaken so callers never need to inspect driver errors.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	// Map the pure domain entity to a GORM persistence model.
	userM := fromUserDomain(user)

	// Execute the creation using the database connection.
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateCreateError(err)
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// translateCreateError converts low-level insert failures into domain errors.
// The unique-violation branch is the commit point for duplicate registrations:
// every concurrent loser must come out of here as ErrUsernameTaken, never as
// an opaque internal error.
func translateCreateError(err error) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrUsernameTaken.WrapMessage("username already exists")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
	}

	// For other database errors, return a generic database error
	return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Location: entity.Coordinates{
			Latitude:  data.Latitude,
			Longitude: data.Longitude,
			Known:     data.LocationKnown,
		},
		RealName:  data.RealName,
		Bio:       data.Bio,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Username:      data.Username,
		PasswordHash:  data.PasswordHash,
		Latitude:      data.Location.Latitude,
		Longitude:     data.Location.Longitude,
		LocationKnown: data.Location.Known,
		RealName:      data.RealName,
		Bio:           data.Bio,
	}
}
