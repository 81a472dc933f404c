// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "onlyoomfs/internal/delivery/context"
	"onlyoomfs/internal/domain/entity"
	domainerrors "onlyoomfs/internal/domain/errors"
	"onlyoomfs/internal/domain/repository"
	"onlyoomfs/internal/domain/service"
	"onlyoomfs/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// unknownRemoteAddr stands in for a registration request whose client address
// could not be determined. Lookups against it fail, which resolves to the
// unknown coordinate pair.
const unknownRemoteAddr = "0.0.0.0"

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	locator   service.GeoLocator
	publisher service.EventPublisher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Locator   service.GeoLocator
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		locator:   params.Locator,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the complete user registration process:
// resolve the client's location, hash the password, and persist the account.
// Location resolution is best-effort; only hashing or persistence failures
// abort the registration.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	location := srv.resolveLocation(ctx, input.RemoteAddr)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Location:     location,
	}

	// The insert is the single commit point for username uniqueness. There is
	// no pre-check here: two concurrent registrations for the same name race
	// to the unique constraint, and exactly one wins.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, newUser)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.log(ctx).Warn("Registration rejected, username taken", slog.String("username", input.Username))

			return nil, err
		}

		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.publishRegistered(ctx, newUser)

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// CheckUsername reports whether a username is still free. Storage errors are
// not hidden behind a guess: the check fails rather than report availability
// it cannot back up.
func (srv *userService) CheckUsername(ctx context.Context, username string) (bool, error) {
	_, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return true, nil
		}

		srv.log(ctx).Error("Failed to check username availability", slog.String("username", username), slog.Any("error", err))

		return false, errors.Wrap(err, "failed to check username availability")
	}

	return false, nil
}

// resolveLocation looks up the request's client address. Any failure is
// absorbed into the unknown pair so enrichment never blocks registration.
func (srv *userService) resolveLocation(ctx context.Context, remoteAddr string) entity.Coordinates {
	if remoteAddr == "" {
		remoteAddr = unknownRemoteAddr
	}

	location, err := srv.locator.Locate(ctx, remoteAddr)
	if err != nil {
		srv.log(ctx).Warn("Location resolution failed, storing unknown location",
			slog.String("remoteAddr", remoteAddr),
			slog.Any("error", err),
		)

		return entity.UnknownCoordinates()
	}

	return location
}

// publishRegistered emits the registration event. Publication is best-effort;
// the account is already committed, so failures are logged and dropped.
func (srv *userService) publishRegistered(ctx context.Context, user *entity.User) {
	event := &service.RegistrationEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		UserID:        user.ID.String(),
		Username:      user.Username,
		Latitude:      user.Location.Latitude,
		Longitude:     user.Location.Longitude,
		LocationKnown: user.Location.Known,
	}

	if err := srv.publisher.PublishRegistrationEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish registration event",
			slog.String("userID", event.UserID),
			slog.Any("error", err),
		)
	}
}
