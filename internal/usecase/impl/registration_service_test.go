package impl

import (
	"context"
	"testing"

	"onlyoomfs/internal/domain/entity"
	domainerrors "onlyoomfs/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser_Success(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()
	input := registerInput("alice", "Password123!", "203.0.113.7")

	output, err := fx.service.RegisterUser(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, output)
	require.NotNil(t, output.User)

	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, fx.hasher.hash, output.User.PasswordHash)
	assert.NotEqual(t, uuid.Nil, output.User.ID)

	// The resolved location rides along on the persisted row.
	require.Len(t, fx.repo.createdUsers, 1)
	stored := fx.repo.createdUsers[0]
	assert.InDelta(t, 51.5, stored.Location.Latitude, 0.001)
	assert.InDelta(t, -0.1, stored.Location.Longitude, 0.001)
	assert.True(t, stored.Location.Known)

	assert.Equal(t, "203.0.113.7", fx.locator.lastAddr)

	require.Len(t, fx.publisher.events, 1)
	event := fx.publisher.events[0]
	assert.Equal(t, output.User.ID.String(), event.UserID)
	assert.Equal(t, "alice", event.Username)
	assert.True(t, event.LocationKnown)
}

func TestUserService_RegisterUser_UsernameTaken(t *testing.T) {
	fx := createTestUserService()
	fx.repo.createFn = func(_ context.Context, _ *entity.User) error {
		return domainerrors.ErrUsernameTaken.WrapMessage("username already exists")
	}

	output, err := fx.service.RegisterUser(context.Background(), registerInput("alice", "Password123!", "203.0.113.7"))
	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	// A rejected registration must not leak an event downstream.
	assert.Empty(t, fx.publisher.events)
}

func TestUserService_RegisterUser_LocationResolutionFails(t *testing.T) {
	fx := createTestUserService()
	fx.locator.locateErr = errors.New("lookup timed out")

	output, err := fx.service.RegisterUser(context.Background(), registerInput("bob", "Password123!", "203.0.113.7"))
	require.NoError(t, err)
	require.NotNil(t, output)

	// Enrichment failure degrades to the unknown pair, never to a failure.
	require.Len(t, fx.repo.createdUsers, 1)
	stored := fx.repo.createdUsers[0]
	assert.Zero(t, stored.Location.Latitude)
	assert.Zero(t, stored.Location.Longitude)
	assert.False(t, stored.Location.Known)

	require.Len(t, fx.publisher.events, 1)
	assert.False(t, fx.publisher.events[0].LocationKnown)
}

func TestUserService_RegisterUser_EmptyRemoteAddr(t *testing.T) {
	fx := createTestUserService()
	fx.locator.locateErr = errors.New("reserved range")

	_, err := fx.service.RegisterUser(context.Background(), registerInput("carol", "Password123!", ""))
	require.NoError(t, err)

	assert.Equal(t, unknownRemoteAddr, fx.locator.lastAddr)
}

func TestUserService_RegisterUser_HashFailure(t *testing.T) {
	fx := createTestUserService()
	fx.hasher.hashErr = errors.New("insufficient entropy")

	output, err := fx.service.RegisterUser(context.Background(), registerInput("dave", "Password123!", "203.0.113.7"))
	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))

	// Nothing may reach storage when the credential could not be derived.
	assert.Empty(t, fx.repo.createdUsers)
	assert.Empty(t, fx.publisher.events)
}

func TestUserService_RegisterUser_InsertFailure(t *testing.T) {
	fx := createTestUserService()
	fx.repo.createFn = func(_ context.Context, _ *entity.User) error {
		return domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to create user")
	}

	output, err := fx.service.RegisterUser(context.Background(), registerInput("erin", "Password123!", "203.0.113.7"))
	require.Error(t, err)
	assert.Nil(t, output)
	assert.False(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	assert.Empty(t, fx.publisher.events)
}

func TestUserService_RegisterUser_PublishFailureIsAbsorbed(t *testing.T) {
	fx := createTestUserService()
	fx.publisher.publishErr = errors.New("broker unavailable")

	output, err := fx.service.RegisterUser(context.Background(), registerInput("frank", "Password123!", "203.0.113.7"))
	require.NoError(t, err)
	require.NotNil(t, output)

	// The account is committed before publication, so the caller still wins.
	assert.Len(t, fx.repo.createdUsers, 1)
}

func TestUserService_CheckUsername_Available(t *testing.T) {
	fx := createTestUserService()

	available, err := fx.service.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUserService_CheckUsername_Taken(t *testing.T) {
	fx := createTestUserService()
	fx.repo.findFn = func(_ context.Context, username string) (*entity.User, error) {
		return &entity.User{ID: uuid.New(), Username: username}, nil
	}

	available, err := fx.service.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestUserService_CheckUsername_StorageErrorFailsClosed(t *testing.T) {
	fx := createTestUserService()
	fx.repo.findFn = func(_ context.Context, _ string) (*entity.User, error) {
		return nil, errors.New("connection refused")
	}

	available, err := fx.service.CheckUsername(context.Background(), "alice")
	require.Error(t, err)
	assert.False(t, available)
}
