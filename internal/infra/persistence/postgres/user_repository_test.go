package postgres

import (
	"testing"

	domainerrors "onlyoomfs/internal/domain/errors"
	"onlyoomfs/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateCreateError_UniqueViolationBecomesUsernameTaken(t *testing.T) {
	// Both the translated and the raw driver form of a duplicate insert must
	// surface as the duplicate-username outcome. Concurrent registrations for
	// the same name race to this constraint; the loser's caller sees a
	// conflict, not an internal failure.
	duplicates := []error{
		gorm.ErrDuplicatedKey,
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`),
	}

	for _, cause := range duplicates {
		err := translateCreateError(cause)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken), "expected ErrUsernameTaken for %v", cause)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "USERNAME_TAKEN", appErr.ErrorCode())
	}
}

func TestTranslateCreateError_NotNullViolation(t *testing.T) {
	cause := errors.New(`ERROR: null value in column "password_hash" violates not-null constraint (SQLSTATE 23502)`)

	err := translateCreateError(cause)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserCreationFailed))
	assert.False(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestTranslateCreateError_OtherErrorsStayOpaque(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := translateCreateError(cause)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())

	// The original driver error stays reachable for logging.
	assert.True(t, errors.Is(err, cause))
}
