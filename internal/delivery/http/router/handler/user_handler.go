// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"onlyoomfs/internal/delivery/http/response"
	"onlyoomfs/internal/domain/entity"
	"onlyoomfs/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// userResponse is the outbound representation of a user. The password hash
// never leaves the service.
type userResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Latitude      float32   `json:"latitude"`
	Longitude     float32   `json:"longitude"`
	LocationKnown bool      `json:"location_known"`
	RealName      *string   `json:"real_name,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:            user.ID.String(),
		Username:      user.Username,
		Latitude:      user.Location.Latitude,
		Longitude:     user.Location.Longitude,
		LocationKnown: user.Location.Known,
		RealName:      user.RealName,
		Bio:           user.Bio,
		CreatedAt:     user.CreatedAt,
	}
}

// RegisterUser handles the user registration request.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var input usecase.RegisterUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Username and password are required")
	}

	// The client address comes from the connection, not the body.
	input.RemoteAddr = c.RealIP()

	output, err := h.uc.RegisterUser(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// CheckUsername reports whether a username is still available. The answer is
// advisory; registration may still lose the race to a concurrent request.
func (h *UserHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return response.BadRequest(c, "VALIDATION_FAILED", "Username is required")
	}

	available, err := h.uc.CheckUsername(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"username":  username,
		"available": available,
	}, "Username availability checked")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
