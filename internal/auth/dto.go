package auth

import (
	"github.com/google/uuid"

	"github.com/shiftline/shiftline-backend/internal/users"
	"github.com/shiftline/shiftline-backend/pkg/enums"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RestaurantSummary describes the restaurant metadata returned after login.
type RestaurantSummary struct {
	ID   uuid.UUID        `json:"id"`
	Name string           `json:"name"`
	Role enums.MemberRole `json:"role"`
}

// LoginResponse contains the tokens, user, and restaurant list produced by a
// successful login.
type LoginResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	Restaurants  []RestaurantSummary `json:"restaurants"`
	User         *users.UserDTO      `json:"user"`
}

// RefreshRequest carries the expired access token plus the refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
