package dto

import (
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
)

// LoginResponse is returned on successful login
type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	Message      string       `json:"message"`
}

// UserMessageResponse pairs a user with an instructional message
type UserMessageResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}

// TokenResponse is returned by the refresh endpoint
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

// ProfileResponse describes the authenticated caller
type ProfileResponse struct {
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Providers []string    `json:"providers"`
}

// RoleResponse carries a single user's role
type RoleResponse struct {
	Role domain.Role `json:"role"`
}

// VerifyResponse mirrors a redirect hint in the body
type VerifyResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// PaginatedProperties is one page of listings
type PaginatedProperties struct {
	Properties  []*domain.Property `json:"properties"`
	TotalCount  int                `json:"totalCount"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body rendered for every failed request
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
	Message    string    `json:"message"`
	Path       string    `json:"path"`
}
