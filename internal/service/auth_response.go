package service

import (
	"fmt"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
)

const (
	msgLoggedIn        = "User logged in successfully"
	msgSignedUp        = "User created. Check your email for verification."
	msgProfileComplete = "User created successfully"
)

// OAuthLoginResult is the outcome of a Google sign-in
type OAuthLoginResult struct {
	User  *domain.User
	Token string
}

// loginResponse issues a token pair and wraps it with the user
func (s *authService) loginResponse(user *domain.User) (*dto.LoginResponse, error) {
	pair, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to generate tokens: %w", err))
	}

	return &dto.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Message:      msgLoggedIn,
	}, nil
}

// tokenResponse issues a fresh token pair for the refresh endpoint
func (s *authService) tokenResponse(user *domain.User) (*dto.TokenResponse, error) {
	pair, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to generate tokens: %w", err))
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokens.GetAccessTokenExpiry(),
	}, nil
}
