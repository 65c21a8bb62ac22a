package service

import (
	"context"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/oauth"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserMessageResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	OAuthLogin(ctx context.Context, profile *oauth.Profile) (*OAuthLoginResult, error)
	CompleteOAuthProfile(ctx context.Context, claims *domain.TokenClaims, req *dto.CompleteProfileRequest) (*dto.UserMessageResponse, error)
	VerifyAccount(ctx context.Context, email, token string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	GetProfile(ctx context.Context, claims *domain.TokenClaims) (*dto.ProfileResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// UserService defines methods for profile operations
type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserRole(ctx context.Context, id string) (domain.Role, error)
	UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*domain.User, error)
}

// PropertyService defines methods for listing, comment and vote operations
type PropertyService interface {
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	Paginate(ctx context.Context, page, limit int) (*dto.PaginatedProperties, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Property, error)
	AddComment(ctx context.Context, id, text string) (*domain.Property, error)
	EditComment(ctx context.Context, id, commentID, text string) (*domain.Property, error)
	DeleteComment(ctx context.Context, id, commentID string) (*domain.Property, error)
	Upvote(ctx context.Context, id string) (*domain.Property, error)
	Downvote(ctx context.Context, id string) (*domain.Property, error)
	Import(ctx context.Context, properties []*domain.Property) (int, error)
}

// TokenIssuer signs and validates session tokens. *utils.JWTManager satisfies it.
type TokenIssuer interface {
	GenerateTokenPair(user *domain.User) (*domain.TokenPair, error)
	GenerateGoogleToken(user *domain.User) (string, error)
	ValidateAccessToken(token string) (*domain.TokenClaims, error)
	ValidateRefreshToken(token string) (*domain.TokenClaims, error)
	GetAccessTokenExpiry() int
}

// Mailer delivers one-time token links. *mail.Mailer satisfies it.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}
