package handler

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/oauth"
	"github.com/BilawalArif/redfin-clone/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userToken   = "user-token"
	adminToken  = "admin-token"
	googleToken = "google-token"
)

var (
	userClaims   = &domain.TokenClaims{UserID: "u-1", Email: "jane@example.com", Role: domain.RoleUser, Type: domain.TokenTypeAccess}
	adminClaims  = &domain.TokenClaims{UserID: "u-2", Email: "root@example.com", Role: domain.RoleAdmin, Type: domain.TokenTypeAccess}
	googleClaims = &domain.TokenClaims{UserID: "u-3", Email: "g@example.com", Role: domain.RoleUser, Type: domain.TokenTypeGoogle}
)

// staticValidator accepts only the fixed test tokens
type staticValidator struct{}

func (staticValidator) ValidateToken(_ context.Context, token string) (*domain.TokenClaims, error) {
	switch token {
	case userToken:
		return userClaims, nil
	case adminToken:
		return adminClaims, nil
	case googleToken:
		return googleClaims, nil
	default:
		return nil, errors.New("token is malformed")
	}
}

// fakeAuthService overrides what the tests call; the embedded nil
// interface panics on anything else.
type fakeAuthService struct {
	service.AuthService

	verified      bool
	oauthProfile  *oauth.Profile
	completed     *dto.CompleteProfileRequest
	completedBy   *domain.TokenClaims
	resetEmail    string
	resetToken    string
	resetPassword string
}

func (f *fakeAuthService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	return staticValidator{}.ValidateToken(ctx, token)
}

func (f *fakeAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Password != "correct-horse" {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}
	return &dto.LoginResponse{
		User:         &domain.User{ID: "u-1", Email: req.Email, Role: domain.RoleUser},
		AccessToken:  "issued-access",
		RefreshToken: "issued-refresh",
		Message:      "User logged in successfully",
	}, nil
}

func (f *fakeAuthService) VerifyAccount(_ context.Context, email, token string) (bool, error) {
	return f.verified && email != "" && token != "", nil
}

func (f *fakeAuthService) OAuthLogin(_ context.Context, profile *oauth.Profile) (*service.OAuthLoginResult, error) {
	f.oauthProfile = profile
	return &service.OAuthLoginResult{
		User:  &domain.User{ID: "u-3", Email: profile.Email, Role: domain.RoleUser},
		Token: googleToken,
	}, nil
}

func (f *fakeAuthService) CompleteOAuthProfile(_ context.Context, claims *domain.TokenClaims, req *dto.CompleteProfileRequest) (*dto.UserMessageResponse, error) {
	f.completed, f.completedBy = req, claims
	return &dto.UserMessageResponse{User: &domain.User{Email: req.Email}, Message: "User created successfully"}, nil
}

func (f *fakeAuthService) ResetPassword(_ context.Context, email, token, newPassword string) error {
	f.resetEmail, f.resetToken, f.resetPassword = email, token, newPassword
	return nil
}

type fakeUserService struct {
	service.UserService
	updatedID string
}

func (f *fakeUserService) GetUserRole(_ context.Context, id string) (domain.Role, error) {
	if id != "u-1" {
		return "", domain.NewNotFoundError("User not found")
	}
	return domain.RoleUser, nil
}

func (f *fakeUserService) UpdateProfile(_ context.Context, id string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	f.updatedID = id
	user := &domain.User{ID: id}
	if req.City != nil {
		user.City = *req.City
	}
	return user, nil
}

type fakePropertyService struct {
	service.PropertyService
	properties map[string]*domain.Property
	lastPage   [2]int
}

func (f *fakePropertyService) get(id string) (*domain.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, domain.NewNotFoundError("Property not found")
	}
	return p, nil
}

func (f *fakePropertyService) GetProperty(_ context.Context, id string) (*domain.Property, error) {
	return f.get(id)
}

func (f *fakePropertyService) Paginate(_ context.Context, page, limit int) (*dto.PaginatedProperties, error) {
	f.lastPage = [2]int{page, limit}
	return &dto.PaginatedProperties{Properties: []*domain.Property{}, CurrentPage: page}, nil
}

func (f *fakePropertyService) Upvote(_ context.Context, id string) (*domain.Property, error) {
	p, err := f.get(id)
	if err != nil {
		return nil, err
	}
	p.Upvotes++
	return p, nil
}

func (f *fakePropertyService) DeleteComment(_ context.Context, id, commentID string) (*domain.Property, error) {
	p, err := f.get(id)
	if err != nil {
		return nil, err
	}
	i := p.FindComment(commentID)
	if i < 0 {
		return nil, domain.NewNotFoundError("Comment not found")
	}
	p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
	return p, nil
}

type fakeGoogle struct {
	profile *oauth.Profile
	err     error
}

func (f *fakeGoogle) AuthCodeURL(state string) string {
	return "https://accounts.example/consent?state=" + state
}

func (f *fakeGoogle) Exchange(_ context.Context, code string) (*oauth.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if code != "good-code" {
		return nil, errors.New("bad code")
	}
	return f.profile, nil
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (*service.RateLimitResult, error) {
	return nil, errors.New("redis: connection refused")
}

// newTestEngine mirrors the production middleware order
func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	engine := gin.New()
	engine.Use(ErrorMiddleware(logger))
	engine.Use(gin.CustomRecoveryWithWriter(io.Discard, RecoveryHandler(logger)))
	return engine
}
