package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/oauth"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/BilawalArif/redfin-clone/internal/utils"
	"github.com/BilawalArif/redfin-clone/pkg/observability"
	"go.uber.org/zap"
)

const (
	oneTimeTokenBytes  = 32
	resetTokenLifetime = time.Hour
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	oauthRepo  repository.OAuthProviderRepository
	tokens     TokenIssuer
	mailer     Mailer
	metrics    *observability.Metrics
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	oauthRepo repository.OAuthProviderRepository,
	tokens TokenIssuer,
	mailer Mailer,
	metrics *observability.Metrics,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		oauthRepo:  oauthRepo,
		tokens:     tokens,
		mailer:     mailer,
		metrics:    metrics,
		logger:     logger,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Login authenticates a user
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordLogin(ctx, false)
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.metrics.RecordLogin(ctx, false)
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	s.metrics.RecordLogin(ctx, true)
	return s.loginResponse(user)
}

// Signup registers a new user and mails the verification link
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserMessageResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, domain.NewValidationError("invalid email format")
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.Wrap(domain.KindValidation, "could not create user", err)
	}

	verificationToken, err := utils.GenerateRandomToken(oneTimeTokenBytes)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             email,
		PasswordHash:      passwordHash,
		PhoneNumber:       req.PhoneNumber,
		Address:           req.Address,
		City:              req.City,
		Country:           req.Country,
		Zip:               req.Zip,
		Role:              domain.RoleUser,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Wrap(domain.KindValidation, "could not create user", err)
	}
	s.metrics.RecordSignup(ctx)

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, verificationToken); err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &dto.UserMessageResponse{User: user, Message: msgSignedUp}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnauthorized, "invalid refresh token", err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("invalid refresh token")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}

	return s.tokenResponse(user)
}

// OAuthLogin finds or creates the user behind an external identity
func (s *authService) OAuthLogin(ctx context.Context, profile *oauth.Profile) (*OAuthLoginResult, error) {
	user, err := s.findOAuthUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateGoogleToken(user)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to generate google token: %w", err))
	}

	return &OAuthLoginResult{User: user, Token: token}, nil
}

func (s *authService) findOAuthUser(ctx context.Context, profile *oauth.Profile) (*domain.User, error) {
	// Known identity
	link, err := s.oauthRepo.GetByProvider(ctx, profile.Provider, profile.ProviderUserID)
	if err == nil {
		user, err := s.userRepo.GetByID(ctx, link.UserID)
		if err != nil {
			return nil, domain.NewInternalError(fmt.Errorf("failed to load linked user: %w", err))
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewInternalError(fmt.Errorf("failed to look up oauth link: %w", err))
	}

	// Existing account with the same email, or a new unverified one.
	// Linking by email needs the provider to vouch for the address.
	email := utils.SanitizeEmail(profile.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !profile.EmailVerified {
			return nil, domain.NewUnauthorizedError("google account email is not verified")
		}
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.createOAuthUser(ctx, profile, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}

	err = s.oauthRepo.Create(ctx, &domain.OAuthProvider{
		UserID:         user.ID,
		Provider:       profile.Provider,
		ProviderUserID: profile.ProviderUserID,
		Email:          &email,
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicateOAuthProvider) {
		return nil, domain.NewInternalError(fmt.Errorf("failed to link oauth identity: %w", err))
	}

	return user, nil
}

func (s *authService) createOAuthUser(ctx context.Context, profile *oauth.Profile, email string) (*domain.User, error) {
	// The account has no usable password until the profile form sets one
	password, err := utils.GenerateRandomToken(oneTimeTokenBytes)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	passwordHash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	user := &domain.User{
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to create oauth user: %w", err))
	}

	s.logger.Info("created user from oauth sign-in",
		zap.String("provider", profile.Provider),
		zap.String("user_id", user.ID),
	)
	s.metrics.RecordSignup(ctx)

	return user, nil
}

// CompleteOAuthProfile stores the fields posted by the profile form. Only
// the account behind a Google sign-in token can be updated, and the posted
// email must be that account's.
func (s *authService) CompleteOAuthProfile(ctx context.Context, claims *domain.TokenClaims, req *dto.CompleteProfileRequest) (*dto.UserMessageResponse, error) {
	if claims == nil || claims.Type != domain.TokenTypeGoogle {
		return nil, domain.NewUnauthorizedError("google sign-in required")
	}

	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, domain.NewValidationError("invalid email format")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("User not found")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}
	if user.Email != email {
		return nil, domain.NewForbiddenError("email does not match the signed-in account")
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.Wrap(domain.KindValidation, "failed to save user", err)
	}

	if req.Username != "" {
		user.FirstName = req.Username
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Age != 0 {
		user.Age = req.Age
	}
	user.PasswordHash = passwordHash

	// FIXME: the flag is the negation of what the caller sends, so callers
	// must pass isVerified=true to end up unverified. Kept until product
	// decides which way it should go.
	user.IsVerified = !req.IsVerified

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.Wrap(domain.KindValidation, "failed to save user", err)
	}

	return &dto.UserMessageResponse{User: user, Message: msgProfileComplete}, nil
}

// VerifyAccount consumes a verification token. Verification tokens never
// expire, unlike reset tokens.
func (s *authService) VerifyAccount(ctx context.Context, email, token string) (bool, error) {
	if token == "" || email == "" {
		return false, nil
	}

	user, err := s.userRepo.GetByVerificationToken(ctx, utils.SanitizeEmail(email), token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}

	user.IsVerified = true
	user.VerificationToken = ""

	if err := s.userRepo.Update(ctx, user); err != nil {
		return false, domain.NewInternalError(fmt.Errorf("failed to verify user: %w", err))
	}

	return true, nil
}

// RequestPasswordReset mails a reset link. Unknown emails succeed silently.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}

	token, err := utils.GenerateRandomToken(oneTimeTokenBytes)
	if err != nil {
		return domain.NewInternalError(err)
	}

	expiry := s.now().Add(resetTokenLifetime)
	user.ResetPasswordToken = token
	user.ResetPasswordTokenExpiry = &expiry

	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to store reset token: %w", err))
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		return domain.NewInternalError(err)
	}

	return nil
}

// ResetPassword replaces the password when the token matches and has not expired
func (s *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if token == "" {
		return domain.NewNotFoundError("Invalid or expired token")
	}

	user, err := s.userRepo.GetByResetToken(ctx, utils.SanitizeEmail(email), token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("Invalid or expired token")
		}
		return domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return domain.Wrap(domain.KindValidation, "invalid password", err)
	}

	// Hash, token and expiry go out in a single write
	user.PasswordHash = passwordHash
	user.ResetPasswordToken = ""
	user.ResetPasswordTokenExpiry = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.NewInternalError(fmt.Errorf("failed to reset password: %w", err))
	}

	return nil
}

// GetProfile describes the token holder and their linked identities
func (s *authService) GetProfile(ctx context.Context, claims *domain.TokenClaims) (*dto.ProfileResponse, error) {
	links, err := s.oauthRepo.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to get oauth links: %w", err))
	}

	providers := make([]string, 0, len(links))
	for _, link := range links {
		providers = append(providers, link.Provider)
	}

	return &dto.ProfileResponse{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		Providers: providers,
	}, nil
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnauthorized, "Invalid or expired token", err)
	}

	return claims, nil
}
