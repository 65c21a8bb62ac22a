package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/oauth"
	"github.com/BilawalArif/redfin-clone/internal/service"
	"github.com/BilawalArif/redfin-clone/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthStateMaxAge    = 300
	googleSessionMaxAge = 900
	googleSessionPath   = "/auth"
)

// OAuthProvider runs the external consent flow. *oauth.GoogleProvider satisfies it.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.Profile, error)
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	google      OAuthProvider
}

// NewAuthHandler creates a new auth handler. google may be nil when
// Google sign-in is not configured.
func NewAuthHandler(authService service.AuthService, google OAuthProvider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		google:      google,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("authorization", response.AccessToken)
	c.JSON(http.StatusOK, response)
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("authorization", response.AccessToken)
	c.JSON(http.StatusOK, response)
}

// Profile returns the caller's identity as carried by the token
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		_ = c.Error(domain.NewUnauthorizedError("Unauthorized"))
		return
	}

	response, err := h.authService.GetProfile(c.Request.Context(), claims)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GoogleLogin redirects to the Google consent page
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		_ = c.Error(domain.NewNotFoundError("Google sign-in is not configured"))
		return
	}

	state, err := utils.GenerateRandomToken(16)
	if err != nil {
		_ = c.Error(domain.NewInternalError(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/auth/google", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

// GoogleCallback completes the consent flow and sends the user to the profile form
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		_ = c.Error(domain.NewNotFoundError("Google sign-in is not configured"))
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		_ = c.Error(domain.NewUnauthorizedError("invalid oauth state"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/auth/google", "", c.Request.TLS != nil, true)

	profile, err := h.google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		_ = c.Error(domain.Wrap(domain.KindUnauthorized, "google sign-in failed", err))
		return
	}

	result, err := h.authService.OAuthLogin(c.Request.Context(), profile)
	if err != nil {
		_ = c.Error(err)
		return
	}

	query := url.Values{}
	query.Set("email", result.User.Email)

	// The profile form posts back without a bearer header
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(googleSessionCookie, result.Token, googleSessionMaxAge, googleSessionPath, "", c.Request.TLS != nil, true)
	c.Header("authorization", result.Token)
	c.Redirect(http.StatusFound, "/auth/formPage?"+query.Encode())
}

// FormPage serves the profile completion form
func (h *AuthHandler) FormPage(c *gin.Context) {
	renderProfileForm(c, c.Query("email"))
}

// UpdateUser stores the profile form for the user signed in with Google.
// Accepts JSON and urlencoded bodies.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		_ = c.Error(domain.NewUnauthorizedError("Unauthorized"))
		return
	}

	var req dto.CompleteProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.authService.CompleteOAuthProfile(c.Request.Context(), claims, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.SetCookie(googleSessionCookie, "", -1, googleSessionPath, "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, response)
}

// Verify consumes an email verification link
func (h *AuthHandler) Verify(c *gin.Context) {
	verified, err := h.authService.VerifyAccount(c.Request.Context(), c.Query("email"), c.Query("token"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "verification-failed"
	if verified {
		message = "account-verified"
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{StatusCode: http.StatusFound, Message: message})
}

// ForgotPassword mails a reset link when the account exists
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password reset email sent successfully"})
}

// ResetPassword sets a new password using the emailed token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), c.Query("email"), c.Query("token"), req.NewPassword)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password reset successful"})
}
