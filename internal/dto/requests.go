package dto

// SignupRequest represents a registration request. The role is never
// taken from the client.
type SignupRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         int    `json:"zip"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// CompleteProfileRequest is posted by the profile form served after Google sign-in.
// It binds both JSON bodies and urlencoded form posts.
type CompleteProfileRequest struct {
	Email       string `json:"email" form:"email" binding:"required"`
	Username    string `json:"username" form:"username"`
	Password    string `json:"password" form:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Age         int    `json:"age" form:"age"`
	IsVerified  bool   `json:"isVerified" form:"isVerified"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest carries the new password; email and token come from the query
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Zip         *int    `json:"zip"`
}

// PaginationQuery binds page and limit query parameters
type PaginationQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// CommentRequest carries a comment body
type CommentRequest struct {
	Text string `json:"text"`
}
