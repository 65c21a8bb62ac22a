package domain

// TokenType distinguishes the signed tokens issued by the service
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
	TokenTypeGoogle  TokenType = "google"
)

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
	Type   TokenType `json:"type"`
	Exp    int64     `json:"exp"`
	Iat    int64     `json:"iat"`
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
