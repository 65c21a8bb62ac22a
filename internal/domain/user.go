package domain

import "time"

// Role is the authorization level carried in tokens
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a user in the system
type User struct {
	ID                       string     `json:"id" db:"id"`
	FirstName                string     `json:"firstName" db:"first_name"`
	LastName                 string     `json:"lastName" db:"last_name"`
	Email                    string     `json:"email" db:"email"`
	PasswordHash             string     `json:"-" db:"password_hash"`
	PhoneNumber              string     `json:"phoneNumber" db:"phone_number"`
	Address                  string     `json:"address" db:"address"`
	City                     string     `json:"city" db:"city"`
	Country                  string     `json:"country" db:"country"`
	Zip                      int        `json:"zip" db:"zip"`
	Age                      int        `json:"age" db:"age"`
	Role                     Role       `json:"role" db:"role"`
	IsVerified               bool       `json:"isVerified" db:"is_verified"`
	VerificationToken        string     `json:"-" db:"verification_token"`
	ResetPasswordToken       string     `json:"-" db:"reset_password_token"`
	ResetPasswordTokenExpiry *time.Time `json:"-" db:"reset_password_token_expiry"`
	CreatedAt                time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt                time.Time  `json:"updatedAt" db:"updated_at"`
}

// OAuthProvider links an external identity to a user
type OAuthProvider struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Provider       string    `json:"provider" db:"provider"` // google
	ProviderUserID string    `json:"provider_user_id" db:"provider_user_id"`
	Email          *string   `json:"email" db:"email"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
