package repository

import (
	"github.com/BilawalArif/redfin-clone/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User          UserRepository
	OAuthProvider OAuthProviderRepository
	Property      PropertyRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		OAuthProvider: NewOAuthProviderRepository(db),
		Property:      NewPropertyRepository(db),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
