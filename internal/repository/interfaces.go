package repository

import (
	"context"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, email, token string) (*domain.User, error)
	GetByResetToken(ctx context.Context, email, token string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// OAuthProviderRepository defines methods for OAuth provider operations
type OAuthProviderRepository interface {
	Create(ctx context.Context, provider *domain.OAuthProvider) error
	GetByProvider(ctx context.Context, provider, providerUserID string) (*domain.OAuthProvider, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.OAuthProvider, error)
}

// PropertyRepository defines methods for property operations
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	List(ctx context.Context, offset, limit int) ([]*domain.Property, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Property, error)
}
