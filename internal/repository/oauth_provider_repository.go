package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/google/uuid"
)

const oauthProviderColumns = `id, user_id, provider, provider_user_id, email, created_at`

// oauthProviderRepository links external identities to local users
type oauthProviderRepository struct {
	db *database.Postgres
}

// NewOAuthProviderRepository creates a new OAuth provider repository
func NewOAuthProviderRepository(db *database.Postgres) OAuthProviderRepository {
	return &oauthProviderRepository{db: db}
}

// Create links an external identity. One identity maps to at most one user.
func (r *oauthProviderRepository) Create(ctx context.Context, link *domain.OAuthProvider) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}

	var email sql.NullString
	if link.Email != nil {
		email = nullString(*link.Email)
	}

	_, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO oauth_providers (`+oauthProviderColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		link.ID, link.UserID, link.Provider, link.ProviderUserID, email, link.CreatedAt,
	)
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s identity %s is already linked: %w", link.Provider, link.ProviderUserID, ErrDuplicateOAuthProvider)
	case err != nil:
		return fmt.Errorf("failed to link %s identity: %w", link.Provider, err)
	}

	return nil
}

// GetByProvider resolves an external identity to its link
func (r *oauthProviderRepository) GetByProvider(ctx context.Context, provider, providerUserID string) (*domain.OAuthProvider, error) {
	row := r.db.DB.QueryRowContext(ctx,
		`SELECT `+oauthProviderColumns+` FROM oauth_providers WHERE provider = $1 AND provider_user_id = $2`,
		provider, providerUserID,
	)

	link, err := scanOAuthProvider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no %s link for %s: %w", provider, providerUserID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s link: %w", provider, err)
	}

	return link, nil
}

// GetByUserID lists a user's links, newest first. A user without links gets an empty slice.
func (r *oauthProviderRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.OAuthProvider, error) {
	rows, err := r.db.DB.QueryContext(ctx,
		`SELECT `+oauthProviderColumns+` FROM oauth_providers WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list links for user %s: %w", userID, err)
	}
	defer rows.Close()

	links := []*domain.OAuthProvider{}
	for rows.Next() {
		link, err := scanOAuthProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

func scanOAuthProvider(row rowScanner) (*domain.OAuthProvider, error) {
	var (
		link  domain.OAuthProvider
		email sql.NullString
	)

	if err := row.Scan(&link.ID, &link.UserID, &link.Provider, &link.ProviderUserID, &email, &link.CreatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		link.Email = &email.String
	}

	return &link, nil
}
