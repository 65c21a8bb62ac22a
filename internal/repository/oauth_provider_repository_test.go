package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oauthRowColumns = []string{"id", "user_id", "provider", "provider_user_id", "email", "created_at"}

func TestOAuthProviderRepository_CreateDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOAuthProviderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO oauth_providers`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &domain.OAuthProvider{UserID: testUserID, Provider: "google", ProviderUserID: "sub-1"})
	assert.ErrorIs(t, err, ErrDuplicateOAuthProvider)
}

func TestOAuthProviderRepository_GetByProvider(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOAuthProviderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE provider = $1 AND provider_user_id = $2`)).
		WithArgs("google", "sub-1").
		WillReturnRows(sqlmock.NewRows(oauthRowColumns).
			AddRow("c3f1a9de-0000-4000-8000-000000000001", testUserID, "google", "sub-1", "a@b.com", fixedTime))

	link, err := repo.GetByProvider(context.Background(), "google", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, testUserID, link.UserID)
	require.NotNil(t, link.Email)
	assert.Equal(t, "a@b.com", *link.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOAuthProviderRepository_GetByProviderNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOAuthProviderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM oauth_providers`)).
		WillReturnRows(sqlmock.NewRows(oauthRowColumns))

	_, err := repo.GetByProvider(context.Background(), "google", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOAuthProviderRepository_GetByUserID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOAuthProviderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1`)).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(oauthRowColumns).
			AddRow("c3f1a9de-0000-4000-8000-000000000001", testUserID, "google", "sub-1", nil, fixedTime))

	links, err := repo.GetByUserID(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Nil(t, links[0].Email)
}
