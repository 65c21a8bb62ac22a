package repository

import (
	"testing"
	"time"

	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/DATA-DOG/go-sqlmock"
)

func setupMockDB(t *testing.T) (*database.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return database.NewPostgresFromDB(db), mock
}

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

var userRowColumns = []string{
	"id", "first_name", "last_name", "email", "password_hash", "phone_number", "address", "city",
	"country", "zip", "age", "role", "is_verified", "verification_token", "reset_password_token",
	"reset_password_token_expiry", "created_at", "updated_at",
}

var propertyRowColumns = []string{
	"id", "sold_date", "property_type", "address", "city", "state", "zip", "price", "beds", "baths",
	"square_feet", "lot_size", "year_built", "days_on_market", "monthly_hoa", "mls_number", "identifier",
	"latitude", "longitude", "description", "image_url", "comments", "upvotes", "downvotes",
	"created_at", "updated_at",
}
