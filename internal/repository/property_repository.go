package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/google/uuid"
)

const propertyColumns = `id, sold_date, property_type, address, city, state, zip, price, beds, baths,
	square_feet, lot_size, year_built, days_on_market, monthly_hoa, mls_number, identifier,
	latitude, longitude, description, image_url, comments, upvotes, downvotes, created_at, updated_at`

// propertyRepository implements PropertyRepository interface
type propertyRepository struct {
	db *database.Postgres
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *database.Postgres) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create inserts a listing along with its comments and counters
func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.Comments == nil {
		property.Comments = []domain.Comment{}
	}

	now := time.Now()
	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}
	if property.UpdatedAt.IsZero() {
		property.UpdatedAt = now
	}

	comments, err := json.Marshal(property.Comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}

	_, err = r.db.DB.ExecContext(ctx, query,
		property.ID,
		property.SoldDate,
		property.PropertyType,
		property.Address,
		property.City,
		property.State,
		property.Zip,
		property.Price,
		property.Beds,
		property.Baths,
		property.SquareFeet,
		property.LotSize,
		property.YearBuilt,
		property.DaysOnMarket,
		property.MonthlyHOA,
		property.MLSNumber,
		property.Identifier,
		property.Latitude,
		property.Longitude,
		property.Description,
		property.ImageURL,
		string(comments),
		property.Upvotes,
		property.Downvotes,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

// GetByID retrieves a property by ID
func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("property with id %s not found: %w", id, ErrNotFound)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property by id: %w", err)
	}

	return property, nil
}

// Update rewrites the whole document. Concurrent writers overwrite each other.
func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET sold_date = $2, property_type = $3, address = $4, city = $5, state = $6, zip = $7,
			price = $8, beds = $9, baths = $10, square_feet = $11, lot_size = $12, year_built = $13,
			days_on_market = $14, monthly_hoa = $15, mls_number = $16, identifier = $17,
			latitude = $18, longitude = $19, description = $20, image_url = $21, comments = $22,
			upvotes = $23, downvotes = $24, updated_at = $25
		WHERE id = $1
	`

	if property.Comments == nil {
		property.Comments = []domain.Comment{}
	}

	comments, err := json.Marshal(property.Comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}

	property.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		property.ID,
		property.SoldDate,
		property.PropertyType,
		property.Address,
		property.City,
		property.State,
		property.Zip,
		property.Price,
		property.Beds,
		property.Baths,
		property.SquareFeet,
		property.LotSize,
		property.YearBuilt,
		property.DaysOnMarket,
		property.MonthlyHOA,
		property.MLSNumber,
		property.Identifier,
		property.Latitude,
		property.Longitude,
		property.Description,
		property.ImageURL,
		string(comments),
		property.Upvotes,
		property.Downvotes,
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("property with id %s not found: %w", property.ID, ErrNotFound)
	}

	return nil
}

// List returns one page of properties in insertion order
func (r *propertyRepository) List(ctx context.Context, offset, limit int) ([]*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.DB.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	return collectProperties(rows)
}

// Count returns the total number of properties
func (r *propertyRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return total, nil
}

// Search ANDs together the equality filters that are set
func (r *propertyRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Property, error) {
	var (
		conditions []string
		args       []any
	)

	if criteria.Zip != 0 {
		args = append(args, criteria.Zip)
		conditions = append(conditions, fmt.Sprintf("zip = $%d", len(args)))
	}
	if criteria.City != "" {
		args = append(args, criteria.City)
		conditions = append(conditions, fmt.Sprintf("city = $%d", len(args)))
	}
	if criteria.Address != "" {
		args = append(args, criteria.Address)
		conditions = append(conditions, fmt.Sprintf("address = $%d", len(args)))
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	defer rows.Close()

	return collectProperties(rows)
}

func collectProperties(rows *sql.Rows) ([]*domain.Property, error) {
	properties := []*domain.Property{}
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return properties, nil
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	property := &domain.Property{}
	var comments []byte

	err := row.Scan(
		&property.ID,
		&property.SoldDate,
		&property.PropertyType,
		&property.Address,
		&property.City,
		&property.State,
		&property.Zip,
		&property.Price,
		&property.Beds,
		&property.Baths,
		&property.SquareFeet,
		&property.LotSize,
		&property.YearBuilt,
		&property.DaysOnMarket,
		&property.MonthlyHOA,
		&property.MLSNumber,
		&property.Identifier,
		&property.Latitude,
		&property.Longitude,
		&property.Description,
		&property.ImageURL,
		&comments,
		&property.Upvotes,
		&property.Downvotes,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	property.Comments = []domain.Comment{}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &property.Comments); err != nil {
			return nil, fmt.Errorf("failed to decode comments: %w", err)
		}
	}

	return property, nil
}
