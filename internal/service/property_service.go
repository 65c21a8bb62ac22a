package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/BilawalArif/redfin-clone/pkg/observability"
	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// propertyService implements PropertyService interface.
// Every mutation reads the document, changes it in memory and writes it
// back whole, with no lock or transaction; concurrent writers can lose updates.
type propertyService struct {
	propertyRepo repository.PropertyRepository
	metrics      *observability.Metrics
	now          func() time.Time
}

// NewPropertyService creates a new property service
func NewPropertyService(propertyRepo repository.PropertyRepository, metrics *observability.Metrics) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		metrics:      metrics,
		now:          time.Now,
	}
}

// GetProperty loads a single listing
func (s *propertyService) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("Property not found")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to get property: %w", err))
	}
	return property, nil
}

// Paginate returns one page of listings with the totals needed to page through them
func (s *propertyService) Paginate(ctx context.Context, page, limit int) (*dto.PaginatedProperties, error) {
	if page < 1 {
		return nil, domain.NewValidationError("page must be at least 1")
	}
	if limit < 1 || limit > MaxLimit {
		return nil, domain.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}

	total, err := s.propertyRepo.Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	properties, err := s.propertyRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &dto.PaginatedProperties{
		Properties:  properties,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// Search returns listings matching every filter that is set
func (s *propertyService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Property, error) {
	if criteria.Zip < 0 {
		return nil, domain.NewValidationError("zip must not be negative")
	}

	properties, err := s.propertyRepo.Search(ctx, criteria)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return properties, nil
}

// AddComment appends a comment to the listing
func (s *propertyService) AddComment(ctx context.Context, id, text string) (*domain.Property, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	property.Comments = append(property.Comments, domain.Comment{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err := s.save(ctx, property); err != nil {
		return nil, err
	}
	s.metrics.RecordCommentMutation(ctx, "add")

	return property, nil
}

// EditComment replaces the text of one comment
func (s *propertyService) EditComment(ctx context.Context, id, commentID, text string) (*domain.Property, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := property.FindComment(commentID)
	if idx < 0 {
		return nil, domain.NewNotFoundError("Comment not found")
	}

	property.Comments[idx].Text = text
	property.Comments[idx].UpdatedAt = s.now()

	if err := s.save(ctx, property); err != nil {
		return nil, err
	}
	s.metrics.RecordCommentMutation(ctx, "edit")

	return property, nil
}

// DeleteComment removes one comment
func (s *propertyService) DeleteComment(ctx context.Context, id, commentID string) (*domain.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := property.FindComment(commentID)
	if idx < 0 {
		return nil, domain.NewNotFoundError("Comment not found")
	}

	property.Comments = append(property.Comments[:idx], property.Comments[idx+1:]...)

	if err := s.save(ctx, property); err != nil {
		return nil, err
	}
	s.metrics.RecordCommentMutation(ctx, "delete")

	return property, nil
}

// Upvote increments the upvote counter
func (s *propertyService) Upvote(ctx context.Context, id string) (*domain.Property, error) {
	return s.vote(ctx, id, "up")
}

// Downvote increments the downvote counter
func (s *propertyService) Downvote(ctx context.Context, id string) (*domain.Property, error) {
	return s.vote(ctx, id, "down")
}

func (s *propertyService) vote(ctx context.Context, id, direction string) (*domain.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if direction == "up" {
		property.Upvotes++
	} else {
		property.Downvotes++
	}

	if err := s.save(ctx, property); err != nil {
		return nil, err
	}
	s.metrics.RecordVote(ctx, direction)

	return property, nil
}

// Import inserts listings in order and stops at the first failure
func (s *propertyService) Import(ctx context.Context, properties []*domain.Property) (int, error) {
	for i, property := range properties {
		if property.Upvotes < 0 || property.Downvotes < 0 {
			return i, domain.NewValidationError(fmt.Sprintf("property %d has negative vote counters", i))
		}
		if err := s.propertyRepo.Create(ctx, property); err != nil {
			return i, domain.NewInternalError(fmt.Errorf("failed to import property %d: %w", i, err))
		}
	}
	return len(properties), nil
}

func (s *propertyService) save(ctx context.Context, property *domain.Property) error {
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFoundError("Property not found")
		}
		return domain.NewInternalError(fmt.Errorf("failed to save property: %w", err))
	}
	return nil
}
