package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/dto"
	"github.com/BilawalArif/redfin-clone/internal/repository"
)

// userService implements UserService interface
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser loads a user by id
func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("User not found")
		}
		return nil, domain.NewInternalError(fmt.Errorf("failed to get user: %w", err))
	}
	return user, nil
}

// GetUserRole returns only the role of a user
func (s *userService) GetUserRole(ctx context.Context, id string) (domain.Role, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// UpdateProfile applies the non-nil fields of req to the user
func (s *userService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Zip != nil {
		if *req.Zip < 0 {
			return nil, domain.NewValidationError("zip must not be negative")
		}
		user.Zip = *req.Zip
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to update user: %w", err))
	}

	return user, nil
}
