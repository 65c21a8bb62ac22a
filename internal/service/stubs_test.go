package service

import (
	"context"
	"sync"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	err   error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *memoryUserRepo) GetByVerificationToken(_ context.Context, email, token string) (*domain.User, error) {
	return r.find(func(u domain.User) bool {
		return u.Email == email && u.VerificationToken != "" && u.VerificationToken == token
	})
}

func (r *memoryUserRepo) GetByResetToken(_ context.Context, email, token string, now time.Time) (*domain.User, error) {
	return r.find(func(u domain.User) bool {
		return u.Email == email && u.ResetPasswordToken != "" && u.ResetPasswordToken == token &&
			u.ResetPasswordTokenExpiry != nil && u.ResetPasswordTokenExpiry.After(now)
	})
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memoryOAuthRepo struct {
	mu    sync.Mutex
	links []domain.OAuthProvider
}

func (r *memoryOAuthRepo) Create(_ context.Context, provider *domain.OAuthProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, link := range r.links {
		if link.Provider == provider.Provider && link.ProviderUserID == provider.ProviderUserID {
			return repository.ErrDuplicateOAuthProvider
		}
	}
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	r.links = append(r.links, *provider)
	return nil
}

func (r *memoryOAuthRepo) GetByProvider(_ context.Context, provider, providerUserID string) (*domain.OAuthProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, link := range r.links {
		if link.Provider == provider && link.ProviderUserID == providerUserID {
			l := link
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryOAuthRepo) GetByUserID(_ context.Context, userID string) ([]*domain.OAuthProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.OAuthProvider
	for _, link := range r.links {
		if link.UserID == userID {
			l := link
			out = append(out, &l)
		}
	}
	return out, nil
}

type memoryPropertyRepo struct {
	mu         sync.Mutex
	properties []domain.Property
}

func clone(p domain.Property) *domain.Property {
	p.Comments = append([]domain.Comment{}, p.Comments...)
	return &p
}

func (r *memoryPropertyRepo) Create(_ context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	r.properties = append(r.properties, *clone(*property))
	return nil
}

func (r *memoryPropertyRepo) GetByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.properties {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryPropertyRepo) Update(_ context.Context, property *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.properties {
		if r.properties[i].ID == property.ID {
			r.properties[i] = *clone(*property)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryPropertyRepo) List(_ context.Context, offset, limit int) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Property{}
	for i := offset; i < len(r.properties) && i < offset+limit; i++ {
		out = append(out, clone(r.properties[i]))
	}
	return out, nil
}

func (r *memoryPropertyRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.properties), nil
}

func (r *memoryPropertyRepo) Search(_ context.Context, criteria domain.SearchCriteria) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Property{}
	for _, p := range r.properties {
		if criteria.Zip != 0 && p.Zip != criteria.Zip {
			continue
		}
		if criteria.City != "" && p.City != criteria.City {
			continue
		}
		if criteria.Address != "" && p.Address != criteria.Address {
			continue
		}
		out = append(out, clone(p))
	}
	return out, nil
}

type sentMail struct {
	kind  string
	email string
	token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, email, token string) error {
	return m.record("verify", email, token)
}

func (m *fakeMailer) SendPasswordResetEmail(_ context.Context, email, token string) error {
	return m.record("reset", email, token)
}

func (m *fakeMailer) record(kind, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{kind: kind, email: email, token: token})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func fakeProperty(city string) *domain.Property {
	return &domain.Property{
		PropertyType: "Single Family Residential",
		Address:      gofakeit.Street(),
		City:         city,
		State:        gofakeit.StateAbr(),
		Zip:          gofakeit.Number(10000, 99999),
		Price:        gofakeit.Price(100000, 900000),
		Beds:         gofakeit.Number(1, 6),
		Baths:        float64(gofakeit.Number(1, 4)),
		SquareFeet:   gofakeit.Number(600, 4000),
		YearBuilt:    gofakeit.Number(1950, 2023),
		Latitude:     gofakeit.Latitude(),
		Longitude:    gofakeit.Longitude(),
		Description:  gofakeit.Sentence(8),
	}
}
