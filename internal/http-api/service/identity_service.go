package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mimo/internal/http-api/repository"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// IdentityService resolves API keys to user ids.
type IdentityService interface {
	Authenticate(ctx context.Context, apiKey string) (int64, error)
}

type identityService struct {
	userRepo repository.UserRepository
	keys     *expirable.LRU[string, int64]
}

// NewIdentityService remembers resolved keys for ttl; ttl <= 0 disables the
// cache and every call hits the repository.
func NewIdentityService(userRepo repository.UserRepository, size int, ttl time.Duration) (IdentityService, error) {
	s := &identityService{userRepo: userRepo}
	if ttl > 0 {
		if size < 1 {
			return nil, fmt.Errorf("identity cache: size must be positive, got %d", size)
		}
		s.keys = expirable.NewLRU[string, int64](size, nil, ttl)
	}
	return s, nil
}

func (s *identityService) Authenticate(ctx context.Context, apiKey string) (int64, error) {
	if apiKey == "" {
		return 0, ErrUnauthorized
	}
	if s.keys != nil {
		if id, ok := s.keys.Get(apiKey); ok {
			return id, nil
		}
	}

	user, err := s.userRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUnauthorized
		}
		return 0, fmt.Errorf("authenticate: %w", err)
	}

	if s.keys != nil {
		s.keys.Add(apiKey, user.ID)
	}
	return user.ID, nil
}
