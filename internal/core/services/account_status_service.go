package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	portsrepo "github.com/SscSPs/school_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/patrickmn/go-cache"
)

type accountStatusService struct {
	BaseService
	userRepo portsrepo.UserReader
	cache    *cache.Cache
}

// NewAccountStatusService checks accounts against the users table, remembering each answer
// for ttl.
func NewAccountStatusService(userRepo portsrepo.UserReader, ttl time.Duration) portssvc.AccountStatusSvc {
	return &accountStatusService{
		userRepo: userRepo,
		cache:    cache.New(ttl, 2*ttl),
	}
}

var _ portssvc.AccountStatusSvc = (*accountStatusService)(nil)

func (s *accountStatusService) IsActive(ctx context.Context, userID string) (bool, error) {
	key := "account:" + userID
	if cached, found := s.cache.Get(key); found {
		return cached.(bool), nil
	}

	active := false
	user, err := s.userRepo.FindUserByID(ctx, userID)
	switch {
	case err == nil:
		active = user.IsActive
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		s.LogError(ctx, err, "Failed to load account status", slog.String("user_id", userID))
		return false, err
	}

	s.cache.Set(key, active, cache.DefaultExpiration)
	return active, nil
}
