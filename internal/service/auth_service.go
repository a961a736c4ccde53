package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/auth"
	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/repository"
)

// tokenCachePrefix namespaces token entries in a shared cache.
const tokenCachePrefix = "token:"

// AuthService resolves access tokens to accounts, with an optional
// read-through cache in front of the user repository.
type AuthService struct {
	userRepo repository.UserRepository
	cache    repository.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService. cache may be nil, and a
// cacheTTL of zero disables caching entirely.
func NewAuthService(userRepo repository.UserRepository, cache repository.Cache, cacheTTL time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// cachedUser is the subset of account state worth caching per token.
// The password hash never enters the cache.
type cachedUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// ResolveToken maps an access token to its account. A token that matches
// no account yields ErrUnknownToken; a failing store yields
// ErrBackendUnavailable. Callers are expected to treat both as a
// rejection.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, auth.ErrMissingToken
	}

	if user, ok := s.cacheGet(ctx, token); ok {
		return user, nil
	}

	user, err := s.userRepo.GetByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, auth.ErrUnknownToken
		}
		s.logger.Error().Err(err).Msg("failed to resolve access token")
		return nil, auth.ErrBackendUnavailable
	}

	s.cacheSet(ctx, token, user)

	return user, nil
}

// InvalidateToken drops a token from the cache. Used when an account is
// deleted so the token stops resolving within a request, not a TTL.
func (s *AuthService) InvalidateToken(ctx context.Context, token string) {
	if !s.cacheEnabled() {
		return
	}

	if err := s.cache.Delete(ctx, tokenCachePrefix+token); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate cached token")
	}
}

func (s *AuthService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

// cacheGet returns the cached account for a token. Any cache failure is
// treated as a miss so the repository stays authoritative.
func (s *AuthService) cacheGet(ctx context.Context, token string) (*domain.User, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}

	data, err := s.cache.Get(ctx, tokenCachePrefix+token)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("token cache read failed")
		}
		return nil, false
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt token cache entry")
		return nil, false
	}

	return &domain.User{
		ID:          cached.ID,
		Username:    cached.Username,
		Email:       cached.Email,
		AccessToken: cached.AccessToken,
	}, true
}

// cacheSet stores the account for a token, best effort.
func (s *AuthService) cacheSet(ctx context.Context, token string, user *domain.User) {
	if !s.cacheEnabled() {
		return
	}

	data, err := json.Marshal(cachedUser{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		AccessToken: user.AccessToken,
	})
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, tokenCachePrefix+token, data, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("token cache write failed")
	}
}

// Ensure AuthService implements auth.TokenResolver.
var _ auth.TokenResolver = (*AuthService)(nil)
