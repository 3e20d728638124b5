// Package watchlist stores shareable film lists under short sync codes.
//
// A list is created anonymously and addressed only by its code.  Lists
// expire after a fixed time without writes; reading does not extend them.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/festival-program/internal/metrics"
)

var (
	// ErrNotFound is returned for unknown or expired codes.
	ErrNotFound = errors.New("watchlist not found")

	// ErrInvalidCode is returned when a code is not CodeLength symbols
	// from the code alphabet.
	ErrInvalidCode = errors.New("invalid watchlist code")

	// ErrTooManyFilms is returned when a list exceeds MaxFilms ids.
	ErrTooManyFilms = errors.New("too many films in watchlist")

	// ErrCodeSpace is returned when no free code was found after
	// maxCreateAttempts tries.
	ErrCodeSpace = errors.New("could not allocate watchlist code")
)

// MaxFilms bounds the size of one list.
const MaxFilms = 200

const maxCreateAttempts = 5

// List is a stored watchlist.
type List struct {
	Code      string    `json:"code"`
	Films     []string  `json:"films"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Backend is the storage under a Service.  Implementations must apply
// ttl atomically with the write.
type Backend interface {
	// PutNew stores films under code unless the code is taken.
	PutNew(ctx context.Context, code string, films []string, ttl time.Duration) (bool, error)
	// Replace overwrites an existing code and resets its ttl.  It
	// reports false when the code does not exist.
	Replace(ctx context.Context, code string, films []string, ttl time.Duration) (bool, error)
	// Get returns the films and expiry of code, or ErrNotFound.
	Get(ctx context.Context, code string) ([]string, time.Time, error)
}

// Service validates input and allocates codes on top of a Backend.
type Service struct {
	backend Backend
	ttl     time.Duration
	newCode func() (string, error)
	now     func() time.Time
}

// NewService returns a service whose lists live for ttl after each write.
func NewService(b Backend, ttl time.Duration) *Service {
	return &Service{backend: b, ttl: ttl, newCode: NewCode, now: time.Now}
}

// Create stores films under a fresh code.
func (s *Service) Create(ctx context.Context, films []string) (List, error) {
	clean, err := CleanFilms(films)
	if err != nil {
		metrics.WatchlistOps.WithLabelValues("create", "invalid").Inc()
		return List{}, err
	}
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return List{}, fmt.Errorf("generate code: %w", err)
		}
		ok, err := s.backend.PutNew(ctx, code, clean, s.ttl)
		if err != nil {
			metrics.WatchlistOps.WithLabelValues("create", "error").Inc()
			return List{}, fmt.Errorf("store watchlist: %w", err)
		}
		if ok {
			metrics.WatchlistOps.WithLabelValues("create", "ok").Inc()
			return List{Code: code, Films: clean, ExpiresAt: s.now().Add(s.ttl).UTC()}, nil
		}
		log.Debug().Str("code", code).Int("attempt", attempt).Msg("watchlist code collision")
	}
	metrics.WatchlistOps.WithLabelValues("create", "error").Inc()
	return List{}, ErrCodeSpace
}

// Get returns the list stored under code.
func (s *Service) Get(ctx context.Context, code string) (List, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return List{}, err
	}
	films, exp, err := s.backend.Get(ctx, code)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrNotFound) {
			outcome = "not_found"
		}
		metrics.WatchlistOps.WithLabelValues("get", outcome).Inc()
		return List{}, err
	}
	metrics.WatchlistOps.WithLabelValues("get", "ok").Inc()
	return List{Code: code, Films: films, ExpiresAt: exp.UTC()}, nil
}

// Replace overwrites the list under code and restarts its lifetime.
func (s *Service) Replace(ctx context.Context, code string, films []string) (List, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return List{}, err
	}
	clean, err := CleanFilms(films)
	if err != nil {
		metrics.WatchlistOps.WithLabelValues("replace", "invalid").Inc()
		return List{}, err
	}
	ok, err := s.backend.Replace(ctx, code, clean, s.ttl)
	if err != nil {
		metrics.WatchlistOps.WithLabelValues("replace", "error").Inc()
		return List{}, fmt.Errorf("store watchlist: %w", err)
	}
	if !ok {
		metrics.WatchlistOps.WithLabelValues("replace", "not_found").Inc()
		return List{}, ErrNotFound
	}
	metrics.WatchlistOps.WithLabelValues("replace", "ok").Inc()
	return List{Code: code, Films: clean, ExpiresAt: s.now().Add(s.ttl).UTC()}, nil
}

// CleanFilms trims ids, drops empties and duplicates (keeping first
// position) and enforces MaxFilms.
func CleanFilms(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) > MaxFilms {
		return nil, ErrTooManyFilms
	}
	return out, nil
}
