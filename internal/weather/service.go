package weather

import (
	"context"
	"strings"
	"time"

	"butler-bot/internal/cache"
)

// Service serves weather lookups through a TTL cache so repeated queries for
// the same city within the cache window do not hit the provider again.
// Failed lookups are never cached.
type Service struct {
	client *Client
	cache  *cache.Cache
	now    func() time.Time
}

// NewService wraps client with the given cache.
func NewService(client *Client, c *cache.Cache) *Service {
	return &Service{client: client, cache: c, now: time.Now}
}

// Configured reports whether the underlying client has an API key.
func (s *Service) Configured() bool { return s.client.Configured() }

// Lookup returns the formatted weather string for a city, served from cache
// when fresh. Cache keys are the case-folded, trimmed city name so "London"
// and "london" share an entry.
func (s *Service) Lookup(ctx context.Context, city string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	now := s.now()

	if cached, ok := s.cache.Get(key, now); ok {
		return cached, nil
	}

	report, err := s.client.Current(ctx, city)
	if err != nil {
		return "", err
	}

	formatted := report.Format()
	s.cache.Put(key, formatted, now)
	return formatted, nil
}
