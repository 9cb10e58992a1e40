// Package routing resolves inbound hostnames to tenant usernames for the
// host router.
package routing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DomainLookup is the directory-side reverse lookup.
type DomainLookup interface {
	LookupDomain(ctx context.Context, hostname string) (string, error)
}

// Cache is an optional short-TTL cache in front of the directory lookup.
// *redis.DomainCache satisfies this interface.
type Cache interface {
	Get(ctx context.Context, hostname string) (string, bool, error)
	Set(ctx context.Context, hostname, username string) error
}

// CachedResolver answers hostname → username, consulting the cache first.
// Cache failures degrade to a direct directory lookup; they never fail the
// resolution themselves, preserving the router's fail-open behavior.
type CachedResolver struct {
	directory DomainLookup
	cache     Cache // nil disables caching
}

func NewCachedResolver(directory DomainLookup, cache Cache) *CachedResolver {
	return &CachedResolver{directory: directory, cache: cache}
}

// Lookup resolves hostname to the owning username. Returns
// domain.ErrNotFound (wrapped) when no tenant holds the hostname.
func (r *CachedResolver) Lookup(ctx context.Context, hostname string) (string, error) {
	if r.cache != nil {
		username, ok, err := r.cache.Get(ctx, hostname)
		if err != nil {
			log.Warn().Err(err).Str("hostname", hostname).Msg("routing: domain cache read failed")
		} else if ok {
			return username, nil
		}
	}

	username, err := r.directory.LookupDomain(ctx, hostname)
	if err != nil {
		return "", fmt.Errorf("routing.CachedResolver.Lookup: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, hostname, username); err != nil {
			log.Warn().Err(err).Str("hostname", hostname).Msg("routing: domain cache write failed")
		}
	}

	return username, nil
}
