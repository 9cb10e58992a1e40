// Package domains orchestrates custom-domain changes: it keeps the tenant
// directory's binding and the hosting provider's attachment state mutually
// consistent.
package domains

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/provider"
)

// Invalidator drops a hostname from the routing cache after a binding
// change. *redis.DomainCache satisfies this interface.
type Invalidator interface {
	Invalidate(ctx context.Context, hostname string) error
}

// Alerter notifies operators of non-user-recoverable failures such as
// rejected provider credentials.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// Service is the domain lifecycle manager. Operations for the same tenant
// are serialized through a keyed mutex; different tenants proceed fully in
// parallel.
type Service struct {
	tenants   domain.TenantRepository
	provider  provider.Client
	cache     Invalidator // nil when no cache is configured
	alerts    Alerter     // nil when operator alerting is not configured
	appDomain string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(tenants domain.TenantRepository, prov provider.Client, cache Invalidator, alerts Alerter, appDomain string) *Service {
	return &Service{
		tenants:   tenants,
		provider:  prov,
		cache:     cache,
		alerts:    alerts,
		appDomain: domain.NormalizeDomain(appDomain),
		locks:     make(map[string]*sync.Mutex),
	}
}

// SetCustomDomain changes a tenant's custom domain. An empty requested
// domain clears the binding. The provider attach happens before the local
// commit, so the directory never records a domain the provider rejected;
// the previous domain is detached only after the new binding is committed,
// and a failed detach is logged rather than escalated.
func (s *Service) SetCustomDomain(ctx context.Context, username, requested string) error {
	lock := s.lockFor(username)
	lock.Lock()
	defer lock.Unlock()

	t, err := s.tenants.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("domains.Service.SetCustomDomain: %w", err)
	}

	requested = domain.NormalizeDomain(requested)
	if requested == t.CustomDomain {
		return nil
	}

	if requested != "" {
		if !domain.ValidDomainName(requested) || requested == s.appDomain {
			return fmt.Errorf("domains.Service.SetCustomDomain %q: %w", requested, domain.ErrInvalidDomain)
		}

		if _, err := s.provider.Attach(ctx, requested); err != nil {
			return fmt.Errorf("domains.Service.SetCustomDomain: attach: %w", s.mapProviderErr(ctx, err))
		}
	}

	if err := s.tenants.BindDomain(ctx, username, requested); err != nil {
		if requested != "" {
			// The provider accepted the attach but the local commit did not
			// land: either another tenant committed the domain first, or the
			// directory itself failed. Best-effort cleanup of the orphaned
			// attachment; the reported error stays the commit error either
			// way.
			if detachErr := s.provider.Detach(ctx, requested); detachErr != nil {
				log.Warn().Err(detachErr).Str("domain", requested).
					Msg("domains: cleanup detach after failed commit failed")
			}
		}
		return fmt.Errorf("domains.Service.SetCustomDomain: commit: %w", err)
	}

	s.invalidate(ctx, requested)

	if old := t.CustomDomain; old != "" && old != requested {
		if err := s.provider.Detach(ctx, old); err != nil {
			// A lingering stale attachment is a lower-severity defect than
			// failing the tenant's new domain.
			log.Warn().Err(err).Str("domain", old).Str("username", username).
				Msg("domains: detach of previous domain failed")
		}
		s.invalidate(ctx, old)
	}

	log.Info().Str("username", username).Str("domain", requested).Msg("domains: custom domain updated")

	return nil
}

// RefreshStatus is a passthrough to the provider's status check, plus a
// best-effort refresh of the advisory domain_verified flag. Callers must
// not gate SetCustomDomain success on it.
func (s *Service) RefreshStatus(ctx context.Context, dom string) (*provider.Attachment, error) {
	dom = domain.NormalizeDomain(dom)

	att, err := s.provider.Status(ctx, dom)
	if err != nil {
		return nil, fmt.Errorf("domains.Service.RefreshStatus: %w", s.mapProviderErr(ctx, err))
	}

	if username, lookupErr := s.tenants.LookupDomain(ctx, dom); lookupErr == nil {
		if setErr := s.tenants.SetDomainVerified(ctx, username, att.Verified); setErr != nil {
			log.Warn().Err(setErr).Str("username", username).Msg("domains: verified flag refresh failed")
		}
	}

	return att, nil
}

// mapProviderErr translates provider sentinels into the domain-layer
// taxonomy and raises an operator alert on credential failures.
func (s *Service) mapProviderErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, provider.ErrDomainClaimed):
		return domain.ErrDomainTaken
	case errors.Is(err, provider.ErrInvalidCredentials):
		log.Error().Err(err).Msg("domains: provider rejected credentials")
		if s.alerts != nil {
			s.alerts.Alert(ctx, "domain provider rejected API credentials; custom domain changes are failing")
		}
		return domain.ErrCredentialsMisconfigured
	case errors.Is(err, provider.ErrUnavailable):
		return domain.ErrProviderUnavailable
	default:
		return err
	}
}

func (s *Service) invalidate(ctx context.Context, hostname string) {
	if s.cache == nil || hostname == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, hostname); err != nil {
		log.Warn().Err(err).Str("hostname", hostname).Msg("domains: cache invalidation failed")
	}
}

// lockFor returns the mutex serializing lifecycle operations for username.
// Entries are never removed; the map is bounded by the number of distinct
// tenants that change domains over the process lifetime, which stays far
// below the point where a sweep would pay for itself.
func (s *Service) lockFor(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[username] = lock
	}
	return lock
}
