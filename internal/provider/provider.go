// Package provider defines the narrow contract with the external domain
// hosting provider. All operations are scoped to the one shared hosting
// project configured at client construction; no call ever targets an
// arbitrary project.
package provider

import (
	"context"
	"errors"
)

// Sentinel errors returned by Client implementations.
var (
	// ErrDomainClaimed means another provider account already owns the domain.
	ErrDomainClaimed = errors.New("provider: domain claimed by another account")

	// ErrInvalidCredentials means the API token or project ID is rejected.
	ErrInvalidCredentials = errors.New("provider: invalid credentials")

	// ErrUnavailable covers transient failures: network errors, timeouts and
	// 5xx responses. A timed-out attach must be treated as unavailable, never
	// assumed to have succeeded.
	ErrUnavailable = errors.New("provider: unavailable")
)

// Attachment is the provider's record for a domain on the shared project.
// The provider is the source of truth for DNS/TLS verification state; the
// tenant directory only stores ownership intent.
type Attachment struct {
	Domain              string
	Verified            bool
	MisconfiguredReason string // empty when verified or unknown
}

// Client is the domain-hosting provider API, scoped to one shared project.
type Client interface {
	// Attach registers the domain against the shared project.
	Attach(ctx context.Context, domain string) (*Attachment, error)

	// Detach removes the domain from the shared project. Detaching an
	// already-detached or unknown domain is success: the desired end state
	// (domain not attached) already holds.
	Detach(ctx context.Context, domain string) error

	// Status returns the current verification state without side effects.
	// Safe to call at arbitrary frequency.
	Status(ctx context.Context, domain string) (*Attachment, error)
}
