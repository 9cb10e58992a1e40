package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound = errors.New("domain: not found")
	ErrConflict = errors.New("domain: conflict")

	// ErrInvalidDomain rejects a malformed custom domain before any provider
	// call is made.
	ErrInvalidDomain = errors.New("domain: invalid domain name")

	// ErrDomainTaken covers both the provider's 409 and the directory's unique
	// index conflict; callers surface one consistent "domain unavailable"
	// message for either source.
	ErrDomainTaken = errors.New("domain: domain already taken")

	// ErrProviderUnavailable marks a transient hosting-provider failure. The
	// caller may retry later; the directory was not modified.
	ErrProviderUnavailable = errors.New("domain: hosting provider unavailable")

	// ErrCredentialsMisconfigured marks an operator-level provider credential
	// problem. Not user-recoverable; alerts operators instead.
	ErrCredentialsMisconfigured = errors.New("domain: provider credentials misconfigured")
)
