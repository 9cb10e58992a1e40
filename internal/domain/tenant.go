package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tenant is one platform user: a unique username published under the shared
// platform domain, plus an optional custom domain routed to the same profile.
type Tenant struct {
	ID             uuid.UUID
	Username       string // immutable after creation
	CustomDomain   string // empty when no custom domain is bound
	DomainVerified bool   // advisory cache of the provider's verification state
	Headline       string
	About          string
	Skills         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TenantRepository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByUsername(ctx context.Context, username string) (*Tenant, error)
	UpdateProfile(ctx context.Context, t *Tenant) error

	// LookupDomain resolves a custom hostname to its owning username.
	// Runs on the request hot path; implementations must use an indexed lookup.
	LookupDomain(ctx context.Context, hostname string) (string, error)

	// BindDomain atomically sets the tenant's custom domain. An empty domain
	// clears the binding (stored as NULL). Returns ErrDomainTaken when the
	// domain is already bound to a different tenant.
	BindDomain(ctx context.Context, username, domain string) error

	// SetDomainVerified updates the advisory verification flag only.
	SetDomainVerified(ctx context.Context, username string, verified bool) error
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// domainLabelRe matches a single DNS label: alphanumeric at the edges,
// hyphens allowed inside, max 63 chars.
var domainLabelRe = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

var tldRe = regexp.MustCompile(`^[a-z]{2,}$`)

// ValidUsername reports whether s is an acceptable tenant username.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// NormalizeDomain lowercases a hostname and strips any trailing dot so that
// "Alice.Dev." and "alice.dev" compare equal.
func NormalizeDomain(s string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
}

// ValidDomainName reports whether s (already normalized) is a syntactically
// valid registrable domain: at least two labels, each within DNS label
// grammar, alphabetic TLD, total length within 253 chars.
func ValidDomainName(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}

	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if !domainLabelRe.MatchString(label) {
			return false
		}
	}

	return tldRe.MatchString(labels[len(labels)-1])
}
