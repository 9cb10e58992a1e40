package v1

import (
	"context"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/provider"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Tenants() domain.TenantRepository
}

// DomainService abstracts the domain lifecycle manager for handler testing.
// *domains.Service satisfies this interface.
type DomainService interface {
	SetCustomDomain(ctx context.Context, username, requested string) error
	RefreshStatus(ctx context.Context, dom string) (*provider.Attachment, error)
}
