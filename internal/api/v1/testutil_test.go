package v1_test

import (
	"context"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/provider"
	"github.com/foliohq/folio/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the authenticated username for DoCtx
// ---------------------------------------------------------------------------

func userCtx(username string) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUsername, username)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	tenants domain.TenantRepository
}

func (m *mockDataStore) Tenants() domain.TenantRepository { return m.tenants }

// ---------------------------------------------------------------------------
// Mock TenantRepository
// ---------------------------------------------------------------------------

type mockTenantRepo struct {
	createFunc            func(ctx context.Context, t *domain.Tenant) error
	getByUsernameFunc     func(ctx context.Context, username string) (*domain.Tenant, error)
	updateProfileFunc     func(ctx context.Context, t *domain.Tenant) error
	lookupDomainFunc      func(ctx context.Context, hostname string) (string, error)
	bindDomainFunc        func(ctx context.Context, username, dom string) error
	setDomainVerifiedFunc func(ctx context.Context, username string, verified bool) error
}

func (m *mockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.createFunc(ctx, t)
}

func (m *mockTenantRepo) GetByUsername(ctx context.Context, username string) (*domain.Tenant, error) {
	return m.getByUsernameFunc(ctx, username)
}

func (m *mockTenantRepo) UpdateProfile(ctx context.Context, t *domain.Tenant) error {
	return m.updateProfileFunc(ctx, t)
}

func (m *mockTenantRepo) LookupDomain(ctx context.Context, hostname string) (string, error) {
	return m.lookupDomainFunc(ctx, hostname)
}

func (m *mockTenantRepo) BindDomain(ctx context.Context, username, dom string) error {
	return m.bindDomainFunc(ctx, username, dom)
}

func (m *mockTenantRepo) SetDomainVerified(ctx context.Context, username string, verified bool) error {
	return m.setDomainVerifiedFunc(ctx, username, verified)
}

// ---------------------------------------------------------------------------
// Mock DomainService
// ---------------------------------------------------------------------------

type mockDomainService struct {
	setCustomDomainFunc func(ctx context.Context, username, requested string) error
	refreshStatusFunc   func(ctx context.Context, dom string) (*provider.Attachment, error)
}

func (m *mockDomainService) SetCustomDomain(ctx context.Context, username, requested string) error {
	return m.setCustomDomainFunc(ctx, username, requested)
}

func (m *mockDomainService) RefreshStatus(ctx context.Context, dom string) (*provider.Attachment, error) {
	return m.refreshStatusFunc(ctx, dom)
}
