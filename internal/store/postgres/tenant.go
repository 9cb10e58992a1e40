package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foliohq/folio/internal/domain"
)

// uniqueViolation is the SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

type TenantRepo struct {
	pool *pgxpool.Pool
}

func NewTenantRepo(pool *pgxpool.Pool) *TenantRepo {
	return &TenantRepo{pool: pool}
}

func (r *TenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tenants (id, username, headline, about, skills, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Username, t.Headline, t.About, t.Skills, t.CreatedAt, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tenantRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}

	return nil
}

func (r *TenantRepo) GetByUsername(ctx context.Context, username string) (*domain.Tenant, error) {
	var (
		t            domain.Tenant
		customDomain *string
	)

	err := r.pool.QueryRow(ctx,
		`SELECT id, username, custom_domain, domain_verified, headline, about, skills, created_at, updated_at
		 FROM tenants WHERE username = $1`,
		username,
	).Scan(&t.ID, &t.Username, &customDomain, &t.DomainVerified, &t.Headline, &t.About, &t.Skills, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tenantRepo.GetByUsername: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.GetByUsername: %w", err)
	}

	if customDomain != nil {
		t.CustomDomain = *customDomain
	}

	return &t, nil
}

func (r *TenantRepo) UpdateProfile(ctx context.Context, t *domain.Tenant) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tenants SET headline = $1, about = $2, skills = $3, updated_at = now()
		 WHERE username = $4`,
		t.Headline, t.About, t.Skills, t.Username,
	)
	if err != nil {
		return fmt.Errorf("tenantRepo.UpdateProfile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenantRepo.UpdateProfile: %w", domain.ErrNotFound)
	}

	return nil
}

// LookupDomain is the request hot path: a single lookup against the unique
// index on custom_domain.
func (r *TenantRepo) LookupDomain(ctx context.Context, hostname string) (string, error) {
	var username string

	err := r.pool.QueryRow(ctx,
		`SELECT username FROM tenants WHERE custom_domain = $1`,
		hostname,
	).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("tenantRepo.LookupDomain: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("tenantRepo.LookupDomain: %w", err)
	}

	return username, nil
}

// BindDomain sets or clears the tenant's custom domain in one statement.
// The unique index on custom_domain enforces the one-owner invariant; a
// conflicting bind surfaces as domain.ErrDomainTaken.
func (r *TenantRepo) BindDomain(ctx context.Context, username, dom string) error {
	var customDomain *string
	if dom != "" {
		customDomain = &dom
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE tenants SET custom_domain = $1, domain_verified = false, updated_at = now()
		 WHERE username = $2`,
		customDomain, username,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tenantRepo.BindDomain %q: %w", dom, domain.ErrDomainTaken)
	}
	if err != nil {
		return fmt.Errorf("tenantRepo.BindDomain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenantRepo.BindDomain: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TenantRepo) SetDomainVerified(ctx context.Context, username string, verified bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE tenants SET domain_verified = $1 WHERE username = $2`,
		verified, username,
	)
	if err != nil {
		return fmt.Errorf("tenantRepo.SetDomainVerified: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
