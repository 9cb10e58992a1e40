package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/server/middleware"
)

type SetDomainInput struct {
	Body struct {
		Domain string `json:"domain" maxLength:"253" doc:"Custom domain to bind, e.g. alice.dev"`
	}
}

type SetDomainOutput struct {
	Body *domain.Tenant
}

type ClearDomainOutput struct {
	Body *domain.Tenant
}

type DomainStatusInput struct {
	Domain string `query:"domain" required:"true" maxLength:"253" doc:"Domain to check"`
}

type DomainStatusOutput struct {
	Body struct {
		Verified bool   `json:"verified"`
		Error    string `json:"error,omitempty"`
	}
}

// RegisterDomainRoutes wires the custom-domain settings endpoints. All of
// them act on the authenticated tenant; the domain lifecycle manager owns
// the provider/directory ordering.
func RegisterDomainRoutes(api huma.API, store DataStore, svc DomainService) {
	huma.Register(api, huma.Operation{
		OperationID: "set-custom-domain",
		Method:      http.MethodPut,
		Path:        "/me/domain",
		Summary:     "Bind or change the tenant's custom domain",
		Tags:        []string{"Domains"},
	}, func(ctx context.Context, input *SetDomainInput) (*SetDomainOutput, error) {
		username, ok := middleware.UsernameFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := svc.SetCustomDomain(ctx, username, input.Body.Domain); err != nil {
			return nil, mapDomainErr(err)
		}

		t, err := store.Tenants().GetByUsername(ctx, username)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load tenant", err)
		}

		return &SetDomainOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-custom-domain",
		Method:      http.MethodDelete,
		Path:        "/me/domain",
		Summary:     "Remove the tenant's custom domain",
		Tags:        []string{"Domains"},
	}, func(ctx context.Context, _ *struct{}) (*ClearDomainOutput, error) {
		username, ok := middleware.UsernameFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := svc.SetCustomDomain(ctx, username, ""); err != nil {
			return nil, mapDomainErr(err)
		}

		t, err := store.Tenants().GetByUsername(ctx, username)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load tenant", err)
		}

		return &ClearDomainOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-domain-status",
		Method:      http.MethodGet,
		Path:        "/me/domain/status",
		Summary:     "Check a domain's verification state at the provider",
		Tags:        []string{"Domains"},
	}, func(ctx context.Context, input *DomainStatusInput) (*DomainStatusOutput, error) {
		if _, ok := middleware.UsernameFromContext(ctx); !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		att, err := svc.RefreshStatus(ctx, input.Domain)
		if err != nil {
			return nil, mapDomainErr(err)
		}

		out := &DomainStatusOutput{}
		out.Body.Verified = att.Verified
		out.Body.Error = att.MisconfiguredReason
		return out, nil
	})
}

// mapDomainErr translates the lifecycle error taxonomy into HTTP responses.
// Provider 409 and local uniqueness conflicts surface as one consistent
// "domain unavailable" message.
func mapDomainErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDomain):
		return huma.Error400BadRequest("invalid domain name")
	case errors.Is(err, domain.ErrDomainTaken):
		return huma.Error409Conflict("domain is not available")
	case errors.Is(err, domain.ErrProviderUnavailable):
		return huma.Error502BadGateway("domain provider is temporarily unavailable, try again later")
	case errors.Is(err, domain.ErrCredentialsMisconfigured):
		// Operator problem; the end user gets a generic failure.
		log.Error().Err(err).Msg("api: domain provider credentials misconfigured")
		return huma.Error500InternalServerError("domain changes are temporarily unavailable")
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("tenant not found")
	default:
		return huma.Error500InternalServerError("domain operation failed", err)
	}
}
