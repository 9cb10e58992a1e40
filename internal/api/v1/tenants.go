package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/foliohq/folio/internal/auth"
	"github.com/foliohq/folio/internal/domain"
)

type CreateTenantInput struct {
	Body struct {
		Username string `json:"username" minLength:"3" maxLength:"30" doc:"Unique tenant username, immutable after creation"`
	}
}

type CreateTenantOutput struct {
	Body struct {
		Tenant      *domain.Tenant `json:"tenant"`
		AccessToken string         `json:"access_token"`
	}
}

// RegisterTenantRoutes wires the signup endpoint. Full OAuth sign-in lives
// in front of this service; signup here issues the initial bearer token.
func RegisterTenantRoutes(api huma.API, store DataStore, jwtSecret string, tokenTTL time.Duration) {
	huma.Register(api, huma.Operation{
		OperationID: "create-tenant",
		Method:      http.MethodPost,
		Path:        "/tenants",
		Summary:     "Create a new tenant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *CreateTenantInput) (*CreateTenantOutput, error) {
		if !domain.ValidUsername(input.Body.Username) {
			return nil, huma.Error400BadRequest("invalid username")
		}

		now := time.Now()
		t := &domain.Tenant{
			ID:        uuid.New(),
			Username:  input.Body.Username,
			Skills:    []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Tenants().Create(ctx, t); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("username already taken")
			}
			return nil, huma.Error500InternalServerError("failed to create tenant", err)
		}

		token, err := auth.IssueAccessToken(jwtSecret, t.Username, tokenTTL)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to issue token", err)
		}

		out := &CreateTenantOutput{}
		out.Body.Tenant = t
		out.Body.AccessToken = token
		return out, nil
	})
}
