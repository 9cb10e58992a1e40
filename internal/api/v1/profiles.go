package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foliohq/folio/internal/domain"
	"github.com/foliohq/folio/internal/server/middleware"
)

type GetProfileInput struct {
	Username string `path:"username" maxLength:"30" doc:"Tenant username"`
}

type GetProfileOutput struct {
	Body *domain.Tenant
}

type UpdateProfileInput struct {
	Body struct {
		Headline string   `json:"headline" maxLength:"255"`
		About    string   `json:"about" maxLength:"10000"`
		Skills   []string `json:"skills" maxItems:"100"`
	}
}

type UpdateProfileOutput struct {
	Body *domain.Tenant
}

// RegisterProfileRoutes wires the public profile read.
func RegisterProfileRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profiles/{username}",
		Summary:     "Get a tenant's public profile",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
		t, err := store.Tenants().GetByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to load profile", err)
		}

		return &GetProfileOutput{Body: t}, nil
	})
}

// RegisterMyProfileRoutes wires the authenticated profile update. Mounted
// behind the auth middleware that injects the username into the context.
func RegisterMyProfileRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/me/profile",
		Summary:     "Update the authenticated tenant's profile",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
		username, ok := middleware.UsernameFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		t, err := store.Tenants().GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to load profile", err)
		}

		t.Headline = input.Body.Headline
		t.About = input.Body.About
		t.Skills = input.Body.Skills
		if t.Skills == nil {
			t.Skills = []string{}
		}

		if err := store.Tenants().UpdateProfile(ctx, t); err != nil {
			return nil, huma.Error500InternalServerError("failed to update profile", err)
		}

		return &UpdateProfileOutput{Body: t}, nil
	})
}
