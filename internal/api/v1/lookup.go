package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foliohq/folio/internal/domain"
)

type LookupInput struct {
	Hostname string `path:"hostname" maxLength:"253" doc:"Custom hostname to resolve"`
}

type LookupOutput struct {
	Body struct {
		Username string `json:"username"`
	}
}

// RegisterLookupRoutes wires the reverse lookup endpoint the host router
// (or an external edge) consumes: hostname in, owning username out.
func RegisterLookupRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "lookup-domain",
		Method:      http.MethodGet,
		Path:        "/lookup/{hostname}",
		Summary:     "Resolve a custom hostname to its tenant",
		Tags:        []string{"Lookup"},
	}, func(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
		username, err := store.Tenants().LookupDomain(ctx, domain.NormalizeDomain(input.Hostname))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("domain not found")
			}
			return nil, huma.Error500InternalServerError("lookup failed", err)
		}

		out := &LookupOutput{}
		out.Body.Username = username
		return out, nil
	})
}
