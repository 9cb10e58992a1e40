package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/foliohq/folio/internal/api/v1"
	"github.com/foliohq/folio/internal/auth"
	"github.com/foliohq/folio/internal/domain"
)

const testJWTSecret = "test-secret-test-secret-test-secret!"

// ---------------------------------------------------------------------------
// POST /tenants
// ---------------------------------------------------------------------------

func TestCreateTenant(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			tenants: &mockTenantRepo{
				createFunc: func(_ context.Context, tenant *domain.Tenant) error {
					assert.Equal(t, "alice", tenant.Username)
					assert.NotEmpty(t, tenant.ID, "ID should be generated")
					assert.False(t, tenant.CreatedAt.IsZero(), "CreatedAt should be set")
					return nil
				},
			},
		}

		v1.RegisterTenantRoutes(api, store, testJWTSecret, time.Hour)

		resp := api.Post("/tenants", map[string]any{
			"username": "alice",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Tenant      *domain.Tenant `json:"tenant"`
			AccessToken string         `json:"access_token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "alice", body.Tenant.Username)
		require.NotEmpty(t, body.AccessToken)

		claims, err := auth.ValidateToken(testJWTSecret, body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("invalid_username", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{tenants: &mockTenantRepo{}}

		v1.RegisterTenantRoutes(api, store, testJWTSecret, time.Hour)

		resp := api.Post("/tenants", map[string]any{
			"username": "no spaces here",
		})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("username_taken", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			tenants: &mockTenantRepo{
				createFunc: func(_ context.Context, _ *domain.Tenant) error {
					return domain.ErrConflict
				},
			},
		}

		v1.RegisterTenantRoutes(api, store, testJWTSecret, time.Hour)

		resp := api.Post("/tenants", map[string]any{
			"username": "alice",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)

		var errBody map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.EqualValues(t, http.StatusConflict, errBody["status"])
	})

	t.Run("store_error", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			tenants: &mockTenantRepo{
				createFunc: func(_ context.Context, _ *domain.Tenant) error {
					return errors.New("pg: connection refused")
				},
			},
		}

		v1.RegisterTenantRoutes(api, store, testJWTSecret, time.Hour)

		resp := api.Post("/tenants", map[string]any{
			"username": "alice",
		})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
