package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/foliohq/folio/internal/api/v1"
	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/domains"
	"github.com/foliohq/folio/internal/store/postgres"
)

func registerPublicRoutes(api huma.API, store *postgres.Store, cfg *config.Config) {
	v1.RegisterTenantRoutes(api, store, cfg.JWT.Secret, cfg.JWT.AccessTTL)
	v1.RegisterProfileRoutes(api, store)
	v1.RegisterLookupRoutes(api, store)
}

func registerAuthenticatedRoutes(api huma.API, store *postgres.Store, domainSvc *domains.Service) {
	v1.RegisterMyProfileRoutes(api, store)
	v1.RegisterDomainRoutes(api, store, domainSvc)
}
