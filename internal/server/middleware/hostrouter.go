package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foliohq/folio/internal/domain"
)

// HostResolver resolves a custom hostname to its owning tenant username.
// *routing.CachedResolver satisfies this interface.
type HostResolver interface {
	Lookup(ctx context.Context, hostname string) (string, error)
}

// HostRouter inspects the Host header of every inbound request and decides,
// statelessly per request, one of three outcomes:
//
//   - passthrough: platform-domain traffic, API/asset paths, and any
//     hostname the directory cannot resolve (fail open — a lookup outage
//     must never block traffic platform-wide);
//   - redirect: a resolved custom host asking for any path other than the
//     root is sent back to "/" on the same host, so a custom domain only
//     ever exposes its own tenant's landing page;
//   - rewrite: a resolved custom host at "/" is rewritten to the tenant's
//     internal profile path and handled normally.
//
// The directory lookup runs under its own short timeout; on expiry the
// request proceeds as passthrough rather than stalling.
func HostRouter(appDomain string, resolver HostResolver, lookupTimeout time.Duration) func(http.Handler) http.Handler {
	appDomain = domain.NormalizeDomain(appDomain)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := stripPort(r.Host)

			if strings.EqualFold(host, appDomain) {
				next.ServeHTTP(w, r)
				return
			}

			if passthroughPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
			username, err := resolver.Lookup(ctx, domain.NormalizeDomain(host))
			cancel()
			if err != nil {
				// Unmapped hostname, directory outage, or timeout: degrade to
				// default routing, never an error response.
				if !errors.Is(err, domain.ErrNotFound) {
					log.Warn().Err(err).Str("host", host).Msg("hostrouter: lookup failed, passing through")
				}
				next.ServeHTTP(w, r)
				return
			}

			if r.URL.Path != "/" {
				// Containment: custom domains serve only the tenant's landing
				// page, never platform settings/auth or other tenants' paths.
				http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
				return
			}

			r.URL.Path = "/" + username
			next.ServeHTTP(w, r)
		})
	}
}

// passthroughPath reports whether the path must bypass host routing on any
// hostname: API and internal endpoints, static assets, and anything with a
// file extension.
func passthroughPath(path string) bool {
	return strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/assets/") ||
		path == "/healthz" ||
		strings.Contains(path, ".")
}

func stripPort(host string) string {
	if !strings.Contains(host, ":") {
		return host
	}
	h, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	return h
}
