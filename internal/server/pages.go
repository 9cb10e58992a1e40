package server

import (
	_ "embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/foliohq/folio/internal/domain"
)

//go:embed templates/profile.html.tmpl
var profileTemplateSrc string

var profileTemplate = template.Must(template.New("profile").Parse(profileTemplateSrc))

// handleProfilePage renders a tenant's public portfolio page. Platform
// traffic reaches it at /{username}; custom-domain traffic reaches it via
// the host router's root rewrite.
func (s *Server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if !domain.ValidUsername(username) {
		http.NotFound(w, r)
		return
	}

	t, err := s.store.Tenants().GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("username", username).Msg("server: profile page load failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := profileTemplate.Execute(w, t); err != nil {
		log.Error().Err(err).Str("username", username).Msg("server: profile page render failed")
	}
}
