package web

import (
	"net/http"

	"lectern/internal/i18n"
)

type basicPageData struct {
	Title string
	Nav   NavData
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	loc := i18n.Resolve(r)
	data := basicPageData{
		Title: loc.T("nav.record"),
		Nav:   BuildNav(r.URL.Path, userPtr(r), loc),
	}
	if err := s.pages.render(w, "record.html", data); err != nil {
		s.logger.Error("render record", "error", err)
	}
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	loc := i18n.Resolve(r)
	data := basicPageData{
		Title: loc.T("nav.settings"),
		Nav:   BuildNav(r.URL.Path, userPtr(r), loc),
	}
	if err := s.pages.render(w, "settings.html", data); err != nil {
		s.logger.Error("render settings", "error", err)
	}
}

// handleLangToggle flips the language cookie and sends the user back
// where they came from.
func (s *Server) handleLangToggle(w http.ResponseWriter, r *http.Request) {
	i18n.SetCookie(w, i18n.Resolve(r).Toggle())

	target := r.Referer()
	if target == "" {
		target = "/lectures"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
