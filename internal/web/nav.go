package web

import (
	"strings"
	"unicode"

	"lectern/internal/domain"
	"lectern/internal/i18n"
)

// NavLink is one sidebar entry.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// NavData is everything the navigation shell needs: the link set, the
// locale, and the identity summary. It is a pure function of
// (path, user, locale); building it has no side effects.
type NavData struct {
	Links         []NavLink
	Locale        i18n.Locale
	SignedIn      bool
	DisplayName   string
	AvatarURL     string
	AvatarInitial string
}

var navRoutes = []struct {
	href  string
	label string
}{
	{"/record", "nav.record"},
	{"/lectures", "nav.lectures"},
	{"/settings", "nav.settings"},
}

// BuildNav assembles the navigation shell state. At most one link is
// active: the one whose route prefixes the current path (detail pages
// keep their section highlighted).
func BuildNav(path string, user *domain.User, loc i18n.Locale) NavData {
	nav := NavData{Locale: loc}

	active := activeRoute(path)
	for _, r := range navRoutes {
		nav.Links = append(nav.Links, NavLink{
			Href:   r.href,
			Label:  loc.T(r.label),
			Active: r.href == active,
		})
	}

	if user == nil {
		nav.DisplayName = loc.T("user.signedout")
		nav.AvatarInitial = "U"
		return nav
	}

	nav.SignedIn = true
	nav.AvatarURL = user.PhotoURL
	nav.AvatarInitial = avatarInitial(*user)
	switch {
	case user.DisplayName != "":
		nav.DisplayName = user.DisplayName
	case user.Email != "":
		nav.DisplayName = user.Email
	default:
		nav.DisplayName = loc.T("user.fallback")
	}
	return nav
}

// activeRoute returns the nav route that owns path, or "" when none
// does, so no two links can ever be highlighted at once.
func activeRoute(path string) string {
	for _, r := range navRoutes {
		if path == r.href || strings.HasPrefix(path, r.href+"/") {
			return r.href
		}
	}
	return ""
}

// avatarInitial is the single-character fallback shown when the user
// has no photo: first rune of the display name, else of the email,
// else "U", uppercased.
func avatarInitial(user domain.User) string {
	for _, source := range []string{user.DisplayName, user.Email} {
		for _, r := range source {
			return string(unicode.ToUpper(r))
		}
	}
	return "U"
}
