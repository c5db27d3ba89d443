package web

import (
	"testing"

	"lectern/internal/domain"
	"lectern/internal/i18n"
)

func activeCount(nav NavData) int {
	n := 0
	for _, l := range nav.Links {
		if l.Active {
			n++
		}
	}
	return n
}

func TestBuildNavActiveLink(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantActive string // "" means no active link
	}{
		{"lectures list", "/lectures", "/lectures"},
		{"lecture detail keeps section", "/lectures/abc-123", "/lectures"},
		{"lecture audio keeps section", "/lectures/abc-123/audio", "/lectures"},
		{"record", "/record", "/record"},
		{"settings", "/settings", "/settings"},
		{"root", "/", ""},
		{"unknown", "/nowhere", ""},
		{"prefix is not a match", "/lecturesextra", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := BuildNav(tt.path, nil, i18n.Default)

			if n := activeCount(nav); n > 1 {
				t.Fatalf("%d active links, want at most 1", n)
			}
			var got string
			for _, l := range nav.Links {
				if l.Active {
					got = l.Href
				}
			}
			if got != tt.wantActive {
				t.Errorf("active link = %q, want %q", got, tt.wantActive)
			}
		})
	}
}

func TestBuildNavIdentity(t *testing.T) {
	tests := []struct {
		name        string
		user        *domain.User
		wantName    string
		wantInitial string
		wantSigned  bool
	}{
		{
			name:        "signed out",
			user:        nil,
			wantName:    "Not signed in",
			wantInitial: "U",
		},
		{
			name:        "display name",
			user:        &domain.User{ID: "u1", DisplayName: "dana levi", Email: "dana@example.com"},
			wantName:    "dana levi",
			wantInitial: "D",
			wantSigned:  true,
		},
		{
			name:        "email fallback",
			user:        &domain.User{ID: "u1", Email: "maya@example.com"},
			wantName:    "maya@example.com",
			wantInitial: "M",
			wantSigned:  true,
		},
		{
			name:        "no name at all",
			user:        &domain.User{ID: "u1"},
			wantName:    "User",
			wantInitial: "U",
			wantSigned:  true,
		},
		{
			name:        "hebrew initial",
			user:        &domain.User{ID: "u1", DisplayName: "דנה לוי"},
			wantName:    "דנה לוי",
			wantInitial: "ד",
			wantSigned:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := BuildNav("/lectures", tt.user, i18n.Default)

			if nav.SignedIn != tt.wantSigned {
				t.Errorf("SignedIn = %v, want %v", nav.SignedIn, tt.wantSigned)
			}
			if nav.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", nav.DisplayName, tt.wantName)
			}
			if nav.AvatarInitial != tt.wantInitial {
				t.Errorf("AvatarInitial = %q, want %q", nav.AvatarInitial, tt.wantInitial)
			}
		})
	}
}

func TestBuildNavAvatarURL(t *testing.T) {
	user := &domain.User{ID: "u1", DisplayName: "Dana", PhotoURL: "https://cdn.example.com/p.jpg"}
	nav := BuildNav("/lectures", user, i18n.Default)
	if nav.AvatarURL != user.PhotoURL {
		t.Errorf("AvatarURL = %q, want %q", nav.AvatarURL, user.PhotoURL)
	}
}
