// Package i18n resolves the UI language and text direction. Supported
// languages are English and Hebrew; Hebrew renders right-to-left.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

const cookieName = "lectern_lang"

// Dir is the text direction of the page.
type Dir string

const (
	DirLTR Dir = "ltr"
	DirRTL Dir = "rtl"
)

// Locale is what the rest of the app sees: a language tag plus the
// direction templates put on the <html> element.
type Locale struct {
	Tag language.Tag
	Dir Dir
}

var (
	supported = []language.Tag{language.English, language.Hebrew}
	matcher   = language.NewMatcher(supported)
)

// Default is the locale used when nothing else matches.
var Default = Locale{Tag: language.English, Dir: DirLTR}

func localeFor(tag language.Tag) Locale {
	if tag == language.Hebrew {
		return Locale{Tag: tag, Dir: DirRTL}
	}
	return Locale{Tag: tag, Dir: DirLTR}
}

// Resolve picks the request's locale: the language cookie wins, then
// Accept-Language, then the default.
func Resolve(r *http.Request) Locale {
	if c, err := r.Cookie(cookieName); err == nil {
		if tag, err := language.Parse(c.Value); err == nil {
			matched, _, _ := matcher.Match(tag)
			return localeFor(canonical(matched))
		}
	}

	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
			matched, _, _ := matcher.Match(tags...)
			return localeFor(canonical(matched))
		}
	}

	return Default
}

// canonical collapses matcher output (which may carry regional
// variants) back onto one of the supported tags.
func canonical(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	for _, s := range supported {
		sb, _ := s.Base()
		if base == sb {
			return s
		}
	}
	return language.English
}

// Toggle flips between the two supported languages.
func (l Locale) Toggle() Locale {
	if l.Tag == language.Hebrew {
		return localeFor(language.English)
	}
	return localeFor(language.Hebrew)
}

// Code is the BCP 47 code templates put on the <html lang> attribute.
func (l Locale) Code() string {
	return l.Tag.String()
}

// RTL reports whether the locale renders right-to-left.
func (l Locale) RTL() bool {
	return l.Dir == DirRTL
}

// SetCookie persists the locale choice on the response.
func SetCookie(w http.ResponseWriter, l Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    l.Code(),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

var messages = map[string]map[string]string{
	"en": {
		"nav.record":         "Record",
		"nav.lectures":       "My Lectures",
		"nav.settings":       "Settings",
		"nav.language":       "עברית",
		"user.fallback":      "User",
		"user.signedout":     "Not signed in",
		"lectures.title":     "My Lectures",
		"lectures.empty":     "No lectures yet.",
		"lecture.status":     "Status",
		"lecture.duration":   "Duration",
		"lecture.created":    "Created",
		"lecture.delete":     "Delete",
		"lecture.transcript": "Transcript",
		"lecture.processing": "Transcribing…",
		"lecture.failed":     "Transcription failed",
	},
	"he": {
		"nav.record":         "הקלטה",
		"nav.lectures":       "ההרצאות שלי",
		"nav.settings":       "הגדרות",
		"nav.language":       "English",
		"user.fallback":      "משתמש",
		"user.signedout":     "לא מחובר",
		"lectures.title":     "ההרצאות שלי",
		"lectures.empty":     "אין הרצאות עדיין.",
		"lecture.status":     "סטטוס",
		"lecture.duration":   "משך",
		"lecture.created":    "נוצר",
		"lecture.delete":     "מחיקה",
		"lecture.transcript": "תמלול",
		"lecture.processing": "מתמלל…",
		"lecture.failed":     "התמלול נכשל",
	},
}

// T looks up a UI string, falling back to English, then to the key
// itself so a missing entry is visible rather than fatal.
func (l Locale) T(key string) string {
	if m, ok := messages[l.Code()]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages["en"][key]; ok {
		return s
	}
	return key
}
