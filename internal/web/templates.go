package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"lectern/internal/util"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

var templateFuncs = template.FuncMap{
	"formatDuration": func(seconds *int64) string {
		if seconds == nil {
			return ""
		}
		return util.FormatDuration(*seconds)
	},
	"formatDate":     util.FormatDateHuman,
	"formatDateTime": util.FormatDateTime,
}

// pages maps a page name to its parsed template set (layout + page).
type pages map[string]*template.Template

func parsePages() (pages, error) {
	out := pages{}
	for _, name := range []string{"lectures.html", "lecture_detail.html", "record.html", "settings.html"} {
		t, err := template.New("layout").Funcs(templateFuncs).ParseFS(templateFiles,
			"templates/layout.html", "templates/lecture_status.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

func (p pages) render(w io.Writer, name string, data any) error {
	t, ok := p[name]
	if !ok {
		return fmt.Errorf("unknown page %s", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// renderPartial renders a named sub-template without the layout.
func (p pages) renderPartial(w io.Writer, page, block string, data any) error {
	t, ok := p[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}
	return t.ExecuteTemplate(w, block, data)
}
