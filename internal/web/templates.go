package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justestif/spotify-mood-explorer/internal/mood"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.Execute(w, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	// Load base layout
	layoutPattern := "layouts/*.html"
	layouts, err := fs.Glob(templatesFS, layoutPattern)
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	// Load partials
	partialPattern := "partials/*.html"
	partials, err := fs.Glob(templatesFS, partialPattern)
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	// Load each page template with layouts and partials
	pagePattern := "pages/*.html"
	pages, err := fs.Glob(templatesFS, pagePattern)
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		// Create a new template for each page
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")] // Remove .html extension

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		// Execute "base" layout if it exists, otherwise the page itself
		t.templates[name] = tmpl
	}

	// Load partials as standalone templates
	for _, partial := range partials {
		name := filepath.Base(partial)
		name = name[:len(name)-len(".html")] // Remove .html extension

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// title turns genre names like "hip hop" into "Hip Hop". A Caser is
		// stateful, so each call gets its own.
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},

		// levelClass maps a Low/Medium/High category to a CSS class
		"levelClass": func(c mood.Category) string {
			return "level-" + strings.ToLower(string(c))
		},

		// pathEscape escapes a genre for use as a URL path segment
		"pathEscape": url.PathEscape,

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Genres   []string
	Selected string
}

// GenrePageData contains data for the genre page template.
type GenrePageData struct {
	PageData
	Genre string
	Mood  mood.Mood
	Moods []mood.Mood
}

// MoodPageData contains data for the mood results page template.
type MoodPageData struct {
	PageData
	Genre string
	Mood  mood.Mood
	Moods []mood.Mood
	Songs []SongRow
}

// SongRow contains data for a single row of the mood results table.
type SongRow struct {
	TrackName         string
	Artists           string
	DanceabilityLevel mood.Category
	EnergyLevel       mood.Category
}

func songRows(songs []mood.LabeledSong) []SongRow {
	rows := make([]SongRow, len(songs))
	for i, s := range songs {
		rows[i] = SongRow{
			TrackName:         s.TrackName,
			Artists:           s.Artists,
			DanceabilityLevel: s.DanceabilityLevel,
			EnergyLevel:       s.EnergyLevel,
		}
	}
	return rows
}
