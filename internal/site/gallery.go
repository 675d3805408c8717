package site

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/cases"
	"github.com/ziadkadry99/casegallery/internal/render"
)

// NoCasesHTML replaces the tab strip when the document holds no cases.
const NoCasesHTML = `<p class="error">No cases available</p>`

// LoadErrorHTML is the content shown when the case document cannot be loaded.
func LoadErrorHTML(err error) template.HTML {
	return template.HTML(fmt.Sprintf(`<p class="error">Failed to load cases data: %s</p>`, html.EscapeString(err.Error())))
}

// RenderErrorHTML is the content shown when a case fails to render.
func RenderErrorHTML(msg string) template.HTML {
	return template.HTML(fmt.Sprintf(`<p class="error">Error rendering case: %s</p>`, html.EscapeString(msg)))
}

// Tab is one entry of the tab strip.
type Tab struct {
	ID          int
	Title       string
	Description template.HTML
	Href        string
	Active      bool
}

var tabsTemplate = template.Must(template.New("tabs").Parse(
	`{{range .}}<a class="tab{{if .Active}} active{{end}}" href="{{.Href}}" data-case-id="{{.ID}}">
<div class="tab-title">{{.Title}}</div>
{{with .Description}}<div class="tab-description">{{.}}</div>
{{end}}</a>
{{end}}`))

// Gallery is a loaded case document and the renderer that presents it. A
// Gallery whose load failed keeps the error and renders it as content.
type Gallery struct {
	doc      *cases.Document
	err      error
	renderer *render.Renderer
	log      *zap.Logger
}

// LoadGallery loads the case document at source (a path, glob or URL).
// Load failures are kept on the Gallery rather than returned; document
// problems found by validation are logged as warnings.
func LoadGallery(ctx context.Context, source string, r *render.Renderer, log *zap.Logger) *Gallery {
	if log == nil {
		log = zap.NewNop()
	}
	doc, err := cases.Load(ctx, source)
	if err != nil {
		log.Error("Error loading cases", zap.String("source", source), zap.Error(err))
		return NewGallery(nil, err, r, log)
	}
	for _, problem := range multierr.Errors(doc.Validate()) {
		log.Warn("Case document problem", zap.String("source", source), zap.Error(problem))
	}
	log.Debug("Cases loaded", zap.String("source", source), zap.Int("count", len(doc.Cases)))
	return NewGallery(doc, nil, r, log)
}

// NewGallery wraps an already loaded document, or a load error.
func NewGallery(doc *cases.Document, err error, r *render.Renderer, log *zap.Logger) *Gallery {
	if log == nil {
		log = zap.NewNop()
	}
	if r == nil {
		r = render.New(log, render.Options{})
	}
	if doc == nil && err == nil {
		err = cases.ErrNoCases
	}
	return &Gallery{doc: doc, err: err, renderer: r, log: log}
}

// Err returns the load error, if any.
func (g *Gallery) Err() error { return g.err }

// Cases returns the loaded cases, nil when loading failed.
func (g *Gallery) Cases() []cases.Case {
	if g.err != nil {
		return nil
	}
	return g.doc.Cases
}

// Document returns the loaded document, nil when loading failed.
func (g *Gallery) Document() *cases.Document {
	if g.err != nil {
		return nil
	}
	return g.doc
}

// First returns the first case.
func (g *Gallery) First() (*cases.Case, bool) {
	cs := g.Cases()
	if len(cs) == 0 {
		return nil, false
	}
	return &cs[0], true
}

// Case looks up a case by id.
func (g *Gallery) Case(id int) (*cases.Case, bool) {
	if g.err != nil {
		return nil, false
	}
	return g.doc.Find(id)
}

// Tabs lists one tab per case with the case activeID marked active.
func (g *Gallery) Tabs(activeID int, href func(cases.Case) string) []Tab {
	cs := g.Cases()
	tabs := make([]Tab, len(cs))
	for i, c := range cs {
		tabs[i] = Tab{
			ID:          c.ID,
			Title:       c.Title,
			Description: render.Markdown(c.Description),
			Active:      c.ID == activeID,
		}
		if href != nil {
			tabs[i].Href = href(c)
		}
	}
	return tabs
}

// TabStrip renders the tab strip. It is empty after a load failure and an
// error fragment when there are no cases.
func (g *Gallery) TabStrip(activeID int, href func(cases.Case) string) template.HTML {
	if g.err != nil {
		return ""
	}
	if len(g.doc.Cases) == 0 {
		return NoCasesHTML
	}
	var buf bytes.Buffer
	if err := tabsTemplate.Execute(&buf, g.Tabs(activeID, href)); err != nil {
		g.log.Error("Error rendering tabs", zap.Error(err))
		return ""
	}
	return template.HTML(buf.String())
}

// Content is what the content area shows before any tab is clicked: the
// load error, nothing for an empty document, or the first case.
func (g *Gallery) Content() template.HTML {
	if g.err != nil {
		return LoadErrorHTML(g.err)
	}
	first, ok := g.First()
	if !ok {
		return ""
	}
	return g.Select(first.ID)
}

// Select renders the case with the given id. A panic while rendering is
// recovered into an error fragment.
func (g *Gallery) Select(id int) (out template.HTML) {
	if g.err != nil {
		return LoadErrorHTML(g.err)
	}
	c, ok := g.doc.Find(id)
	if !ok {
		return RenderErrorHTML(fmt.Sprintf("case %d not found", id))
	}

	defer func() {
		if rec := recover(); rec != nil {
			g.log.Error("Error rendering case", zap.Int("case", id), zap.Any("panic", rec))
			out = RenderErrorHTML(fmt.Sprint(rec))
		}
	}()
	return template.HTML(g.renderer.RenderCase(c))
}
