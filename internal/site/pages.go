package site

import (
	"fmt"
	"html/template"
	"io"

	"github.com/gosimple/slug"

	"github.com/ziadkadry99/casegallery/internal/carousel"
	"github.com/ziadkadry99/casegallery/internal/cases"
	"github.com/ziadkadry99/casegallery/internal/viewer"
)

// Links maps pages to hrefs relative to the site root.
type Links struct {
	Home  string
	Case  func(c cases.Case) string
	Video func(n int) string
}

// StaticLinks are the file names written by the generator.
var StaticLinks = Links{
	Home:  "index.html",
	Case:  CaseFile,
	Video: VideoFile,
}

// ServerLinks are the routes of the gallery server.
var ServerLinks = Links{
	Home:  "./",
	Case:  func(c cases.Case) string { return fmt.Sprintf("cases/%d", c.ID) },
	Video: func(n int) string { return fmt.Sprintf("videos/%d", n) },
}

// CaseFile is the page of a case in a built site: cases/<id>-<slug>.html.
func CaseFile(c cases.Case) string {
	if s := slug.Make(c.Title); s != "" {
		return fmt.Sprintf("cases/%d-%s.html", c.ID, s)
	}
	return fmt.Sprintf("cases/%d.html", c.ID)
}

// VideoFile is the page of the n-th video (1-based) in a built site.
func VideoFile(n int) string {
	return fmt.Sprintf("videos/%d.html", n)
}

// Layout renders full pages around gallery content.
type Layout struct {
	Title   string
	BuildID string
	Videos  []carousel.Video
	Links   Links
	// LiveReload is the websocket path pages connect to for reloads, if any.
	LiveReload string
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title     string
	SiteTitle string
	BasePath  string
	BuildID   string
	Home      string
	ShowCases bool
	Tabs      template.HTML
	Content   template.HTML
	Fragments []fragment
	Carousel  *carouselView
	Settings  scriptSettings
}

type fragment struct {
	ID   int
	HTML template.HTML
}

type carouselView struct {
	carousel.State
	PrevHref string
	NextHref string
}

// scriptSettings is handed to script.js as window.CASEGALLERY.
type scriptSettings struct {
	Viewer       viewerSettings   `json:"viewer"`
	Videos       []carousel.Video `json:"videos"`
	VideoStart   int              `json:"videoStart"`
	TypesetDelay int              `json:"typesetDelay"`
	LiveReload   string           `json:"liveReload,omitempty"`
}

type viewerSettings struct {
	MinZoom        float64 `json:"minZoom"`
	MaxZoom        float64 `json:"maxZoom"`
	ZoomStep       float64 `json:"zoomStep"`
	ResizeDebounce int64   `json:"resizeDebounce"`
}

// typesetDelay is how long the page script waits before asking MathJax to
// typeset newly inserted content, in milliseconds.
const typesetDelay = 100

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

func (l *Layout) data(title, basePath string) pageData {
	videos := l.Videos
	if videos == nil {
		videos = []carousel.Video{}
	}
	return pageData{
		Title:     title,
		SiteTitle: l.Title,
		BasePath:  basePath,
		BuildID:   l.BuildID,
		Home:      l.Links.Home,
		Settings: scriptSettings{
			Viewer: viewerSettings{
				MinZoom:        viewer.MinZoom,
				MaxZoom:        viewer.MaxZoom,
				ZoomStep:       viewer.ZoomStep,
				ResizeDebounce: viewer.ResizeDebounce.Milliseconds(),
			},
			Videos:       videos,
			TypesetDelay: typesetDelay,
			LiveReload:   l.LiveReload,
		},
	}
}

// withCarousel positions the carousel at state. Ends get no link.
func (l *Layout) withCarousel(d *pageData, state carousel.State) {
	if state.Hidden {
		return
	}
	d.Settings.VideoStart = state.Index
	d.Carousel = &carouselView{State: state}
	if !state.PrevDisabled {
		d.Carousel.PrevHref = l.Links.Video(state.Index)
	}
	if !state.NextDisabled {
		d.Carousel.NextHref = l.Links.Video(state.Index + 2)
	}
}

// Index renders the landing page: the carousel at its first video, the tab
// strip with the first case active, and every case embedded as a template
// the page script swaps in on tab clicks.
func (l *Layout) Index(w io.Writer, g *Gallery) error {
	d := l.data("", "")
	l.withCarousel(&d, carousel.New(l.Videos).State())
	d.ShowCases = true

	active := 0
	if first, ok := g.First(); ok {
		active = first.ID
	}
	d.Tabs = g.TabStrip(active, l.Links.Case)
	d.Content = g.Content()
	for i, c := range g.Cases() {
		html := d.Content
		if i > 0 {
			html = g.Select(c.ID)
		}
		d.Fragments = append(d.Fragments, fragment{ID: c.ID, HTML: html})
	}
	return pageTmpl.Execute(w, d)
}

// CasePage renders the page of one case with its tab active.
func (l *Layout) CasePage(w io.Writer, g *Gallery, id int) error {
	title := ""
	if c, ok := g.Case(id); ok {
		title = c.Title
	}
	d := l.data(title, "../")
	d.ShowCases = true
	d.Tabs = g.TabStrip(id, l.Links.Case)
	d.Content = g.Select(id)
	return pageTmpl.Execute(w, d)
}

// VideoPage renders the carousel at the n-th video (1-based).
func (l *Layout) VideoPage(w io.Writer, n int) error {
	c := carousel.New(l.Videos)
	if err := c.Select(n - 1); err != nil {
		return err
	}
	state := c.State()
	d := l.data(state.Title, "../")
	l.withCarousel(&d, state)
	return pageTmpl.Execute(w, d)
}
