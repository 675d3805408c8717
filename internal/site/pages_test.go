package site

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/casegallery/internal/carousel"
	"github.com/ziadkadry99/casegallery/internal/cases"
)

var demoVideos = []carousel.Video{
	{Src: "static/videos/1.mp4", Title: "First"},
	{Src: "static/videos/2.mp4", Title: "Second"},
	{Src: "static/videos/3.mp4", Title: "Third"},
}

func newLayout(videos []carousel.Video) *Layout {
	return &Layout{Title: "Gallery", BuildID: "build-1", Videos: videos, Links: StaticLinks}
}

func parsePage(t *testing.T, page []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("parsing page: %v", err)
	}
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := getAttr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && hasClass(n, class) }
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := getAttr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	}
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

func TestLayoutIndex(t *testing.T) {
	var buf bytes.Buffer
	if err := newLayout(demoVideos).Index(&buf, sampleGallery(t, nil)); err != nil {
		t.Fatalf("Index: %v", err)
	}
	doc := parsePage(t, buf.Bytes())

	tabs := findAll(doc, byClass("tab"))
	if len(tabs) != 3 {
		t.Fatalf("tabs = %d, want 3", len(tabs))
	}
	for i, tab := range tabs {
		if hasClass(tab, "active") != (i == 0) {
			t.Errorf("tab %d active = %v", i, hasClass(tab, "active"))
		}
	}

	templates := findAll(doc, byTag("template"))
	if len(templates) != 3 {
		t.Errorf("embedded case templates = %d, want 3", len(templates))
	}
	if id, _ := getAttr(templates[0], "id"); id != "case-1" {
		t.Errorf("first template id = %q", id)
	}

	content := findAll(doc, byClass("content-area"))
	if len(content) != 1 || len(findAll(content[0], byClass("case-container"))) != 1 {
		t.Error("content area should show the first case")
	}

	if base := findAll(doc, byTag("base")); len(base) != 0 {
		t.Error("index should not set a base href")
	}

	page := buf.String()
	for _, want := range []string{
		`style.css?v=build-1`,
		`"minZoom":0.1`,
		`"maxZoom":5`,
		`"zoomStep":1.2`,
		`"resizeDebounce":100`,
		`"typesetDelay":100`,
		`inlineMath: [['$', '$'], ['\\(', '\\)']]`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestLayoutIndexCarousel(t *testing.T) {
	var buf bytes.Buffer
	if err := newLayout(demoVideos).Index(&buf, sampleGallery(t, nil)); err != nil {
		t.Fatalf("Index: %v", err)
	}
	doc := parsePage(t, buf.Bytes())

	if n := findAll(doc, byClass("video-carousel")); len(n) != 1 {
		t.Fatalf("carousel sections = %d, want 1", len(n))
	}
	prev := findAll(doc, byID("prev-btn"))[0]
	next := findAll(doc, byID("next-btn"))[0]
	if v, _ := getAttr(prev, "aria-disabled"); v != "true" {
		t.Error("prev should be disabled at the first video")
	}
	if href, _ := getAttr(next, "href"); href != "videos/2.html" {
		t.Errorf("next href = %q", href)
	}
	counter := findAll(doc, byID("video-counter"))[0]
	if counter.FirstChild == nil || counter.FirstChild.Data != "1 / 3" {
		t.Error("counter should read 1 / 3")
	}
}

func TestLayoutNoVideosHidesCarousel(t *testing.T) {
	var buf bytes.Buffer
	if err := newLayout(nil).Index(&buf, sampleGallery(t, nil)); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n := findAll(parsePage(t, buf.Bytes()), byClass("video-carousel")); len(n) != 0 {
		t.Error("empty video list should hide the carousel")
	}
	if !strings.Contains(buf.String(), `"videos":[]`) {
		t.Error("script settings should carry an empty video list")
	}
}

func TestLayoutIndexLoadError(t *testing.T) {
	var buf bytes.Buffer
	g := NewGallery(nil, errors.New("boom"), nil, nil)
	if err := newLayout(nil).Index(&buf, g); err != nil {
		t.Fatalf("Index: %v", err)
	}
	doc := parsePage(t, buf.Bytes())
	if n := findAll(doc, byClass("tab")); len(n) != 0 {
		t.Errorf("tabs after load failure = %d, want 0", len(n))
	}
	if !strings.Contains(buf.String(), `<p class="error">Failed to load cases data: boom</p>`) {
		t.Errorf("load error missing:\n%s", buf.String())
	}
}

func TestLayoutCasePage(t *testing.T) {
	var buf bytes.Buffer
	if err := newLayout(demoVideos).CasePage(&buf, sampleGallery(t, nil), 2); err != nil {
		t.Fatalf("CasePage: %v", err)
	}
	doc := parsePage(t, buf.Bytes())

	base := findAll(doc, byTag("base"))
	if len(base) != 1 {
		t.Fatal("case page should set a base href")
	}
	if href, _ := getAttr(base[0], "href"); href != "../" {
		t.Errorf("base href = %q", href)
	}
	for _, tab := range findAll(doc, byClass("tab")) {
		id, _ := getAttr(tab, "data-case-id")
		if hasClass(tab, "active") != (id == "2") {
			t.Errorf("tab %s active = %v", id, hasClass(tab, "active"))
		}
	}
	if n := findAll(doc, byTag("template")); len(n) != 0 {
		t.Error("case pages do not embed templates")
	}
	if n := findAll(doc, byClass("zoomable-image")); len(n) != 1 {
		t.Errorf("zoomable images = %d, want 1", len(n))
	}
	if !strings.Contains(buf.String(), "<title>Reading signs | Gallery</title>") {
		t.Error("page title should name the case")
	}
}

func TestLayoutVideoPage(t *testing.T) {
	l := newLayout(demoVideos)

	var buf bytes.Buffer
	if err := l.VideoPage(&buf, 3); err != nil {
		t.Fatalf("VideoPage(3): %v", err)
	}
	doc := parsePage(t, buf.Bytes())
	next := findAll(doc, byID("next-btn"))[0]
	if v, _ := getAttr(next, "aria-disabled"); v != "true" {
		t.Error("next should be disabled at the last video")
	}
	prev := findAll(doc, byID("prev-btn"))[0]
	if href, _ := getAttr(prev, "href"); href != "videos/2.html" {
		t.Errorf("prev href = %q", href)
	}
	if !strings.Contains(buf.String(), `"videoStart":2`) {
		t.Error("script should start the carousel at the page's video")
	}
	if n := findAll(doc, byClass("tabs-container")); len(n) != 0 {
		t.Error("video pages have no tabs")
	}

	for _, n := range []int{0, 4} {
		if err := l.VideoPage(&bytes.Buffer{}, n); err == nil {
			t.Errorf("VideoPage(%d) should fail", n)
		}
	}
}

func TestCaseFile(t *testing.T) {
	tests := []struct {
		c    cases.Case
		want string
	}{
		{cases.Case{ID: 1, Title: "Counting Coins!"}, "cases/1-counting-coins.html"},
		{cases.Case{ID: 7, Title: ""}, "cases/7.html"},
	}
	for _, tt := range tests {
		if got := CaseFile(tt.c); got != tt.want {
			t.Errorf("CaseFile(%q) = %q, want %q", tt.c.Title, got, tt.want)
		}
	}
}
