package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// CodeHighlighter turns source code into highlighted HTML. When the
// renderer has none, code blocks are left for Prism in the browser.
type CodeHighlighter interface {
	Highlight(code, language string) (string, error)
}

// ChromaHighlighter highlights code on the server through goldmark's
// chroma extension.
type ChromaHighlighter struct {
	md goldmark.Markdown
}

// NewChromaHighlighter creates a highlighter using the named chroma style
// (e.g. "github", "monokai").
func NewChromaHighlighter(style string) *ChromaHighlighter {
	if style == "" {
		style = "github"
	}
	return &ChromaHighlighter{
		md: goldmark.New(
			goldmark.WithExtensions(
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
		),
	}
}

// Highlight renders code as a fenced block of the given language.
func (h *ChromaHighlighter) Highlight(code, language string) (string, error) {
	fence := strings.Repeat("`", max(3, longestRun(code, '`')+1))
	src := fence + language + "\n" + strings.TrimRight(code, "\n") + "\n" + fence + "\n"

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("highlighting %s code: %w", language, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func longestRun(s string, c byte) int {
	best, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}
	return best
}

// markdown renders case descriptions. Raw HTML in descriptions is dropped.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders a short markdown text (a case description) to HTML.
// On failure the text is returned escaped.
func Markdown(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(FormatPlain(text))
	}
	return template.HTML(strings.TrimSpace(buf.String()))
}
