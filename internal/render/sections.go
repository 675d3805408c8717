package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/cases"
)

// Section titles, one per kind.
const (
	TitleQuestion = "❓User Prompt"
	TitleThinking = "🤔Thinking Process"
	TitleCode     = "💻Generated Code"
	TitleResults  = "💡Generated Results"
	TitleAnswer   = "✅Final Answer"
)

// DefaultLanguage is used for code sections without a language.
const DefaultLanguage = "python"

// Options controls optional parts of the rendered markup.
type Options struct {
	// DefaultLanguage replaces an empty code language. Empty means python.
	DefaultLanguage string
	// Highlighter, when set, highlights code on the server.
	Highlighter CodeHighlighter
	// ImageSource maps an image src to the src used inline (a thumbnail).
	// The viewer always opens the original.
	ImageSource func(src string) string
}

type sectionFunc func(p cases.Payload) (string, bool)

// Renderer turns cases into HTML fragments. It is safe for concurrent use.
type Renderer struct {
	opts     Options
	log      *zap.Logger
	handlers map[cases.Kind]sectionFunc
}

// New creates a Renderer. A nil logger discards diagnostics.
func New(log *zap.Logger, opts Options) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = DefaultLanguage
	}
	r := &Renderer{opts: opts, log: log}
	r.handlers = map[cases.Kind]sectionFunc{
		cases.KindImage:           r.image,
		cases.KindQuestion:        r.question,
		cases.KindThinking:        r.thinking,
		cases.KindCode:            r.code,
		cases.KindGeneratedImages: r.generatedImages,
		cases.KindAnswer:          r.answer,
	}
	return r
}

// RenderSection renders one section on its own. Unknown kinds, and payloads
// that do not match their kind, render as "" with a warning.
func (r *Renderer) RenderSection(s cases.Section) string {
	h, ok := r.handlers[s.Kind]
	if !ok {
		r.log.Warn("No renderer found for section type", zap.String("type", string(s.Kind)))
		return ""
	}
	out, ok := h(s.Payload)
	if !ok {
		r.log.Warn("Section payload does not match its type",
			zap.String("type", string(s.Kind)), zap.String("payload", fmt.Sprintf("%T", s.Payload)))
		return ""
	}
	return out
}

func (r *Renderer) question(p cases.Payload) (string, bool) {
	t, ok := p.(*cases.Text)
	if !ok {
		return "", false
	}
	return fmt.Sprintf(`<div class="section question-section">
<h3 class="section-title">%s</h3>
<div class="question-box tex2jax_process">%s</div>
</div>
`, TitleQuestion, FormatText(t.Text)), true
}

func (r *Renderer) answer(p cases.Payload) (string, bool) {
	t, ok := p.(*cases.Text)
	if !ok {
		return "", false
	}
	return fmt.Sprintf(`<div class="section answer-section">
<h3 class="section-title">%s</h3>
<div class="answer-container">
<div class="answer-box tex2jax_process">%s</div>
</div>
</div>
`, TitleAnswer, FormatText(t.Text)), true
}

func (r *Renderer) thinking(p cases.Payload) (string, bool) {
	t, ok := p.(*cases.Thinking)
	if !ok {
		return "", false
	}
	return thinkingHTML(t, true), true
}

func thinkingHTML(t *cases.Thinking, withTitle bool) string {
	var b strings.Builder
	b.WriteString(`<div class="section thinking-section">` + "\n")
	if withTitle {
		fmt.Fprintf(&b, `<h3 class="section-title">%s</h3>`+"\n", TitleThinking)
	}
	fmt.Fprintf(&b, `<div class="thinking-process tex2jax_process">%s</div>`+"\n", FormatText(t.Text))
	b.WriteString("</div>\n")
	return b.String()
}

func (r *Renderer) code(p cases.Payload) (string, bool) {
	c, ok := p.(*cases.Code)
	if !ok {
		return "", false
	}
	lang := c.Language
	if lang == "" {
		lang = r.opts.DefaultLanguage
	}

	block := ""
	if r.opts.Highlighter != nil {
		highlighted, err := r.opts.Highlighter.Highlight(c.Code, lang)
		if err != nil {
			r.log.Warn("Server-side highlighting failed, leaving code for the browser",
				zap.String("language", lang), zap.Error(err))
		} else {
			block = fmt.Sprintf(`<div class="highlight" data-language="%s">%s</div>`, EscapeHTML(lang), highlighted)
		}
	}
	if block == "" {
		block = fmt.Sprintf(`<pre class="line-numbers"><code class="language-%s">%s</code></pre>`,
			EscapeHTML(lang), EscapeHTML(c.Code))
	}

	return fmt.Sprintf(`<div class="section code-section">
<h3 class="section-title">%s</h3>
<div class="code-container">%s</div>
</div>
`, TitleCode, block), true
}

func (r *Renderer) image(p cases.Payload) (string, bool) {
	img, ok := p.(*cases.Image)
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString(`<div class="section image-section">` + "\n")
	b.WriteString(`<div class="image-container">` + "\n")
	b.WriteString(r.zoomableImage(*img, "Image"))
	if img.Caption != "" {
		fmt.Fprintf(&b, `<p class="image-caption">%s</p>`+"\n", img.Caption)
	}
	b.WriteString("</div>\n</div>\n")
	return b.String(), true
}

func (r *Renderer) generatedImages(p cases.Payload) (string, bool) {
	g, ok := p.(*cases.GeneratedImages)
	if !ok {
		return "", false
	}
	if g.Images == nil && g.Results == nil {
		return "", true
	}

	var b strings.Builder
	b.WriteString(`<div class="section generated-images-section">` + "\n")
	fmt.Fprintf(&b, `<h3 class="section-title">%s</h3>`+"\n", TitleResults)
	b.WriteString(`<div class="result-images">` + "\n")

	for _, img := range g.Images {
		b.WriteString(`<div class="result-image">` + "\n")
		b.WriteString(r.zoomableImage(img, "Generated image"))
		if img.Caption != "" {
			fmt.Fprintf(&b, `<p class="result-image-caption">%s</p>`+"\n", img.Caption)
		}
		b.WriteString("</div>\n")
	}

	for _, res := range g.Results {
		b.WriteString(`<div class="result-item">` + "\n")
		fmt.Fprintf(&b, `<div class="code-block tex2jax_process">%s</div>`+"\n", FormatText(res.Value))
		if res.Caption != "" {
			fmt.Fprintf(&b, `<p class="result-image-caption">%s</p>`+"\n", res.Caption)
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>\n</div>\n")
	return b.String(), true
}

// zoomableImage renders an <img> the page script opens in the image viewer.
func (r *Renderer) zoomableImage(img cases.Image, fallbackCaption string) string {
	caption := img.Caption
	if caption == "" {
		caption = fallbackCaption
	}
	src := img.Src
	if r.opts.ImageSource != nil {
		src = r.opts.ImageSource(img.Src)
	}

	style := ""
	if img.Width > 0 {
		style = fmt.Sprintf(` style="max-width: %dpx; width: 100%%;"`, img.Width)
	}
	return fmt.Sprintf(`<img src="%s" alt="%s" class="zoomable-image" data-viewer-src="%s" data-viewer-caption="%s"%s>`+"\n",
		EscapeHTML(src), EscapeHTML(caption), EscapeHTML(img.Src), EscapeHTML(caption), style)
}
