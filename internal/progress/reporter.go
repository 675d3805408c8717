package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Step describes one rendered case page.
type Step struct {
	ID       int
	Title    string
	Sections int
	// Problem is set when the case rendered as an error fragment.
	Problem error
}

// Label is the short form shown next to the bar.
func (s Step) Label() string {
	title := s.Title
	if title == "" {
		title = "(untitled)"
	}
	if s.Problem != nil {
		return fmt.Sprintf("#%d %s (invalid)", s.ID, title)
	}
	return fmt.Sprintf("#%d %s", s.ID, title)
}

// Tally sums the steps of one build.
type Tally struct {
	Cases    int
	Sections int
	Invalid  int
}

// Add counts s.
func (t *Tally) Add(s Step) {
	t.Cases++
	t.Sections += s.Sections
	if s.Problem != nil {
		t.Invalid++
	}
}

// Reporter follows case rendering during a gallery build.
type Reporter interface {
	Start(total int)
	Step(current int, s Step)
	Finish(t Tally)
}

// NewReporter returns a CIReporter if a CI environment is detected,
// a TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter draws a bar labelled with the case being rendered.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Rendering cases"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Step(current int, s Step) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(s.Label())
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish(Tally) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter writes one line per case, for logs without a terminal.
type CIReporter struct {
	Out   io.Writer
	total int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Rendering %d cases\n", total)
}

func (r *CIReporter) Step(current int, s Step) {
	fmt.Fprintf(r.Out, "[%d/%d] %s, %d sections\n", current, r.total, s.Label(), s.Sections)
	if s.Problem != nil {
		fmt.Fprintf(r.Out, "    %v\n", s.Problem)
	}
}

func (r *CIReporter) Finish(t Tally) {
	fmt.Fprintf(r.Out, "Rendered %d cases (%d sections, %d invalid)\n", t.Cases, t.Sections, t.Invalid)
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)      {}
func (Nop) Step(int, Step) {}
func (Nop) Finish(Tally)   {}
