package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/cases"
)

// InvalidCaseHTML is rendered for a case without a sections list.
const InvalidCaseHTML = `<div class="error">Invalid case data</div>`

// InvalidCaseErrorHTML is rendered for a case whose data failed to decode.
func InvalidCaseErrorHTML(err error) string {
	return fmt.Sprintf(`<div class="error">Invalid case data: %s</div>`, EscapeHTML(err.Error()))
}

// Rounds maps each thinking round id to the indices of its sections, in
// document order. Thinking sections without a round are not included.
func Rounds(sections []cases.Section) map[string][]int {
	rounds := make(map[string][]int)
	for i, s := range sections {
		if s.Kind != cases.KindThinking {
			continue
		}
		if round := s.Round(); round != "" {
			rounds[round] = append(rounds[round], i)
		}
	}
	return rounds
}

// Block is one unit of case output: a single section, or a merged thinking
// round when Members has more than one index.
type Block struct {
	Index   int   // index of the section, or of the round's first member
	Members []int // indices of a merged round; nil for a single section
}

// Plan partitions sections into blocks in document order. A thinking round
// with more than one member renders once, at its first member; its other
// members produce no block of their own.
func Plan(sections []cases.Section) []Block {
	rounds := Rounds(sections)
	blocks := make([]Block, 0, len(sections))
	for i, s := range sections {
		members := rounds[s.Round()]
		if s.Kind != cases.KindThinking || len(members) < 2 {
			blocks = append(blocks, Block{Index: i})
			continue
		}
		if members[0] == i {
			blocks = append(blocks, Block{Index: i, Members: members})
		}
	}
	return blocks
}

// RenderCase renders the full case fragment. MathJax typesetting is left to
// the page once the fragment is in the document.
func (r *Renderer) RenderCase(c *cases.Case) string {
	if c == nil {
		return InvalidCaseHTML
	}
	if err := c.Problems(); err != nil {
		r.log.Warn("Invalid case data", zap.Int("case", c.ID), zap.Error(err))
		return InvalidCaseErrorHTML(err)
	}
	if c.Sections == nil {
		return InvalidCaseHTML
	}

	var b strings.Builder
	b.WriteString(`<div class="case-container">` + "\n")
	for _, blk := range Plan(c.Sections) {
		if blk.Members != nil {
			b.WriteString(r.renderRound(c.Sections, blk.Members))
			continue
		}
		s := c.Sections[blk.Index]
		if !s.Kind.Known() {
			r.log.Warn("No renderer found for section type",
				zap.Int("case", c.ID), zap.Int("section", blk.Index), zap.String("type", string(s.Kind)))
			continue
		}
		b.WriteString(r.RenderSection(s))
	}
	b.WriteString("</div>\n")
	return b.String()
}

func (r *Renderer) renderRound(sections []cases.Section, members []int) string {
	var b strings.Builder
	b.WriteString(`<div class="thinking-round">` + "\n")
	fmt.Fprintf(&b, `<h3 class="thinking-round-title">%s</h3>`+"\n", TitleThinking)
	for _, i := range members {
		if t, ok := sections[i].Payload.(*cases.Thinking); ok {
			b.WriteString(thinkingHTML(t, false))
		}
	}
	b.WriteString("</div>\n")
	return b.String()
}
