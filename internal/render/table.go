package render

import (
	"fmt"
	"regexp"
	"strings"
)

// tableRe matches the one table shape case documents use:
// \begin{center} \begin{tabular}{SPEC} BODY \end{tabular} \end{center}.
// Braces inside SPEC are not supported.
var tableRe = regexp.MustCompile(`\\begin\{center\}\s*\\begin\{tabular\}\{([^}]+)\}((?s:.*?))\\end\{tabular\}\s*\\end\{center\}`)

// boldRe matches \textbf{...}. Nested braces end the match early.
var boldRe = regexp.MustCompile(`\\textbf\{([^}]+)\}`)

const (
	rowSeparator  = `\\`
	cellSeparator = "&"
	hline         = `\hline`
	boldMarker    = `\textbf`
)

// Align is a tabular column alignment.
type Align byte

const (
	AlignLeft   Align = 'l'
	AlignCenter Align = 'c'
	AlignRight  Align = 'r'
)

// CSS returns the text-align value for a.
func (a Align) CSS() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ColumnSpec is a parsed tabular column specification such as "|c|c|".
type ColumnSpec struct {
	Columns  []Align
	Bordered bool
}

// ParseColumnSpec extracts column alignments and the border flag. A spec
// with no l/c/r letters yields zero columns.
func ParseColumnSpec(spec string) ColumnSpec {
	cs := ColumnSpec{Bordered: strings.Contains(spec, "|")}
	for i := 0; i < len(spec); i++ {
		switch Align(spec[i]) {
		case AlignLeft, AlignCenter, AlignRight:
			cs.Columns = append(cs.Columns, Align(spec[i]))
		}
	}
	return cs
}

// ConvertTables replaces every centered tabular block in text with an HTML
// table. Text without a table is returned unchanged.
func ConvertTables(text string) string {
	if !strings.Contains(text, `\begin{tabular}`) {
		return text
	}
	return tableRe.ReplaceAllStringFunc(text, func(match string) string {
		m := tableRe.FindStringSubmatch(match)
		if m == nil {
			return match
		}
		return TableHTML(ParseColumnSpec(m[1]), m[2])
	})
}

// TableHTML renders a tabular body against spec. Rows with \textbf are
// header rows; cells past the declared column count are dropped and short
// rows are not padded.
func TableHTML(spec ColumnSpec, body string) string {
	var b strings.Builder
	if spec.Bordered {
		b.WriteString(`<table class="latex-table bordered">`)
	} else {
		b.WriteString(`<table class="latex-table">`)
	}

	for _, row := range strings.Split(body, rowSeparator) {
		row = strings.TrimSpace(row)
		if row == "" || row == hline {
			continue
		}

		tag := "td"
		if strings.Contains(row, boldMarker) {
			tag = "th"
		}

		b.WriteString("<tr>")
		for i, cell := range strings.Split(row, cellSeparator) {
			if i >= len(spec.Columns) {
				break
			}
			fmt.Fprintf(&b, `<%s style="text-align: %s">%s</%s>`, tag, spec.Columns[i].CSS(), formatCell(cell), tag)
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</table>")
	return b.String()
}

func formatCell(cell string) string {
	cell = boldRe.ReplaceAllString(strings.TrimSpace(cell), "<strong>$1</strong>")
	cell = strings.ReplaceAll(cell, hline, "")
	return strings.TrimSpace(cell)
}
