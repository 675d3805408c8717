package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestFormatTextTrimsBlankLines(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"empty", "", ""},
		{"only blanks", "\n  \n\t\n", ""},
		{"single line", "hello", "hello"},
		{"surrounding blanks", "\n\n  \nline one\nline two\n \n\n", "line one<br>line two"},
		{"interior blank kept", "a\n\nb", "a<br><br>b"},
		{"crlf", "\r\na\r\nb\r\n", "a<br>b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatText(tt.input)
			if got != tt.want {
				t.Errorf("FormatText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.HasPrefix(got, LineBreak) || strings.HasSuffix(got, LineBreak) {
				t.Errorf("output %q starts or ends with a line break", got)
			}
		})
	}
}

func TestFormatTextLeavesMathAlone(t *testing.T) {
	inputs := []string{
		`Inline $a^2 + b^2 = c^2$ math`,
		`Display $$\int_0^1 x\,dx$$`,
		`Paren \(x < y\) form`,
		`Bracket \[\frac{1}{2}\] form`,
	}
	for _, in := range inputs {
		if got := FormatText(in); got != in {
			t.Errorf("FormatText(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestFormatTextDoesNotEscape(t *testing.T) {
	in := `<em>trusted</em> & more`
	if got := FormatText(in); got != in {
		t.Errorf("FormatText(%q) = %q, want unchanged", in, got)
	}
}

func TestFormatPlainEscapes(t *testing.T) {
	got := FormatPlain("\n<b>x</b> & y\nnext\n\n")
	want := "&lt;b&gt;x&lt;/b&gt; &amp; y<br>next"
	if got != want {
		t.Errorf("FormatPlain = %q, want %q", got, want)
	}
}

func TestParseColumnSpec(t *testing.T) {
	tests := []struct {
		spec     string
		want     string
		bordered bool
	}{
		{"|c|c|", "cc", true},
		{"lcr", "lcr", false},
		{"|l|r|c|", "lrc", true},
		{"||", "", true},
		{"xyz", "", false},
	}
	for _, tt := range tests {
		cs := ParseColumnSpec(tt.spec)
		var got strings.Builder
		for _, a := range cs.Columns {
			got.WriteByte(byte(a))
		}
		if got.String() != tt.want || cs.Bordered != tt.bordered {
			t.Errorf("ParseColumnSpec(%q) = %q bordered=%v, want %q bordered=%v",
				tt.spec, got.String(), cs.Bordered, tt.want, tt.bordered)
		}
	}
}

// table describes the shape of a parsed HTML table.
type table struct {
	class string
	rows  [][]string // cell tag names per row
	texts [][]string
}

func parseTables(t *testing.T, fragment string) []table {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		t.Fatalf("parsing fragment: %v", err)
	}
	var tables []table
	var walk func(n *html.Node, cur *table)
	walk = func(n *html.Node, cur *table) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				tables = append(tables, table{class: attr(n, "class")})
				cur = &tables[len(tables)-1]
			case "tr":
				cur.rows = append(cur.rows, nil)
				cur.texts = append(cur.texts, nil)
			case "td", "th":
				last := len(cur.rows) - 1
				cur.rows[last] = append(cur.rows[last], n.Data)
				cur.texts[last] = append(cur.texts[last], text(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, cur)
		}
	}
	walk(doc, nil)
	return tables
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestConvertTablesSingleRow(t *testing.T) {
	in := `\begin{center}
\begin{tabular}{|c|c|c|}
1 & 2 & 3 \\
\end{tabular}
\end{center}`

	tables := parseTables(t, FormatText(in))
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	tb := tables[0]
	if tb.class != "latex-table bordered" {
		t.Errorf("class = %q", tb.class)
	}
	if len(tb.rows) != 1 || len(tb.rows[0]) != 3 {
		t.Fatalf("rows = %v, want one row with 3 cells", tb.rows)
	}
	for i, tag := range tb.rows[0] {
		if tag != "td" {
			t.Errorf("cell %d tag = %q, want td", i, tag)
		}
	}
}

func TestConvertTablesDropsExtraCells(t *testing.T) {
	in := `\begin{center}\begin{tabular}{cc}a & b & c & d\end{tabular}\end{center}`
	tables := parseTables(t, FormatText(in))
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if got := tables[0].texts[0]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("cells = %v, want [a b]", got)
	}
	if tables[0].class != "latex-table" {
		t.Errorf("unbordered class = %q", tables[0].class)
	}
}

func TestConvertTablesHeaderRow(t *testing.T) {
	in := `\begin{center}
\begin{tabular}{|l|r|}
\hline
\textbf{Name} & \textbf{Score} \\
\hline
Alice & 90 \\
\hline
\end{tabular}
\end{center}`

	out := FormatText(in)
	tables := parseTables(t, out)
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	tb := tables[0]
	if len(tb.rows) != 2 {
		t.Fatalf("rows = %v, want 2 rows", tb.rows)
	}
	if tb.rows[0][0] != "th" || tb.rows[0][1] != "th" {
		t.Errorf("header row tags = %v", tb.rows[0])
	}
	if tb.rows[1][0] != "td" || tb.rows[1][1] != "td" {
		t.Errorf("data row tags = %v", tb.rows[1])
	}
	if tb.texts[0][0] != "Name" || tb.texts[1][1] != "90" {
		t.Errorf("texts = %v", tb.texts)
	}
	if !strings.Contains(out, "<strong>Name</strong>") {
		t.Error("bold marker should become <strong>")
	}
	if strings.Contains(out, `\hline`) || strings.Contains(out, `\textbf`) {
		t.Errorf("LaTeX commands left in output: %s", out)
	}
	if !strings.Contains(out, `text-align: right`) {
		t.Error("right-aligned column should carry its alignment")
	}
}

func TestConvertTablesShortRowNotPadded(t *testing.T) {
	in := `\begin{center}\begin{tabular}{ccc}x & y\end{tabular}\end{center}`
	tables := parseTables(t, FormatText(in))
	if got := len(tables[0].rows[0]); got != 2 {
		t.Errorf("cells = %d, want 2", got)
	}
}

func TestConvertTablesMalformedSpec(t *testing.T) {
	in := `\begin{center}\begin{tabular}{||}a & b \\ c & d\end{tabular}\end{center}`
	tables := parseTables(t, FormatText(in))
	if len(tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(tables))
	}
	if len(tables[0].rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tables[0].rows))
	}
	for i, row := range tables[0].rows {
		if len(row) != 0 {
			t.Errorf("row %d has %d cells, want 0", i, len(row))
		}
	}
}

func TestConvertTablesNoTable(t *testing.T) {
	in := `\begin{tabular}{cc}a & b\end{tabular} without center`
	if got := ConvertTables(in); got != in {
		t.Errorf("ConvertTables changed text without the wrapper: %q", got)
	}
}

func TestConvertTablesKeepsSurroundingText(t *testing.T) {
	in := "Before\n\\begin{center}\\begin{tabular}{c}x\\end{tabular}\\end{center}\nAfter"
	got := FormatText(in)
	if !strings.HasPrefix(got, "Before<br><table") || !strings.HasSuffix(got, "</table><br>After") {
		t.Errorf("FormatText = %q", got)
	}
}

func TestConvertTablesMultiple(t *testing.T) {
	one := `\begin{center}\begin{tabular}{c}1\end{tabular}\end{center}`
	tables := parseTables(t, FormatText(one+"\ntext\n"+one))
	if len(tables) != 2 {
		t.Errorf("tables = %d, want 2", len(tables))
	}
}
