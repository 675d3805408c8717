package cases

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

const sampleDoc = `{
  "cases": [
    {
      "id": 1,
      "title": "Geometry",
      "description": "A triangle problem",
      "sections": [
        {"type": "image", "data": {"src": "static/images/a.png", "caption": "Figure", "width": 400}},
        {"type": "question", "data": {"text": "What is $x$?"}},
        {"type": "thinking", "data": {"text": "first", "round": 2}},
        {"type": "thinking", "data": {"text": "second", "round": "2"}},
        {"type": "code", "data": {"code": "print(1)"}},
        {"type": "generated_images", "data": {"results": [{"value": "42", "caption": "out"}]}},
        {"type": "chart", "data": {"points": [1, 2]}},
        {"type": "answer", "data": {"text": "$x = 2$"}}
      ]
    },
    {"id": 2, "title": "Broken"}
  ]
}`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(doc.Cases))
	}

	c := doc.Cases[0]
	if c.ID != 1 || c.Title != "Geometry" || c.Description != "A triangle problem" {
		t.Errorf("unexpected case header: %+v", c)
	}
	if len(c.Sections) != 8 {
		t.Fatalf("sections = %d, want 8", len(c.Sections))
	}

	img, ok := c.Sections[0].Payload.(*Image)
	if !ok {
		t.Fatalf("section 0 payload = %T, want *Image", c.Sections[0].Payload)
	}
	if img.Src != "static/images/a.png" || img.Width != 400 {
		t.Errorf("image payload = %+v", img)
	}

	if got := c.Sections[2].Round(); got != "2" {
		t.Errorf("numeric round = %q, want %q", got, "2")
	}
	if got := c.Sections[3].Round(); got != "2" {
		t.Errorf("string round = %q, want %q", got, "2")
	}

	q, ok := c.Sections[1].Payload.(*Text)
	if !ok || q.sectionKind() != KindQuestion {
		t.Errorf("question payload = %#v", c.Sections[1].Payload)
	}

	unknown := c.Sections[6]
	if unknown.Kind.Known() {
		t.Errorf("kind %q should be unknown", unknown.Kind)
	}
	if unknown.Payload != nil {
		t.Errorf("unknown kind should have nil payload, got %T", unknown.Payload)
	}
	if !strings.Contains(string(unknown.Raw), "points") {
		t.Errorf("raw data not preserved: %s", unknown.Raw)
	}

	if doc.Cases[1].Sections != nil {
		t.Error("missing sections key should decode to nil")
	}
}

func TestParseEmptySectionsIsNotNil(t *testing.T) {
	doc, err := Parse([]byte(`{"cases":[{"id":1,"title":"t","sections":[]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Cases[0].Sections == nil {
		t.Error("empty sections array should decode to a non-nil slice")
	}
}

func TestParseMissingCases(t *testing.T) {
	_, err := Parse([]byte(`{"items": []}`))
	if !errors.Is(err, ErrNoCases) {
		t.Errorf("expected ErrNoCases, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"cases": [`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseKeepsGoodCasesAroundBadData(t *testing.T) {
	doc, err := Parse([]byte(`{"cases":[
	  {"id":1,"title":"Good","sections":[{"type":"question","data":{"text":"ok"}}]},
	  {"id":2,"title":"Bad text","sections":[{"type":"thinking","data":{"text":42}}]},
	  {"id":3,"title":"Bad round","sections":[{"type":"thinking","data":{"text":"t","round":true}}]},
	  {"id":4,"title":"Bad sections","sections":"x"},
	  {"id":5,"title":"Bad section","sections":[7]},
	  {"id":"six","title":"Bad id","sections":[]}
	]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Cases) != 6 {
		t.Fatalf("cases = %d, want 6", len(doc.Cases))
	}

	good := doc.Cases[0]
	if good.Problems() != nil || len(good.Sections) != 1 || good.Sections[0].Payload == nil {
		t.Errorf("good case = %+v", good)
	}

	tests := []struct {
		index   int
		section int // -1 when the problem is on the case itself
	}{
		{1, 0},
		{2, 0},
		{3, -1},
		{4, 0},
		{5, -1},
	}
	for _, tt := range tests {
		c := doc.Cases[tt.index]
		if c.Problems() == nil {
			t.Errorf("case %d (%s): expected a problem", c.ID, c.Title)
			continue
		}
		if tt.section >= 0 {
			s := c.Sections[tt.section]
			if s.Err == nil || s.Payload != nil {
				t.Errorf("case %d section: err = %v, payload = %v", c.ID, s.Err, s.Payload)
			}
		} else if c.Err == nil {
			t.Errorf("case %d: Err should be set", c.ID)
		}
	}
	if doc.Cases[3].Sections != nil {
		t.Error("sections that are not a list should be nil")
	}
	if doc.Cases[1].Title != "Bad text" || doc.Cases[1].ID != 2 {
		t.Errorf("fields around a bad section should still decode: %+v", doc.Cases[1])
	}

	problems := multierr.Errors(doc.Validate())
	if len(problems) != 5 {
		t.Errorf("Validate problems = %d, want 5: %v", len(problems), problems)
	}
}

func TestSectionRoundTrip(t *testing.T) {
	orig := NewThinking("step", "3")
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Section
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Kind != KindThinking || got.Round() != "3" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Cases) != 2 {
		t.Errorf("cases = %d, want 2", len(doc.Cases))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadGlobNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, id int) {
		body := `{"cases":[{"id":` + itoa(id) + `,"title":"c","sections":[]}]}`
		if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("part10.json", 10)
	write("part2.json", 2)
	write("nested/part1.json", 1)

	doc, err := Load(context.Background(), filepath.Join(dir, "**", "part*.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Cases) != 3 {
		t.Fatalf("cases = %d, want 3", len(doc.Cases))
	}
	// "nested/" sorts before "part…"; part2 before part10.
	if doc.Cases[0].ID != 1 || doc.Cases[1].ID != 2 || doc.Cases[2].ID != 10 {
		t.Errorf("order = %d, %d, %d", doc.Cases[0].ID, doc.Cases[1].ID, doc.Cases[2].ID)
	}
}

func TestLoadGlobNoMatches(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "*.json")); err == nil {
		t.Error("expected error when no files match")
	}
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL+"/cases.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Cases) != 2 {
		t.Errorf("cases = %d, want 2", len(doc.Cases))
	}

	_, err = Load(context.Background(), srv.URL+"/missing.json")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected HTTP 404 error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	doc.Cases = append(doc.Cases, Case{ID: 1, Title: " ", Sections: []Section{}})

	errs := multierr.Errors(doc.Validate())
	if len(errs) != 4 {
		t.Fatalf("validation errors = %d (%v), want 4", len(errs), errs)
	}
}

func TestValidateClean(t *testing.T) {
	doc := &Document{Cases: []Case{{ID: 1, Title: "ok", Sections: []Section{NewQuestion("q")}}}}
	if err := doc.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestFind(t *testing.T) {
	doc := &Document{Cases: []Case{{ID: 4, Title: "a"}, {ID: 9, Title: "b"}}}
	c, ok := doc.Find(9)
	if !ok || c.Title != "b" {
		t.Errorf("Find(9) = %+v, %v", c, ok)
	}
	if _, ok := doc.Find(5); ok {
		t.Error("Find(5) should miss")
	}
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}
