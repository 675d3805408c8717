package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
)

// ErrNoCases is returned when a document has no top-level "cases" key.
var ErrNoCases = errors.New("invalid data format: missing cases")

// maxDocumentSize bounds how much of a remote document is read.
const maxDocumentSize = 32 << 20

// Parse decodes a case document.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Cases *[]Case `json:"cases"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing case document: %w", err)
	}
	if raw.Cases == nil {
		return nil, ErrNoCases
	}
	return &Document{Cases: *raw.Cases}, nil
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads a case document from source: an http(s) URL, a single file, or
// a doublestar glob whose matches are merged in natural path order.
func Load(ctx context.Context, source string) (*Document, error) {
	if source == "" {
		return nil, fmt.Errorf("no case source configured")
	}
	if IsRemote(source) {
		return fetch(ctx, source)
	}
	if strings.ContainsAny(source, "*?[{") {
		return loadGlob(source)
	}
	return loadFile(source)
}

func loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func loadGlob(pattern string) (*Document, error) {
	matches, err := doublestar.FilepathGlob(filepath.Clean(pattern))
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no case files match %s", pattern)
	}
	sort.Sort(natural.StringSlice(matches))

	merged := &Document{}
	for _, m := range matches {
		doc, err := loadFile(m)
		if err != nil {
			return nil, err
		}
		merged.Cases = append(merged.Cases, doc.Cases...)
	}
	return merged, nil
}

func fetch(ctx context.Context, url string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return Parse(data)
}

// Validate reports structural problems that do not stop rendering:
// duplicate ids, missing titles, missing sections, cases or sections that
// failed to decode, and unknown section kinds.
// All problems are combined into one error.
func (d *Document) Validate() error {
	var err error
	seen := make(map[int]bool, len(d.Cases))
	for i, c := range d.Cases {
		if seen[c.ID] {
			err = multierr.Append(err, fmt.Errorf("case %d: duplicate id", c.ID))
		}
		seen[c.ID] = true
		if strings.TrimSpace(c.Title) == "" {
			err = multierr.Append(err, fmt.Errorf("case %d (index %d): empty title", c.ID, i))
		}
		if p := c.Problems(); p != nil {
			for _, e := range multierr.Errors(p) {
				err = multierr.Append(err, fmt.Errorf("case %d: %w", c.ID, e))
			}
		}
		if c.Sections == nil {
			if c.Err == nil {
				err = multierr.Append(err, fmt.Errorf("case %d: missing sections", c.ID))
			}
			continue
		}
		for j, s := range c.Sections {
			if s.Err == nil && !s.Kind.Known() {
				err = multierr.Append(err, fmt.Errorf("case %d section %d: unknown type %q", c.ID, j, s.Kind))
			}
		}
	}
	return err
}
