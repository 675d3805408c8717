package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/carousel"
	"github.com/ziadkadry99/casegallery/internal/cases"
	"github.com/ziadkadry99/casegallery/internal/config"
	"github.com/ziadkadry99/casegallery/internal/progress"
	"github.com/ziadkadry99/casegallery/internal/render"
	"github.com/ziadkadry99/casegallery/internal/walker"
)

// SiteGenerator renders a case document into a static HTML site.
type SiteGenerator struct {
	Config   *config.Config
	Log      *zap.Logger
	Reporter progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator. A nil logger discards output and
// progress is not reported.
func NewSiteGenerator(cfg *config.Config, log *zap.Logger) *SiteGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &SiteGenerator{Config: cfg, Log: log, Reporter: progress.Nop{}}
}

// Result summarizes a build.
type Result struct {
	BuildID string
	Cases   int
	Videos  int
	Pages   int
	Thumbs  int
	Invalid int
	Static  StaticSummary
}

// StaticSummary counts the static assets of a build by media kind.
type StaticSummary struct {
	Files  int `json:"files"`
	Copied int `json:"copied"`
	Images int `json:"images"`
	Videos int `json:"videos"`
}

// Manifest is written to manifest.json next to the pages.
type Manifest struct {
	BuildID   string          `json:"build_id"`
	Title     string          `json:"title"`
	Source    string          `json:"source"`
	Generated time.Time       `json:"generated"`
	Cases     []ManifestEntry `json:"cases"`
	Videos    []ManifestEntry `json:"videos"`
	Static    StaticSummary   `json:"static"`
}

// ManifestEntry names one generated page.
type ManifestEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Page  string `json:"page"`
}

// NewRenderer builds the case renderer for cfg. imageSource may be nil.
func NewRenderer(cfg *config.Config, log *zap.Logger, imageSource func(string) string) *render.Renderer {
	opts := render.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		ImageSource:     imageSource,
	}
	if cfg.CodeHighlight == config.HighlightServer {
		opts.Highlighter = render.NewChromaHighlighter(cfg.HighlightStyle)
	}
	return render.New(log, opts)
}

// ResolveVideos returns the carousel entries: discovered from videos_dir
// when set, the configured list otherwise.
func ResolveVideos(cfg *config.Config) ([]carousel.Video, error) {
	if cfg.VideosDir == "" {
		return cfg.Videos, nil
	}
	return carousel.Discover(cfg.VideosDir)
}

// Generate builds the full static site. A case document that fails to load
// still produces an index page showing the error, and the error is returned.
func (g *SiteGenerator) Generate(ctx context.Context) (*Result, error) {
	cfg := g.Config
	out := cfg.OutputDir
	res := &Result{BuildID: uuid.NewString()}

	videos, err := ResolveVideos(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving videos: %w", err)
	}
	res.Videos = len(videos)

	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, err
	}

	if cfg.StaticDir != "" {
		sum, err := copyStatic(cfg.StaticDir, filepath.Join(out, filepath.Base(cfg.StaticDir)), out, cfg.StaticExclude)
		if err != nil {
			return nil, fmt.Errorf("copying static files: %w", err)
		}
		res.Static = sum
		g.Log.Debug("Static files copied",
			zap.Int("files", sum.Files),
			zap.Int("copied", sum.Copied),
			zap.Int("images", sum.Images),
			zap.Int("videos", sum.Videos))
	}

	var thumbs *Thumbnailer
	var imageSource func(string) string
	if cfg.Thumbnails.Enabled {
		thumbs = NewThumbnailer(".", out, cfg.Thumbnails.MaxWidth, g.Log)
		imageSource = thumbs.Source
	}

	gallery := LoadGallery(ctx, cfg.Data, NewRenderer(cfg, g.Log, imageSource), g.Log)
	layout := &Layout{
		Title:   cfg.Title,
		BuildID: res.BuildID,
		Videos:  videos,
		Links:   StaticLinks,
	}

	// Write static assets.
	for name, asset := range Assets {
		if err := writeFile(filepath.Join(out, name), []byte(asset.Content)); err != nil {
			return nil, err
		}
	}

	if err := g.renderPage(filepath.Join(out, "index.html"), func(w io.Writer) error {
		return layout.Index(w, gallery)
	}); err != nil {
		return nil, err
	}
	res.Pages++

	if err := gallery.Err(); err != nil {
		return res, fmt.Errorf("loading cases from %s: %w", cfg.Data, err)
	}

	manifest := Manifest{
		BuildID:   res.BuildID,
		Title:     cfg.Title,
		Source:    cfg.Data,
		Generated: time.Now().UTC(),
		Cases:     []ManifestEntry{},
		Videos:    []ManifestEntry{},
		Static:    res.Static,
	}

	all := gallery.Cases()
	var tally progress.Tally
	g.Reporter.Start(len(all))
	for i, c := range all {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		page := CaseFile(c)
		if err := g.renderPage(filepath.Join(out, filepath.FromSlash(page)), func(w io.Writer) error {
			return layout.CasePage(w, gallery, c.ID)
		}); err != nil {
			return res, fmt.Errorf("rendering case %d: %w", c.ID, err)
		}
		manifest.Cases = append(manifest.Cases, ManifestEntry{ID: c.ID, Title: c.Title, Page: page})
		step := caseStep(c)
		tally.Add(step)
		g.Reporter.Step(i+1, step)
		res.Pages++
	}
	g.Reporter.Finish(tally)
	res.Cases = len(all)
	res.Invalid = tally.Invalid

	for i, v := range videos {
		page := VideoFile(i + 1)
		if err := g.renderPage(filepath.Join(out, filepath.FromSlash(page)), func(w io.Writer) error {
			return layout.VideoPage(w, i+1)
		}); err != nil {
			return res, fmt.Errorf("rendering video page %d: %w", i+1, err)
		}
		manifest.Videos = append(manifest.Videos, ManifestEntry{ID: i + 1, Title: v.Title, Page: page})
		res.Pages++
	}

	if err := writeJSON(filepath.Join(out, "cases.json"), gallery.Document()); err != nil {
		return res, err
	}
	if err := writeJSON(filepath.Join(out, "manifest.json"), manifest); err != nil {
		return res, err
	}

	if thumbs != nil {
		res.Thumbs = thumbs.Count()
	}

	g.Log.Info("Site generated",
		zap.String("output", out),
		zap.String("build", res.BuildID),
		zap.Int("cases", res.Cases),
		zap.Int("videos", res.Videos),
		zap.Int("thumbnails", res.Thumbs))
	return res, nil
}

// renderPage renders one page into memory and writes it to outPath.
func (g *SiteGenerator) renderPage(outPath string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	g.Log.Debug("Writing page", zap.String("path", outPath))
	return writeFile(outPath, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, data)
}

// copyStatic copies the assets under src into dst, skipping skip (the output
// directory, when it lives inside src) and anything matching exclude. Files
// whose content is already in place are left alone.
func copyStatic(src, dst, skip string, exclude []string) (StaticSummary, error) {
	var sum StaticSummary
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:  src,
		Exclude:  exclude,
		SkipDirs: []string{skip},
	})
	if err != nil {
		return sum, err
	}

	for _, f := range files {
		sum.Files++
		switch f.Kind {
		case walker.KindImage:
			sum.Images++
		case walker.KindVideo:
			sum.Videos++
		}

		target := filepath.Join(dst, filepath.FromSlash(f.RelPath))
		if h, err := walker.HashFile(target); err == nil && h == f.ContentHash {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return sum, err
		}
		if err := copyFile(f.Path, target); err != nil {
			return sum, fmt.Errorf("copying %s: %w", f.RelPath, err)
		}
		sum.Copied++
	}
	return sum, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// caseStep summarizes c for the progress reporter. A case without sections
// renders as an error fragment too.
func caseStep(c cases.Case) progress.Step {
	step := progress.Step{ID: c.ID, Title: c.Title, Sections: len(c.Sections), Problem: c.Problems()}
	if step.Problem == nil && c.Sections == nil {
		step.Problem = errors.New("missing sections")
	}
	return step
}
