package site

import (
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/cases"
	"github.com/ziadkadry99/casegallery/internal/walker"
)

// ThumbDir is where thumbnails are written, relative to the site root.
const ThumbDir = "thumbs"

// Thumbnailer scales local case images down to a maximum width. The page
// shows the thumbnail inline and the image viewer opens the original.
type Thumbnailer struct {
	root     string
	outDir   string
	maxWidth int
	log      *zap.Logger

	mu   sync.Mutex
	made map[string]string
}

// NewThumbnailer reads images relative to root and writes thumbnails under
// siteDir/thumbs.
func NewThumbnailer(root, siteDir string, maxWidth int, log *zap.Logger) *Thumbnailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Thumbnailer{
		root:     root,
		outDir:   filepath.Join(siteDir, ThumbDir),
		maxWidth: maxWidth,
		log:      log,
		made:     make(map[string]string),
	}
}

// Source returns the src to show inline for an image. Remote images,
// unreadable files and images already narrow enough keep their src.
func (t *Thumbnailer) Source(src string) string {
	if src == "" || cases.IsRemote(src) || strings.HasPrefix(src, "data:") {
		return src
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if thumb, ok := t.made[src]; ok {
		return thumb
	}

	thumb, err := t.generate(src)
	if err != nil {
		t.log.Warn("Unable to create thumbnail", zap.String("src", src), zap.Error(err))
		thumb = src
	}
	t.made[src] = thumb
	return thumb
}

// Count returns how many thumbnails were written.
func (t *Thumbnailer) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for src, thumb := range t.made {
		if thumb != src {
			n++
		}
	}
	return n
}

func (t *Thumbnailer) generate(src string) (string, error) {
	file := filepath.Join(t.root, filepath.FromSlash(strings.TrimPrefix(src, "/")))

	kind, err := filetype.MatchFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	if kind.MIME.Type != "image" {
		return src, nil
	}

	img, err := imaging.Open(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", file, err)
	}
	if img.Bounds().Dx() <= t.maxWidth {
		return src, nil
	}

	format, err := imaging.FormatFromExtension(kind.Extension)
	if err != nil {
		format = imaging.PNG
		kind.Extension = "png"
	}

	// The content hash keeps sources that slug alike (a-b.png, a/b.png) apart.
	hash, err := walker.HashFile(file)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", file, err)
	}
	name := slug.Make(strings.TrimSuffix(src, path.Ext(src)))
	if name == "" {
		name = "image"
	}
	name += "-" + hash[:8] + "." + kind.Extension

	if err := os.MkdirAll(t.outDir, 0o755); err != nil {
		return "", err
	}
	resized := imaging.Resize(img, t.maxWidth, 0, imaging.Lanczos)
	if err := writeImage(filepath.Join(t.outDir, name), resized, format); err != nil {
		return "", fmt.Errorf("encoding thumbnail of %s: %w", src, err)
	}

	t.log.Debug("Thumbnail created", zap.String("src", src), zap.String("thumb", name))
	return ThumbDir + "/" + name, nil
}

// writeImage encodes img to dst, removing the file again if anything fails.
func writeImage(dst string, img image.Image, format imaging.Format) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	err = multierr.Append(
		imaging.Encode(out, img, format, imaging.JPEGQuality(85)),
		out.Close(),
	)
	if err != nil {
		os.Remove(dst)
	}
	return err
}
