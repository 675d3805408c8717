package carousel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
)

// headerSize is how much of a file filetype needs to sniff its type.
const headerSize = 262

// Discover lists the video files in dir, sniffed by content rather than
// extension, in natural name order. Titles are numbered from the file names.
func Discover(dir string) ([]Video, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading video dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))

	var videos []Video
	for _, name := range names {
		path := filepath.Join(dir, name)
		ok, err := isVideo(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		videos = append(videos, Video{
			Src:   filepath.ToSlash(path),
			Title: fmt.Sprintf("Video Demo %d: %s", len(videos)+1, strings.TrimSuffix(name, filepath.Ext(name))),
		})
	}
	return videos, nil
}

func isVideo(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return filetype.IsVideo(head[:n]), nil
}
