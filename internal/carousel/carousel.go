package carousel

import (
	"fmt"
	"sync"
)

// Video is one carousel entry.
type Video struct {
	Src   string `yaml:"src" koanf:"src" json:"src"`
	Title string `yaml:"title" koanf:"title" json:"title"`
}

// State is what the carousel shows at its current position.
type State struct {
	Index        int
	Total        int
	Src          string
	Title        string
	Counter      string // "position / total", 1-based
	PrevDisabled bool
	NextDisabled bool
	Hidden       bool // no videos: the carousel is not shown
}

// Carousel is a bounds-checked linear navigator over a fixed video list.
type Carousel struct {
	mu      sync.Mutex
	videos  []Video
	current int
}

// New creates a carousel positioned at the first video.
func New(videos []Video) *Carousel {
	return &Carousel{videos: append([]Video(nil), videos...)}
}

// Len returns the number of videos.
func (c *Carousel) Len() int { return len(c.videos) }

// Videos returns a copy of the video list.
func (c *Carousel) Videos() []Video {
	return append([]Video(nil), c.videos...)
}

// Select moves to index i. Out of range indices are rejected.
func (c *Carousel) Select(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.videos) {
		return fmt.Errorf("video index %d out of range [0, %d)", i, len(c.videos))
	}
	c.current = i
	return nil
}

// Next advances one position. It reports false at the last video.
func (c *Carousel) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current >= len(c.videos)-1 {
		return false
	}
	c.current++
	return true
}

// Prev moves back one position. It reports false at the first video.
func (c *Carousel) Prev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current <= 0 {
		return false
	}
	c.current--
	return true
}

// State returns the current display state.
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StateAt(c.videos, c.current)
}

// StateAt returns the display state of videos at index i without a
// Carousel, for rendering a fixed position. i must be in range unless the
// list is empty.
func StateAt(videos []Video, i int) State {
	if len(videos) == 0 {
		return State{Hidden: true}
	}
	v := videos[i]
	return State{
		Index:        i,
		Total:        len(videos),
		Src:          v.Src,
		Title:        v.Title,
		Counter:      fmt.Sprintf("%d / %d", i+1, len(videos)),
		PrevDisabled: i == 0,
		NextDisabled: i == len(videos)-1,
	}
}
