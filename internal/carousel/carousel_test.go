package carousel

import (
	"os"
	"path/filepath"
	"testing"
)

var demo = []Video{
	{Src: "static/videos/1.mp4", Title: "one"},
	{Src: "static/videos/2.mp4", Title: "two"},
	{Src: "static/videos/3.mp4", Title: "three"},
}

func TestInitialState(t *testing.T) {
	c := New(demo)
	s := c.State()
	if s.Index != 0 || s.Src != "static/videos/1.mp4" || s.Title != "one" {
		t.Errorf("initial state = %+v", s)
	}
	if s.Counter != "1 / 3" {
		t.Errorf("counter = %q, want %q", s.Counter, "1 / 3")
	}
	if !s.PrevDisabled || s.NextDisabled {
		t.Errorf("buttons at start: prev disabled=%v next disabled=%v", s.PrevDisabled, s.NextDisabled)
	}
}

func TestNextPrevBounds(t *testing.T) {
	c := New(demo)
	if c.Prev() {
		t.Error("Prev at the first video should fail")
	}
	if !c.Next() || !c.Next() {
		t.Fatal("Next should succeed twice")
	}
	if c.Next() {
		t.Error("Next at the last video should fail")
	}
	s := c.State()
	if s.Index != 2 || s.Counter != "3 / 3" || s.PrevDisabled || !s.NextDisabled {
		t.Errorf("state at end = %+v", s)
	}
	if !c.Prev() || c.State().Index != 1 {
		t.Errorf("Prev from the end = %+v", c.State())
	}
}

func TestSelect(t *testing.T) {
	c := New(demo)
	if err := c.Select(1); err != nil {
		t.Fatalf("Select(1): %v", err)
	}
	if s := c.State(); s.Title != "two" || s.PrevDisabled || s.NextDisabled {
		t.Errorf("middle state = %+v", s)
	}
	for _, i := range []int{-1, 3} {
		if err := c.Select(i); err == nil {
			t.Errorf("Select(%d) should fail", i)
		}
	}
	if c.State().Index != 1 {
		t.Error("failed Select should not move the carousel")
	}
}

func TestEmpty(t *testing.T) {
	c := New(nil)
	if !c.State().Hidden {
		t.Error("empty carousel should be hidden")
	}
	if c.Next() || c.Prev() {
		t.Error("navigation on an empty carousel should fail")
	}
	if err := c.Select(0); err == nil {
		t.Error("Select on an empty carousel should fail")
	}
}

func TestSingleVideo(t *testing.T) {
	s := New(demo[:1]).State()
	if !s.PrevDisabled || !s.NextDisabled || s.Counter != "1 / 1" {
		t.Errorf("single video state = %+v", s)
	}
}

func TestNewCopiesInput(t *testing.T) {
	videos := append([]Video(nil), demo...)
	c := New(videos)
	videos[0].Title = "changed"
	if c.State().Title != "one" {
		t.Error("carousel should not alias the caller's slice")
	}
}

func mp4Header() []byte {
	return append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"10.mp4":      mp4Header(),
		"2.mp4":       mp4Header(),
		"clip.bin":    mp4Header(),
		"notes.txt":   []byte("not a video"),
		".hidden.mp4": mp4Header(),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	videos, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("videos = %+v, want 3", videos)
	}
	wantNames := []string{"2.mp4", "10.mp4", "clip.bin"}
	for i, name := range wantNames {
		if filepath.Base(videos[i].Src) != name {
			t.Errorf("video %d = %s, want %s", i, videos[i].Src, name)
		}
	}
	if videos[0].Title != "Video Demo 1: 2" {
		t.Errorf("title = %q", videos[0].Title)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for a missing directory")
	}
}
