// Package viewer models the image viewer overlay: zoom, pan, drag and the
// page scroll lock. The page script drives the same state in the browser
// using the constants exported here.
package viewer

import (
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	MinZoom        = 0.1
	MaxZoom        = 5.0
	ZoomStep       = 1.2
	ResizeDebounce = 100 * time.Millisecond
)

// Size is a width/height pair in CSS pixels.
type Size struct {
	Width, Height float64
}

// State is a snapshot of the viewer.
type State struct {
	Open       bool
	Src        string
	Caption    string
	Zoom       float64
	PanX, PanY float64
	Dragging   bool
	// ScrollLocked is true while the page behind the overlay must not scroll.
	ScrollLocked bool
}

// Viewer is the image viewer state machine. All methods are safe for
// concurrent use; the resize debounce fires on its own goroutine.
type Viewer struct {
	mu sync.Mutex

	open      bool
	src       string
	caption   string
	natural   Size
	container Size

	zoom       float64
	panX, panY float64

	dragging           bool
	dragOffX, dragOffY float64

	debounce    time.Duration
	resizeTimer *time.Timer
	onChange    func(State)
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithDebounce overrides the resize debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(v *Viewer) { v.debounce = d }
}

// WithOnChange registers a callback run after every state change, outside
// the viewer lock.
func WithOnChange(fn func(State)) Option {
	return func(v *Viewer) { v.onChange = fn }
}

// New creates a closed viewer.
func New(opts ...Option) *Viewer {
	v := &Viewer{zoom: 1, debounce: ResizeDebounce}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var shared = sync.OnceValue(func() *Viewer { return New() })

// Shared returns the page-wide viewer, creating it on first use.
func Shared() *Viewer { return shared() }

// FitZoom returns the zoom that fits an image inside a container without
// upscaling it past its natural size. Degenerate sizes fit at 1. The zoom
// bounds only limit the zoom steps, so a very large image may fit below
// MinZoom.
func FitZoom(image, container Size) float64 {
	if image.Width <= 0 || image.Height <= 0 || container.Width <= 0 || container.Height <= 0 {
		return 1
	}
	return math.Min(math.Min(container.Width/image.Width, container.Height/image.Height), 1)
}

func clamp(z float64) float64 {
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}

// Open shows src at its fit zoom with the pan reset and page scrolling locked.
func (v *Viewer) Open(src, caption string, natural, container Size) {
	v.update(func() {
		v.open = true
		v.src = src
		v.caption = caption
		v.natural = natural
		v.container = container
		v.dragging = false
		v.fitLocked()
	})
}

// Close hides the viewer and restores page scrolling.
func (v *Viewer) Close() {
	v.update(func() {
		v.open = false
		v.dragging = false
		if v.resizeTimer != nil {
			v.resizeTimer.Stop()
			v.resizeTimer = nil
		}
	})
}

// Reset re-fits the current image.
func (v *Viewer) Reset() {
	v.update(v.fitLocked)
}

// ZoomIn enlarges by one step, up to MaxZoom.
func (v *Viewer) ZoomIn() {
	v.update(func() { v.zoom = clamp(v.zoom * ZoomStep) })
}

// ZoomOut shrinks by one step, down to MinZoom.
func (v *Viewer) ZoomOut() {
	v.update(func() { v.zoom = clamp(v.zoom / ZoomStep) })
}

// Wheel applies one zoom step per wheel event: scrolling up zooms in.
func (v *Viewer) Wheel(deltaY float64) {
	if deltaY < 0 {
		v.ZoomIn()
	} else {
		v.ZoomOut()
	}
}

// PointerDown starts a drag at client coordinates (x, y).
func (v *Viewer) PointerDown(x, y float64) {
	v.update(func() {
		if !v.open {
			return
		}
		v.dragging = true
		v.dragOffX = x - v.panX
		v.dragOffY = y - v.panY
	})
}

// PointerMove pans relative to the drag start while dragging.
func (v *Viewer) PointerMove(x, y float64) {
	v.update(func() {
		if !v.dragging {
			return
		}
		v.panX = x - v.dragOffX
		v.panY = y - v.dragOffY
	})
}

// PointerUp ends a drag.
func (v *Viewer) PointerUp() {
	v.update(func() { v.dragging = false })
}

// Key handles a keyboard key; Escape closes the viewer. It reports whether
// the key was consumed.
func (v *Viewer) Key(key string) bool {
	if key != "Escape" || !v.IsOpen() {
		return false
	}
	v.Close()
	return true
}

// ClickOverlay closes the viewer, as a click outside the image does.
func (v *Viewer) ClickOverlay() {
	v.Close()
}

// Resize records a new container size and re-fits the image after the
// debounce delay. Further resizes within the delay restart it.
func (v *Viewer) Resize(container Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open {
		return
	}
	v.container = container
	if v.resizeTimer != nil {
		v.resizeTimer.Stop()
	}
	v.resizeTimer = time.AfterFunc(v.debounce, func() {
		v.update(func() {
			if v.open {
				v.fitLocked()
			}
		})
	})
}

// IsOpen reports whether the viewer is showing an image.
func (v *Viewer) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.open
}

// State returns a snapshot of the viewer.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stateLocked()
}

// Transform returns the CSS transform for the image element.
func (v *Viewer) Transform() string {
	s := v.State()
	return Transform(s.PanX, s.PanY, s.Zoom)
}

// Transform formats a pan/zoom as a CSS transform.
func Transform(x, y, zoom float64) string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", x, y, zoom)
}

func (v *Viewer) fitLocked() {
	v.zoom = FitZoom(v.natural, v.container)
	v.panX, v.panY = 0, 0
}

func (v *Viewer) stateLocked() State {
	return State{
		Open:         v.open,
		Src:          v.src,
		Caption:      v.caption,
		Zoom:         v.zoom,
		PanX:         v.panX,
		PanY:         v.panY,
		Dragging:     v.dragging,
		ScrollLocked: v.open,
	}
}

// update applies fn under the lock and then notifies onChange.
func (v *Viewer) update(fn func()) {
	v.mu.Lock()
	fn()
	s := v.stateLocked()
	cb := v.onChange
	v.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}
