package viewport

import (
	"errors"
	"fmt"
	"math"

	"wildguard/internal/geo"
)

// ErrInvalidZoomRange is returned for a zoom range that cannot hold the default zoom.
var ErrInvalidZoomRange = errors.New("invalid zoom range")

const (
	DefaultMinZoom  = 0.5
	DefaultMaxZoom  = 2.0
	DefaultZoomStep = 0.25
)

// Pixel is a screen position relative to the render surface.
type Pixel struct {
	X float64
	Y float64
}

// Sub returns the delta from q to p.
func (p Pixel) Sub(q Pixel) Offset { return Offset{X: p.X - q.X, Y: p.Y - q.Y} }

// Offset is a pan translation in pixels.
type Offset struct {
	X float64
	Y float64
}

// Rect is the render surface, re-queried on every interaction because it changes on resize.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Empty reports whether the rect has no area to project onto.
func (r Rect) Empty() bool { return !(r.Width > 0 && r.Height > 0) }

// State is the mutable view: a zoom factor and a pan offset.
type State struct {
	Zoom float64
	Pan  Offset
}

// Transform owns the view state and converts between screen and geographic space.
// It is not safe for concurrent use; Controller serializes access.
type Transform struct {
	bounds  geo.Bounds
	minZoom float64
	maxZoom float64
	step    float64
	inset   float64

	state State
}

// Option configures a Transform.
type Option func(*Transform)

// WithZoomRange sets the clamp range for SetZoom.
func WithZoomRange(min, max float64) Option {
	return func(t *Transform) {
		t.minZoom = min
		t.maxZoom = max
	}
}

// WithZoomStep sets the increment used by ZoomIn and ZoomOut.
func WithZoomStep(step float64) Option {
	return func(t *Transform) { t.step = step }
}

// WithMarkerInset sets the edge inset used by MarkerPixel.
func WithMarkerInset(inset float64) Option {
	return func(t *Transform) { t.inset = inset }
}

// NewTransform validates the bounds and zoom range and returns a centered view.
func NewTransform(b geo.Bounds, opts ...Option) (*Transform, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	t := &Transform{
		bounds:  b,
		minZoom: DefaultMinZoom,
		maxZoom: DefaultMaxZoom,
		step:    DefaultZoomStep,
		inset:   geo.MarkerInset,
	}
	for _, opt := range opts {
		opt(t)
	}
	if !(t.minZoom > 0) || t.minZoom > t.maxZoom || math.IsInf(t.maxZoom, 0) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidZoomRange, t.minZoom, t.maxZoom)
	}
	if t.minZoom > 1 || t.maxZoom < 1 {
		return nil, fmt.Errorf("%w: [%v, %v] must include 1", ErrInvalidZoomRange, t.minZoom, t.maxZoom)
	}
	if !(t.step > 0) {
		return nil, fmt.Errorf("%w: step %v must be positive", ErrInvalidZoomRange, t.step)
	}
	if t.inset < 0 || t.inset >= 0.5 {
		return nil, fmt.Errorf("marker inset %v outside [0, 0.5)", t.inset)
	}
	t.Recenter()
	return t, nil
}

func (t *Transform) Bounds() geo.Bounds { return t.bounds }
func (t *Transform) State() State       { return t.state }
func (t *Transform) Zoom() float64      { return t.state.Zoom }
func (t *Transform) Pan() Offset        { return t.state.Pan }

// ZoomRange returns the clamp range.
func (t *Transform) ZoomRange() (min, max float64) { return t.minZoom, t.maxZoom }

// PixelToGeo resolves the geographic coordinate under p. An empty rect resolves to
// the bounds center.
func (t *Transform) PixelToGeo(p Pixel, r Rect) geo.Coordinate {
	if r.Empty() {
		return t.bounds.Center()
	}
	x := (p.X - r.Left - t.state.Pan.X) / t.state.Zoom
	y := (p.Y - r.Top - t.state.Pan.Y) / t.state.Zoom
	return geo.Unproject(geo.Fraction{X: x / r.Width, Y: y / r.Height}, t.bounds)
}

// GeoToPixel places c on screen. It is the inverse of PixelToGeo for the same rect and state.
func (t *Transform) GeoToPixel(c geo.Coordinate, r Rect) Pixel {
	return t.fractionToPixel(geo.Project(c, t.bounds), r)
}

// MarkerPixel is GeoToPixel with the marker inset applied before scaling, so
// out-of-window entities stay pinned just inside the basemap edge.
func (t *Transform) MarkerPixel(c geo.Coordinate, r Rect) Pixel {
	return t.fractionToPixel(geo.ProjectInset(c, t.bounds, t.inset), r)
}

func (t *Transform) fractionToPixel(f geo.Fraction, r Rect) Pixel {
	return Pixel{
		X: r.Left + t.state.Pan.X + f.X*r.Width*t.state.Zoom,
		Y: r.Top + t.state.Pan.Y + f.Y*r.Height*t.state.Zoom,
	}
}

// SetZoom clamps z into the zoom range. Landing exactly on 1 snaps the pan back to center.
func (t *Transform) SetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	if z < t.minZoom {
		z = t.minZoom
	}
	if z > t.maxZoom {
		z = t.maxZoom
	}
	t.state.Zoom = z
	if z == 1 {
		t.state.Pan = Offset{}
	}
}

func (t *Transform) ZoomIn()  { t.SetZoom(t.stepped(1)) }
func (t *Transform) ZoomOut() { t.SetZoom(t.stepped(-1)) }

// stepped moves n steps and snaps onto the step grid anchored at 1, so repeated
// steps never drift away from 1 or the tier thresholds.
func (t *Transform) stepped(n int) float64 {
	const eps = 1e-9
	pos := (t.state.Zoom - 1) / t.step
	k := math.Floor(pos+eps) + 1
	if n < 0 {
		k = math.Ceil(pos-eps) - 1
	}
	return math.Round((1+k*t.step)*1e9) / 1e9
}

// PanBy translates the view. Panning past the bounds is allowed.
func (t *Transform) PanBy(dx, dy float64) {
	t.state.Pan.X += dx
	t.state.Pan.Y += dy
}

// Recenter restores the mount-time view.
func (t *Transform) Recenter() {
	t.state = State{Zoom: 1}
}
