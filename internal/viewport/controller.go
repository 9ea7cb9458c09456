package viewport

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"wildguard/internal/geo"
	"wildguard/internal/layers"
	"wildguard/internal/lockpoints"
)

// Controller owns one session's view: the transform, the locked points, the layer
// policy and the live cursor. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	t      *Transform
	store  *lockpoints.Store
	policy *layers.Policy
	log    logrus.FieldLogger

	cursor    geo.Coordinate
	hasCursor bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// WithStore replaces the default locked-point store.
func WithStore(s *lockpoints.Store) ControllerOption {
	return func(c *Controller) { c.store = s }
}

// WithPolicy replaces the default layer policy.
func WithPolicy(p *layers.Policy) ControllerOption {
	return func(c *Controller) { c.policy = p }
}

// NewController wraps t.
func NewController(t *Transform, opts ...ControllerOption) *Controller {
	c := &Controller{t: t}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = lockpoints.New()
	}
	if c.policy == nil {
		c.policy = layers.Default()
	}
	if c.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		c.log = l
	}
	return c
}

// Policy returns the layer policy. It is immutable and safe to share.
func (c *Controller) Policy() *layers.Policy { return c.policy }

func (c *Controller) Bounds() geo.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.Bounds()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.State()
}

func (c *Controller) PixelToGeo(p Pixel, r Rect) geo.Coordinate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.PixelToGeo(p, r)
}

func (c *Controller) GeoToPixel(g geo.Coordinate, r Rect) Pixel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.GeoToPixel(g, r)
}

func (c *Controller) MarkerPixel(g geo.Coordinate, r Rect) Pixel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.MarkerPixel(g, r)
}

func (c *Controller) PanBy(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t.PanBy(dx, dy)
}

// SetZoom clamps and applies a zoom level and returns the resulting state.
func (c *Controller) SetZoom(z float64) State {
	return c.zoom(func() { c.t.SetZoom(z) })
}

func (c *Controller) ZoomIn() State  { return c.zoom(c.t.ZoomIn) }
func (c *Controller) ZoomOut() State { return c.zoom(c.t.ZoomOut) }

// ZoomInAt zooms in while the coordinate under anchor stays under anchor.
func (c *Controller) ZoomInAt(anchor Pixel, r Rect) State {
	return c.zoom(func() { c.anchored(c.t.ZoomIn, anchor, r) })
}

// ZoomOutAt is ZoomInAt in the other direction.
func (c *Controller) ZoomOutAt(anchor Pixel, r Rect) State {
	return c.zoom(func() { c.anchored(c.t.ZoomOut, anchor, r) })
}

// anchored runs a zoom and pans so anchor keeps its coordinate. Landing on zoom 1
// keeps the centered reset instead.
func (c *Controller) anchored(apply func(), anchor Pixel, r Rect) {
	if r.Empty() {
		apply()
		return
	}
	g := c.t.PixelToGeo(anchor, r)
	apply()
	if c.t.Zoom() == 1 {
		return
	}
	p := c.t.GeoToPixel(g, r)
	c.t.PanBy(anchor.X-p.X, anchor.Y-p.Y)
}

func (c *Controller) zoom(apply func()) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.t.Zoom()
	apply()
	s := c.t.State()
	if s.Zoom != before {
		c.log.WithFields(logrus.Fields{
			"from": before,
			"to":   s.Zoom,
			"tier": c.policy.TierFor(s.Zoom).String(),
		}).Debug("zoom changed")
	}
	return s
}

// Recenter restores zoom 1 and a centered pan.
func (c *Controller) Recenter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t.Recenter()
	c.log.Debug("view recentered")
}

// SetCursor records the live cursor coordinate.
func (c *Controller) SetCursor(g geo.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor, c.hasCursor = g, true
}

// ClearCursor hides the readout, e.g. when the pointer leaves the map.
func (c *Controller) ClearCursor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasCursor = false
}

func (c *Controller) Cursor() (geo.Coordinate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor, c.hasCursor
}

// Lock adds a locked point at g.
func (c *Controller) Lock(g geo.Coordinate) lockpoints.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.store.Add(g)
	c.log.WithFields(logrus.Fields{"id": p.ID, "lat": g.Lat, "lng": g.Lng, "count": c.store.Len()}).Info("point locked")
	return p
}

// RemoveAt drops a locked point; out-of-range indices are ignored.
func (c *Controller) RemoveAt(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.store.RemoveAt(i)
	if ok {
		c.log.WithFields(logrus.Fields{"index": i, "count": c.store.Len()}).Info("locked point removed")
	}
	return ok
}

// ClearLocks removes every locked point.
func (c *Controller) ClearLocks() {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.store.Len()
	c.store.Clear()
	c.log.WithField("removed", n).Info("locked points cleared")
}

// LockAt returns the locked point at index i.
func (c *Controller) LockAt(i int) (lockpoints.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.At(i)
}

func (c *Controller) Locks() []lockpoints.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Points()
}

// NearestLock measures the locked point closest to the live cursor.
func (c *Controller) NearestLock() (lockpoints.Reading, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasCursor {
		return lockpoints.Reading{}, false
	}
	return c.store.NearestTo(c.cursor)
}

// LockReadings measures every locked point from the cursor, or from the bounds
// center when there is no cursor.
func (c *Controller) LockReadings() []lockpoints.Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref := c.t.Bounds().Center()
	if c.hasCursor {
		ref = c.cursor
	}
	return c.store.Readings(ref)
}

func (c *Controller) Tier() layers.Tier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy.TierFor(c.t.Zoom())
}

// Layers returns the policy flags for the current zoom.
func (c *Controller) Layers() map[layers.Kind]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy.Flags(c.t.Zoom())
}
