// Package pointer turns raw pointer events into pan drags, cursor readouts and
// click-to-lock actions.
package pointer

import (
	"wildguard/internal/geo"
	"wildguard/internal/viewport"
)

// State of the interaction.
type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Viewport is the part of the view the controller reads and pans.
type Viewport interface {
	PixelToGeo(p viewport.Pixel, r viewport.Rect) geo.Coordinate
	PanBy(dx, dy float64)
}

// Controller is a small state machine over pointer events. It is driven from a
// single event loop and is not safe for concurrent use.
type Controller struct {
	vp   Viewport
	rect func() viewport.Rect

	onCursor func(geo.Coordinate)
	onLock   func(geo.Coordinate)
	onLeave  func()

	state     State
	panning   bool
	dragStart viewport.Pixel
	// set when a drag ends; the click the platform fires after the release belongs to the drag
	consumeClick bool
}

// Option configures a Controller.
type Option func(*Controller)

// OnCursor receives the coordinate under the pointer on every hover move.
func OnCursor(fn func(geo.Coordinate)) Option {
	return func(c *Controller) { c.onCursor = fn }
}

// OnLock receives the coordinate of each click-to-lock.
func OnLock(fn func(geo.Coordinate)) Option {
	return func(c *Controller) { c.onLock = fn }
}

// OnLeave is called when the pointer leaves the surface.
func OnLeave(fn func()) Option {
	return func(c *Controller) { c.onLeave = fn }
}

// WithPanning sets the initial pan mode.
func WithPanning(on bool) Option {
	return func(c *Controller) { c.panning = on }
}

// New builds a controller. rect is queried on every event that resolves a position.
func New(vp Viewport, rect func() viewport.Rect, opts ...Option) *Controller {
	c := &Controller{vp: vp, rect: rect}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State  { return c.state }
func (c *Controller) Panning() bool { return c.panning }

// SetPanning switches pan mode. Turning it off mid-drag ends the drag.
func (c *Controller) SetPanning(on bool) {
	c.panning = on
	if !on && c.state == Dragging {
		c.endDrag()
	}
}

// TogglePanning flips pan mode and returns the new value.
func (c *Controller) TogglePanning() bool {
	c.SetPanning(!c.panning)
	return c.panning
}

// PointerDown starts a drag when pan mode is on.
func (c *Controller) PointerDown(p viewport.Pixel) {
	c.consumeClick = false
	if !c.panning {
		return
	}
	c.state = Dragging
	c.dragStart = p
}

// PointerMove pans while dragging. Otherwise it publishes and returns the coordinate
// under the pointer; ok is false while dragging.
func (c *Controller) PointerMove(p viewport.Pixel) (coord geo.Coordinate, ok bool) {
	if c.state == Dragging {
		d := p.Sub(c.dragStart)
		c.vp.PanBy(d.X, d.Y)
		c.dragStart = p
		return geo.Coordinate{}, false
	}
	c.state = Hovering
	coord = c.vp.PixelToGeo(p, c.rect())
	if c.onCursor != nil {
		c.onCursor(coord)
	}
	return coord, true
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	if c.state == Dragging {
		c.endDrag()
	}
}

// Click locks the coordinate under p unless pan mode is on or the click closes a drag.
func (c *Controller) Click(p viewport.Pixel) (coord geo.Coordinate, locked bool) {
	if c.consumeClick {
		c.consumeClick = false
		return geo.Coordinate{}, false
	}
	if c.panning || c.state == Dragging {
		return geo.Coordinate{}, false
	}
	coord = c.vp.PixelToGeo(p, c.rect())
	if c.onLock != nil {
		c.onLock(coord)
	}
	return coord, true
}

// ClaimClick hands the current click to the caller, for example to select a marker,
// instead of locking. It is false when the click closes a drag or pan mode is on.
func (c *Controller) ClaimClick() bool {
	if c.consumeClick {
		c.consumeClick = false
		return false
	}
	return !c.panning && c.state != Dragging
}

// PointerLeave ends hovering and any drag in progress.
func (c *Controller) PointerLeave() {
	if c.state == Dragging {
		c.endDrag()
	}
	c.state = Idle
	if c.onLeave != nil {
		c.onLeave()
	}
}

func (c *Controller) endDrag() {
	c.state = Idle
	c.consumeClick = true
}
