package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildguard/internal/geo"
	"wildguard/internal/pointer"
	"wildguard/internal/viewport"
)

var (
	eastAfrica = geo.Bounds{MinLat: -4.5, MaxLat: 4.5, MinLng: 34, MaxLng: 42}
	surface    = viewport.Rect{Width: 800, Height: 600}
)

type recorder struct {
	cursors []geo.Coordinate
	locks   []geo.Coordinate
	leaves  int
}

func setup(t *testing.T, opts ...pointer.Option) (*pointer.Controller, *viewport.Transform, *recorder) {
	t.Helper()
	tr, err := viewport.NewTransform(eastAfrica)
	require.NoError(t, err)
	rec := &recorder{}
	opts = append([]pointer.Option{
		pointer.OnCursor(func(c geo.Coordinate) { rec.cursors = append(rec.cursors, c) }),
		pointer.OnLock(func(c geo.Coordinate) { rec.locks = append(rec.locks, c) }),
		pointer.OnLeave(func() { rec.leaves++ }),
	}, opts...)
	return pointer.New(tr, func() viewport.Rect { return surface }, opts...), tr, rec
}

func TestHoverPublishesCursor(t *testing.T) {
	c, _, rec := setup(t)
	assert.Equal(t, pointer.Idle, c.State())

	coord, ok := c.PointerMove(viewport.Pixel{X: 400, Y: 300})
	require.True(t, ok)
	assert.Equal(t, pointer.Hovering, c.State())
	assert.InDelta(t, 0, coord.Lat, 1e-9)
	assert.InDelta(t, 38, coord.Lng, 1e-9)
	require.Len(t, rec.cursors, 1)
	assert.Equal(t, coord, rec.cursors[0])
}

func TestClickLocksWhenNotPanning(t *testing.T) {
	c, _, rec := setup(t)

	c.PointerDown(viewport.Pixel{X: 120, Y: 393})
	assert.Equal(t, pointer.Idle, c.State(), "press is a no-op outside pan mode")
	c.PointerUp()

	coord, locked := c.Click(viewport.Pixel{X: 120, Y: 393})
	require.True(t, locked)
	require.Len(t, rec.locks, 1)
	assert.Equal(t, coord, rec.locks[0])
	assert.InDelta(t, 35.2, coord.Lng, 1e-9)
}

func TestClickIgnoredInPanMode(t *testing.T) {
	c, _, rec := setup(t, pointer.WithPanning(true))
	_, locked := c.Click(viewport.Pixel{X: 10, Y: 10})
	assert.False(t, locked)
	assert.Empty(t, rec.locks)
}

func TestDragPansIncrementally(t *testing.T) {
	c, tr, rec := setup(t, pointer.WithPanning(true))

	c.PointerDown(viewport.Pixel{X: 100, Y: 100})
	assert.Equal(t, pointer.Dragging, c.State())

	_, ok := c.PointerMove(viewport.Pixel{X: 110, Y: 95})
	assert.False(t, ok)
	c.PointerMove(viewport.Pixel{X: 130, Y: 90})
	c.PointerMove(viewport.Pixel{X: 130, Y: 90})

	assert.Equal(t, viewport.Offset{X: 30, Y: -10}, tr.Pan())
	assert.Empty(t, rec.cursors, "no readout while dragging")

	c.PointerUp()
	assert.Equal(t, pointer.Idle, c.State())

	c.PointerMove(viewport.Pixel{X: 200, Y: 200})
	assert.Equal(t, viewport.Offset{X: 30, Y: -10}, tr.Pan(), "hover after release does not pan")
	assert.Len(t, rec.cursors, 1)
}

func TestDragConsumesFollowingClick(t *testing.T) {
	c, _, rec := setup(t, pointer.WithPanning(true))

	c.PointerDown(viewport.Pixel{X: 100, Y: 100})
	c.PointerMove(viewport.Pixel{X: 150, Y: 100})
	// pan mode switched off before release: the release click still belongs to the drag
	c.SetPanning(false)
	assert.Equal(t, pointer.Idle, c.State())
	c.PointerUp()

	_, locked := c.Click(viewport.Pixel{X: 150, Y: 100})
	assert.False(t, locked)
	assert.Empty(t, rec.locks)

	_, locked = c.Click(viewport.Pixel{X: 150, Y: 100})
	assert.True(t, locked, "only one click is consumed")
}

func TestSlowReleaseAfterDragDoesNotLock(t *testing.T) {
	c, _, rec := setup(t, pointer.WithPanning(true))

	c.PointerDown(viewport.Pixel{X: 100, Y: 100})
	c.PointerUp()
	c.SetPanning(false)

	_, locked := c.Click(viewport.Pixel{X: 100, Y: 100})
	assert.False(t, locked)
	assert.Empty(t, rec.locks)
}

func TestNewGestureClearsStaleConsume(t *testing.T) {
	c, _, rec := setup(t, pointer.WithPanning(true))

	c.PointerDown(viewport.Pixel{X: 1, Y: 1})
	c.PointerUp()
	// the platform never delivered the click for that release
	c.SetPanning(false)
	c.PointerDown(viewport.Pixel{X: 5, Y: 5})
	c.PointerUp()

	_, locked := c.Click(viewport.Pixel{X: 5, Y: 5})
	assert.True(t, locked)
	assert.Len(t, rec.locks, 1)
}

func TestPointerLeave(t *testing.T) {
	c, _, rec := setup(t, pointer.WithPanning(true))

	c.PointerDown(viewport.Pixel{X: 1, Y: 1})
	c.PointerLeave()
	assert.Equal(t, pointer.Idle, c.State())
	assert.Equal(t, 1, rec.leaves)

	c.PointerMove(viewport.Pixel{X: 3, Y: 3})
	assert.Equal(t, pointer.Hovering, c.State())
}

func TestTogglePanning(t *testing.T) {
	c, _, _ := setup(t)
	assert.False(t, c.Panning())
	assert.True(t, c.TogglePanning())
	assert.True(t, c.Panning())
	assert.False(t, c.TogglePanning())
}

func TestRectResolvedPerEvent(t *testing.T) {
	tr, err := viewport.NewTransform(eastAfrica)
	require.NoError(t, err)
	rect := viewport.Rect{Width: 800, Height: 600}
	c := pointer.New(tr, func() viewport.Rect { return rect })

	before, _ := c.PointerMove(viewport.Pixel{X: 400, Y: 300})
	rect = viewport.Rect{Width: 1600, Height: 1200}
	after, _ := c.PointerMove(viewport.Pixel{X: 400, Y: 300})

	assert.InDelta(t, 38, before.Lng, 1e-9)
	assert.InDelta(t, 36, after.Lng, 1e-9)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "idle", pointer.Idle.String())
	assert.Equal(t, "hovering", pointer.Hovering.String())
	assert.Equal(t, "dragging", pointer.Dragging.String())
	assert.Equal(t, "unknown", pointer.State(7).String())
}

func TestClaimClick(t *testing.T) {
	c, _, rec := setup(t)
	assert.True(t, c.ClaimClick())
	assert.Empty(t, rec.locks, "a claimed click never locks")

	c.SetPanning(true)
	assert.False(t, c.ClaimClick())

	c.PointerDown(viewport.Pixel{X: 10, Y: 10})
	c.PointerUp()
	c.SetPanning(false)
	assert.False(t, c.ClaimClick(), "click closing a drag is consumed")
	assert.True(t, c.ClaimClick())
}
