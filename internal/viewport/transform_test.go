package viewport_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildguard/internal/geo"
	"wildguard/internal/layers"
	"wildguard/internal/viewport"
)

var (
	eastAfrica = geo.Bounds{MinLat: -4.5, MaxLat: 4.5, MinLng: 34, MaxLng: 42}
	screen     = viewport.Rect{Left: 20, Top: 8, Width: 800, Height: 600}
)

func newTransform(t *testing.T, opts ...viewport.Option) *viewport.Transform {
	t.Helper()
	tr, err := viewport.NewTransform(eastAfrica, opts...)
	require.NoError(t, err)
	return tr
}

func TestNewTransformDefaults(t *testing.T) {
	tr := newTransform(t)
	assert.Equal(t, viewport.State{Zoom: 1}, tr.State())
	min, max := tr.ZoomRange()
	assert.Equal(t, 0.5, min)
	assert.Equal(t, 2.0, max)
	assert.Equal(t, eastAfrica, tr.Bounds())
}

func TestNewTransformRejectsBadInput(t *testing.T) {
	_, err := viewport.NewTransform(geo.Bounds{MinLat: 1, MaxLat: 1, MinLng: 0, MaxLng: 1})
	require.ErrorIs(t, err, geo.ErrInvalidBounds)

	for name, opt := range map[string]viewport.Option{
		"zero min":      viewport.WithZoomRange(0, 2),
		"inverted":      viewport.WithZoomRange(2, 0.5),
		"excludes one":  viewport.WithZoomRange(1.5, 3),
		"zero step":     viewport.WithZoomStep(0),
		"infinite max":  viewport.WithZoomRange(0.5, math.Inf(1)),
		"negative step": viewport.WithZoomStep(-0.25),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := viewport.NewTransform(eastAfrica, opt)
			require.ErrorIs(t, err, viewport.ErrInvalidZoomRange)
		})
	}

	_, err = viewport.NewTransform(eastAfrica, viewport.WithMarkerInset(0.5))
	require.Error(t, err)
}

func TestPixelToGeoAtDefaultView(t *testing.T) {
	tr := newTransform(t)

	nw := tr.PixelToGeo(viewport.Pixel{X: screen.Left, Y: screen.Top}, screen)
	assert.InDelta(t, eastAfrica.MaxLat, nw.Lat, 1e-9)
	assert.InDelta(t, eastAfrica.MinLng, nw.Lng, 1e-9)

	mid := tr.PixelToGeo(viewport.Pixel{X: screen.Left + 400, Y: screen.Top + 300}, screen)
	assert.InDelta(t, 0, mid.Lat, 1e-9)
	assert.InDelta(t, 38, mid.Lng, 1e-9)
}

func TestGeoToPixelKnownPark(t *testing.T) {
	tr := newTransform(t)
	p := tr.GeoToPixel(geo.Coordinate{Lat: -1.4, Lng: 35.2}, screen)
	assert.InDelta(t, 20+0.15*800, p.X, 1e-9)
	assert.InDelta(t, 8+(5.9/9)*600, p.Y, 1e-9)

	tr.SetZoom(2)
	tr.PanBy(-100, 40)
	p = tr.GeoToPixel(geo.Coordinate{Lat: -1.4, Lng: 35.2}, screen)
	assert.InDelta(t, 20-100+0.15*800*2, p.X, 1e-9)
	assert.InDelta(t, 8+40+(5.9/9)*600*2, p.Y, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		tr := newTransform(t)
		tr.SetZoom(0.5 + r.Float64()*1.5)
		tr.PanBy(r.Float64()*2000-1000, r.Float64()*2000-1000)
		rect := viewport.Rect{
			Left:   r.Float64() * 300,
			Top:    r.Float64() * 300,
			Width:  50 + r.Float64()*1500,
			Height: 50 + r.Float64()*1000,
		}
		c := geo.Coordinate{
			Lat: eastAfrica.MinLat + r.Float64()*(eastAfrica.MaxLat-eastAfrica.MinLat),
			Lng: eastAfrica.MinLng + r.Float64()*(eastAfrica.MaxLng-eastAfrica.MinLng),
		}
		back := tr.PixelToGeo(tr.GeoToPixel(c, rect), rect)
		require.InDelta(t, c.Lat, back.Lat, 1e-6)
		require.InDelta(t, c.Lng, back.Lng, 1e-6)
	}
}

func TestPixelToGeoEmptyRect(t *testing.T) {
	tr := newTransform(t)
	got := tr.PixelToGeo(viewport.Pixel{X: 5, Y: 5}, viewport.Rect{Width: 0, Height: 10})
	assert.Equal(t, eastAfrica.Center(), got)
}

func TestMarkerPixelClampsOutsideBounds(t *testing.T) {
	tr := newTransform(t)
	dar := geo.Coordinate{Lat: -6.8, Lng: 39.28}

	raw := tr.GeoToPixel(dar, screen)
	assert.Greater(t, raw.Y, screen.Top+screen.Height)

	m := tr.MarkerPixel(dar, screen)
	assert.InDelta(t, screen.Top+0.95*screen.Height, m.Y, 1e-9)
	assert.InDelta(t, raw.X, m.X, 1e-9)
}

func TestSetZoomClamps(t *testing.T) {
	tr := newTransform(t)

	tr.SetZoom(0.1)
	assert.Equal(t, 0.5, tr.Zoom())

	tr.SetZoom(10)
	assert.Equal(t, 2.0, tr.Zoom())

	tr.SetZoom(math.NaN())
	assert.Equal(t, 2.0, tr.Zoom())

	tr.SetZoom(1.5)
	assert.Equal(t, 1.5, tr.Zoom())
}

func TestSetZoomToOneResetsPan(t *testing.T) {
	tr := newTransform(t)
	tr.SetZoom(1.5)
	tr.PanBy(120, -35)
	require.Equal(t, viewport.Offset{X: 120, Y: -35}, tr.Pan())

	tr.SetZoom(1.25)
	assert.Equal(t, viewport.Offset{X: 120, Y: -35}, tr.Pan(), "pan survives zoom changes away from 1")

	tr.SetZoom(1.0)
	assert.Equal(t, viewport.Offset{}, tr.Pan())
}

func TestZoomSteps(t *testing.T) {
	tr := newTransform(t)
	tr.PanBy(10, 10)

	tr.ZoomIn()
	assert.Equal(t, 1.25, tr.Zoom())
	for i := 0; i < 10; i++ {
		tr.ZoomIn()
	}
	assert.Equal(t, 2.0, tr.Zoom())

	for i := 0; i < 4; i++ {
		tr.ZoomOut()
	}
	assert.Equal(t, 1.0, tr.Zoom())
	assert.Equal(t, viewport.Offset{}, tr.Pan())

	for i := 0; i < 10; i++ {
		tr.ZoomOut()
	}
	assert.Equal(t, 0.5, tr.Zoom())
}

func TestZoomStepsStayOnGrid(t *testing.T) {
	tr := newTransform(t, viewport.WithZoomRange(0.3, 3), viewport.WithZoomStep(0.1))
	for i := 0; i < 5; i++ {
		tr.ZoomIn()
	}
	assert.Equal(t, 1.5, tr.Zoom())
	assert.Equal(t, layers.Precise, layers.Default().TierFor(tr.Zoom()))

	tr.PanBy(7, 7)
	for i := 0; i < 5; i++ {
		tr.ZoomOut()
	}
	assert.Equal(t, 1.0, tr.Zoom())
	assert.Equal(t, viewport.Offset{}, tr.Pan(), "landing on 1 resets the pan")

	// off-grid zoom steps to the neighbouring grid values
	tr.SetZoom(1.23)
	tr.ZoomIn()
	assert.Equal(t, 1.3, tr.Zoom())
	tr.SetZoom(1.23)
	tr.ZoomOut()
	assert.Equal(t, 1.2, tr.Zoom())

	tr.SetZoom(3)
	tr.ZoomOut()
	assert.Equal(t, 2.9, tr.Zoom())
}

func TestPanByIsUnbounded(t *testing.T) {
	tr := newTransform(t)
	tr.PanBy(1e6, -1e6)
	tr.PanBy(1, 1)
	assert.Equal(t, viewport.Offset{X: 1e6 + 1, Y: -1e6 + 1}, tr.Pan())
}

func TestRecenter(t *testing.T) {
	tr := newTransform(t)
	tr.SetZoom(1.75)
	tr.PanBy(3, 4)
	tr.Recenter()
	assert.Equal(t, viewport.State{Zoom: 1}, tr.State())
}
