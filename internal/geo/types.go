package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrInvalidBounds is returned when a projection window cannot be used.
var ErrInvalidBounds = errors.New("invalid map bounds")

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether c is a finite coordinate inside the WGS84 ranges.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Point converts c to an orb point (lon, lat order).
func (c Coordinate) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

// FromPoint converts an orb point to a Coordinate.
func FromPoint(p orb.Point) Coordinate { return Coordinate{Lat: p.Lat(), Lng: p.Lon()} }

// Fraction is a position normalized to the bounds window. 0,0 is the north-west corner.
type Fraction struct {
	X float64
	Y float64
}

// Bounds is the linear projection window.
type Bounds struct {
	MinLat float64 `json:"min_lat" mapstructure:"min_lat"`
	MaxLat float64 `json:"max_lat" mapstructure:"max_lat"`
	MinLng float64 `json:"min_lng" mapstructure:"min_lng"`
	MaxLng float64 `json:"max_lng" mapstructure:"max_lng"`
}

// NewBounds builds a validated projection window.
func NewBounds(minLat, maxLat, minLng, maxLng float64) (Bounds, error) {
	b := Bounds{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// Validate fails when the window is empty, inverted or outside the coordinate ranges.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.MinLat, b.MaxLat, b.MinLng, b.MaxLng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite edge in %+v", ErrInvalidBounds, b)
		}
	}
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("%w: min_lat %.6f must be below max_lat %.6f", ErrInvalidBounds, b.MinLat, b.MaxLat)
	}
	if b.MinLng >= b.MaxLng {
		return fmt.Errorf("%w: min_lng %.6f must be below max_lng %.6f", ErrInvalidBounds, b.MinLng, b.MaxLng)
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("%w: latitude range [%.6f, %.6f] outside [-90, 90]", ErrInvalidBounds, b.MinLat, b.MaxLat)
	}
	if b.MinLng < -180 || b.MaxLng > 180 {
		return fmt.Errorf("%w: longitude range [%.6f, %.6f] outside [-180, 180]", ErrInvalidBounds, b.MinLng, b.MaxLng)
	}
	return nil
}

// Center returns the midpoint of the window.
func (b Bounds) Center() Coordinate {
	return Coordinate{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}
}

// Contains reports whether c lies inside the window, edges included.
func (b Bounds) Contains(c Coordinate) bool {
	return b.Bound().Contains(c.Point())
}

// Bound converts the window to an orb bound.
func (b Bounds) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinLng, b.MinLat}, Max: orb.Point{b.MaxLng, b.MaxLat}}
}

// DistanceBearing is a derived measurement between two coordinates.
type DistanceBearing struct {
	DistanceKm float64
	BearingDeg float64
}
