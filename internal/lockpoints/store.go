// Package lockpoints keeps the user's locked reference points and answers
// distance/bearing queries against them.
package lockpoints

import (
	"time"

	"github.com/google/uuid"

	"wildguard/internal/geo"
)

// Point is a locked reference point. It is never mutated after creation.
type Point struct {
	ID         string
	Coordinate geo.Coordinate
	Timestamp  time.Time
}

// Reading is a point measured against a reference coordinate.
type Reading struct {
	Point      Point
	Index      int
	DistanceKm float64
	BearingDeg float64
}

// Store is an ordered, unbounded collection of locked points.
// NearestTo and Readings scan every point, so cost grows linearly with Len.
type Store struct {
	points []Point
	now    func() time.Time
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a point locked at c.
func (s *Store) Add(c geo.Coordinate) Point {
	p := Point{ID: s.newID(), Coordinate: c, Timestamp: s.now()}
	s.points = append(s.points, p)
	return p
}

// RemoveAt drops the point at index i. Out-of-range indices are ignored.
func (s *Store) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.points) {
		return false
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	return true
}

func (s *Store) Clear() { s.points = nil }

func (s *Store) Len() int { return len(s.points) }

// At returns the point at index i.
func (s *Store) At(i int) (Point, bool) {
	if i < 0 || i >= len(s.points) {
		return Point{}, false
	}
	return s.points[i], true
}

// Points returns a copy of the points in lock order.
func (s *Store) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// NearestTo returns the point closest to ref. Ties keep the earliest point.
// ok is false when the store is empty.
func (s *Store) NearestTo(ref geo.Coordinate) (r Reading, ok bool) {
	for i, p := range s.points {
		d := geo.HaversineKm(ref, p.Coordinate)
		if !ok || d < r.DistanceKm {
			r = Reading{Point: p, Index: i, DistanceKm: d}
			ok = true
		}
	}
	if ok {
		r.BearingDeg = geo.BearingDeg(ref, r.Point.Coordinate)
	}
	return r, ok
}

// Readings measures every point from ref, in lock order.
func (s *Store) Readings(ref geo.Coordinate) []Reading {
	out := make([]Reading, 0, len(s.points))
	for i, p := range s.points {
		m := geo.Measure(ref, p.Coordinate)
		out = append(out, Reading{Point: p, Index: i, DistanceKm: m.DistanceKm, BearingDeg: m.BearingDeg})
	}
	return out
}
