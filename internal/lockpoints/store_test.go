package lockpoints_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildguard/internal/geo"
	"wildguard/internal/lockpoints"
)

var masaiMara = geo.Coordinate{Lat: -1.4061, Lng: 35.04}

func newStore() *lockpoints.Store {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	tick, n := 0, 0
	return lockpoints.New(
		lockpoints.WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
		lockpoints.WithIDs(func() string {
			n++
			return fmt.Sprintf("lock-%d", n)
		}),
	)
}

func TestAddStampsPoint(t *testing.T) {
	s := newStore()
	p := s.Add(masaiMara)

	assert.Equal(t, "lock-1", p.ID)
	assert.Equal(t, masaiMara, p.Coordinate)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 1, 0, time.UTC), p.Timestamp)
	assert.Equal(t, 1, s.Len())

	got, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s := lockpoints.New()
	a := s.Add(masaiMara)
	b := s.Add(masaiMara)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestLifecycle(t *testing.T) {
	s := newStore()
	s.Add(geo.Coordinate{Lat: -2.3, Lng: 34.8})
	before := s.Len()

	s.Add(masaiMara)
	require.True(t, s.RemoveAt(0))
	assert.Equal(t, before, s.Len())

	s.Add(masaiMara)
	s.Add(masaiMara)
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Points())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestRemoveAtOutOfRangeIsNoop(t *testing.T) {
	s := newStore()
	s.Add(masaiMara)

	assert.False(t, s.RemoveAt(-1))
	assert.False(t, s.RemoveAt(1))
	assert.False(t, s.RemoveAt(100))
	assert.Equal(t, 1, s.Len())

	empty := newStore()
	assert.False(t, empty.RemoveAt(0))
}

func TestRemoveKeepsOrder(t *testing.T) {
	s := newStore()
	for i := 0; i < 4; i++ {
		s.Add(geo.Coordinate{Lat: float64(-i), Lng: 36})
	}
	require.True(t, s.RemoveAt(1))

	var ids []string
	for _, p := range s.Points() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"lock-1", "lock-3", "lock-4"}, ids)
}

func TestPointsIsACopy(t *testing.T) {
	s := newStore()
	s.Add(masaiMara)
	pts := s.Points()
	pts[0].Coordinate.Lat = 10

	got, _ := s.At(0)
	assert.Equal(t, masaiMara, got.Coordinate)
}

func TestNearestToEmpty(t *testing.T) {
	_, ok := newStore().NearestTo(masaiMara)
	assert.False(t, ok)
}

func TestNearestToLockedPark(t *testing.T) {
	s := newStore()
	s.Add(geo.Coordinate{Lat: -2.648, Lng: 37.26})
	s.Add(masaiMara)
	s.Add(geo.Coordinate{Lat: -3.0, Lng: 38.5})

	r, ok := s.NearestTo(geo.Coordinate{Lat: -1.41, Lng: 35.05})
	require.True(t, ok)
	assert.Equal(t, masaiMara, r.Point.Coordinate)
	assert.Equal(t, 1, r.Index)
	assert.Less(t, r.DistanceKm, 2.0)
	assert.GreaterOrEqual(t, r.BearingDeg, 0.0)
	assert.Less(t, r.BearingDeg, 360.0)
}

func TestNearestToTieKeepsFirst(t *testing.T) {
	s := newStore()
	s.Add(masaiMara)
	s.Add(masaiMara)

	r, ok := s.NearestTo(masaiMara)
	require.True(t, ok)
	assert.Equal(t, "lock-1", r.Point.ID)
	assert.Zero(t, r.DistanceKm)
	assert.Zero(t, r.BearingDeg)
}

func TestReadings(t *testing.T) {
	s := newStore()
	s.Add(masaiMara)
	s.Add(geo.Coordinate{Lat: -2.648, Lng: 37.26})

	rs := s.Readings(masaiMara)
	require.Len(t, rs, 2)
	assert.Zero(t, rs[0].DistanceKm)
	assert.InDelta(t, 282.7, rs[1].DistanceKm, 0.5)
	assert.Equal(t, 1, rs[1].Index)
}
