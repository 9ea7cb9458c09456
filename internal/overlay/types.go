package overlay

import (
	"errors"
	"strings"

	"github.com/paulmach/orb"

	"wildguard/internal/geo"
)

var (
	ErrNoFeatures          = errors.New("no features found")
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
)

// Kind is the role of a point entity on the map.
type Kind int

const (
	Park Kind = iota
	Animal
	Drone
	Sensor
)

func (k Kind) String() string {
	switch k {
	case Park:
		return "park"
	case Animal:
		return "animal"
	case Drone:
		return "drone"
	case Sensor:
		return "sensor"
	}
	return "unknown"
}

// ParseKind maps a free-form label ("park", "ranger drone", "camera trap", ...) to a Kind.
// Unknown labels are treated as animals, the most common tracked entity.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "park"), strings.Contains(s, "reserve"), strings.Contains(s, "conservancy"):
		return Park
	case strings.Contains(s, "drone"), strings.Contains(s, "uav"):
		return Drone
	case strings.Contains(s, "sensor"), strings.Contains(s, "camera"), strings.Contains(s, "trap"), strings.Contains(s, "acoustic"):
		return Sensor
	}
	return Animal
}

// ZoneKind classifies an alert polygon.
type ZoneKind int

const (
	OtherZone ZoneKind = iota
	FireZone
	PoachingZone
)

func (k ZoneKind) String() string {
	switch k {
	case FireZone:
		return "fire"
	case PoachingZone:
		return "poaching"
	}
	return "zone"
}

// ParseZoneKind maps a label to a ZoneKind.
func ParseZoneKind(s string) ZoneKind {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "fire"), strings.Contains(s, "burn"):
		return FireZone
	case strings.Contains(s, "poach"), strings.Contains(s, "snare"), strings.Contains(s, "intrusion"):
		return PoachingZone
	}
	return OtherZone
}

// Entity is a positioned marker. The viewport only reads its coordinate.
type Entity struct {
	ID         string
	Name       string
	Kind       Kind
	Coordinate geo.Coordinate
	Props      map[string]string
}

// Zone is a polygon overlay; the first ring is the outer boundary, following rings are holes.
type Zone struct {
	ID    string
	Name  string
	Kind  ZoneKind
	Rings [][]geo.Coordinate
}

// Dataset is everything drawn on top of the basemap.
type Dataset struct {
	Entities []Entity
	Zones    []Zone
}

// Count returns the number of entities and zones.
func (d Dataset) Count() int { return len(d.Entities) + len(d.Zones) }

// Of returns the entities of one kind, in dataset order.
func (d Dataset) Of(kind Kind) []Entity {
	var out []Entity
	for _, e := range d.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Merge appends other to d.
func (d Dataset) Merge(other Dataset) Dataset {
	return Dataset{
		Entities: append(append([]Entity(nil), d.Entities...), other.Entities...),
		Zones:    append(append([]Zone(nil), d.Zones...), other.Zones...),
	}
}

// InBounds counts the entities inside b.
func (d Dataset) InBounds(b geo.Bounds) int {
	bound := b.Bound()
	n := 0
	for _, e := range d.Entities {
		if bound.Contains(e.Coordinate.Point()) {
			n++
		}
	}
	return n
}

// Extent returns a window that covers every entity and zone vertex, padded by pad
// degrees on each side so nothing lands on the edge.
func (d Dataset) Extent(pad float64) (geo.Bounds, error) {
	var (
		bound orb.Bound
		seen  bool
	)
	add := func(c geo.Coordinate) {
		if !seen {
			bound = c.Point().Bound()
			seen = true
			return
		}
		bound = bound.Extend(c.Point())
	}
	for _, e := range d.Entities {
		add(e.Coordinate)
	}
	for _, z := range d.Zones {
		for _, ring := range z.Rings {
			for _, c := range ring {
				add(c)
			}
		}
	}
	if !seen {
		return geo.Bounds{}, ErrNoFeatures
	}
	return geo.NewBounds(
		max(-90, bound.Min.Lat()-pad), min(90, bound.Max.Lat()+pad),
		max(-180, bound.Min.Lon()-pad), min(180, bound.Max.Lon()+pad),
	)
}
