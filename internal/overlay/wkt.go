package overlay

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"wildguard/internal/geo"
)

// ParseWKTZone parses a POLYGON or MULTIPOLYGON into a zone. A multipolygon
// keeps only its first member.
func ParseWKTZone(text string, kind ZoneKind) (Zone, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(text))
	if err != nil {
		return Zone{}, fmt.Errorf("wkt: %w", err)
	}
	var poly orb.Polygon
	switch t := g.(type) {
	case orb.Polygon:
		poly = t
	case orb.MultiPolygon:
		if len(t) == 0 {
			return Zone{}, ErrNoFeatures
		}
		poly = t[0]
	default:
		return Zone{}, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.GeoJSONType())
	}
	if len(poly) == 0 || len(poly[0]) < 3 {
		return Zone{}, fmt.Errorf("wkt: polygon needs at least 3 vertices")
	}
	rings := polygonRings(poly)
	for _, r := range rings {
		for _, c := range r {
			if !c.Valid() {
				return Zone{}, fmt.Errorf("wkt: vertex %s out of range", c)
			}
		}
	}
	return Zone{Kind: kind, Rings: rings}, nil
}

// ParseWKT parses one geometry per non-empty line. Points become entities and
// polygons become zones.
func ParseWKT(text string) (Dataset, error) {
	var d Dataset
	n := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n++
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return Dataset{}, fmt.Errorf("wkt line %d: %w", n, err)
		}
		id := "wkt-" + strconv.Itoa(n)
		switch t := g.(type) {
		case orb.Point:
			d.Entities = append(d.Entities, Entity{ID: id, Kind: Animal, Coordinate: geo.FromPoint(t)})
		case orb.MultiPoint:
			for i, p := range t {
				d.Entities = append(d.Entities, Entity{
					ID: id + "-" + strconv.Itoa(i), Kind: Animal, Coordinate: geo.FromPoint(p),
				})
			}
		case orb.Polygon:
			d.Zones = append(d.Zones, Zone{ID: id, Rings: polygonRings(t)})
		case orb.MultiPolygon:
			for i, p := range t {
				d.Zones = append(d.Zones, Zone{ID: id + "-" + strconv.Itoa(i), Rings: polygonRings(p)})
			}
		default:
			return Dataset{}, fmt.Errorf("wkt line %d: %w: %s", n, ErrUnsupportedGeometry, g.GeoJSONType())
		}
	}
	if d.Count() == 0 {
		return Dataset{}, ErrNoFeatures
	}
	return d, nil
}

// LoadWKT reads a .wkt file, one geometry per line.
func LoadWKT(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return ParseWKT(string(data))
}

// ZoneWKT renders a zone back to WKT for display.
func ZoneWKT(z Zone) string {
	poly := make(orb.Polygon, 0, len(z.Rings))
	for _, r := range z.Rings {
		ring := make(orb.Ring, 0, len(r))
		for _, c := range r {
			ring = append(ring, c.Point())
		}
		poly = append(poly, ring)
	}
	return wkt.MarshalString(poly)
}
