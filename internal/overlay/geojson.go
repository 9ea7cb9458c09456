package overlay

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"wildguard/internal/geo"
)

// LoadGeoJSON reads a GeoJSON file into a Dataset.
func LoadGeoJSON(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON accepts a FeatureCollection, a single Feature or a bare geometry.
// Points become entities and polygons become zones; the "kind", "type" or
// "category" property decides the role.
func ParseGeoJSON(data []byte) (Dataset, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Dataset{}, fmt.Errorf("geojson: %w", err)
	}

	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("geojson: %w", err)
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("geojson: %w", err)
		}
		features = []*geojson.Feature{f}
	case "":
		return Dataset{}, fmt.Errorf("geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("geojson: %w", err)
		}
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	var d Dataset
	for i, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		addFeature(&d, i, f)
	}
	if d.Count() == 0 {
		return Dataset{}, ErrNoFeatures
	}
	return d, nil
}

func addFeature(d *Dataset, idx int, f *geojson.Feature) {
	props := stringProps(f.Properties)
	label := firstNonEmpty(props["kind"], props["type"], props["category"])
	name := props["name"]
	id := featureID(f, props, idx)

	addEntity := func(p orb.Point, n int) {
		c := geo.FromPoint(p)
		if !c.Valid() {
			return
		}
		eid := id
		if n > 0 {
			eid = id + "-" + strconv.Itoa(n)
		}
		d.Entities = append(d.Entities, Entity{
			ID:         eid,
			Name:       name,
			Kind:       ParseKind(label),
			Coordinate: c,
			Props:      props,
		})
	}
	addZone := func(poly orb.Polygon, n int) {
		rings := polygonRings(poly)
		if !validRings(rings) {
			return
		}
		zid := id
		if n > 0 {
			zid = id + "-" + strconv.Itoa(n)
		}
		d.Zones = append(d.Zones, Zone{
			ID:    zid,
			Name:  name,
			Kind:  ParseZoneKind(firstNonEmpty(label, name)),
			Rings: rings,
		})
	}

	switch g := f.Geometry.(type) {
	case orb.Point:
		addEntity(g, 0)
	case orb.MultiPoint:
		for i, p := range g {
			addEntity(p, i)
		}
	case orb.Polygon:
		addZone(g, 0)
	case orb.MultiPolygon:
		for i, p := range g {
			addZone(p, i)
		}
	}
}

func polygonRings(poly orb.Polygon) [][]geo.Coordinate {
	rings := make([][]geo.Coordinate, 0, len(poly))
	for _, r := range poly {
		ring := make([]geo.Coordinate, 0, len(r))
		for _, p := range r {
			ring = append(ring, geo.FromPoint(p))
		}
		rings = append(rings, ring)
	}
	return rings
}

// validRings requires an outer ring of at least 3 vertices, all in range.
func validRings(rings [][]geo.Coordinate) bool {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return false
	}
	for _, r := range rings {
		for _, c := range r {
			if !c.Valid() {
				return false
			}
		}
	}
	return true
}

func featureID(f *geojson.Feature, props map[string]string, idx int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	if id := props["id"]; id != "" {
		return id
	}
	return "feature-" + strconv.Itoa(idx+1)
}

func stringProps(p geojson.Properties) map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			bs, _ := json.Marshal(t)
			out[k] = string(bs)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
