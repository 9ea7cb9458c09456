package overlay_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wildguard/internal/geo"
	"wildguard/internal/overlay"
)

func TestParseKind(t *testing.T) {
	cases := map[string]overlay.Kind{
		"park":                 overlay.Park,
		"National Reserve":     overlay.Park,
		"  Conservancy  ":      overlay.Park,
		"Ranger drones":        overlay.Drone,
		"UAV":                  overlay.Drone,
		"camera trap":          overlay.Sensor,
		"acoustic":             overlay.Sensor,
		"soil moisture sensor": overlay.Sensor,
		"elephant":             overlay.Animal,
		"":                     overlay.Animal,
	}
	for in, want := range cases {
		assert.Equal(t, want, overlay.ParseKind(in), in)
	}
	assert.Equal(t, "drone", overlay.Drone.String())
	assert.Equal(t, "unknown", overlay.Kind(42).String())
}

func TestParseZoneKind(t *testing.T) {
	assert.Equal(t, overlay.FireZone, overlay.ParseZoneKind("Grass FIRE"))
	assert.Equal(t, overlay.FireZone, overlay.ParseZoneKind("controlled burn"))
	assert.Equal(t, overlay.PoachingZone, overlay.ParseZoneKind("snare line"))
	assert.Equal(t, overlay.OtherZone, overlay.ParseZoneKind("flood plain"))
	assert.Equal(t, "poaching", overlay.PoachingZone.String())
	assert.Equal(t, "zone", overlay.OtherZone.String())
}

func TestSample(t *testing.T) {
	d := overlay.Sample()
	require.NotZero(t, d.Count())

	parks := d.Of(overlay.Park)
	require.NotEmpty(t, parks)
	assert.Equal(t, "Masai Mara", parks[0].Name)
	assert.Equal(t, "park-mara", parks[0].ID)

	assert.NotEmpty(t, d.Of(overlay.Animal))
	assert.NotEmpty(t, d.Of(overlay.Drone))
	assert.NotEmpty(t, d.Of(overlay.Sensor))
	require.Len(t, d.Zones, 2)
	assert.Equal(t, overlay.FireZone, d.Zones[0].Kind)
	assert.Equal(t, overlay.PoachingZone, d.Zones[1].Kind)

	window := geo.Bounds{MinLat: -4.5, MaxLat: 4.5, MinLng: 34, MaxLng: 42}
	assert.Equal(t, len(d.Entities), d.InBounds(window), "every sample entity sits inside the default window")
}

func TestParseGeoJSONVariants(t *testing.T) {
	single := `{"type":"Feature","properties":{"name":"Rhino","kind":"animal","age":7,"tagged":true},
		"geometry":{"type":"Point","coordinates":[35.1,-1.5]}}`
	d, err := overlay.ParseGeoJSON([]byte(single))
	require.NoError(t, err)
	require.Len(t, d.Entities, 1)
	e := d.Entities[0]
	assert.Equal(t, "feature-1", e.ID)
	assert.Equal(t, "Rhino", e.Name)
	assert.Equal(t, overlay.Animal, e.Kind)
	assert.Equal(t, geo.Coordinate{Lat: -1.5, Lng: 35.1}, e.Coordinate)
	assert.Equal(t, "7", e.Props["age"])
	assert.Equal(t, "true", e.Props["tagged"])

	bare := `{"type":"MultiPoint","coordinates":[[36,-1],[37,-2]]}`
	d, err = overlay.ParseGeoJSON([]byte(bare))
	require.NoError(t, err)
	require.Len(t, d.Entities, 2)
	assert.Equal(t, "feature-1", d.Entities[0].ID)
	assert.Equal(t, "feature-1-1", d.Entities[1].ID)

	multi := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"type":"fire"},
		"geometry":{"type":"MultiPolygon","coordinates":[[[[36,-1],[36.5,-1],[36.5,-0.5],[36,-1]]],[[[37,-1],[37.5,-1],[37.5,-0.5],[37,-1]]]]}}]}`
	d, err = overlay.ParseGeoJSON([]byte(multi))
	require.NoError(t, err)
	require.Len(t, d.Zones, 2)
	assert.Equal(t, overlay.FireZone, d.Zones[1].Kind)
	assert.Len(t, d.Zones[0].Rings[0], 4)
}

func TestParseGeoJSONSkipsOutOfRange(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"kind":"drone"},"geometry":{"type":"Point","coordinates":[37,95]}},
		{"type":"Feature","properties":{"kind":"drone"},"geometry":{"type":"MultiPoint","coordinates":[[200,-1],[37,-2]]}},
		{"type":"Feature","properties":{"kind":"fire"},"geometry":{"type":"Polygon","coordinates":[[[36,-1],[36.5,-91],[36.5,-0.5],[36,-1]]]}},
		{"type":"Feature","properties":{"kind":"fire"},"geometry":{"type":"Polygon","coordinates":[[[36,-1],[36.5,-1],[36.5,-0.5],[36,-1]]]}}]}`
	d, err := overlay.ParseGeoJSON([]byte(fc))
	require.NoError(t, err)
	require.Len(t, d.Entities, 1)
	assert.Equal(t, "feature-2-1", d.Entities[0].ID)
	require.Len(t, d.Zones, 1)
	assert.Equal(t, "feature-4", d.Zones[0].ID)

	_, err = overlay.ParseGeoJSON([]byte(`{"type":"Point","coordinates":[37,95]}`))
	require.ErrorIs(t, err, overlay.ErrNoFeatures)
}

func TestParseGeoJSONErrors(t *testing.T) {
	_, err := overlay.ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.ErrorIs(t, err, overlay.ErrNoFeatures)

	_, err = overlay.ParseGeoJSON([]byte(`{"features":[]}`))
	require.Error(t, err)

	_, err = overlay.ParseGeoJSON([]byte(`not json`))
	require.Error(t, err)

	lineOnly := `{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[36,-1],[37,-2]]}}`
	_, err = overlay.ParseGeoJSON([]byte(lineOnly))
	require.ErrorIs(t, err, overlay.ErrNoFeatures)
}

func TestLoadCSV(t *testing.T) {
	d, err := overlay.LoadFile("testdata/collars.csv")
	require.NoError(t, err)
	require.Len(t, d.Entities, 3, "unparsable and out-of-range rows are skipped")

	e1 := d.Entities[0]
	assert.Equal(t, "e1", e1.ID)
	assert.Equal(t, "Elephant E1", e1.Name)
	assert.Equal(t, overlay.Animal, e1.Kind)
	assert.Equal(t, "GPS-114", e1.Props["collar"])
	assert.NotContains(t, e1.Props, "Latitude")

	assert.Equal(t, overlay.Drone, d.Entities[1].Kind)
	assert.Equal(t, "row-3", d.Entities[2].ID)
	assert.Equal(t, overlay.Sensor, d.Entities[2].Kind)
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := overlay.ParseCSV(strings.NewReader("name,kind\nfoo,park\n"))
	require.Error(t, err)

	_, err = overlay.ParseCSV(strings.NewReader(""))
	require.Error(t, err)

	_, err = overlay.ParseCSV(strings.NewReader("lat,lng\nx,y\n"))
	require.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	d, err := overlay.LoadFile("testdata/patrol.kml")
	require.NoError(t, err)

	require.Len(t, d.Entities, 1)
	drone := d.Entities[0]
	assert.Equal(t, "d7", drone.ID)
	assert.Equal(t, overlay.Drone, drone.Kind)
	assert.Equal(t, geo.Coordinate{Lat: -1.2, Lng: 36.1}, drone.Coordinate)
	assert.Equal(t, "north sweep", drone.Props["description"])

	require.Len(t, d.Zones, 1)
	assert.Equal(t, overlay.PoachingZone, d.Zones[0].Kind)
	assert.Len(t, d.Zones[0].Rings[0], 5)
}

func TestLoadWKT(t *testing.T) {
	d, err := overlay.LoadFile("testdata/zones.wkt")
	require.NoError(t, err)
	require.Len(t, d.Zones, 1)
	require.Len(t, d.Entities, 1)
	assert.Equal(t, "wkt-1", d.Zones[0].ID)
	assert.Equal(t, "wkt-2", d.Entities[0].ID)
}

func TestLoadFileUnsupported(t *testing.T) {
	_, err := overlay.LoadFile("testdata/notes.txt")
	require.ErrorIs(t, err, overlay.ErrUnsupportedFormat)

	_, err = overlay.LoadFile("testdata/missing.geojson")
	require.Error(t, err)

	assert.True(t, overlay.Supported("a/b/herds.GeoJSON"))
	assert.False(t, overlay.Supported("notes.txt"))
}

func TestParseWKTZone(t *testing.T) {
	z, err := overlay.ParseWKTZone("  POLYGON((36 -1, 36.5 -1, 36.5 -0.5, 36 -1))\n", overlay.FireZone)
	require.NoError(t, err)
	assert.Equal(t, overlay.FireZone, z.Kind)
	require.Len(t, z.Rings, 1)
	assert.Equal(t, geo.Coordinate{Lat: -1, Lng: 36}, z.Rings[0][0])
	assert.True(t, strings.HasPrefix(overlay.ZoneWKT(z), "POLYGON"))

	_, err = overlay.ParseWKTZone("POINT(36 -1)", overlay.FireZone)
	require.ErrorIs(t, err, overlay.ErrUnsupportedGeometry)

	_, err = overlay.ParseWKTZone("POLYGON((36", overlay.FireZone)
	require.Error(t, err)

	_, err = overlay.ParseWKTZone("POLYGON((36 -100, 37 -1, 36.5 0, 36 -100))", overlay.OtherZone)
	require.Error(t, err)
}

func TestDatasetHelpers(t *testing.T) {
	a := overlay.Dataset{Entities: []overlay.Entity{{ID: "a", Coordinate: geo.Coordinate{Lat: -1, Lng: 36}}}}
	b := overlay.Dataset{
		Entities: []overlay.Entity{{ID: "b", Coordinate: geo.Coordinate{Lat: 10, Lng: 50}}},
		Zones:    []overlay.Zone{{ID: "z", Rings: [][]geo.Coordinate{{{Lat: -2, Lng: 35}, {Lat: -2, Lng: 37}, {Lat: 0, Lng: 37}}}}},
	}
	m := a.Merge(b)
	assert.Equal(t, 3, m.Count())
	assert.Len(t, a.Entities, 1, "merge leaves the receiver untouched")

	window := geo.Bounds{MinLat: -4.5, MaxLat: 4.5, MinLng: 34, MaxLng: 42}
	assert.Equal(t, 1, m.InBounds(window))

	ext, err := m.Extent(0.5)
	require.NoError(t, err)
	assert.Equal(t, geo.Bounds{MinLat: -2.5, MaxLat: 10.5, MinLng: 34.5, MaxLng: 50.5}, ext)

	_, err = overlay.Dataset{}.Extent(1)
	require.ErrorIs(t, err, overlay.ErrNoFeatures)
}

func TestNearest(t *testing.T) {
	es := []overlay.Entity{
		{ID: "a", Coordinate: geo.Coordinate{Lat: 0, Lng: 10}},
		{ID: "b", Coordinate: geo.Coordinate{Lat: 0, Lng: 14}},
		{ID: "hidden", Coordinate: geo.Coordinate{Lat: 0, Lng: 12}},
	}
	pixelOf := func(e overlay.Entity) (float64, float64, bool) {
		return e.Coordinate.Lng, e.Coordinate.Lat, e.ID != "hidden"
	}

	i, ok := overlay.Nearest(es, pixelOf, 12.5, 0, 3)
	require.True(t, ok)
	assert.Equal(t, "b", es[i].ID)

	_, ok = overlay.Nearest(es, pixelOf, 30, 0, 3)
	assert.False(t, ok)
}
