package overlay

import (
	_ "embed"
)

//go:embed sample.geojson
var sampleGeoJSON []byte

// Sample returns the built-in East African conservation dataset shown when no
// data file is given.
func Sample() Dataset {
	d, err := ParseGeoJSON(sampleGeoJSON)
	if err != nil {
		panic("overlay: embedded sample: " + err.Error())
	}
	return d
}
