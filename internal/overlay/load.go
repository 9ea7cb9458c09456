package overlay

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extensions lists the file extensions LoadFile understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFile picks a loader by file extension.
func LoadFile(path string) (Dataset, error) {
	var (
		d   Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		d, err = LoadGeoJSON(path)
	case ".csv":
		d, err = LoadCSV(path)
	case ".kml":
		d, err = LoadKML(path)
	case ".wkt":
		d, err = LoadWKT(path)
	default:
		return Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return d, nil
}
