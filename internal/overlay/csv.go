package overlay

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"wildguard/internal/geo"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns entities.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
// Optional columns: id, name, kind|type|category.
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV is LoadCSV over a reader. Rows with unparsable or out-of-range
// coordinates are skipped.
func ParseCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Dataset{}, err
	}
	if len(recs) == 0 {
		return Dataset{}, errors.New("empty csv")
	}

	header := recs[0]
	idxLat, idxLon, idxID, idxName, idxKind := -1, -1, -1, -1, -1
	first := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			first(&idxLat, i)
		case "lon", "lng", "long", "longitude", "x":
			first(&idxLon, i)
		case "id":
			first(&idxID, i)
		case "name", "label":
			first(&idxName, i)
		case "kind", "type", "category":
			first(&idxKind, i)
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Dataset{}, errors.New("csv: latitude/longitude columns not found")
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var d Dataset
	for n, row := range recs[1:] {
		lon, err1 := strconv.ParseFloat(cell(row, idxLon), 64)
		lat, err2 := strconv.ParseFloat(cell(row, idxLat), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		c := geo.Coordinate{Lat: lat, Lng: lon}
		if !c.Valid() {
			continue
		}
		props := make(map[string]string, len(header))
		for i, h := range header {
			if i != idxLat && i != idxLon {
				props[strings.TrimSpace(h)] = cell(row, i)
			}
		}
		id := cell(row, idxID)
		if id == "" {
			id = "row-" + strconv.Itoa(n+1)
		}
		d.Entities = append(d.Entities, Entity{
			ID:         id,
			Name:       cell(row, idxName),
			Kind:       ParseKind(cell(row, idxKind)),
			Coordinate: c,
			Props:      props,
		})
	}
	if len(d.Entities) == 0 {
		return Dataset{}, errors.New("csv: no valid points parsed")
	}
	return d, nil
}
