package overlay

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"

	"wildguard/internal/geo"
)

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer string   `xml:"outerBoundaryIs>LinearRing>coordinates"`
	Inner []string `xml:"innerBoundaryIs>LinearRing>coordinates"`
}

type kmlPlacemark struct {
	ID          string      `xml:"id,attr"`
	Name        string      `xml:"name"`
	Description string      `xml:"description"`
	Point       *kmlPoint   `xml:"Point"`
	Polygon     *kmlPolygon `xml:"Polygon"`
}

type kmlFolder struct {
	Name       string         `xml:"name"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   *kmlFolder     `xml:"Document"`
	Folders    []kmlFolder    `xml:"Folder"`
}

// LoadKML extracts placemarks from a KML file. Points become entities and
// polygons become zones. The placemark (or enclosing folder) name decides the kind.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return ParseKML(data)
}

// ParseKML is LoadKML over raw bytes.
func ParseKML(data []byte) (Dataset, error) {
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Dataset{}, err
	}

	var d Dataset
	n := 0
	var walk func(folder string, pms []kmlPlacemark, sub []kmlFolder)
	walk = func(folder string, pms []kmlPlacemark, sub []kmlFolder) {
		for _, pm := range pms {
			n++
			addPlacemark(&d, n, folder, pm)
		}
		for _, f := range sub {
			walk(f.Name, f.Placemarks, f.Folders)
		}
	}
	walk("", doc.Placemarks, doc.Folders)
	if doc.Document != nil {
		walk(doc.Document.Name, doc.Document.Placemarks, doc.Document.Folders)
	}

	if d.Count() == 0 {
		return Dataset{}, errors.New("kml: no placemarks found")
	}
	return d, nil
}

func addPlacemark(d *Dataset, n int, folder string, pm kmlPlacemark) {
	id := pm.ID
	if id == "" {
		id = "placemark-" + strconv.Itoa(n)
	}
	label := firstNonEmpty(folder, pm.Name)
	if pm.Point != nil {
		// coordinates may contain multiple tuples separated by spaces
		for i, c := range parseKMLCoords(pm.Point.Coordinates) {
			eid := id
			if i > 0 {
				eid = id + "-" + strconv.Itoa(i)
			}
			props := map[string]string{}
			if pm.Description != "" {
				props["description"] = strings.TrimSpace(pm.Description)
			}
			d.Entities = append(d.Entities, Entity{
				ID:         eid,
				Name:       pm.Name,
				Kind:       ParseKind(label),
				Coordinate: c,
				Props:      props,
			})
		}
	}
	if pm.Polygon != nil {
		outer := parseKMLCoords(pm.Polygon.Outer)
		if len(outer) < 3 {
			return
		}
		rings := [][]geo.Coordinate{outer}
		for _, in := range pm.Polygon.Inner {
			if r := parseKMLCoords(in); len(r) >= 3 {
				rings = append(rings, r)
			}
		}
		d.Zones = append(d.Zones, Zone{
			ID:    id,
			Name:  pm.Name,
			Kind:  ParseZoneKind(label + " " + pm.Name),
			Rings: rings,
		})
	}
}

func parseKMLCoords(s string) []geo.Coordinate {
	var out []geo.Coordinate
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		c := geo.Coordinate{Lat: lat, Lng: lon}
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}
