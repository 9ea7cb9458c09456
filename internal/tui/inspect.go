package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"wildguard/internal/geo"
	"wildguard/internal/layers"
	"wildguard/internal/overlay"
	"wildguard/internal/viewport"
)

// hit radius around a marker, in micro-pixels
const hitRadius = 3

var toggleKeys = map[string]layers.Kind{
	"1": layers.Parks,
	"2": layers.Zones,
	"3": layers.Animals,
	"4": layers.Drones,
	"5": layers.Sensors,
	"6": layers.Labels,
}

func layerOf(k overlay.Kind) layers.Kind {
	switch k {
	case overlay.Park:
		return layers.Parks
	case overlay.Drone:
		return layers.Drones
	case overlay.Sensor:
		return layers.Sensors
	}
	return layers.Animals
}

// visibleLayers combines the zoom policy with the user's toggles.
func (m Model) visibleLayers() map[layers.Kind]bool {
	flags := m.vc.Layers()
	for k := range flags {
		if m.hidden[k] {
			flags[k] = false
		}
	}
	// detail rides on the animal layer
	if m.hidden[layers.Animals] {
		flags[layers.AnimalDetail] = false
	}
	return flags
}

func (m *Model) toggleLayer(k layers.Kind) {
	m.hidden[k] = !m.hidden[k]
	state := "on"
	if m.hidden[k] {
		state = "off"
	}
	if from, ok := m.vc.Policy().MinTier(k); ok && m.vc.Tier() < from {
		state += fmt.Sprintf(" (shown from %s)", from)
	}
	m.status = fmt.Sprintf("%s: %s", k, state)
}

// markerAt returns the visible entity drawn nearest to p.
func (m Model) markerAt(p viewport.Pixel) (int, bool) {
	flags := m.visibleLayers()
	rect := m.surf.rect()
	return overlay.Nearest(m.data.Entities, func(e overlay.Entity) (float64, float64, bool) {
		if !flags[layerOf(e.Kind)] {
			return 0, 0, false
		}
		q := m.vc.MarkerPixel(e.Coordinate, rect)
		return q.X, q.Y, inRect(q, rect)
	}, p.X, p.Y, hitRadius)
}

func inRect(p viewport.Pixel, r viewport.Rect) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width && p.Y >= r.Top && p.Y < r.Top+r.Height
}

func (m *Model) selectEntity(i int) {
	e := m.data.Entities[i]
	m.selected = i
	lines := []string{
		fmt.Sprintf("name: %s", nameOr(e.Name, e.ID)),
		fmt.Sprintf("id: %s", e.ID),
		fmt.Sprintf("kind: %s", e.Kind),
		fmt.Sprintf("position: %s", e.Coordinate),
	}
	if r, ok := m.vc.NearestLock(); ok {
		d := geo.Measure(r.Point.Coordinate, e.Coordinate)
		lines = append(lines, fmt.Sprintf("from ✚%d: %s", r.Index+1, d))
	}
	keys := make([]string, 0, len(e.Props))
	for k := range e.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "name", "kind", "type", "id":
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", k, e.Props[k]))
	}
	m.inspectPopup = strings.Join(lines, "\n")
	m.status = "selected " + nameOr(e.Name, e.ID)
}

// inspectNearest selects the visible entity closest to the cursor, or to the
// middle of the map when the pointer is elsewhere.
func (m *Model) inspectNearest() {
	ref := m.vc.PixelToGeo(m.surf.center(), m.surf.rect())
	if c, ok := m.vc.Cursor(); ok {
		ref = c
	}
	flags := m.visibleLayers()
	best, bestD := -1, 0.0
	for i, e := range m.data.Entities {
		if !flags[layerOf(e.Kind)] {
			continue
		}
		if d := geo.HaversineKm(ref, e.Coordinate); best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		m.inspectPopup = ""
		m.status = "no feature nearby"
		return
	}
	m.selectEntity(best)
}

// addPastedZone parses "[label] POLYGON((...))". The label picks the zone kind.
func (m *Model) addPastedZone(text string) error {
	text = strings.TrimSpace(text)
	label := ""
	if i := strings.Index(strings.ToUpper(text), "POLYGON"); i > 0 {
		label = strings.TrimSpace(text[:i])
		text = text[i:]
		if strings.HasSuffix(strings.ToUpper(label), "MULTI") {
			text = label[len(label)-5:] + text
			label = strings.TrimSpace(label[:len(label)-5])
		}
	}
	z, err := overlay.ParseWKTZone(text, overlay.ParseZoneKind(label))
	if err != nil {
		return err
	}
	m.pasted++
	z.ID = fmt.Sprintf("pasted-%d", m.pasted)
	z.Name = nameOr(label, z.ID)
	m.data.Zones = append(m.data.Zones, z)
	m.status = fmt.Sprintf("added %s zone %q", z.Kind, z.Name)
	m.log.WithFields(logrus.Fields{"zone": z.ID, "kind": z.Kind.String(), "wkt": overlay.ZoneWKT(z)}).Info("zone pasted")
	return nil
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
