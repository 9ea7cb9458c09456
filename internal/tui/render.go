package tui

import (
	"fmt"
	"math"
	"strings"

	"wildguard/internal/geo"
	"wildguard/internal/layers"
	"wildguard/internal/overlay"
	"wildguard/internal/viewport"
)

// on-screen sizes in micro-pixels; park rings grow with zoom, the halo does not
const (
	parkRing   = 6
	haloRadius = 5
)

// range ring distances around a locked point
var rangeRingsKm = []float64{5, 10, 25, 50}

// cellGrid holds glyphs drawn over the braille layer; "" leaves the braille cell visible.
type cellGrid struct {
	w, h  int
	cells [][]string
}

func newCellGrid(w, h int) *cellGrid {
	cells := make([][]string, h)
	for i := range cells {
		cells[i] = make([]string, w)
	}
	return &cellGrid{w: w, h: h, cells: cells}
}

func (g *cellGrid) put(x, y int, s string) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	g.cells[y][x] = s
	return true
}

// text writes s rune by rune starting at (x, y), stopping at the edge or at an
// occupied cell.
func (g *cellGrid) text(x, y int, s string, render func(...string) string) {
	for _, r := range s {
		if x >= g.w || y < 0 || y >= g.h || x < 0 || g.cells[y][x] != "" {
			return
		}
		g.cells[y][x] = render(string(r))
		x++
	}
}

func microOf(p viewport.Pixel) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

func cellOf(p viewport.Pixel) (int, int) {
	mx, my := microOf(p)
	return floorDiv(mx, microX), floorDiv(my, microY)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// renderMap draws the overlay for a w x h cell map area.
func (m Model) renderMap(w, h int) string {
	rect := viewport.Rect{Width: float64(w * microX), Height: float64(h * microY)}
	state := m.vc.State()
	flags := m.visibleLayers()

	br := newBrailleBuf(w, h)
	grid := newCellGrid(w, h)

	// frame of the projection window, so panning and zooming stay legible
	br.pen = penBoundary
	b := m.vc.Bounds()
	nw := m.vc.GeoToPixel(geo.Coordinate{Lat: b.MaxLat, Lng: b.MinLng}, rect)
	se := m.vc.GeoToPixel(geo.Coordinate{Lat: b.MinLat, Lng: b.MaxLng}, rect)
	x0, y0 := microOf(nw)
	x1, y1 := microOf(se)
	br.drawRing([][2]int{{x0, y0}, {x1 - 1, y0}, {x1 - 1, y1 - 1}, {x0, y1 - 1}})

	if flags[layers.Zones] {
		for _, z := range m.data.Zones {
			m.drawZone(br, z, rect)
		}
	}

	if flags[layers.Parks] {
		br.pen = penPark
		r := int(math.Round(parkRing * state.Zoom))
		for _, e := range m.data.Of(overlay.Park) {
			cx, cy := microOf(m.vc.GeoToPixel(e.Coordinate, rect))
			br.drawCircle(cx, cy, r)
		}
	}

	if m.selected >= 0 && m.selected < len(m.data.Entities) {
		br.pen = penSelect
		e := m.data.Entities[m.selected]
		cx, cy := microOf(m.vc.MarkerPixel(e.Coordinate, rect))
		br.drawCircle(cx, cy, haloRadius)
	}

	if m.ringLock >= 0 {
		if p, ok := m.vc.LockAt(m.ringLock); ok {
			m.drawRangeRings(br, grid, p.Coordinate, rect)
		}
	}

	for _, e := range m.data.Entities {
		if !flags[layerOf(e.Kind)] {
			continue
		}
		x, y := cellOf(m.vc.MarkerPixel(e.Coordinate, rect))
		st := kindStyle(e.Kind)
		if !grid.put(x, y, st.Render(kindGlyph[e.Kind])) {
			continue
		}
		switch {
		case flags[layers.Labels]:
			grid.text(x+1, y, " "+nameOr(e.Name, e.ID), labelStyle.Render)
		case e.Kind == overlay.Animal && flags[layers.AnimalDetail]:
			if sp := e.Props["species"]; sp != "" {
				grid.text(x+1, y, " "+initials(sp), dimStyle.Render)
			}
		}
	}

	for _, p := range m.vc.Locks() {
		x, y := cellOf(m.vc.MarkerPixel(p.Coordinate, rect))
		grid.put(x, y, lockStyle.Render("✚"))
	}

	if m.hovering && !m.ptr.Panning() {
		if i, ok := m.markerAt(m.surf.pixel(m.surf.originX+m.hoverCellX, m.surf.originY+m.hoverCellY)); ok {
			x, y := cellOf(m.vc.MarkerPixel(m.data.Entities[i].Coordinate, rect))
			grid.put(x, y, selectStyle.Render("◯"))
		}
	}

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			switch {
			case grid.cells[y][x] != "":
				sb.WriteString(grid.cells[y][x])
			case br.m[y][x] != 0:
				sb.WriteString(br.cell(x, y))
			default:
				sb.WriteByte(' ')
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (m Model) drawZone(br *brailleBuf, z overlay.Zone, rect viewport.Rect) {
	var rings [][][2]int
	for _, ring := range z.Rings {
		sm := make([][2]int, 0, len(ring))
		for _, c := range ring {
			x, y := microOf(m.vc.GeoToPixel(c, rect))
			sm = append(sm, [2]int{x, y})
		}
		if len(sm) >= 3 {
			rings = append(rings, sm)
		}
	}
	if len(rings) == 0 {
		return
	}
	switch z.Kind {
	case overlay.FireZone:
		br.pen = penFire
	case overlay.PoachingZone:
		br.pen = penPoach
	default:
		br.pen = penZone
	}
	br.fillPolygon(rings)
	for _, r := range rings {
		br.drawRing(r)
	}
}

// drawRangeRings outlines fixed distances around c. Rings are geodesic, so they
// scale with zoom like the rest of the map.
func (m Model) drawRangeRings(br *brailleBuf, grid *cellGrid, c geo.Coordinate, rect viewport.Rect) {
	const segments = 72
	br.pen = penRing
	for _, km := range rangeRingsKm {
		ring := make([][2]int, 0, segments)
		for i := 0; i < segments; i++ {
			x, y := microOf(m.vc.GeoToPixel(geo.DestinationPoint(c, float64(i)*360/segments, km), rect))
			ring = append(ring, [2]int{x, y})
		}
		br.drawRing(ring)
		x, y := cellOf(m.vc.GeoToPixel(geo.DestinationPoint(c, 0, km), rect))
		grid.text(x, y, fmt.Sprintf("%gkm", km), lockStyle.Render)
	}
}

// initials shortens "Loxodonta africana" to "La".
func initials(s string) string {
	var out []rune
	for i, f := range strings.Fields(s) {
		r := []rune(f)
		if i == 0 {
			out = append(out, []rune(strings.ToUpper(string(r[0])))...)
		} else {
			out = append(out, []rune(strings.ToLower(string(r[0])))...)
		}
	}
	return string(out)
}
