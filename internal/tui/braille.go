package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// braille cells are 2 micro-pixels wide and 4 tall
const (
	microX = 2
	microY = 4
)

type pen uint8

const (
	penNone pen = iota
	penBoundary
	penPark
	penZone
	penFire
	penPoach
	penSelect
	penRing
)

var penStyles = [...]lipgloss.Style{
	penNone:     lipgloss.NewStyle(),
	penBoundary: boundaryStyle,
	penPark:     parkStyle,
	penZone:     zoneStyle,
	penFire:     fireStyle,
	penPoach:    poachStyle,
	penSelect:   selectStyle,
	penRing:     lockStyle,
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]pen   // last pen that touched the cell
	pen  pen
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]pen, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]pen, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/microX, mx%microX
	cy, ry := my/microY, my%microY
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	b.ink[cy][cx] = b.pen
}

// drawLineMicro draws a line on the microgrid using Bresenham. The segment is
// clipped to the buffer first so far off-screen vertices cost nothing.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	var ok bool
	if x0, y0, x1, y1, ok = b.clip(x0, y0, x1, y1); !ok {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip is Liang-Barsky against the micro-pixel extent of the buffer.
func (b *brailleBuf) clip(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	xmax, ymax := float64(b.w*microX-1), float64(b.h*microY-1)
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, fx0},
		{dx, xmax - fx0},
		{-dy, fy0},
		{dy, ymax - fy0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return int(math.Round(fx0 + t0*dx)), int(math.Round(fy0 + t0*dy)),
		int(math.Round(fx0 + t1*dx)), int(math.Round(fy0 + t1*dy)), true
}

// drawRing outlines a closed ring.
func (b *brailleBuf) drawRing(r [][2]int) {
	for i := range r {
		a, c := r[i], r[(i+1)%len(r)]
		b.drawLineMicro(a[0], a[1], c[0], c[1])
	}
}

// fillPolygon fills with the even-odd rule across all rings, so holes stay empty.
func (b *brailleBuf) fillPolygon(rings [][][2]int) {
	hMic := b.h * microY
	var xs []int
	for yMic := 0; yMic < hMic; yMic++ {
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				a, c := r[i], r[(i+1)%len(r)]
				if a[1] == c[1] {
					continue
				}
				if (yMic >= a[1] && yMic < c[1]) || (yMic >= c[1] && yMic < a[1]) {
					t := float64(yMic-a[1]) / float64(c[1]-a[1])
					xs = append(xs, int(float64(a[0])+t*float64(c[0]-a[0])))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], b.w*microX-1); xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// drawCircle plots a midpoint circle of radius r around (cx, cy).
func (b *brailleBuf) drawCircle(cx, cy, r int) {
	if r <= 0 {
		b.setPixel(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			b.setPixel(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// cell returns the glyph of one cell, styled with its ink, or "" when blank.
func (b *brailleBuf) cell(x, y int) string {
	mask := b.m[y][x]
	if mask == 0 {
		return ""
	}
	g := string(rune(0x2800 + int(mask)))
	if p := b.ink[y][x]; p != penNone {
		return penStyles[p].Render(g)
	}
	return g
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.w; x++ {
			if c := b.cell(x, y); c != "" {
				sb.WriteString(c)
			} else {
				sb.WriteByte(' ')
			}
		}
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
