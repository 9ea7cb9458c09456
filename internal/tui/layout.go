package tui

import "wildguard/internal/viewport"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// surface is the map area in terminal cells. It is shared by every copy of the
// Model so the pointer controller always resolves against the current layout.
type surface struct {
	originX, originY int
	w, h             int
}

// rect is the render surface in braille micro-pixels, relative to the map origin.
func (s *surface) rect() viewport.Rect {
	return viewport.Rect{Width: float64(s.w * microX), Height: float64(s.h * microY)}
}

// center is the micro-pixel in the middle of the map; keyboard zoom keeps it fixed.
func (s *surface) center() viewport.Pixel {
	r := s.rect()
	return viewport.Pixel{X: r.Width / 2, Y: r.Height / 2}
}

func (s *surface) contains(x, y int) bool {
	return x >= s.originX && x < s.originX+s.w && y >= s.originY && y < s.originY+s.h
}

// pixel maps a terminal cell to the micro-pixel at its center.
func (s *surface) pixel(x, y int) viewport.Pixel {
	return viewport.Pixel{
		X: float64((x-s.originX)*microX) + microX/2,
		Y: float64((y-s.originY)*microY) + microY/2,
	}
}

// relayout recomputes the map area; it must match View.
func (m *Model) relayout() {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)

	side := 0
	if m.showSidebar {
		side = sidebarWidth + 1
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
	}
	m.surf.originX = side
	m.surf.originY = headerHeight
	m.surf.w = max(10, contentWidth-side)
	m.surf.h = contentHeight
}
