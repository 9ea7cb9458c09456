package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	mapWidth, mapHeight := m.surf.w, m.surf.h

	// Header
	title := titleStyle.Render(" wildguard ─ conservation map ")
	src := dimStyle.Render(fmt.Sprintf(" %s  entities=%d zones=%d ", m.source, len(m.data.Entities), len(m.data.Zones)))
	header := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Top, title, src))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showLocks:
		width := 0
		for _, c := range lockColumns {
			width += c.Width + 2
		}
		maxW := min(mapWidth, max(32, width+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-4, 20))
		title := titleStyle.Render(fmt.Sprintf("Locked points (%d)", len(m.vc.Locks())))
		hint := dimStyle.Render("d remove  x clear  esc close")
		box := boxStyle.Width(maxW).Render(lipgloss.JoinVertical(lipgloss.Left, title, m.tbl.View(), hint))
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		// size textarea to map area
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderMap(mapWidth, mapHeight))
	}

	// Inspect popup, centered left over the body
	popup := ""
	if m.inspectPopup != "" && !m.showLocks && !m.pasteMode {
		maxPopupW := max(20, min(48, contentWidth/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(contentWidth, lipgloss.Height(box), lipgloss.Left, lipgloss.Top, box)
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}
	if popup != "" {
		body = overlayTop(body, popup)
	}
	body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)

	footer := lipgloss.JoinVertical(lipgloss.Left, m.renderReadout(contentWidth), m.renderStatus(contentWidth))
	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// overlayTop replaces the first lines of base with the lines of top.
func overlayTop(base, top string) string {
	bl := strings.Split(base, "\n")
	for i, l := range strings.Split(top, "\n") {
		if i < len(bl) && strings.TrimSpace(l) != "" {
			bl[i] = l
		}
	}
	return strings.Join(bl, "\n")
}

// renderReadout is the GPS line: cursor, nearest lock, zoom tier and input mode.
func (m Model) renderReadout(width int) string {
	gps := "cursor: off map"
	if c, ok := m.vc.Cursor(); ok {
		gps = "cursor: " + c.String()
	}
	s := m.vc.State()
	parts := []string{
		gps,
		m.nearestLockReadout(),
		fmt.Sprintf("zoom %.2fx %s", s.Zoom, m.vc.Tier()),
	}
	left := dimStyle.Render(" " + strings.Join(parts, "  │  ") + " ")
	mode := modeStyle.Render("LOCK")
	if m.ptr.Panning() {
		mode = modeStyle.Render("PAN")
	}
	spacer := strings.Repeat(" ", max(0, width-lipgloss.Width(left)-lipgloss.Width(mode)))
	return left + spacer + mode
}

func (m Model) renderStatus(width int) string {
	status := dimStyle.Render(" " + m.status + " ")
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"space pan/lock",
		"1-6 layers",
		"t locks",
		"x clear",
		"r rings",
		"i inspect",
		"p zone",
		"Tab files",
		"a append",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
