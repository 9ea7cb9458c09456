package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"wildguard/internal/viewport"
)

// arrow keys pan by whole cells
const (
	keyPanX = 2 * microX
	keyPanY = 1 * microY
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showLocks {
			return m.updateLocks(msg)
		}
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if err := m.addPastedZone(w); err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateLocks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "t":
		m.showLocks = false
		m.tbl.Blur()
		return m, nil
	case "d", "delete", "backspace":
		m.removeSelectedLock()
		return m, nil
	case "x":
		m.clearLocks()
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// handleKey applies a map-view key and reports whether the program should quit.
func (m *Model) handleKey(key string) bool {
	if k, ok := toggleKeys[key]; ok {
		m.toggleLayer(k)
		return false
	}
	switch key {
	case "ctrl+c", "q":
		return true
	case "+", "=":
		m.zoomed(m.vc.ZoomInAt(m.surf.center(), m.surf.rect()))
	case "-", "_":
		m.zoomed(m.vc.ZoomOutAt(m.surf.center(), m.surf.rect()))
	case "0", "c":
		m.vc.Recenter()
		m.status = "recentered"
	case "up":
		m.vc.PanBy(0, -keyPanY)
	case "down":
		m.vc.PanBy(0, keyPanY)
	case "left":
		m.vc.PanBy(-keyPanX, 0)
	case "right":
		m.vc.PanBy(keyPanX, 0)
	case " ":
		if m.ptr.TogglePanning() {
			m.status = "pan mode: drag to move the map"
		} else {
			m.status = "lock mode: click to lock a point"
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.relayout()
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "a":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.appendPath(it.path)
			}
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "t":
		m.showLocks = true
		m.refreshLocks()
		m.tbl.Focus()
	case "x":
		m.clearLocks()
	case "r":
		m.cycleRangeRings()
	case "i":
		m.inspectNearest()
	case "esc":
		m.inspectPopup = ""
		m.selected = -1
	case "l":
		// toggle all user layers
		anyHidden := false
		for _, k := range toggleKeys {
			anyHidden = anyHidden || m.hidden[k]
		}
		for _, k := range toggleKeys {
			m.hidden[k] = !anyHidden
		}
		m.status = fmt.Sprintf("all layers hidden: %v", !anyHidden)
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return false
}

func (m *Model) zoomed(s viewport.State) {
	m.status = fmt.Sprintf("zoom: %.2fx %s", s.Zoom, m.vc.Tier())
}

// handleMouse feeds map-area mouse events to the pointer controller. Leaving the
// map ends hovering and any drag.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.pasteMode || m.showLocks {
		return
	}
	if !m.surf.contains(msg.X, msg.Y) {
		if m.hovering {
			m.hovering = false
			m.ptr.PointerLeave()
		}
		return
	}
	px := m.surf.pixel(msg.X, msg.Y)
	m.hovering = true
	m.hoverCellX = msg.X - m.surf.originX
	m.hoverCellY = msg.Y - m.surf.originY

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.zoomed(m.vc.ZoomInAt(px, m.surf.rect()))
		case tea.MouseButtonWheelDown:
			m.zoomed(m.vc.ZoomOutAt(px, m.surf.rect()))
		case tea.MouseButtonLeft:
			m.ptr.PointerDown(px)
		}
	case tea.MouseActionMotion:
		m.ptr.PointerMove(px)
	case tea.MouseActionRelease:
		m.ptr.PointerUp()
		m.click(px)
	}
}

// click selects a marker under p, or locks the coordinate when there is none.
func (m *Model) click(p viewport.Pixel) {
	if !m.ptr.Panning() {
		if i, ok := m.markerAt(p); ok {
			if m.ptr.ClaimClick() {
				m.selectEntity(i)
			}
			return
		}
	}
	c, locked := m.ptr.Click(p)
	if !locked {
		return
	}
	m.status = fmt.Sprintf("locked ✚%d at %s", len(m.vc.Locks()), c)
	if m.showLocks {
		m.refreshLocks()
	}
}
