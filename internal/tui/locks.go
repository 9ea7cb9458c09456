package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"wildguard/internal/geo"
)

var lockColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Position", Width: 24},
	{Title: "Dist km", Width: 10},
	{Title: "Bearing", Width: 12},
	{Title: "Locked", Width: 10},
}

// refreshLocks rebuilds the table from the controller. Distances are measured
// from the cursor, or from the map center when the pointer is off the map.
func (m *Model) refreshLocks() {
	rs := m.vc.LockReadings()
	rows := make([]table.Row, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, table.Row{
			strconv.Itoa(r.Index + 1),
			r.Point.Coordinate.String(),
			fmt.Sprintf("%.2f", r.DistanceKm),
			fmt.Sprintf("%05.1f° %s", r.BearingDeg, geo.CompassPoint(r.BearingDeg)),
			r.Point.Timestamp.Format("15:04:05"),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(lockColumns)
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

func (m *Model) removeSelectedLock() {
	i := m.tbl.Cursor()
	if !m.vc.RemoveAt(i) {
		m.status = "no locked point selected"
		return
	}
	switch {
	case i == m.ringLock:
		m.ringLock = -1
	case i < m.ringLock:
		m.ringLock--
	}
	m.status = fmt.Sprintf("removed locked point #%d", i+1)
	m.refreshLocks()
}

func (m *Model) clearLocks() {
	n := len(m.vc.Locks())
	m.vc.ClearLocks()
	m.ringLock = -1
	m.status = fmt.Sprintf("cleared %d locked points", n)
	if m.showLocks {
		m.refreshLocks()
	}
}

// cycleRangeRings moves the range rings to the next locked point, then off.
func (m *Model) cycleRangeRings() {
	m.ringLock++
	p, ok := m.vc.LockAt(m.ringLock)
	if !ok {
		m.ringLock = -1
		m.status = "range rings off"
		return
	}
	m.status = fmt.Sprintf("range rings around ✚%d %s", m.ringLock+1, p.Coordinate)
}

// nearestLockReadout is the footer text for the lock closest to the cursor.
func (m Model) nearestLockReadout() string {
	r, ok := m.vc.NearestLock()
	if !ok {
		if n := len(m.vc.Locks()); n > 0 {
			return fmt.Sprintf("%d locked", n)
		}
		return "no locks"
	}
	d := geo.DistanceBearing{DistanceKm: r.DistanceKm, BearingDeg: r.BearingDeg}
	return fmt.Sprintf("✚%d %s", r.Index+1, d)
}
