package tui

import (
	"github.com/charmbracelet/lipgloss"

	"wildguard/internal/overlay"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#16A34A")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	modeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(lipgloss.Color("#F59E0B")).Padding(0, 1)
)

// map inks
var (
	parkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	animalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")).Bold(true)
	droneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")).Bold(true)
	sensorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	fireStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	poachStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	zoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	lockStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F472B6")).Bold(true)
	selectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	labelStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boundaryStyle = lipgloss.NewStyle().Foreground(borderCol)
)

var kindGlyph = map[overlay.Kind]string{
	overlay.Park:   "▲",
	overlay.Animal: "●",
	overlay.Drone:  "✈",
	overlay.Sensor: "◆",
}

func kindStyle(k overlay.Kind) lipgloss.Style {
	switch k {
	case overlay.Park:
		return parkStyle
	case overlay.Drone:
		return droneStyle
	case overlay.Sensor:
		return sensorStyle
	}
	return animalStyle
}
