package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/view"
)

const (
	colorBorder  = "#3A3F55"
	colorText    = "#E6EAF2"
	colorMuted   = "#6D7383"
	colorAccent  = "#7C3AED"
	colorToday   = "#A78BFA"
	colorNow     = "#EF4444"
	colorError   = "#EF4444"
	colorSuccess = "#22C55E"
	colorHelp    = "240"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorText))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	todayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorToday))
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))
	nowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorNow))
	selectionStyle = lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color(colorAccent))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHelp))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colorAccent)).Padding(0, 1)
)

func blockStyle(s tag.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.Background.Hex())).
		Foreground(lipgloss.Color(s.Foreground.Hex()))
}

func accentStyle(s tag.Style) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Accent.Hex()))
}

// MonthGeometry sizes month cells in terminal cells: one row for the day number and one row per
// task chip.
func MonthGeometry(dayWidth float64) view.MonthGeometry {
	return view.MonthGeometry{CellWidth: dayWidth, CellHeight: 5, HeaderHeight: 1, ChipHeight: 1}
}
