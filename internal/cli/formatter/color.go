package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle returns the style for a legend severity.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return StyleRed
	case "warning":
		return StyleYellow
	default:
		return StyleDim
	}
}

// ConflictIndicator returns a colored marker such as "● DELAYED".
func ConflictIndicator(t domain.ConflictType) string {
	switch t {
	case domain.ConflictHardStartConstraint:
		return StyleRed.Render("● HARD LOCK")
	case domain.ConflictStartDelayed:
		return StyleYellow.Render("● DELAYED")
	default:
		return StyleDim.Render("● " + string(t))
	}
}

// ChangePill returns a colored change-log marker.
func ChangePill(c domain.ChangeType) string {
	switch c {
	case domain.ChangeTaskCreated:
		return StyleGreen.Render("+ created")
	case domain.ChangeTaskUpdated:
		return StyleBlue.Render("~ moved")
	default:
		return StyleDim.Render(string(c))
	}
}

// KindBadge marks mitigation tasks; work tasks get no badge.
func KindBadge(k domain.TaskKind) string {
	if k == domain.TaskMitigation {
		return StylePurple.Render("dry-out")
	}
	return ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
