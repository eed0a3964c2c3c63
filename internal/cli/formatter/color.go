package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nudgekit/nudge/internal/domain"
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
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SessionStatusPill returns a colored status indicator for a session.
func SessionStatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionPending:
		return StyleBlue.Render("○ Pending")
	case domain.SessionInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.SessionCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.SessionAbandoned:
		return StyleDim.Render("✖ Abandoned")
	default:
		return StyleDim.Render(string(status))
	}
}

// ProjectStatusPill returns a colored status indicator for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectPaused:
		return StyleYellow.Render("○ Paused")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityIndicator returns a colored priority string such as "▲ CRITICAL".
func PriorityIndicator(p domain.ProjectPriority) string {
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render("▲ CRITICAL")
	case domain.PriorityHigh:
		return StyleYellow.Render("▲ HIGH")
	case domain.PriorityMedium:
		return StyleFg.Render("● MEDIUM")
	case domain.PriorityLow:
		return StyleDim.Render("▽ LOW")
	default:
		return StyleDim.Render(string(p))
	}
}

// KindBadge returns a colored label for a reminder kind.
func KindBadge(kind domain.ReminderKind) string {
	switch kind {
	case domain.ReminderGentle:
		return StyleBlue.Render("gentle")
	case domain.ReminderEncouragement:
		return StyleYellow.Render("encouragement")
	case domain.ReminderFinal:
		return StyleRed.Render("final")
	case domain.ReminderCustom:
		return StylePurple.Render("custom")
	default:
		return StyleDim.Render(string(kind))
	}
}

// ProfileBadge returns a styled cadence profile label.
func ProfileBadge(p domain.CadenceProfile) string {
	switch p {
	case domain.CadenceAggressive:
		return StyleRed.Render("aggressive")
	case domain.CadenceGentle:
		return StyleBlue.Render("gentle")
	case domain.CadenceCustom:
		return StylePurple.Render("custom")
	default:
		return StyleFg.Render(string(p))
	}
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
