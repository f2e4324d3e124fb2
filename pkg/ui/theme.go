package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"todoshell/pkg/config"
)

// Theme holds the lipgloss styles derived from the configured colors
type Theme struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Priority  lipgloss.Style
	Completed lipgloss.Style
	Key       lipgloss.Style
	Desc      lipgloss.Style
	Separator lipgloss.Style
	Focused   lipgloss.Style
	Chip      lipgloss.Style
	Box       lipgloss.Style
	DangerBox lipgloss.Style
}

// NewTheme builds the styles for a palette
func NewTheme(styles config.Styles) Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(styles.SelectedTextColor)).
			Background(lipgloss.Color(styles.AccentColor)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(styles.AccentColor)),
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color(styles.NormalTextColor)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(styles.MutedTextColor)),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(styles.ErrorColor)),
		Priority:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(styles.PriorityColor)),
		Completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(styles.CompletedColor)),
		Key:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(styles.AccentColor)),
		Desc:      lipgloss.NewStyle().Foreground(lipgloss.Color(styles.NormalTextColor)),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color(styles.BorderColor)),
		Focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(styles.SelectedTextColor)).
			Background(lipgloss.Color(styles.SelectedBgColor)),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.SelectedTextColor)).
			Background(lipgloss.Color(styles.SecondaryColor)).
			Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(styles.AccentColor)).
			Padding(1, 2),
		DangerBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(styles.ErrorColor)).
			Padding(1, 2),
	}
}

// TableStyles returns header-less table styles with the selection colors
func (t Theme) TableStyles(styles config.Styles) table.Styles {
	s := table.DefaultStyles()
	// Remove the header border and styling to make it invisible
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Bold(false).
		Foreground(lipgloss.NoColor{})

	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	return s
}
