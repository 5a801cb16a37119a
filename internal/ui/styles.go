package ui

import "github.com/charmbracelet/lipgloss"

var (
	highlight = lipgloss.Color("#7D56F4")
	subtle    = lipgloss.Color("#888888")
	danger    = lipgloss.Color("#E06C75")

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(subtle)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(highlight).Underline(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(subtle)
	overdueStyle   = lipgloss.NewStyle().Foreground(danger)
	helpStyle      = lipgloss.NewStyle().Foreground(subtle)
	statusStyle    = lipgloss.NewStyle().Italic(true)
)

// folderBadge renders name in the folder's own color.
func folderBadge(name, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("● " + name)
}
