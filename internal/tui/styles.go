package tui

import (
	"github.com/MKhiriev/go-quote-guard/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	strengthStyles = map[models.PasswordCategory]lipgloss.Style{
		models.PasswordWeak:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		models.PasswordMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.PasswordStrong: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)
