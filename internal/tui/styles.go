package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/resiliencere/leadsync/chaos"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1E3A8A")).
			Padding(0, 2)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FACC15")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#64748B")).
			Padding(1, 2).
			MarginTop(1)

	toastStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			Padding(0, 1).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

var (
	green  = lipgloss.Color("#22C55E")
	orange = lipgloss.Color("#F97316")
	red    = lipgloss.Color("#EF4444")
	blue   = lipgloss.Color("#3B82F6")
)

func regionColor(r chaos.ServerRegion) lipgloss.Color {
	switch r {
	case chaos.RegionBackup:
		return orange
	case chaos.RegionEdge:
		return red
	default:
		return green
	}
}

func statusColor(s chaos.ConnectionStatus) lipgloss.Color {
	return regionColor(chaos.RegionFor(s))
}

func kindColor(k chaos.NotificationKind) lipgloss.Color {
	switch k {
	case chaos.KindSuccess:
		return green
	case chaos.KindWarning:
		return orange
	case chaos.KindError:
		return red
	default:
		return blue
	}
}
