package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)

	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	sliderLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	trackStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fillStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	statusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	statusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	statusUnstable = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))
)

// sliderTrack renders a track of n cells with the knob at cell k.
func sliderTrack(n, k int) string {
	if k < 0 {
		k = 0
	}
	if k >= n {
		k = n - 1
	}
	return fillStyle.Render(strings.Repeat("━", k)+"●") +
		trackStyle.Render(strings.Repeat("─", n-k-1))
}
