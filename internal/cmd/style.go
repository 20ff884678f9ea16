package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/colorhash"
)

// ANSI 256 colors readable on both dark and light terminals.
var palette = []string{"27", "29", "37", "64", "93", "97", "124", "130", "166", "172"}

var (
	dimStyle  = lipgloss.NewStyle().Faint(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("29"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("166"))
)

// baseStyle gives every base name a stable color so related lines are easy to
// spot across runs.
func baseStyle(name string) lipgloss.Style {
	i := colorhash.HashString(name) % len(palette)
	if i < 0 {
		i = -i
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette[i]))
}
