package grid

import "github.com/charmbracelet/lipgloss"

// Style controls the grid's rendering.
type Style struct {
	Header       lipgloss.Style
	PinnedHeader lipgloss.Style
	Separator    lipgloss.Style

	Cell        lipgloss.Style
	PinnedCell  lipgloss.Style
	SelectedRow lipgloss.Style
	ActiveCell  lipgloss.Style
	DirtyCell   lipgloss.Style

	Status lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return Style{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		PinnedHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		Separator:    dim,
		Cell:         lipgloss.NewStyle(),
		PinnedCell:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		SelectedRow:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
		ActiveCell:   lipgloss.NewStyle().Reverse(true),
		DirtyCell:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}
