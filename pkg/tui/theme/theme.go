package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/haeuso/pkg/emotion"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header  lipgloss.Style
	Footer  FooterTheme
	Panel   PanelTheme
	Toast   lipgloss.Style
	Crisis  lipgloss.Style
	Picker  PickerTheme
	Expires lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// PickerTheme styles the emotion picker in the compose view.
type PickerTheme struct {
	Selected lipgloss.Style
	Normal   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle().Italic(true),
		},
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		Crisis: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Picker: PickerTheme{
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
			Normal:   lipgloss.NewStyle().Padding(0, 1),
		},
		Expires: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Emotion renders em's symbol and label in its color.
func Emotion(em emotion.Emotion) string {
	g := em.Glyph()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render(g.Symbol + " " + g.Label)
}
