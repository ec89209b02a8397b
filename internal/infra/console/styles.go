package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/lead-intake/internal/usecase"
)

const panelWidth = 72

var toneColors = map[usecase.Tone]lipgloss.Color{
	usecase.ToneWelcome:  lipgloss.Color("#B48EF7"),
	usecase.ToneInfo:     lipgloss.Color("#5B8DEF"),
	usecase.ToneSuccess:  lipgloss.Color("#6BCB77"),
	usecase.ToneError:    lipgloss.Color("#FF6B6B"),
	usecase.ToneDeclined: lipgloss.Color("#FF6B6B"),
	usecase.ToneFollowUp: lipgloss.Color("#FFD93D"),
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	prompt   lipgloss.Style
	hint     lipgloss.Style
	dim      lipgloss.Style
	warning  lipgloss.Style
	success  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("#888888")),
		prompt:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4FD1C5")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("#B48EF7")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("#888888")),
		warning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD479")),
		success:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77")),
	}
}

func toneColor(t usecase.Tone) lipgloss.Color {
	if c, ok := toneColors[t]; ok {
		return c
	}
	return lipgloss.Color("#AAAAAA")
}
