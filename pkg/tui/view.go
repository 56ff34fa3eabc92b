package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/tui/theme"
)

const helpText = `o  write about how you feel
d  delete the selected entry
u  undo the last delete while the toast is showing
i  look back over the week
j/k  move
q  quit

Only the emotion is kept, and only for 24 hours.`

// View renders the UI.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeCompose:
		body = m.composeView()
	case modeWaiting:
		body = fmt.Sprintf("\n  %s %s  (esc to cancel)\n", m.spinner.View(), m.status)
	case modeReply:
		body = m.replyView()
	case modeHelp:
		body = m.panel("Keys", helpText)
	default:
		body = m.listView()
	}

	parts := []string{m.theme.Header.Render(fmt.Sprintf("haeuso · %d in the last 24h", len(m.list.Items()))), body}
	if toast := m.toastView(); toast != "" {
		parts = append(parts, toast)
	}
	if m.mode != modeWaiting {
		style := m.theme.Footer.Status
		if m.isErr {
			style = m.theme.Footer.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) listView() string {
	if len(m.list.Items()) == 0 {
		return m.theme.Footer.Help.Render("Nothing recorded in the last 24 hours. Press o to write.")
	}
	return m.list.View()
}

func (m Model) composeView() string {
	chips := make([]string, 0, len(emotion.All()))
	selected := m.selectedEmotion()
	for _, em := range emotion.All() {
		g := em.Glyph()
		label := g.Symbol + " " + g.Label
		if em == selected {
			chips = append(chips, m.theme.Picker.Selected.Render(label))
		} else {
			chips = append(chips, m.theme.Picker.Normal.Render(label))
		}
	}
	picker := lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	return m.theme.Panel.Frame.Render(
		m.theme.Panel.Title.Render("How are you feeling?") + "\n\n" + picker + "\n\n" + m.input.View(),
	)
}

func (m Model) replyView() string {
	switch {
	case m.reply != nil:
		if m.reply.Category == comfort.CategoryCrisis {
			lines := []string{m.theme.Crisis.Render(m.wrap(m.reply.Message)), ""}
			for _, r := range m.reply.Resources {
				lines = append(lines, "• "+r)
			}
			return m.theme.Panel.Frame.Render(strings.Join(lines, "\n"))
		}
		return m.theme.Panel.Frame.Render(m.theme.Panel.Body.Render(m.wrap(m.reply.Message)))
	case m.insight != nil:
		return m.insightView(*m.insight)
	}
	return ""
}

func (m Model) insightView(in comfort.Insight) string {
	most := 0
	for _, n := range in.Counts {
		if n > most {
			most = n
		}
	}
	const barWidth = 20
	rows := make([]string, 0, len(in.Counts)+2)
	for _, em := range emotion.All() {
		n := in.Counts[em]
		bar := ""
		if most > 0 {
			bar = strings.Repeat("█", n*barWidth/most)
		}
		rows = append(rows, fmt.Sprintf("%s  %-20s %d", theme.Emotion(em), bar, n))
	}
	rows = append(rows, "", m.theme.Panel.Body.Render(m.wrap(in.Comment)))
	title := fmt.Sprintf("Last %d days · %d entries", in.PeriodDays, in.Total)
	return m.theme.Panel.Frame.Render(m.theme.Panel.Title.Render(title) + "\n\n" + strings.Join(rows, "\n"))
}

func (m Model) toastView() string {
	if !m.hasPending {
		return ""
	}
	secs := int(math.Ceil(m.deadline.Sub(m.now).Seconds()))
	if secs < 0 {
		secs = 0
	}
	return m.theme.Toast.Render(fmt.Sprintf("Deleted %s · u to undo (%ds)", m.pending.Emotion.Label(), secs))
}

func (m Model) panel(title, text string) string {
	return m.theme.Panel.Frame.Render(m.theme.Panel.Title.Render(title) + "\n\n" + text)
}

func (m Model) wrap(s string) string {
	width := m.termWidth - 8
	if width <= 0 {
		width = 64
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
