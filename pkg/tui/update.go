package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/timeutil"
)

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())
	case changedMsg:
		return m, m.refresh()
	case errMsg:
		m.setError(msg.err)
		return m, nil
	case spinner.TickMsg:
		if m.mode != modeWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case reflectedMsg:
		return m.onReflected(msg)
	case insightMsg:
		return m.onInsight(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopRequest()
			return m, tea.Quit
		}
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeCompose:
			return m.updateCompose(msg)
		case modeWaiting:
			if msg.String() == "esc" {
				m.stopRequest()
				m.mode = m.waitFrom
				m.setStatus("Cancelled")
				if m.mode == modeCompose {
					return m, m.input.Focus()
				}
			}
			return m, nil
		case modeReply, modeHelp:
			switch msg.String() {
			case "esc", "enter", "q", " ", "?":
				m.mode = modeList
				m.reply = nil
				m.insight = nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.mode == modeCompose {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "o", "n":
		m.mode = modeCompose
		m.input.Reset()
		m.setStatus("tab/shift+tab emotion · ctrl+s send · esc discard")
		return m, tea.Batch(m.input.Focus(), textarea.Blink)
	case "d", "x":
		e, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		if _, err := m.svc.Delete(m.ctx, e.ID); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Deleted")
		}
		return m, m.refresh()
	case "u":
		e, ok, err := m.svc.Undo(m.ctx)
		switch {
		case err != nil:
			m.setError(err)
		case ok:
			m.setStatus(fmt.Sprintf("Restored %s", e.Emotion.Label()))
		default:
			m.setStatus("Nothing to undo")
		}
		return m, m.refresh()
	case "i":
		return m, m.begin("Looking back over the week", func(ctx context.Context, seq int) tea.Cmd {
			return insightCmd(ctx, m.svc, seq, comfort.NormalizePeriod(0))
		})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(emotion.All())
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.setStatus("Discarded")
		return m, nil
	case "tab":
		m.emotionIndex = (m.emotionIndex + 1) % n
		return m, nil
	case "shift+tab":
		m.emotionIndex = (m.emotionIndex + n - 1) % n
		return m, nil
	case "ctrl+s":
		content := m.input.Value()
		if _, err := comfort.Validate(comfort.Request{Content: content}); err != nil {
			m.setError(err)
			return m, nil
		}
		em := m.selectedEmotion()
		m.input.Blur()
		return m, m.begin("Listening", func(ctx context.Context, seq int) tea.Cmd {
			return reflectCmd(ctx, m.svc, seq, content, em)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// begin starts a cancelable request and switches to the waiting view.
func (m *Model) begin(label string, start func(ctx context.Context, seq int) tea.Cmd) tea.Cmd {
	m.stopRequest()
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.seq++
	m.waitFrom = m.mode
	m.mode = modeWaiting
	m.setStatus(label)
	return tea.Batch(m.spinner.Tick, start(ctx, m.seq))
}

// stopRequest cancels the in-flight request; its reply will be ignored.
func (m *Model) stopRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
}

func (m Model) onReflected(msg reflectedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.stopRequest()

	if msg.err != nil && msg.r.Entry.ID == "" {
		m.mode = modeCompose
		if errors.Is(msg.err, app.ErrComfortUnavailable) {
			m.setError(errors.New("no reply right now, nothing was recorded"))
		} else {
			m.setError(msg.err)
		}
		return m, m.input.Focus()
	}

	resp := msg.r.Response
	m.reply = &resp
	m.insight = nil
	m.input.Reset()
	m.mode = modeReply
	if msg.err != nil {
		m.setError(fmt.Errorf("recorded but not saved: %w", msg.err))
	} else {
		m.setStatus(fmt.Sprintf("Recorded, fades in %s", timeutil.FormatWindow(entry.TTL)))
	}
	return m, m.refresh()
}

func (m Model) onInsight(msg insightMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.stopRequest()

	if msg.err != nil {
		m.mode = modeList
		m.setError(msg.err)
		return m, nil
	}
	in := msg.in
	m.insight = &in
	m.reply = nil
	m.mode = modeReply
	m.setStatus("enter to go back")
	return m, nil
}

func reflectCmd(ctx context.Context, svc *app.Service, seq int, content string, em emotion.Emotion) tea.Cmd {
	return func() tea.Msg {
		r, err := svc.Reflect(ctx, content, em)
		return reflectedMsg{seq: seq, r: r, err: err}
	}
}

func insightCmd(ctx context.Context, svc *app.Service, seq int, days int) tea.Cmd {
	return func() tea.Msg {
		in, err := svc.Insight(ctx, days)
		return insightMsg{seq: seq, in: in, err: err}
	}
}
