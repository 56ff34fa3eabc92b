// Package tui is haeuso's terminal interface: the entries of the last day
// with their countdowns, a compose view, and an undo toast after deletes.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/timeutil"
	"tableflip.dev/haeuso/pkg/tui/theme"
)

type mode int

const (
	modeList mode = iota
	modeCompose
	modeWaiting
	modeReply
	modeHelp
)

// entry item for the list
type entryItem struct {
	e   entry.Entry
	now time.Time
}

func (it entryItem) Title() string { return theme.Emotion(it.e.Emotion) }

func (it entryItem) Description() string {
	left := it.e.Remaining(it.now)
	if left <= 0 {
		return it.e.CreatedAt.Local().Format("15:04") + " · expired"
	}
	return fmt.Sprintf("%s · %s left", it.e.CreatedAt.Local().Format("15:04"), timeutil.Remaining(left))
}

func (it entryItem) FilterValue() string { return string(it.e.Emotion) }

// messages
type tickMsg time.Time
type changedMsg struct{}
type errMsg struct{ err error }

type reflectedMsg struct {
	seq int
	r   app.Reflection
	err error
}

type insightMsg struct {
	seq int
	in  comfort.Insight
	err error
}

// Model contains UI state.
type Model struct {
	svc   *app.Service
	ctx   context.Context
	theme theme.Theme
	mode  mode

	list    list.Model
	input   textarea.Model
	spinner spinner.Model

	emotionIndex int

	// in-flight request; seq invalidates replies that arrive after a cancel
	cancel   context.CancelFunc
	seq      int
	waitFrom mode

	reply   *comfort.Response
	insight *comfort.Insight

	pending    entry.Entry
	deadline   time.Time
	hasPending bool
	now        time.Time

	status string
	isErr  bool

	termWidth  int
	termHeight int
}

// New creates a UI model backed by svc. Requests made from the UI are
// canceled when ctx is.
func New(ctx context.Context, svc *app.Service) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 60, 20)
	l.Title = "Last 24 hours"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	ta := textarea.New()
	ta.Placeholder = "What happened?"
	ta.CharLimit = comfort.MaxContentLength
	ta.ShowLineNumbers = false
	ta.SetHeight(5)

	m := Model{
		svc:     svc,
		ctx:     ctx,
		theme:   theme.Default(),
		mode:    modeList,
		list:    l,
		input:   ta,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		status:  "o write · d delete · u undo · i insight · ? help · q quit",
	}
	m.emotionIndex = emotionIndex(emotion.Default)
	m.refresh()
	return m
}

// Init starts the countdown ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh reads the working set and the pending undo from the service.
func (m *Model) refresh() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	m.now = m.svc.Now()
	m.pending, m.deadline, m.hasPending = m.svc.Pending()

	entries, err := m.svc.Entries(m.ctx)
	if err != nil {
		m.setError(err)
		return nil
	}
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{e: e, now: m.now})
	}
	return m.list.SetItems(items)
}

func (m *Model) selectedEntry() (entry.Entry, bool) {
	it, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return entry.Entry{}, false
	}
	return it.e, true
}

func (m *Model) setError(err error) {
	m.status = "ERR: " + err.Error()
	m.isErr = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isErr = false
}

func (m Model) selectedEmotion() emotion.Emotion {
	all := emotion.All()
	return all[m.emotionIndex%len(all)]
}

func emotionIndex(em emotion.Emotion) int {
	for i, e := range emotion.All() {
		if e == em {
			return i
		}
	}
	return 0
}

// applySizes recalculates component sizes based on the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	height := m.termHeight - 5
	if height < 5 {
		height = 5
	}
	m.list.SetSize(m.termWidth-2, height)
	width := m.termWidth - 8
	if width < 20 {
		width = 20
	}
	m.input.SetWidth(width)
}
