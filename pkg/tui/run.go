package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/haeuso/pkg/app"
)

// Notifier forwards journal changes to a running program. Its Notify method
// is meant for journal.Options.OnChange.
type Notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

// Notify asks the program to refresh. It never blocks: changes made from
// inside Update would otherwise deadlock the event loop.
func (n *Notifier) Notify() {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p != nil {
		go p.Send(changedMsg{})
	}
}

func (n *Notifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.p = p
	n.mu.Unlock()
}

// Run launches the UI and blocks until the user quits. Entries written by
// other haeuso processes show up while it runs.
func Run(ctx context.Context, svc *app.Service, n *Notifier) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	if n != nil {
		n.attach(p)
		defer n.attach(nil)
	}

	go func() {
		_ = svc.Follow(ctx)
	}()

	_, err := p.Run()
	return err
}
