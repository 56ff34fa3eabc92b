package tui

import (
	"context"
	"io"
	"log"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/clock"
	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/config"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/store"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func newTestService(t *testing.T) (*app.Service, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	svc, err := app.Load(&config.Config{
		StoreMode: store.ModeVolatile,
		LLM:       config.LLM{Mode: config.LLMModeStub, Fallback: true},
	}, app.LoadOptions{Clock: fake, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc, fake
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	return next.(Model)
}

func TestListShowsCountdown(t *testing.T) {
	svc, fake := newTestService(t)
	if _, err := svc.Reflect(context.Background(), "비 오는 날", emotion.Sad); err != nil {
		t.Fatalf("reflect: %v", err)
	}
	fake.Advance(90 * time.Minute)

	m := sized(New(context.Background(), svc))
	view := stripANSI(m.View())
	if !strings.Contains(view, "슬픔") {
		t.Fatalf("expected the sad entry; view=%q", view)
	}
	if !strings.Contains(view, "22h30m left") {
		t.Fatalf("expected the countdown; view=%q", view)
	}
}

func TestEmptyListHint(t *testing.T) {
	svc, _ := newTestService(t)
	view := stripANSI(sized(New(context.Background(), svc)).View())
	if !strings.Contains(view, "Press o to write") {
		t.Fatalf("expected empty hint; view=%q", view)
	}
}

func TestComposeSendAndReply(t *testing.T) {
	svc, _ := newTestService(t)
	m := sized(New(context.Background(), svc))

	m = send(t, m, key("o"))
	if m.mode != modeCompose {
		t.Fatalf("expected compose mode, got %v", m.mode)
	}
	m.input.SetValue("회의가 길어서 지쳤다")
	m = send(t, m, key("tab"))
	want := emotion.All()[(emotionIndex(emotion.Default)+1)%len(emotion.All())]
	if m.selectedEmotion() != want {
		t.Fatalf("tab should move the picker to %s, got %s", want, m.selectedEmotion())
	}

	m = send(t, m, key("ctrl+s"))
	if m.mode != modeWaiting {
		t.Fatalf("expected waiting mode, got %v", m.mode)
	}

	msg := reflectCmd(m.ctx, svc, m.seq, m.input.Value(), m.selectedEmotion())()
	m = send(t, m, msg)
	if m.mode != modeReply || m.reply == nil {
		t.Fatalf("expected reply mode with a reply, got %v", m.mode)
	}
	if m.reply.Category != comfort.CategoryNormal {
		t.Fatalf("unexpected category %s", m.reply.Category)
	}
	if m.input.Value() != "" {
		t.Fatalf("compose text should be cleared after sending")
	}
	if len(m.list.Items()) != 1 {
		t.Fatalf("expected one entry after sending, got %d", len(m.list.Items()))
	}

	m = send(t, m, key("enter"))
	if m.mode != modeList {
		t.Fatalf("enter should return to the list, got %v", m.mode)
	}
}

func TestComposeRejectsBlank(t *testing.T) {
	svc, _ := newTestService(t)
	m := send(t, sized(New(context.Background(), svc)), key("o"))
	m.input.SetValue("   ")
	m = send(t, m, key("ctrl+s"))
	if m.mode != modeCompose || !m.isErr {
		t.Fatalf("blank note should stay in compose with an error, mode=%v status=%q", m.mode, m.status)
	}
}

func TestEscCancelsWaitingAndIgnoresLateReply(t *testing.T) {
	svc, _ := newTestService(t)
	m := send(t, sized(New(context.Background(), svc)), key("o"))
	m.input.SetValue("늦은 답장")
	m = send(t, m, key("ctrl+s"))
	seq := m.seq

	m = send(t, m, key("esc"))
	if m.mode != modeCompose {
		t.Fatalf("esc should return to compose, got %v", m.mode)
	}
	if m.input.Value() != "늦은 답장" {
		t.Fatalf("compose text should survive a cancel, got %q", m.input.Value())
	}

	m = send(t, m, reflectedMsg{seq: seq, r: app.Reflection{Response: comfort.Response{Message: "late"}}})
	if m.mode != modeCompose || m.reply != nil {
		t.Fatalf("late reply should be ignored")
	}
}

func TestComfortFailureKeepsCompose(t *testing.T) {
	svc, _ := newTestService(t)
	m := send(t, sized(New(context.Background(), svc)), key("o"))
	m.input.SetValue("아무 일")
	m = send(t, m, key("ctrl+s"))

	m = send(t, m, reflectedMsg{seq: m.seq, err: app.ErrComfortUnavailable})
	if m.mode != modeCompose || !m.isErr {
		t.Fatalf("expected compose with an error, mode=%v", m.mode)
	}
	if !strings.Contains(m.status, "nothing was recorded") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestDeleteShowsToastAndUndoRestores(t *testing.T) {
	svc, fake := newTestService(t)
	if _, err := svc.Reflect(context.Background(), "화가 났다", emotion.Angry); err != nil {
		t.Fatalf("reflect: %v", err)
	}
	m := sized(New(context.Background(), svc))

	m = send(t, m, key("d"))
	if len(m.list.Items()) != 0 {
		t.Fatalf("entry should be gone after delete")
	}
	fake.Advance(2 * time.Second)
	m = send(t, m, changedMsg{})
	view := stripANSI(m.View())
	if !strings.Contains(view, "u to undo (3s)") {
		t.Fatalf("expected the undo toast counting down; view=%q", view)
	}

	m = send(t, m, key("u"))
	if len(m.list.Items()) != 1 {
		t.Fatalf("undo should restore the entry")
	}
	if strings.Contains(stripANSI(m.View()), "u to undo") {
		t.Fatalf("toast should be gone after undo")
	}
}

func TestToastDisappearsAfterWindow(t *testing.T) {
	svc, fake := newTestService(t)
	if _, err := svc.Reflect(context.Background(), "불안하다", emotion.Anxious); err != nil {
		t.Fatalf("reflect: %v", err)
	}
	m := send(t, sized(New(context.Background(), svc)), key("d"))
	fake.Advance(6 * time.Second)
	m = send(t, m, changedMsg{})
	if m.hasPending {
		t.Fatalf("undo window should have closed")
	}
	m = send(t, m, key("u"))
	if m.status != "Nothing to undo" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestInsightView(t *testing.T) {
	svc, _ := newTestService(t)
	for _, em := range []emotion.Emotion{emotion.Happy, emotion.Happy, emotion.Sad} {
		if _, err := svc.Reflect(context.Background(), "메모", em); err != nil {
			t.Fatalf("reflect: %v", err)
		}
	}
	m := send(t, sized(New(context.Background(), svc)), key("i"))
	if m.mode != modeWaiting {
		t.Fatalf("expected waiting mode, got %v", m.mode)
	}
	m = send(t, m, insightCmd(m.ctx, svc, m.seq, 7)())
	if m.mode != modeReply || m.insight == nil {
		t.Fatalf("expected the insight panel")
	}
	if m.insight.Dominant != string(emotion.Happy) || m.insight.Total != 3 {
		t.Fatalf("unexpected insight %+v", m.insight)
	}
	if !strings.Contains(stripANSI(m.View()), "Last 7 days · 3 entries") {
		t.Fatalf("expected insight title")
	}
}
