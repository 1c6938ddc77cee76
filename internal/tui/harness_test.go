package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type pendingTimer struct {
	d   time.Duration
	msg tea.Msg
}

// harness drives a Model synchronously: commands run inline and their
// messages are fed back until nothing is left. Scheduled messages wait in
// timers until fire is called.
type harness struct {
	t      *testing.T
	app    *Model
	svc    *fakeService
	timers []pendingTimer
	quit   bool
}

func newHarness(t *testing.T, svc *fakeService, path string) *harness {
	t.Helper()
	h := &harness{t: t, svc: svc}
	h.app = New(svc, WithStartPath(path), WithScheduler(h.schedule))
	h.run(h.app.Init())
	return h
}

func (h *harness) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	h.timers = append(h.timers, pendingTimer{d: d, msg: msg})
	return nil
}

// fire delivers every pending timer in the order scheduled
func (h *harness) fire() {
	pending := h.timers
	h.timers = nil
	for _, p := range pending {
		h.send(p.msg)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			h.quit = true
		default:
			_, next := h.app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) screen() string {
	return h.app.View()
}

func (h *harness) route() Route {
	return h.app.Route()
}

func (h *harness) list() *listView {
	h.t.Helper()
	v, ok := h.app.current.(*listView)
	if !ok {
		h.t.Fatalf("active view is %T, want *listView", h.app.current)
	}
	return v
}

func (h *harness) details() *detailsView {
	h.t.Helper()
	v, ok := h.app.current.(*detailsView)
	if !ok {
		h.t.Fatalf("active view is %T, want *detailsView", h.app.current)
	}
	return v
}

func (h *harness) form() *formView {
	h.t.Helper()
	v, ok := h.app.current.(*formView)
	if !ok {
		h.t.Fatalf("active view is %T, want *formView", h.app.current)
	}
	return v
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+c":    tea.KeyCtrlC,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"end":       tea.KeyEnd,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
