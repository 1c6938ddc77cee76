package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	noticeTTL     = 5 * time.Second
	redirectDelay = 1500 * time.Millisecond
)

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

type noticeExpiredMsg struct {
	scoped
	seq int
}

// notice is a transient message with a cancelable expiry. Showing a new
// notice or cancelling bumps seq, which turns pending expiries into no-ops.
// Expiries for a torn-down view never arrive (the app drops them).
type notice struct {
	kind noticeKind
	text string
	seq  int
}

func (n *notice) show(e env, kind noticeKind, text string) tea.Cmd {
	n.seq++
	n.kind = kind
	n.text = text
	return e.after(noticeTTL, noticeExpiredMsg{scoped: e.scope(), seq: n.seq})
}

func (n *notice) expire(msg noticeExpiredMsg) {
	if msg.seq == n.seq {
		n.text = ""
	}
}

func (n *notice) cancel() {
	n.seq++
	n.text = ""
}

func (n notice) visible() bool {
	return n.text != ""
}

func (n notice) View() string {
	if !n.visible() {
		return ""
	}
	if n.kind == noticeError {
		return errorStyle.Render("✗ " + n.text)
	}
	return successStyle.Render("✓ " + n.text)
}
