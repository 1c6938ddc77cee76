package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// view is one screen. Views are created per navigation and discarded on the
// next one.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View(l layout) string
	Help() string
	// CapturesText reports whether plain keys are typed into an input
	CapturesText() bool
}

// layout is what a view needs to render
type layout struct {
	width   int
	height  int
	spinner string
}

// Model is the application shell: it owns the active view and routes
// navigation between views.
type Model struct {
	root  context.Context
	svc   TaskService
	after Scheduler
	log   *zerolog.Logger
	start string

	route   Route
	current view
	cancel  context.CancelFunc
	token   uint64

	spinner spinner.Model
	width   int
	height  int
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger
func WithLogger(l *zerolog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithScheduler replaces tea.Tick for notices and delayed redirects
func WithScheduler(s Scheduler) Option {
	return func(m *Model) {
		m.after = s
	}
}

// WithContext sets the parent of every view's context
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.root = ctx
	}
}

// WithStartPath sets the first path opened
func WithStartPath(path string) Option {
	return func(m *Model) {
		m.start = path
	}
}

// New creates a new application model
func New(svc TaskService, opts ...Option) *Model {
	nop := zerolog.Nop()
	m := &Model{
		root:  context.Background(),
		svc:   svc,
		after: tickScheduler,
		log:   &nop,
		start: ListPath(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(labelStyle),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Route returns the active route
func (m *Model) Route() Route {
	return m.route
}

// Init opens the start path
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.open(m.start))
}

// open tears down the active view and creates the one for path. Unknown
// paths fall back to the list.
func (m *Model) open(path string) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}

	route, ok := Resolve(path)
	if !ok {
		m.log.Warn().Str("path", path).Msg("unknown route, opening list")
		route = Route{Name: RouteList}
	}

	m.token++
	ctx, cancel := context.WithCancel(m.root)
	m.cancel = cancel
	m.route = route

	e := env{
		ctx:   ctx,
		token: m.token,
		svc:   m.svc,
		after: m.after,
		log:   m.log,
	}

	switch route.Name {
	case RouteCreate:
		m.current = newFormView(e, false, "")
	case RouteEdit:
		m.current = newFormView(e, true, route.ID)
	case RouteDetails:
		m.current = newDetailsView(e, route.ID)
	default:
		m.current = newListView(e)
	}

	m.log.Debug().Str("route", route.Name.String()).Str("id", route.ID).Uint64("token", m.token).Msg("navigated")
	return m.current.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "q":
			if !m.current.CapturesText() {
				return m, m.quit()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navigateMsg:
		if msg.viewToken() != m.token {
			return m, nil
		}
		return m, m.open(msg.path)
	}

	if s, ok := msg.(scopedMsg); ok && s.viewToken() != m.token {
		m.log.Debug().Uint64("token", s.viewToken()).Uint64("active", m.token).Msgf("dropping %T for inactive view", msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

func (m *Model) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}

// View renders the UI
func (m *Model) View() string {
	if m.current == nil {
		return ""
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	height := m.height
	if height == 0 {
		height = 24
	}

	l := layout{
		width:   width - 4, // border and padding
		height:  height - 3,
		spinner: m.spinner.View(),
	}

	header := titleStyle.Render("Tarefas") + labelStyle.Render("  "+m.route.Path())
	body := borderStyle.Width(width - 2).Render(m.current.View(l))
	help := helpStyle.Render(" " + m.current.Help())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help)
}

// wrapText wraps text at word boundaries
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if lipgloss.Width(line)+1+lipgloss.Width(word) > width {
				lines = append(lines, line)
				line = word
			} else {
				line += " " + word
			}
		}
		lines = append(lines, line)
	}
	return lines
}
