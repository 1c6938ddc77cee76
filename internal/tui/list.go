package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

type listPhase int

const (
	listLoading listPhase = iota
	listLoaded
	listFailed
)

type listLoadedMsg struct {
	scoped
	tasks []task.Record
	err   error
}

// listView shows every task. tasks is only meaningful in listLoaded and
// failure only in listFailed.
type listView struct {
	env
	phase    listPhase
	tasks    []task.Record
	selected int
	failure  string
}

func newListView(e env) *listView {
	return &listView{env: e, phase: listLoading}
}

func (v *listView) Init() tea.Cmd {
	return v.load()
}

func (v *listView) load() tea.Cmd {
	v.phase = listLoading
	v.failure = ""
	ctx, svc, scope := v.ctx, v.svc, v.scope()
	return func() tea.Msg {
		tasks, err := svc.ListAll(ctx)
		return listLoadedMsg{scoped: scope, tasks: tasks, err: err}
	}
}

func (v *listView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.err != nil {
			v.log.Error().Err(msg.err).Msg("listing tasks")
			v.phase = listFailed
			v.tasks = nil
			v.failure = msgListFailed
			return v, nil
		}
		v.phase = listLoaded
		v.tasks = msg.tasks
		if v.selected >= len(v.tasks) {
			v.selected = max(len(v.tasks)-1, 0)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *listView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "n":
		return v, v.navigate(CreatePath())
	case "r":
		if v.phase == listLoading {
			return v, nil
		}
		return v, v.load()
	}

	if v.phase != listLoaded || len(v.tasks) == 0 {
		return v, nil
	}

	switch msg.String() {
	case "j", "down":
		if v.selected < len(v.tasks)-1 {
			v.selected++
		}
	case "k", "up":
		if v.selected > 0 {
			v.selected--
		}
	case "g", "home":
		v.selected = 0
	case "G", "end":
		v.selected = len(v.tasks) - 1
	case "enter":
		return v, v.navigate(DetailsPath(v.tasks[v.selected].ID))
	}
	return v, nil
}

func (v *listView) CapturesText() bool { return false }

func (v *listView) Help() string {
	switch v.phase {
	case listFailed:
		return "r: tentar novamente • n: nova tarefa • q: sair"
	case listLoaded:
		if len(v.tasks) == 0 {
			return "n: nova tarefa • r: atualizar • q: sair"
		}
		return "j/k: navegar • Enter: detalhes • n: nova tarefa • r: atualizar • q: sair"
	default:
		return "q: sair"
	}
}

func (v *listView) View(l layout) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Minhas Tarefas"))

	switch v.phase {
	case listLoading:
		lines = append(lines, "", l.spinner+" Carregando tarefas...")

	case listFailed:
		lines = append(lines, "", errorStyle.Render(v.failure), "", labelStyle.Render("Pressione r para tentar novamente."))

	case listLoaded:
		lines = append(lines, labelStyle.Render(countLine(len(v.tasks))))
		lines = append(lines, strings.Repeat("─", max(l.width, 1)))

		if len(v.tasks) == 0 {
			lines = append(lines, "", "Nenhuma tarefa encontrada", labelStyle.Render("Pressione n para cadastrar uma nova tarefa."))
			break
		}

		visible := max(l.height-5, 1)
		start := 0
		if v.selected >= visible {
			start = v.selected - visible + 1
		}
		for i := start; i < len(v.tasks) && i < start+visible; i++ {
			lines = append(lines, v.renderRow(i))
		}
	}

	return strings.Join(lines, "\n")
}

func (v *listView) renderRow(i int) string {
	t := v.tasks[i]
	title := strings.TrimSpace(strings.ReplaceAll(t.Title, "\n", " "))
	badge := statusStyle(t.Status).Render("[" + t.Status.Label() + "]")

	if i == v.selected {
		return selectedStyle.Render("> "+title) + " " + badge
	}
	return "  " + title + " " + badge
}

func countLine(n int) string {
	if n == 1 {
		return "1 tarefa encontrada"
	}
	return fmt.Sprintf("%d tarefas encontradas", n)
}
