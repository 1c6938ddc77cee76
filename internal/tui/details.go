package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

type detailsPhase int

const (
	detailsLoading detailsPhase = iota
	detailsLoaded
	detailsFailed
	detailsConfirmingDelete
	detailsDeleting
)

type taskFetchedMsg struct {
	scoped
	rec task.Record
	err error
}

type taskDeletedMsg struct {
	scoped
	err error
}

// detailsView shows one task and gates deletion behind a confirmation.
// rec is valid in every phase except loading and failed.
type detailsView struct {
	env
	id        string
	phase     detailsPhase
	rec       task.Record
	failure   string
	deleteErr string
}

func newDetailsView(e env, id string) *detailsView {
	return &detailsView{env: e, id: id, phase: detailsLoading}
}

func (v *detailsView) Init() tea.Cmd {
	return v.load()
}

func (v *detailsView) load() tea.Cmd {
	if v.id == "" {
		v.phase = detailsFailed
		v.failure = msgMissingID
		return nil
	}

	v.phase = detailsLoading
	v.failure = ""
	v.deleteErr = ""
	ctx, svc, scope, id := v.ctx, v.svc, v.scope(), v.id
	return func() tea.Msg {
		rec, err := svc.GetByID(ctx, id)
		return taskFetchedMsg{scoped: scope, rec: rec, err: err}
	}
}

func (v *detailsView) remove() tea.Cmd {
	v.phase = detailsDeleting
	v.deleteErr = ""
	ctx, svc, scope, id := v.ctx, v.svc, v.scope(), v.id
	return func() tea.Msg {
		return taskDeletedMsg{scoped: scope, err: svc.DeleteByID(ctx, id)}
	}
}

func (v *detailsView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case taskFetchedMsg:
		if msg.err != nil {
			v.log.Error().Err(msg.err).Str("id", v.id).Msg("fetching task")
			v.phase = detailsFailed
			v.failure = describe(msg.err, msgDetailsFailed)
			return v, nil
		}
		v.phase = detailsLoaded
		v.rec = msg.rec
		return v, nil

	case taskDeletedMsg:
		if msg.err != nil {
			v.log.Error().Err(msg.err).Str("id", v.id).Msg("deleting task")
			v.phase = detailsLoaded
			v.deleteErr = describe(msg.err, msgDeleteFailed)
			return v, nil
		}
		v.log.Info().Str("id", v.id).Msg("task deleted")
		return v, v.navigate(ListPath())

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *detailsView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	key := msg.String()

	switch v.phase {
	case detailsConfirmingDelete:
		if key == "y" || key == "Y" {
			return v, v.remove()
		}
		// Any other key cancels
		v.phase = detailsLoaded
		return v, nil

	case detailsDeleting, detailsLoading:
		if key == "esc" && v.phase == detailsLoading {
			return v, v.navigate(ListPath())
		}
		return v, nil

	case detailsFailed:
		switch key {
		case "r":
			return v, v.load()
		case "esc", "backspace", "b":
			return v, v.navigate(ListPath())
		}
		return v, nil
	}

	switch key {
	case "esc", "backspace", "b":
		return v, v.navigate(ListPath())
	case "e":
		return v, v.navigate(EditPath(v.id))
	case "d":
		v.phase = detailsConfirmingDelete
		v.deleteErr = ""
	case "r":
		return v, v.load()
	}
	return v, nil
}

// CapturesText holds plain keys while a delete awaits confirmation, so q
// cancels the prompt instead of quitting.
func (v *detailsView) CapturesText() bool { return v.phase == detailsConfirmingDelete }

func (v *detailsView) Help() string {
	switch v.phase {
	case detailsConfirmingDelete:
		return "y: confirmar exclusão • qualquer outra tecla: cancelar"
	case detailsDeleting:
		return "excluindo..."
	case detailsFailed:
		if v.id == "" {
			return "Esc: voltar para lista • q: sair"
		}
		return "r: tentar novamente • Esc: voltar para lista • q: sair"
	case detailsLoaded:
		return "e: editar • d: excluir • r: recarregar • Esc: voltar para lista • q: sair"
	default:
		return "Esc: voltar para lista • q: sair"
	}
}

func (v *detailsView) View(l layout) string {
	switch v.phase {
	case detailsLoading:
		return l.spinner + " Carregando detalhes..."
	case detailsFailed:
		return strings.Join([]string{
			errorStyle.Render(v.failure),
			"",
			labelStyle.Render("Pressione Esc para voltar para a lista."),
		}, "\n")
	}

	page := v.renderTask(l.width)
	switch v.phase {
	case detailsConfirmingDelete:
		prompt := confirmStyle.Render(fmt.Sprintf("Excluir a tarefa %q?\n\nEsta ação não pode ser desfeita.\n\ny: sim • qualquer outra tecla: não", v.rec.Title))
		return lipgloss.JoinVertical(lipgloss.Left, page, "", prompt)
	case detailsDeleting:
		return lipgloss.JoinVertical(lipgloss.Left, page, "", l.spinner+" Excluindo...")
	}
	if v.deleteErr != "" {
		return lipgloss.JoinVertical(lipgloss.Left, page, "", errorStyle.Render(v.deleteErr))
	}
	return page
}

func (v *detailsView) renderTask(width int) string {
	r := v.rec
	var lines []string

	lines = append(lines, titleStyle.Render(r.Title))
	lines = append(lines, strings.Repeat("─", max(width, 1)))
	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("Status: ")+statusStyle(r.Status).Render(r.Status.Label()))
	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("Descrição:"))
	lines = append(lines, wrapText(r.Description, width)...)
	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("Criado em:     ")+r.CreatedAt.Display())
	lines = append(lines, labelStyle.Render("Atualizado em: ")+r.UpdatedAt.Display())
	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("ID da Tarefa:  ")+r.ID)

	return strings.Join(lines, "\n")
}
