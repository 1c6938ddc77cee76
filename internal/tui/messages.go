package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/pdxmph/tarefas-tui/internal/api"
)

// User-facing messages
const (
	msgListFailed     = "Erro ao carregar as tarefas. Tente novamente."
	msgDetailsFailed  = "Erro ao carregar os detalhes da tarefa."
	msgNotFound       = "Tarefa não encontrada"
	msgMissingID      = "ID da tarefa não encontrado"
	msgDeleteFailed   = "Erro ao excluir a tarefa."
	msgCreated        = "Tarefa registrada com sucesso!"
	msgCreateFailed   = "Ocorreu um erro ao registrar a tarefa."
	msgUpdated        = "Tarefa atualizada com sucesso!"
	msgUpdateFailed   = "Ocorreu um erro ao atualizar a tarefa."
	msgEditLoadFailed = "Erro ao carregar a tarefa para edição."
)

// Scheduler delivers msg after d. The default is tea.Tick; tests substitute
// a manual clock.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

func tickScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// scopedMsg is a message addressed to one view instance. The app drops it
// once that view is no longer active.
type scopedMsg interface {
	viewToken() uint64
}

type scoped struct {
	token uint64
}

func (s scoped) viewToken() uint64 { return s.token }

// navigateMsg asks the app to open path
type navigateMsg struct {
	scoped
	path string
}

// env is what the app hands each view: its lifetime context, its token, and
// shared collaborators.
type env struct {
	ctx   context.Context
	token uint64
	svc   TaskService
	after Scheduler
	log   *zerolog.Logger
}

func (e env) scope() scoped {
	return scoped{token: e.token}
}

func (e env) navigate(path string) tea.Cmd {
	msg := navigateMsg{scoped: e.scope(), path: path}
	return func() tea.Msg { return msg }
}

// describe turns a service error into the text shown to the user: not found,
// then the backend's own message, then the fallback.
func describe(err error, fallback string) string {
	if api.IsNotFound(err) {
		return msgNotFound
	}
	if m := api.BackendMessage(err); m != "" {
		return m
	}
	return fallback
}
