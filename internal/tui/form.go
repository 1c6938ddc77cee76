package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

type formPhase int

const (
	formFetching formPhase = iota
	formEditing
	formFetchFailed
	formRedirecting
)

// Form field indices
const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
	fieldCount
)

type formPrefillMsg struct {
	scoped
	rec task.Record
	err error
}

type formSavedMsg struct {
	scoped
	rec task.Record
	err error
}

type redirectMsg struct {
	scoped
	path string
}

// formView creates a task, or edits task id when edit is set.
// fields mirrors the inputs after every key; submitting is set while a
// create or update is in flight.
type formView struct {
	env
	id         string
	edit       bool
	phase      formPhase
	fields     task.Task
	submitting bool
	failure    string
	validation string
	notice     notice

	focus       int
	title       textinput.Model
	description textarea.Model
}

func newFormView(e env, edit bool, id string) *formView {
	ti := textinput.New()
	ti.Placeholder = "Digite o título"
	ti.CharLimit = 0
	ti.Width = 50
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)

	ta := textarea.New()
	ta.Placeholder = "Digite a descrição"
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(4)
	ta.Cursor.SetMode(cursor.CursorStatic)

	v := &formView{
		env:         e,
		id:          id,
		edit:        edit,
		fields:      task.New(),
		title:       ti,
		description: ta,
	}
	switch {
	case edit && id == "":
		v.phase = formFetchFailed
		v.failure = msgMissingID
	case edit:
		v.phase = formFetching
	default:
		v.phase = formEditing
		v.setFocus(fieldTitle)
	}
	return v
}

func (v *formView) editing() bool {
	return v.edit
}

// Init fetches the task being edited; the create form needs nothing
func (v *formView) Init() tea.Cmd {
	if v.phase != formFetching {
		return nil
	}

	ctx, svc, scope, id := v.ctx, v.svc, v.scope(), v.id
	return func() tea.Msg {
		rec, err := svc.GetByID(ctx, id)
		return formPrefillMsg{scoped: scope, rec: rec, err: err}
	}
}

func (v *formView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case formPrefillMsg:
		if msg.err != nil {
			v.log.Error().Err(msg.err).Str("id", v.id).Msg("loading task for edit")
			v.phase = formFetchFailed
			v.failure = describe(msg.err, msgEditLoadFailed)
			return v, nil
		}
		v.phase = formEditing
		v.setFields(msg.rec.Task())
		v.setFocus(fieldTitle)
		return v, nil

	case formSavedMsg:
		return v.saved(msg)

	case noticeExpiredMsg:
		v.notice.expire(msg)
		return v, nil

	case redirectMsg:
		return v, v.navigate(msg.path)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *formView) handleKey(msg tea.KeyMsg) (view, tea.Cmd) {
	if msg.String() == "esc" {
		return v, v.navigate(v.backPath())
	}
	if v.phase != formEditing {
		return v, nil
	}

	switch msg.String() {
	case "ctrl+s":
		return v, v.submit()
	case "tab":
		v.setFocus((v.focus + 1) % fieldCount)
		return v, nil
	case "shift+tab":
		v.setFocus((v.focus + fieldCount - 1) % fieldCount)
		return v, nil
	}

	switch v.focus {
	case fieldStatus:
		switch msg.String() {
		case "left", "h", "up", "k":
			v.fields.Status = v.fields.Status.Prev()
		case "right", "l", "down", "j", " ":
			v.fields.Status = v.fields.Status.Next()
		case "enter":
			return v, v.submit()
		}
		return v, nil

	case fieldTitle:
		if msg.String() == "enter" {
			v.setFocus(fieldDescription)
			return v, nil
		}
		var cmd tea.Cmd
		v.title, cmd = v.title.Update(msg)
		v.fields.Title = v.title.Value()
		v.validation = ""
		return v, cmd

	default:
		var cmd tea.Cmd
		v.description, cmd = v.description.Update(msg)
		v.fields.Description = v.description.Value()
		v.validation = ""
		return v, cmd
	}
}

func (v *formView) backPath() string {
	if v.editing() && v.phase != formFetchFailed {
		return DetailsPath(v.id)
	}
	return ListPath()
}

// submit validates locally and sends the request. Invalid input never
// reaches the network, and a second submit while one is in flight is ignored.
func (v *formView) submit() tea.Cmd {
	if v.submitting || v.phase != formEditing {
		return nil
	}

	draft := v.fields
	if err := draft.Validate(); err != nil {
		v.validation = validationMessage(draft)
		return nil
	}

	v.submitting = true
	v.validation = ""
	v.notice.cancel()

	ctx, svc, scope, id := v.ctx, v.svc, v.scope(), v.id
	if v.editing() {
		return func() tea.Msg {
			rec, err := svc.Update(ctx, id, draft)
			return formSavedMsg{scoped: scope, rec: rec, err: err}
		}
	}
	return func() tea.Msg {
		rec, err := svc.Create(ctx, draft)
		return formSavedMsg{scoped: scope, rec: rec, err: err}
	}
}

func (v *formView) saved(msg formSavedMsg) (view, tea.Cmd) {
	v.submitting = false

	if msg.err != nil {
		fallback := msgCreateFailed
		if v.editing() {
			fallback = msgUpdateFailed
		}
		if errors.Is(msg.err, task.ErrInvalid) {
			v.validation = validationMessage(v.fields)
			return v, nil
		}
		v.log.Error().Err(msg.err).Str("id", v.id).Msg("saving task")
		return v, v.notice.show(v.env, noticeError, describe(msg.err, fallback))
	}

	if v.editing() {
		v.log.Info().Str("id", v.id).Msg("task updated")
		v.phase = formRedirecting
		return v, tea.Batch(
			v.notice.show(v.env, noticeSuccess, msgUpdated),
			v.after(redirectDelay, redirectMsg{scoped: v.scope(), path: DetailsPath(v.id)}),
		)
	}

	v.log.Info().Str("id", msg.rec.ID).Msg("task created")
	v.setFields(task.New())
	v.setFocus(fieldTitle)
	return v, v.notice.show(v.env, noticeSuccess, msgCreated)
}

func validationMessage(t task.Task) string {
	var missing []string
	if strings.TrimSpace(t.Title) == "" {
		missing = append(missing, "título")
	}
	if strings.TrimSpace(t.Description) == "" {
		missing = append(missing, "descrição")
	}
	if len(missing) > 0 {
		return "Preencha o campo obrigatório: " + strings.Join(missing, " e ")
	}
	return "Selecione um status válido."
}

func (v *formView) setFields(t task.Task) {
	v.fields = t
	v.title.SetValue(t.Title)
	v.description.SetValue(t.Description)
}

func (v *formView) setFocus(field int) {
	v.focus = field
	v.title.Blur()
	v.description.Blur()
	switch field {
	case fieldTitle:
		v.title.Focus()
	case fieldDescription:
		v.description.Focus()
	}
}

// CapturesText is true while an input can receive typing
func (v *formView) CapturesText() bool {
	return v.phase == formEditing && v.focus != fieldStatus
}

func (v *formView) Help() string {
	switch v.phase {
	case formFetching:
		return "Esc: cancelar"
	case formFetchFailed:
		return "Esc: voltar para lista • q: sair"
	case formRedirecting:
		return "redirecionando..."
	}
	if v.focus == fieldStatus {
		return "←/→: status • Enter/Ctrl+S: salvar • Tab: próximo campo • Esc: cancelar • q: sair"
	}
	return "Tab: próximo campo • Ctrl+S: salvar • Esc: cancelar"
}

func (v *formView) View(l layout) string {
	heading := "Criar Tarefa"
	if v.editing() {
		heading = "Editar Tarefa"
	}

	switch v.phase {
	case formFetching:
		return titleStyle.Render(heading) + "\n\n" + l.spinner + " Carregando tarefa..."
	case formFetchFailed:
		return strings.Join([]string{
			titleStyle.Render(heading),
			"",
			errorStyle.Render(v.failure),
			"",
			labelStyle.Render("Pressione Esc para voltar para a lista."),
		}, "\n")
	}

	required := errorStyle.Render("*")
	lines := []string{
		titleStyle.Render(heading),
		"",
		v.fieldLabel(fieldTitle, "Título") + " " + required,
		v.title.View(),
		"",
		v.fieldLabel(fieldDescription, "Descrição") + " " + required,
		v.description.View(),
		"",
		v.fieldLabel(fieldStatus, "Status") + " " + required,
		v.renderStatus(),
		"",
		v.renderButton(l.spinner),
	}

	if v.validation != "" {
		lines = append(lines, "", errorStyle.Render(v.validation))
	}
	if v.notice.visible() {
		lines = append(lines, "", v.notice.View())
	}
	return strings.Join(lines, "\n")
}

func (v *formView) fieldLabel(field int, text string) string {
	if v.focus == field {
		return selectedStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (v *formView) renderStatus() string {
	var opts []string
	for _, s := range task.Statuses {
		if s == v.fields.Status {
			opts = append(opts, statusStyle(s).Render("("+s.Label()+")"))
		} else {
			opts = append(opts, labelStyle.Render(" "+s.Label()+" "))
		}
	}
	row := strings.Join(opts, " ")
	if v.focus == fieldStatus {
		return "< " + row + " >"
	}
	return "  " + row
}

func (v *formView) renderButton(spinnerFrame string) string {
	if v.submitting {
		return spinnerFrame + " Salvando..."
	}
	if v.phase == formRedirecting {
		return labelStyle.Render("Salvo")
	}
	return selectedStyle.Render(" Salvar ") + labelStyle.Render("  (Ctrl+S)")
}
