package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/tarefas-tui/internal/api"
	"github.com/pdxmph/tarefas-tui/internal/task"
)

func seededService() *fakeService {
	return newFakeService(task.Task{Title: "Buy milk", Description: "2% milk", Status: task.StatusPending})
}

func TestDetailsLoadsTask(t *testing.T) {
	h := newHarness(t, seededService(), DetailsPath("task-1"))

	v := h.details()
	assert.Equal(t, detailsLoaded, v.phase)
	assert.Equal(t, "Buy milk", v.rec.Title)

	screen := h.screen()
	assert.True(t, containsAll(screen, "Buy milk", "Pendente", "2% milk", "task-1", "01/03/2025"), screen)
}

func TestDetailsMissingIDFailsWithoutRequest(t *testing.T) {
	svc := seededService()
	h := newHarness(t, svc, "/tarefa/")

	v := h.details()
	assert.Equal(t, detailsFailed, v.phase)
	assert.Equal(t, msgMissingID, v.failure)
	assert.Empty(t, svc.calls)
}

func TestDetailsNotFound(t *testing.T) {
	h := newHarness(t, seededService(), DetailsPath("nope"))

	v := h.details()
	assert.Equal(t, detailsFailed, v.phase)
	assert.Equal(t, msgNotFound, v.failure)
	assert.Contains(t, h.screen(), "Tarefa não encontrada")

	h.press("esc")
	assert.Equal(t, Route{Name: RouteList}, h.route())
}

func TestDetailsTransportFailureUsesFallback(t *testing.T) {
	svc := seededService()
	svc.errs["get"] = &api.TransportError{Op: "get", Err: errors.New("connection reset")}

	h := newHarness(t, svc, DetailsPath("task-1"))
	assert.Equal(t, msgDetailsFailed, h.details().failure)

	delete(svc.errs, "get")
	h.press("r")
	assert.Equal(t, detailsLoaded, h.details().phase)
}

func TestDetailsDeleteConfirmed(t *testing.T) {
	svc := seededService()
	h := newHarness(t, svc, DetailsPath("task-1"))

	h.press("d")
	assert.Equal(t, detailsConfirmingDelete, h.details().phase)
	assert.Contains(t, h.screen(), "Esta ação não pode ser desfeita")
	assert.Zero(t, svc.callCount("delete"))

	h.press("y")
	assert.Equal(t, 1, svc.callCount("delete:task-1"))
	assert.Equal(t, Route{Name: RouteList}, h.route())
	assert.Equal(t, listLoaded, h.list().phase)
	assert.Empty(t, h.list().tasks)
}

func TestDetailsDeleteCancelled(t *testing.T) {
	svc := seededService()
	h := newHarness(t, svc, DetailsPath("task-1"))

	h.press("d", "n")
	assert.Equal(t, detailsLoaded, h.details().phase)
	assert.Zero(t, svc.callCount("delete"))
}

func TestDetailsDeleteFailureReturnsToLoaded(t *testing.T) {
	svc := seededService()
	svc.errs["delete"] = &api.TransportError{Op: "delete", StatusCode: 500, Message: "Erro interno do servidor"}
	h := newHarness(t, svc, DetailsPath("task-1"))

	h.press("d", "y")

	v := h.details()
	assert.Equal(t, detailsLoaded, v.phase)
	assert.Equal(t, "Erro interno do servidor", v.deleteErr)
	assert.Contains(t, h.screen(), "Erro interno do servidor")
	assert.Equal(t, DetailsPath("task-1"), h.route().Path())
}

func TestDetailsEditNavigates(t *testing.T) {
	h := newHarness(t, seededService(), DetailsPath("task-1"))

	h.press("e")
	assert.Equal(t, Route{Name: RouteEdit, ID: "task-1"}, h.route())
	assert.Equal(t, formEditing, h.form().phase)
	assert.Equal(t, "Buy milk", h.form().fields.Title)
}

func TestDetailsKeysIgnoredWhileDeleting(t *testing.T) {
	svc := seededService()
	h := newHarness(t, svc, DetailsPath("task-1"))

	h.press("d")
	// Start the delete but hold its result
	_, cmd := h.app.Update(keyMsg("y"))
	assert.Equal(t, detailsDeleting, h.details().phase)

	_, again := h.app.Update(keyMsg("d"))
	assert.Nil(t, again)
	assert.Equal(t, detailsDeleting, h.details().phase)

	h.run(cmd)
	assert.Equal(t, Route{Name: RouteList}, h.route())
}

func TestDetailsReloadClearsDeleteError(t *testing.T) {
	svc := seededService()
	svc.errs["delete"] = errors.New("boom")
	h := newHarness(t, svc, DetailsPath("task-1"))

	h.press("d", "y")
	require.Equal(t, msgDeleteFailed, h.details().deleteErr)

	h.press("r")
	assert.Equal(t, detailsLoaded, h.details().phase)
	assert.Empty(t, h.details().deleteErr)
	assert.NotContains(t, h.screen(), msgDeleteFailed)
}

func TestDetailsQCancelsDeleteConfirmation(t *testing.T) {
	svc := seededService()
	h := newHarness(t, svc, DetailsPath("task-1"))

	h.press("d", "q")
	assert.False(t, h.quit)
	assert.Equal(t, detailsLoaded, h.details().phase)
	assert.Zero(t, svc.callCount("delete"))

	h.press("q")
	assert.True(t, h.quit)
}
