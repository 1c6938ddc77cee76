package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/pdxmph/tarefas-tui/internal/store"
	"github.com/pdxmph/tarefas-tui/internal/task"
)

const notFoundMessage = "Tarefa não encontrada"

type handlers struct {
	store Store
	log   *zerolog.Logger
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	t, ok := h.decodeTask(w, r)
	if !ok {
		return
	}

	rec, err := h.store.Create(r.Context(), t)
	if err != nil {
		h.fail(w, err, "failed to create task")
		return
	}

	h.log.Debug().Str("id", rec.ID).Msg("task created")
	writeJSON(w, http.StatusCreated, rec)
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, err, "failed to list tasks")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err, "failed to get task")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := h.decodeTask(w, r)
	if !ok {
		return
	}

	rec, err := h.store.Update(r.Context(), id, t)
	if err != nil {
		h.fail(w, err, "failed to update task")
		return
	}

	h.log.Debug().Str("id", id).Str("status", string(rec.Status)).Msg("task updated")
	writeJSON(w, http.StatusOK, rec)
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "failed to delete task")
		return
	}

	h.log.Debug().Str("id", id).Msg("task deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) decodeTask(w http.ResponseWriter, r *http.Request) (task.Task, bool) {
	var t task.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		h.log.Debug().Err(err).Msg("invalid task payload")
		http.Error(w, "Corpo da requisição inválido", http.StatusBadRequest)
		return task.Task{}, false
	}
	if err := t.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return task.Task{}, false
	}
	return t, true
}

func (h *handlers) fail(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, notFoundMessage, http.StatusNotFound)
	case errors.Is(err, task.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error().Err(err).Msg(msg)
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
