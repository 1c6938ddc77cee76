package task

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task as the backend names it
type Status string

const (
	StatusPending    Status = "PENDENTE"
	StatusInProgress Status = "EM_ANDAMENTO"
	StatusDone       Status = "CONCLUIDO"
)

// Statuses lists the valid statuses in the order the form cycles through them
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusDone,
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid task")

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the display name of the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusInProgress:
		return "Em Andamento"
	case StatusDone:
		return "Concluído"
	default:
		return string(s)
	}
}

// Next returns the status after s in Statuses, wrapping around
func (s Status) Next() Status {
	return s.step(1)
}

// Prev returns the status before s in Statuses, wrapping around
func (s Status) Prev() Status {
	return s.step(-1)
}

func (s Status) step(delta int) Status {
	idx := 0
	for i, st := range Statuses {
		if st == s {
			idx = i
			break
		}
	}
	n := len(Statuses)
	return Statuses[((idx+delta)%n+n)%n]
}

// Task is the client-editable part of a task
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// New returns an empty task with the default status
func New() Task {
	return Task{Status: StatusPending}
}

// Validate checks the required fields. Whitespace-only text counts as empty.
func (t Task) Validate() error {
	var problems []string
	if strings.TrimSpace(t.Title) == "" {
		problems = append(problems, "título é obrigatório")
	}
	if strings.TrimSpace(t.Description) == "" {
		problems = append(problems, "descrição é obrigatória")
	}
	if !t.Status.Valid() {
		problems = append(problems, fmt.Sprintf("status inválido %q", string(t.Status)))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, ", "))
	}
	return nil
}

// Record is a task as stored and returned by the backend. ID, CreatedAt and
// UpdatedAt are assigned by the backend and never changed by the client.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Task returns the editable fields of the record
func (r Record) Task() Task {
	return Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}
