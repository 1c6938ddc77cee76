package store

import (
	"context"
	"fmt"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

// Fixtures is realistic sample data for a fresh development database
var Fixtures = []task.Task{
	{
		Title:       "Comprar leite",
		Description: "Leite semidesnatado, dois litros.",
		Status:      task.StatusPending,
	},
	{
		Title:       "Revisar relatório trimestral",
		Description: "Conferir os números de vendas antes da reunião de sexta.",
		Status:      task.StatusInProgress,
	},
	{
		Title:       "Renovar passaporte",
		Description: "Agendar atendimento na Polícia Federal e levar a foto 5x7.",
		Status:      task.StatusPending,
	},
	{
		Title:       "Pagar conta de luz",
		Description: "Vencimento dia 10.",
		Status:      task.StatusDone,
	},
}

// Seed inserts the fixtures when the database has no tasks.
// It reports how many were inserted.
func (db *DB) Seed(ctx context.Context) (int, error) {
	existing, err := db.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, t := range Fixtures {
		if _, err := db.Create(ctx, t); err != nil {
			return i, fmt.Errorf("inserting fixture %q: %w", t.Title, err)
		}
	}
	return len(Fixtures), nil
}
