// Package storage persists run artifacts behind a backend-neutral Store
// interface, with an in-memory default and an optional SQLite backend.
package storage

import (
	"context"

	"github.com/SenasCodes/AA-Projeto/internal/model"
)

// Store defines persistence operations for learned tables, simulation runs
// and evolution results.
type Store interface {
	Init(ctx context.Context) error
	SaveQTable(ctx context.Context, record model.QTableRecord) error
	GetQTable(ctx context.Context, id string) (model.QTableRecord, bool, error)
	SaveRun(ctx context.Context, record model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	SaveGenotype(ctx context.Context, record model.GenotypeRecord) error
	GetGenotype(ctx context.Context, id string) (model.GenotypeRecord, bool, error)
	SaveEvolution(ctx context.Context, record model.EvolutionRecord) error
	GetEvolution(ctx context.Context, id string) (model.EvolutionRecord, bool, error)
}
