package rl

import (
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// moveNames is the fixed action set every Q-table row is initialized over.
var moveNames = []string{
	world.North.String(),
	world.South.String(),
	world.East.String(),
	world.West.String(),
}

// QTable maps discrete state keys to per-action value estimates. Rows are
// created lazily with every action at 0 the first time a state is touched.
type QTable struct {
	values map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{values: make(map[string]map[string]float64)}
}

// EnsureRow materializes the row for state, zero-filled over the move set,
// and returns it.
func (q *QTable) EnsureRow(state string) map[string]float64 {
	row, ok := q.values[state]
	if !ok {
		row = make(map[string]float64, len(moveNames))
		for _, name := range moveNames {
			row[name] = 0
		}
		q.values[state] = row
	}
	return row
}

func (q *QTable) Get(state, action string) float64 {
	return q.EnsureRow(state)[action]
}

func (q *QTable) Set(state, action string, value float64) {
	q.EnsureRow(state)[action] = value
}

// Max returns the highest value in the state's row.
func (q *QTable) Max(state string) float64 {
	row := q.EnsureRow(state)
	best := row[moveNames[0]]
	for _, name := range moveNames[1:] {
		if row[name] > best {
			best = row[name]
		}
	}
	return best
}

// MaxAmong returns the best action restricted to the given candidates,
// breaking ties by candidate order. It falls back to the full move set when
// candidates is empty.
func (q *QTable) MaxAmong(state string, candidates []string) (string, float64) {
	if len(candidates) == 0 {
		candidates = moveNames
	}
	row := q.EnsureRow(state)
	bestAction := candidates[0]
	bestValue := row[bestAction]
	for _, name := range candidates[1:] {
		if row[name] > bestValue {
			bestAction = name
			bestValue = row[name]
		}
	}
	return bestAction, bestValue
}

// States returns the number of materialized rows.
func (q *QTable) States() int {
	return len(q.values)
}

// Snapshot deep-copies the table into a plain map, suitable for persistence.
func (q *QTable) Snapshot() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(q.values))
	for state, row := range q.values {
		cp := make(map[string]float64, len(row))
		for action, value := range row {
			cp[action] = value
		}
		out[state] = cp
	}
	return out
}

// Restore replaces the table contents with a deep copy of values.
func (q *QTable) Restore(values map[string]map[string]float64) {
	q.values = make(map[string]map[string]float64, len(values))
	for state, row := range values {
		cp := make(map[string]float64, len(row))
		for action, value := range row {
			cp[action] = value
		}
		q.values[state] = cp
	}
}
