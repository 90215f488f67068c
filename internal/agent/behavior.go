package agent

import "github.com/SenasCodes/AA-Projeto/internal/world"

// BehaviorRecord accumulates where an agent went during one episode: the
// unordered set of visited cells (compared for novelty) and the ordered path
// (kept for diagnostics).
type BehaviorRecord struct {
	visited map[world.Position]struct{}
	path    []world.Position
}

func NewBehaviorRecord() *BehaviorRecord {
	return &BehaviorRecord{visited: make(map[world.Position]struct{})}
}

func (b *BehaviorRecord) Visit(pos world.Position) {
	b.visited[pos] = struct{}{}
	b.path = append(b.path, pos)
}

// Distinct returns the number of unique cells visited.
func (b *BehaviorRecord) Distinct() int {
	return len(b.visited)
}

// PathLen returns the total path length including revisits.
func (b *BehaviorRecord) PathLen() int {
	return len(b.path)
}

// Visited exposes the visited-cell set. Callers must treat it as read-only;
// use Snapshot for a copy that outlives the record.
func (b *BehaviorRecord) Visited() map[world.Position]struct{} {
	return b.visited
}

// Snapshot returns an independent copy of the visited-cell set.
func (b *BehaviorRecord) Snapshot() map[world.Position]struct{} {
	out := make(map[world.Position]struct{}, len(b.visited))
	for pos := range b.visited {
		out[pos] = struct{}{}
	}
	return out
}

func (b *BehaviorRecord) Reset() {
	b.visited = make(map[world.Position]struct{})
	b.path = nil
}
