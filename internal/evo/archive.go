package evo

// Archive is the append-only store of behaviors seen so far. Novelty is
// always measured against the archive as it stood when the measurement was
// taken; entries are never removed or rewritten.
type Archive struct {
	entries []Behavior
}

func NewArchive() *Archive {
	return &Archive{}
}

// Add stores an independent copy of the behavior.
func (a *Archive) Add(behavior Behavior) {
	cp := make(Behavior, len(behavior))
	for pos := range behavior {
		cp[pos] = struct{}{}
	}
	a.entries = append(a.entries, cp)
}

func (a *Archive) Len() int {
	return len(a.entries)
}

// Entries exposes the stored behaviors. Callers must not mutate them.
func (a *Archive) Entries() []Behavior {
	return a.entries
}
