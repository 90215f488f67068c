package agent

import (
	"math/rand"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// Reactive is a fixed rule-based policy: head for the goal, collect and
// deposit when possible, dodge adjacent obstacles, otherwise wander.
// It keeps no learning state, only per-episode reward bookkeeping.
type Reactive struct {
	rng *rand.Rand

	lastObs world.Observation
	reward  float64
}

func NewReactive(rng *rand.Rand) *Reactive {
	return &Reactive{rng: rng}
}

func (r *Reactive) Decide(obs world.Observation) world.Action {
	// Foraging rules take precedence over navigation.
	if obs.CanDeposit {
		return world.Action{Kind: world.ActDeposit}
	}
	if obs.CanCollect && obs.Carrying == 0 {
		return world.Action{Kind: world.ActCollect}
	}

	if obs.Goal != nil && !obs.Goal.Reached {
		if dir, ok := r.towardGoal(obs); ok {
			return world.MoveAction(dir)
		}
	}

	valid := unblockedDirections(obs.Obstacles)
	if len(valid) == 0 {
		return world.StayAction()
	}
	return world.MoveAction(valid[r.rng.Intn(len(valid))])
}

// towardGoal picks the dominant axis of the goal vector, falling back to any
// unblocked direction when the preferred ones are blocked.
func (r *Reactive) towardGoal(obs world.Observation) (world.Direction, bool) {
	dx, dy := obs.Goal.Direction.DX, obs.Goal.Direction.DY
	for _, dir := range PreferredDirections(dx, dy) {
		if obs.Obstacles == nil || !obs.Obstacles.Blocked(dir) {
			return dir, true
		}
	}
	for _, dir := range world.Moves {
		if obs.Obstacles == nil || !obs.Obstacles.Blocked(dir) {
			return dir, true
		}
	}
	return world.Stay, false
}

func (r *Reactive) Observe(obs world.Observation, reward float64) {
	r.lastObs = obs
	r.reward += reward
}

func (r *Reactive) EndEpisode() {}

func (r *Reactive) Reset() {
	r.lastObs = world.Observation{}
	r.reward = 0
}

// PreferredDirections orders the moves that close the given goal vector,
// dominant axis first. An empty vector yields no preference.
func PreferredDirections(dx, dy int) []world.Direction {
	if dx == 0 && dy == 0 {
		return nil
	}

	var primary, secondary world.Direction
	hasSecondary := true
	if abs(dx) > abs(dy) {
		primary = pick(dx > 0, world.East, world.West)
		secondary = pick(dy > 0, world.South, world.North)
		hasSecondary = dy != 0
	} else {
		primary = pick(dy > 0, world.South, world.North)
		secondary = pick(dx > 0, world.East, world.West)
		hasSecondary = dx != 0
	}

	if !hasSecondary {
		return []world.Direction{primary}
	}
	return []world.Direction{primary, secondary}
}

func unblockedDirections(sense *world.ObstacleSense) []world.Direction {
	out := make([]world.Direction, 0, len(world.Moves))
	for _, dir := range world.Moves {
		if sense == nil || !sense.Blocked(dir) {
			out = append(out, dir)
		}
	}
	return out
}

func pick(cond bool, a, b world.Direction) world.Direction {
	if cond {
		return a
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
