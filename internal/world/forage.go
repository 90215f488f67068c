package world

import (
	"fmt"
	"math"
	"math/rand"
)

type forageAgent struct {
	pos      Position
	start    Position
	carrying int
}

// Forage is a resource-gathering world: agents pick up resources scattered
// on the grid and deposit them at a nest. Resources regrow slowly over time.
type Forage struct {
	width  int
	height int
	nest   Position

	obstacles map[Position]bool
	resources map[Position]bool
	agents    map[string]*forageAgent
	rng       *rand.Rand

	initialResources []Position
	resourceTarget   int
	deposited        int
	step             int
}

// NewForage builds a foraging world with the nest at the grid center and
// resourceCount resources scattered away from it.
func NewForage(width, height, resourceCount int, rng *rand.Rand) (*Forage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid forage grid size: %dx%d", width, height)
	}
	if resourceCount <= 0 {
		return nil, fmt.Errorf("resource count must be > 0")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	f := &Forage{
		width:          width,
		height:         height,
		nest:           Position{X: width / 2, Y: height / 2},
		obstacles:      make(map[Position]bool),
		resources:      make(map[Position]bool),
		agents:         make(map[string]*forageAgent),
		rng:            rng,
		resourceTarget: resourceCount,
	}
	for i := 0; i < (width*height)/15; i++ {
		pos := Position{X: rng.Intn(width), Y: rng.Intn(height)}
		if pos != f.nest {
			f.obstacles[pos] = true
		}
	}
	for len(f.resources) < resourceCount {
		pos := Position{X: rng.Intn(width), Y: rng.Intn(height)}
		if pos != f.nest && !f.obstacles[pos] {
			f.resources[pos] = true
		}
	}
	for pos := range f.resources {
		f.initialResources = append(f.initialResources, pos)
	}
	return f, nil
}

func (f *Forage) Name() string { return "forage" }

func (f *Forage) inBounds(p Position) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

func (f *Forage) passable(p Position) bool {
	return f.inBounds(p) && !f.obstacles[p]
}

func (f *Forage) RegisterAgent(agentID string, start Position) error {
	if !f.inBounds(start) {
		return fmt.Errorf("start position %s outside %dx%d grid", start, f.width, f.height)
	}
	if _, ok := f.agents[agentID]; ok {
		return fmt.Errorf("agent already registered: %s", agentID)
	}
	delete(f.obstacles, start)
	f.agents[agentID] = &forageAgent{pos: start, start: start}
	return nil
}

func (f *Forage) Observe(agentID string) Observation {
	state, ok := f.agents[agentID]
	if !ok {
		return Observation{AgentID: agentID, Step: f.step}
	}

	pos := state.pos
	return Observation{
		AgentID:  agentID,
		Step:     f.step,
		Position: &Position{X: pos.X, Y: pos.Y},
		Goal: &GoalSense{
			Direction: Vec{DX: f.nest.X - pos.X, DY: f.nest.Y - pos.Y},
			Distance:  pos.Distance(f.nest),
			Reached:   pos == f.nest,
		},
		Obstacles: &ObstacleSense{
			North: !f.passable(pos.Move(North)),
			South: !f.passable(pos.Move(South)),
			East:  !f.passable(pos.Move(East)),
			West:  !f.passable(pos.Move(West)),
		},
		Carrying:   state.carrying,
		CanCollect: f.resources[pos],
		CanDeposit: pos == f.nest && state.carrying > 0,
	}
}

func (f *Forage) Step(action Action) float64 {
	state, ok := f.agents[action.AgentID]
	if !ok {
		return 0.0
	}

	switch action.Kind {
	case ActMove:
		return f.stepMove(state, action.Direction)
	case ActCollect:
		if !f.resources[state.pos] {
			return -0.2
		}
		if state.carrying > 0 {
			return -0.5
		}
		delete(f.resources, state.pos)
		state.carrying++
		return 2.0
	case ActDeposit:
		if state.pos != f.nest {
			return -0.2
		}
		if state.carrying == 0 {
			return -0.3
		}
		value := float64(state.carrying)
		f.deposited += state.carrying
		state.carrying = 0
		return 5.0 + value
	default:
		return 0.0
	}
}

// stepMove shapes the movement reward around the agent's current errand:
// toward the nest when loaded, toward the closest resource otherwise.
func (f *Forage) stepMove(state *forageAgent, dir Direction) float64 {
	next := state.pos.Move(dir)
	if !f.passable(next) {
		return -0.1
	}

	var target Position
	hasTarget := false
	if state.carrying > 0 {
		target = f.nest
		hasTarget = true
	} else if closest, ok := f.closestResource(state.pos); ok {
		target = closest
		hasTarget = true
	}

	oldPos := state.pos
	state.pos = next
	if !hasTarget {
		return 0.01
	}

	oldDist := oldPos.Distance(target)
	newDist := next.Distance(target)
	switch {
	case newDist < oldDist:
		return 0.5
	case newDist > oldDist && state.carrying > 0:
		return -0.2
	case newDist > oldDist:
		return -0.1
	default:
		return 0.01
	}
}

func (f *Forage) closestResource(from Position) (Position, bool) {
	best := Position{}
	bestDist := math.Inf(1)
	found := false
	for pos := range f.resources {
		d := from.Distance(pos)
		// Tie-break on coordinates so shaping is repeatable across runs.
		if d < bestDist || (d == bestDist && (pos.Y < best.Y || (pos.Y == best.Y && pos.X < best.X))) {
			best = pos
			bestDist = d
			found = true
		}
	}
	return best, found
}

// Tick regrows one resource every 20 steps, up to the configured target.
func (f *Forage) Tick() {
	f.step++
	if f.step%20 != 0 || len(f.resources) >= f.resourceTarget {
		return
	}
	for attempt := 0; attempt < 10; attempt++ {
		pos := Position{X: f.rng.Intn(f.width), Y: f.rng.Intn(f.height)}
		if pos != f.nest && !f.obstacles[pos] && !f.resources[pos] {
			f.resources[pos] = true
			return
		}
	}
}

// Terminated is always false: a foraging episode runs to its step ceiling.
func (f *Forage) Terminated() bool {
	return false
}

// Deposited reports the total resources delivered to the nest this episode.
func (f *Forage) Deposited() int {
	return f.deposited
}

func (f *Forage) Reset() {
	f.step = 0
	f.deposited = 0
	f.resources = make(map[Position]bool)
	for _, pos := range f.initialResources {
		f.resources[pos] = true
	}
	for _, state := range f.agents {
		state.pos = state.start
		state.carrying = 0
	}
}
