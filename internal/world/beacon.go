package world

import (
	"fmt"
	"math/rand"
)

type beaconAgent struct {
	pos     Position
	start   Position
	arrived bool
}

// Beacon is a bounded grid with scattered obstacles and a single target
// cell. Agents are rewarded for closing the distance to the beacon and for
// reaching it; the episode terminates once every agent has arrived.
type Beacon struct {
	width  int
	height int
	beacon Position

	obstacles map[Position]bool
	agents    map[string]*beaconAgent
	step      int
	arrived   int
}

// NewBeacon builds a beacon world. Obstacle placement is drawn from rng so a
// layout is reproducible from its seed; roughly one cell in ten is blocked.
// The layout is fixed for the lifetime of the environment: Reset restores
// agents, not terrain.
func NewBeacon(width, height int, beacon Position, rng *rand.Rand) (*Beacon, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid beacon grid size: %dx%d", width, height)
	}
	if beacon.X < 0 || beacon.X >= width || beacon.Y < 0 || beacon.Y >= height {
		return nil, fmt.Errorf("beacon position %s outside %dx%d grid", beacon, width, height)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	b := &Beacon{
		width:     width,
		height:    height,
		beacon:    beacon,
		obstacles: make(map[Position]bool),
		agents:    make(map[string]*beaconAgent),
	}
	for i := 0; i < (width*height)/10; i++ {
		pos := Position{X: rng.Intn(width), Y: rng.Intn(height)}
		if pos != beacon {
			b.obstacles[pos] = true
		}
	}
	return b, nil
}

func (b *Beacon) Name() string { return "beacon" }

func (b *Beacon) inBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

func (b *Beacon) passable(p Position) bool {
	return b.inBounds(p) && !b.obstacles[p]
}

func (b *Beacon) RegisterAgent(agentID string, start Position) error {
	if !b.inBounds(start) {
		return fmt.Errorf("start position %s outside %dx%d grid", start, b.width, b.height)
	}
	if _, ok := b.agents[agentID]; ok {
		return fmt.Errorf("agent already registered: %s", agentID)
	}
	delete(b.obstacles, start)
	b.agents[agentID] = &beaconAgent{pos: start, start: start}
	return nil
}

func (b *Beacon) Observe(agentID string) Observation {
	state, ok := b.agents[agentID]
	if !ok {
		return Observation{AgentID: agentID, Step: b.step}
	}

	pos := state.pos
	return Observation{
		AgentID:  agentID,
		Step:     b.step,
		Position: &Position{X: pos.X, Y: pos.Y},
		Goal: &GoalSense{
			Direction: Vec{DX: b.beacon.X - pos.X, DY: b.beacon.Y - pos.Y},
			Distance:  pos.Distance(b.beacon),
			Reached:   pos == b.beacon,
		},
		Obstacles: b.senseObstacles(pos),
	}
}

func (b *Beacon) senseObstacles(pos Position) *ObstacleSense {
	return &ObstacleSense{
		North: !b.passable(pos.Move(North)),
		South: !b.passable(pos.Move(South)),
		East:  !b.passable(pos.Move(East)),
		West:  !b.passable(pos.Move(West)),
	}
}

func (b *Beacon) Step(action Action) float64 {
	state, ok := b.agents[action.AgentID]
	if !ok {
		return 0.0
	}
	if action.Kind != ActMove {
		return 0.0
	}

	next := state.pos.Move(action.Direction)
	if !b.passable(next) {
		return -0.2
	}

	oldDist := state.pos.Distance(b.beacon)
	newDist := next.Distance(b.beacon)
	state.pos = next

	if next == b.beacon && !state.arrived {
		state.arrived = true
		b.arrived++
		return 10.0
	}
	switch {
	case newDist < oldDist:
		return 1.0
	case newDist > oldDist:
		return -0.5
	default:
		return 0.1
	}
}

func (b *Beacon) Tick() {
	b.step++
}

func (b *Beacon) Terminated() bool {
	return len(b.agents) > 0 && b.arrived == len(b.agents)
}

func (b *Beacon) Reset() {
	b.step = 0
	b.arrived = 0
	for _, state := range b.agents {
		state.pos = state.start
		state.arrived = false
	}
}
