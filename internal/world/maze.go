package world

import (
	"fmt"
	"math/rand"
)

type mazeAgent struct {
	pos     Position
	start   Position
	arrived bool
}

// Maze is a walled grid with a single exit cell. The wall layout is drawn
// once from the seeded source and kept for the lifetime of the environment.
type Maze struct {
	width  int
	height int
	exit   Position

	walls   map[Position]bool
	agents  map[string]*mazeAgent
	step    int
	arrived int
}

// NewMaze builds a maze world with a sparse random wall layout. The exit
// defaults to the far corner.
func NewMaze(width, height int, rng *rand.Rand) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid maze grid size: %dx%d", width, height)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	m := &Maze{
		width:  width,
		height: height,
		exit:   Position{X: width - 1, Y: height - 1},
		walls:  make(map[Position]bool),
		agents: make(map[string]*mazeAgent),
	}
	// Short wall segments, leaving the exit and its approach cells open.
	for i := 0; i < (width*height)/8; i++ {
		pos := Position{X: rng.Intn(width), Y: rng.Intn(height)}
		if pos != m.exit && pos.Distance(m.exit) > 1 {
			m.walls[pos] = true
		}
	}
	return m, nil
}

func (m *Maze) Name() string { return "maze" }

func (m *Maze) inBounds(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

func (m *Maze) passable(p Position) bool {
	return m.inBounds(p) && !m.walls[p]
}

func (m *Maze) RegisterAgent(agentID string, start Position) error {
	if !m.inBounds(start) {
		return fmt.Errorf("start position %s outside %dx%d grid", start, m.width, m.height)
	}
	if _, ok := m.agents[agentID]; ok {
		return fmt.Errorf("agent already registered: %s", agentID)
	}
	delete(m.walls, start)
	m.agents[agentID] = &mazeAgent{pos: start, start: start}
	return nil
}

func (m *Maze) Observe(agentID string) Observation {
	state, ok := m.agents[agentID]
	if !ok {
		return Observation{AgentID: agentID, Step: m.step}
	}

	pos := state.pos
	return Observation{
		AgentID:  agentID,
		Step:     m.step,
		Position: &Position{X: pos.X, Y: pos.Y},
		Goal: &GoalSense{
			Direction: Vec{DX: m.exit.X - pos.X, DY: m.exit.Y - pos.Y},
			Distance:  pos.Distance(m.exit),
			Reached:   pos == m.exit,
		},
		Obstacles: &ObstacleSense{
			North: !m.passable(pos.Move(North)),
			South: !m.passable(pos.Move(South)),
			East:  !m.passable(pos.Move(East)),
			West:  !m.passable(pos.Move(West)),
		},
	}
}

func (m *Maze) Step(action Action) float64 {
	state, ok := m.agents[action.AgentID]
	if !ok {
		return 0.0
	}
	if action.Kind != ActMove {
		return 0.0
	}

	next := state.pos.Move(action.Direction)
	if !m.passable(next) {
		return -0.5
	}

	oldDist := state.pos.Distance(m.exit)
	newDist := next.Distance(m.exit)
	state.pos = next

	if next == m.exit && !state.arrived {
		state.arrived = true
		m.arrived++
		return 100.0
	}
	switch {
	case newDist < oldDist:
		return 2.0
	case newDist > oldDist:
		return -1.0
	default:
		return -0.1
	}
}

func (m *Maze) Tick() {
	m.step++
}

func (m *Maze) Terminated() bool {
	return len(m.agents) > 0 && m.arrived == len(m.agents)
}

func (m *Maze) Reset() {
	m.step = 0
	m.arrived = 0
	for _, state := range m.agents {
		state.pos = state.start
		state.arrived = false
	}
}
