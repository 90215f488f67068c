package world

import "fmt"

// Direction is one of the four cardinal moves plus the neutral "stay".
type Direction int

const (
	Stay Direction = iota
	North
	South
	East
	West
)

// Moves lists the non-neutral directions in the fixed order used everywhere
// an action set or an obstacle bit-string is built.
var Moves = []Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return "stay"
	}
}

// Delta returns the grid displacement of the direction. North decreases y.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Position is a cell in a 2D grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Move(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Distance is the Manhattan distance between two cells.
func (p Position) Distance(other Position) float64 {
	return float64(abs(p.X-other.X) + abs(p.Y-other.Y))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ActionKind tags the command carried by an Action.
type ActionKind string

const (
	ActMove    ActionKind = "move"
	ActCollect ActionKind = "collect"
	ActDeposit ActionKind = "deposit"
)

// Action is a single agent command, consumed exactly once by an environment.
type Action struct {
	Kind      ActionKind
	Direction Direction
	AgentID   string
}

// MoveAction builds a movement command.
func MoveAction(d Direction) Action {
	return Action{Kind: ActMove, Direction: d}
}

// StayAction is the neutral action: a move that goes nowhere.
func StayAction() Action {
	return Action{Kind: ActMove, Direction: Stay}
}

// Vec is an integer displacement toward a target.
type Vec struct {
	DX int
	DY int
}

// GoalSense is present on observations from environments with a single
// spatial target (beacon, maze exit).
type GoalSense struct {
	Direction Vec
	Distance  float64
	Reached   bool
}

// ObstacleSense reports whether the four adjacent cells are blocked.
type ObstacleSense struct {
	North bool
	South bool
	East  bool
	West  bool
}

// Blocked reports whether moving in d runs into an obstacle. The neutral
// direction is never blocked.
func (o ObstacleSense) Blocked(d Direction) bool {
	switch d {
	case North:
		return o.North
	case South:
		return o.South
	case East:
		return o.East
	case West:
		return o.West
	default:
		return false
	}
}

// Observation is one agent's perception of the environment at one step.
// Optional senses are nil when the environment does not produce them, so
// policies can pattern-match on what is present.
type Observation struct {
	AgentID   string
	Step      int
	Position  *Position
	Goal      *GoalSense
	Obstacles *ObstacleSense

	// Foraging senses.
	Carrying   int
	CanCollect bool
	CanDeposit bool
}

// Environment is the collaborator contract consumed by policies and runners.
// Implementations own all world state; it is only mutated through Step, Tick
// and Reset.
type Environment interface {
	Name() string
	// Observe is idempotent and side-effect-free given unchanged state.
	Observe(agentID string) Observation
	// Step applies one action and returns its scalar reward. It is defined
	// (possibly 0.0) for every syntactically valid action, including actions
	// from agents the environment does not know.
	Step(action Action) float64
	// Tick advances environment-internal time once per simulation step,
	// after all agents have acted.
	Tick()
	// Reset restores the initial configuration for a new episode.
	Reset()
	Terminated() bool
	// RegisterAgent binds an agent identity to a start position before the
	// first Observe.
	RegisterAgent(agentID string, start Position) error
}
