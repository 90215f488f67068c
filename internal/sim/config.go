package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// Environment type names accepted in simulation configs.
const (
	EnvBeacon = "beacon"
	EnvForage = "forage"
	EnvMaze   = "maze"
)

// Agent type names accepted in simulation configs.
const (
	AgentQLearning = "qlearning"
	AgentReactive  = "reactive"
	AgentGenotype  = "genotype"
)

// SimulationConfig is the JSON shape of a scenario file: one environment, a
// roster of agents and the episode schedule.
type SimulationConfig struct {
	Environment EnvironmentConfig `json:"environment"`
	Agents      []AgentConfig     `json:"agents"`
	Episodes    int               `json:"episodes"`
	StepCeiling int               `json:"step_ceiling"`
	Seed        int64             `json:"seed"`
}

type EnvironmentConfig struct {
	Type      string          `json:"type"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Beacon    *PositionConfig `json:"beacon,omitempty"`
	Resources int             `json:"resources,omitempty"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type AgentConfig struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Start       *PositionConfig    `json:"start"`
	Mode        string             `json:"mode,omitempty"`
	TablePath   string             `json:"table_path,omitempty"`
	Exploration string             `json:"exploration,omitempty"`
	Params      map[string]float64 `json:"params,omitempty"`
}

// LoadSimulationConfig reads and validates a scenario file.
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg SimulationConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *SimulationConfig) Validate() error {
	switch c.Environment.Type {
	case EnvBeacon, EnvForage, EnvMaze:
	default:
		return fmt.Errorf("unknown environment type: %q", c.Environment.Type)
	}
	if c.Environment.Width <= 0 || c.Environment.Height <= 0 {
		return fmt.Errorf("invalid grid size: %dx%d", c.Environment.Width, c.Environment.Height)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("at least one agent is required")
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.StepCeiling <= 0 {
		return fmt.Errorf("step_ceiling must be positive, got %d", c.StepCeiling)
	}

	seen := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if a.ID == "" {
			return fmt.Errorf("agent id must not be empty")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id: %s", a.ID)
		}
		seen[a.ID] = true

		switch a.Type {
		case AgentQLearning, AgentReactive, AgentGenotype:
		default:
			return fmt.Errorf("agent %s: unknown agent type: %q", a.ID, a.Type)
		}
		if a.Start == nil {
			return fmt.Errorf("agent %s: start position is required", a.ID)
		}
	}
	return nil
}

// param reads a named hyperparameter with a fallback default.
func (a AgentConfig) param(name string, def float64) float64 {
	if v, ok := a.Params[name]; ok {
		return v
	}
	return def
}
