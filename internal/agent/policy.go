// Package agent defines the decision-making contract shared by every agent
// variant and the per-episode behavior bookkeeping used for novelty search.
package agent

import "github.com/SenasCodes/AA-Projeto/internal/world"

// Policy is the capability set every agent variant implements. The episodic
// runner drives policies synchronously; a policy never talks to the
// environment directly.
type Policy interface {
	// Decide chooses the next action given the most recent observation.
	Decide(obs world.Observation) world.Action
	// Observe delivers a fresh observation together with the reward earned
	// by the preceding action (0.0 for the initial observation of an
	// episode).
	Observe(obs world.Observation, reward float64)
	// EndEpisode runs per-episode adaptation bookkeeping (epsilon decay,
	// fitness tracking) after an episode finishes.
	EndEpisode()
	// Reset clears per-episode state. Persistent learning state (Q-tables,
	// best-genotype history) survives.
	Reset()
}
