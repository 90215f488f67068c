// Package stats summarizes run histories for reporting.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/SenasCodes/AA-Projeto/internal/model"
)

// AgentSummary aggregates one agent's rewards across a run.
type AgentSummary struct {
	AgentID    string
	MeanReward float64
	StdReward  float64
	MinReward  float64
	MaxReward  float64
}

// RunSummary aggregates a run's episode records.
type RunSummary struct {
	Episodes        int
	MeanSteps       float64
	TerminationRate float64
	Agents          []AgentSummary
}

// SummarizeRun reduces a run's episode history to per-agent reward moments
// and overall pacing. Agents are ordered by ID for stable output.
func SummarizeRun(episodes []model.EpisodeRecord) RunSummary {
	summary := RunSummary{Episodes: len(episodes)}
	if len(episodes) == 0 {
		return summary
	}

	steps := make([]float64, len(episodes))
	terminated := 0
	rewards := make(map[string][]float64)
	for i, ep := range episodes {
		steps[i] = float64(ep.Steps)
		if ep.Terminated {
			terminated++
		}
		for agentID, reward := range ep.Rewards {
			rewards[agentID] = append(rewards[agentID], reward)
		}
	}

	summary.MeanSteps = stat.Mean(steps, nil)
	summary.TerminationRate = float64(terminated) / float64(len(episodes))

	ids := make([]string, 0, len(rewards))
	for agentID := range rewards {
		ids = append(ids, agentID)
	}
	sort.Strings(ids)

	for _, agentID := range ids {
		series := rewards[agentID]
		agent := AgentSummary{
			AgentID:    agentID,
			MeanReward: stat.Mean(series, nil),
			MinReward:  series[0],
			MaxReward:  series[0],
		}
		if len(series) > 1 {
			agent.StdReward = stat.StdDev(series, nil)
		}
		for _, r := range series {
			if r < agent.MinReward {
				agent.MinReward = r
			}
			if r > agent.MaxReward {
				agent.MaxReward = r
			}
		}
		summary.Agents = append(summary.Agents, agent)
	}
	return summary
}

// EvolutionSummary aggregates an evolution run's generation metrics.
type EvolutionSummary struct {
	Generations   int
	FirstMax      float64
	FinalMax      float64
	PeakMax       float64
	MeanDiversity float64
	FinalArchive  int
}

// SummarizeEvolution reduces generation metrics to the fitness trajectory a
// reader cares about: where the search started, where it ended and its peak.
func SummarizeEvolution(generations []model.GenerationMetrics) EvolutionSummary {
	summary := EvolutionSummary{Generations: len(generations)}
	if len(generations) == 0 {
		return summary
	}

	diversity := make([]float64, len(generations))
	summary.FirstMax = generations[0].MaxCombined
	summary.PeakMax = generations[0].MaxCombined
	for i, gen := range generations {
		diversity[i] = gen.Diversity
		if gen.MaxCombined > summary.PeakMax {
			summary.PeakMax = gen.MaxCombined
		}
	}
	last := generations[len(generations)-1]
	summary.FinalMax = last.MaxCombined
	summary.FinalArchive = last.ArchiveSize
	summary.MeanDiversity = stat.Mean(diversity, nil)
	return summary
}
