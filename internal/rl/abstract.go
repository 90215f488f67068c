// Package rl implements tabular Q-learning over a discretized abstraction of
// grid-world observations.
package rl

import (
	"fmt"
	"math"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// UnknownState is the sentinel key for observations carrying neither a goal
// sense nor a position.
const UnknownState = "unknown"

// Abstract maps an observation onto a discrete state key. It is a pure,
// total function: equal sensory content always yields the same key and no
// well-formed observation can fail.
//
// Observations with a goal sense produce "<octant>_<band>_<bits>": one of 9
// direction octants (8 compass sectors plus "C" for arrived), a 3-way
// distance band, and the four neighbor-obstacle flags as bits in N,S,E,W
// order. Without a goal sense the key falls back to a coarse position grid.
func Abstract(obs world.Observation) string {
	if obs.Goal != nil {
		return goalKey(obs)
	}
	if obs.Position != nil {
		return positionKey(*obs.Position)
	}
	return UnknownState
}

func goalKey(obs world.Observation) string {
	dx := obs.Goal.Direction.DX
	dy := obs.Goal.Direction.DY

	octant := "C"
	if dx != 0 || dy != 0 {
		octant = directionOctant(dx, dy)
	}

	band := "f"
	switch dist := obs.Goal.Distance; {
	case dist < 3:
		band = "n"
	case dist < 10:
		band = "m"
	}

	return fmt.Sprintf("%s_%s_%s", octant, band, obstacleBits(obs.Obstacles))
}

// directionOctant buckets the goal vector's angle into 8 compass sectors.
// The grid's y axis grows southward, so +90 degrees points south.
func directionOctant(dx, dy int) string {
	angle := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
	switch {
	case angle >= -22.5 && angle < 22.5:
		return "E"
	case angle >= 22.5 && angle < 67.5:
		return "SE"
	case angle >= 67.5 && angle < 112.5:
		return "S"
	case angle >= 112.5 && angle < 157.5:
		return "SW"
	case angle >= 157.5 || angle < -157.5:
		return "W"
	case angle >= -157.5 && angle < -112.5:
		return "NW"
	case angle >= -112.5 && angle < -67.5:
		return "N"
	default:
		return "NE"
	}
}

func obstacleBits(sense *world.ObstacleSense) string {
	if sense == nil {
		return "0000"
	}
	bits := [4]byte{'0', '0', '0', '0'}
	for i, blocked := range []bool{sense.North, sense.South, sense.East, sense.West} {
		if blocked {
			bits[i] = '1'
		}
	}
	return string(bits[:])
}

func positionKey(pos world.Position) string {
	return fmt.Sprintf("pos_%d_%d", gridBand(pos.X), gridBand(pos.Y))
}

// gridBand groups coordinates into cells of 10, clipped to band 9.
func gridBand(v int) int {
	band := v / 10
	if band < 0 {
		band = 0
	}
	if band > 9 {
		band = 9
	}
	return band
}
