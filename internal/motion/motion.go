// Package motion advances bubble positions to produce a slow floating drift.
//
// Each tick recomputes a bubble's displacement from elapsed time and its
// index in the collection: three layered sine waves (float, drift and a
// faint micro wobble) per axis, phase-shifted by index so no two bubbles
// move in lockstep. Positions leaving [5, 95] are nudged back inside by
// half the float term.
package motion

import (
	"math"
	"time"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
)

// DefaultTick is the interval between position updates.
const DefaultTick = 150 * time.Millisecond

const phaseStep = 0.7

// Offset holds the per-axis displacement terms for one bubble at one instant.
type Offset struct {
	FloatX, FloatY float64
	DriftX, DriftY float64
	MicroX, MicroY float64
}

func (o Offset) DX() float64 { return o.FloatX + o.DriftX + o.MicroX }
func (o Offset) DY() float64 { return o.FloatY + o.DriftY + o.MicroY }

// Offsets computes the displacement of the bubble at index i at time t (seconds).
func Offsets(t float64, i int) Offset {
	phase := float64(i) * phaseStep
	return Offset{
		FloatX: math.Sin(t*0.08+phase) * 0.3,
		FloatY: math.Cos(t*0.06+phase*1.2) * 0.25,
		DriftX: math.Sin(t*0.03+phase*2) * 0.15,
		DriftY: math.Cos(t*0.04+phase*1.5) * 0.12,
		MicroX: math.Sin(t*0.15+phase*3) * 0.08,
		MicroY: math.Cos(t*0.12+phase*2.5) * 0.06,
	}
}

// Seconds converts wall time into the t argument of Step.
func Seconds(now time.Time) float64 {
	return float64(now.UnixNano()) / 1e9
}

// Step returns a new collection with every bubble moved one tick. prev is
// not modified.
func Step(prev []bubble.Bubble, t float64) []bubble.Bubble {
	next := make([]bubble.Bubble, len(prev))
	for i, b := range prev {
		o := Offsets(t, i)
		b.X = bounce(b.X+o.DX(), o.FloatX)
		b.Y = bounce(b.Y+o.DY(), o.FloatY)
		next[i] = b
	}
	return next
}

// bounce nudges v back inside the bounds by half of the float term.
func bounce(v, float float64) float64 {
	if v < bubble.MinCoord {
		v = bubble.MinCoord + math.Abs(float)*0.5
	}
	if v > bubble.MaxCoord {
		v = bubble.MaxCoord - math.Abs(float)*0.5
	}
	return v
}
