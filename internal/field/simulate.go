package field

import (
	"context"
	"fmt"
	"time"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
)

// Sample is the population observed at an offset from the start of a run.
type Sample struct {
	At    time.Duration `json:"at"`
	Count int           `json:"count"`
}

// Result summarises a virtual-clock run.
type Result struct {
	Start    time.Time       `json:"start"`
	Duration time.Duration   `json:"duration"`
	Ticks    int             `json:"ticks"`
	Grown    int             `json:"grown"`
	Dropped  int             `json:"dropped"`
	Samples  []Sample        `json:"samples"`
	Final    []bubble.Bubble `json:"final"`
}

// Counts returns the sampled population sizes in order.
func (r *Result) Counts() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = float64(s.Count)
	}
	return out
}

// Simulate advances an already mounted field on a virtual clock starting at
// start, firing growth, trim and highlight expiry at their configured
// intervals. A sample is taken at the start and after every trim.
func Simulate(ctx context.Context, f *Field, start time.Time, duration time.Duration) (*Result, error) {
	opts := f.Options()
	if opts.Tick <= 0 || opts.Grow <= 0 || opts.Trim <= 0 {
		return nil, fmt.Errorf("intervals must be positive (tick=%v grow=%v trim=%v)", opts.Tick, opts.Grow, opts.Trim)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v", duration)
	}

	res := &Result{
		Start:    start,
		Duration: duration,
		Samples:  []Sample{{At: 0, Count: f.Len()}},
	}

	var elapsed time.Duration
	nextStep, nextGrow, nextTrim := opts.Tick, opts.Grow, opts.Trim

	for {
		next := minDuration(nextStep, nextGrow, nextTrim)
		if next > duration {
			break
		}
		if res.Ticks%1024 == 0 {
			select {
			case <-ctx.Done():
				res.Final = f.Snapshot()
				return res, ctx.Err()
			default:
			}
		}

		elapsed = next
		now := start.Add(elapsed)
		f.ExpireHighlight(now)

		if elapsed == nextStep {
			f.Step(now)
			res.Ticks++
			nextStep += opts.Tick
		}
		if elapsed == nextGrow {
			f.Grow(now)
			res.Grown++
			nextGrow += opts.Grow
		}
		if elapsed == nextTrim {
			res.Dropped += f.Trim()
			res.Samples = append(res.Samples, Sample{At: elapsed, Count: f.Len()})
			nextTrim += opts.Trim
		}
	}

	res.Final = f.Snapshot()
	return res, nil
}

func minDuration(ds ...time.Duration) time.Duration {
	m := ds[0]
	for _, d := range ds[1:] {
		if d < m {
			m = d
		}
	}
	return m
}
