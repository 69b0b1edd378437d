package field

import (
	"context"
	"time"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
)

// Hooks are invoked on the scheduler goroutine after each event has been
// applied to the field. Nil hooks are skipped.
type Hooks struct {
	OnStep  func(now time.Time)
	OnGrow  func(b bubble.Bubble)
	OnTrim  func(dropped, remaining int)
	OnClear func(key string)
}

// Scheduler drives a field from wall-clock timers: motion ticks, periodic
// growth, periodic trimming and highlight expiry. All callbacks run on the
// goroutine that called Run.
type Scheduler struct {
	field *Field
	hooks Hooks
	now   func() time.Time
}

func NewScheduler(f *Field, hooks Hooks) *Scheduler {
	return &Scheduler{field: f, hooks: hooks, now: time.Now}
}

// Run blocks until ctx is canceled. Every timer is stopped before it
// returns, and no event is applied once ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	opts := s.field.Options()

	step := time.NewTicker(opts.Tick)
	defer step.Stop()
	grow := time.NewTicker(opts.Grow)
	defer grow.Stop()
	trim := time.NewTicker(opts.Trim)
	defer trim.Stop()

	highlight := time.NewTimer(opts.Highlight)
	highlight.Stop()
	defer highlight.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-step.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			now := s.now()
			s.field.Step(now)
			if s.hooks.OnStep != nil {
				s.hooks.OnStep(now)
			}
		case <-grow.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b := s.field.Grow(s.now())
			highlight.Reset(opts.Highlight)
			if s.hooks.OnGrow != nil {
				s.hooks.OnGrow(b)
			}
		case <-highlight.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			key := s.field.Highlighted()
			s.field.ClearHighlight(key)
			if key != "" && s.hooks.OnClear != nil {
				s.hooks.OnClear(key)
			}
		case <-trim.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			dropped := s.field.Trim()
			if s.hooks.OnTrim != nil {
				s.hooks.OnTrim(dropped, s.field.Len())
			}
		}
	}
}
