package field

import (
	"time"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/motion"
)

const (
	DefaultMaxBubbles = 50
	DefaultBurstMin   = 8
	DefaultBurstMax   = 15
)

// Options controls the timing and size policy of a field.
type Options struct {
	Tick      time.Duration
	Grow      time.Duration
	Trim      time.Duration
	Highlight time.Duration
	Spread    time.Duration

	MaxBubbles int
	BurstMin   int
	BurstMax   int
}

func DefaultOptions() Options {
	return Options{
		Tick:       motion.DefaultTick,
		Grow:       5 * time.Minute,
		Trim:       time.Minute,
		Highlight:  2 * time.Second,
		Spread:     5 * time.Minute,
		MaxBubbles: DefaultMaxBubbles,
		BurstMin:   DefaultBurstMin,
		BurstMax:   DefaultBurstMax,
	}
}

// Field owns the live bubble collection of one view. It is not safe for
// concurrent use.
type Field struct {
	opts    Options
	gen     *bubble.Generator
	bubbles []bubble.Bubble

	highlight      string
	highlightUntil time.Time
}

func New(opts Options, gen *bubble.Generator) *Field {
	return &Field{opts: opts, gen: gen}
}

func (f *Field) Options() Options { return f.opts }

// Mount seeds the field: prior-session bubbles first, then a synthetic
// burst backdated over the spread window, then the joined bubbles. The
// result is cut to MaxBubbles from the front, so joined bubbles survive.
func (f *Field) Mount(now time.Time, prior []bubble.Bubble, joined ...bubble.Bubble) {
	burst := f.gen.Burst(now, f.opts.BurstMin, f.opts.BurstMax, f.opts.Spread)
	f.bubbles = Trim(Merge(prior, burst, joined), f.opts.MaxBubbles)
	f.highlight = ""
	f.highlightUntil = time.Time{}
}

// Step advances every bubble one motion tick.
func (f *Field) Step(now time.Time) {
	f.bubbles = motion.Step(f.bubbles, motion.Seconds(now))
}

// Grow appends one synthetic bubble and highlights it.
func (f *Field) Grow(now time.Time) bubble.Bubble {
	b := f.gen.Generate(now)
	f.bubbles = Append(f.bubbles, b)
	f.highlight = b.Key
	f.highlightUntil = now.Add(f.opts.Highlight)
	return b
}

// ClearHighlight drops the highlight if it still marks key.
func (f *Field) ClearHighlight(key string) {
	if f.highlight == key {
		f.highlight = ""
		f.highlightUntil = time.Time{}
	}
}

// ExpireHighlight drops the highlight once its window has passed.
func (f *Field) ExpireHighlight(now time.Time) {
	if f.highlight != "" && !now.Before(f.highlightUntil) {
		f.ClearHighlight(f.highlight)
	}
}

// Highlighted returns the key of the bubble currently marked as new.
func (f *Field) Highlighted() string { return f.highlight }

// Trim enforces the size cap and returns how many bubbles were dropped.
func (f *Field) Trim() int {
	before := len(f.bubbles)
	f.bubbles = Trim(f.bubbles, f.opts.MaxBubbles)
	return before - len(f.bubbles)
}

func (f *Field) Len() int { return len(f.bubbles) }

// Snapshot returns a copy of the collection.
func (f *Field) Snapshot() []bubble.Bubble {
	out := make([]bubble.Bubble, len(f.bubbles))
	copy(out, f.bubbles)
	return out
}

// Append returns prev with b added at the end.
func Append(prev []bubble.Bubble, b bubble.Bubble) []bubble.Bubble {
	next := make([]bubble.Bubble, len(prev), len(prev)+1)
	copy(next, prev)
	return append(next, b)
}

// Trim returns the most recently appended max bubbles, in order. prev is
// returned unchanged when it is within the cap.
func Trim(prev []bubble.Bubble, max int) []bubble.Bubble {
	if max < 0 || len(prev) <= max {
		return prev
	}
	next := make([]bubble.Bubble, max)
	copy(next, prev[len(prev)-max:])
	return next
}

// Merge concatenates the groups, keeping the first bubble seen for each key.
func Merge(groups ...[]bubble.Bubble) []bubble.Bubble {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	seen := make(map[string]struct{}, n)
	out := make([]bubble.Bubble, 0, n)
	for _, g := range groups {
		for _, b := range g {
			if _, dup := seen[b.Key]; dup {
				continue
			}
			seen[b.Key] = struct{}{}
			out = append(out, b)
		}
	}
	return out
}
