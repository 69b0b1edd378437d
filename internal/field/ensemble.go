package field

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
)

// Ensemble runs Simulate on runs independent fields in parallel, seeded
// seedStart, seedStart+1, and so on. Results are returned in seed order.
func Ensemble(ctx context.Context, opts Options, seedStart int64, runs int, start time.Time, duration time.Duration) ([]*Result, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}

	results := make([]*Result, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			f := New(opts, bubble.NewGenerator(seedStart+int64(idx)))
			f.Mount(start, nil)
			results[idx], errs[idx] = Simulate(ctx, f, start, duration)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("run %d (seed %d): %w", i, seedStart+int64(i), err)
		}
	}
	return results, nil
}
