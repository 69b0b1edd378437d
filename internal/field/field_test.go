package field_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

func keys(bs []bubble.Bubble) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Key
	}
	return out
}

func uniqueKeys(bs []bubble.Bubble) bool {
	seen := make(map[string]bool, len(bs))
	for _, b := range bs {
		if seen[b.Key] {
			return false
		}
		seen[b.Key] = true
	}
	return true
}

var _ = Describe("Field", func() {
	var (
		gen  *bubble.Generator
		f    *field.Field
		now  time.Time
		opts field.Options
	)

	BeforeEach(func() {
		gen = bubble.NewGenerator(42)
		opts = field.DefaultOptions()
		f = field.New(opts, gen)
		now = time.UnixMilli(1_700_000_000_000)
	})

	Describe("Mount", func() {
		It("seeds a backdated burst and appends the joined bubble last", func() {
			self := gen.Generate(now, bubble.WithWallet("me"), bubble.WithColor("#3B82F6"))
			f.Mount(now, nil, self)

			snap := f.Snapshot()
			Expect(len(snap)).To(BeNumerically(">=", opts.BurstMin+1))
			Expect(len(snap)).To(BeNumerically("<=", opts.BurstMax+1))
			Expect(snap[len(snap)-1].Key).To(Equal(self.Key))

			for _, b := range snap[:len(snap)-1] {
				Expect(b.CreatedAt).To(BeTemporally("<=", now))
				Expect(now.Sub(b.CreatedAt)).To(BeNumerically("<", opts.Spread))
			}
		})

		It("keeps prior-session bubbles ahead of the burst", func() {
			prior := []bubble.Bubble{
				gen.Generate(now.Add(-time.Hour)),
				gen.Generate(now.Add(-30 * time.Minute)),
			}
			f.Mount(now, prior)

			snap := f.Snapshot()
			Expect(keys(snap[:2])).To(Equal(keys(prior)))
		})

		It("drops duplicate keys when merging", func() {
			self := gen.Generate(now)
			prior := []bubble.Bubble{self}
			f.Mount(now, prior, self)

			Expect(uniqueKeys(f.Snapshot())).To(BeTrue())
		})

		It("caps a resumed field at the configured capacity", func() {
			opts.MaxBubbles = 25
			f = field.New(opts, gen)
			prior := make([]bubble.Bubble, 0, 50)
			for i := 0; i < 50; i++ {
				prior = append(prior, gen.Generate(now.Add(-time.Duration(50-i)*time.Minute)))
			}
			self := gen.Generate(now, bubble.WithWallet("me"))
			f.Mount(now, prior, self)

			snap := f.Snapshot()
			Expect(snap).To(HaveLen(25))
			Expect(snap[len(snap)-1].Key).To(Equal(self.Key))
			Expect(uniqueKeys(snap)).To(BeTrue())
		})

		It("starts with no highlight", func() {
			f.Mount(now, nil)
			Expect(f.Highlighted()).To(BeEmpty())
		})
	})

	Describe("Grow", func() {
		BeforeEach(func() {
			f.Mount(now, nil)
		})

		It("appends exactly one bubble and highlights it", func() {
			before := f.Len()
			b := f.Grow(now)

			Expect(f.Len()).To(Equal(before + 1))
			snap := f.Snapshot()
			Expect(snap[len(snap)-1].Key).To(Equal(b.Key))
			Expect(f.Highlighted()).To(Equal(b.Key))
		})

		It("expires the highlight after the window", func() {
			b := f.Grow(now)

			f.ExpireHighlight(now.Add(opts.Highlight - time.Millisecond))
			Expect(f.Highlighted()).To(Equal(b.Key))

			f.ExpireHighlight(now.Add(opts.Highlight))
			Expect(f.Highlighted()).To(BeEmpty())
		})

		It("only clears the highlight for the matching key", func() {
			first := f.Grow(now)
			second := f.Grow(now.Add(time.Second))

			f.ClearHighlight(first.Key)
			Expect(f.Highlighted()).To(Equal(second.Key))

			f.ClearHighlight(second.Key)
			Expect(f.Highlighted()).To(BeEmpty())
		})
	})

	Describe("Trim", func() {
		It("keeps the last 50 of 60 appended bubbles in order", func() {
			var appended []bubble.Bubble
			for i := 0; i < 60; i++ {
				b := gen.Generate(now.Add(time.Duration(i) * time.Second))
				appended = field.Append(appended, b)
			}

			trimmed := field.Trim(appended, field.DefaultMaxBubbles)
			Expect(trimmed).To(HaveLen(50))
			Expect(keys(trimmed)).To(Equal(keys(appended[10:])))
		})

		It("reports how many bubbles were dropped", func() {
			f.Mount(now, nil)
			for f.Len() < 57 {
				f.Grow(now)
			}
			Expect(f.Trim()).To(Equal(7))
			Expect(f.Len()).To(Equal(50))
			Expect(f.Trim()).To(Equal(0))
		})

		It("leaves small collections untouched", func() {
			small := []bubble.Bubble{gen.Generate(now)}
			Expect(field.Trim(small, 50)).To(Equal(small))
		})
	})

	Describe("Append", func() {
		It("does not alias the previous collection", func() {
			prev := make([]bubble.Bubble, 1, 4)
			prev[0] = gen.Generate(now)

			a := field.Append(prev, gen.Generate(now))
			b := field.Append(prev, gen.Generate(now))
			Expect(a[1].Key).NotTo(Equal(b[1].Key))
			Expect(prev).To(HaveLen(1))
		})
	})

	Describe("Step", func() {
		It("keeps every bubble in bounds", func() {
			f.Mount(now, nil)
			t := now
			for i := 0; i < 2000; i++ {
				f.Step(t)
				t = t.Add(opts.Tick)
			}
			for _, b := range f.Snapshot() {
				Expect(b.InBounds()).To(BeTrue(), "bubble %s at (%.3f, %.3f)", b.Key, b.X, b.Y)
			}
		})
	})

	Describe("Simulate", func() {
		It("grows every interval and caps the population", func() {
			f.Mount(now, nil)
			res, err := field.Simulate(context.Background(), f, now, 6*time.Hour)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Grown).To(Equal(72))
			Expect(res.Ticks).To(Equal(int(6 * time.Hour / opts.Tick)))
			Expect(res.Final).To(HaveLen(50))
			Expect(uniqueKeys(res.Final)).To(BeTrue())
			for _, s := range res.Samples[1:] {
				Expect(s.Count).To(BeNumerically("<=", 50))
			}
		})

		It("stops when the context is canceled", func() {
			f.Mount(now, nil)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := field.Simulate(ctx, f, now, time.Hour)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Ticks).To(BeZero())
		})

		It("rejects a non-positive duration", func() {
			_, err := field.Simulate(context.Background(), f, now, 0)
			Expect(err).To(HaveOccurred())
		})
	})
})
