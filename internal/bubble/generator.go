package bubble

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	WalletLength   = 44
)

// Generator fabricates synthetic participants. It is not safe for
// concurrent use; each field owns its own.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

type Option func(*Bubble)

// WithWallet sets the identifier. An empty string keeps the synthetic one.
func WithWallet(wallet string) Option {
	return func(b *Bubble) {
		if wallet != "" {
			b.Wallet = wallet
		}
	}
}

// WithColor sets the color. An empty string keeps the random pick.
func WithColor(color string) Option {
	return func(b *Bubble) {
		if color != "" {
			b.Color = color
		}
	}
}

// Generate returns a new bubble stamped with ts.
func (g *Generator) Generate(ts time.Time, opts ...Option) Bubble {
	b := Bubble{
		Color:     Palette[g.rng.Intn(len(Palette))],
		CreatedAt: ts,
		X:         g.rng.Float64()*spawnSpan + spawnMin,
		Y:         g.rng.Float64()*spawnSpan + spawnMin,
		Key:       g.key(ts),
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.Wallet == "" {
		b.Wallet = g.Wallet()
	}
	return b
}

// Wallet returns a base58 token shaped like a public key address.
func (g *Generator) Wallet() string {
	var sb strings.Builder
	sb.Grow(WalletLength)
	for i := 0; i < WalletLength; i++ {
		sb.WriteByte(base58Alphabet[g.rng.Intn(len(base58Alphabet))])
	}
	return sb.String()
}

// ShortHexWallet is the placeholder used when a visitor joins without
// typing an identifier.
func (g *Generator) ShortHexWallet() string {
	return fmt.Sprintf("0x%08x...%04x", g.rng.Uint32(), g.rng.Intn(1<<16))
}

func (g *Generator) key(ts time.Time) string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("bubble-%d-%s", ts.UnixMilli(), id)
}

// IsBase58 reports whether every character of s is in the wallet alphabet.
func IsBase58(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			return false
		}
	}
	return true
}

// Burst returns between min and max bubbles (inclusive) with timestamps
// spread over the window preceding now, oldest first.
func (g *Generator) Burst(now time.Time, min, max int, spread time.Duration) []Bubble {
	if max < min {
		max = min
	}
	n := min
	if max > min {
		n += g.rng.Intn(max - min + 1)
	}
	stamps := make([]time.Time, n)
	for i := range stamps {
		var back time.Duration
		if spread > 0 {
			back = time.Duration(g.rng.Int63n(int64(spread)))
		}
		stamps[i] = now.Add(-back)
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	out := make([]Bubble, n)
	for i, ts := range stamps {
		out[i] = g.Generate(ts)
	}
	return out
}
