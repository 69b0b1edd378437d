package bubble

import (
	"math"
	"time"
)

const (
	MinCoord = 5.0
	MaxCoord = 95.0

	// spawn range is narrower than the motion bounds
	spawnMin  = 10.0
	spawnSpan = 80.0
)

// Bubble is a single participant on the field.
type Bubble struct {
	Key       string    `json:"id"`
	Wallet    string    `json:"wallet"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"timestamp"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
}

// InBounds reports whether the position is finite and inside [MinCoord, MaxCoord].
func (b Bubble) InBounds() bool {
	return inRange(b.X) && inRange(b.Y)
}

func inRange(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= MinCoord && v <= MaxCoord
}

// FormatWallet shortens long identifiers to their first and last six characters.
func FormatWallet(wallet string) string {
	r := []rune(wallet)
	if len(r) > 10 {
		return string(r[:6]) + "..." + string(r[len(r)-6:])
	}
	return wallet
}
