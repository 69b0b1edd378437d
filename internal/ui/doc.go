// Package ui provides the terminal interface for BubbleWorld.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: top-level model switching between the two screens
//   - entry screen: color grid, optional wallet input, join button
//   - field screen: floating bubbles drawn on a [Canvas]
//
// # Key Bindings
//
//	Tab       - Cycle focus (entry) / inspect next bubble (field)
//	Enter     - Select color / join
//	Y         - Inspect your own bubble
//	Esc       - Back to the entry screen
//	Q, Ctrl+C - Quit
//
// # Timers
//
// The field runs three self re-arming tick streams (motion, growth, trim)
// plus a one-shot highlight expiry. Leaving the field retires its
// generation, so ticks still in flight are dropped and never re-armed.
package ui
