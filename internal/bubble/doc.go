// Package bubble defines the participant record floated on the field and
// the generator that fabricates synthetic participants.
//
// The package provides:
//
//   - [Bubble]: one participant with wallet, color and position
//   - [Generator]: seeded source of synthetic participants
//   - [Palette]: the display colors synthetic bubbles draw from
//   - [EntryColors]: the named colors offered on the entry screen
//
// # Coordinates
//
// Positions are percentages of the field, so a bubble at (50, 50) sits in
// the center whatever the terminal size. Generated bubbles start inside
// [10, 90] on both axes; motion keeps them inside [5, 95].
//
//	gen := bubble.NewGenerator(42)
//	b := gen.Generate(time.Now(), bubble.WithColor("#3B82F6"))
package bubble
