// Package field manages the population of bubbles floating on one view.
//
// A [Field] is seeded once at mount time and then driven by three
// independent periodic events:
//
//   - motion ticks (150ms) move every bubble
//   - growth ticks (5m) append one synthetic bubble and highlight it
//   - trim ticks (60s) drop the oldest bubbles beyond the cap of 50
//
// Every mutation replaces the whole collection, so a snapshot taken between
// events is never partially written.
//
// [Scheduler] runs those events from wall-clock timers until its context is
// canceled; [Simulate] replays them on a virtual clock for headless runs.
//
// # Thread Safety
//
// Field instances are NOT thread-safe. Only the goroutine driving a field
// (a Scheduler, a Bubble Tea update loop, or a test) may touch it.
package field
