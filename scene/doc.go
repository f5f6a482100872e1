// Package scene wires the reactive parameter pipeline into one per-frame
// update.
//
// A [Scene] owns a [frame.Scheduler] with two producers and a fixed consumer
// order:
//
//   - audio producer: band extraction from a [bands.Source], decaying toward
//     silence while paused or disconnected
//   - scroll producer: the page offset from a [ScrollSource]
//   - consumers, in order: morph engine, glass material, effect pipeline,
//     background, particles, camera rig, labels
//
// The morph engine runs before the glass so the glass reads the pulse of the
// current frame. A Scene is not safe for concurrent use; drive it from the
// render loop.
package scene
