// Package morph blends a shared vertex topology between a cyclic set of
// shape targets.
//
// Every target is derived from the same [Topology] by casting a ray from the
// origin along each unit direction against the shape's surface, so all
// targets share vertex count and ordering and can be interpolated vertex by
// vertex. Targets are rescaled to a mean vertex radius of 1.
//
// [Engine] is a two-state machine. [Engine.Trigger] moves Idle to Morphing
// and is ignored while a transition runs; [Engine.Advance] steps the
// transition once per frame and writes the displayed positions into the
// engine's [VertexBuffer]:
//
//	e, err := morph.New(morph.WithMorphSpeed(1.5))
//	...
//	e.Trigger()
//	e.Advance(dt, elapsed, bass)
//	buf := e.Buffer()
//	if buf.NeedsUpdate {
//		upload(buf.Positions)
//	}
//	buf.Acknowledge()
//
// Normals are recomputed on a frame cadence rather than every frame, and
// always on the frame a transition completes.
package morph
