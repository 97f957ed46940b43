// Package courtboard is an interactive tennis tactics board for [Ebitengine].
//
// A [Playbook] holds two catalogs of scenarios (singles and doubles). A
// [Board] shows one scenario at a time: its players and ball, the authored
// guidance arrows and a coaching tip. Pieces can be dragged around the court
// and straight annotation arrows drawn over it, and the composed court can be
// exported as a PNG.
//
// # Quick start
//
//	pb, _ := courtboard.DefaultPlaybook()
//	board, _ := courtboard.NewBoard(pb)
//	surface := courtboard.NewSurface(board, courtboard.SurfaceConfig{ExportDir: "exports"})
//	courtboard.Run(surface, courtboard.RunConfig{Title: "Tennis Tactics"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Surface.Update] and [Surface.Draw] directly.
//
// # State and gestures
//
// The [Board] owns every piece of mutable state and publishes each change
// to its [EventSink]s. Gestures go through two small state machines:
// [StrokeCapture] in annotate mode and [DragController] in move mode. A
// gesture that loses its pointer release (the pointer leaves the court, the
// window loses focus, the mode changes) is committed or discarded according
// to the [AbandonPolicy].
//
// The ecs subpackage publishes board events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package courtboard
