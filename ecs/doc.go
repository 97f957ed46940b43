// Package ecs provides ECS adapters for courtboard's board events.
//
// The primary adapter is [NewDonburiSink], which publishes every board
// mutation into a [Donburi] world as a typed event. Subscribe to
// [BoardEventType] in your ECS systems to receive them, or attach a
// [Journal] to log and tally the stream.
//
// Usage:
//
//	world := donburi.NewWorld()
//	board.AddSink(ecs.NewDonburiSink(world))
//	journal := ecs.NewJournal(world, logger)
//	// once per frame:
//	journal.Update()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
