// Package clock provides the cancellable-timer abstraction the UI engines
// schedule their delayed transitions through.
//
// All callbacks run on the owner's event loop. A Scheduler never runs two
// callbacks concurrently, so engines mutate their state from callbacks
// without locking. Work handed to Go runs off-loop; only the closure it
// returns is applied on-loop.
//
// Fake is a deterministic Scheduler for tests: time only moves when Advance
// is called.
package clock
