// Package run owns the extension contract and the event-distribution
// runner that fans canonical events out to interested consumers.
package run

import "github.com/halwyn/wowlog-parser/internal/event"

// Extension is a stateful consumer of canonical events. One instance lives
// for exactly one log pass: Start before the first line, Finish after the
// last. Extensions own their state exclusively and must not depend on the
// order Start is called across instances.
type Extension interface {
	// Start resets per-pass state.
	Start()

	// Actions declares the action kinds this extension wants to see.
	// An empty set means every kind (wildcard).
	Actions() []event.ActionKind

	// Process observes one event. Events arrive in source-log order.
	Process(ev *event.Event)

	// Finish runs after the last event of the pass.
	Finish()
}
