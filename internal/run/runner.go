package run

import "github.com/halwyn/wowlog-parser/internal/event"

// Runner owns a set of extensions and routes each event to the ones that
// declared interest in its kind. The dispatch index is built once at
// construction: extensions with a non-empty interest set land in per-kind
// buckets, the rest in the wildcard list. No event is dropped; a kind with
// no exact-match bucket simply falls straight through to the wildcards.
type Runner struct {
	exts     []Extension
	exact    map[event.ActionKind][]Extension
	wildcard []Extension
}

// NewRunner builds the dispatch index for the given extensions. Bucket
// order follows registration order.
func NewRunner(exts ...Extension) *Runner {
	r := &Runner{
		exts:  exts,
		exact: make(map[event.ActionKind][]Extension),
	}
	for _, x := range exts {
		kinds := x.Actions()
		if len(kinds) == 0 {
			r.wildcard = append(r.wildcard, x)
			continue
		}
		for _, k := range kinds {
			r.exact[k] = append(r.exact[k], x)
		}
	}
	return r
}

// Start starts every owned extension.
func (r *Runner) Start() {
	for _, x := range r.exts {
		x.Start()
	}
}

// Process dispatches ev to the exact-match bucket for its kind, then to
// every wildcard extension, each in registration order. Exact-match
// handlers always observe the event before wildcard handlers.
func (r *Runner) Process(ev *event.Event) {
	for _, x := range r.exact[ev.Kind] {
		x.Process(ev)
	}
	for _, x := range r.wildcard {
		x.Process(ev)
	}
}

// Finish finishes every owned extension.
func (r *Runner) Finish() {
	for _, x := range r.exts {
		x.Finish()
	}
}
