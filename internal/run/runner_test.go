package run

import (
	"reflect"
	"testing"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// recorder appends "<name>:<op>" entries to a shared trace so tests can
// assert dispatch order across extensions.
type recorder struct {
	name  string
	kinds []event.ActionKind
	trace *[]string
}

func (r *recorder) Start()                      { *r.trace = append(*r.trace, r.name+":start") }
func (r *recorder) Actions() []event.ActionKind { return r.kinds }
func (r *recorder) Process(ev *event.Event) {
	*r.trace = append(*r.trace, r.name+":"+string(ev.Kind))
}
func (r *recorder) Finish() { *r.trace = append(*r.trace, r.name+":finish") }

func TestRunner_DispatchOrder(t *testing.T) {
	var trace []string
	a := &recorder{name: "a", kinds: []event.ActionKind{event.KindSpellHeal}, trace: &trace}
	b := &recorder{name: "b", kinds: []event.ActionKind{event.KindSpellHeal}, trace: &trace}
	w := &recorder{name: "w", trace: &trace}

	r := NewRunner(a, b, w)
	r.Start()
	trace = trace[:0]

	r.Process(&event.Event{Kind: event.KindSpellHeal})
	want := []string{"a:SPELL_HEAL", "b:SPELL_HEAL", "w:SPELL_HEAL"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("trace=%v", trace)
	}
}

func TestRunner_UnmatchedKindReachesWildcardOnly(t *testing.T) {
	var trace []string
	a := &recorder{name: "a", kinds: []event.ActionKind{event.KindSpellHeal}, trace: &trace}
	w := &recorder{name: "w", trace: &trace}

	r := NewRunner(a, w)
	r.Process(&event.Event{Kind: event.KindSwingDamage})
	want := []string{"w:SWING_DAMAGE"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("trace=%v", trace)
	}
}

func TestRunner_StartFinishAllExtensions(t *testing.T) {
	var trace []string
	a := &recorder{name: "a", kinds: []event.ActionKind{event.KindSpellHeal}, trace: &trace}
	w := &recorder{name: "w", trace: &trace}

	r := NewRunner(a, w)
	r.Start()
	r.Finish()
	want := []string{"a:start", "w:start", "a:finish", "w:finish"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("trace=%v", trace)
	}
}
