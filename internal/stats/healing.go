// Package stats holds the stateful extensions fed by the distribution
// runner: healing statistics, dispel tallies and the unit/spell index.
package stats

import (
	"sort"

	"github.com/halwyn/wowlog-parser/internal/event"
	"github.com/halwyn/wowlog-parser/internal/run"
)

func init() {
	run.Register("healing", func() run.Extension { return NewHealing() })
}

// SpellKey identifies a healing spell. Legacy lines carry no spell ids, so
// the name disambiguates when ID is zero.
type SpellKey struct {
	ID   int64
	Name string
}

// Outcome is one bucket of heal results: direct hits, crits or ticks.
// Min/Max are initialized on first observation, not compared against zero.
type Outcome struct {
	Count     int64
	Total     int64
	Effective int64
	Min       int64
	Max       int64
}

func (o *Outcome) add(amount, effective int64) {
	if o.Count == 0 {
		o.Min = amount
		o.Max = amount
	} else {
		if amount < o.Min {
			o.Min = amount
		}
		if amount > o.Max {
			o.Max = amount
		}
	}
	o.Count++
	o.Total += amount
	o.Effective += effective
}

// HealRecord aggregates one (actor, spell, target) triple.
type HealRecord struct {
	Actor  string
	Spell  SpellKey
	Target string

	Count     int64
	Total     int64
	Effective int64

	Hit  Outcome
	Crit Outcome
	Tick Outcome
}

type healKey struct {
	first  string
	spell  SpellKey
	second string
}

// Healing tracks per-(actor, spell, target) healing with overheal-aware
// effective amounts. The target-keyed index shares ownership of the same
// records; the actor-keyed map is the primary owner.
type Healing struct {
	byActor  map[healKey]*HealRecord
	byTarget map[healKey]*HealRecord

	// deficit is the per-target running health ledger used when the log
	// does not report overheal explicitly: damage debits it, the next
	// heal consumes it.
	deficit map[string]int64
}

func NewHealing() *Healing {
	h := &Healing{}
	h.Start()
	return h
}

func (h *Healing) Start() {
	h.byActor = make(map[healKey]*HealRecord)
	h.byTarget = make(map[healKey]*HealRecord)
	h.deficit = make(map[string]int64)
}

func (h *Healing) Actions() []event.ActionKind {
	kinds := make([]event.ActionKind, 0, len(event.HealKinds)+len(event.DamageKinds))
	kinds = append(kinds, event.HealKinds...)
	return append(kinds, event.DamageKinds...)
}

func (h *Healing) Process(ev *event.Event) {
	switch x := ev.Extra.(type) {
	case event.Heal:
		h.addHeal(ev, x)
	case event.Damage:
		h.deficit[ev.Target] += x.Amount
	case event.Environmental:
		h.deficit[ev.Target] += x.Damage.Amount
	}
}

func (h *Healing) Finish() {}

func (h *Healing) addHeal(ev *event.Event, heal event.Heal) {
	// Effective healing excludes overheal. When the log reports the
	// amount beyond full explicitly, subtract it; otherwise infer from
	// the target's damage ledger and reset it.
	effective := heal.Amount
	if heal.OverhealKnown {
		effective = heal.Amount - heal.Overheal
	} else if d := h.deficit[ev.Target]; d > 0 {
		effective = heal.Amount - d
		h.deficit[ev.Target] = 0
	}

	rec := h.record(ev.Actor, SpellKey{ID: heal.Spell.ID, Name: heal.Spell.Name}, ev.Target)
	rec.Count++
	rec.Total += heal.Amount
	rec.Effective += effective

	switch {
	case ev.Kind == event.KindSpellPeriodicHeal:
		rec.Tick.add(heal.Amount, effective)
	case heal.Critical:
		rec.Crit.add(heal.Amount, effective)
	default:
		rec.Hit.add(heal.Amount, effective)
	}
}

func (h *Healing) record(actor string, spell SpellKey, target string) *HealRecord {
	key := healKey{first: actor, spell: spell, second: target}
	rec := h.byActor[key]
	if rec == nil {
		rec = &HealRecord{Actor: actor, Spell: spell, Target: target}
		h.byActor[key] = rec
		h.byTarget[healKey{first: target, spell: spell, second: actor}] = rec
	}
	return rec
}

// ByActor returns the record for one (actor, spell, target) triple, or nil.
func (h *Healing) ByActor(actor string, spell SpellKey, target string) *HealRecord {
	return h.byActor[healKey{first: actor, spell: spell, second: target}]
}

// ByTarget answers the target-centric view over the same records.
func (h *Healing) ByTarget(target string, spell SpellKey, actor string) *HealRecord {
	return h.byTarget[healKey{first: target, spell: spell, second: actor}]
}

// Records returns every record sorted by total descending, then actor,
// spell name and target ascending.
func (h *Healing) Records() []*HealRecord {
	out := make([]*HealRecord, 0, len(h.byActor))
	for _, rec := range h.byActor {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		if out[i].Actor != out[j].Actor {
			return out[i].Actor < out[j].Actor
		}
		if out[i].Spell.Name != out[j].Spell.Name {
			return out[i].Spell.Name < out[j].Spell.Name
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// ActorTotal is the per-actor rollup used by reports.
type ActorTotal struct {
	Actor     string
	Count     int64
	Total     int64
	Effective int64
}

// ActorsSortedByTotal rolls records up per actor, total descending with a
// name tie-break.
func (h *Healing) ActorsSortedByTotal() []ActorTotal {
	byActor := make(map[string]*ActorTotal)
	for _, rec := range h.byActor {
		t := byActor[rec.Actor]
		if t == nil {
			t = &ActorTotal{Actor: rec.Actor}
			byActor[rec.Actor] = t
		}
		t.Count += rec.Count
		t.Total += rec.Total
		t.Effective += rec.Effective
	}
	out := make([]ActorTotal, 0, len(byActor))
	for _, t := range byActor {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Actor < out[j].Actor
		}
		return out[i].Total > out[j].Total
	})
	return out
}
