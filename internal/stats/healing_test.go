package stats

import (
	"testing"

	"github.com/halwyn/wowlog-parser/internal/event"
)

func heal(actor, target string, spell event.Spell, amount int64, opts ...func(*event.Heal)) *event.Event {
	h := event.Heal{Spell: spell, Amount: amount}
	for _, o := range opts {
		o(&h)
	}
	return &event.Event{Kind: event.KindSpellHeal, Actor: actor, Target: target, Extra: h}
}

func damage(actor, target string, amount int64) *event.Event {
	return &event.Event{
		Kind:   event.KindSwingDamage,
		Actor:  actor,
		Target: target,
		Extra:  event.Damage{Amount: amount},
	}
}

var flashHeal = event.Spell{ID: 2061, Name: "Flash Heal"}

func TestHealing_InferredOverheal(t *testing.T) {
	h := NewHealing()
	h.Start()

	// 200 damage opens a deficit; the next heal is effective only up to
	// the standing deficit, the rest counts as overheal.
	h.Process(damage("Gurgthock", "Ricilic", 200))
	h.Process(heal("Loriel", "Ricilic", flashHeal, 500))

	rec := h.ByActor("Loriel", SpellKey{ID: 2061, Name: "Flash Heal"}, "Ricilic")
	if rec == nil {
		t.Fatalf("no record")
	}
	if rec.Total != 500 || rec.Effective != 300 {
		t.Fatalf("total=%d effective=%d", rec.Total, rec.Effective)
	}

	// The ledger was consumed: the next heal is fully effective.
	h.Process(heal("Loriel", "Ricilic", flashHeal, 400))
	if rec.Total != 900 || rec.Effective != 700 {
		t.Fatalf("total=%d effective=%d", rec.Total, rec.Effective)
	}
}

func TestHealing_ExplicitOverheal(t *testing.T) {
	h := NewHealing()
	h.Start()

	// Explicit overheal wins over the ledger; the ledger is not consumed.
	h.Process(damage("Gurgthock", "Ricilic", 200))
	h.Process(heal("Loriel", "Ricilic", flashHeal, 500, func(x *event.Heal) {
		x.Overheal = 100
		x.OverhealKnown = true
	}))

	rec := h.ByActor("Loriel", SpellKey{ID: 2061, Name: "Flash Heal"}, "Ricilic")
	if rec.Effective != 400 {
		t.Fatalf("effective=%d", rec.Effective)
	}
}

func TestHealing_Buckets(t *testing.T) {
	h := NewHealing()
	h.Start()

	h.Process(heal("Loriel", "Ricilic", flashHeal, 400))
	h.Process(heal("Loriel", "Ricilic", flashHeal, 500))
	h.Process(heal("Loriel", "Ricilic", flashHeal, 900, func(x *event.Heal) { x.Critical = true }))

	tick := heal("Loriel", "Ricilic", event.Spell{ID: 774, Name: "Rejuvenation"}, 60)
	tick.Kind = event.KindSpellPeriodicHeal
	h.Process(tick)

	rec := h.ByActor("Loriel", SpellKey{ID: 2061, Name: "Flash Heal"}, "Ricilic")
	if rec.Hit.Count != 2 || rec.Hit.Min != 400 || rec.Hit.Max != 500 {
		t.Fatalf("hit=%+v", rec.Hit)
	}
	if rec.Crit.Count != 1 || rec.Crit.Min != 900 || rec.Crit.Max != 900 {
		t.Fatalf("crit=%+v", rec.Crit)
	}
	if rec.Tick.Count != 0 {
		t.Fatalf("tick bucket leaked into the direct-heal record")
	}

	rej := h.ByActor("Loriel", SpellKey{ID: 774, Name: "Rejuvenation"}, "Ricilic")
	if rej.Tick.Count != 1 || rej.Tick.Total != 60 {
		t.Fatalf("tick=%+v", rej.Tick)
	}
}

func TestHealing_ByTargetSharesRecords(t *testing.T) {
	h := NewHealing()
	h.Start()

	h.Process(heal("Loriel", "Ricilic", flashHeal, 400))

	key := SpellKey{ID: 2061, Name: "Flash Heal"}
	byActor := h.ByActor("Loriel", key, "Ricilic")
	byTarget := h.ByTarget("Ricilic", key, "Loriel")
	if byActor == nil || byActor != byTarget {
		t.Fatalf("views must share the record: %p vs %p", byActor, byTarget)
	}
}

func TestHealing_RecordsAndRollupOrder(t *testing.T) {
	h := NewHealing()
	h.Start()

	h.Process(heal("Loriel", "Ricilic", flashHeal, 400))
	h.Process(heal("Althea", "Ricilic", event.Spell{ID: 25357, Name: "Healing Wave"}, 900))
	h.Process(heal("Althea", "Gurgthock", event.Spell{ID: 25357, Name: "Healing Wave"}, 900))

	recs := h.Records()
	if len(recs) != 3 {
		t.Fatalf("len=%d", len(recs))
	}
	// Equal totals tie-break on actor, then target.
	if recs[0].Target != "Gurgthock" || recs[1].Target != "Ricilic" || recs[2].Actor != "Loriel" {
		t.Fatalf("order=%v %v %v", recs[0].Target, recs[1].Target, recs[2].Actor)
	}

	totals := h.ActorsSortedByTotal()
	if len(totals) != 2 || totals[0].Actor != "Althea" || totals[0].Total != 1800 {
		t.Fatalf("totals=%+v", totals)
	}
}

func TestHealing_ActionsCoverHealAndDamageKinds(t *testing.T) {
	h := NewHealing()
	kinds := make(map[event.ActionKind]bool)
	for _, k := range h.Actions() {
		kinds[k] = true
	}
	for _, k := range []event.ActionKind{event.KindSpellHeal, event.KindSpellPeriodicHeal, event.KindSwingDamage, event.KindEnvironmental} {
		if !kinds[k] {
			t.Fatalf("missing kind %s", k)
		}
	}
}
