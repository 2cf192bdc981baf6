package stats

import (
	"testing"

	"github.com/halwyn/wowlog-parser/internal/event"
)

func TestIndex(t *testing.T) {
	ix := NewIndex()
	ix.Start()

	if got := ix.Actions(); len(got) != 0 {
		t.Fatalf("index must be a wildcard consumer, got %v", got)
	}

	// The first non-zero id/flags stick; later sightings only bump Seen.
	ix.Process(&event.Event{Kind: event.KindCastSuccess, Actor: "Ricilic",
		Extra: event.Cast{Spell: event.Spell{ID: 133, Name: "Fireball"}}})
	ix.Process(&event.Event{
		Kind:       event.KindSpellDamage,
		ActorID:    0x7, Actor: "Ricilic", ActorFlags: 0x511,
		TargetID:   0xF13, Target: "Gurgthock", TargetFlags: 0x10a48,
		Extra:      event.Damage{Spell: event.Spell{ID: 133, Name: "Fireball"}},
	})

	u, ok := ix.Unit("Ricilic")
	if !ok || u.ID != 0x7 || u.Flags != 0x511 || u.Seen != 2 {
		t.Fatalf("unit=%+v ok=%v", u, ok)
	}
	if _, ok := ix.Unit("Nobody"); ok {
		t.Fatalf("unexpected unit")
	}

	name, ok := ix.SpellName(133)
	if !ok || name != "Fireball" {
		t.Fatalf("name=%q ok=%v", name, ok)
	}

	units := ix.Units()
	if len(units) != 2 || units[0].Name != "Gurgthock" {
		t.Fatalf("units=%+v", units)
	}
	spells := ix.Spells()
	if len(spells) != 1 || spells[0].Seen != 2 {
		t.Fatalf("spells=%+v", spells)
	}
}
