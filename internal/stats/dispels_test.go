package stats

import (
	"testing"

	"github.com/halwyn/wowlog-parser/internal/event"
)

func dispel(kind event.ActionKind, actor, removed string) *event.Event {
	return &event.Event{
		Kind:  kind,
		Actor: actor,
		Extra: event.Dispel{
			Spell:   event.Spell{ID: 527, Name: "Dispel Magic"},
			Removed: event.Spell{Name: removed},
		},
	}
}

func TestDispels(t *testing.T) {
	d := NewDispels()
	d.Start()

	d.Process(dispel(event.KindAuraDispelled, "Loriel", "Corruption"))
	d.Process(dispel(event.KindAuraDispelled, "Loriel", "Corruption"))
	d.Process(dispel(event.KindAuraDispelled, "Loriel", "Curse of Agony"))
	d.Process(dispel(event.KindAuraStolen, "Arcanista", "Power Word: Shield"))

	rows := d.Rows()
	if len(rows) != 3 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0].Actor != "Loriel" || rows[0].Removed != "Corruption" || rows[0].Count != 2 {
		t.Fatalf("rows[0]=%+v", rows[0])
	}
	// Count tie between the two single dispels: actor ascending.
	if rows[1].Actor != "Arcanista" || rows[1].Stolen != 1 {
		t.Fatalf("rows[1]=%+v", rows[1])
	}
	if rows[2].Removed != "Curse of Agony" || rows[2].Stolen != 0 {
		t.Fatalf("rows[2]=%+v", rows[2])
	}
}
