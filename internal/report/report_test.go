package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/halwyn/wowlog-parser/internal/classify"
	"github.com/halwyn/wowlog-parser/internal/event"
	"github.com/halwyn/wowlog-parser/internal/stats"
)

func TestHealingReport(t *testing.T) {
	h := stats.NewHealing()
	h.Process(&event.Event{
		Kind:   event.KindSpellHeal,
		Actor:  "Loriel",
		Target: "Ricilic",
		Extra:  event.Heal{Spell: event.Spell{ID: 2061, Name: "Flash Heal"}, Amount: 500},
	})

	var buf bytes.Buffer
	Healing(&buf, h)
	out := buf.String()

	if !strings.Contains(out, "Healer") || !strings.Contains(out, "Loriel") {
		t.Fatalf("out=%q", out)
	}
	if !strings.Contains(out, "Flash Heal (Rank 7)") {
		t.Fatalf("rank decoration missing: %q", out)
	}
}

func TestClassesReport(t *testing.T) {
	var buf bytes.Buffer
	Classes(&buf, map[string]classify.Assignment{
		"Grimshot":  {Name: "Grimshot", Class: "Hunter", Pets: []string{"Fang"}},
		"Arcanista": {Name: "Arcanista", Class: "Mage", FromHint: true},
	})
	out := buf.String()

	// Name ascending, with the source column reflecting hint seeds.
	ai := strings.Index(out, "Arcanista")
	gi := strings.Index(out, "Grimshot")
	if ai < 0 || gi < 0 || ai > gi {
		t.Fatalf("out=%q", out)
	}
	if !strings.Contains(out, "hint") || !strings.Contains(out, "heuristic") {
		t.Fatalf("out=%q", out)
	}
	if !strings.Contains(out, "Fang") {
		t.Fatalf("out=%q", out)
	}
}

func TestUnitsReport(t *testing.T) {
	ix := stats.NewIndex()
	ix.Process(&event.Event{
		Kind:        event.KindSwingDamage,
		ActorID:     0x7,
		Actor:       "Fang",
		ActorFlags:  0x1112,
		Target:      "Gurgthock",
		TargetFlags: 0xa48,
		Extra:       event.Damage{Amount: 50},
	})

	var buf bytes.Buffer
	Units(&buf, ix)
	out := buf.String()
	if !strings.Contains(out, "Fang") || !strings.Contains(out, "yes") {
		t.Fatalf("pet marker missing: %q", out)
	}
	if !strings.Contains(out, "hostile") {
		t.Fatalf("reaction missing: %q", out)
	}
}
