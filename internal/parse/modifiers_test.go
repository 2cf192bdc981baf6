package parse

import (
	"testing"

	"github.com/halwyn/wowlog-parser/internal/event"
)

func TestParseModifiers_MultipleGroups(t *testing.T) {
	var d event.Damage
	parseModifiers(" (15 resisted) (30 absorbed) (glancing)", &d)
	if d.Resisted != 15 || d.Absorbed != 30 || !d.Glancing {
		t.Fatalf("dmg=%+v", d)
	}
	if d.Blocked != 0 || d.Crushing {
		t.Fatalf("unexpected modifiers: %+v", d)
	}
}

func TestParseModifiers_UnknownGroupIgnored(t *testing.T) {
	var d event.Damage
	parseModifiers(" (vulnerable) (40 blocked)", &d)
	if d.Blocked != 40 {
		t.Fatalf("blocked=%d", d.Blocked)
	}
	if d.Resisted != 0 || d.Absorbed != 0 || d.Critical || d.Glancing || d.Crushing {
		t.Fatalf("unknown group should not set anything: %+v", d)
	}
}
