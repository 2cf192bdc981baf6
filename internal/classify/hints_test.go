package classify

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseHints(t *testing.T) {
	in := `# raid roster
Arcanista: Mage

Grimshot: Hunter (Fang Ripjaw)
`
	seeds, err := ParseHints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	want := map[string]Seed{
		"Arcanista": {Class: "Mage"},
		"Grimshot":  {Class: "Hunter", Pets: []string{"Fang", "Ripjaw"}},
	}
	if !reflect.DeepEqual(seeds, want) {
		t.Fatalf("seeds=%+v", seeds)
	}
}

func TestParseHints_Malformed(t *testing.T) {
	if _, err := ParseHints(strings.NewReader("Arcanista Mage\n")); err == nil {
		t.Fatalf("expected error for missing ':'")
	}
	if _, err := ParseHints(strings.NewReader("Arcanista:\n")); err == nil {
		t.Fatalf("expected error for empty class")
	}
	if _, err := ParseHints(strings.NewReader("Grimshot: Hunter )Fang(\n")); err == nil {
		t.Fatalf("expected error for unbalanced parentheses")
	}
}
