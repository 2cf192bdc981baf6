package spellmeta

import "testing"

func TestRank(t *testing.T) {
	r, ok := Rank(2061)
	if !ok || r != 7 {
		t.Fatalf("r=%d ok=%v", r, ok)
	}
	if _, ok := Rank(999999); ok {
		t.Fatalf("unexpected rank")
	}
}

func TestDecorate(t *testing.T) {
	if got := Decorate(2061, "Flash Heal"); got != "Flash Heal (Rank 7)" {
		t.Fatalf("got=%q", got)
	}
	if got := Decorate(0, "Flash Heal"); got != "Flash Heal" {
		t.Fatalf("got=%q", got)
	}
}
