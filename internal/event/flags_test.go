package event

import "testing"

func TestUnitFlags(t *testing.T) {
	// 0x511: mine, friendly, player-controlled, player object.
	f := UnitFlags(0x511)
	if !f.Has(FlagAffiliationMine | FlagControlPlayer | FlagTypePlayer) {
		t.Fatalf("flags=%#x", uint64(f))
	}
	if !f.IsPlayerControlled() || f.IsPet() {
		t.Fatalf("control bits wrong: %#x", uint64(f))
	}
	if got := f.Reaction(); got != "friendly" {
		t.Fatalf("reaction=%q", got)
	}

	// 0x1112: party-affiliated player-controlled pet.
	pet := UnitFlags(0x1112)
	if !pet.IsPet() || !pet.IsPlayerControlled() {
		t.Fatalf("pet bits wrong: %#x", uint64(pet))
	}

	if got := UnitFlags(0).Reaction(); got != "" {
		t.Fatalf("reaction=%q", got)
	}
}
