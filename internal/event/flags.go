package event

// UnitFlags is the hexadecimal relationship mask attached to each combatant
// in the structured format: affiliation, reaction, control, object type and
// special role markers. Zero means unknown (legacy lines carry no mask).
type UnitFlags uint64

const (
	FlagAffiliationMine     UnitFlags = 0x00000001
	FlagAffiliationParty    UnitFlags = 0x00000002
	FlagAffiliationRaid     UnitFlags = 0x00000004
	FlagAffiliationOutsider UnitFlags = 0x00000008

	FlagReactionFriendly UnitFlags = 0x00000010
	FlagReactionNeutral  UnitFlags = 0x00000020
	FlagReactionHostile  UnitFlags = 0x00000040

	FlagControlPlayer UnitFlags = 0x00000100
	FlagControlNPC    UnitFlags = 0x00000200

	FlagTypePlayer   UnitFlags = 0x00000400
	FlagTypeNPC      UnitFlags = 0x00000800
	FlagTypePet      UnitFlags = 0x00001000
	FlagTypeGuardian UnitFlags = 0x00002000
	FlagTypeObject   UnitFlags = 0x00004000

	FlagSpecialTarget     UnitFlags = 0x00010000
	FlagSpecialFocus      UnitFlags = 0x00020000
	FlagSpecialMainTank   UnitFlags = 0x00040000
	FlagSpecialMainAssist UnitFlags = 0x00080000

	FlagRaidIcon1 UnitFlags = 0x00100000
	FlagRaidIcon2 UnitFlags = 0x00200000
	FlagRaidIcon3 UnitFlags = 0x00400000
	FlagRaidIcon4 UnitFlags = 0x00800000
	FlagRaidIcon5 UnitFlags = 0x01000000
	FlagRaidIcon6 UnitFlags = 0x02000000
	FlagRaidIcon7 UnitFlags = 0x04000000
	FlagRaidIcon8 UnitFlags = 0x08000000
)

// Has reports whether every bit of mask is set.
func (f UnitFlags) Has(mask UnitFlags) bool { return f&mask == mask }

// IsPlayerControlled reports whether the unit is driven by a player
// (directly or as a controlled pet).
func (f UnitFlags) IsPlayerControlled() bool { return f&FlagControlPlayer != 0 }

// IsPet reports whether the unit is a pet or guardian.
func (f UnitFlags) IsPet() bool { return f&(FlagTypePet|FlagTypeGuardian) != 0 }

// Reaction renders the reaction bits as a word; empty when unknown.
func (f UnitFlags) Reaction() string {
	switch {
	case f&FlagReactionFriendly != 0:
		return "friendly"
	case f&FlagReactionNeutral != 0:
		return "neutral"
	case f&FlagReactionHostile != 0:
		return "hostile"
	default:
		return ""
	}
}
