// Package event defines the canonical combat event shared by both log
// decoders and every downstream consumer.
package event

// ActionKind is the canonical category of a combat event. Its value is the
// wire token used by the structured (v2) log format. The empty string is the
// distinguished "unrecognized line" kind.
type ActionKind string

const (
	KindUnknown ActionKind = ""

	KindSwingDamage         ActionKind = "SWING_DAMAGE"
	KindSwingMissed         ActionKind = "SWING_MISSED"
	KindRangeDamage         ActionKind = "RANGE_DAMAGE"
	KindRangeMissed         ActionKind = "RANGE_MISSED"
	KindSpellDamage         ActionKind = "SPELL_DAMAGE"
	KindSpellPeriodicDamage ActionKind = "SPELL_PERIODIC_DAMAGE"
	KindDamageShield        ActionKind = "DAMAGE_SHIELD"
	KindDamageSplit         ActionKind = "DAMAGE_SPLIT"
	KindSpellMissed         ActionKind = "SPELL_MISSED"
	KindSpellPeriodicMissed ActionKind = "SPELL_PERIODIC_MISSED"
	KindDamageShieldMissed  ActionKind = "DAMAGE_SHIELD_MISSED"
	KindSpellHeal           ActionKind = "SPELL_HEAL"
	KindSpellPeriodicHeal   ActionKind = "SPELL_PERIODIC_HEAL"
	KindSpellEnergize       ActionKind = "SPELL_ENERGIZE"
	KindPeriodicEnergize    ActionKind = "SPELL_PERIODIC_ENERGIZE"
	KindSpellDrain          ActionKind = "SPELL_DRAIN"
	KindPeriodicDrain       ActionKind = "SPELL_PERIODIC_DRAIN"
	KindSpellLeech          ActionKind = "SPELL_LEECH"
	KindPeriodicLeech       ActionKind = "SPELL_PERIODIC_LEECH"
	KindExtraAttacks        ActionKind = "SPELL_EXTRA_ATTACKS"
	KindAuraApplied         ActionKind = "SPELL_AURA_APPLIED"
	KindAuraRemoved         ActionKind = "SPELL_AURA_REMOVED"
	KindAuraAppliedDose     ActionKind = "SPELL_AURA_APPLIED_DOSE"
	KindAuraRemovedDose     ActionKind = "SPELL_AURA_REMOVED_DOSE"
	KindAuraDispelled       ActionKind = "SPELL_AURA_DISPELLED"
	KindAuraStolen          ActionKind = "SPELL_AURA_STOLEN"
	KindCastStart           ActionKind = "SPELL_CAST_START"
	KindCastSuccess         ActionKind = "SPELL_CAST_SUCCESS"
	KindCastFailed          ActionKind = "SPELL_CAST_FAILED"
	KindInstakill           ActionKind = "SPELL_INSTAKILL"
	KindInterrupt           ActionKind = "SPELL_INTERRUPT"
	KindSummon              ActionKind = "SPELL_SUMMON"
	KindCreate              ActionKind = "SPELL_CREATE"
	KindEnvironmental       ActionKind = "ENVIRONMENTAL_DAMAGE"
	KindEnchantApplied      ActionKind = "ENCHANT_APPLIED"
	KindEnchantRemoved      ActionKind = "ENCHANT_REMOVED"
	KindPartyKill           ActionKind = "PARTY_KILL"
	KindUnitDied            ActionKind = "UNIT_DIED"
	KindUnitDestroyed       ActionKind = "UNIT_DESTROYED"
)

// Event is the normalized record produced by either decoder. Numeric fields
// that were textually absent (or "nil"/"none") decode to zero, never to an
// undefined state; aggregators do unconditional arithmetic on them.
type Event struct {
	Kind ActionKind

	// When is seconds since the Unix epoch, including the sub-second
	// fraction carried by the log line. Zero when no timestamp parsed.
	When float64

	ActorID    uint64
	Actor      string
	ActorFlags UnitFlags

	TargetID    uint64
	Target      string
	TargetFlags UnitFlags

	// Extra is the kind-specific payload. Nil for kinds that carry no
	// extra columns (UNIT_DIED, PARTY_KILL, UNIT_DESTROYED) and for
	// unrecognized lines.
	Extra Payload
}

// DamageKinds are the action kinds whose payload debits a target's health.
// The healing aggregator's overheal ledger watches exactly these.
var DamageKinds = []ActionKind{
	KindSwingDamage,
	KindRangeDamage,
	KindSpellDamage,
	KindSpellPeriodicDamage,
	KindDamageShield,
	KindDamageSplit,
	KindEnvironmental,
}

// HealKinds are the action kinds carrying a Heal payload.
var HealKinds = []ActionKind{
	KindSpellHeal,
	KindSpellPeriodicHeal,
}

// MissKinds are the action kinds carrying a Missed payload.
var MissKinds = []ActionKind{
	KindSwingMissed,
	KindRangeMissed,
	KindSpellMissed,
	KindSpellPeriodicMissed,
	KindDamageShieldMissed,
}

// IsDamage reports whether k is one of the damage-producing kinds.
func IsDamage(k ActionKind) bool {
	for _, d := range DamageKinds {
		if k == d {
			return true
		}
	}
	return false
}

// IsHeal reports whether k carries a Heal payload.
func IsHeal(k ActionKind) bool {
	return k == KindSpellHeal || k == KindSpellPeriodicHeal
}

// IsMiss reports whether k carries a Missed payload.
func IsMiss(k ActionKind) bool {
	for _, m := range MissKinds {
		if k == m {
			return true
		}
	}
	return false
}
