package event

// SpellSchool is the hexadecimal school bit mask carried by spell events
// (0x1 physical, 0x2 holy, 0x4 fire, 0x8 nature, 0x10 frost, 0x20 shadow,
// 0x40 arcane).
type SpellSchool uint32

const (
	SchoolPhysical SpellSchool = 0x1
	SchoolHoly     SpellSchool = 0x2
	SchoolFire     SpellSchool = 0x4
	SchoolNature   SpellSchool = 0x8
	SchoolFrost    SpellSchool = 0x10
	SchoolShadow   SpellSchool = 0x20
	SchoolArcane   SpellSchool = 0x40
)

// Spell identifies the ability behind a spell-prefixed event. Legacy lines
// carry no ids, so ID is zero there and Name alone identifies the spell.
type Spell struct {
	ID     int64
	Name   string
	School SpellSchool
}

// Payload is the kind-specific part of an Event. It is a sealed sum type:
// downstream code type-switches over the concrete structs below.
type Payload interface {
	isPayload()
}

// Damage is the payload of every direct damage kind. Spell is the zero value
// for SWING_DAMAGE and RANGE_DAMAGE without an ability.
type Damage struct {
	Spell    Spell
	Amount   int64
	School   SpellSchool
	Resisted int64
	Blocked  int64
	Absorbed int64
	Critical bool
	Glancing bool
	Crushing bool
}

// Missed is the payload of the miss kinds. MissType is one of MISS, DODGE,
// PARRY, RESIST, BLOCK, ABSORB, IMMUNE.
type Missed struct {
	Spell        Spell
	MissType     string
	AmountMissed int64
}

// Heal is the payload of SPELL_HEAL and SPELL_PERIODIC_HEAL. Overheal is the
// amount beyond full health when the log reports it; OverhealKnown records
// whether the column was present, which selects the aggregator's overheal
// accounting mode.
type Heal struct {
	Spell         Spell
	Amount        int64
	Overheal      int64
	OverhealKnown bool
	Critical      bool
}

// Energize is the payload of the energize kinds. PowerType is the decoded
// power name ("mana", "rage", ...).
type Energize struct {
	Spell     Spell
	Amount    int64
	PowerType string
}

// Drain is the payload of the drain and leech kinds.
type Drain struct {
	Spell       Spell
	Amount      int64
	PowerType   string
	ExtraAmount int64
}

// ExtraAttacks is the payload of SPELL_EXTRA_ATTACKS.
type ExtraAttacks struct {
	Spell  Spell
	Amount int64
}

// Aura is the payload of SPELL_AURA_APPLIED and SPELL_AURA_REMOVED.
// AuraType is "BUFF" or "DEBUFF".
type Aura struct {
	Spell    Spell
	AuraType string
}

// AuraDose is the payload of the dose kinds; Amount is the stack count.
type AuraDose struct {
	Spell    Spell
	AuraType string
	Amount   int64
}

// Dispel is the payload of SPELL_AURA_DISPELLED and SPELL_AURA_STOLEN.
// Spell is the dispelling ability, Removed the aura that was taken off.
type Dispel struct {
	Spell    Spell
	Removed  Spell
	AuraType string
}

// Cast is the payload of SPELL_CAST_START, SPELL_CAST_SUCCESS,
// SPELL_INSTAKILL, SPELL_SUMMON and SPELL_CREATE.
type Cast struct {
	Spell Spell
}

// CastFailed is the payload of SPELL_CAST_FAILED.
type CastFailed struct {
	Spell  Spell
	Reason string
}

// Interrupt is the payload of SPELL_INTERRUPT; Interrupted is the spell that
// was cut off.
type Interrupt struct {
	Spell       Spell
	Interrupted Spell
}

// Environmental is the payload of ENVIRONMENTAL_DAMAGE. EnvType is FALLING,
// DROWNING, FATIGUE, FIRE, LAVA or SLIME.
type Environmental struct {
	EnvType string
	Damage  Damage
}

// Enchant is the payload of ENCHANT_APPLIED and ENCHANT_REMOVED.
type Enchant struct {
	SpellName string
	ItemID    int64
	ItemName  string
}

func (Damage) isPayload()        {}
func (Missed) isPayload()        {}
func (Heal) isPayload()          {}
func (Energize) isPayload()      {}
func (Drain) isPayload()         {}
func (ExtraAttacks) isPayload()  {}
func (Aura) isPayload()          {}
func (AuraDose) isPayload()      {}
func (Dispel) isPayload()        {}
func (Cast) isPayload()          {}
func (CastFailed) isPayload()    {}
func (Interrupt) isPayload()     {}
func (Environmental) isPayload() {}
func (Enchant) isPayload()       {}
