package parse

import (
	"strconv"
	"strings"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// The structured (v2) format is comma-delimited. String columns may be
// quoted; the literal token "nil" marks an absent value. The first seven
// columns are fixed for every kind: kind, actor guid (hex), actor name,
// actor flags (hex), target guid, target name, target flags. The remaining
// columns are consumed positionally against the kind's schema.

type colType uint8

const (
	colString colType = iota
	colHex
	colInt
	colFlag
	colPower // decimal power code, rendered as a name
)

type column struct {
	name string
	typ  colType
}

// layout describes a kind's extra columns: an optional spell prefix
// (spellId, spellName, spellSchool) followed by one of the shared suffixes.
type layout struct {
	spellPrefix bool
	suffix      suffix
}

type suffix uint8

const (
	sufNone suffix = iota
	sufDamage
	sufMissed
	sufHeal
	sufEnergize
	sufDrain
	sufExtraAttacks
	sufAura
	sufAuraDose
	sufDispel
	sufCast
	sufCastFailed
	sufInterrupt
	sufEnvironmental
	sufEnchant
)

// schema is the per-kind column contract of the structured format. Other
// tools produce and consume these logs, so the exact field order of every
// entry is load-bearing.
var schema = map[event.ActionKind]layout{
	event.KindSwingDamage:         {suffix: sufDamage},
	event.KindSwingMissed:         {suffix: sufMissed},
	event.KindRangeDamage:         {spellPrefix: true, suffix: sufDamage},
	event.KindRangeMissed:         {spellPrefix: true, suffix: sufMissed},
	event.KindSpellDamage:         {spellPrefix: true, suffix: sufDamage},
	event.KindSpellPeriodicDamage: {spellPrefix: true, suffix: sufDamage},
	event.KindDamageShield:        {spellPrefix: true, suffix: sufDamage},
	event.KindDamageSplit:         {spellPrefix: true, suffix: sufDamage},
	event.KindSpellMissed:         {spellPrefix: true, suffix: sufMissed},
	event.KindSpellPeriodicMissed: {spellPrefix: true, suffix: sufMissed},
	event.KindDamageShieldMissed:  {spellPrefix: true, suffix: sufMissed},
	event.KindSpellHeal:           {spellPrefix: true, suffix: sufHeal},
	event.KindSpellPeriodicHeal:   {spellPrefix: true, suffix: sufHeal},
	event.KindSpellEnergize:       {spellPrefix: true, suffix: sufEnergize},
	event.KindPeriodicEnergize:    {spellPrefix: true, suffix: sufEnergize},
	event.KindSpellDrain:          {spellPrefix: true, suffix: sufDrain},
	event.KindPeriodicDrain:       {spellPrefix: true, suffix: sufDrain},
	event.KindSpellLeech:          {spellPrefix: true, suffix: sufDrain},
	event.KindPeriodicLeech:       {spellPrefix: true, suffix: sufDrain},
	event.KindExtraAttacks:        {spellPrefix: true, suffix: sufExtraAttacks},
	event.KindAuraApplied:         {spellPrefix: true, suffix: sufAura},
	event.KindAuraRemoved:         {spellPrefix: true, suffix: sufAura},
	event.KindAuraAppliedDose:     {spellPrefix: true, suffix: sufAuraDose},
	event.KindAuraRemovedDose:     {spellPrefix: true, suffix: sufAuraDose},
	event.KindAuraDispelled:       {spellPrefix: true, suffix: sufDispel},
	event.KindAuraStolen:          {spellPrefix: true, suffix: sufDispel},
	event.KindCastStart:           {spellPrefix: true, suffix: sufCast},
	event.KindCastSuccess:         {spellPrefix: true, suffix: sufCast},
	event.KindCastFailed:          {spellPrefix: true, suffix: sufCastFailed},
	event.KindInstakill:           {spellPrefix: true, suffix: sufCast},
	event.KindInterrupt:           {spellPrefix: true, suffix: sufInterrupt},
	event.KindSummon:              {spellPrefix: true, suffix: sufCast},
	event.KindCreate:              {spellPrefix: true, suffix: sufCast},
	event.KindEnvironmental:       {suffix: sufEnvironmental},
	event.KindEnchantApplied:      {suffix: sufEnchant},
	event.KindEnchantRemoved:      {suffix: sufEnchant},
	event.KindPartyKill:           {suffix: sufNone},
	event.KindUnitDied:            {suffix: sufNone},
	event.KindUnitDestroyed:       {suffix: sufNone},
}

var spellPrefixCols = []column{
	{"spellId", colInt},
	{"spellName", colString},
	{"spellSchool", colHex},
}

var suffixCols = map[suffix][]column{
	sufNone: nil,
	sufDamage: {
		{"amount", colInt},
		{"school", colHex},
		{"resisted", colInt},
		{"blocked", colInt},
		{"absorbed", colInt},
		{"critical", colFlag},
		{"glancing", colFlag},
		{"crushing", colFlag},
	},
	sufMissed: {
		{"missType", colString},
		{"amountMissed", colInt},
	},
	sufHeal: {
		{"amount", colInt},
		{"overhealing", colInt},
		{"critical", colFlag},
	},
	sufEnergize: {
		{"amount", colInt},
		{"powerType", colPower},
	},
	sufDrain: {
		{"amount", colInt},
		{"powerType", colPower},
		{"extraAmount", colInt},
	},
	sufExtraAttacks: {
		{"amount", colInt},
	},
	sufAura: {
		{"auraType", colString},
	},
	sufAuraDose: {
		{"auraType", colString},
		{"amount", colInt},
	},
	sufDispel: {
		{"extraSpellId", colInt},
		{"extraSpellName", colString},
		{"extraSpellSchool", colHex},
		{"auraType", colString},
	},
	sufCast: nil,
	sufCastFailed: {
		{"failedType", colString},
	},
	sufInterrupt: {
		{"extraSpellId", colInt},
		{"extraSpellName", colString},
		{"extraSpellSchool", colHex},
	},
	sufEnvironmental: {
		{"environmentalType", colString},
		{"amount", colInt},
		{"school", colHex},
		{"resisted", colInt},
		{"blocked", colInt},
		{"absorbed", colInt},
		{"critical", colFlag},
		{"glancing", colFlag},
		{"crushing", colFlag},
	},
	sufEnchant: {
		{"spellName", colString},
		{"itemId", colInt},
		{"itemName", colString},
	},
}

// Columns returns the ordered extra-column schema for a kind, or nil for
// kinds outside the table.
func Columns(kind event.ActionKind) []column {
	l, ok := schema[kind]
	if !ok {
		return nil
	}
	var out []column
	if l.spellPrefix {
		out = append(out, spellPrefixCols...)
	}
	return append(out, suffixCols[l.suffix]...)
}

// Kinds returns every action kind in the schema table.
func Kinds() []event.ActionKind {
	out := make([]event.ActionKind, 0, len(schema))
	for k := range schema {
		out = append(out, k)
	}
	return out
}

// splitFields splits a structured line on commas, honoring double quotes.
// Quotes around a field are stripped.
func splitFields(body string) []string {
	var out []string
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case ch == ',' && !inQuote:
			out = append(out, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	return append(out, b.String())
}

// row consumes split columns positionally, zero-filling past the end or on
// "nil" tokens.
type row struct {
	fields []string
	pos    int
}

func (r *row) next() (string, bool) {
	if r.pos >= len(r.fields) {
		return "", false
	}
	f := strings.TrimSpace(r.fields[r.pos])
	r.pos++
	if f == "nil" {
		return "", false
	}
	return f, true
}

func (r *row) str() string {
	s, _ := r.next()
	return s
}

func (r *row) int() int64 {
	s, ok := r.next()
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func (r *row) hex() uint64 {
	s, ok := r.next()
	if !ok {
		return 0
	}
	n, _ := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	return n
}

func (r *row) flag() bool {
	s, ok := r.next()
	return ok && s == "1"
}

func (d *Decoder) decodeStructured(body string) event.Event {
	r := &row{fields: splitFields(body)}

	ev := event.Event{
		Kind:        event.ActionKind(r.str()),
		ActorID:     r.hex(),
		Actor:       r.str(),
		ActorFlags:  event.UnitFlags(r.hex()),
		TargetID:    r.hex(),
		Target:      r.str(),
		TargetFlags: event.UnitFlags(r.hex()),
	}
	ev.Extra = decodeExtra(ev.Kind, r)
	return ev
}

// decodeExtra builds the kind-specific payload from the remaining columns.
// A kind outside the schema table yields a nil payload rather than an
// error, so newer logs with unseen kinds still decode their common columns.
func decodeExtra(kind event.ActionKind, r *row) event.Payload {
	l, ok := schema[kind]
	if !ok {
		return nil
	}

	var sp event.Spell
	if l.spellPrefix {
		sp = event.Spell{
			ID:     r.int(),
			Name:   r.str(),
			School: event.SpellSchool(r.hex()),
		}
	}

	switch l.suffix {
	case sufDamage:
		return event.Damage{
			Spell:    sp,
			Amount:   r.int(),
			School:   event.SpellSchool(r.hex()),
			Resisted: r.int(),
			Blocked:  r.int(),
			Absorbed: r.int(),
			Critical: r.flag(),
			Glancing: r.flag(),
			Crushing: r.flag(),
		}
	case sufMissed:
		return event.Missed{
			Spell:        sp,
			MissType:     r.str(),
			AmountMissed: r.int(),
		}
	case sufHeal:
		amount := r.int()
		over, overKnown := r.next()
		overN, _ := strconv.ParseInt(over, 10, 64)
		return event.Heal{
			Spell:         sp,
			Amount:        amount,
			Overheal:      overN,
			OverhealKnown: overKnown,
			Critical:      r.flag(),
		}
	case sufEnergize:
		return event.Energize{
			Spell:     sp,
			Amount:    r.int(),
			PowerType: event.PowerName(r.int()),
		}
	case sufDrain:
		return event.Drain{
			Spell:       sp,
			Amount:      r.int(),
			PowerType:   event.PowerName(r.int()),
			ExtraAmount: r.int(),
		}
	case sufExtraAttacks:
		return event.ExtraAttacks{Spell: sp, Amount: r.int()}
	case sufAura:
		return event.Aura{Spell: sp, AuraType: r.str()}
	case sufAuraDose:
		return event.AuraDose{Spell: sp, AuraType: r.str(), Amount: r.int()}
	case sufDispel:
		return event.Dispel{
			Spell: sp,
			Removed: event.Spell{
				ID:     r.int(),
				Name:   r.str(),
				School: event.SpellSchool(r.hex()),
			},
			AuraType: r.str(),
		}
	case sufCast:
		return event.Cast{Spell: sp}
	case sufCastFailed:
		return event.CastFailed{Spell: sp, Reason: r.str()}
	case sufInterrupt:
		return event.Interrupt{
			Spell: sp,
			Interrupted: event.Spell{
				ID:     r.int(),
				Name:   r.str(),
				School: event.SpellSchool(r.hex()),
			},
		}
	case sufEnvironmental:
		return event.Environmental{
			EnvType: r.str(),
			Damage: event.Damage{
				Amount:   r.int(),
				School:   event.SpellSchool(r.hex()),
				Resisted: r.int(),
				Blocked:  r.int(),
				Absorbed: r.int(),
				Critical: r.flag(),
				Glancing: r.flag(),
				Crushing: r.flag(),
			},
		}
	case sufEnchant:
		return event.Enchant{
			SpellName: r.str(),
			ItemID:    r.int(),
			ItemName:  r.str(),
		}
	default:
		return nil
	}
}
