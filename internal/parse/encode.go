package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// Encode renders ev back into a structured (v2) line body, walking the same
// schema the decoder consumes. Decoding an encoded event yields a
// field-for-field identical event for every kind in the schema table.
func Encode(ev event.Event) string {
	var out []string
	out = append(out,
		string(ev.Kind),
		encGUID(ev.ActorID),
		encName(ev.Actor),
		encFlags(ev.ActorFlags),
		encGUID(ev.TargetID),
		encName(ev.Target),
		encFlags(ev.TargetFlags),
	)
	out = append(out, encodeExtra(ev.Kind, ev.Extra)...)
	return strings.Join(out, ",")
}

func encGUID(id uint64) string { return fmt.Sprintf("0x%016x", id) }

func encFlags(f event.UnitFlags) string { return fmt.Sprintf("0x%x", uint64(f)) }

func encName(s string) string {
	if s == "" {
		return "nil"
	}
	return `"` + s + `"`
}

func encStr(s string) string {
	if s == "" {
		return "nil"
	}
	return s
}

func encInt(n int64) string { return strconv.FormatInt(n, 10) }

func encHex(n uint64) string {
	if n == 0 {
		return "nil"
	}
	return fmt.Sprintf("0x%x", n)
}

func encFlag(b bool) string {
	if b {
		return "1"
	}
	return "nil"
}

func encSpell(sp event.Spell) []string {
	return []string{encInt(sp.ID), encName(sp.Name), encHex(uint64(sp.School))}
}

func encDamage(d event.Damage) []string {
	return []string{
		encInt(d.Amount),
		encHex(uint64(d.School)),
		encInt(d.Resisted),
		encInt(d.Blocked),
		encInt(d.Absorbed),
		encFlag(d.Critical),
		encFlag(d.Glancing),
		encFlag(d.Crushing),
	}
}

func encodeExtra(kind event.ActionKind, p event.Payload) []string {
	l, ok := schema[kind]
	if !ok || p == nil {
		return nil
	}

	switch x := p.(type) {
	case event.Damage:
		var out []string
		if l.spellPrefix {
			out = encSpell(x.Spell)
		}
		return append(out, encDamage(x)...)
	case event.Missed:
		var out []string
		if l.spellPrefix {
			out = encSpell(x.Spell)
		}
		return append(out, encStr(x.MissType), encInt(x.AmountMissed))
	case event.Heal:
		over := "nil"
		if x.OverhealKnown {
			over = encInt(x.Overheal)
		}
		return append(encSpell(x.Spell), encInt(x.Amount), over, encFlag(x.Critical))
	case event.Energize:
		return append(encSpell(x.Spell), encInt(x.Amount), encInt(event.PowerCode(x.PowerType)))
	case event.Drain:
		return append(encSpell(x.Spell), encInt(x.Amount), encInt(event.PowerCode(x.PowerType)), encInt(x.ExtraAmount))
	case event.ExtraAttacks:
		return append(encSpell(x.Spell), encInt(x.Amount))
	case event.Aura:
		return append(encSpell(x.Spell), encStr(x.AuraType))
	case event.AuraDose:
		return append(encSpell(x.Spell), encStr(x.AuraType), encInt(x.Amount))
	case event.Dispel:
		out := append(encSpell(x.Spell), encInt(x.Removed.ID), encName(x.Removed.Name), encHex(uint64(x.Removed.School)))
		return append(out, encStr(x.AuraType))
	case event.Cast:
		return encSpell(x.Spell)
	case event.CastFailed:
		return append(encSpell(x.Spell), encStr(x.Reason))
	case event.Interrupt:
		return append(encSpell(x.Spell), encInt(x.Interrupted.ID), encName(x.Interrupted.Name), encHex(uint64(x.Interrupted.School)))
	case event.Environmental:
		return append([]string{encStr(x.EnvType)}, encDamage(x.Damage)...)
	case event.Enchant:
		return []string{encName(x.SpellName), encInt(x.ItemID), encName(x.ItemName)}
	default:
		return nil
	}
}
