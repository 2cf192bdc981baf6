package parse

import (
	"regexp"
	"strings"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// legacyRule pairs a grammar pattern with its field-extraction recipe.
// Rules live in legacyRules and are tried strictly in slice order with
// first-match-wins semantics; several patterns are supersets of earlier
// ones, so the order itself is part of the format contract.
type legacyRule struct {
	name string
	re   *regexp.Regexp
	fn   func(c capture) event.Event
}

// capture wraps a successful match for named-group access. Absent groups
// read as "" / 0, matching the zero-fill contract of the event model.
type capture struct {
	re *regexp.Regexp
	m  []string
}

func (c capture) s(name string) string {
	i := c.re.SubexpIndex(name)
	if i < 0 || i >= len(c.m) {
		return ""
	}
	return c.m[i]
}

func (c capture) n(name string) int64 {
	v, _ := parseInt64(c.s(name))
	return v
}

// owner resolves the possessive alternation "(X's|Your)": an empty actor
// group means the "Your" branch matched.
func (c capture) owner() string {
	if a := c.s("actor"); a != "" {
		return a
	}
	return "you"
}

func (d *Decoder) decodeLegacy(body string) event.Event {
	if body == "" {
		return event.Event{Kind: event.KindUnknown}
	}
	for _, r := range legacyRules {
		m := r.re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		ev := r.fn(capture{re: r.re, m: m})
		d.resolveYou(&ev)
		return ev
	}
	return event.Event{Kind: event.KindUnknown}
}

// resolveYou rewrites first-person names to the configured logger identity.
// Only the legacy grammar produces them; structured lines carry resolved
// names.
func (d *Decoder) resolveYou(ev *event.Event) {
	name := d.LoggerName
	if name == "" {
		name = "You"
	}
	if strings.EqualFold(ev.Actor, "you") {
		ev.Actor = name
	}
	if strings.EqualFold(ev.Target, "you") {
		ev.Target = name
	}
}

func missType(verb string) string {
	switch strings.ToLower(verb) {
	case "dodge", "dodges", "dodged":
		return "DODGE"
	case "parry", "parries", "parried":
		return "PARRY"
	case "block", "blocks", "blocked":
		return "BLOCK"
	case "resist", "resists", "resisted":
		return "RESIST"
	case "absorb", "absorbs", "absorbed":
		return "ABSORB"
	default:
		return "MISS"
	}
}

// schoolFromWord maps the school word of a legacy line to its bit mask.
func schoolFromWord(w string) event.SpellSchool {
	switch strings.ToLower(w) {
	case "physical":
		return event.SchoolPhysical
	case "holy":
		return event.SchoolHoly
	case "fire":
		return event.SchoolFire
	case "nature":
		return event.SchoolNature
	case "frost":
		return event.SchoolFrost
	case "shadow":
		return event.SchoolShadow
	case "arcane":
		return event.SchoolArcane
	default:
		return 0
	}
}

// The possessive alternation shared by spell-subject rules.
const poss = `(?:(?P<actor>.+?)'s|Your)`

var legacyRules = []legacyRule{
	{
		name: "aura_fade",
		re:   regexp.MustCompile(`^(?P<spell>.+?) fades from (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindAuraRemoved,
				Target: c.s("target"),
				Extra:  event.Aura{Spell: event.Spell{Name: c.s("spell")}},
			}
		},
	},
	{
		name: "afflicted_dose",
		re:   regexp.MustCompile(`^(?P<target>.+?) is afflicted by (?P<spell>.+?) \((?P<amt>\d+)\)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindAuraAppliedDose,
				Target: c.s("target"),
				Extra:  event.AuraDose{Spell: event.Spell{Name: c.s("spell")}, AuraType: "DEBUFF", Amount: c.n("amt")},
			}
		},
	},
	{
		name: "afflicted",
		re:   regexp.MustCompile(`^(?P<target>.+?) is afflicted by (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindAuraApplied,
				Target: c.s("target"),
				Extra:  event.Aura{Spell: event.Spell{Name: c.s("spell")}, AuraType: "DEBUFF"},
			}
		},
	},
	{
		// "X gains 20 health from Rejuvenation." / "... from Y's Rejuvenation."
		// Must precede the generic buff-gain rule or periodic heals would
		// decode as auras named "20 health from Rejuvenation".
		name: "gain_health",
		re:   regexp.MustCompile(`^(?P<target>.+?) gains? (?P<amt>\d+) health from (?:(?P<actor>.+?)'s )?(?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			actor := c.s("actor")
			if actor == "" {
				actor = c.s("target")
			}
			return event.Event{
				Kind:   event.KindSpellPeriodicHeal,
				Actor:  actor,
				Target: c.s("target"),
				Extra:  event.Heal{Spell: event.Spell{Name: c.s("spell")}, Amount: c.n("amt")},
			}
		},
	},
	{
		name: "gain_power",
		re:   regexp.MustCompile(`^(?P<target>.+?) gains? (?P<amt>\d+) (?P<power>Mana|Rage|Energy|Focus|Happiness) from (?:(?P<actor>.+?)'s )?(?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			actor := c.s("actor")
			if actor == "" {
				actor = c.s("target")
			}
			return event.Event{
				Kind:   event.KindSpellEnergize,
				Actor:  actor,
				Target: c.s("target"),
				Extra: event.Energize{
					Spell:     event.Spell{Name: c.s("spell")},
					Amount:    c.n("amt"),
					PowerType: strings.ToLower(c.s("power")),
				},
			}
		},
	},
	{
		name: "gain_extra_attacks",
		re:   regexp.MustCompile(`^(?P<actor>.+?) gains? (?P<amt>\d+) extra attacks? through (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindExtraAttacks,
				Actor:  c.s("actor"),
				Target: c.s("actor"),
				Extra:  event.ExtraAttacks{Spell: event.Spell{Name: c.s("spell")}, Amount: c.n("amt")},
			}
		},
	},
	{
		name: "gain_dose",
		re:   regexp.MustCompile(`^(?P<target>.+?) gains? (?P<spell>.+?) \((?P<amt>\d+)\)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindAuraAppliedDose,
				Target: c.s("target"),
				Extra:  event.AuraDose{Spell: event.Spell{Name: c.s("spell")}, AuraType: "BUFF", Amount: c.n("amt")},
			}
		},
	},
	{
		// Generic buff gain. Kept after every specific "gains N ... from"
		// rule, which it would otherwise swallow.
		name: "gain_buff",
		re:   regexp.MustCompile(`^(?P<target>.+?) gains? (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindAuraApplied,
				Target: c.s("target"),
				Extra:  event.Aura{Spell: event.Spell{Name: c.s("spell")}, AuraType: "BUFF"},
			}
		},
	},
	{
		name: "drain",
		re:   regexp.MustCompile(`^` + poss + ` (?P<spell>.+?) drains (?P<amt>\d+) (?P<power>\w+) from (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSpellDrain,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra: event.Drain{
					Spell:     event.Spell{Name: c.s("spell")},
					Amount:    c.n("amt"),
					PowerType: strings.ToLower(c.s("power")),
				},
			}
		},
	},
	{
		name: "leech",
		re:   regexp.MustCompile(`^` + poss + ` (?P<spell>.+?) draws (?P<amt>\d+) (?P<power>\w+) from (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSpellLeech,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra: event.Drain{
					Spell:     event.Spell{Name: c.s("spell")},
					Amount:    c.n("amt"),
					PowerType: strings.ToLower(c.s("power")),
				},
			}
		},
	},
	{
		name: "spell_heal",
		re:   regexp.MustCompile(`^` + poss + ` (?P<spell>.+?) (?P<verb>critically heals|heals) (?P<target>.+?) for (?P<amt>\d+)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSpellHeal,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra: event.Heal{
					Spell:    event.Spell{Name: c.s("spell")},
					Amount:   c.n("amt"),
					Critical: c.s("verb") == "critically heals",
				},
			}
		},
	},
	{
		// "X's Fireball crits Y for 990 Fire damage. (15 resisted)".
		// Precedes the swing rule, which would otherwise take
		// "X's Fireball" as an actor name.
		name: "spell_damage",
		re:   regexp.MustCompile(`^` + poss + ` (?P<spell>.+?) (?P<verb>crits?|hits?) (?P<target>.+?) for (?P<amt>\d+)(?: (?P<school>\w+) damage)?\.(?P<mods>.*)$`),
		fn: func(c capture) event.Event {
			dmg := event.Damage{
				Spell:    event.Spell{Name: c.s("spell")},
				Amount:   c.n("amt"),
				School:   schoolFromWord(c.s("school")),
				Critical: strings.HasPrefix(c.s("verb"), "crit"),
			}
			parseModifiers(c.s("mods"), &dmg)
			return event.Event{
				Kind:   event.KindSpellDamage,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra:  dmg,
			}
		},
	},
	{
		name: "spell_miss",
		re:   regexp.MustCompile(`^` + poss + ` (?P<spell>.+?) miss(?:es|ed) (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSpellMissed,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra:  event.Missed{Spell: event.Spell{Name: c.s("spell")}, MissType: "MISS"},
			}
		},
	},
	{
		// "X's Fireball was resisted by Y." — without the "by Y" tail the
		// avoider is the logger.
		name: "spell_avoided",
		re:   regexp.MustCompile(`^` + poss + ` (?P<spell>.+?) was (?P<verb>resisted|dodged|parried|blocked|absorbed)(?: by (?P<target>.+?))?\.$`),
		fn: func(c capture) event.Event {
			target := c.s("target")
			if target == "" {
				target = "you"
			}
			return event.Event{
				Kind:   event.KindSpellMissed,
				Actor:  c.owner(),
				Target: target,
				Extra:  event.Missed{Spell: event.Spell{Name: c.s("spell")}, MissType: missType(c.s("verb"))},
			}
		},
	},
	{
		// Before spell_immune: "X's attack" would otherwise decode as a
		// spell named "attack".
		name: "swing_immune",
		re:   regexp.MustCompile(`^(?P<target>.+?) is immune to (?:(?P<actor>.+?)'s|your) attack\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSwingMissed,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra:  event.Missed{MissType: "IMMUNE"},
			}
		},
	},
	{
		name: "spell_immune",
		re:   regexp.MustCompile(`^(?P<target>.+?) is immune to (?:(?P<actor>.+?)'s|your) (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSpellMissed,
				Actor:  c.owner(),
				Target: c.s("target"),
				Extra:  event.Missed{Spell: event.Spell{Name: c.s("spell")}, MissType: "IMMUNE"},
			}
		},
	},
	{
		name: "suffers_periodic",
		re:   regexp.MustCompile(`^(?P<target>.+?) suffers? (?P<amt>\d+) (?P<school>\w+) damage from (?:(?P<actor>.+?)'s |(?P<yours>your) )?(?P<spell>.+?)\.(?P<mods>.*)$`),
		fn: func(c capture) event.Event {
			actor := c.s("actor")
			if actor == "" && c.s("yours") != "" {
				actor = "you"
			}
			dmg := event.Damage{
				Spell:  event.Spell{Name: c.s("spell")},
				Amount: c.n("amt"),
				School: schoolFromWord(c.s("school")),
			}
			parseModifiers(c.s("mods"), &dmg)
			return event.Event{
				Kind:   event.KindSpellPeriodicDamage,
				Actor:  actor,
				Target: c.s("target"),
				Extra:  dmg,
			}
		},
	},
	{
		name: "reflect",
		re:   regexp.MustCompile(`^(?P<actor>.+?) reflects (?P<amt>\d+) (?P<school>\w+) damage to (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSpellDamage,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra: event.Damage{
					Amount: c.n("amt"),
					School: schoolFromWord(c.s("school")),
				},
			}
		},
	},
	{
		name: "swing_damage",
		re:   regexp.MustCompile(`^(?P<actor>.+?) (?P<verb>crits?|hits?) (?P<target>.+?) for (?P<amt>\d+)\.(?P<mods>.*)$`),
		fn: func(c capture) event.Event {
			dmg := event.Damage{
				Amount:   c.n("amt"),
				School:   event.SchoolPhysical,
				Critical: strings.HasPrefix(c.s("verb"), "crit"),
			}
			parseModifiers(c.s("mods"), &dmg)
			return event.Event{
				Kind:   event.KindSwingDamage,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  dmg,
			}
		},
	},
	{
		name: "swing_avoided",
		re:   regexp.MustCompile(`^(?P<actor>.+?) attacks\. (?P<target>.+?) (?P<verb>dodges|parries|blocks|dodge|parry|block)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSwingMissed,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  event.Missed{MissType: missType(c.s("verb"))},
			}
		},
	},
	{
		name: "swing_absorbed",
		re:   regexp.MustCompile(`^(?P<actor>.+?) attacks\. (?P<target>.+?) absorbs? all the damage\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSwingMissed,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  event.Missed{MissType: "ABSORB"},
			}
		},
	},
	{
		name: "swing_miss",
		re:   regexp.MustCompile(`^(?P<actor>.+?) miss(?:es)? (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindSwingMissed,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  event.Missed{MissType: "MISS"},
			}
		},
	},
	{
		name: "interrupt",
		re:   regexp.MustCompile(`^(?P<actor>.+?) interrupts (?P<target>.+?)'s (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindInterrupt,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  event.Interrupt{Interrupted: event.Spell{Name: c.s("spell")}},
			}
		},
	},
	{
		name: "dispelled",
		re:   regexp.MustCompile(`^(?:(?P<target>.+?)'s|Your) (?P<spell>.+?) is dispelled\.$`),
		fn: func(c capture) event.Event {
			target := c.s("target")
			if target == "" {
				target = "you"
			}
			return event.Event{
				Kind:   event.KindAuraDispelled,
				Target: target,
				Extra:  event.Dispel{Removed: event.Spell{Name: c.s("spell")}},
			}
		},
	},
	{
		name: "cast_failed",
		re:   regexp.MustCompile(`^(?P<actor>.+?) fails to cast (?P<spell>.+?): (?P<reason>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:  event.KindCastFailed,
				Actor: c.s("actor"),
				Extra: event.CastFailed{Spell: event.Spell{Name: c.s("spell")}, Reason: c.s("reason")},
			}
		},
	},
	{
		name: "cast_start",
		re:   regexp.MustCompile(`^(?P<actor>.+?) begins to cast (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:  event.KindCastStart,
				Actor: c.s("actor"),
				Extra: event.Cast{Spell: event.Spell{Name: c.s("spell")}},
			}
		},
	},
	{
		name: "cast_success_target",
		re:   regexp.MustCompile(`^(?P<actor>.+?) casts (?P<spell>.+?) on (?P<target>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindCastSuccess,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  event.Cast{Spell: event.Spell{Name: c.s("spell")}},
			}
		},
	},
	{
		name: "cast_success",
		re:   regexp.MustCompile(`^(?P<actor>.+?) casts (?P<spell>.+?)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:  event.KindCastSuccess,
				Actor: c.s("actor"),
				Extra: event.Cast{Spell: event.Spell{Name: c.s("spell")}},
			}
		},
	},
	{
		name: "instakill",
		re:   regexp.MustCompile(`^(?P<target>.+?) is slain by (?P<actor>.+?)!$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindInstakill,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  event.Cast{},
			}
		},
	},
	{
		name: "death",
		re:   regexp.MustCompile(`^(?P<target>.+?) (?:dies|die)\.$`),
		fn: func(c capture) event.Event {
			return event.Event{Kind: event.KindUnitDied, Target: c.s("target")}
		},
	},
	{
		name: "destroyed",
		re:   regexp.MustCompile(`^(?P<target>.+?) is destroyed\.$`),
		fn: func(c capture) event.Event {
			return event.Event{Kind: event.KindUnitDestroyed, Target: c.s("target")}
		},
	},
	{
		name: "fall_damage",
		re:   regexp.MustCompile(`^(?P<target>.+?) falls and loses (?P<amt>\d+) health\.$`),
		fn: func(c capture) event.Event {
			return event.Event{
				Kind:   event.KindEnvironmental,
				Target: c.s("target"),
				Extra: event.Environmental{
					EnvType: "FALLING",
					Damage:  event.Damage{Amount: c.n("amt"), School: event.SchoolPhysical},
				},
			}
		},
	},
	{
		// Best-effort rule; the exact wording of this line is not pinned
		// down by any log we have seen. TODO: confirm against a capture
		// that actually contains one.
		name: "causes_damage",
		re:   regexp.MustCompile(`^(?P<actor>.+?) causes (?P<target>.+?) (?P<amt>\d+) damage\.(?P<mods>.*)$`),
		fn: func(c capture) event.Event {
			dmg := event.Damage{Amount: c.n("amt")}
			parseModifiers(c.s("mods"), &dmg)
			return event.Event{
				Kind:   event.KindSpellDamage,
				Actor:  c.s("actor"),
				Target: c.s("target"),
				Extra:  dmg,
			}
		},
	},
}
