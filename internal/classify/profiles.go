package classify

import "github.com/halwyn/wowlog-parser/internal/event"

// Profile is one class's behavioral fingerprint: spell names characteristic
// of it, split by how they show up in the log. Auras list self-buffs
// (stances, forms, aspects, seals, armors) because aura events attribute to
// the recipient, not the caster.
type Profile struct {
	Class  string
	Damage []string
	Heals  []string
	Casts  []string
	Auras  []string
}

// PetClass is the fixed class assigned to every inferred pet.
const PetClass = "Pet"

// Profiles is the static fingerprint table the classifier scores against.
var Profiles = []Profile{
	{
		Class:  "Warrior",
		Damage: []string{"Heroic Strike", "Mortal Strike", "Bloodthirst", "Whirlwind", "Execute", "Overpower", "Shield Slam", "Revenge", "Thunder Clap"},
		Casts:  []string{"Charge", "Pummel", "Bloodrage", "Berserker Rage"},
		Auras:  []string{"Battle Stance", "Defensive Stance", "Berserker Stance", "Battle Shout"},
	},
	{
		Class:  "Paladin",
		Damage: []string{"Judgement of Righteousness", "Consecration", "Holy Shield", "Seal of Command", "Hammer of Wrath", "Exorcism"},
		Heals:  []string{"Holy Light", "Flash of Light", "Holy Shock"},
		Casts:  []string{"Cleanse", "Divine Shield", "Hammer of Justice"},
		Auras:  []string{"Seal of Righteousness", "Devotion Aura", "Blessing of Might", "Righteous Fury"},
	},
	{
		Class:  "Hunter",
		Damage: []string{"Auto Shot", "Aimed Shot", "Multi-Shot", "Arcane Shot", "Serpent Sting", "Steady Shot", "Raptor Strike"},
		Heals:  []string{"Mend Pet"},
		Casts:  []string{"Hunter's Mark", "Tame Beast", "Revive Pet", "Feign Death"},
		Auras:  []string{"Aspect of the Hawk", "Aspect of the Cheetah", "Rapid Fire", "Trueshot Aura"},
	},
	{
		Class:  "Rogue",
		Damage: []string{"Sinister Strike", "Backstab", "Eviscerate", "Ambush", "Mutilate", "Hemorrhage", "Rupture"},
		Casts:  []string{"Vanish", "Sprint", "Kick", "Kidney Shot"},
		Auras:  []string{"Slice and Dice", "Stealth", "Blade Flurry", "Adrenaline Rush"},
	},
	{
		Class:  "Priest",
		Damage: []string{"Smite", "Mind Blast", "Shadow Word: Pain", "Mind Flay", "Holy Fire"},
		Heals:  []string{"Flash Heal", "Greater Heal", "Renew", "Prayer of Healing", "Circle of Healing"},
		Casts:  []string{"Power Word: Shield", "Dispel Magic", "Psychic Scream"},
		Auras:  []string{"Power Word: Fortitude", "Inner Fire", "Shadowform"},
	},
	{
		Class:  "Shaman",
		Damage: []string{"Lightning Bolt", "Chain Lightning", "Earth Shock", "Flame Shock", "Stormstrike", "Frost Shock"},
		Heals:  []string{"Healing Wave", "Lesser Healing Wave", "Chain Heal"},
		Casts:  []string{"Windfury Totem", "Mana Spring Totem", "Purge", "Bloodlust"},
		Auras:  []string{"Lightning Shield", "Water Shield", "Windfury Attack"},
	},
	{
		Class:  "Mage",
		Damage: []string{"Fireball", "Frostbolt", "Fire Blast", "Arcane Missiles", "Pyroblast", "Scorch", "Blizzard", "Cone of Cold"},
		Casts:  []string{"Polymorph", "Counterspell", "Evocation", "Blink"},
		Auras:  []string{"Arcane Intellect", "Ice Barrier", "Mage Armor", "Ice Block"},
	},
	{
		Class:  "Warlock",
		Damage: []string{"Shadow Bolt", "Corruption", "Curse of Agony", "Immolate", "Drain Life", "Death Coil", "Hellfire"},
		Casts:  []string{"Fear", "Life Tap", "Health Funnel", "Summon Imp", "Banish"},
		Auras:  []string{"Demon Armor", "Fel Armor", "Demon Skin", "Soul Link"},
	},
	{
		Class:  "Druid",
		Damage: []string{"Wrath", "Starfire", "Moonfire", "Claw", "Rip", "Mangle", "Swipe"},
		Heals:  []string{"Rejuvenation", "Regrowth", "Healing Touch", "Lifebloom", "Swiftmend"},
		Casts:  []string{"Mark of the Wild", "Innervate", "Rebirth", "Entangling Roots"},
		Auras:  []string{"Cat Form", "Bear Form", "Dire Bear Form", "Moonkin Form", "Thorns"},
	},
}

// petRule is one named spell interaction that implies pet ownership in a
// fixed direction, always excluding self-referential actor==target events.
type petRule struct {
	kinds []event.ActionKind
	spell string

	// ownerIsActor: the actor owns the target; otherwise the target owns
	// the actor.
	ownerIsActor bool
}

var petRules = []petRule{
	{kinds: []event.ActionKind{event.KindSpellPeriodicHeal}, spell: "Mend Pet", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindSpellPeriodicHeal}, spell: "Spirit Bond", ownerIsActor: false},
	{kinds: []event.ActionKind{event.KindSpellHeal, event.KindSpellPeriodicHeal}, spell: "Health Funnel", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindSpellEnergize, event.KindSpellDrain}, spell: "Dark Pact", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindCastSuccess}, spell: "Demonic Sacrifice", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindCastSuccess}, spell: "Tame Beast", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindCastSuccess}, spell: "Revive Pet", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindCastSuccess}, spell: "Feed Pet", ownerIsActor: true},
	{kinds: []event.ActionKind{event.KindPeriodicEnergize}, spell: "Go for the Throat", ownerIsActor: false},
}
