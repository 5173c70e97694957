// Package empire provides the entity model: one faction's full simulated
// state plus the derived values (net worth, stat modifiers) every engine
// reads. Empires are plain mutable values owned by a single run.
package empire

import (
	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// BuildingType enumerates the five building kinds.
type BuildingType uint8

const (
	BuildHomes BuildingType = iota
	BuildFarms
	BuildMarkets
	BuildFactories
	BuildTowers
)

// BuildingTypes lists all kinds in canonical order.
var BuildingTypes = []BuildingType{BuildHomes, BuildFarms, BuildMarkets, BuildFactories, BuildTowers}

// BuildingName returns the display name for a building kind.
func BuildingName(b BuildingType) string {
	switch b {
	case BuildHomes:
		return "homes"
	case BuildFarms:
		return "farms"
	case BuildMarkets:
		return "markets"
	case BuildFactories:
		return "factories"
	case BuildTowers:
		return "towers"
	default:
		return "unknown"
	}
}

// UnitType enumerates the four military kinds plus the caster kind.
type UnitType uint8

const (
	UnitInfantry UnitType = iota
	UnitArmor
	UnitFliers
	UnitShips
	UnitMages
)

// MilitaryTypes lists the four non-caster kinds in canonical order.
var MilitaryTypes = []UnitType{UnitInfantry, UnitArmor, UnitFliers, UnitShips}

// UnitName returns the display name for a unit kind.
func UnitName(u UnitType) string {
	switch u {
	case UnitInfantry:
		return "infantry"
	case UnitArmor:
		return "armor"
	case UnitFliers:
		return "fliers"
	case UnitShips:
		return "ships"
	case UnitMages:
		return "mages"
	default:
		return "unknown"
	}
}

// Resources is an empire's stockpile bundle.
type Resources struct {
	Treasury int `json:"treasury"`
	Food     int `json:"food"`
	Energy   int `json:"energy"`
	Land     int `json:"land"`
	FreeLand int `json:"free_land"`
}

// Buildings counts constructed buildings by kind. Each building occupies
// one unit of land.
type Buildings struct {
	Homes     int `json:"homes"`
	Farms     int `json:"farms"`
	Markets   int `json:"markets"`
	Factories int `json:"factories"`
	Towers    int `json:"towers"`
}

// Total returns the number of constructed buildings.
func (b Buildings) Total() int {
	return b.Homes + b.Farms + b.Markets + b.Factories + b.Towers
}

// Count returns the count for one kind.
func (b Buildings) Count(t BuildingType) int {
	switch t {
	case BuildHomes:
		return b.Homes
	case BuildFarms:
		return b.Farms
	case BuildMarkets:
		return b.Markets
	case BuildFactories:
		return b.Factories
	case BuildTowers:
		return b.Towers
	default:
		return 0
	}
}

// Add adjusts the count for one kind by delta (may be negative).
func (b *Buildings) Add(t BuildingType, delta int) {
	switch t {
	case BuildHomes:
		b.Homes += delta
	case BuildFarms:
		b.Farms += delta
	case BuildMarkets:
		b.Markets += delta
	case BuildFactories:
		b.Factories += delta
	case BuildTowers:
		b.Towers += delta
	}
}

// Troops counts units by kind.
type Troops struct {
	Infantry int `json:"infantry"`
	Armor    int `json:"armor"`
	Fliers   int `json:"fliers"`
	Ships    int `json:"ships"`
	Mages    int `json:"mages"`
}

// Count returns the count for one kind.
func (t Troops) Count(u UnitType) int {
	switch u {
	case UnitInfantry:
		return t.Infantry
	case UnitArmor:
		return t.Armor
	case UnitFliers:
		return t.Fliers
	case UnitShips:
		return t.Ships
	case UnitMages:
		return t.Mages
	default:
		return 0
	}
}

// Add adjusts the count for one kind by delta, flooring at zero.
func (t *Troops) Add(u UnitType, delta int) {
	switch u {
	case UnitInfantry:
		t.Infantry = max(0, t.Infantry+delta)
	case UnitArmor:
		t.Armor = max(0, t.Armor+delta)
	case UnitFliers:
		t.Fliers = max(0, t.Fliers+delta)
	case UnitShips:
		t.Ships = max(0, t.Ships+delta)
	case UnitMages:
		t.Mages = max(0, t.Mages+delta)
	}
}

// Military returns the total non-caster unit count.
func (t Troops) Military() int {
	return t.Infantry + t.Armor + t.Fliers + t.Ships
}

// Allocation splits troop production across the four military kinds.
// The four shares always sum to exactly 100.
type Allocation struct {
	Infantry int `json:"infantry"`
	Armor    int `json:"armor"`
	Fliers   int `json:"fliers"`
	Ships    int `json:"ships"`
}

// Valid reports whether the shares are non-negative and sum to 100.
func (a Allocation) Valid() bool {
	if a.Infantry < 0 || a.Armor < 0 || a.Fliers < 0 || a.Ships < 0 {
		return false
	}
	return a.Infantry+a.Armor+a.Fliers+a.Ships == 100
}

// Share returns the percentage for one military kind.
func (a Allocation) Share(u UnitType) int {
	switch u {
	case UnitInfantry:
		return a.Infantry
	case UnitArmor:
		return a.Armor
	case UnitFliers:
		return a.Fliers
	case UnitShips:
		return a.Ships
	default:
		return 0
	}
}

// Effects holds the timed effects, each expressed as "active through
// round N" (0 = never granted).
type Effects struct {
	ShieldUntil  int `json:"shield_until"`
	GateUntil    int `json:"gate_until"`
	ProtectUntil int `json:"protect_until"`
}

// Empire is one faction's full simulated state.
type Empire struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Race Race      `json:"race"`
	Era  Era       `json:"era"`

	Resources Resources  `json:"resources"`
	Buildings Buildings  `json:"buildings"`
	Troops    Troops     `json:"troops"`
	Alloc     Allocation `json:"alloc"`

	Population int `json:"population"`
	Health     int `json:"health"`   // 0..100
	TaxRate    int `json:"tax_rate"` // 0..100
	Savings    int `json:"savings"`
	Debt       int `json:"debt"`
	Turns      int `json:"turns"`

	Effects Effects `json:"effects"`
	Bonuses []Bonus `json:"bonuses"`

	// Innate percentage modifiers (bot archetypes only), stacked on top
	// of race and era. Fractions, e.g. 0.10 for +10%.
	InnateMods map[Stat]float64 `json:"innate_mods,omitempty"`

	// Berserk scales offense by missing health: offense is multiplied by
	// (1 + Berserk * missing-health fraction). Zero for most empires;
	// set by aggressive archetypes.
	Berserk float64 `json:"berserk,omitempty"`

	// EraShiftRound is the round of the last era change, for the spell
	// cooldown. Zero when the era never changed.
	EraShiftRound int `json:"era_shift_round,omitempty"`

	// Lifetime combat counters.
	AttacksMade int `json:"attacks_made"`
	AttacksLost int `json:"attacks_lost"`
	DefensesWon int `json:"defenses_won"`

	// Per-round counters, reset when the empire's phase begins.
	AttacksThisRound int `json:"attacks_this_round"`
	SpellsThisRound  int `json:"spells_this_round"`
}

// Unit net-worth values, one comparable point scale across kinds.
var unitWorth = map[UnitType]int{
	UnitInfantry: 1,
	UnitArmor:    2,
	UnitFliers:   2,
	UnitShips:    2,
	UnitMages:    2,
}

// NetWorth aggregates treasury, savings, debt, land, food, population and
// troops into one comparable score.
func (e *Empire) NetWorth() int {
	nw := e.Resources.Treasury/50 + e.Savings/50 - e.Debt/50
	nw += e.Resources.Land * 100
	nw += e.Resources.Food / 10
	nw += e.Population * 2
	for u, v := range unitWorth {
		nw += e.Troops.Count(u) * v
	}
	return nw
}

// Shielded reports whether a shield covers the given round.
func (e *Empire) Shielded(round int) bool { return e.Effects.ShieldUntil >= round }

// Gated reports whether a transit gate covers the given round.
func (e *Empire) Gated(round int) bool { return e.Effects.GateUntil >= round }

// Protected reports whether new-run protection covers the given round.
func (e *Empire) Protected(round int) bool { return e.Effects.ProtectUntil >= round }

// HealthFrac returns health as a fraction in [0,1].
func (e *Empire) HealthFrac() float64 { return float64(e.Health) / 100 }

// AdjustHealth applies a health delta, clamping to [0,100].
func (e *Empire) AdjustHealth(delta int) {
	e.Health = Clamp(e.Health+delta, 0, 100)
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
