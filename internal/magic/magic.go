// Package magic provides the spell engine: cost and threshold math layered
// on the economy, self buffs, and offensive spells resolved by caster
// power ratios.
package magic

import (
	"errors"
	"math"

	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

// SpellID enumerates every castable spell.
type SpellID uint8

const (
	SpellShield SpellID = iota
	SpellGate
	SpellCornucopia
	SpellMidas
	SpellEraShift
	SpellBlast
	SpellSteal
	SpellStorm
	SpellQuake
	SpellScry
	SpellDuel
)

// Spell describes one catalog entry. Threshold is the minimum caster power
// ratio for enemy spells; zero marks a self spell.
type Spell struct {
	ID        SpellID
	Name      string
	CostRatio float64
	Enemy     bool
	Threshold float64
}

// Catalog maps every spell ID to its definition.
var Catalog = map[SpellID]Spell{
	SpellShield:     {SpellShield, "shield", 1.0, false, 0},
	SpellGate:       {SpellGate, "transit gate", 1.5, false, 0},
	SpellCornucopia: {SpellCornucopia, "cornucopia", 0.8, false, 0},
	SpellMidas:      {SpellMidas, "midas touch", 1.2, false, 0},
	SpellEraShift:   {SpellEraShift, "era shift", 2.5, false, 0},
	SpellBlast:      {SpellBlast, "mystic blast", 1.0, true, 1.2},
	SpellSteal:      {SpellSteal, "phantom hand", 1.3, true, 1.5},
	SpellStorm:      {SpellStorm, "fire storm", 1.6, true, 1.7},
	SpellQuake:      {SpellQuake, "earthquake", 2.0, true, 2.0},
	SpellScry:       {SpellScry, "scrying eye", 0.6, true, 1.0},
	SpellDuel:       {SpellDuel, "mage duel", 1.8, true, 1.3},
}

// Casting constants.
const (
	TurnCost = 2

	enemyHealthCost = 3
	minCastHealth   = 10

	eraShiftCooldown = 2 // rounds between era changes

	shieldDiscount = 0.5 // shield halves destructive enemy spells
	reconExpiry    = 3   // rounds a scrying snapshot stays fresh
)

var (
	ErrUnknownSpell    = errors.New("magic: unknown spell")
	ErrNoTurns         = errors.New("magic: not enough turns")
	ErrNoEnergy        = errors.New("magic: not enough energy")
	ErrNoMages         = errors.New("magic: no mages")
	ErrLowHealth       = errors.New("magic: health too low to cast")
	ErrEraCooldown     = errors.New("magic: era changed too recently")
	ErrTargetProtected = errors.New("magic: target is protected")
	ErrNeedsTarget     = errors.New("magic: spell requires a target")
	ErrSelfOnly        = errors.New("magic: spell cannot target an enemy")
)

// Cost returns the energy cost of a spell for this caster: a land and
// tower scaled base times the per-spell ratio, reduced by owned spell cost
// bonuses, never below 1.
func Cost(e *empire.Empire, id SpellID) int {
	sp := Catalog[id]
	base := float64(e.Resources.Land)*0.10 + float64(e.Buildings.Towers)*2
	base *= sp.CostRatio
	base *= 1 - e.SpellCostMod()
	return int(math.Max(1, math.Floor(base)))
}

// casterPower is the modifier-scaled caster density used on both sides of
// an enemy spell.
func casterPower(e *empire.Empire) float64 {
	if e.Resources.Land == 0 {
		return 0
	}
	return float64(e.Troops.Mages) / float64(e.Resources.Land) * (1 + e.Mod(empire.StatEnergy))
}

// PowerRatio returns caster power attacker vs defender, capped at 10. A
// defender with no casters is maximally exposed.
func PowerRatio(att, def *empire.Empire) float64 {
	dp := casterPower(def)
	if dp <= 0 {
		return 10
	}
	return math.Min(casterPower(att)/dp, 10)
}

// Recon is the snapshot a scrying spell captures. FreshUntil is the last
// round the intelligence is still considered current.
type Recon struct {
	Round      int               `json:"round"`
	FreshUntil int               `json:"fresh_until"`
	Era        empire.Era        `json:"era"`
	Land       int               `json:"land"`
	NetWorth   int               `json:"net_worth"`
	Health     int               `json:"health"`
	Treasury   int               `json:"treasury"`
	Food       int               `json:"food"`
	Troops     empire.Troops     `json:"troops"`
	Buildings  empire.Buildings  `json:"buildings"`
}

// Report describes one resolved cast.
type Report struct {
	Spell   SpellID
	Success bool // false = enemy spell failed its threshold

	MagesLost int // caster mages lost to a failed enemy spell or duel

	FoodGained    int
	GoldGained    int
	GoldStolen    int
	FoodDestroyed int
	GoldDestroyed int
	LandTaken     int

	TroopsKilled   empire.Troops
	BuildingsRazed empire.Buildings

	Snapshot *Recon
}

// Result pairs the economic processing of the casting turns with the
// spell report. Report is nil when an emergency aborted the cast.
type Result struct {
	Econ   economy.Result
	Report *Report
}

// Cast casts a spell. def must be nil for self spells and non-nil for
// enemy spells. Era shifts go through ShiftEra instead.
func Cast(att, def *empire.Empire, id SpellID, round int, rng *prng.Source) (Result, error) {
	sp, ok := Catalog[id]
	if !ok || id == SpellEraShift {
		if !ok {
			return Result{}, ErrUnknownSpell
		}
		return Result{}, ErrSelfOnly
	}
	if sp.Enemy && def == nil {
		return Result{}, ErrNeedsTarget
	}
	if !sp.Enemy && def != nil {
		return Result{}, ErrSelfOnly
	}
	if err := validate(att, id); err != nil {
		return Result{}, err
	}
	if sp.Enemy && def.Protected(round) {
		return Result{}, ErrTargetProtected
	}

	cost := Cost(att, id)

	econ, err := economy.RunTurns(att, TurnCost, economy.FocusNone)
	if err != nil {
		return Result{}, err
	}
	if econ.Stopped() {
		return Result{Econ: econ}, nil
	}

	att.Resources.Energy -= cost
	if att.Resources.Energy < 0 {
		att.Resources.Energy = 0
	}
	att.SpellsThisRound++

	rep := Report{Spell: id, Success: true}
	if sp.Enemy {
		att.AdjustHealth(-enemyHealthCost)
		resolveEnemy(att, def, sp, round, rng, &rep)
	} else {
		resolveSelf(att, id, round, &rep)
	}
	return Result{Econ: econ, Report: &rep}, nil
}

// ShiftEra casts the era shift spell, moving the caster to another era.
// A repeat shift within the cooldown window is rejected.
func ShiftEra(e *empire.Empire, to empire.Era, round int, rng *prng.Source) (Result, error) {
	if to == e.Era {
		return Result{}, ErrUnknownSpell
	}
	if e.EraShiftRound != 0 && round-e.EraShiftRound < eraShiftCooldown {
		return Result{}, ErrEraCooldown
	}
	if err := validate(e, SpellEraShift); err != nil {
		return Result{}, err
	}

	cost := Cost(e, SpellEraShift)
	econ, err := economy.RunTurns(e, TurnCost, economy.FocusNone)
	if err != nil {
		return Result{}, err
	}
	if econ.Stopped() {
		return Result{Econ: econ}, nil
	}

	e.Resources.Energy -= cost
	if e.Resources.Energy < 0 {
		e.Resources.Energy = 0
	}
	e.Era = to
	e.EraShiftRound = round
	e.SpellsThisRound++
	return Result{Econ: econ, Report: &Report{Spell: SpellEraShift, Success: true}}, nil
}

func validate(e *empire.Empire, id SpellID) error {
	if e.Turns < TurnCost {
		return ErrNoTurns
	}
	if e.Troops.Mages == 0 {
		return ErrNoMages
	}
	if e.Health < minCastHealth {
		return ErrLowHealth
	}
	if e.Resources.Energy < Cost(e, id) {
		return ErrNoEnergy
	}
	return nil
}

func resolveSelf(e *empire.Empire, id SpellID, round int, rep *Report) {
	power := float64(e.Troops.Mages) * (1 + e.Mod(empire.StatEnergy))
	switch id {
	case SpellShield:
		e.Effects.ShieldUntil = round + 1
	case SpellGate:
		e.Effects.GateUntil = round + 1
	case SpellCornucopia:
		rep.FoodGained = 1000 + int(power*8)
		e.Resources.Food += rep.FoodGained
	case SpellMidas:
		rep.GoldGained = 2500 + int(power*20)
		e.Resources.Treasury += rep.GoldGained
	}
}

func resolveEnemy(att, def *empire.Empire, sp Spell, round int, rng *prng.Source, rep *Report) {
	if PowerRatio(att, def) < sp.Threshold {
		// The spell fizzles and consumes a small share of the casters.
		rep.Success = false
		rep.MagesLost = att.Troops.Mages * rng.Range(1, 5) / 100
		att.Troops.Add(empire.UnitMages, -rep.MagesLost)
		return
	}

	discount := 1.0
	if def.Shielded(round) {
		discount = shieldDiscount
	}

	switch sp.ID {
	case SpellBlast:
		pct := rng.Range(1, 3)
		for _, u := range []empire.UnitType{
			empire.UnitInfantry, empire.UnitArmor, empire.UnitFliers, empire.UnitShips, empire.UnitMages,
		} {
			lost := int(float64(def.Troops.Count(u)*pct) / 100 * discount)
			def.Troops.Add(u, -lost)
			rep.TroopsKilled.Add(u, lost)
		}

	case SpellSteal:
		pct := rng.Range(5, 10)
		rep.GoldStolen = int(float64(def.Resources.Treasury*pct) / 100 * discount)
		def.Resources.Treasury -= rep.GoldStolen
		att.Resources.Treasury += rep.GoldStolen

	case SpellStorm:
		rep.FoodDestroyed = int(float64(def.Resources.Food) * 0.08 * discount)
		rep.GoldDestroyed = int(float64(def.Resources.Treasury) * 0.06 * discount)
		def.Resources.Food -= rep.FoodDestroyed
		def.Resources.Treasury -= rep.GoldDestroyed

	case SpellQuake:
		for _, t := range empire.BuildingTypes {
			razed := int(float64(def.Buildings.Count(t)) * 0.03 * discount)
			if razed == 0 {
				continue
			}
			def.Buildings.Add(t, -razed)
			def.Resources.FreeLand += razed
			rep.BuildingsRazed.Add(t, razed)
		}

	case SpellScry:
		rep.Snapshot = &Recon{
			Round:      round,
			FreshUntil: round + reconExpiry,
			Era:        def.Era,
			Land:       def.Resources.Land,
			NetWorth:   def.NetWorth(),
			Health:     def.Health,
			Treasury:   def.Resources.Treasury,
			Food:       def.Resources.Food,
			Troops:     def.Troops,
			Buildings:  def.Buildings,
		}

	case SpellDuel:
		attScore := casterPower(att) * (0.8 + 0.4*rng.Float64())
		defScore := casterPower(def) * (0.8 + 0.4*rng.Float64())
		if attScore > defScore {
			taken := min(def.Resources.FreeLand, def.Resources.Land*2/100)
			def.Resources.FreeLand -= taken
			def.Resources.Land -= taken
			att.Resources.Land += taken
			att.Resources.FreeLand += taken
			rep.LandTaken = taken

			lost := def.Troops.Mages * 5 / 100
			def.Troops.Add(empire.UnitMages, -lost)
			rep.TroopsKilled.Add(empire.UnitMages, lost)
		} else {
			rep.Success = false
			rep.MagesLost = att.Troops.Mages * 5 / 100
			att.Troops.Add(empire.UnitMages, -rep.MagesLost)
		}
	}
}
