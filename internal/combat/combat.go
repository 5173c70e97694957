// Package combat resolves attacks between empires. The win decision is a
// pure threshold on offense vs defense; only loss magnitudes draw from the
// run's random source.
package combat

import (
	"errors"
	"math"

	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

// AttackType selects which units march.
type AttackType uint8

const (
	// AttackStandard sends every military kind and can capture buildings.
	AttackStandard AttackType = iota
	// Single-kind attacks raze instead of capturing and lose less.
	AttackGuerrilla // infantry
	AttackSiege     // armor
	AttackAirStrike // fliers
	AttackBlockade  // ships
)

// AttackTypes lists every attack type in canonical order.
var AttackTypes = []AttackType{AttackStandard, AttackGuerrilla, AttackSiege, AttackAirStrike, AttackBlockade}

// AttackName returns the display name for an attack type.
func AttackName(a AttackType) string {
	switch a {
	case AttackStandard:
		return "standard assault"
	case AttackGuerrilla:
		return "guerrilla strike"
	case AttackSiege:
		return "siege"
	case AttackAirStrike:
		return "air strike"
	case AttackBlockade:
		return "blockade"
	default:
		return "unknown"
	}
}

// SingleUnit returns the unit kind behind a single-kind attack type.
func SingleUnit(a AttackType) (empire.UnitType, bool) {
	switch a {
	case AttackGuerrilla:
		return empire.UnitInfantry, true
	case AttackSiege:
		return empire.UnitArmor, true
	case AttackAirStrike:
		return empire.UnitFliers, true
	case AttackBlockade:
		return empire.UnitShips, true
	default:
		return 0, false
	}
}

// Resolution constants.
const (
	TurnCost = 2

	winThreshold = 1.05

	standardLossBase = 0.10
	singleLossBase   = 0.06
	maxPowerRatio    = 4.0

	standardHealthCost = 8
	singleHealthCost   = 5

	towerDefense = 30

	captureShare  = 0.70 // share of destroyed buildings captured intact
	freeLandShare = 0.10 // defender unused land taken on a win
)

// destroyRate is the per-building-kind share destroyed by a winning
// standard attack.
var destroyRate = map[empire.BuildingType]float64{
	empire.BuildHomes:     0.08,
	empire.BuildFarms:     0.07,
	empire.BuildMarkets:   0.07,
	empire.BuildFactories: 0.06,
	empire.BuildTowers:    0.05,
}

// razeRate is the per-building-kind share razed by a winning single-kind
// attack. Razed buildings become attacker land, never captured intact.
var razeRate = map[empire.BuildingType]float64{
	empire.BuildHomes:     0.06,
	empire.BuildFarms:     0.05,
	empire.BuildMarkets:   0.05,
	empire.BuildFactories: 0.04,
	empire.BuildTowers:    0.03,
}

var (
	ErrNoTurns         = errors.New("combat: not enough turns")
	ErrEraMismatch     = errors.New("combat: target in another era and no transit gate")
	ErrTargetProtected = errors.New("combat: target is protected")
	ErrNoUnits         = errors.New("combat: no units of that kind to send")
)

// OffensePower computes attack power for the given attack type: per-unit
// weighted sums for the attacker's era, scaled by offense modifiers and
// health, with attack-count and missing-health adjustments.
func OffensePower(e *empire.Empire, a AttackType) float64 {
	power := 0.0
	if u, ok := SingleUnit(a); ok {
		power = float64(e.Troops.Count(u)) * empire.OffenseWeight(e.Era, u)
	} else {
		for _, u := range empire.MilitaryTypes {
			power += float64(e.Troops.Count(u)) * empire.OffenseWeight(e.Era, u)
		}
	}
	power *= 1 + e.Mod(empire.StatOffense)
	power *= e.HealthFrac()
	power *= 1 + e.AttackFocus()*float64(e.AttacksThisRound)
	power *= 1 + e.Berserk*(1-e.HealthFrac())
	return power
}

// DefensePower computes defense power: every unit kind weighted for the
// defender's era plus a flat bonus per tower, scaled by defense modifiers
// and health.
func DefensePower(e *empire.Empire) float64 {
	power := 0.0
	for _, u := range []empire.UnitType{
		empire.UnitInfantry, empire.UnitArmor, empire.UnitFliers, empire.UnitShips, empire.UnitMages,
	} {
		power += float64(e.Troops.Count(u)) * empire.DefenseWeight(e.Era, u)
	}
	power += float64(e.Buildings.Towers) * towerDefense
	power *= 1 + e.Mod(empire.StatDefense)
	power *= e.HealthFrac()
	return power
}

// Report describes one resolved battle.
type Report struct {
	Type    AttackType
	Win     bool
	Offense float64
	Defense float64

	AttackerLosses empire.Troops
	DefenderLosses empire.Troops

	Destroyed empire.Buildings // defender buildings lost
	Captured  empire.Buildings // subset transferred to the attacker
	LandTaken int              // total land transferred to the attacker
}

// Result pairs the pre-combat economic processing with the battle report.
// Report is nil when an emergency aborted the attack before combat.
type Result struct {
	Econ   economy.Result
	Report *Report
}

// Attack runs a full attack action: validation, two turns of ordinary
// economic processing, then battle resolution. An emergency during the
// economic turns aborts the attack with no combat and no health cost.
func Attack(att, def *empire.Empire, a AttackType, round int, rng *prng.Source) (Result, error) {
	if att.Turns < TurnCost {
		return Result{}, ErrNoTurns
	}
	if def.Protected(round) {
		return Result{}, ErrTargetProtected
	}
	if att.Era != def.Era && !att.Gated(round) {
		return Result{}, ErrEraMismatch
	}
	if u, ok := SingleUnit(a); ok && att.Troops.Count(u) == 0 {
		return Result{}, ErrNoUnits
	}
	if a == AttackStandard && att.Troops.Military() == 0 {
		return Result{}, ErrNoUnits
	}

	econ, err := economy.RunTurns(att, TurnCost, economy.FocusNone)
	if err != nil {
		return Result{}, err
	}
	if econ.Stopped() {
		return Result{Econ: econ}, nil
	}

	rep := resolve(att, def, a, rng)
	return Result{Econ: econ, Report: &rep}, nil
}

func resolve(att, def *empire.Empire, a AttackType, rng *prng.Source) Report {
	rep := Report{
		Type:    a,
		Offense: OffensePower(att, a),
		Defense: DefensePower(def),
	}
	rep.Win = rep.Offense > rep.Defense*winThreshold

	att.AttacksMade++
	att.AttacksThisRound++

	lossBase := standardLossBase
	healthCost := standardHealthCost
	if _, single := SingleUnit(a); single {
		lossBase = singleLossBase
		healthCost = singleHealthCost
	}
	att.AdjustHealth(-healthCost)

	// Loss ceilings scale with the square root of the opposing power
	// ratio, capped so a lopsided battle never wipes a side in one blow.
	attCeiling := lossBase * math.Sqrt(ratio(rep.Defense, rep.Offense))
	defCeiling := lossBase * math.Sqrt(ratio(rep.Offense, rep.Defense))

	// Attacker losses hit only the units that marched.
	if u, single := SingleUnit(a); single {
		applyLoss(&att.Troops, &rep.AttackerLosses, u, attCeiling, rng)
	} else {
		for _, u := range empire.MilitaryTypes {
			applyLoss(&att.Troops, &rep.AttackerLosses, u, attCeiling, rng)
		}
	}

	// Defender losses hit everything that defends, mages included.
	for _, u := range []empire.UnitType{
		empire.UnitInfantry, empire.UnitArmor, empire.UnitFliers, empire.UnitShips, empire.UnitMages,
	} {
		applyLoss(&def.Troops, &rep.DefenderLosses, u, defCeiling, rng)
	}

	if !rep.Win {
		att.AttacksLost++
		def.DefensesWon++
		return rep
	}

	if _, single := SingleUnit(a); single {
		razeBuildings(att, def, &rep)
	} else {
		captureBuildings(att, def, &rep)
	}

	// A share of the defender's unused land always changes hands.
	taken := int(float64(def.Resources.FreeLand) * freeLandShare)
	def.Resources.FreeLand -= taken
	def.Resources.Land -= taken
	att.Resources.Land += taken
	att.Resources.FreeLand += taken
	rep.LandTaken += taken

	return rep
}

// captureBuildings applies the standard-attack outcome: a fixed share of
// each building kind is destroyed, and most of the destruction is
// captured intact along with its land. Uncaptured rubble reverts to
// defender free land.
func captureBuildings(att, def *empire.Empire, rep *Report) {
	for _, t := range empire.BuildingTypes {
		destroyed := int(float64(def.Buildings.Count(t)) * destroyRate[t])
		if destroyed == 0 {
			continue
		}
		captured := int(float64(destroyed) * captureShare)

		def.Buildings.Add(t, -destroyed)
		def.Resources.FreeLand += destroyed - captured
		def.Resources.Land -= captured

		att.Buildings.Add(t, captured)
		att.Resources.Land += captured

		rep.Destroyed.Add(t, destroyed)
		rep.Captured.Add(t, captured)
		rep.LandTaken += captured
	}
}

// razeBuildings applies the single-kind outcome: a smaller share of each
// building kind is razed into plain land that transfers to the attacker.
func razeBuildings(att, def *empire.Empire, rep *Report) {
	for _, t := range empire.BuildingTypes {
		razed := int(float64(def.Buildings.Count(t)) * razeRate[t])
		if razed == 0 {
			continue
		}
		def.Buildings.Add(t, -razed)
		def.Resources.Land -= razed

		att.Resources.Land += razed
		att.Resources.FreeLand += razed

		rep.Destroyed.Add(t, razed)
		rep.LandTaken += razed
	}
}

func applyLoss(troops *empire.Troops, losses *empire.Troops, u empire.UnitType, ceiling float64, rng *prng.Source) {
	count := troops.Count(u)
	if count == 0 {
		// Still draw so the cursor advances identically regardless of
		// composition.
		rng.Float64()
		return
	}
	lost := int(float64(count) * rng.Float64() * ceiling)
	troops.Add(u, -lost)
	losses.Add(u, lost)
}

// ratio caps a power ratio so sqrt scaling stays bounded. A zero
// denominator counts as maximally lopsided.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return maxPowerRatio
	}
	return math.Min(num/den, maxPowerRatio)
}
