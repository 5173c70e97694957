// Package economy provides the per-turn simulation formulas: income,
// expenses, food, energy, troop production, population growth and health
// regeneration. Multi-turn actions run these formulas once per turn and
// stop early on starvation or a loan emergency.
package economy

import (
	"math"

	"github.com/blake365/promisance-rogue-sub000/internal/bank"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

// TurnsPerRound is the player phase turn budget and the divisor for
// per-round interest rates.
const TurnsPerRound = 30

// Focus marks which formula a turn action boosts by 25%.
type Focus uint8

const (
	FocusNone Focus = iota
	FocusFarm
	FocusCash
	FocusIndustry
	FocusMeditate
)

const focusBonus = 1.25

// Core formula constants.
const (
	perCapitaIncome = 0.55
	marketIncome    = 450
	landUpkeep      = 0.12
	expenseCap      = 0.50 // max expense reduction

	landFoodRate   = 0.0667
	farmFood       = 85
	farmSaturation = 0.75

	popFoodRate      = 0.01
	militaryFoodRate = 0.05
	mageFoodRate     = 0.25

	towerEnergy   = 12
	magesPerTower = 25

	factoryOutput = 2.5

	homeCapacity = 60
	landCapacity = 4
	popGrowth    = 0.02

	healthRegen = 2

	desertionRate = 0.03
)

// unitUpkeep is the per-turn gold cost of each unit kind.
var unitUpkeep = map[empire.UnitType]float64{
	empire.UnitInfantry: 1.0,
	empire.UnitArmor:    2.5,
	empire.UnitFliers:   3.0,
	empire.UnitShips:    3.5,
	empire.UnitMages:    0.5,
}

// prodMultiplier scales factory output per military kind.
var prodMultiplier = map[empire.UnitType]float64{
	empire.UnitInfantry: 1.2,
	empire.UnitArmor:    0.6,
	empire.UnitFliers:   0.45,
	empire.UnitShips:    0.4,
}

// sizeBonus returns the income divisor for a net-worth tier. Larger
// empires earn proportionally less per market.
func sizeBonus(netWorth int) float64 {
	switch {
	case netWorth < 100_000:
		return 1.0
	case netWorth < 300_000:
		return 1.1
	case netWorth < 600_000:
		return 1.2
	case netWorth < 1_000_000:
		return 1.3
	case netWorth < 2_000_000:
		return 1.45
	case netWorth < 4_000_000:
		return 1.6
	default:
		return 1.7
	}
}

// Income returns one turn of income: per-capita income scaled by tax rate,
// health and population, plus market buildings, divided by the size bonus
// and scaled by income modifiers.
func Income(e *empire.Empire, focus Focus) int {
	base := float64(e.Population) * perCapitaIncome *
		(float64(e.TaxRate) / 100) * e.HealthFrac()
	base += float64(e.Buildings.Markets) * marketIncome
	base /= sizeBonus(e.NetWorth())
	base *= 1 + e.Mod(empire.StatIncome)
	if focus == FocusCash {
		base *= focusBonus
	}
	return int(math.Floor(math.Max(0, base)))
}

// Expenses returns one turn of running costs: unit upkeep plus land
// upkeep, reduced by expense modifiers capped at 50%.
func Expenses(e *empire.Empire) int {
	total := 0.0
	for u, cost := range unitUpkeep {
		total += float64(e.Troops.Count(u)) * cost
	}
	total += float64(e.Resources.Land) * landUpkeep

	mult := 1 + e.Mod(empire.StatExpenses) + e.Mod(empire.StatUpkeep)
	mult = empire.Clamp(mult, 1-expenseCap, 2.0)
	return int(math.Floor(total * mult))
}

// FoodProduction returns one turn of food output: a land-proportional
// baseline plus farm output with square-root falloff once farms cover
// more than 75% of the land.
func FoodProduction(e *empire.Empire, focus Focus) int {
	falloff := 1.0
	if e.Resources.Land > 0 {
		density := float64(e.Buildings.Farms) / float64(e.Resources.Land)
		if density > farmSaturation {
			falloff = math.Sqrt(farmSaturation / density)
		}
	}
	prod := float64(e.Resources.Land)*landFoodRate +
		float64(e.Buildings.Farms)*farmFood*falloff
	prod *= 1 + e.Mod(empire.StatFood)
	if focus == FocusFarm {
		prod *= focusBonus
	}
	return int(math.Floor(math.Max(0, prod)))
}

// FoodConsumption returns one turn of food eaten by population and units.
func FoodConsumption(e *empire.Empire) int {
	c := float64(e.Population)*popFoodRate +
		float64(e.Troops.Military())*militaryFoodRate +
		float64(e.Troops.Mages)*mageFoodRate
	return int(math.Ceil(c))
}

// EnergyProduction returns one turn of magical energy from towers.
func EnergyProduction(e *empire.Empire, focus Focus) int {
	prod := float64(e.Buildings.Towers) * towerEnergy
	prod *= 1 + e.Mod(empire.StatEnergy)
	if focus == FocusMeditate {
		prod *= focusBonus
	}
	return int(math.Floor(math.Max(0, prod)))
}

// MageCapacity returns how many mages the empire's towers can house.
func MageCapacity(e *empire.Empire) int {
	return e.Buildings.Towers * magesPerTower
}

// produceTroops adds one turn of factory output split across the industry
// allocation, returning what was produced.
func produceTroops(e *empire.Empire, focus Focus) empire.Troops {
	base := float64(e.Buildings.Factories) * factoryOutput
	base *= 1 + e.Mod(empire.StatIndustry)
	if focus == FocusIndustry {
		base *= focusBonus
	}

	var made empire.Troops
	for _, u := range empire.MilitaryTypes {
		n := int(math.Floor(base * float64(e.Alloc.Share(u)) / 100 * prodMultiplier[u]))
		if n > 0 {
			made.Add(u, n)
			e.Troops.Add(u, n)
		}
	}
	return made
}

// growPopulation moves population 2% per turn toward the housing cap.
func growPopulation(e *empire.Empire) {
	capacity := float64(e.Buildings.Homes*homeCapacity + e.Resources.Land*landCapacity)
	capacity *= 1 + e.Mod(empire.StatPopulation)

	pop := float64(e.Population)
	switch {
	case pop < capacity:
		gain := int(math.Max(1, pop*popGrowth))
		e.Population = min(e.Population+gain, int(capacity))
	case pop > capacity:
		loss := int(math.Max(1, pop*popGrowth))
		e.Population = max(e.Population-loss, int(capacity))
	}
}

// Delta reports what one processed turn changed.
type Delta struct {
	Income   int
	Expenses int
	Food     int
	Energy   int
	Produced empire.Troops
}

// ProcessTurn applies one full turn of economic processing to the empire:
// income and expenses (negative treasury converts to debt), food balance,
// energy, troop production, population growth, health regeneration and
// bank interest. Food may go negative here; multi-turn actions decide
// whether that halts the sequence.
func ProcessTurn(e *empire.Empire, focus Focus) Delta {
	d := Delta{
		Income:   Income(e, focus),
		Expenses: Expenses(e),
		Food:     FoodProduction(e, focus) - FoodConsumption(e),
		Energy:   EnergyProduction(e, focus),
	}

	e.Resources.Treasury += d.Income - d.Expenses
	if e.Resources.Treasury < 0 {
		e.Debt += -e.Resources.Treasury
		e.Resources.Treasury = 0
	}

	e.Resources.Food += d.Food
	e.Resources.Energy += d.Energy

	d.Produced = produceTroops(e, focus)
	growPopulation(e)
	e.AdjustHealth(healthRegen)
	bank.Accrue(e, TurnsPerRound)

	return d
}

// Desert applies 3% desertion to population and every unit kind. Called
// when starvation halts an action.
func Desert(e *empire.Empire) {
	e.Population -= e.Population * 3 / 100
	e.Troops.Infantry -= e.Troops.Infantry * 3 / 100
	e.Troops.Armor -= e.Troops.Armor * 3 / 100
	e.Troops.Fliers -= e.Troops.Fliers * 3 / 100
	e.Troops.Ships -= e.Troops.Ships * 3 / 100
	e.Troops.Mages -= e.Troops.Mages * 3 / 100
}
