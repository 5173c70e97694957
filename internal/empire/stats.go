// Stat taxonomy shared by race, era, archetype and bonus modifiers.
// Every percentage modifier in the game targets exactly one Stat, and
// stacking is always "sum the fractions for the same stat".
package empire

// Stat enumerates the twelve modifiable formula inputs.
type Stat uint8

const (
	StatOffense Stat = iota
	StatDefense
	StatIncome
	StatExpenses
	StatFood
	StatIndustry
	StatEnergy
	StatExplore
	StatMarket
	StatBuild
	StatUpkeep
	StatPopulation
)

// Stats lists every stat in canonical order.
var Stats = []Stat{
	StatOffense, StatDefense, StatIncome, StatExpenses, StatFood, StatIndustry,
	StatEnergy, StatExplore, StatMarket, StatBuild, StatUpkeep, StatPopulation,
}

// StatName returns the display name for a stat.
func StatName(s Stat) string {
	switch s {
	case StatOffense:
		return "offense"
	case StatDefense:
		return "defense"
	case StatIncome:
		return "income"
	case StatExpenses:
		return "expenses"
	case StatFood:
		return "food"
	case StatIndustry:
		return "industry"
	case StatEnergy:
		return "energy"
	case StatExplore:
		return "explore"
	case StatMarket:
		return "market"
	case StatBuild:
		return "build"
	case StatUpkeep:
		return "upkeep"
	case StatPopulation:
		return "population"
	default:
		return "unknown"
	}
}

// Mod returns the empire's summed fractional modifier for a stat:
// race plus era plus innate archetype bonus plus every owned bonus that
// targets the stat. Formulas apply it as (1 + Mod).
func (e *Empire) Mod(s Stat) float64 {
	m := raceMods[e.Race][s] + eraMods[e.Era][s]
	if e.InnateMods != nil {
		m += e.InnateMods[s]
	}
	for _, b := range e.Bonuses {
		if b.Effect.Kind == EffectStatMod && b.Effect.Stat == s {
			m += b.Effect.Amount
		}
	}
	return m
}
