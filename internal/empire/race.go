// Race templates. Each race carries static percentage modifiers across the
// twelve stats; Human is the neutral baseline. Values are fractions.
package empire

// Race classifies an empire's people.
type Race uint8

const (
	RaceHuman Race = iota
	RaceElf
	RaceDwarf
	RaceTroll
	RaceGnome
	RaceGremlin
	RaceOrc
	RaceDrow
	RaceGoblin
)

// Races lists every race in canonical order.
var Races = []Race{
	RaceHuman, RaceElf, RaceDwarf, RaceTroll, RaceGnome,
	RaceGremlin, RaceOrc, RaceDrow, RaceGoblin,
}

// RaceName returns the display name for a race.
func RaceName(r Race) string {
	switch r {
	case RaceHuman:
		return "Human"
	case RaceElf:
		return "Elf"
	case RaceDwarf:
		return "Dwarf"
	case RaceTroll:
		return "Troll"
	case RaceGnome:
		return "Gnome"
	case RaceGremlin:
		return "Gremlin"
	case RaceOrc:
		return "Orc"
	case RaceDrow:
		return "Drow"
	case RaceGoblin:
		return "Goblin"
	default:
		return "Unknown"
	}
}

// raceMods maps each race to its stat modifiers. Missing stats are 0.
// A negative StatExpenses or StatUpkeep value means cheaper running costs.
var raceMods = map[Race]map[Stat]float64{
	RaceHuman: {},
	RaceElf: {
		StatEnergy:  0.20,
		StatExplore: 0.10,
		StatFood:    0.10,
		StatOffense: -0.10,
		StatIncome:  -0.05,
	},
	RaceDwarf: {
		StatBuild:    0.20,
		StatIncome:   0.10,
		StatDefense:  0.10,
		StatExplore:  -0.10,
		StatEnergy:   -0.15,
		StatExpenses: 0.05,
	},
	RaceTroll: {
		StatOffense:    0.20,
		StatDefense:    0.10,
		StatFood:       -0.10,
		StatIncome:     -0.10,
		StatPopulation: -0.05,
	},
	RaceGnome: {
		StatMarket:   0.15,
		StatIncome:   0.15,
		StatExpenses: -0.10,
		StatOffense:  -0.15,
		StatDefense:  -0.05,
	},
	RaceGremlin: {
		StatFood:       0.25,
		StatPopulation: 0.10,
		StatEnergy:     -0.10,
		StatDefense:    -0.10,
	},
	RaceOrc: {
		StatOffense:  0.15,
		StatIndustry: 0.10,
		StatUpkeep:   -0.05,
		StatEnergy:   -0.20,
		StatMarket:   -0.10,
	},
	RaceDrow: {
		StatEnergy:     0.30,
		StatOffense:    0.05,
		StatPopulation: -0.10,
		StatFood:       -0.10,
	},
	RaceGoblin: {
		StatExplore:    0.20,
		StatPopulation: 0.15,
		StatUpkeep:     -0.10,
		StatOffense:    -0.05,
		StatDefense:    -0.10,
		StatIncome:     -0.10,
	},
}
