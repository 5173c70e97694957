// Era templates. Eras shift the same stat table races do, and additionally
// set the combat weight of each unit kind: fliers dominate the future,
// armor the present, infantry and mages the past.
package empire

// Era classifies an empire's technological age.
type Era uint8

const (
	EraPast Era = iota
	EraPresent
	EraFuture
)

// Eras lists every era in canonical order.
var Eras = []Era{EraPast, EraPresent, EraFuture}

// EraName returns the display name for an era.
func EraName(e Era) string {
	switch e {
	case EraPast:
		return "Past"
	case EraPresent:
		return "Present"
	case EraFuture:
		return "Future"
	default:
		return "Unknown"
	}
}

// eraMods maps each era to its stat modifiers.
var eraMods = map[Era]map[Stat]float64{
	EraPast: {
		StatEnergy:  0.20,
		StatFood:    0.10,
		StatIncome:  -0.10,
		StatMarket:  -0.05,
		StatExplore: 0.05,
	},
	EraPresent: {},
	EraFuture: {
		StatIncome:   0.10,
		StatIndustry: 0.10,
		StatMarket:   0.05,
		StatEnergy:   -0.20,
		StatFood:     -0.05,
	},
}

// CombatWeights holds per-unit offense/defense weights for one era.
type CombatWeights struct {
	Offense map[UnitType]float64
	Defense map[UnitType]float64
}

// eraWeights maps each era to its unit combat weights.
var eraWeights = map[Era]CombatWeights{
	EraPast: {
		Offense: map[UnitType]float64{
			UnitInfantry: 2.0, UnitArmor: 1.5, UnitFliers: 1.0, UnitShips: 1.5, UnitMages: 1.0,
		},
		Defense: map[UnitType]float64{
			UnitInfantry: 2.0, UnitArmor: 2.0, UnitFliers: 1.0, UnitShips: 1.0, UnitMages: 1.5,
		},
	},
	EraPresent: {
		Offense: map[UnitType]float64{
			UnitInfantry: 1.5, UnitArmor: 2.5, UnitFliers: 2.0, UnitShips: 2.0, UnitMages: 0.5,
		},
		Defense: map[UnitType]float64{
			UnitInfantry: 1.5, UnitArmor: 2.5, UnitFliers: 1.5, UnitShips: 2.0, UnitMages: 0.5,
		},
	},
	EraFuture: {
		Offense: map[UnitType]float64{
			UnitInfantry: 1.0, UnitArmor: 2.0, UnitFliers: 3.0, UnitShips: 2.5, UnitMages: 0.5,
		},
		Defense: map[UnitType]float64{
			UnitInfantry: 1.0, UnitArmor: 2.0, UnitFliers: 2.5, UnitShips: 2.5, UnitMages: 0.5,
		},
	},
}

// OffenseWeight returns the offensive combat weight of a unit kind in an era.
func OffenseWeight(e Era, u UnitType) float64 { return eraWeights[e].Offense[u] }

// DefenseWeight returns the defensive combat weight of a unit kind in an era.
func DefenseWeight(e Era, u UnitType) float64 { return eraWeights[e].Defense[u] }
