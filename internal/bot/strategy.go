// Package bot provides the automated opponents: one immutable Strategy
// record per archetype, consumed by a single shared phase pipeline.
// Personality is committed at creation and never learned; only Memory
// (grudges, intel, reconnaissance) changes over a run.
package bot

import (
	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

// Archetype names the behavioral template an opponent commits to.
type Archetype uint8

const (
	ArchWarlord Archetype = iota
	ArchMerchant
	ArchSorcerer
	ArchBulwark
	ArchRaider
	ArchZealot
)

// Archetypes lists every archetype in canonical order.
var Archetypes = []Archetype{ArchWarlord, ArchMerchant, ArchSorcerer, ArchBulwark, ArchRaider, ArchZealot}

// Strategy is one archetype's full behavioral profile. All fields are
// read-only after init.
type Strategy struct {
	Name string
	Race empire.Race
	Era  empire.Era

	// BuildRatios is the target share of total land per building kind;
	// BuildWeights scale how urgently a deficit in each kind is filled.
	BuildRatios  map[empire.BuildingType]float64
	BuildWeights map[empire.BuildingType]float64

	// TurnPriorities is the production phase's ordered action list.
	TurnPriorities []economy.Focus

	// Attack gating.
	AttackHealthMin int     // no attacks below this health
	MinPowerRatio   float64 // offense/defense required to commit
	MaxAttacks      int     // per-round attack budget

	// Industry split and market behavior.
	Alloc      empire.Allocation
	Aggression float64 // base share of surplus treasury spent on troops
	AggroRamp  float64 // extra aggression per elapsed round

	// Spell behavior.
	ScryChance    float64 // chance to open land acquisition with a scry
	ShieldMandate bool    // always re-shield when lapsed

	// Innate edge: stat modifiers baked into the empire at creation,
	// and the missing-health offense scaling for berserker types.
	Innate  map[empire.Stat]float64
	Berserk float64
}

// strategies maps each archetype to its committed profile.
var strategies = map[Archetype]Strategy{
	ArchWarlord: {
		Name: "Warlord",
		Race: empire.RaceOrc,
		Era:  empire.EraPresent,
		BuildRatios: map[empire.BuildingType]float64{
			empire.BuildHomes: 0.10, empire.BuildFarms: 0.08, empire.BuildMarkets: 0.07,
			empire.BuildFactories: 0.16, empire.BuildTowers: 0.02,
		},
		BuildWeights: map[empire.BuildingType]float64{
			empire.BuildHomes: 1, empire.BuildFarms: 1.2, empire.BuildMarkets: 1,
			empire.BuildFactories: 2, empire.BuildTowers: 0.5,
		},
		TurnPriorities:  []economy.Focus{economy.FocusIndustry, economy.FocusCash, economy.FocusFarm},
		AttackHealthMin: 50,
		MinPowerRatio:   1.1,
		MaxAttacks:      4,
		Alloc:           empire.Allocation{Infantry: 50, Armor: 30, Fliers: 10, Ships: 10},
		Aggression:      0.55,
		AggroRamp:       0.03,
		ScryChance:      0.25,
		Innate:          map[empire.Stat]float64{empire.StatOffense: 0.08},
		Berserk:         0.30,
	},
	ArchMerchant: {
		Name: "Merchant",
		Race: empire.RaceGnome,
		Era:  empire.EraFuture,
		BuildRatios: map[empire.BuildingType]float64{
			empire.BuildHomes: 0.14, empire.BuildFarms: 0.08, empire.BuildMarkets: 0.18,
			empire.BuildFactories: 0.05, empire.BuildTowers: 0.02,
		},
		BuildWeights: map[empire.BuildingType]float64{
			empire.BuildHomes: 1.5, empire.BuildFarms: 1, empire.BuildMarkets: 2,
			empire.BuildFactories: 0.6, empire.BuildTowers: 0.4,
		},
		TurnPriorities:  []economy.Focus{economy.FocusCash, economy.FocusFarm, economy.FocusIndustry},
		AttackHealthMin: 80,
		MinPowerRatio:   1.8,
		MaxAttacks:      1,
		Alloc:           empire.Allocation{Infantry: 30, Armor: 20, Fliers: 25, Ships: 25},
		Aggression:      0.25,
		AggroRamp:       0.02,
		ScryChance:      0.10,
		Innate:          map[empire.Stat]float64{empire.StatIncome: 0.08, empire.StatMarket: 0.05},
	},
	ArchSorcerer: {
		Name: "Sorcerer",
		Race: empire.RaceDrow,
		Era:  empire.EraPast,
		BuildRatios: map[empire.BuildingType]float64{
			empire.BuildHomes: 0.10, empire.BuildFarms: 0.08, empire.BuildMarkets: 0.08,
			empire.BuildFactories: 0.05, empire.BuildTowers: 0.12,
		},
		BuildWeights: map[empire.BuildingType]float64{
			empire.BuildHomes: 1, empire.BuildFarms: 1, empire.BuildMarkets: 1,
			empire.BuildFactories: 0.6, empire.BuildTowers: 2.5,
		},
		TurnPriorities:  []economy.Focus{economy.FocusMeditate, economy.FocusCash, economy.FocusFarm},
		AttackHealthMin: 70,
		MinPowerRatio:   1.5,
		MaxAttacks:      2,
		Alloc:           empire.Allocation{Infantry: 40, Armor: 20, Fliers: 20, Ships: 20},
		Aggression:      0.30,
		AggroRamp:       0.02,
		ScryChance:      0.60,
		ShieldMandate:   true,
		Innate:          map[empire.Stat]float64{empire.StatEnergy: 0.10},
	},
	ArchBulwark: {
		Name: "Bulwark",
		Race: empire.RaceDwarf,
		Era:  empire.EraPresent,
		BuildRatios: map[empire.BuildingType]float64{
			empire.BuildHomes: 0.12, empire.BuildFarms: 0.10, empire.BuildMarkets: 0.10,
			empire.BuildFactories: 0.10, empire.BuildTowers: 0.06,
		},
		BuildWeights: map[empire.BuildingType]float64{
			empire.BuildHomes: 1.2, empire.BuildFarms: 1.2, empire.BuildMarkets: 1,
			empire.BuildFactories: 1, empire.BuildTowers: 1.5,
		},
		TurnPriorities:  []economy.Focus{economy.FocusCash, economy.FocusIndustry, economy.FocusFarm},
		AttackHealthMin: 90,
		MinPowerRatio:   2.2,
		MaxAttacks:      1,
		Alloc:           empire.Allocation{Infantry: 40, Armor: 40, Fliers: 10, Ships: 10},
		Aggression:      0.20,
		AggroRamp:       0.01,
		ScryChance:      0.10,
		ShieldMandate:   true,
		Innate:          map[empire.Stat]float64{empire.StatDefense: 0.10},
	},
	ArchRaider: {
		Name: "Raider",
		Race: empire.RaceGoblin,
		Era:  empire.EraPresent,
		BuildRatios: map[empire.BuildingType]float64{
			empire.BuildHomes: 0.10, empire.BuildFarms: 0.09, empire.BuildMarkets: 0.08,
			empire.BuildFactories: 0.12, empire.BuildTowers: 0.02,
		},
		BuildWeights: map[empire.BuildingType]float64{
			empire.BuildHomes: 1, empire.BuildFarms: 1.2, empire.BuildMarkets: 1,
			empire.BuildFactories: 1.6, empire.BuildTowers: 0.4,
		},
		TurnPriorities:  []economy.Focus{economy.FocusIndustry, economy.FocusFarm, economy.FocusCash},
		AttackHealthMin: 40,
		MinPowerRatio:   0.95,
		MaxAttacks:      5,
		Alloc:           empire.Allocation{Infantry: 60, Armor: 10, Fliers: 20, Ships: 10},
		Aggression:      0.50,
		AggroRamp:       0.04,
		ScryChance:      0.40,
		Innate:          map[empire.Stat]float64{empire.StatExplore: 0.10},
		Berserk:         0.15,
	},
	ArchZealot: {
		Name: "Zealot",
		Race: empire.RaceTroll,
		Era:  empire.EraPast,
		BuildRatios: map[empire.BuildingType]float64{
			empire.BuildHomes: 0.11, empire.BuildFarms: 0.10, empire.BuildMarkets: 0.06,
			empire.BuildFactories: 0.12, empire.BuildTowers: 0.06,
		},
		BuildWeights: map[empire.BuildingType]float64{
			empire.BuildHomes: 1, empire.BuildFarms: 1.4, empire.BuildMarkets: 0.8,
			empire.BuildFactories: 1.4, empire.BuildTowers: 1.2,
		},
		TurnPriorities:  []economy.Focus{economy.FocusFarm, economy.FocusIndustry, economy.FocusMeditate},
		AttackHealthMin: 60,
		MinPowerRatio:   1.25,
		MaxAttacks:      3,
		Alloc:           empire.Allocation{Infantry: 50, Armor: 20, Fliers: 15, Ships: 15},
		Aggression:      0.40,
		AggroRamp:       0.03,
		ScryChance:      0.20,
		ShieldMandate:   true,
		Innate:          map[empire.Stat]float64{empire.StatFood: 0.05, empire.StatOffense: 0.04},
		Berserk:         0.20,
	},
}

// StrategyFor returns the committed profile for an archetype.
func StrategyFor(a Archetype) Strategy { return strategies[a] }
