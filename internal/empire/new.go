package empire

import "github.com/google/uuid"

// Starting state for a fresh empire. Land is split so the conservation
// invariant (land = building land + free land) holds from the first turn.
const (
	StartLand       = 2000
	StartTreasury   = 50000
	StartFood       = 10000
	StartEnergy     = 500
	StartPopulation = 3000
	StartTaxRate    = 40
)

// New creates a fresh empire with the documented starting constants.
func New(name string, race Race, era Era) *Empire {
	b := Buildings{Homes: 60, Farms: 70, Markets: 40, Factories: 20, Towers: 10}
	return &Empire{
		ID:   uuid.New(),
		Name: name,
		Race: race,
		Era:  era,
		Resources: Resources{
			Treasury: StartTreasury,
			Food:     StartFood,
			Energy:   StartEnergy,
			Land:     StartLand,
			FreeLand: StartLand - b.Total(),
		},
		Buildings:  b,
		Troops:     Troops{Infantry: 200, Armor: 50, Fliers: 20, Ships: 20, Mages: 25},
		Alloc:      Allocation{Infantry: 40, Armor: 30, Fliers: 15, Ships: 15},
		Population: StartPopulation,
		Health:     100,
		TaxRate:    StartTaxRate,
	}
}

// LandConserved reports whether land equals building land plus free land
// and nothing went negative. Every engine must leave this true.
func (e *Empire) LandConserved() bool {
	if e.Resources.Land < 0 || e.Resources.FreeLand < 0 {
		return false
	}
	return e.Resources.Land == e.Buildings.Total()+e.Resources.FreeLand
}
