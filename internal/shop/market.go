// Package shop provides the per-round market and the draft of advisors,
// techs and edicts. Prices drift deterministically with the run seed via
// noise, so two runs from the same seed quote the same market every round.
package shop

import (
	"errors"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

var (
	ErrInvalidCount = errors.New("shop: count must be positive")
	ErrNoStock      = errors.New("shop: not enough stock")
	ErrNoFunds      = errors.New("shop: not enough gold")
	ErrNotOwned     = errors.New("shop: cannot sell more than owned")
	ErrNoTowers     = errors.New("shop: towers cannot house more mages")
)

// basePrice is the pre-drift gold price per unit.
var basePrice = map[empire.UnitType]int{
	empire.UnitInfantry: 500,
	empire.UnitArmor:    1250,
	empire.UnitFliers:   1500,
	empire.UnitShips:    1750,
	empire.UnitMages:    3500,
}

// baseStock is the typical per-round quantity offered.
var baseStock = map[empire.UnitType]int{
	empire.UnitInfantry: 2000,
	empire.UnitArmor:    800,
	empire.UnitFliers:   600,
	empire.UnitShips:    500,
	empire.UnitMages:    150,
}

const (
	baseFoodPrice = 30
	baseFoodStock = 60000

	priceDrift   = 0.25 // max fractional swing around the base price
	sellRate     = 0.60 // units sell back below the quote
	foodSellRate = 0.80
)

// Market is one round's quotes, stock and draft options.
type Market struct {
	Round      int                     `json:"round"`
	UnitPrices map[empire.UnitType]int `json:"unit_prices"`
	UnitStock  map[empire.UnitType]int `json:"unit_stock"`
	FoodPrice  int                     `json:"food_price"`
	FoodStock  int                     `json:"food_stock"`
	Options    []empire.Bonus          `json:"options"`
	Drafted    bool                    `json:"drafted"`
}

// Generate builds the market for a round. Prices come from seed-keyed
// noise; stock jitter and the draft come from the run's random cursor.
func Generate(seed int64, round int, player *empire.Empire, rng *prng.Source) *Market {
	noise := opensimplex.NewNormalized(seed)

	m := &Market{
		Round:      round,
		UnitPrices: make(map[empire.UnitType]int, len(basePrice)),
		UnitStock:  make(map[empire.UnitType]int, len(baseStock)),
	}

	for i, u := range []empire.UnitType{
		empire.UnitInfantry, empire.UnitArmor, empire.UnitFliers, empire.UnitShips, empire.UnitMages,
	} {
		n := noise.Eval2(float64(round)*0.35, float64(i)*7.77)
		m.UnitPrices[u] = drifted(basePrice[u], n)

		stock := baseStock[u]
		m.UnitStock[u] = stock/2 + rng.Intn(stock)
	}

	n := noise.Eval2(float64(round)*0.35, 42.0)
	m.FoodPrice = drifted(baseFoodPrice, n)
	m.FoodStock = baseFoodStock/2 + rng.Intn(baseFoodStock)

	m.Options = DraftOptions(player, rng)
	return m
}

// drifted swings a base price by up to +/-25% of a normalized noise value.
func drifted(base int, n float64) int {
	p := int(float64(base) * (1 + priceDrift*(2*n-1)))
	return max(1, p)
}

// effectivePrice applies the buyer's market modifier as a discount.
func effectivePrice(e *empire.Empire, quote int) int {
	p := int(float64(quote) * (1 - empire.Clamp(e.Mod(empire.StatMarket), -0.5, 0.5)))
	return max(1, p)
}

// BuyUnits purchases units from this round's stock at the quoted price
// adjusted by the buyer's market modifier.
func (m *Market) BuyUnits(e *empire.Empire, u empire.UnitType, count int) (int, error) {
	if count <= 0 {
		return 0, ErrInvalidCount
	}
	if count > m.UnitStock[u] {
		return 0, ErrNoStock
	}
	cost := effectivePrice(e, m.UnitPrices[u]) * count
	if cost > e.Resources.Treasury {
		return 0, ErrNoFunds
	}
	if u == empire.UnitMages && e.Troops.Mages+count > e.Buildings.Towers*25 {
		return 0, ErrNoTowers
	}

	e.Resources.Treasury -= cost
	e.Troops.Add(u, count)
	m.UnitStock[u] -= count
	return cost, nil
}

// SellUnits sells units back below the quote. Sold units leave the run;
// stock does not grow.
func (m *Market) SellUnits(e *empire.Empire, u empire.UnitType, count int) (int, error) {
	if count <= 0 {
		return 0, ErrInvalidCount
	}
	if count > e.Troops.Count(u) {
		return 0, ErrNotOwned
	}
	gain := int(float64(effectivePrice(e, m.UnitPrices[u]))*sellRate) * count
	e.Troops.Add(u, -count)
	e.Resources.Treasury += gain
	return gain, nil
}

// BuyFood purchases food from this round's stock.
func (m *Market) BuyFood(e *empire.Empire, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidCount
	}
	if amount > m.FoodStock {
		return 0, ErrNoStock
	}
	cost := effectivePrice(e, m.FoodPrice) * amount
	if cost > e.Resources.Treasury {
		return 0, ErrNoFunds
	}
	e.Resources.Treasury -= cost
	e.Resources.Food += amount
	m.FoodStock -= amount
	return cost, nil
}

// SellFood sells food below the quote.
func (m *Market) SellFood(e *empire.Empire, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidCount
	}
	if amount > e.Resources.Food {
		return 0, ErrNotOwned
	}
	gain := int(float64(effectivePrice(e, m.FoodPrice)) * foodSellRate * float64(amount))
	e.Resources.Food -= amount
	e.Resources.Treasury += gain
	return gain, nil
}
