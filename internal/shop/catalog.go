// The draftable catalog. Every item reduces to one typed effect, so the
// engines never name individual advisors; they ask the empire for its
// summed modifiers instead.
package shop

import (
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

// Catalog lists every draftable advisor, tech and edict.
var Catalog = []empire.Bonus{
	// Advisors.
	{ID: "tax-collector", Name: "Tax Collector", Kind: empire.BonusAdvisor, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatIncome, Amount: 0.10}},
	{ID: "quartermaster", Name: "Quartermaster", Kind: empire.BonusAdvisor, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatUpkeep, Amount: -0.10}},
	{ID: "land-surveyor", Name: "Land Surveyor", Kind: empire.BonusAdvisor, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatExplore, Amount: 0.15}},
	{ID: "drill-sergeant", Name: "Drill Sergeant", Kind: empire.BonusAdvisor, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatIndustry, Amount: 0.10}},
	{ID: "harvest-warden", Name: "Harvest Warden", Kind: empire.BonusAdvisor, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatFood, Amount: 0.12}},
	{ID: "court-mage", Name: "Court Mage", Kind: empire.BonusAdvisor, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatEnergy, Amount: 0.15}},
	{ID: "war-council", Name: "War Council", Kind: empire.BonusAdvisor, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatOffense, Amount: 0.10}},
	{ID: "castellan", Name: "Castellan", Kind: empire.BonusAdvisor, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatDefense, Amount: 0.12}},
	{ID: "grand-vizier", Name: "Grand Vizier", Kind: empire.BonusAdvisor, Rarity: empire.RarityRare,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatIncome, Amount: 0.25}},
	{ID: "warmaster", Name: "Warmaster", Kind: empire.BonusAdvisor, Rarity: empire.RarityRare,
		Effect: empire.Effect{Kind: empire.EffectAttackFocus, Amount: 0.05}},

	// Techs.
	{ID: "crop-rotation", Name: "Crop Rotation", Kind: empire.BonusTech, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatFood, Amount: 0.10}},
	{ID: "masonry", Name: "Masonry", Kind: empire.BonusTech, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatBuild, Amount: 0.15}},
	{ID: "coinage", Name: "Standard Coinage", Kind: empire.BonusTech, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatMarket, Amount: 0.10}},
	{ID: "granaries", Name: "Sealed Granaries", Kind: empire.BonusTech, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatExpenses, Amount: -0.10}},
	{ID: "arcane-focus", Name: "Arcane Focus", Kind: empire.BonusTech, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectSpellCost, Amount: 0.20}},
	{ID: "siege-works", Name: "Siege Works", Kind: empire.BonusTech, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatOffense, Amount: 0.08}},
	{ID: "aqueducts", Name: "Aqueducts", Kind: empire.BonusTech, Rarity: empire.RarityRare,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatPopulation, Amount: 0.20}},

	// Edicts.
	{ID: "forced-march", Name: "Forced March", Kind: empire.BonusEdict, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectBonusTurns, Amount: 2}},
	{ID: "open-borders", Name: "Open Borders", Kind: empire.BonusEdict, Rarity: empire.RarityCommon,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatPopulation, Amount: 0.10}},
	{ID: "usury-charter", Name: "Usury Charter", Kind: empire.BonusEdict, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectInterest, Amount: 0.015}},
	{ID: "war-levies", Name: "War Levies", Kind: empire.BonusEdict, Rarity: empire.RarityUncommon,
		Effect: empire.Effect{Kind: empire.EffectBonusTurns, Amount: 4}},
	{ID: "royal-charter", Name: "Royal Charter", Kind: empire.BonusEdict, Rarity: empire.RarityRare,
		Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatMarket, Amount: 0.25}},
}

// rarityWeight drives the draft draw: common 60, uncommon 30, rare 10.
var rarityWeight = map[empire.Rarity]int{
	empire.RarityCommon:   60,
	empire.RarityUncommon: 30,
	empire.RarityRare:     10,
}

// DraftOptions draws three distinct options the empire does not already
// own, rarity-weighted. Fewer than three come back only when the catalog
// is nearly exhausted.
func DraftOptions(e *empire.Empire, rng *prng.Source) []empire.Bonus {
	pool := make([]empire.Bonus, 0, len(Catalog))
	for _, b := range Catalog {
		if !e.HasBonus(b.ID) {
			pool = append(pool, b)
		}
	}

	var opts []empire.Bonus
	for len(opts) < 3 && len(pool) > 0 {
		total := 0
		for _, b := range pool {
			total += rarityWeight[b.Rarity]
		}
		pick := rng.Intn(total)
		for i, b := range pool {
			pick -= rarityWeight[b.Rarity]
			if pick < 0 {
				opts = append(opts, b)
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return opts
}

// Draft applies one of this round's options to the empire. Returns false
// when the id is not on offer or a pick was already made.
func (m *Market) Draft(e *empire.Empire, id string) bool {
	if m.Drafted {
		return false
	}
	for _, b := range m.Options {
		if b.ID == id {
			e.Bonuses = append(e.Bonuses, b)
			m.Drafted = true
			return true
		}
	}
	return false
}
