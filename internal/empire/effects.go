// Bonus effects. Advisors, techs and edicts all reduce to one closed
// effect variant so every formula can ask "what do my bonuses do to X"
// without naming individual catalog items.
package empire

// Rarity tiers a catalog item for draft weighting.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
)

// RarityName returns the display name for a rarity tier.
func RarityName(r Rarity) string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	default:
		return "unknown"
	}
}

// BonusKind labels where a bonus came from in the catalog.
type BonusKind uint8

const (
	BonusAdvisor BonusKind = iota
	BonusTech
	BonusEdict
)

// EffectKind enumerates the closed set of effect variants.
type EffectKind uint8

const (
	// EffectStatMod adds Amount to the modifier of Stat.
	EffectStatMod EffectKind = iota
	// EffectBonusTurns grants int(Amount) extra turns each player phase.
	EffectBonusTurns
	// EffectInterest adds Amount to the savings rate and subtracts it
	// from the debt rate.
	EffectInterest
	// EffectSpellCost reduces spell energy costs by the Amount fraction.
	EffectSpellCost
	// EffectAttackFocus adds Amount to offense per attack already made
	// this round.
	EffectAttackFocus
)

// Effect is the typed payload of a bonus. Stat is meaningful only for
// EffectStatMod.
type Effect struct {
	Kind   EffectKind `json:"kind"`
	Stat   Stat       `json:"stat,omitempty"`
	Amount float64    `json:"amount"`
}

// Bonus is one owned catalog item.
type Bonus struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   BonusKind `json:"kind"`
	Rarity Rarity    `json:"rarity"`
	Effect Effect    `json:"effect"`
}

// HasBonus reports whether the empire owns the catalog item.
func (e *Empire) HasBonus(id string) bool {
	for _, b := range e.Bonuses {
		if b.ID == id {
			return true
		}
	}
	return false
}

// TurnBonus returns extra turns granted per player phase by owned bonuses.
func (e *Empire) TurnBonus() int {
	total := 0
	for _, b := range e.Bonuses {
		if b.Effect.Kind == EffectBonusTurns {
			total += int(b.Effect.Amount)
		}
	}
	return total
}

// InterestMod returns the summed interest adjustment from owned bonuses.
func (e *Empire) InterestMod() float64 {
	total := 0.0
	for _, b := range e.Bonuses {
		if b.Effect.Kind == EffectInterest {
			total += b.Effect.Amount
		}
	}
	return total
}

// SpellCostMod returns the summed spell cost reduction, capped at 75%.
func (e *Empire) SpellCostMod() float64 {
	total := 0.0
	for _, b := range e.Bonuses {
		if b.Effect.Kind == EffectSpellCost {
			total += b.Effect.Amount
		}
	}
	return min(total, 0.75)
}

// AttackFocus returns the per-attack offense scaling from owned bonuses.
// Archetype fury is separate: see Berserk on Empire.
func (e *Empire) AttackFocus() float64 {
	total := 0.0
	for _, b := range e.Bonuses {
		if b.Effect.Kind == EffectAttackFocus {
			total += b.Effect.Amount
		}
	}
	return total
}
