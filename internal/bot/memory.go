// Opponent memory: persistent grudge counters, per-target combat
// intelligence and reconnaissance snapshots with an expiry round.
package bot

import "github.com/blake365/promisance-rogue-sub000/internal/magic"

// Grudge accumulates hostility toward one empire over the run.
type Grudge struct {
	Attacks  int `json:"attacks"`   // attacks suffered from them
	Spells   int `json:"spells"`    // offensive spells suffered from them
	LandLost int `json:"land_lost"` // land they took from us
}

// Score collapses a grudge into one comparable value.
func (g *Grudge) Score() float64 {
	if g == nil {
		return 0
	}
	return float64(g.Attacks)*3 + float64(g.Spells)*1.5 + float64(g.LandLost)/50
}

// CombatIntel is what the last battle against a target taught us.
type CombatIntel struct {
	Round   int     `json:"round"`
	Won     bool    `json:"won"`
	Defense float64 `json:"defense"` // defense power observed in that battle
}

// Memory is one opponent's persistent record, keyed by empire ID.
type Memory struct {
	Grudges map[string]*Grudge      `json:"grudges,omitempty"`
	Intel   map[string]*CombatIntel `json:"intel,omitempty"`
	Recon   map[string]*magic.Recon `json:"recon,omitempty"`
}

// NewMemory creates an empty memory record.
func NewMemory() Memory {
	return Memory{
		Grudges: make(map[string]*Grudge),
		Intel:   make(map[string]*CombatIntel),
		Recon:   make(map[string]*magic.Recon),
	}
}

func (m *Memory) grudge(id string) *Grudge {
	g, ok := m.Grudges[id]
	if !ok {
		g = &Grudge{}
		m.Grudges[id] = g
	}
	return g
}

// RecordAttackSuffered bumps the grudge against an aggressor.
func (m *Memory) RecordAttackSuffered(aggressor string, landLost int) {
	g := m.grudge(aggressor)
	g.Attacks++
	g.LandLost += landLost
}

// RecordSpellSuffered bumps the grudge against a hostile caster.
func (m *Memory) RecordSpellSuffered(caster string) {
	m.grudge(caster).Spells++
}

// RecordCombat stores what a battle against a target revealed.
func (m *Memory) RecordCombat(target string, round int, won bool, defense float64) {
	m.Intel[target] = &CombatIntel{Round: round, Won: won, Defense: defense}
}

// RecordRecon stores a scrying snapshot of a target.
func (m *Memory) RecordRecon(target string, snap *magic.Recon) {
	if snap != nil {
		m.Recon[target] = snap
	}
}

// FreshRecon returns the target's snapshot if it has not expired.
func (m *Memory) FreshRecon(target string, round int) *magic.Recon {
	r, ok := m.Recon[target]
	if !ok || r.FreshUntil < round {
		return nil
	}
	return r
}
