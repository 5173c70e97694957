package bot

import (
	"maps"

	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/shop"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

// MaxPlayerAttacksPerRound caps how many times the whole roster may hit
// the player in one bot phase.
const MaxPlayerAttacksPerRound = 3

// crossEraRound keeps an opponent's innate transit capability active for
// any realistic run length.
const crossEraRound = 1 << 30

// Opponent is a computer-run empire: a committed archetype plus
// persistent memory on top of the ordinary entity model.
type Opponent struct {
	Empire    *empire.Empire `json:"empire"`
	Archetype Archetype      `json:"archetype"`
	Memory    Memory         `json:"memory"`
}

// New creates an opponent committed to an archetype. The empire starts in
// the archetype's preferred race and era with its innate modifiers baked
// in, and never changes era: an innate cross-era capability covers
// attacks into other ages instead.
func New(name string, arch Archetype) *Opponent {
	s := StrategyFor(arch)
	e := empire.New(name, s.Race, s.Era)
	e.Alloc = s.Alloc
	e.Berserk = s.Berserk
	if len(s.Innate) > 0 {
		e.InnateMods = maps.Clone(s.Innate)
	}
	e.Effects.GateUntil = crossEraRound

	return &Opponent{
		Empire:    e,
		Archetype: arch,
		Memory:    NewMemory(),
	}
}

// Alive reports whether the opponent still holds land.
func (o *Opponent) Alive() bool { return o.Empire.Resources.Land > 0 }

// Context carries the shared state one bot phase threads through every
// opponent turn: the round, the player, the roster, the round's market,
// the run's random cursor and the shared player-attack counter.
type Context struct {
	Round     int
	Player    *empire.Empire
	Opponents []*Opponent
	Market    *shop.Market
	RNG       *prng.Source

	// PlayerAttacks is the shared anti-gang-up counter, scoped to one
	// bot phase invocation.
	PlayerAttacks *int
}

// Event is one notable opponent action, feeding the round's news.
type Event struct {
	Round    int    `json:"round"`
	Actor    string `json:"actor"`
	Category string `json:"category"` // "attack", "spell", "economy"
	Text     string `json:"text"`
}
