// Package game ties the engines together into one playable run: a
// finite-state machine over the player, shop and bot phases, a news
// feed, standings, and defeat checks.
package game

import (
	"github.com/google/uuid"

	"github.com/blake365/promisance-rogue-sub000/internal/bot"
	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
	"github.com/blake365/promisance-rogue-sub000/internal/shop"
)

// Phase is the run state machine's current stage.
type Phase uint8

const (
	PhasePlayer Phase = iota
	PhaseShop
	PhaseBot
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "player"
	case PhaseShop:
		return "shop"
	case PhaseBot:
		return "bot"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Run limits and defeat thresholds.
const (
	TotalRounds      = 10
	ProtectedThrough = 1 // every empire is safe during round 1

	minPopulation = 50 // below this the realm collapses
	debtRuinRatio = 2  // debt past ratio x net worth ends the run
)

// Outcome records how a finished run ended.
type Outcome uint8

const (
	OutcomeOpen Outcome = iota
	OutcomeSurvived
	OutcomeLandLost
	OutcomeCollapse
	OutcomeBankrupt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSurvived:
		return "survived"
	case OutcomeLandLost:
		return "all land lost"
	case OutcomeCollapse:
		return "population collapse"
	case OutcomeBankrupt:
		return "bankrupt"
	default:
		return "in progress"
	}
}

// Run is the aggregate root: the full state of one seeded game, and the
// only thing the save layer serializes.
type Run struct {
	ID     uuid.UUID `json:"id"`
	Seed   int64     `json:"seed"`
	Round  int       `json:"round"`
	Rounds int       `json:"rounds"` // total rounds in this run
	Phase  Phase     `json:"phase"`

	Player    *empire.Empire  `json:"player"`
	Opponents []*bot.Opponent `json:"opponents"`
	Market    *shop.Market    `json:"market"`

	RNG *prng.Source `json:"rng"`

	News    []bot.Event `json:"news"`
	Outcome Outcome     `json:"outcome"`
	Stats   RunStats    `json:"stats"`

	// Net worth per empire at the start of the current round, for the
	// standings delta column. Keyed by empire ID.
	RoundStart map[string]int `json:"round_start"`
}

// New creates a seeded run: the player in the chosen race and era, one
// opponent per archetype, everyone protected through round 1.
func New(seed int64, playerName string, race empire.Race, era empire.Era) *Run {
	player := empire.New(playerName, race, era)
	player.Effects.ProtectUntil = ProtectedThrough

	var opps []*bot.Opponent
	for i, arch := range bot.Archetypes {
		o := bot.New(opponentNames[i%len(opponentNames)], arch)
		o.Empire.Effects.ProtectUntil = ProtectedThrough
		opps = append(opps, o)
	}

	r := &Run{
		ID:        uuid.New(),
		Seed:      seed,
		Round:     1,
		Rounds:    TotalRounds,
		Phase:     PhasePlayer,
		Player:    player,
		Opponents: opps,
		RNG:       prng.New(seed),
	}
	r.beginRound()
	return r
}

// SetRounds overrides the default run length. Only valid before the
// first round closes.
func (r *Run) SetRounds(n int) {
	if n > 0 && r.Round == 1 && r.Phase == PhasePlayer {
		r.Rounds = n
	}
}

var opponentNames = []string{
	"Khargoth", "Veldrin Trade House", "The Umbral Circle",
	"Ironhold", "The Ashen Horde", "Covenant of the Flame",
}

// beginRound replenishes the player's turn budget, resets per-round
// counters and snapshots net worth for the standings delta.
func (r *Run) beginRound() {
	r.Player.Turns = economy.TurnsPerRound + r.Player.TurnBonus()
	r.Player.AttacksThisRound = 0
	r.Player.SpellsThisRound = 0

	r.RoundStart = make(map[string]int, len(r.Opponents)+1)
	r.RoundStart[r.Player.ID.String()] = r.Player.NetWorth()
	for _, o := range r.Opponents {
		r.RoundStart[o.Empire.ID.String()] = o.Empire.NetWorth()
	}
}

// Complete reports whether the run has ended.
func (r *Run) Complete() bool { return r.Phase == PhaseComplete }

// opponent returns the living opponent whose empire has the given ID.
func (r *Run) opponent(id string) *bot.Opponent {
	for _, o := range r.Opponents {
		if o.Alive() && o.Empire.ID.String() == id {
			return o
		}
	}
	return nil
}

// checkDefeat ends the run when the player hits a defeat condition.
// Defeat is checked independently of phase transitions.
func (r *Run) checkDefeat() bool {
	switch {
	case r.Player.Resources.Land <= 0:
		r.Outcome = OutcomeLandLost
	case r.Player.Population < minPopulation:
		r.Outcome = OutcomeCollapse
	case r.Player.Debt > debtRuinRatio*r.Player.NetWorth():
		r.Outcome = OutcomeBankrupt
	default:
		return false
	}
	r.Phase = PhaseComplete
	return true
}

// RunStats accumulates the player's career over the run.
type RunStats struct {
	PeakNetWorth int `json:"peak_net_worth"`
	LandGained   int `json:"land_gained"` // land above the starting grant, best round
	AttacksWon   int `json:"attacks_won"`
	AttacksLost  int `json:"attacks_lost"`
	SpellsCast   int `json:"spells_cast"`
}

// updateStats folds the round's player activity into the career record.
func (r *Run) updateStats() {
	e := r.Player
	if w := e.NetWorth(); w > r.Stats.PeakNetWorth {
		r.Stats.PeakNetWorth = w
	}
	if gained := e.Resources.Land - empire.StartLand; gained > r.Stats.LandGained {
		r.Stats.LandGained = gained
	}
	r.Stats.AttacksWon = e.AttacksMade - e.AttacksLost
	r.Stats.AttacksLost = e.AttacksLost
	r.Stats.SpellsCast += e.SpellsThisRound
}

// Standing is one row of the net-worth ranking.
type Standing struct {
	Name     string `json:"name"`
	NetWorth int    `json:"net_worth"`
	Delta    int    `json:"delta"` // change since round start
	IsPlayer bool   `json:"is_player"`
	Alive    bool   `json:"alive"`
}

// Standings ranks every empire by net worth, with the change since the
// start of the current round.
func (r *Run) Standings() []Standing {
	rows := make([]Standing, 0, len(r.Opponents)+1)
	add := func(e *empire.Empire, isPlayer, alive bool) {
		w := e.NetWorth()
		rows = append(rows, Standing{
			Name:     e.Name,
			NetWorth: w,
			Delta:    w - r.RoundStart[e.ID.String()],
			IsPlayer: isPlayer,
			Alive:    alive,
		})
	}
	add(r.Player, true, r.Player.Resources.Land > 0)
	for _, o := range r.Opponents {
		add(o.Empire, false, o.Alive())
	}

	// Insertion sort keeps equal-worth rows in roster order.
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j].NetWorth > rows[j-1].NetWorth; j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
	return rows
}
