// Target selection: score every legal candidate, then pick the attack
// sub-type from the best intelligence tier available.
package bot

import (
	"math"

	"github.com/blake365/promisance-rogue-sub000/internal/combat"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

// Scoring weights. Player bias and retaliation are flat bumps; the rest
// scale with the candidate's state.
const (
	scoreSameEra     = 20.0
	scoreWeaknessCap = 30.0
	scoreWealthCap   = 20.0
	scorePlayerBias  = 15.0
	scoreRetaliation = 25.0
	scoreGrudgeScale = 2.0
)

// Exploit probabilities per intelligence tier: how likely the opponent is
// to pick a targeted single-kind attack instead of a standard assault.
const (
	exploitPerfect    = 0.95 // scried this very round
	exploitRecon      = 0.80 // fresh snapshot
	exploitCombat     = 0.60 // learned from a previous battle
	exploitAssumption = 0.30 // nothing but our own composition
)

// candidate is one attackable empire. opp is nil when the candidate is
// the player.
type candidate struct {
	em       *empire.Empire
	opp      *Opponent
	isPlayer bool
}

func (c candidate) id() string { return c.em.ID.String() }

// candidates returns every legal target in deterministic order: the
// player first, then the roster in ctx order.
func (o *Opponent) candidates(ctx *Context) []candidate {
	var out []candidate
	if ctx.Player != nil && ctx.Player.Resources.Land > 0 &&
		!ctx.Player.Protected(ctx.Round) && *ctx.PlayerAttacks < MaxPlayerAttacksPerRound {
		out = append(out, candidate{em: ctx.Player, isPlayer: true})
	}
	for _, other := range ctx.Opponents {
		if other == o || other.Empire.Resources.Land <= 0 || other.Empire.Protected(ctx.Round) {
			continue
		}
		out = append(out, candidate{em: other.Empire, opp: other})
	}
	return out
}

// score rates a candidate on era compatibility, grudge, relative
// weakness, wealth, the fixed player preference and retaliation.
func (o *Opponent) score(c candidate) float64 {
	s := 0.0
	if c.em.Era == o.Empire.Era {
		s += scoreSameEra
	}

	g := o.Memory.Grudges[c.id()]
	s += g.Score() * scoreGrudgeScale
	if g != nil && g.Attacks > 0 {
		s += scoreRetaliation
	}

	if theirs := c.em.NetWorth(); theirs > 0 {
		weakness := float64(o.Empire.NetWorth()) / float64(theirs) * 10
		s += math.Min(weakness, scoreWeaknessCap)
	}
	s += math.Min(float64(c.em.Resources.Treasury)/10000, scoreWealthCap)

	if c.isPlayer {
		s += scorePlayerBias
	}
	return s
}

// bestTarget picks the highest scoring candidate the opponent can beat by
// its strategy's minimum power ratio. Returns nil when no target
// qualifies.
func (o *Opponent) bestTarget(ctx *Context, s Strategy) *candidate {
	offense := combat.OffensePower(o.Empire, combat.AttackStandard)

	var best *candidate
	bestScore := math.Inf(-1)
	for _, c := range o.candidates(ctx) {
		defense := combat.DefensePower(c.em)
		if defense > 0 && offense/defense < s.MinPowerRatio {
			continue
		}
		if sc := o.score(c); sc > bestScore {
			c := c
			best, bestScore = &c, sc
		}
	}
	return best
}

// chooseAttackType picks the attack sub-type from the best available
// intelligence: a fresh scry from this round, an older snapshot, combat
// experience, or nothing but our own composition. Each tier has its own
// chance of committing to a targeted single-kind strike.
func (o *Opponent) chooseAttackType(c *candidate, round int, rng *prng.Source) combat.AttackType {
	exploit := exploitAssumption
	if snap := o.Memory.FreshRecon(c.id(), round); snap != nil {
		if snap.Round == round {
			exploit = exploitPerfect
		} else {
			exploit = exploitRecon
		}
	} else if o.Memory.Intel[c.id()] != nil {
		exploit = exploitCombat
	}

	if !rng.Chance(exploit) {
		return combat.AttackStandard
	}
	return o.strongestStrike()
}

// strongestStrike returns the single-kind attack backed by the opponent's
// most numerous military kind, or a standard assault when the army is
// empty.
func (o *Opponent) strongestStrike() combat.AttackType {
	bestCount := 0
	best := combat.AttackStandard
	for _, a := range []combat.AttackType{
		combat.AttackGuerrilla, combat.AttackSiege, combat.AttackAirStrike, combat.AttackBlockade,
	} {
		u, _ := combat.SingleUnit(a)
		if n := o.Empire.Troops.Count(u); n > bestCount {
			bestCount = n
			best = a
		}
	}
	return best
}
