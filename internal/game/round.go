package game

import (
	"log/slog"

	"github.com/blake365/promisance-rogue-sub000/internal/bank"
	"github.com/blake365/promisance-rogue-sub000/internal/bot"
	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/shop"
)

// enterShop moves to the shop phase and rolls this round's market:
// prices, stock and the draft options.
func (r *Run) enterShop() {
	r.Market = shop.Generate(r.Seed, r.Round, r.Player, r.RNG)
	r.Phase = PhaseShop
}

// runBotPhase processes every living opponent once in shuffled order,
// then closes the round: at the final round the run completes, otherwise
// the next player phase begins.
func (r *Run) runBotPhase() {
	r.Phase = PhaseBot

	order := make([]*bot.Opponent, len(r.Opponents))
	copy(order, r.Opponents)
	r.RNG.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	playerAttacks := 0
	ctx := &bot.Context{
		Round:         r.Round,
		Player:        r.Player,
		Opponents:     r.Opponents,
		Market:        r.Market,
		RNG:           r.RNG,
		PlayerAttacks: &playerAttacks,
	}
	for _, o := range order {
		if !o.Alive() {
			continue
		}
		r.News = append(r.News, r.safeTakeTurn(o, ctx)...)
	}

	settleInterest(r.Player)
	for _, o := range r.Opponents {
		if o.Alive() {
			settleInterest(o.Empire)
		}
	}

	r.updateStats()
	if r.checkDefeat() {
		return
	}
	if r.Round >= r.Rounds {
		r.Phase = PhaseComplete
		r.Outcome = OutcomeSurvived
		return
	}
	r.Round++
	r.Phase = PhasePlayer
	r.beginRound()
}

// settleInterest realizes the rest of the round's bank interest. Each
// processed turn accrues its own share, so unspent turns are paid out
// here: a full round always realizes the per-round rate, with no double
// counting of turns the empire actually spent.
func settleInterest(e *empire.Empire) {
	for i := 0; i < e.Turns; i++ {
		bank.Accrue(e, economy.TurnsPerRound)
	}
}

// safeTakeTurn isolates one opponent's turn: a fault is logged and
// skipped, and the random cursor still advances so the rest of the
// phase stays on the seeded sequence.
func (r *Run) safeTakeTurn(o *bot.Opponent, ctx *bot.Context) (events []bot.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("opponent turn fault", "opponent", o.Empire.Name, "round", r.Round, "fault", rec)
			r.RNG.Uint64()
			events = nil
		}
	}()
	return o.TakeTurn(ctx)
}
