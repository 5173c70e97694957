// The opponent phase pipeline. Every opponent runs the same six phases in
// fixed order each round; only the Strategy record it consults differs.
package bot

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/blake365/promisance-rogue-sub000/internal/combat"
	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/magic"
)

// Pipeline tuning.
const (
	landPhaseShare   = 3 // land acquisition gets turns/landPhaseShare
	shieldReserve    = magic.TurnCost
	foodBandLow      = 4 // turns of consumption before buying
	foodBandHigh     = 8 // turns of consumption before selling surplus
	upkeepHorizon    = 4 // treasury cover (in turns of expenses) that counts as a crisis
	goldReserveTurns = 6 // expense turns kept out of troop spending
	maxAggression    = 0.90
)

// TakeTurn runs one opponent's full round: era check, land acquisition,
// build, production, economic triage, defense. Returns the notable
// events for the round's news feed.
func (o *Opponent) TakeTurn(ctx *Context) []Event {
	s := StrategyFor(o.Archetype)
	o.Empire.Turns = economy.TurnsPerRound
	o.Empire.AttacksThisRound = 0
	o.Empire.SpellsThisRound = 0

	var events []Event
	o.checkEra()
	o.acquireLand(ctx, s, &events)
	o.buildDeficits(ctx, s)
	o.produce(ctx, s)
	o.triage(ctx, s, &events)
	o.defend(ctx, s)
	return events
}

// checkEra is phase 1. Opponents begin in their archetype's preferred era
// and their innate transit capability covers cross-era combat, so there
// is never anything to do; the phase stays in the pipeline to keep the
// order explicit.
func (o *Opponent) checkEra() {}

// acquireLand is phase 2: an optional opening scry, then attacks in
// strategy order while health, power ratio and the shared player-attack
// cap allow, then exploration with the rest of the phase budget.
func (o *Opponent) acquireLand(ctx *Context, s Strategy, events *[]Event) {
	e := o.Empire
	budget := e.Turns / landPhaseShare

	if ctx.RNG.Chance(s.ScryChance) && budget >= magic.TurnCost {
		if t := o.bestTarget(ctx, s); t != nil {
			res, err := magic.Cast(e, t.em, magic.SpellScry, ctx.Round, ctx.RNG)
			if err == nil && res.Report != nil {
				budget -= magic.TurnCost
				if t.opp != nil {
					t.opp.Memory.RecordSpellSuffered(e.ID.String())
				}
				if res.Report.Success {
					o.Memory.RecordRecon(t.id(), res.Report.Snapshot)
				}
			}
		}
	}

	attacks := 0
	for attacks < s.MaxAttacks && e.Health >= s.AttackHealthMin && budget >= combat.TurnCost {
		t := o.bestTarget(ctx, s)
		if t == nil {
			break
		}

		atype := o.chooseAttackType(t, ctx.Round, ctx.RNG)
		res, err := combat.Attack(e, t.em, atype, ctx.Round, ctx.RNG)
		if err != nil {
			break
		}
		budget -= res.Econ.Spent
		if res.Report == nil {
			break // emergency stop during the marching turns
		}

		rep := res.Report
		o.Memory.RecordCombat(t.id(), ctx.Round, rep.Win, rep.Defense)
		if t.isPlayer {
			*ctx.PlayerAttacks++
		}
		if t.opp != nil {
			t.opp.Memory.RecordAttackSuffered(e.ID.String(), rep.LandTaken)
		}

		if rep.Win {
			*events = append(*events, Event{
				Round: ctx.Round, Actor: e.Name, Category: "attack",
				Text: fmt.Sprintf("%s won a %s against %s, seizing %s acres",
					e.Name, combat.AttackName(atype), t.em.Name, humanize.Comma(int64(rep.LandTaken))),
			})
		} else {
			*events = append(*events, Event{
				Round: ctx.Round, Actor: e.Name, Category: "attack",
				Text: fmt.Sprintf("%s was repelled by %s", e.Name, t.em.Name),
			})
		}
		attacks++
	}

	if budget > 0 && e.Turns > 0 {
		economy.Explore(e, min(budget, e.Turns))
	}
}

// buildDeficits is phase 3: fill building-ratio deficits weighted by
// deficit size and strategic importance, capped by treasury, free land
// and remaining turns.
func (o *Opponent) buildDeficits(ctx *Context, s Strategy) {
	e := o.Empire

	type deficit struct {
		t      empire.BuildingType
		count  int
		weight float64
	}
	var deficits []deficit
	for _, t := range empire.BuildingTypes {
		target := int(s.BuildRatios[t] * float64(e.Resources.Land))
		if gap := target - e.Buildings.Count(t); gap > 0 {
			deficits = append(deficits, deficit{t, gap, float64(gap) * s.BuildWeights[t]})
		}
	}
	if len(deficits) == 0 {
		return
	}
	sort.SliceStable(deficits, func(i, j int) bool { return deficits[i].weight > deficits[j].weight })

	reserve := 0
	if s.ShieldMandate {
		reserve = shieldReserve
	}
	turns := e.Turns - reserve
	if turns <= 0 {
		return
	}

	affordable := e.Resources.Treasury / economy.BuildCost(e)
	capacity := min(e.Resources.FreeLand, economy.BuildRate(e)*turns)

	want := make(map[empire.BuildingType]int)
	total := 0
	for _, d := range deficits {
		take := min(d.count, affordable-total, capacity-total)
		if take <= 0 {
			continue
		}
		want[d.t] = take
		total += take
	}
	if total > 0 {
		economy.Build(e, want)
	}
}

// produce is phase 4: spend remaining turns on the strategy's ordered
// action list, with emergency overrides for critical food or gold
// shortages.
func (o *Opponent) produce(ctx *Context, s Strategy) {
	e := o.Empire

	priorities := s.TurnPriorities
	if e.Resources.Food < economy.FoodConsumption(e)*foodBandLow {
		priorities = prepend(priorities, economy.FocusFarm)
	}
	if e.Resources.Treasury < economy.Expenses(e)*upkeepHorizon {
		priorities = prepend(priorities, economy.FocusCash)
	}

	reserve := 0
	if s.ShieldMandate {
		reserve = shieldReserve
	}
	turns := e.Turns - reserve
	if turns <= 0 {
		return
	}

	// Priority shares: half on the first action, the rest split down
	// the list, remainder to the last.
	weights := []int{5, 3, 2}
	sum := 0
	for i := range priorities {
		if i < len(weights) {
			sum += weights[i]
		}
	}
	spent := 0
	for i, focus := range priorities {
		if i >= len(weights) {
			break
		}
		share := turns * weights[i] / sum
		if i == len(priorities)-1 || i == len(weights)-1 {
			share = turns - spent
		}
		if share <= 0 {
			continue
		}
		res, err := economy.RunTurns(e, share, focus)
		if err != nil {
			break
		}
		spent += res.Spent
		if res.Stopped() {
			break // triage deals with the shortage next
		}
	}
}

// prepend puts focus at the head of the list, dropping a duplicate.
func prepend(list []economy.Focus, focus economy.Focus) []economy.Focus {
	out := []economy.Focus{focus}
	for _, f := range list {
		if f != focus {
			out = append(out, f)
		}
	}
	return out
}

// triage is phase 5: hold the food reserve band, sell troops when upkeep
// is unsustainable, then spend surplus treasury on troops proportioned by
// the industry allocation and the archetype's aggression curve.
func (o *Opponent) triage(ctx *Context, s Strategy, events *[]Event) {
	e := o.Empire
	foodPrice := max(1, ctx.Market.FoodPrice)

	cons := economy.FoodConsumption(e)
	if e.Resources.Food < cons*foodBandLow {
		need := cons*foodBandHigh - e.Resources.Food
		qty := min(need, e.Resources.Treasury/2/foodPrice)
		if qty > 0 {
			e.Resources.Treasury -= qty * foodPrice
			e.Resources.Food += qty
		}
	} else if e.Resources.Food > cons*foodBandHigh*2 {
		surplus := e.Resources.Food - cons*foodBandHigh
		e.Resources.Food -= surplus
		e.Resources.Treasury += surplus * foodPrice * 4 / 5
	}

	// Unsustainable upkeep: shed troops until income covers expenses or
	// the cuts stop mattering.
	for i := 0; i < 5; i++ {
		if economy.Expenses(e) <= economy.Income(e, economy.FocusNone) ||
			e.Resources.Treasury >= economy.Expenses(e)*upkeepHorizon {
			break
		}
		sold := false
		for _, u := range empire.MilitaryTypes {
			cut := e.Troops.Count(u) / 10
			if cut == 0 {
				continue
			}
			e.Troops.Add(u, -cut)
			e.Resources.Treasury += cut * ctx.Market.UnitPrices[u] * 3 / 5
			sold = true
		}
		if !sold {
			break
		}
	}

	// Surplus spending, scaled by the aggression curve.
	aggression := empire.Clamp(s.Aggression+s.AggroRamp*float64(ctx.Round), 0, maxAggression)
	surplus := e.Resources.Treasury - economy.Expenses(e)*goldReserveTurns
	spend := int(float64(surplus) * aggression)
	if spend <= 0 {
		return
	}
	bought := 0
	for _, u := range empire.MilitaryTypes {
		price := max(1, ctx.Market.UnitPrices[u])
		qty := spend * e.Alloc.Share(u) / 100 / price
		if qty <= 0 {
			continue
		}
		e.Resources.Treasury -= qty * price
		e.Troops.Add(u, qty)
		bought += qty
	}

	// Caster-minded archetypes keep their towers staffed.
	if s.ShieldMandate || s.ScryChance >= 0.3 {
		magePrice := max(1, ctx.Market.UnitPrices[empire.UnitMages])
		room := economy.MageCapacity(e) - e.Troops.Mages
		qty := min(room, e.Resources.Treasury/4/magePrice)
		if qty > 0 {
			e.Resources.Treasury -= qty * magePrice
			e.Troops.Add(empire.UnitMages, qty)
		}
	}

	if bought > 0 {
		*events = append(*events, Event{
			Round: ctx.Round, Actor: e.Name, Category: "economy",
			Text: fmt.Sprintf("%s mustered %s fresh troops", e.Name, humanize.Comma(int64(bought))),
		})
	}
}

// defend is phase 6: re-shield when the mandate applies and the previous
// shield lapsed.
func (o *Opponent) defend(ctx *Context, s Strategy) {
	e := o.Empire
	if !s.ShieldMandate || e.Shielded(ctx.Round) {
		return
	}
	magic.Cast(e, nil, magic.SpellShield, ctx.Round, ctx.RNG)
}
