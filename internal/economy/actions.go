// Multi-turn actions. Every action processes the economy one turn at a
// time and halts at the last completed turn when food would go negative
// (starvation, with desertion) or debt passes double the loan ceiling
// (loan emergency, no desertion). Running out of turns is not an
// emergency.
package economy

import (
	"errors"
	"math"

	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

var (
	ErrNoTurns          = errors.New("economy: no turns available")
	ErrInvalidRequest   = errors.New("economy: invalid request")
	ErrInsufficientLand = errors.New("economy: not enough free land")
	ErrNotOwned         = errors.New("economy: cannot demolish more than owned")
)

// StopReason codes why a multi-turn action ended before its request.
type StopReason uint8

const (
	StopNone StopReason = iota
	StopStarvation
	StopLoanEmergency
	StopNoFunds
)

// String returns the reason code's name.
func (r StopReason) String() string {
	switch r {
	case StopStarvation:
		return "starvation"
	case StopLoanEmergency:
		return "loan emergency"
	case StopNoFunds:
		return "out of funds"
	default:
		return "none"
	}
}

// Result reports a completed or partially completed action.
type Result struct {
	Requested   int
	Spent       int
	Stop        StopReason
	Income      int
	Expenses    int
	FoodDelta   int
	EnergyDelta int
	LandGained  int
	Built       int
	Razed       int
	Refund      int
	Produced    empire.Troops
}

// Stopped reports whether the action hit an emergency.
func (r Result) Stopped() bool { return r.Stop != StopNone }

func (r *Result) add(d Delta) {
	r.Income += d.Income
	r.Expenses += d.Expenses
	r.FoodDelta += d.Food
	r.EnergyDelta += d.Energy
	for _, u := range empire.MilitaryTypes {
		r.Produced.Add(u, d.Produced.Count(u))
	}
}

// loanEmergency reports whether debt passed double the net-worth-based
// loan ceiling (net worth / 2), i.e. debt > net worth.
func loanEmergency(e *empire.Empire) bool {
	return e.Debt > e.NetWorth()
}

// step processes one turn with emergency handling. It snapshots the
// empire, applies the turn, and on an emergency restores the snapshot so
// the action halts at the last completed turn. Returns the stop reason,
// or StopNone when the turn completed.
func step(e *empire.Empire, focus Focus, res *Result) StopReason {
	saved := *e
	d := ProcessTurn(e, focus)

	if e.Resources.Food < 0 {
		*e = saved
		Desert(e)
		return StopStarvation
	}
	if loanEmergency(e) {
		*e = saved
		return StopLoanEmergency
	}

	e.Turns--
	res.Spent++
	res.add(d)
	return StopNone
}

// RunTurns spends up to the requested turns on a focused economy action
// (farming, cashing, industry or meditation).
func RunTurns(e *empire.Empire, turns int, focus Focus) (Result, error) {
	if turns <= 0 {
		return Result{}, ErrInvalidRequest
	}
	if e.Turns <= 0 {
		return Result{}, ErrNoTurns
	}

	res := Result{Requested: turns}
	for i := 0; i < turns && e.Turns > 0; i++ {
		if res.Stop = step(e, focus, &res); res.Stopped() {
			break
		}
	}
	return res, nil
}

// ExploreGain returns the land found by one turn of exploration: a
// reciprocal of current land, scaled by explore modifiers, never below 1.
func ExploreGain(e *empire.Empire) int {
	gain := 60000 / float64(e.Resources.Land+4000)
	gain *= 1 + e.Mod(empire.StatExplore)
	return int(math.Max(1, math.Round(gain)))
}

// Explore spends up to the requested turns searching for new land. Found
// land arrives unused.
func Explore(e *empire.Empire, turns int) (Result, error) {
	if turns <= 0 {
		return Result{}, ErrInvalidRequest
	}
	if e.Turns <= 0 {
		return Result{}, ErrNoTurns
	}

	res := Result{Requested: turns}
	for i := 0; i < turns && e.Turns > 0; i++ {
		if res.Stop = step(e, FocusNone, &res); res.Stopped() {
			break
		}
		gain := ExploreGain(e)
		e.Resources.Land += gain
		e.Resources.FreeLand += gain
		res.LandGained += gain
	}
	return res, nil
}

// BuildCost returns the gold cost of one building, proportional to land
// and existing building count and reduced by build modifiers.
func BuildCost(e *empire.Empire) int {
	cost := 1750 + 0.25*float64(e.Resources.Land) + 0.40*float64(e.Buildings.Total())
	cost *= 1 - empire.Clamp(e.Mod(empire.StatBuild), -1, 0.5)
	return int(math.Max(1, math.Floor(cost)))
}

// BuildRate returns buildings constructed (or demolished) per turn. Scales
// with land and is floored so small empires still make progress.
func BuildRate(e *empire.Empire) int {
	return max(6, e.Resources.Land/250)
}

// demolishRefund is the fraction of build cost returned on demolition.
const demolishRefund = 0.25

// Build constructs the requested building counts on free land, spending
// turns at the build rate and gold at the build cost. Halts early when the
// treasury cannot cover the next building.
func Build(e *empire.Empire, want map[empire.BuildingType]int) (Result, error) {
	total := 0
	for _, n := range want {
		if n < 0 {
			return Result{}, ErrInvalidRequest
		}
		total += n
	}
	if total == 0 {
		return Result{}, ErrInvalidRequest
	}
	if total > e.Resources.FreeLand {
		return Result{}, ErrInsufficientLand
	}
	if e.Turns <= 0 {
		return Result{}, ErrNoTurns
	}

	// Copy the request so partial progress can be tracked in canonical
	// building order (map iteration order is not deterministic).
	remaining := make([]int, len(empire.BuildingTypes))
	for i, t := range empire.BuildingTypes {
		remaining[i] = want[t]
	}

	res := Result{Requested: total}
	for res.Built < total && e.Turns > 0 {
		if res.Stop = step(e, FocusNone, &res); res.Stopped() {
			break
		}

		quota := BuildRate(e)
		for i, t := range empire.BuildingTypes {
			for remaining[i] > 0 && quota > 0 {
				cost := BuildCost(e)
				if e.Resources.Treasury < cost {
					res.Stop = StopNoFunds
					return res, nil
				}
				e.Resources.Treasury -= cost
				e.Buildings.Add(t, 1)
				e.Resources.FreeLand--
				remaining[i]--
				quota--
				res.Built++
			}
		}
	}
	return res, nil
}

// Demolish tears down the requested building counts, refunding a quarter
// of the build cost and returning the land to the unused pool.
func Demolish(e *empire.Empire, want map[empire.BuildingType]int) (Result, error) {
	total := 0
	for t, n := range want {
		if n < 0 {
			return Result{}, ErrInvalidRequest
		}
		if n > e.Buildings.Count(t) {
			return Result{}, ErrNotOwned
		}
		total += n
	}
	if total == 0 {
		return Result{}, ErrInvalidRequest
	}
	if e.Turns <= 0 {
		return Result{}, ErrNoTurns
	}

	remaining := make([]int, len(empire.BuildingTypes))
	for i, t := range empire.BuildingTypes {
		remaining[i] = want[t]
	}

	res := Result{Requested: total}
	for res.Razed < total && e.Turns > 0 {
		if res.Stop = step(e, FocusNone, &res); res.Stopped() {
			break
		}

		quota := BuildRate(e)
		for i, t := range empire.BuildingTypes {
			for remaining[i] > 0 && quota > 0 {
				refund := int(float64(BuildCost(e)) * demolishRefund)
				e.Resources.Treasury += refund
				res.Refund += refund
				e.Buildings.Add(t, -1)
				e.Resources.FreeLand++
				remaining[i]--
				quota--
				res.Razed++
			}
		}
	}
	return res, nil
}
