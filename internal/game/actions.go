package game

import (
	"errors"
	"fmt"

	"github.com/blake365/promisance-rogue-sub000/internal/bank"
	"github.com/blake365/promisance-rogue-sub000/internal/bot"
	"github.com/blake365/promisance-rogue-sub000/internal/combat"
	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/magic"
)

var (
	ErrWrongPhase    = errors.New("game: action not valid in this phase")
	ErrRunComplete   = errors.New("game: run is complete")
	ErrUnknownTarget = errors.New("game: unknown or defeated target")
	ErrUnknownAction = errors.New("game: unknown action kind")
	ErrDraftTaken    = errors.New("game: draft pick already made this round")
	ErrBadDraftPick  = errors.New("game: bonus not among this round's options")
	ErrBadTaxRate    = errors.New("game: tax rate must be between 0 and 100")
	ErrBadAllocation = errors.New("game: allocation shares must be non-negative and sum to 100")
)

// ActionKind names one externally issued request.
type ActionKind uint8

const (
	// Player phase.
	ActionTurns ActionKind = iota
	ActionExplore
	ActionBuild
	ActionDemolish
	ActionAttack
	ActionCast
	ActionShiftEra
	ActionSetTax
	ActionSetAllocation
	ActionEndPhase

	// Shop phase (EndPhase applies here too).
	ActionDraft
	ActionBuyUnits
	ActionSellUnits
	ActionBuyFood
	ActionSellFood
	ActionDeposit
	ActionWithdraw
	ActionLoan
	ActionRepay
)

// Action is one request against the run: a kind plus whichever
// parameters that kind reads.
type Action struct {
	Kind ActionKind `json:"kind"`

	Turns int           `json:"turns,omitempty"`
	Focus economy.Focus `json:"focus,omitempty"`

	Build    map[empire.BuildingType]int `json:"build,omitempty"`
	Demolish map[empire.BuildingType]int `json:"demolish,omitempty"`

	TargetID   string            `json:"target_id,omitempty"`
	AttackType combat.AttackType `json:"attack_type,omitempty"`
	Spell      magic.SpellID     `json:"spell,omitempty"`
	Era        empire.Era        `json:"era,omitempty"`

	Unit   empire.UnitType `json:"unit,omitempty"`
	Count  int             `json:"count,omitempty"`
	Amount int             `json:"amount,omitempty"`

	TaxRate int               `json:"tax_rate,omitempty"`
	Alloc   empire.Allocation `json:"alloc,omitempty"`

	BonusID string `json:"bonus_id,omitempty"`
}

// Result is the structured outcome of one action: whether it took
// effect, what it cost, and any engine sub-result.
type Result struct {
	OK         bool               `json:"ok"`
	TurnsSpent int                `json:"turns_spent"`
	Stop       economy.StopReason `json:"stop"`

	Econ   economy.Result `json:"econ"`
	Combat *combat.Report `json:"combat,omitempty"`
	Spell  *magic.Report  `json:"spell,omitempty"`
	Gold   int            `json:"gold,omitempty"` // market transaction amount

	Phase Phase `json:"phase"` // phase after the action
}

// Apply executes one action against the run. Validation failures return
// an error with no state change; emergency stops return OK with the
// stop reason set. Player-phase actions auto-advance to the shop phase
// when the turn budget empties.
func (r *Run) Apply(a Action) (Result, error) {
	if r.Complete() {
		return Result{Phase: PhaseComplete}, ErrRunComplete
	}

	var (
		res Result
		err error
	)
	switch r.Phase {
	case PhasePlayer:
		res, err = r.applyPlayer(a)
	case PhaseShop:
		res, err = r.applyShop(a)
	default:
		return Result{Phase: r.Phase}, ErrWrongPhase
	}
	if err != nil {
		res.Phase = r.Phase
		return res, err
	}

	if r.checkDefeat() {
		res.Phase = r.Phase
		return res, nil
	}
	if r.Phase == PhasePlayer && r.Player.Turns <= 0 {
		r.enterShop()
	}
	res.OK = true
	res.Phase = r.Phase
	return res, nil
}

func (r *Run) applyPlayer(a Action) (Result, error) {
	e := r.Player
	switch a.Kind {
	case ActionTurns:
		econ, err := economy.RunTurns(e, a.Turns, a.Focus)
		return econResult(econ), err

	case ActionExplore:
		econ, err := economy.Explore(e, a.Turns)
		return econResult(econ), err

	case ActionBuild:
		econ, err := economy.Build(e, a.Build)
		return econResult(econ), err

	case ActionDemolish:
		econ, err := economy.Demolish(e, a.Demolish)
		return econResult(econ), err

	case ActionAttack:
		return r.playerAttack(a)

	case ActionCast:
		return r.playerCast(a)

	case ActionShiftEra:
		mres, err := magic.ShiftEra(e, a.Era, r.Round, r.RNG)
		if err != nil {
			return Result{}, err
		}
		out := econResult(mres.Econ)
		out.Spell = mres.Report
		return out, nil

	case ActionSetTax:
		if a.TaxRate < 0 || a.TaxRate > 100 {
			return Result{}, ErrBadTaxRate
		}
		e.TaxRate = a.TaxRate
		return Result{}, nil

	case ActionSetAllocation:
		if !a.Alloc.Valid() {
			return Result{}, ErrBadAllocation
		}
		e.Alloc = a.Alloc
		return Result{}, nil

	case ActionEndPhase:
		r.enterShop()
		return Result{}, nil

	default:
		if a.Kind >= ActionDraft {
			return Result{}, ErrWrongPhase
		}
		return Result{}, ErrUnknownAction
	}
}

func (r *Run) playerAttack(a Action) (Result, error) {
	target := r.opponent(a.TargetID)
	if target == nil {
		return Result{}, ErrUnknownTarget
	}

	cres, err := combat.Attack(r.Player, target.Empire, a.AttackType, r.Round, r.RNG)
	if err != nil {
		return Result{}, err
	}
	out := econResult(cres.Econ)
	out.Combat = cres.Report
	if cres.Report == nil {
		return out, nil // emergency stop before battle
	}

	target.Memory.RecordAttackSuffered(r.Player.ID.String(), cres.Report.LandTaken)
	if cres.Report.Win {
		r.News = append(r.News, bot.Event{
			Round: r.Round, Actor: r.Player.Name, Category: "attack",
			Text: fmt.Sprintf("%s seized %d acres from %s",
				r.Player.Name, cres.Report.LandTaken, target.Empire.Name),
		})
	}
	return out, nil
}

func (r *Run) playerCast(a Action) (Result, error) {
	var target *bot.Opponent
	var def *empire.Empire
	if magic.Catalog[a.Spell].Enemy {
		if target = r.opponent(a.TargetID); target == nil {
			return Result{}, ErrUnknownTarget
		}
		def = target.Empire
	}

	mres, err := magic.Cast(r.Player, def, a.Spell, r.Round, r.RNG)
	if err != nil {
		return Result{}, err
	}
	out := econResult(mres.Econ)
	out.Spell = mres.Report
	if mres.Report != nil && target != nil {
		target.Memory.RecordSpellSuffered(r.Player.ID.String())
	}
	return out, nil
}

func (r *Run) applyShop(a Action) (Result, error) {
	e := r.Player
	switch a.Kind {
	case ActionDraft:
		if r.Market.Drafted {
			return Result{}, ErrDraftTaken
		}
		if !r.Market.Draft(e, a.BonusID) {
			return Result{}, ErrBadDraftPick
		}
		return Result{}, nil

	case ActionBuyUnits:
		gold, err := r.Market.BuyUnits(e, a.Unit, a.Count)
		return Result{Gold: gold}, err
	case ActionSellUnits:
		gold, err := r.Market.SellUnits(e, a.Unit, a.Count)
		return Result{Gold: gold}, err
	case ActionBuyFood:
		gold, err := r.Market.BuyFood(e, a.Amount)
		return Result{Gold: gold}, err
	case ActionSellFood:
		gold, err := r.Market.SellFood(e, a.Amount)
		return Result{Gold: gold}, err

	case ActionDeposit:
		return Result{Gold: a.Amount}, bank.Deposit(e, a.Amount)
	case ActionWithdraw:
		return Result{Gold: a.Amount}, bank.Withdraw(e, a.Amount)
	case ActionLoan:
		return Result{Gold: a.Amount}, bank.Loan(e, a.Amount)
	case ActionRepay:
		return Result{Gold: a.Amount}, bank.Repay(e, a.Amount)

	case ActionEndPhase:
		r.runBotPhase()
		return Result{}, nil

	default:
		if a.Kind < ActionEndPhase {
			return Result{}, ErrWrongPhase
		}
		return Result{}, ErrUnknownAction
	}
}

func econResult(econ economy.Result) Result {
	return Result{
		TurnsSpent: econ.Spent,
		Stop:       econ.Stop,
		Econ:       econ,
	}
}
