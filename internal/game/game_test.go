package game

import (
	"testing"

	"github.com/blake365/promisance-rogue-sub000/internal/bank"
	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

func newTestRun(seed int64) *Run {
	return New(seed, "player", empire.RaceHuman, empire.EraPresent)
}

// playThrough runs a fixed scripted policy to the end: spend every
// player turn on cashing, skip the shop.
func playThrough(t *testing.T, r *Run) {
	t.Helper()
	for i := 0; i < 100 && !r.Complete(); i++ {
		switch r.Phase {
		case PhasePlayer:
			res, err := r.Apply(Action{Kind: ActionTurns, Turns: r.Player.Turns, Focus: economy.FocusCash})
			if err != nil {
				t.Fatalf("round %d player action: %v", r.Round, err)
			}
			if res.Stop != economy.StopNone && r.Phase == PhasePlayer {
				r.Apply(Action{Kind: ActionEndPhase})
			}
		case PhaseShop:
			if _, err := r.Apply(Action{Kind: ActionEndPhase}); err != nil {
				t.Fatalf("round %d shop end: %v", r.Round, err)
			}
		default:
			t.Fatalf("unexpected phase %v", r.Phase)
		}
	}
}

func TestRunCompletesAfterFinalRound(t *testing.T) {
	r := newTestRun(1001)
	playThrough(t, r)

	if !r.Complete() {
		t.Fatalf("run still in phase %v at round %d", r.Phase, r.Round)
	}
	if r.Round != TotalRounds {
		t.Fatalf("completed at round %d, want %d", r.Round, TotalRounds)
	}
	if r.Outcome == OutcomeOpen {
		t.Fatal("completed run has no outcome")
	}
	if r.Stats.PeakNetWorth < r.Player.NetWorth() {
		t.Fatalf("peak net worth %d below final %d", r.Stats.PeakNetWorth, r.Player.NetWorth())
	}
}

func TestShortRunHonorsRoundOverride(t *testing.T) {
	r := newTestRun(11)
	r.SetRounds(3)
	playThrough(t, r)

	if !r.Complete() {
		t.Fatalf("run still in phase %v", r.Phase)
	}
	if r.Round != 3 {
		t.Fatalf("completed at round %d, want 3", r.Round)
	}
}

func TestPlayerPhaseAutoAdvancesToShop(t *testing.T) {
	r := newTestRun(5)
	res, err := r.Apply(Action{Kind: ActionTurns, Turns: r.Player.Turns, Focus: economy.FocusFarm})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stop == economy.StopNone && r.Phase != PhaseShop {
		t.Fatalf("phase = %v after exhausting turns, want shop", r.Phase)
	}
	if r.Phase == PhaseShop && r.Market == nil {
		t.Fatal("shop phase without a market")
	}
}

func TestWrongPhaseRejected(t *testing.T) {
	r := newTestRun(5)

	// Shop action during the player phase.
	if _, err := r.Apply(Action{Kind: ActionBuyFood, Amount: 100}); err != ErrWrongPhase {
		t.Fatalf("buy food in player phase: %v", err)
	}

	r.Apply(Action{Kind: ActionEndPhase})
	if r.Phase != PhaseShop {
		t.Fatalf("phase = %v", r.Phase)
	}
	if _, err := r.Apply(Action{Kind: ActionExplore, Turns: 2}); err != ErrWrongPhase {
		t.Fatalf("explore in shop phase: %v", err)
	}
}

func TestAttackUnknownTarget(t *testing.T) {
	r := newTestRun(5)
	gold, turns := r.Player.Resources.Treasury, r.Player.Turns
	if _, err := r.Apply(Action{Kind: ActionAttack, TargetID: "nobody"}); err != ErrUnknownTarget {
		t.Fatalf("err = %v", err)
	}
	if r.Player.Resources.Treasury != gold || r.Player.Turns != turns {
		t.Fatal("rejected attack mutated the player")
	}
}

func TestDraftOncePerRound(t *testing.T) {
	r := newTestRun(77)
	r.Apply(Action{Kind: ActionEndPhase})
	if len(r.Market.Options) != 3 {
		t.Fatalf("got %d draft options", len(r.Market.Options))
	}

	pick := r.Market.Options[0].ID
	if _, err := r.Apply(Action{Kind: ActionDraft, BonusID: pick}); err != nil {
		t.Fatal(err)
	}
	if !r.Player.HasBonus(pick) {
		t.Fatal("draft pick not granted")
	}
	if _, err := r.Apply(Action{Kind: ActionDraft, BonusID: pick}); err != ErrDraftTaken {
		t.Fatalf("second draft: %v", err)
	}
}

func TestShopTransactions(t *testing.T) {
	r := newTestRun(42)
	r.Apply(Action{Kind: ActionEndPhase})

	food := r.Player.Resources.Food
	gold := r.Player.Resources.Treasury
	res, err := r.Apply(Action{Kind: ActionBuyFood, Amount: 500})
	if err != nil {
		t.Fatal(err)
	}
	if r.Player.Resources.Food != food+500 {
		t.Fatalf("food = %d, want %d", r.Player.Resources.Food, food+500)
	}
	if r.Player.Resources.Treasury != gold-res.Gold {
		t.Fatalf("treasury delta %d, want %d", gold-r.Player.Resources.Treasury, res.Gold)
	}

	if _, err := r.Apply(Action{Kind: ActionDeposit, Amount: 10000}); err != nil {
		t.Fatal(err)
	}
	if r.Player.Savings != 10000 {
		t.Fatalf("savings = %d", r.Player.Savings)
	}
}

func TestSetTaxAndAllocation(t *testing.T) {
	r := newTestRun(16)

	if _, err := r.Apply(Action{Kind: ActionSetTax, TaxRate: 60}); err != nil {
		t.Fatal(err)
	}
	if r.Player.TaxRate != 60 {
		t.Fatalf("tax rate = %d, want 60", r.Player.TaxRate)
	}
	if _, err := r.Apply(Action{Kind: ActionSetTax, TaxRate: 101}); err != ErrBadTaxRate {
		t.Fatalf("tax 101: %v", err)
	}
	if r.Player.TaxRate != 60 {
		t.Fatal("rejected tax change mutated the rate")
	}

	want := empire.Allocation{Infantry: 25, Armor: 25, Fliers: 25, Ships: 25}
	if _, err := r.Apply(Action{Kind: ActionSetAllocation, Alloc: want}); err != nil {
		t.Fatal(err)
	}
	if r.Player.Alloc != want {
		t.Fatalf("alloc = %+v", r.Player.Alloc)
	}

	bad := empire.Allocation{Infantry: 90, Armor: 20, Fliers: -5, Ships: -5}
	if _, err := r.Apply(Action{Kind: ActionSetAllocation, Alloc: bad}); err != ErrBadAllocation {
		t.Fatalf("bad alloc: %v", err)
	}
	if r.Player.Alloc != want {
		t.Fatal("rejected allocation mutated the shares")
	}
}

func TestRoundCloseAppliesBankInterest(t *testing.T) {
	r := newTestRun(21)

	// Spend no turns: every accrual must come from the round close.
	if _, err := r.Apply(Action{Kind: ActionEndPhase}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Apply(Action{Kind: ActionDeposit, Amount: 30000}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Apply(Action{Kind: ActionLoan, Amount: 10000}); err != nil {
		t.Fatal(err)
	}
	savings, debt := r.Player.Savings, r.Player.Debt

	// Expected balances: the same per-turn accrual applied for the full
	// turn budget.
	scratch := empire.New("scratch", empire.RaceHuman, empire.EraPresent)
	scratch.Savings, scratch.Debt = savings, debt
	for i := 0; i < economy.TurnsPerRound; i++ {
		bank.Accrue(scratch, economy.TurnsPerRound)
	}

	if _, err := r.Apply(Action{Kind: ActionEndPhase}); err != nil {
		t.Fatal(err)
	}
	if r.Player.Savings <= savings {
		t.Fatalf("savings %d unchanged across the round close", r.Player.Savings)
	}
	if r.Player.Debt <= debt {
		t.Fatalf("debt %d unchanged across the round close", r.Player.Debt)
	}
	if r.Player.Savings != scratch.Savings {
		t.Fatalf("savings = %d, want %d", r.Player.Savings, scratch.Savings)
	}
	if r.Player.Debt != scratch.Debt {
		t.Fatalf("debt = %d, want %d", r.Player.Debt, scratch.Debt)
	}
}

func TestActionsAfterCompleteRejected(t *testing.T) {
	r := newTestRun(1001)
	playThrough(t, r)
	if _, err := r.Apply(Action{Kind: ActionEndPhase}); err != ErrRunComplete {
		t.Fatalf("err = %v", err)
	}
}

func TestRunDeterminism(t *testing.T) {
	const seed = 90210

	final := func() ([12]int, []Standing, int) {
		r := newTestRun(seed)
		playThrough(t, r)
		e := r.Player
		state := [12]int{
			e.Resources.Treasury, e.Resources.Food, e.Resources.Energy,
			e.Resources.Land, e.Resources.FreeLand, e.Debt, e.Savings,
			e.Troops.Infantry, e.Troops.Mages, e.Population, e.Health,
			e.Buildings.Total(),
		}
		return state, r.Standings(), len(r.News)
	}

	s1, st1, n1 := final()
	s2, st2, n2 := final()
	if s1 != s2 {
		t.Fatalf("player state diverged:\n%v\n%v", s1, s2)
	}
	if n1 != n2 {
		t.Fatalf("news length diverged: %d vs %d", n1, n2)
	}
	if len(st1) != len(st2) {
		t.Fatalf("standings length diverged")
	}
	for i := range st1 {
		if st1[i] != st2[i] {
			t.Fatalf("standings row %d diverged: %+v vs %+v", i, st1[i], st2[i])
		}
	}
}

func TestConservationAcrossRun(t *testing.T) {
	r := newTestRun(31337)
	playThrough(t, r)

	if !r.Player.LandConserved() {
		t.Fatal("player land conservation broken")
	}
	for _, o := range r.Opponents {
		if o.Alive() && !o.Empire.LandConserved() {
			t.Fatalf("%s land conservation broken", o.Empire.Name)
		}
	}
	if !r.Player.Alloc.Valid() {
		t.Fatal("player allocation no longer sums to 100")
	}
}

func TestDefeatByDebt(t *testing.T) {
	r := newTestRun(8)
	r.Player.Debt = 100 * r.Player.NetWorth()
	if _, err := r.Apply(Action{Kind: ActionEndPhase}); err != nil {
		t.Fatal(err)
	}
	if !r.Complete() || r.Outcome != OutcomeBankrupt {
		t.Fatalf("phase %v outcome %v, want complete/bankrupt", r.Phase, r.Outcome)
	}
}

func TestStandingsRankedByNetWorth(t *testing.T) {
	r := newTestRun(12)
	rows := r.Standings()
	if len(rows) != len(r.Opponents)+1 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].NetWorth > rows[i-1].NetWorth {
			t.Fatalf("standings out of order at row %d", i)
		}
	}
}
