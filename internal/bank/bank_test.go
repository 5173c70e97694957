package bank

import (
	"errors"
	"testing"

	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

func testEmpire() *empire.Empire {
	return empire.New("Bank Test", empire.RaceHuman, empire.EraPresent)
}

func TestDepositAndWithdraw(t *testing.T) {
	e := testEmpire()
	if err := Deposit(e, 20000); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if e.Resources.Treasury != empire.StartTreasury-20000 || e.Savings != 20000 {
		t.Fatalf("balances after deposit: treasury=%d savings=%d", e.Resources.Treasury, e.Savings)
	}
	if err := Withdraw(e, 5000); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if e.Resources.Treasury != empire.StartTreasury-15000 || e.Savings != 15000 {
		t.Fatalf("balances after withdraw: treasury=%d savings=%d", e.Resources.Treasury, e.Savings)
	}
}

// TestLoanCeilingRejected ensures a loan above networth/2 is rejected with
// balances unchanged.
func TestLoanCeilingRejected(t *testing.T) {
	e := testEmpire()
	over := LoanCeiling(e) + 1
	treasury, debt := e.Resources.Treasury, e.Debt

	err := Loan(e, over)
	if !errors.Is(err, ErrCeilingExceeded) {
		t.Fatalf("Loan(%d) error = %v, want ErrCeilingExceeded", over, err)
	}
	if e.Resources.Treasury != treasury || e.Debt != debt {
		t.Fatalf("balances changed on rejected loan: treasury=%d debt=%d", e.Resources.Treasury, e.Debt)
	}
}

func TestDepositCeilingRejected(t *testing.T) {
	e := testEmpire()
	e.Resources.Treasury = SavingsCeiling(e) * 2
	over := SavingsCeiling(e) + 1
	if err := Deposit(e, over); !errors.Is(err, ErrCeilingExceeded) {
		t.Fatalf("Deposit over ceiling error = %v, want ErrCeilingExceeded", err)
	}
	if e.Savings != 0 {
		t.Fatalf("savings changed on rejected deposit: %d", e.Savings)
	}
}

func TestDepositInsufficientFunds(t *testing.T) {
	e := testEmpire()
	if err := Deposit(e, e.Resources.Treasury+1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("error = %v, want ErrInsufficientFunds", err)
	}
}

func TestRepayCapsAtDebt(t *testing.T) {
	e := testEmpire()
	if err := Loan(e, 10000); err != nil {
		t.Fatalf("Loan: %v", err)
	}
	if err := Repay(e, 50000); err != nil {
		t.Fatalf("Repay: %v", err)
	}
	if e.Debt != 0 {
		t.Fatalf("debt = %d, want 0", e.Debt)
	}
	if e.Resources.Treasury != empire.StartTreasury {
		t.Fatalf("treasury = %d, want %d", e.Resources.Treasury, empire.StartTreasury)
	}
}

// TestAccrueSplitsRoundRate pins one turn of interest at the documented
// per-round rates divided by turns-per-round.
func TestAccrueSplitsRoundRate(t *testing.T) {
	e := testEmpire()
	e.Savings = 30000
	e.Debt = 30000

	Accrue(e, 30)

	// 30000 * 0.04/30 = 40; 30000 * 0.075/30 = 75.
	if e.Savings != 30040 {
		t.Fatalf("savings = %d, want 30040", e.Savings)
	}
	if e.Debt != 30075 {
		t.Fatalf("debt = %d, want 30075", e.Debt)
	}
}

func TestAccrueInterestModifier(t *testing.T) {
	e := testEmpire()
	e.Savings = 30000
	e.Debt = 30000
	e.Bonuses = []empire.Bonus{{
		ID:     "usury-charter",
		Effect: empire.Effect{Kind: empire.EffectInterest, Amount: 0.02},
	}}

	Accrue(e, 30)

	// Savings 0.06/30 = 60; debt 0.055/30 = 55.
	if e.Savings != 30060 {
		t.Fatalf("savings = %d, want 30060", e.Savings)
	}
	if e.Debt != 30055 {
		t.Fatalf("debt = %d, want 30055", e.Debt)
	}
}
