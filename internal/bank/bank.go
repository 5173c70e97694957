// Package bank provides savings and loan transactions plus the per-turn
// interest accrual the economy runs every turn. Ceilings scale with net
// worth; a transaction past its ceiling is rejected with balances
// unchanged.
package bank

import (
	"errors"
	"math"

	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

// Per-round base rates, divided across the turns of a round when accrued.
const (
	SavingsRate = 0.04
	DebtRate    = 0.075
)

var (
	ErrInvalidAmount     = errors.New("bank: amount must be positive")
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	ErrCeilingExceeded   = errors.New("bank: ceiling exceeded")
)

// SavingsCeiling returns the maximum savings balance: 1.5x net worth.
func SavingsCeiling(e *empire.Empire) int {
	nw := e.NetWorth()
	return nw + nw/2
}

// LoanCeiling returns the maximum outstanding debt: half of net worth.
func LoanCeiling(e *empire.Empire) int {
	return e.NetWorth() / 2
}

// Deposit moves treasury into savings.
func Deposit(e *empire.Empire, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > e.Resources.Treasury {
		return ErrInsufficientFunds
	}
	if e.Savings+amount > SavingsCeiling(e) {
		return ErrCeilingExceeded
	}
	e.Resources.Treasury -= amount
	e.Savings += amount
	return nil
}

// Withdraw moves savings back into treasury.
func Withdraw(e *empire.Empire, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > e.Savings {
		return ErrInsufficientFunds
	}
	e.Savings -= amount
	e.Resources.Treasury += amount
	return nil
}

// Loan borrows into the treasury, bounded by the loan ceiling.
func Loan(e *empire.Empire, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if e.Debt+amount > LoanCeiling(e) {
		return ErrCeilingExceeded
	}
	e.Debt += amount
	e.Resources.Treasury += amount
	return nil
}

// Repay pays down debt from the treasury.
func Repay(e *empire.Empire, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > e.Resources.Treasury {
		return ErrInsufficientFunds
	}
	if amount > e.Debt {
		amount = e.Debt
	}
	e.Resources.Treasury -= amount
	e.Debt -= amount
	return nil
}

// Accrue applies one turn's worth of interest to savings and debt. Bonus
// interest modifiers raise the savings rate and lower the debt rate, which
// never drops below zero.
func Accrue(e *empire.Empire, turnsPerRound int) {
	if turnsPerRound <= 0 {
		return
	}
	mod := e.InterestMod()
	sRate := (SavingsRate + mod) / float64(turnsPerRound)
	dRate := math.Max(0, DebtRate-mod) / float64(turnsPerRound)

	e.Savings += int(math.Floor(float64(e.Savings) * sRate))
	e.Debt += int(math.Floor(float64(e.Debt) * dRate))
}
