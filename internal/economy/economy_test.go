package economy

import (
	"errors"
	"testing"

	"github.com/blake365/promisance-rogue-sub000/internal/empire"
)

func testEmpire() *empire.Empire {
	e := empire.New("Econ Test", empire.RaceHuman, empire.EraPresent)
	e.Turns = TurnsPerRound
	return e
}

func TestIncomeMatchesDocumentedFormula(t *testing.T) {
	e := testEmpire()

	// pop 3000 * 0.55 * 0.40 tax * 1.0 health = 660, plus 40 markets *
	// 450 = 18000, divided by the 1.1 size tier (start net worth falls in
	// 100k..300k), no modifiers.
	base := (660.0 + 18000.0) / 1.1
	want := int(base)
	if got := Income(e, FocusNone); got != want {
		t.Fatalf("Income = %d, want %d", got, want)
	}
	if got := Income(e, FocusCash); got != int(base*1.25) {
		t.Fatalf("focused income = %d, want 25%% over base", got)
	}
}

func TestExpensesCapAtHalf(t *testing.T) {
	e := testEmpire()
	// Stack absurd expense reductions; the cap keeps half the cost.
	e.Bonuses = []empire.Bonus{
		{ID: "a", Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatExpenses, Amount: -0.60}},
		{ID: "b", Effect: empire.Effect{Kind: empire.EffectStatMod, Stat: empire.StatUpkeep, Amount: -0.60}},
	}
	plain := testEmpire()
	if got, floor := Expenses(e), Expenses(plain)/2; got < floor-1 {
		t.Fatalf("Expenses = %d, want no less than half of %d", got, Expenses(plain))
	}
}

func TestFoodFalloffPastSaturation(t *testing.T) {
	e := testEmpire()
	e.Resources.Land = 100
	e.Buildings = empire.Buildings{Farms: 90}
	e.Resources.FreeLand = 10

	dense := FoodProduction(e, FocusNone)

	e.Buildings.Farms = 75
	sparse := FoodProduction(e, FocusNone)

	// 90 farms on 100 land is past the 75% knee; per-farm yield must drop.
	if float64(dense)/90 >= float64(sparse)/75 {
		t.Fatalf("no falloff past saturation: dense=%d sparse=%d", dense, sparse)
	}
}

// TestRunTurnsSpendsBudget ensures turn accounting and land conservation
// across a plain cash action.
func TestRunTurnsSpendsBudget(t *testing.T) {
	e := testEmpire()
	res, err := RunTurns(e, 10, FocusCash)
	if err != nil {
		t.Fatalf("RunTurns: %v", err)
	}
	if res.Spent != 10 || e.Turns != TurnsPerRound-10 {
		t.Fatalf("spent=%d turnsLeft=%d, want 10/%d", res.Spent, e.Turns, TurnsPerRound-10)
	}
	if res.Stopped() {
		t.Fatalf("unexpected stop: %v", res.Stop)
	}
	if !e.LandConserved() {
		t.Fatal("land conservation violated")
	}
	if res.Income <= 0 {
		t.Fatalf("income = %d, want positive", res.Income)
	}
}

// TestStarvationHaltsWithDesertion ensures a mid-action food shortfall
// halts at the boundary turn and applies exactly 3% desertion.
func TestStarvationHaltsWithDesertion(t *testing.T) {
	e := testEmpire()
	// No farms, tiny land, huge army: consumption dwarfs production.
	e.Buildings = empire.Buildings{}
	e.Resources.Land = 100
	e.Resources.FreeLand = 100
	e.Resources.Food = 50
	e.Troops = empire.Troops{Infantry: 10000}
	e.Population = 1000

	res, err := RunTurns(e, 20, FocusCash)
	if err != nil {
		t.Fatalf("RunTurns: %v", err)
	}
	if res.Stop != StopStarvation {
		t.Fatalf("stop = %v, want starvation", res.Stop)
	}
	if res.Spent >= 20 {
		t.Fatalf("spent = %d, want early halt", res.Spent)
	}
	if e.Resources.Food < 0 {
		t.Fatalf("food = %d, want non-negative after halt", e.Resources.Food)
	}
	if e.Troops.Infantry != 10000-10000*3/100 {
		t.Fatalf("infantry = %d, want exactly 3%% desertion", e.Troops.Infantry)
	}
	if e.Population != 1000-1000*3/100 {
		t.Fatalf("population = %d, want exactly 3%% desertion", e.Population)
	}
}

// TestLoanEmergencyHalts ensures runaway debt stops an action without
// desertion.
func TestLoanEmergencyHalts(t *testing.T) {
	e := testEmpire()
	e.Population = 0
	e.TaxRate = 0
	e.Buildings.Markets = 0
	e.Debt = e.NetWorth() // one interest tick past here is an emergency
	infantry := e.Troops.Infantry

	res, err := RunTurns(e, 10, FocusNone)
	if err != nil {
		t.Fatalf("RunTurns: %v", err)
	}
	if res.Stop != StopLoanEmergency {
		t.Fatalf("stop = %v, want loan emergency", res.Stop)
	}
	if e.Troops.Infantry != infantry {
		t.Fatal("loan emergency must not desert troops")
	}
}

// TestExploreClosedForm checks N explore turns against the documented
// reciprocal formula summed N times.
func TestExploreClosedForm(t *testing.T) {
	e := testEmpire()

	land := e.Resources.Land
	want := 0
	for i := 0; i < 5; i++ {
		gain := int(float64(60000)/float64(land+4000) + 0.5)
		if gain < 1 {
			gain = 1
		}
		want += gain
		land += gain
	}

	res, err := Explore(e, 5)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if res.LandGained != want {
		t.Fatalf("LandGained = %d, want %d", res.LandGained, want)
	}
	if e.Resources.Land != empire.StartLand+want {
		t.Fatalf("land = %d, want %d", e.Resources.Land, empire.StartLand+want)
	}
	if !e.LandConserved() {
		t.Fatal("land conservation violated")
	}
}

func TestBuildConsumesFreeLandAndGold(t *testing.T) {
	e := testEmpire()
	free := e.Resources.FreeLand
	gold := e.Resources.Treasury

	res, err := Build(e, map[empire.BuildingType]int{empire.BuildFarms: 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Built != 10 {
		t.Fatalf("built = %d, want 10", res.Built)
	}
	if e.Resources.FreeLand != free-10 {
		t.Fatalf("free land = %d, want %d", e.Resources.FreeLand, free-10)
	}
	if !e.LandConserved() {
		t.Fatal("land conservation violated")
	}
	// Gold was spent on construction (income may offset some of it).
	if e.Buildings.Farms != 80 {
		t.Fatalf("farms = %d, want 80", e.Buildings.Farms)
	}
	_ = gold
}

func TestBuildRejectsOverFreeLand(t *testing.T) {
	e := testEmpire()
	_, err := Build(e, map[empire.BuildingType]int{empire.BuildHomes: e.Resources.FreeLand + 1})
	if !errors.Is(err, ErrInsufficientLand) {
		t.Fatalf("error = %v, want ErrInsufficientLand", err)
	}
	if e.Turns != TurnsPerRound {
		t.Fatal("rejected build must not spend turns")
	}
}

func TestDemolishRefundsAndFreesLand(t *testing.T) {
	e := testEmpire()
	free := e.Resources.FreeLand

	res, err := Demolish(e, map[empire.BuildingType]int{empire.BuildMarkets: 5})
	if err != nil {
		t.Fatalf("Demolish: %v", err)
	}
	if res.Razed != 5 || res.Refund <= 0 {
		t.Fatalf("razed=%d refund=%d", res.Razed, res.Refund)
	}
	if e.Buildings.Markets != 35 {
		t.Fatalf("markets = %d, want 35", e.Buildings.Markets)
	}
	if e.Resources.FreeLand != free+5 {
		t.Fatalf("free land = %d, want %d", e.Resources.FreeLand, free+5)
	}
	if !e.LandConserved() {
		t.Fatal("land conservation violated")
	}
}

func TestDemolishRejectsMoreThanOwned(t *testing.T) {
	e := testEmpire()
	_, err := Demolish(e, map[empire.BuildingType]int{empire.BuildTowers: 999})
	if !errors.Is(err, ErrNotOwned) {
		t.Fatalf("error = %v, want ErrNotOwned", err)
	}
}

func TestNegativeTreasuryBecomesDebt(t *testing.T) {
	e := testEmpire()
	e.Resources.Treasury = 0
	e.Population = 0
	e.TaxRate = 0
	e.Buildings.Markets = 0
	e.Troops = empire.Troops{Infantry: 5000}

	ProcessTurn(e, FocusNone)

	if e.Resources.Treasury != 0 {
		t.Fatalf("treasury = %d, want 0", e.Resources.Treasury)
	}
	if e.Debt == 0 {
		t.Fatal("unpaid expenses must convert to debt")
	}
}
