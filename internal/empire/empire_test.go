package empire

import "testing"

// TestStartingNetWorth pins the documented formula against the documented
// starting constants.
func TestStartingNetWorth(t *testing.T) {
	e := New("Test", RaceHuman, EraPresent)

	// treasury/50 + land*100 + food/10 + pop*2 + unit values.
	want := 50000/50 + 2000*100 + 10000/10 + 3000*2 +
		200*1 + 50*2 + 20*2 + 20*2 + 25*2
	if got := e.NetWorth(); got != want {
		t.Fatalf("NetWorth = %d, want %d", got, want)
	}
}

func TestNewEmpireConservesLand(t *testing.T) {
	e := New("Test", RaceElf, EraPast)
	if !e.LandConserved() {
		t.Fatalf("fresh empire violates land conservation: land=%d buildings=%d free=%d",
			e.Resources.Land, e.Buildings.Total(), e.Resources.FreeLand)
	}
}

func TestAllocationValid(t *testing.T) {
	cases := []struct {
		alloc Allocation
		want  bool
	}{
		{Allocation{Infantry: 40, Armor: 30, Fliers: 15, Ships: 15}, true},
		{Allocation{Infantry: 100}, true},
		{Allocation{Infantry: 40, Armor: 30, Fliers: 15, Ships: 16}, false},
		{Allocation{Infantry: 110, Armor: -10}, false},
	}
	for _, c := range cases {
		if got := c.alloc.Valid(); got != c.want {
			t.Fatalf("Valid(%+v) = %v, want %v", c.alloc, got, c.want)
		}
	}
}

// TestModStacksSameStat ensures race, era, innate and bonus modifiers for
// the same stat sum together.
func TestModStacksSameStat(t *testing.T) {
	e := New("Test", RaceTroll, EraPresent) // +20% offense from race
	e.InnateMods = map[Stat]float64{StatOffense: 0.05}
	e.Bonuses = append(e.Bonuses, Bonus{
		ID:     "war-council",
		Effect: Effect{Kind: EffectStatMod, Stat: StatOffense, Amount: 0.10},
	})

	want := 0.20 + 0.05 + 0.10
	if got := e.Mod(StatOffense); got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("Mod(offense) = %f, want %f", got, want)
	}
}

func TestAdjustHealthClamps(t *testing.T) {
	e := New("Test", RaceHuman, EraPresent)
	e.AdjustHealth(50)
	if e.Health != 100 {
		t.Fatalf("health = %d, want clamp at 100", e.Health)
	}
	e.AdjustHealth(-250)
	if e.Health != 0 {
		t.Fatalf("health = %d, want clamp at 0", e.Health)
	}
}

func TestTroopsAddFloorsAtZero(t *testing.T) {
	tr := Troops{Infantry: 5}
	tr.Add(UnitInfantry, -10)
	if tr.Infantry != 0 {
		t.Fatalf("infantry = %d, want 0", tr.Infantry)
	}
}

func TestBonusHelpers(t *testing.T) {
	e := New("Test", RaceHuman, EraPresent)
	e.Bonuses = []Bonus{
		{ID: "a", Effect: Effect{Kind: EffectBonusTurns, Amount: 5}},
		{ID: "b", Effect: Effect{Kind: EffectInterest, Amount: 0.01}},
		{ID: "c", Effect: Effect{Kind: EffectSpellCost, Amount: 0.50}},
		{ID: "d", Effect: Effect{Kind: EffectSpellCost, Amount: 0.50}},
	}
	if got := e.TurnBonus(); got != 5 {
		t.Fatalf("TurnBonus = %d, want 5", got)
	}
	if got := e.InterestMod(); got != 0.01 {
		t.Fatalf("InterestMod = %f, want 0.01", got)
	}
	if got := e.SpellCostMod(); got != 0.75 {
		t.Fatalf("SpellCostMod = %f, want cap 0.75", got)
	}
	if !e.HasBonus("a") || e.HasBonus("zzz") {
		t.Fatal("HasBonus lookup wrong")
	}
}
