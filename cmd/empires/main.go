// Command empires runs a seeded single-player empire campaign headless:
// a scripted regent plays every round against the bot roster, and each
// phase boundary is persisted so a run can be resumed.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/dustin/go-humanize"

	"github.com/blake365/promisance-rogue-sub000/internal/economy"
	"github.com/blake365/promisance-rogue-sub000/internal/empire"
	"github.com/blake365/promisance-rogue-sub000/internal/game"
	"github.com/blake365/promisance-rogue-sub000/internal/persistence"
	"github.com/blake365/promisance-rogue-sub000/internal/prng"
)

type config struct {
	Seed       int64  `env:"EMPIRES_SEED"`
	Rounds     int    `env:"EMPIRES_ROUNDS"`
	DBPath     string `env:"EMPIRES_DB" envDefault:"data/empires.db"`
	PlayerName string `env:"EMPIRES_PLAYER" envDefault:"Aurelia"`
	LogLevel   string `env:"EMPIRES_LOG_LEVEL" envDefault:"info"`
	Resume     string `env:"EMPIRES_RESUME"` // run id to continue, empty = new run
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "parse env:", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	r, version, err := loadOrCreate(db, cfg)
	if err != nil {
		return err
	}

	for !r.Complete() {
		playRound(r)
		if err := db.SaveRun(r, version); err != nil {
			return fmt.Errorf("save round %d: %w", r.Round, err)
		}
		version++
	}

	slog.Info("run complete", "rounds", r.Round, "outcome", r.Outcome.String())
	printStandings(r)
	printNews(r)
	return nil
}

func loadOrCreate(db *persistence.DB, cfg config) (*game.Run, int64, error) {
	if cfg.Resume != "" {
		r, version, err := db.LoadRun(cfg.Resume)
		if err != nil {
			return nil, 0, fmt.Errorf("resume %s: %w", cfg.Resume, err)
		}
		slog.Info("run resumed", "id", r.ID, "round", r.Round, "phase", r.Phase.String())
		return r, version, nil
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = prng.NewSeed(); err != nil {
			return nil, 0, fmt.Errorf("mint seed: %w", err)
		}
	}
	r := game.New(seed, cfg.PlayerName, empire.RaceHuman, empire.EraPresent)
	if cfg.Rounds > 0 {
		r.SetRounds(cfg.Rounds)
	}
	if err := db.SaveRun(r, 0); err != nil {
		return nil, 0, fmt.Errorf("create run: %w", err)
	}
	slog.Info("run created", "id", r.ID, "seed", seed, "opponents", len(r.Opponents))
	return r, 1, nil
}

// playRound drives one full round with a simple greedy regent: cash and
// farm the turn budget, draft the first offered bonus, keep the larder
// stocked, then hand the round to the opposition.
func playRound(r *game.Run) {
	slog.Info("round start", "round", r.Round,
		"treasury", humanize.Comma(int64(r.Player.Resources.Treasury)),
		"land", r.Player.Resources.Land,
		"net_worth", humanize.Comma(int64(r.Player.NetWorth())))

	for r.Phase == game.PhasePlayer && !r.Complete() {
		turns := r.Player.Turns
		focus := economy.FocusCash
		if r.Player.Resources.Food < economy.FoodConsumption(r.Player)*economy.TurnsPerRound {
			focus = economy.FocusFarm
		}
		res, err := r.Apply(game.Action{Kind: game.ActionTurns, Turns: turns, Focus: focus})
		if err != nil {
			slog.Error("player action rejected", "error", err)
		} else if res.Stop != economy.StopNone {
			slog.Warn("turns halted early", "reason", res.Stop.String(), "spent", res.TurnsSpent)
		} else {
			continue
		}
		if r.Phase == game.PhasePlayer {
			r.Apply(game.Action{Kind: game.ActionEndPhase})
		}
		break
	}

	if r.Phase == game.PhaseShop && !r.Complete() {
		if len(r.Market.Options) > 0 {
			pick := r.Market.Options[0]
			if _, err := r.Apply(game.Action{Kind: game.ActionDraft, BonusID: pick.ID}); err == nil {
				slog.Info("drafted", "bonus", pick.Name)
			}
		}
		if _, err := r.Apply(game.Action{Kind: game.ActionEndPhase}); err != nil {
			slog.Error("end shop phase", "error", err)
		}
	}
}

func printStandings(r *game.Run) {
	for i, row := range r.Standings() {
		marker := ""
		if row.IsPlayer {
			marker = " (you)"
		}
		if !row.Alive {
			marker += " [fallen]"
		}
		slog.Info("standing",
			"rank", i+1,
			"empire", row.Name+marker,
			"net_worth", humanize.Comma(int64(row.NetWorth)),
			"round_delta", humanize.Comma(int64(row.Delta)))
	}
}

func printNews(r *game.Run) {
	tail := r.News
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	for _, ev := range tail {
		slog.Info("news", "round", ev.Round, "event", ev.Text)
	}
}
