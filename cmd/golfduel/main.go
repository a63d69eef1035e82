package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"

	"github.com/jask/golfduel/internal/config"
	"github.com/jask/golfduel/internal/database"
	"github.com/jask/golfduel/internal/database/repository"
	"github.com/jask/golfduel/internal/logging"
	"github.com/jask/golfduel/internal/prefs"
	"github.com/jask/golfduel/internal/service"
	"github.com/jask/golfduel/internal/testdata"
	"github.com/jask/golfduel/internal/tui"
)

const (
	configFlag = "config"
	dbFlag     = "db"
	outFlag    = "out"
	roundsFlag = "rounds"
	seedFlag   = "seed"
)

var version = "v0.1.0-dev"

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg     config.Config
	cfgPath string
	logFile *os.File
}

func main() {
	e := &env{}
	app := &cli.App{
		Name:    "golfduel",
		Usage:   "Keep score of golf rounds with friends",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "path to config.toml",
				EnvVars: []string{"GOLFDUEL_CONFIG"},
			},
			&cli.StringFlag{
				Name:  dbFlag,
				Usage: "override database.path",
			},
		},
		Before: func(c *cli.Context) error { return e.setup(c) },
		After: func(*cli.Context) error {
			if e.logFile != nil {
				return e.logFile.Close()
			}
			return nil
		},
		Action: e.play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "open the score keeper (default)",
				Action: e.play,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations and exit",
				Action: func(c *cli.Context) error {
					if err := e.migrate(); err != nil {
						return err
					}
					v, dirty, err := database.SchemaVersion(e.cfg.Database.Path)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "schema version %d (dirty=%t)\n", v, dirty)
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "add demo players, a club and finished rounds",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: roundsFlag, Value: 6, Usage: "number of rounds to create"},
					&cli.Int64Flag{Name: seedFlag, Value: 1, Usage: "random seed for scores"},
				},
				Action: e.seed,
			},
			{
				Name:  "export",
				Usage: "write finished rounds as YAML",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: outFlag, Aliases: []string{"o"}, Value: "-", Usage: "output file, - for stdout"},
				},
				Action: e.export,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "golfduel:", err)
		os.Exit(1)
	}
}

func (e *env) setup(c *cli.Context) error {
	e.cfgPath = c.String(configFlag)
	cfg, err := config.Load(e.cfgPath)
	if err != nil {
		return err
	}
	if p := c.String(dbFlag); p != "" {
		cfg.Database.Path = p
	}
	e.cfg = cfg

	var w io.Writer = io.Discard
	if cfg.Log.Path != "" {
		f, err := logging.OpenFile(cfg.Log.Path)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		e.logFile = f
		w = f
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format, w)
	slog.Info("starting", "version", version, "db", cfg.Database.Path, "command", c.Args().First())
	return nil
}

func (e *env) migrate() error {
	if err := os.MkdirAll(filepath.Dir(e.cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(e.cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// open migrates, opens the database and seeds the default club.
func (e *env) open(ctx context.Context) (*sql.DB, tui.Services, error) {
	if err := e.migrate(); err != nil {
		return nil, tui.Services{}, err
	}
	db, err := database.Open(e.cfg.Database.Path)
	if err != nil {
		return nil, tui.Services{}, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		db.Close()
		return nil, tui.Services{}, fmt.Errorf("seed defaults: %w", err)
	}

	players := repository.NewPlayerRepo(db)
	clubs := repository.NewClubRepo(db)
	rounds := repository.NewRoundRepo(db)
	return db, tui.Services{
		Players: &service.PlayerService{Players: players},
		Clubs:   &service.ClubService{Clubs: clubs},
		Rounds:  &service.RoundService{Clubs: clubs, Players: players, Rounds: rounds, Clock: clockwork.NewRealClock()},
		History: &service.HistoryService{Rounds: rounds},
		Stats:   &service.StatsService{Rounds: rounds, Players: players},
	}, nil
}

func (e *env) play(c *cli.Context) error {
	ctx := c.Context
	db, svc, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ui, err := prefs.Load()
	if err != nil {
		logging.WithError(err).Warn("ignoring unreadable preferences")
		ui = prefs.UI{}
	}

	cfg := e.cfg
	model := tui.New(ctx, svc, tui.Options{
		Config: cfg,
		Prefs:  ui,
		SavePrefs: func(p prefs.UI) error {
			if err := prefs.Save(p); err != nil {
				return err
			}
			if cfg.UI.Theme == p.Theme {
				return nil
			}
			cfg.UI.Theme = p.Theme
			return config.Save(e.cfgPath, cfg)
		},
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (e *env) seed(c *cli.Context) error {
	ctx := c.Context
	db, svc, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rep, err := testdata.Seed(ctx, testdata.Services{Players: svc.Players, Clubs: svc.Clubs, Rounds: svc.Rounds},
		c.Int(roundsFlag), c.Int64(seedFlag), time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "seeded %d players, %d clubs, %d rounds\n", rep.Players, rep.Clubs, rep.Rounds)
	return nil
}

func (e *env) export(c *cli.Context) error {
	ctx := c.Context
	db, svc, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var w io.Writer = c.App.Writer
	if out := c.String(outFlag); out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	n, err := svc.History.Export(ctx, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "exported %d rounds\n", n)
	return nil
}
