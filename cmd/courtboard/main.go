// Command courtboard opens the tennis tactics board.
//
// Settings come from COURTBOARD_* environment variables; flags override
// them:
//
//	courtboard -catalog doubles -playbooks ./plays -script check.json
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/phanxgames/courtboard"
	"github.com/phanxgames/courtboard/ecs"
	"github.com/phanxgames/courtboard/internal/config"

	"github.com/yohamta/donburi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("courtboard: %v", err)
	}

	fs := flag.NewFlagSet("courtboard", flag.ExitOnError)
	fs.StringVar(&cfg.PlaybookDir, "playbooks", cfg.PlaybookDir, "directory with singlesPlaybook.json and doublesPlaybook.json")
	fs.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "catalog shown at start (singles or doubles)")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for exported PNGs")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "JSON script to run")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log per-frame timing")
	fs.BoolVar(&cfg.ShowFPS, "fps", cfg.ShowFPS, "show FPS overlay")
	_ = fs.Parse(os.Args[1:])

	settings, err := cfg.Resolve()
	if err != nil {
		config.Exitf("courtboard: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))
	slog.SetDefault(logger)

	playbook, err := loadPlaybook(cfg.PlaybookDir)
	if err != nil {
		config.Exitf("courtboard: %v", err)
	}

	board, err := courtboard.NewBoard(playbook)
	if err != nil {
		config.Exitf("courtboard: %v", err)
	}
	if settings.Catalog != board.Catalog() {
		if err := board.SelectCatalog(settings.Catalog); err != nil {
			config.Exitf("courtboard: %v", err)
		}
	}

	surface := courtboard.NewSurface(board, courtboard.SurfaceConfig{
		ExportDir:    cfg.ExportDir,
		Abandon:      settings.Abandon,
		DragDeadZone: cfg.DragDeadZone,
		ResetTween:   cfg.ResetTween,
		Logger:       logger,
		Debug:        cfg.Debug,
	})

	var journal *ecs.Journal
	if cfg.EventJournal {
		world := donburi.NewWorld()
		board.AddSink(ecs.NewDonburiSink(world))
		journal = ecs.NewJournal(world, logger.With("component", "journal"))
	}

	var runner *courtboard.TestRunner
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			config.Exitf("courtboard: read script: %v", err)
		}
		if runner, err = courtboard.LoadTestScript(data); err != nil {
			config.Exitf("courtboard: %v", err)
		}
		surface.SetTestRunner(runner)
	}

	surface.SetUpdateFunc(func() error {
		if journal != nil {
			journal.Update()
		}
		if runner != nil && runner.Done() {
			logger.Info("script finished", "exports", runner.Exports())
			return courtboard.ErrQuit
		}
		return nil
	})

	logger.Info("courtboard starting",
		"catalog", board.Catalog(),
		"scenario", board.ScenarioRef().Name,
		"abandon", settings.Abandon,
		"export_dir", cfg.ExportDir,
	)
	if err := courtboard.Run(surface, courtboard.RunConfig{
		Title:   cfg.Title,
		ShowFPS: cfg.ShowFPS,
	}); err != nil {
		config.Exitf("courtboard: %v", err)
	}
}

func loadPlaybook(dir string) (*courtboard.Playbook, error) {
	if dir == "" {
		return courtboard.DefaultPlaybook()
	}
	return courtboard.LoadPlaybookDir(dir)
}
