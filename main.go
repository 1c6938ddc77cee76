package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/tarefas-tui/internal/api"
	"github.com/pdxmph/tarefas-tui/internal/config"
	"github.com/pdxmph/tarefas-tui/internal/devserver"
	"github.com/pdxmph/tarefas-tui/internal/logging"
	"github.com/pdxmph/tarefas-tui/internal/store"
	"github.com/pdxmph/tarefas-tui/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.toml (default ~/.config/tarefas-tui/config.toml)")
		baseURL    = flag.String("url", "", "task API base URL, overrides api.base_url")
		route      = flag.String("route", tui.ListPath(), "path to open first, e.g. /cadastrar or /tarefa/<id>")
		initConfig = flag.Bool("init-config", false, "write the default config file and exit")
		serve      = flag.String("serve", "", "run the development backend on this address instead of the UI (\"default\" uses server.addr)")
		seed       = flag.Bool("seed", false, "with -serve, insert sample tasks into an empty database")
		dbPath     = flag.String("db", "", "with -serve, SQLite database path, overrides server.database")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *initConfig {
		if err := saveConfig(cfg, *configPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}
	}

	if *serve != "" {
		addr := *serve
		if addr == "default" {
			addr = cfg.Server.Addr
		}
		if *dbPath != "" {
			cfg.Server.Database = *dbPath
		}
		if err := runServer(addr, cfg, *seed); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runUI(cfg, *route); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return err
		}
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runUI(cfg *config.Config, route string) error {
	logger, closer, err := logging.OpenFile(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := api.NewFromConfig(cfg.API, api.WithLogger(*logger))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.New(client,
		tui.WithLogger(logger),
		tui.WithStartPath(route),
		tui.WithContext(ctx),
	)

	logger.Info().Str("base_url", cfg.API.BaseURL).Str("route", route).Msg("starting")
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runServer(addr string, cfg *config.Config, seed bool) error {
	logger := logging.New(cfg.Log.Level, os.Stderr)

	db, err := store.Open(cfg.Server.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if seed {
		n, err := db.Seed(ctx)
		if err != nil {
			return err
		}
		logger.Info().Int("count", n).Msg("seeded sample tasks")
	}

	return devserver.New(addr, db, logger).Run(ctx)
}
