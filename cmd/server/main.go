package main

import (
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vraelian/experimental-sub000/internal/catalog"
	"github.com/vraelian/experimental-sub000/internal/game"
	"github.com/vraelian/experimental-sub000/internal/rng"
	"github.com/vraelian/experimental-sub000/internal/save"
	"github.com/vraelian/experimental-sub000/internal/server"
	"github.com/vraelian/experimental-sub000/internal/telemetry"
)

type config struct {
	Addr        string `env:"ORBITAL_ADDR" envDefault:":42070"`
	CatalogPath string `env:"ORBITAL_CATALOG" envDefault:"orbital_config.yml"`
	SaveDir     string `env:"ORBITAL_SAVE_DIR" envDefault:"saves"`
	Seed        int64  `env:"ORBITAL_SEED" envDefault:"0"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse environment: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store, err := save.NewFileStore(cfg.SaveDir)
	if err != nil {
		log.Fatalf("open save dir: %v", err)
	}

	engine := game.New(cat, rng.NewSeeded(seed), telemetry.NewMemoryRepository(cat.Constants.NoticeLogCap))
	app := server.NewApp(server.Options{
		Engine: engine,
		Store:  store,
		Logger: log.Default(),
	})
	app.Run()

	log.Printf("listening on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, app.NewHandler()))
}
