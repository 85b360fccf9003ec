package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cluegame/internal/config"
	"github.com/robalobadob/cluegame/internal/httpserver"
	"github.com/robalobadob/cluegame/internal/store"
	"github.com/robalobadob/cluegame/internal/tracker"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open store")
	}
	defer st.Close()

	srv := httpserver.New(tracker.New(st), cfg)
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting clue server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore builds the game-state store selected by STORE.
func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store != "sqlite" {
		return store.NewMemoryStore(), nil
	}
	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store.NewSQLite(db), nil
}
