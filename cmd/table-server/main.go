package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"holdem-table/internal/commentary"
	"holdem-table/internal/config"
	"holdem-table/internal/game"
	"holdem-table/internal/ledger"
	"holdem-table/internal/logging"
	"holdem-table/internal/store"
	"holdem-table/internal/table"
	"holdem-table/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}

	ctx := context.Background()
	var st *store.Store
	var rec game.Recorder
	if cfg.Server.PostgresDSN != "" {
		st, err = store.New(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure schema failed")
		}
		if err := st.EnsureTable(ctx, cfg.Server.TableID, cfg.Server.TableName, cfg.Server.SmallBlind, cfg.Server.BigBlind); err != nil {
			log.Fatal().Err(err).Msg("ensure table failed")
		}
		rec = ledger.New(st)
	} else {
		log.Warn().Msg("no POSTGRES_DSN, running without persistence")
	}

	var comm commentary.Service = commentary.Noop{}
	if cfg.Server.CommentaryURL != "" {
		comm = commentary.NewHTTPService(cfg.Server.CommentaryURL, cfg.Server.CommentaryTimeout, log.Logger)
	}

	tbl := table.New(table.Config{
		TableID:    cfg.Server.TableID,
		SmallBlind: cfg.Server.SmallBlind,
		BigBlind:   cfg.Server.BigBlind,
		MinBuyIn:   cfg.Server.MinBuyIn,
		MaxBuyIn:   cfg.Server.MaxBuyIn,
		Pacing:     cfg.Server.Pacing(),
		Recorder:   rec,
		Commentary: comm,
		Logger:     log.Logger,
	})
	defer tbl.Close()

	wsSrv := ws.NewServer(tbl, log.Logger)
	r := newRouter(st, tbl, wsSrv)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("table_id", cfg.Server.TableID).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
