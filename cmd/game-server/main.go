package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"memory-arena/internal/config"
	"memory-arena/internal/logging"
	"memory-arena/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	coord, err := ws.NewServer(cfg.Server)
	if err != nil {
		log.Fatal().Err(err).Int("board_pairs", cfg.Server.BoardPairs).Msg("coordinator init failed")
	}

	r := newRouter(coord)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Int("board_pairs", cfg.Server.BoardPairs).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func newRouter(coord *ws.Server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Get("/status", statusHandler(coord))
		r.Post("/games", startGameHandler(coord))
	})

	r.Get("/ws", coord.HandleWS)
	return r
}
