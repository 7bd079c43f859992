package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	"holdem-table/internal/logging"
	"holdem-table/internal/store"
	"holdem-table/internal/table"
	"holdem-table/internal/ws"
)

func newRouter(st *store.Store, tbl *table.Table, wsSrv *ws.Server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))
	r.Get("/ws", wsSrv.HandleWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Get("/table/state", tableStateHandler(tbl))
		r.Get("/hands", handsHandler(st))
		r.Get("/hands/{hand_id}", handDetailHandler(st))
		r.Get("/players/{player_id}/net", playerNetHandler(st))
	})

	return r
}

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}
