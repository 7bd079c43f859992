package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"holdem-table/internal/store"
	"holdem-table/internal/table"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "store": "disabled"})
			return
		}
		if err := st.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "db_unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// tableStateHandler returns the observer-redacted snapshot. The player_id
// query parameter reveals that player's own hole cards.
func tableStateHandler(tbl *table.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tbl.Snapshot(r.URL.Query().Get("player_id")))
	}
}

func handsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeError(w, http.StatusServiceUnavailable, "persistence_disabled")
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		tableID := r.URL.Query().Get("table_id")
		hands, err := st.ListHands(r.Context(), tableID, limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query_failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hands": hands})
	}
}

// playerNetHandler reports a player's lifetime chip result from the ledger.
func playerNetHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeError(w, http.StatusServiceUnavailable, "persistence_disabled")
			return
		}
		playerID := chi.URLParam(r, "player_id")
		net, err := st.PlayerNet(r.Context(), playerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query_failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"player_id": playerID, "net": net})
	}
}

func handDetailHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeError(w, http.StatusServiceUnavailable, "persistence_disabled")
			return
		}
		handID := chi.URLParam(r, "hand_id")
		hand, err := st.GetHand(r.Context(), handID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "hand_not_found")
				return
			}
			writeError(w, http.StatusInternalServerError, "query_failed")
			return
		}
		actions, err := st.ListHandActions(r.Context(), handID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query_failed")
			return
		}
		payouts, err := st.ListHandPayouts(r.Context(), handID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query_failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"hand":    hand,
			"actions": actions,
			"payouts": payouts,
		})
	}
}
