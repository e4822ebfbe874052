// server/http.go
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"matchpoint/server/rating"
	"matchpoint/server/store"
)

func Router(db *store.DB, svc *ratingService, auth *Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health
	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Post("/api/login", auth.HandleLogin)

	// Roster
	r.Get("/api/players", func(w http.ResponseWriter, req *http.Request) {
		players, err := db.ListPlayers(req.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"rows": players})
	})

	// One player's derived rating state
	r.Get("/api/players/{id}/rating", func(w http.ResponseWriter, req *http.Request) {
		id := rating.PlayerID(chi.URLParam(req, "id"))
		state, err := db.LoadRating(req.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "unknown player", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{
			"id":         id,
			"rating":     state.Rating.Rating,
			"rd":         state.Rating.RD,
			"volatility": state.Rating.Volatility,
			"matches":    state.Meta.RatedMatches,
			"tier":       state.Meta.Tier,
			"tier_name":  rating.TierName(state.Meta.Tier),
			"peak":       state.Meta.Peak,
		})
	})

	// Rating timeline reconstructed from full history
	r.Get("/api/players/{id}/history", func(w http.ResponseWriter, req *http.Request) {
		id := rating.PlayerID(chi.URLParam(req, "id"))
		ok, err := db.PlayerExists(req.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			http.Error(w, "unknown player", http.StatusNotFound)
			return
		}
		trace, err := svc.History(req.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"rows": trace})
	})

	// Career record
	r.Get("/api/players/{id}/stats", func(w http.ResponseWriter, req *http.Request) {
		id := rating.PlayerID(chi.URLParam(req, "id"))
		ok, err := db.PlayerExists(req.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !ok {
			http.Error(w, "unknown player", http.StatusNotFound)
			return
		}
		stats, err := svc.Stats(req.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{
			"id":       id,
			"played":   stats.Played,
			"wins":     stats.Wins,
			"losses":   stats.Losses,
			"rated":    stats.Rated,
			"casual":   stats.Casual,
			"short":    stats.ShortFmt,
			"long":     stats.LongFmt,
			"streak":   stats.Streak,
			"win_rate": stats.WinRate(),
		})
	})

	// Recent matches, canonical order
	r.Get("/api/matches", func(w http.ResponseWriter, req *http.Request) {
		matches, err := db.ListMatches(req.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"rows": matches})
	})

	// Record a match and update ratings. The hot path of the whole app.
	r.Post("/api/matches", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			A        string `json:"a"`
			B        string `json:"b"`
			Winner   string `json:"winner"`
			PointsTo int    `json:"points_to"`
			Rated    bool   `json:"rated"`
			Date     string `json:"date"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		if in.A == "" || in.B == "" || in.A == in.B {
			http.Error(w, "need two distinct players", http.StatusBadRequest)
			return
		}
		if in.PointsTo != 10 && in.PointsTo != 20 {
			http.Error(w, "points_to must be 10 or 20", http.StatusBadRequest)
			return
		}
		if in.Winner != "" && in.Winner != in.A && in.Winner != in.B {
			http.Error(w, "winner must be a participant or empty", http.StatusBadRequest)
			return
		}
		if in.Date == "" {
			in.Date = time.Now().UTC().Format(rating.DateLayout)
		} else if _, err := time.Parse(rating.DateLayout, in.Date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		for _, id := range []string{in.A, in.B} {
			ok, err := db.PlayerExists(req.Context(), rating.PlayerID(id))
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			if !ok {
				http.Error(w, "unknown player "+id, http.StatusBadRequest)
				return
			}
		}

		m := rating.Match{
			A:          rating.PlayerID(in.A),
			B:          rating.PlayerID(in.B),
			Winner:     rating.PlayerID(in.Winner),
			PointsTo:   in.PointsTo,
			Rated:      in.Rated,
			Date:       in.Date,
			RecordedAt: time.Now().UTC(),
		}
		states, err := svc.RecordMatch(req.Context(), m)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		out := map[string]any{}
		for id, s := range states {
			out[string(id)] = map[string]any{
				"rating":    s.Rating.Rating,
				"rd":        s.Rating.RD,
				"tier":      s.Meta.Tier,
				"tier_name": rating.TierName(s.Meta.Tier),
				"peak":      s.Meta.Peak,
			}
		}
		writeJSON(w, map[string]any{"ok": true, "ratings": out})
	})

	// Leaderboard
	r.Get("/api/leaderboard", func(w http.ResponseWriter, req *http.Request) {
		rows, err := svc.Standings(req.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"rows": rows})
	})

	// Admin surface
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Post("/api/players", func(w http.ResponseWriter, req *http.Request) {
			var in struct {
				Name string `json:"name"`
			}
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil || strings.TrimSpace(in.Name) == "" {
				http.Error(w, "need name", http.StatusBadRequest)
				return
			}
			p, err := db.CreatePlayer(req.Context(), strings.TrimSpace(in.Name))
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			writeJSON(w, p)
		})

		r.Post("/api/recompute", func(w http.ResponseWriter, req *http.Request) {
			if err := svc.Recompute(req.Context(), actorFrom(req)); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			writeJSON(w, map[string]any{"ok": true})
		})

		r.Get("/api/payments", func(w http.ResponseWriter, req *http.Request) {
			rows, err := db.ListPayments(req.Context(), 200)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			writeJSON(w, map[string]any{"rows": rows})
		})

		r.Post("/api/payments", func(w http.ResponseWriter, req *http.Request) {
			var in store.Payment
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			switch in.Kind {
			case "dues", "fee", "expense", "refund":
			default:
				http.Error(w, "kind must be dues|fee|expense|refund", http.StatusBadRequest)
				return
			}
			if in.AmountCents == 0 {
				http.Error(w, "need amount_cents", http.StatusBadRequest)
				return
			}
			id, err := db.RecordPayment(req.Context(), in)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			_ = db.AppendAudit(req.Context(), actorFrom(req), "payment.record", in.Kind)
			writeJSON(w, map[string]any{"ok": true, "id": id})
		})

		r.Get("/api/audit", func(w http.ResponseWriter, req *http.Request) {
			rows, err := db.ListAudit(req.Context(), 200)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			writeJSON(w, map[string]any{"rows": rows})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
