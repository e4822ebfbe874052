// server/service.go
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"matchpoint/server/cache"
	"matchpoint/server/rating"
	"matchpoint/server/store"
)

// ratingService owns every rating write. The engine itself is pure; the
// service provides what it deliberately leaves to the caller: loading input,
// persisting output, picking the update path, and serializing writers.
//
// A single mutex covers both paths. A replay touches the whole roster while
// an incremental update touches two players, so per-player locking would need
// ordered acquisition for no measurable gain at club scale.
type ratingService struct {
	db    *store.DB
	board *cache.Leaderboard

	mu sync.Mutex
}

func newRatingService(db *store.DB, board *cache.Leaderboard) *ratingService {
	return &ratingService{db: db, board: board}
}

// RecordMatch stores a match and brings the derived ratings up to date.
//
// A match dated today takes the fast path: a single-match Glicko period for
// the two participants. Anything backdated invalidates any incremental
// shortcut, so the whole history is replayed instead. The fast path does not
// see the daily-cap or repeated-opponent counters; the periodic full replay
// reconciles that (documented engine limitation).
func (s *ratingService) RecordMatch(ctx context.Context, m rating.Match) (map[rating.PlayerID]*rating.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.CreateMatch(ctx, m); err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format(rating.DateLayout)
	if m.Date != today {
		if err := s.recomputeLocked(ctx, "system:backdated-match"); err != nil {
			return nil, err
		}
		a, err := s.db.LoadRating(ctx, m.A)
		if err != nil {
			return nil, err
		}
		b, err := s.db.LoadRating(ctx, m.B)
		if err != nil {
			return nil, err
		}
		return map[rating.PlayerID]*rating.State{m.A: a, m.B: b}, nil
	}

	a, err := s.db.LoadRating(ctx, m.A)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", m.A, err)
	}
	b, err := s.db.LoadRating(ctx, m.B)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", m.B, err)
	}

	rating.UpdatePair(a, b, m)

	if err := s.db.SaveRating(ctx, m.A, a); err != nil {
		return nil, err
	}
	if err := s.db.SaveRating(ctx, m.B, b); err != nil {
		return nil, err
	}
	s.board.Invalidate(ctx)
	return map[rating.PlayerID]*rating.State{m.A: a, m.B: b}, nil
}

// Recompute runs a full replay and atomically replaces the derived state.
func (s *ratingService) Recompute(ctx context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeLocked(ctx, actor)
}

func (s *ratingService) recomputeLocked(ctx context.Context, actor string) error {
	roster, err := s.db.Roster(ctx)
	if err != nil {
		return err
	}
	matches, err := s.db.ListMatches(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	states := rating.Replay(roster, matches, time.Now())
	if err := s.db.SaveRatings(ctx, states); err != nil {
		return err
	}
	s.board.Invalidate(ctx)

	detail := fmt.Sprintf("%d players, %d matches in %s", len(roster), len(matches), time.Since(start))
	if err := s.db.AppendAudit(ctx, actor, "rating.recompute", detail); err != nil {
		log.Printf("audit write failed: %v", err)
	}
	log.Printf("recomputed ratings: %s", detail)
	return nil
}

// Standings serves the leaderboard, through the Redis cache when available.
func (s *ratingService) Standings(ctx context.Context) ([]rating.Standing, error) {
	if rows, ok := s.board.Get(ctx); ok {
		return rows, nil
	}

	roster, err := s.db.Roster(ctx)
	if err != nil {
		return nil, err
	}
	states, err := s.db.LoadRatings(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.db.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	rows := rating.Standings(roster, states, matches, time.Now())
	s.board.Set(ctx, rows)
	return rows, nil
}

// History replays the full match list to trace one player's rating over time.
func (s *ratingService) History(ctx context.Context, id rating.PlayerID) ([]rating.TracePoint, error) {
	roster, err := s.db.Roster(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.db.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	return rating.TracePlayer(roster, matches, id, time.Now()), nil
}

// Stats aggregates one player's career record from the match list.
func (s *ratingService) Stats(ctx context.Context, id rating.PlayerID) (rating.PlayerStats, error) {
	matches, err := s.db.ListMatches(ctx)
	if err != nil {
		return rating.PlayerStats{}, err
	}
	return rating.Aggregate(id, matches), nil
}
