package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"matchpoint/server/rating"
)

var ErrNotFound = errors.New("store: not found")

const upsertRatingSQL = `
    INSERT INTO player_ratings(player_id, rating, rd, volatility, rated_matches, tier, peak_rating, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, now())
    ON CONFLICT (player_id) DO UPDATE SET
        rating        = EXCLUDED.rating,
        rd            = EXCLUDED.rd,
        volatility    = EXCLUDED.volatility,
        rated_matches = EXCLUDED.rated_matches,
        tier          = EXCLUDED.tier,
        peak_rating   = EXCLUDED.peak_rating,
        updated_at    = now()`

// SaveRatings replaces the derived rating rows for every player in states in
// one transaction. A replay's output is all-or-nothing: a half-written state
// is never a valid thing to persist.
func (db *DB) SaveRatings(ctx context.Context, states map[rating.PlayerID]*rating.State) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed

	for id, s := range states {
		if _, err := tx.Exec(ctx, upsertRatingSQL,
			string(id), s.Rating.Rating, s.Rating.RD, s.Rating.Volatility,
			s.Meta.RatedMatches, s.Meta.Tier, s.Meta.Peak); err != nil {
			return fmt.Errorf("save rating %s: %w", id, err)
		}
	}
	return tx.Commit(ctx)
}

// SaveRating persists a single player's derived state (incremental path).
func (db *DB) SaveRating(ctx context.Context, id rating.PlayerID, s *rating.State) error {
	_, err := db.Exec(ctx, upsertRatingSQL,
		string(id), s.Rating.Rating, s.Rating.RD, s.Rating.Volatility,
		s.Meta.RatedMatches, s.Meta.Tier, s.Meta.Peak)
	return err
}

// LoadRatings fetches the derived state for the whole roster.
func (db *DB) LoadRatings(ctx context.Context) (map[rating.PlayerID]*rating.State, error) {
	rows, err := db.Query(ctx, `
        SELECT player_id, rating, rd, volatility, rated_matches, tier, peak_rating
          FROM player_ratings
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[rating.PlayerID]*rating.State)
	for rows.Next() {
		var (
			id string
			s  rating.State
		)
		if err := rows.Scan(&id, &s.Rating.Rating, &s.Rating.RD, &s.Rating.Volatility,
			&s.Meta.RatedMatches, &s.Meta.Tier, &s.Meta.Peak); err != nil {
			return nil, err
		}
		out[rating.PlayerID(id)] = &s
	}
	return out, rows.Err()
}

// LoadRating fetches one player's derived state.
func (db *DB) LoadRating(ctx context.Context, id rating.PlayerID) (*rating.State, error) {
	var s rating.State
	err := db.QueryRow(ctx, `
        SELECT rating, rd, volatility, rated_matches, tier, peak_rating
          FROM player_ratings
         WHERE player_id = $1
    `, string(id)).Scan(&s.Rating.Rating, &s.Rating.RD, &s.Rating.Volatility,
		&s.Meta.RatedMatches, &s.Meta.Tier, &s.Meta.Peak)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
