package store

import (
	"context"
	"fmt"
	"time"

	"matchpoint/server/rating"
)

// CreateMatch stores one match row and returns its id. Winner may be empty
// for an unresolved match.
func (db *DB) CreateMatch(ctx context.Context, m rating.Match) (int64, error) {
	var winner any
	if m.Winner != "" {
		winner = string(m.Winner)
	}
	var id int64
	err := db.QueryRow(ctx, `
        INSERT INTO matches(player_a, player_b, winner, points_to, rated, played_on, recorded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, string(m.A), string(m.B), winner, m.PointsTo, m.Rated, m.Date, m.RecordedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create match: %w", err)
	}
	return id, nil
}

// ListMatches returns the full history in canonical replay order: by day,
// then by recording time.
func (db *DB) ListMatches(ctx context.Context) ([]rating.Match, error) {
	rows, err := db.Query(ctx, `
        SELECT player_a, player_b, winner, points_to, rated,
               to_char(played_on, 'YYYY-MM-DD'), recorded_at
          FROM matches
         ORDER BY played_on, recorded_at, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []rating.Match{}
	for rows.Next() {
		var (
			m      rating.Match
			a, b   string
			winner *string
			date   string
			rec    time.Time
		)
		if err := rows.Scan(&a, &b, &winner, &m.PointsTo, &m.Rated, &date, &rec); err != nil {
			return nil, err
		}
		m.A, m.B = rating.PlayerID(a), rating.PlayerID(b)
		if winner != nil {
			m.Winner = rating.PlayerID(*winner)
		}
		m.Date = date
		m.RecordedAt = rec
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountMatches is used by the admin overview.
func (db *DB) CountMatches(ctx context.Context) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n)
	return n, err
}
