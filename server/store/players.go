package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"matchpoint/server/rating"
)

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePlayer registers a club member and seeds their derived rating row at
// the defaults, so the roster and the rating cache never disagree.
func (db *DB) CreatePlayer(ctx context.Context, name string) (Player, error) {
	p := Player{ID: uuid.NewString(), Name: name}
	err := db.QueryRow(ctx, `
        INSERT INTO players(id, name)
        VALUES ($1, $2)
        RETURNING created_at
    `, p.ID, p.Name).Scan(&p.CreatedAt)
	if err != nil {
		return Player{}, fmt.Errorf("create player: %w", err)
	}
	if _, err := db.Exec(ctx, `
        INSERT INTO player_ratings(player_id) VALUES ($1)
        ON CONFLICT (player_id) DO NOTHING
    `, p.ID); err != nil {
		return Player{}, fmt.Errorf("seed rating: %w", err)
	}
	return p, nil
}

func (db *DB) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := db.Query(ctx, `SELECT id, name, created_at FROM players ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Player{}
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Roster returns every player id in creation order, the ordering the
// leaderboard uses for its stable tie break.
func (db *DB) Roster(ctx context.Context) ([]rating.PlayerID, error) {
	players, err := db.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]rating.PlayerID, len(players))
	for i, p := range players {
		ids[i] = rating.PlayerID(p.ID)
	}
	return ids, nil
}

func (db *DB) PlayerExists(ctx context.Context, id rating.PlayerID) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)`, string(id)).Scan(&ok)
	return ok, err
}
