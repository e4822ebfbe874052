package store

import (
	"context"
	"fmt"
	"time"
)

// Payment is one bookkeeping row: membership dues, a court fee, a club
// expense, or a refund. Amounts are integral cents; negative values flow out
// of the club.
type Payment struct {
	ID          int64     `json:"id"`
	PlayerID    string    `json:"player_id"`
	AmountCents int64     `json:"amount_cents"`
	Kind        string    `json:"kind"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

func (db *DB) RecordPayment(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
        INSERT INTO payments(player_id, amount_cents, kind, note)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, p.PlayerID, p.AmountCents, p.Kind, p.Note).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("record payment: %w", err)
	}
	return id, nil
}

func (db *DB) ListPayments(ctx context.Context, limit int) ([]Payment, error) {
	rows, err := db.Query(ctx, `
        SELECT id, player_id, amount_cents, kind, note, created_at
          FROM payments
         ORDER BY id DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Payment{}
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.AmountCents, &p.Kind, &p.Note, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
