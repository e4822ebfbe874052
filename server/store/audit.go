package store

import (
	"context"
	"time"
)

type AuditEntry struct {
	ID        int64     `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// AppendAudit records an administrative action. Audit writes are best-effort
// from the caller's point of view but never silently swallowed here.
func (db *DB) AppendAudit(ctx context.Context, actor, action, detail string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO audit_log(actor, action, detail)
        VALUES ($1, $2, $3)
    `, actor, action, detail)
	return err
}

func (db *DB) ListAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := db.Query(ctx, `
        SELECT id, actor, action, detail, created_at
          FROM audit_log
         ORDER BY id DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AuditEntry{}
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
