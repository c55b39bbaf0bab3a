package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"market-digest/internal/domain/digest"
)

// 快照在資料庫中只保留最新一份，以固定主鍵覆寫。
const snapshotID = "latest"

// SnapshotRepo 提供快照文件的 Postgres 存取。
type SnapshotRepo struct {
	db *sql.DB
}

// NewSnapshotRepo 建立快照存取實例。
func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Replace 以最新快照整份取代資料庫中的前一份文件。
func (r *SnapshotRepo) Replace(ctx context.Context, snapshot digest.Snapshot) error {
	doc, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	const q = `
INSERT INTO snapshots (id, last_updated, document, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (id)
DO UPDATE SET last_updated = EXCLUDED.last_updated,
              document = EXCLUDED.document,
              updated_at = NOW();
`
	if _, err := r.db.ExecContext(ctx, q, snapshotID, snapshot.LastUpdated, doc); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Latest 讀回目前持久化的快照；不存在時回傳 sql.ErrNoRows。
func (r *SnapshotRepo) Latest(ctx context.Context) (digest.Snapshot, error) {
	const q = `SELECT document FROM snapshots WHERE id = $1;`

	var doc []byte
	if err := r.db.QueryRowContext(ctx, q, snapshotID).Scan(&doc); err != nil {
		return digest.Snapshot{}, err
	}
	var snapshot digest.Snapshot
	if err := json.Unmarshal(doc, &snapshot); err != nil {
		return digest.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}
