package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"market-digest/internal/domain/digest"
)

func sampleSnapshot() digest.Snapshot {
	return digest.Snapshot{
		LastUpdated: "2025-06-09 14:30 UTC",
		Alerts:      []string{"No alert triggered this run."},
		Verdicts: []digest.Verdict{
			{Asset: digest.AssetStocks, Trend: digest.TrendUp, Note: "S&P 500 weekly move: 2.00%."},
		},
	}
}

func TestSnapshotRepo_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	repo := NewSnapshotRepo(db)
	snap := sampleSnapshot()

	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs("latest", snap.LastUpdated, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Replace(context.Background(), snap); err != nil {
		t.Errorf("Replace failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestSnapshotRepo_Replace_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO snapshots").
		WillReturnError(errors.New("connection reset"))

	if err := NewSnapshotRepo(db).Replace(context.Background(), sampleSnapshot()); err == nil {
		t.Error("expected error from failing exec")
	}
}

func TestSnapshotRepo_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	defer db.Close()

	snap := sampleSnapshot()
	doc, _ := json.Marshal(snap)

	mock.ExpectQuery("SELECT document FROM snapshots").
		WithArgs("latest").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(doc))

	got, err := NewSnapshotRepo(db).Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if got.LastUpdated != snap.LastUpdated || len(got.Verdicts) != 1 {
		t.Errorf("unexpected snapshot: %+v", got)
	}

	t.Run("No Rows", func(t *testing.T) {
		mock.ExpectQuery("SELECT document FROM snapshots").
			WithArgs("latest").
			WillReturnError(sql.ErrNoRows)
		if _, err := NewSnapshotRepo(db).Latest(context.Background()); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows, got %v", err)
		}
	})
}
