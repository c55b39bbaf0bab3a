package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"market-digest/internal/domain/digest"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	w := NewWriter(path)

	snap := digest.Snapshot{
		LastUpdated: "2025-06-09 14:30 UTC",
		Alerts:      []string{"No alert triggered this run."},
		Verdicts: []digest.Verdict{
			{Asset: digest.AssetBTC, Trend: digest.TrendUp, Note: "BTC weekly move: 4.00%."},
		},
	}
	if err := w.Write(snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["last_updated"] != "2025-06-09 14:30 UTC" {
		t.Errorf("unexpected last_updated: %v", got["last_updated"])
	}
	if _, ok := got["provenance"]; ok {
		t.Errorf("empty provenance must be omitted")
	}

	t.Run("Replaces Prior Document", func(t *testing.T) {
		snap.LastUpdated = "2025-06-16 14:30 UTC"
		if err := w.Write(snap); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		data, _ := os.ReadFile(path)
		var again map[string]any
		if err := json.Unmarshal(data, &again); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if again["last_updated"] != "2025-06-16 14:30 UTC" {
			t.Errorf("document was not replaced: %v", again["last_updated"])
		}
	})

	t.Run("No Temp Files Left Behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only data.json in %s, got %d entries", dir, len(entries))
		}
	})
}
