package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"market-digest/internal/domain/digest"
)

// Writer 將快照文件以 JSON 寫入固定路徑，整份取代既有內容。
// 先寫入同目錄的暫存檔再改名，避免下游讀到寫到一半的文件。
type Writer struct {
	path string
}

// NewWriter 建立快照檔案寫入器。
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write 序列化並落地快照；任何失敗都代表本次執行無法產出文件。
func (w *Writer) Write(snapshot digest.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}
