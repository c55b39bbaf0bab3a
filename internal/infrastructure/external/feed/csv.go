package feed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Row 為一列 CSV 資料，以欄名索引。
type Row map[string]string

// 來源端以這些字面值標示缺漏觀測；載入時直接濾除。
var missingValues = map[string]struct{}{
	"":     {},
	"null": {},
	".":    {},
	"NaN":  {},
}

// ParseTable 解析 CSV 內容為依原始順序排列的列。valueColumn 必須存在於
// 表頭，且該欄為缺漏標記的列會被濾除。
func ParseTable(data []byte, valueColumn string) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	colIdx := -1
	for i, name := range header {
		if name == valueColumn {
			colIdx = i
			break
		}
	}
	if colIdx == -1 {
		return nil, fmt.Errorf("column %q not found in header %v", valueColumn, header)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(record) <= colIdx {
			continue
		}
		if _, missing := missingValues[record[colIdx]]; missing {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
