package marketdata

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Observation 描述單一交易日的收盤觀測值。
type Observation struct {
	Date  time.Time
	Close float64
}

// Series 為同一商品依日期排序的觀測序列；允許日期間隔（非交易日），
// 但經過來源端過濾後不得含有 NaN 或空值。
type Series []Observation

// ValidationError 收集多個驗證失敗原因。
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("series validation failed: %v", e.Reasons)
}

// Validate 檢查序列是否符合基本完整性條件：日期非遞減、數值有效。
func (s Series) Validate() error {
	var reasons []string

	for i, obs := range s {
		if obs.Date.IsZero() {
			reasons = append(reasons, fmt.Sprintf("observation %d: date is required", i))
		}
		if math.IsNaN(obs.Close) || math.IsInf(obs.Close, 0) {
			reasons = append(reasons, fmt.Sprintf("observation %d: close is not a finite number", i))
		}
		if i > 0 && obs.Date.Before(s[i-1].Date) {
			reasons = append(reasons, fmt.Sprintf("observation %d: date out of order", i))
		}
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// Closes 回傳序列中所有收盤價，順序與觀測一致。
func (s Series) Closes() []float64 {
	vals := make([]float64, 0, len(s))
	for _, obs := range s {
		vals = append(vals, obs.Close)
	}
	return vals
}

// Last 回傳最後一筆觀測；序列為空時回傳 false。
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// IsValidationError 檢查錯誤是否為序列驗證錯誤。
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
