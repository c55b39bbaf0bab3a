package stats

import (
	"market-digest/internal/domain/marketdata"
)

// 週度回看固定為 7 筆觀測（價格序列）或 7 個日曆天（總經序列）。
const weekLookback = 7

// PercentChange 計算 (current-previous)/previous*100。
// 任一運算元缺值或 previous 為 0 時回傳 nil（無訊號），不視為錯誤。
func PercentChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	return ptr((*current - *previous) / *previous * 100.0)
}

// LastAndWeekAgo 取序列最後一筆與往前第 7 筆（不足時取最早一筆）的收盤價。
// 這是以索引近似「一週前」，假設序列為連續日頻取樣；不做日期比對。
func LastAndWeekAgo(s marketdata.Series) (last, weekAgo *float64) {
	if len(s) == 0 {
		return nil, nil
	}
	last = ptr(s[len(s)-1].Close)
	weekIdx := len(s) - weekLookback
	if weekIdx < 0 {
		weekIdx = 0
	}
	weekAgo = ptr(s[weekIdx].Close)
	return last, weekAgo
}

// SimpleMovingAverage 計算最後 window 筆數值的算術平均；
// 樣本不足 window 筆時回傳 nil。
func SimpleMovingAverage(values []float64, window int) *float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	sum := 0.0
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return ptr(sum / float64(window))
}

// MacroWeekAgo 取總經序列最後一筆，以及最近一筆日期早於等於
// (最新日期 - 7 天) 的觀測值；由尾端往前掃描。找不到時該側回傳 nil。
// 與價格序列不同，這裡採日期比對而非索引位移。
func MacroWeekAgo(s marketdata.Series) (last, weekAgo *float64) {
	if len(s) == 0 {
		return nil, nil
	}
	latest := s[len(s)-1]
	last = ptr(latest.Close)

	target := latest.Date.AddDate(0, 0, -weekLookback)
	for i := len(s) - 2; i >= 0; i-- {
		if !s[i].Date.After(target) {
			weekAgo = ptr(s[i].Close)
			break
		}
	}
	return last, weekAgo
}

func ptr[T any](v T) *T { return &v }
