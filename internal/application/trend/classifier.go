package trend

import (
	"fmt"

	"market-digest/internal/domain/digest"
)

// Threshold 定義單一資產的趨勢判定門檻（百分比）。
// Down 為 0 時以 -Up 鏡射；預設不支援非對稱門檻。
type Threshold struct {
	Up   float64
	Down float64
}

// DefaultThresholds 為各追蹤資產的固定判定門檻，屬策略常數而非使用者組態；
// 以列舉表表示，便於單獨測試或於程式內覆寫。
var DefaultThresholds = map[digest.Asset]Threshold{
	digest.AssetStocks: {Up: 1.0},
	digest.AssetBTC:    {Up: 3.0},
	digest.AssetETH:    {Up: 4.0},
	digest.AssetGold:   {Up: 1.0},
	digest.AssetSilver: {Up: 2.0},
}

// Classify 依週變動百分比與門檻判定趨勢。
// 缺值輸入一律視為 Sideways（無訊號預設）；邊界值含等號。
func Classify(change *float64, th Threshold) digest.Trend {
	if change == nil {
		return digest.TrendSideways
	}
	down := th.Down
	if down == 0 {
		down = -th.Up
	}
	switch {
	case *change >= th.Up:
		return digest.TrendUp
	case *change <= down:
		return digest.TrendDown
	default:
		return digest.TrendSideways
	}
}

// Note 產生判定附註文字；缺值時以 n/a 呈現。
func Note(label string, change *float64) string {
	if change == nil {
		return fmt.Sprintf("%s: n/a.", label)
	}
	return fmt.Sprintf("%s: %.2f%%.", label, *change)
}
