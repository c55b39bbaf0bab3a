package playbook

import (
	"fmt"
	"math"

	"market-digest/internal/domain/digest"
)

// Proxies 將追蹤資產對應到單一的高流動性選擇權替代標的。
// 替代標的不必然忠實反映底層資產（尤其是加密資產的 ETF 代理）。
var Proxies = map[digest.Asset]string{
	digest.AssetStocks: "SPY",
	digest.AssetGold:   "GLD",
	digest.AssetSilver: "SLV",
	digest.AssetBTC:    "BITO",
	digest.AssetETH:    "ETHO", // 占位代理；多數券商無 ETH 選擇權 ETF
}

// 波動幅度門檻：週變動絕對值低於此值時偏好 calendar，否則 debit spread。
const calmMagnitudePct = 2.0

const dte = "30–45 DTE"

// Advise 依趨勢、週變動幅度與總經背景產生單一限定風險策略建議。
// 純函式，無任何預測性；輸出僅為描述文字。
func Advise(asset digest.Asset, trend digest.Trend, weeklyChange, realYieldDeltaBps, dollarChange *float64) digest.PlaybookIdea {
	proxy, ok := Proxies[asset]
	if !ok {
		proxy = string(asset)
	}

	vol := 0.0
	if weeklyChange != nil {
		vol = math.Abs(*weeklyChange)
	}

	// 寬指數/ETF 類代理使用較寬的價差區間。
	width := "2–5"
	switch proxy {
	case "SPY", "GLD", "SLV":
		width = "5–10"
	}

	idea := digest.PlaybookIdea{Ticker: proxy}
	switch trend {
	case digest.TrendUp:
		if vol < calmMagnitudePct {
			idea.Strategy = "Call calendar"
			idea.Text = fmt.Sprintf("Buy %s %s ATM call, sell 7–14DTE call; aims to benefit from steady uptrend.", proxy, dte)
		} else {
			idea.Strategy = "Bull call debit spread"
			idea.Text = fmt.Sprintf("Buy 1 %s %s ATM call, sell 1 +%s OTM call; defined risk if trend continues.", proxy, dte, width)
		}
	case digest.TrendDown:
		if vol < calmMagnitudePct {
			idea.Strategy = "Put calendar"
			idea.Text = fmt.Sprintf("Buy %s %s ATM put, sell 7–14DTE put; benefits from gradual drift lower.", proxy, dte)
		} else {
			idea.Strategy = "Bear put debit spread"
			idea.Text = fmt.Sprintf("Buy 1 %s %s ATM put, sell 1 -%s OTM put; defined risk for downside.", proxy, dte, width)
		}
	default:
		idea.Strategy = "Iron condor"
		idea.Text = "Sell 7–14DTE iron condor around current price; keep it small and manage early."
	}

	// 貴金屬額外附註總經順風條件；兩個條件可各自獨立附加。
	if asset == digest.AssetGold || asset == digest.AssetSilver {
		if realYieldDeltaBps != nil && *realYieldDeltaBps < 0 {
			idea.Text += " Tailwind: real yields softer."
		}
		if dollarChange != nil && *dollarChange < 0 {
			idea.Text += " Dollar easing helps metals."
		}
	}
	return idea
}

// WatchlistIdea 為觀察名單個股產生通用的看多限定風險建議；
// 名單本身已依突破條件過濾為上升趨勢，故不再個別判定。
func WatchlistIdea(ticker string) digest.PlaybookIdea {
	return digest.PlaybookIdea{
		Ticker:   ticker,
		Strategy: "Bull call debit spread",
		Text:     fmt.Sprintf("Trend up on weekly basis; consider %s %s call spread; cap risk, aim to ride momentum.", ticker, dte),
	}
}
