package alert

import (
	"fmt"
	"math"
)

// Inputs 為單次執行算得的週度變動與衍生比值；nil 代表該訊號缺值，
// 缺值的訊號不參與任何規則判定。
type Inputs struct {
	RealYieldDeltaBps *float64 // 實質利率週變動（基點）
	DXYChangePct      *float64
	SPXChangePct      *float64
	BTCChangePct      *float64
	ETHChangePct      *float64
	GoldChangePct     *float64
	SilverChangePct   *float64
	GoldSilverRatio   *float64
}

// Thresholds 為警示規則的固定門檻表；除金銀比為封閉區間外，
// 其餘皆為絕對值門檻（不分方向）。
type Thresholds struct {
	RealYieldBps float64
	DXYPct       float64
	SPXPct       float64
	BTCPct       float64
	ETHPct       float64
	MetalPct     float64
	GSRLow       float64
	GSRHigh      float64
}

// DefaultThresholds 為預設警示門檻，屬策略常數。
var DefaultThresholds = Thresholds{
	RealYieldBps: 25.0,
	DXYPct:       1.5,
	SPXPct:       3.0,
	BTCPct:       10.0,
	ETHPct:       12.0,
	MetalPct:     5.0,
	GSRLow:       75.0,
	GSRHigh:      90.0,
}

// Sentinel 為無任何規則觸發時的固定項目；警示清單永遠不得為空。
const Sentinel = "No alert triggered this run."

// Evaluate 依固定順序評估所有規則，每條規則至多產生一則警示；
// 多條規則可於同一次執行同時觸發。無規則觸發時回傳單一 Sentinel 項目。
func Evaluate(in Inputs, th Thresholds) []string {
	var alerts []string

	if in.RealYieldDeltaBps != nil && math.Abs(*in.RealYieldDeltaBps) >= th.RealYieldBps {
		alerts = append(alerts, fmt.Sprintf("ALERT: Real yield moved %.0f bps w/w — rate backdrop shifting.", *in.RealYieldDeltaBps))
	}
	if in.DXYChangePct != nil && math.Abs(*in.DXYChangePct) >= th.DXYPct {
		alerts = append(alerts, fmt.Sprintf("ALERT: DXY %.2f%% w/w — dollar swing impacts risk & metals.", *in.DXYChangePct))
	}
	if in.SPXChangePct != nil && math.Abs(*in.SPXChangePct) >= th.SPXPct {
		alerts = append(alerts, fmt.Sprintf("ALERT: S&P 500 %.2f%% w/w — equity regime change risk.", *in.SPXChangePct))
	}
	if in.BTCChangePct != nil && math.Abs(*in.BTCChangePct) >= th.BTCPct {
		alerts = append(alerts, fmt.Sprintf("ALERT: BTC %.2f%% w/w — volatility spike.", *in.BTCChangePct))
	}
	if in.ETHChangePct != nil && math.Abs(*in.ETHChangePct) >= th.ETHPct {
		alerts = append(alerts, fmt.Sprintf("ALERT: ETH %.2f%% w/w — volatility spike.", *in.ETHChangePct))
	}
	if in.GoldSilverRatio != nil && (*in.GoldSilverRatio < th.GSRLow || *in.GoldSilverRatio > th.GSRHigh) {
		alerts = append(alerts, fmt.Sprintf("ALERT: GSR at %.1f — silver vs gold regime signal.", *in.GoldSilverRatio))
	}
	for _, metal := range []struct {
		name   string
		change *float64
	}{
		{"Gold", in.GoldChangePct},
		{"Silver", in.SilverChangePct},
	} {
		if metal.change != nil && math.Abs(*metal.change) >= th.MetalPct {
			alerts = append(alerts, fmt.Sprintf("ALERT: %s %.2f%% w/w — large weekly move.", metal.name, *metal.change))
		}
	}

	if len(alerts) == 0 {
		return []string{Sentinel}
	}
	return alerts
}

// Triggered 回報清單中是否含有實際觸發的規則（排除 Sentinel）。
func Triggered(alerts []string) bool {
	return len(alerts) > 0 && alerts[0] != Sentinel
}
