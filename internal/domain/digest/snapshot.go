package digest

import "time"

// Trend 列舉資產短期趨勢判定結果。
type Trend string

const (
	TrendUp       Trend = "Up"
	TrendDown     Trend = "Down"
	TrendSideways Trend = "Sideways"
)

// Asset 列舉追蹤的資產識別名稱，對應輸出文件中的顯示名稱。
type Asset string

const (
	AssetStocks Asset = "Stocks"
	AssetBTC    Asset = "BTC"
	AssetETH    Asset = "ETH"
	AssetGold   Asset = "Gold"
	AssetSilver Asset = "Silver"
)

// Verdict 為單一資產的週度趨勢判定，每次執行重新計算，不保留歷史。
type Verdict struct {
	Asset Asset  `json:"asset"`
	Trend Trend  `json:"trend"`
	Note  string `json:"note"`
}

// WatchlistEntry 為通過突破篩選的個股，附帶產生的入選理由。
type WatchlistEntry struct {
	Ticker      string  `json:"ticker"`
	WkChangePct float64 `json:"wk_change_pct"`
	Reason      string  `json:"reason"`
	AsOf        string  `json:"as_of,omitempty"`
}

// PlaybookIdea 為啟發式的限定風險選擇權策略建議，純描述性文字，
// 不帶任何可執行的交易語意。
type PlaybookIdea struct {
	Ticker   string `json:"ticker"`
	Strategy string `json:"strategy"`
	Text     string `json:"text"`
}

// SourceRecord 記錄單一符號的資料來源與最新資料日期。
type SourceRecord struct {
	Symbol string `json:"symbol"`
	Source string `json:"source"`
	AsOf   string `json:"as_of"`
}

// Freshness 彙整各資料來源族系最近一筆資料的日期。
type Freshness struct {
	Prices string `json:"prices,omitempty"`
	Macro  string `json:"macro,omitempty"`
}

// Snapshot 為單次執行產出的完整文件，整份取代前一次的持久化結果。
// provenance 與 freshness 為後期加入的欄位，下游須容忍其缺席。
type Snapshot struct {
	LastUpdated     string           `json:"last_updated"`
	Verdicts        []Verdict        `json:"verdicts"`
	Macro           []string         `json:"macro"`
	Equities        []string         `json:"equities"`
	Crypto          []string         `json:"crypto"`
	Metals          []string         `json:"metals"`
	Events          []string         `json:"events"`
	Alerts          []string         `json:"alerts"`
	Watchlist       []WatchlistEntry `json:"watchlist"`
	OptionsPlaybook []PlaybookIdea   `json:"options_playbook"`
	Provenance      []SourceRecord   `json:"provenance,omitempty"`
	Freshness       *Freshness       `json:"freshness,omitempty"`
}

// Timestamp 格式與原始輸出文件一致。
const TimestampLayout = "2006-01-02 15:04 UTC"

// NewTimestamp 以 UTC 產生快照時間戳字串。
func NewTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
