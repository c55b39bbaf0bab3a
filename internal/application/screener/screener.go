package screener

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"market-digest/internal/application/stats"
	"market-digest/internal/domain/digest"
	"market-digest/internal/domain/marketdata"
)

// HistoryProvider 取得個股的日線收盤序列。
type HistoryProvider interface {
	FetchDaily(ctx context.Context, symbol string, lookbackDays int) (marketdata.Series, error)
}

// Config 定義突破篩選的參數。
type Config struct {
	Universe        []string // 固定的大型股清單，順序即為同分時的排序依據
	LookbackDays    int
	MinObservations int
	ShortWindow     int
	LongWindow      int
	TopN            int
}

// DefaultConfig 回傳預設篩選參數（universe 由組態提供）。
func DefaultConfig(universe []string) Config {
	return Config{
		Universe:        universe,
		LookbackDays:    160,
		MinObservations: 60,
		ShortWindow:     20,
		LongWindow:      50,
		TopN:            12,
	}
}

// Screener 對固定股票清單套用均線突破條件，產生排序後的觀察名單。
type Screener struct {
	history HistoryProvider
	cfg     Config
	log     zerolog.Logger
}

// New 建立篩選器。
func New(history HistoryProvider, cfg Config, log zerolog.Logger) *Screener {
	return &Screener{history: history, cfg: cfg, log: log}
}

// Run 逐一檢查清單中的個股。單一個股的抓取失敗或資料不足只會使其
// 落選，不會中斷整體篩選。回傳依週變動由大到小排序、截斷至 TopN 的結果。
func (s *Screener) Run(ctx context.Context) []digest.WatchlistEntry {
	var entries []digest.WatchlistEntry

	for _, ticker := range s.cfg.Universe {
		entry, ok := s.screenOne(ctx, ticker)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	// 同變動值時維持 universe 原始順序（stable sort）。
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WkChangePct > entries[j].WkChangePct
	})
	if len(entries) > s.cfg.TopN {
		entries = entries[:s.cfg.TopN]
	}
	return entries
}

func (s *Screener) screenOne(ctx context.Context, ticker string) (digest.WatchlistEntry, bool) {
	var none digest.WatchlistEntry

	series, err := s.history.FetchDaily(ctx, ticker, s.cfg.LookbackDays)
	if err != nil {
		s.log.Warn().Str("ticker", ticker).Err(err).Msg("screen fetch failed, ticker skipped")
		return none, false
	}
	if len(series) < s.cfg.MinObservations {
		s.log.Debug().Str("ticker", ticker).Int("observations", len(series)).Msg("series too short, ticker skipped")
		return none, false
	}

	last, week := stats.LastAndWeekAgo(series)
	closes := series.Closes()
	smaShort := stats.SimpleMovingAverage(closes, s.cfg.ShortWindow)
	smaLong := stats.SimpleMovingAverage(closes, s.cfg.LongWindow)
	change := stats.PercentChange(last, week)

	// 任一中間值缺值即落選（fail-closed）。
	if last == nil || week == nil || smaShort == nil || smaLong == nil || change == nil {
		return none, false
	}
	if !(*last > *smaShort && *last > *smaLong && *smaShort > *smaLong && *change > 0) {
		return none, false
	}

	pct := math.Round(*change*100) / 100
	entry := digest.WatchlistEntry{
		Ticker:      ticker,
		WkChangePct: pct,
		Reason:      buildReason(ticker, pct),
	}
	if obs, ok := series.Last(); ok {
		entry.AsOf = obs.Date.Format("2006-01-02")
	}
	return entry, true
}

func buildReason(ticker string, pct float64) string {
	return fmt.Sprintf("It might be a good time to buy %s: price above 20/50DMA, +%.1f%% this week.", ticker, pct)
}
