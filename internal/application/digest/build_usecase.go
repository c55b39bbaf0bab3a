package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"market-digest/internal/application/alert"
	"market-digest/internal/application/playbook"
	"market-digest/internal/application/stats"
	"market-digest/internal/application/trend"
	digestDomain "market-digest/internal/domain/digest"
	"market-digest/internal/domain/marketdata"
)

// SeriesProvider 取得單一符號的日線收盤序列。
type SeriesProvider interface {
	FetchDaily(ctx context.Context, symbol string, lookbackDays int) (marketdata.Series, error)
}

// MacroProvider 取得具名總經序列。
type MacroProvider interface {
	FetchSeries(ctx context.Context, seriesID string) (marketdata.Series, error)
}

// WatchlistScreener 封裝觀察名單篩選。
type WatchlistScreener interface {
	Run(ctx context.Context) []digestDomain.WatchlistEntry
}

// 追蹤符號的內部鍵，固定順序決定 provenance 的 append 順序。
const (
	keySPX = "SPX"
	keyDXY = "DXY"
	keyBTC = "BTC"
	keyETH = "ETH"
	keyXAU = "XAU"
	keyXAG = "XAG"
)

var trackedOrder = []string{keySPX, keyDXY, keyBTC, keyETH, keyXAU, keyXAG}

// Config 定義摘要產生所需的符號對應與靜態內容。
type Config struct {
	Symbols       map[string]string // 內部鍵 → 資料來源符號
	MacroSeriesID string
	LookbackDays  int
	Events        []string
}

// quote 為單一符號抓取後的狀態；失敗以 err 記錄，不中斷整體流程。
type quote struct {
	last *float64
	week *float64
	asOf string
	err  error
}

// UseCase 組合抓取、統計、趨勢判定、警示、篩選與策略建議，
// 產出單次執行的完整快照文件。
type UseCase struct {
	prices   SeriesProvider
	macro    MacroProvider
	screener WatchlistScreener
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase 建立摘要組裝用例。
func NewUseCase(prices SeriesProvider, macro MacroProvider, screener WatchlistScreener, cfg Config, log zerolog.Logger) *UseCase {
	return &UseCase{
		prices:   prices,
		macro:    macro,
		screener: screener,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Execute 執行一次完整管線。個別符號或個股的失敗只會使該項缺值，
// 快照本身一定會產出；唯一的致命情況（無法寫出文件）由呼叫端處理。
func (u *UseCase) Execute(ctx context.Context) digestDomain.Snapshot {
	quotes := u.fetchTracked(ctx)
	macroQuote := u.fetchMacro(ctx)

	changes := make(map[string]*float64, len(trackedOrder))
	for _, key := range trackedOrder {
		q := quotes[key]
		changes[key] = stats.PercentChange(q.last, q.week)
	}

	// 金銀比與實質利率週變動（基點）為衍生訊號。
	var gsr *float64
	if xau, xag := quotes[keyXAU], quotes[keyXAG]; xau.last != nil && xag.last != nil && *xag.last != 0 {
		v := *xau.last / *xag.last
		gsr = &v
	}
	var ryd *float64
	if macroQuote.last != nil && macroQuote.week != nil {
		v := (*macroQuote.last - *macroQuote.week) * 100.0
		ryd = &v
	}

	verdicts := buildVerdicts(changes)
	watchlist := u.screener.Run(ctx)

	snapshot := digestDomain.Snapshot{
		LastUpdated:     digestDomain.NewTimestamp(u.now()),
		Verdicts:        verdicts,
		Macro:           buildMacroNotes(ryd, changes[keyDXY]),
		Equities:        buildEquityNotes(quotes[keySPX], changes[keySPX]),
		Crypto:          buildCryptoNotes(quotes, changes),
		Metals:          buildMetalNotes(quotes, changes, gsr),
		Events:          u.cfg.Events,
		Alerts: alert.Evaluate(alert.Inputs{
			RealYieldDeltaBps: ryd,
			DXYChangePct:      changes[keyDXY],
			SPXChangePct:      changes[keySPX],
			BTCChangePct:      changes[keyBTC],
			ETHChangePct:      changes[keyETH],
			GoldChangePct:     changes[keyXAU],
			SilverChangePct:   changes[keyXAG],
			GoldSilverRatio:   gsr,
		}, alert.DefaultThresholds),
		Watchlist:       watchlist,
		OptionsPlaybook: buildPlaybook(verdicts, changes, watchlist, ryd, changes[keyDXY]),
	}
	snapshot.Provenance, snapshot.Freshness = buildProvenance(quotes, macroQuote, u.cfg.MacroSeriesID)

	u.log.Info().
		Int("verdicts", len(snapshot.Verdicts)).
		Int("alerts", len(snapshot.Alerts)).
		Int("watchlist", len(snapshot.Watchlist)).
		Int("playbook", len(snapshot.OptionsPlaybook)).
		Msg("snapshot assembled")
	return snapshot
}

func (u *UseCase) fetchTracked(ctx context.Context) map[string]quote {
	quotes := make(map[string]quote, len(trackedOrder))
	for _, key := range trackedOrder {
		symbol, ok := u.cfg.Symbols[key]
		if !ok {
			quotes[key] = quote{err: fmt.Errorf("symbol %s not configured", key)}
			continue
		}
		series, err := u.prices.FetchDaily(ctx, symbol, u.cfg.LookbackDays)
		if err != nil {
			u.log.Warn().Str("symbol", symbol).Err(err).Msg("tracked symbol fetch failed")
			quotes[key] = quote{err: err}
			continue
		}
		var q quote
		q.last, q.week = stats.LastAndWeekAgo(series)
		if obs, ok := series.Last(); ok {
			q.asOf = obs.Date.Format("2006-01-02")
		}
		quotes[key] = q
		u.log.Debug().Str("symbol", symbol).Int("observations", len(series)).Msg("tracked symbol fetched")
	}
	return quotes
}

func (u *UseCase) fetchMacro(ctx context.Context) quote {
	series, err := u.macro.FetchSeries(ctx, u.cfg.MacroSeriesID)
	if err != nil {
		u.log.Warn().Str("series", u.cfg.MacroSeriesID).Err(err).Msg("macro series fetch failed")
		return quote{err: err}
	}
	var q quote
	q.last, q.week = stats.MacroWeekAgo(series)
	if obs, ok := series.Last(); ok {
		q.asOf = obs.Date.Format("2006-01-02")
	}
	return q
}

// verdictSpecs 列舉趨勢判定對象與附註標籤，順序即輸出順序。
var verdictSpecs = []struct {
	asset digestDomain.Asset
	key   string
	label string
}{
	{digestDomain.AssetStocks, keySPX, "S&P 500 weekly move"},
	{digestDomain.AssetBTC, keyBTC, "BTC weekly move"},
	{digestDomain.AssetETH, keyETH, "ETH weekly move"},
	{digestDomain.AssetGold, keyXAU, "Gold weekly move"},
	{digestDomain.AssetSilver, keyXAG, "Silver weekly move"},
}

func buildVerdicts(changes map[string]*float64) []digestDomain.Verdict {
	verdicts := make([]digestDomain.Verdict, 0, len(verdictSpecs))
	for _, spec := range verdictSpecs {
		ch := changes[spec.key]
		verdicts = append(verdicts, digestDomain.Verdict{
			Asset: spec.asset,
			Trend: trend.Classify(ch, trend.DefaultThresholds[spec.asset]),
			Note:  trend.Note(spec.label, ch),
		})
	}
	return verdicts
}

func buildMacroNotes(ryd, dxyChange *float64) []string {
	notes := make([]string, 0, 2)
	if ryd != nil {
		notes = append(notes, fmt.Sprintf("10y TIPS real yield Δ: %.0f bps w/w.", *ryd))
	} else {
		notes = append(notes, "10y TIPS real yield Δ: n/a.")
	}
	if dxyChange != nil {
		notes = append(notes, fmt.Sprintf("DXY weekly change: %.2f%%.", *dxyChange))
	} else {
		notes = append(notes, "DXY weekly change: n/a.")
	}
	return notes
}

func buildEquityNotes(spx quote, change *float64) []string {
	var notes []string
	if change != nil && spx.last != nil {
		notes = append(notes, fmt.Sprintf("S&P 500: %.2f (%.2f%% w/w).", *spx.last, *change))
	}
	return notes
}

func buildCryptoNotes(quotes map[string]quote, changes map[string]*float64) []string {
	var notes []string
	for _, c := range []struct {
		key  string
		name string
	}{
		{keyBTC, "BTC"},
		{keyETH, "ETH"},
	} {
		if ch, q := changes[c.key], quotes[c.key]; ch != nil && q.last != nil {
			notes = append(notes, fmt.Sprintf("%s: %.2f (%.2f%% w/w).", c.name, *q.last, *ch))
		}
	}
	return notes
}

func buildMetalNotes(quotes map[string]quote, changes map[string]*float64, gsr *float64) []string {
	var notes []string
	if ch, q := changes[keyXAU], quotes[keyXAU]; ch != nil && q.last != nil {
		notes = append(notes, fmt.Sprintf("Gold: %.2f (%.2f%% w/w).", *q.last, *ch))
	}
	if ch, q := changes[keyXAG], quotes[keyXAG]; ch != nil && q.last != nil {
		notes = append(notes, fmt.Sprintf("Silver: %.2f (%.2f%% w/w).", *q.last, *ch))
	}
	if gsr != nil {
		notes = append(notes, fmt.Sprintf("Gold/Silver Ratio (GSR): %.1f.", *gsr))
	}
	return notes
}

const topPlaybookPicks = 5

func buildPlaybook(verdicts []digestDomain.Verdict, changes map[string]*float64, watchlist []digestDomain.WatchlistEntry, ryd, dxyChange *float64) []digestDomain.PlaybookIdea {
	trends := make(map[digestDomain.Asset]digestDomain.Trend, len(verdicts))
	for _, v := range verdicts {
		trends[v.Asset] = v.Trend
	}
	assetChanges := map[digestDomain.Asset]*float64{
		digestDomain.AssetStocks: changes[keySPX],
		digestDomain.AssetGold:   changes[keyXAU],
		digestDomain.AssetSilver: changes[keyXAG],
		digestDomain.AssetBTC:    changes[keyBTC],
		digestDomain.AssetETH:    changes[keyETH],
	}

	ideas := make([]digestDomain.PlaybookIdea, 0, 5+topPlaybookPicks)
	for _, asset := range []digestDomain.Asset{
		digestDomain.AssetStocks,
		digestDomain.AssetGold,
		digestDomain.AssetSilver,
		digestDomain.AssetBTC,
		digestDomain.AssetETH,
	} {
		ideas = append(ideas, playbook.Advise(asset, trends[asset], assetChanges[asset], ryd, dxyChange))
	}

	picks := watchlist
	if len(picks) > topPlaybookPicks {
		picks = picks[:topPlaybookPicks]
	}
	for _, entry := range picks {
		ideas = append(ideas, playbook.WatchlistIdea(entry.Ticker))
	}
	return ideas
}

func buildProvenance(quotes map[string]quote, macroQuote quote, macroSeriesID string) ([]digestDomain.SourceRecord, *digestDomain.Freshness) {
	var records []digestDomain.SourceRecord
	fresh := &digestDomain.Freshness{}

	for _, key := range trackedOrder {
		q := quotes[key]
		if q.err != nil || q.asOf == "" {
			continue
		}
		records = append(records, digestDomain.SourceRecord{Symbol: key, Source: "yahoo", AsOf: q.asOf})
		if q.asOf > fresh.Prices {
			fresh.Prices = q.asOf
		}
	}
	if macroQuote.err == nil && macroQuote.asOf != "" {
		records = append(records, digestDomain.SourceRecord{Symbol: macroSeriesID, Source: "fred", AsOf: macroQuote.asOf})
		fresh.Macro = macroQuote.asOf
	}

	if fresh.Prices == "" && fresh.Macro == "" {
		return records, nil
	}
	return records, fresh
}
