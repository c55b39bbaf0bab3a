package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"market-digest/internal/domain/marketdata"
	"market-digest/internal/infrastructure/external/feed"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v7/finance/download"

// Client 下載 Yahoo Finance 的日線歷史 CSV。
type Client struct {
	feed    *feed.Client
	baseURL string
	now     func() time.Time
}

// NewClient 建立 Yahoo 歷史資料用戶端。
func NewClient(f *feed.Client) *Client {
	return &Client{
		feed:    f,
		baseURL: defaultBaseURL,
		now:     time.Now,
	}
}

// FetchDaily 取得 symbol 過去 lookbackDays 天的日線收盤序列，
// 以日期遞增排序；缺漏收盤價的列已在解析時濾除。
func (c *Client) FetchDaily(ctx context.Context, symbol string, lookbackDays int) (marketdata.Series, error) {
	end := c.now().Unix()
	start := end - int64(lookbackDays)*24*3600
	endpoint := fmt.Sprintf("%s/%s?period1=%d&period2=%d&interval=1d&events=history&includeAdjustedClose=true",
		c.baseURL, url.PathEscape(symbol), start, end)

	data, err := c.feed.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("download history for %s: %w", symbol, err)
	}

	rows, err := feed.ParseTable(data, "Close")
	if err != nil {
		return nil, fmt.Errorf("parse history for %s: %w", symbol, err)
	}

	series := make(marketdata.Series, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row["Date"])
		if err != nil {
			continue
		}
		closeVal, err := strconv.ParseFloat(row["Close"], 64)
		if err != nil {
			continue
		}
		series = append(series, marketdata.Observation{Date: date, Close: closeVal})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("empty series for %s", symbol)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid series for %s: %w", symbol, err)
	}
	return series, nil
}
