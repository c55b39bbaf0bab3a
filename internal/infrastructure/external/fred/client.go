package fred

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"market-digest/internal/domain/marketdata"
	"market-digest/internal/infrastructure/external/feed"
)

const defaultBaseURL = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// Client 下載 FRED 的總經序列 CSV；數值欄名即為序列代號，
// 缺漏觀測以 "." 標示並在解析時濾除。
type Client struct {
	feed    *feed.Client
	baseURL string
}

// NewClient 建立 FRED 序列用戶端。
func NewClient(f *feed.Client) *Client {
	return &Client{feed: f, baseURL: defaultBaseURL}
}

// FetchSeries 取得指定序列的完整歷史，以日期遞增排序。
func (c *Client) FetchSeries(ctx context.Context, seriesID string) (marketdata.Series, error) {
	endpoint := fmt.Sprintf("%s?id=%s", c.baseURL, url.QueryEscape(seriesID))

	data, err := c.feed.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("download series %s: %w", seriesID, err)
	}

	rows, err := feed.ParseTable(data, seriesID)
	if err != nil {
		return nil, fmt.Errorf("parse series %s: %w", seriesID, err)
	}

	series := make(marketdata.Series, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row["DATE"])
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(row[seriesID], 64)
		if err != nil {
			continue
		}
		series = append(series, marketdata.Observation{Date: date, Close: value})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("empty series %s", seriesID)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid series %s: %w", seriesID, err)
	}
	return series, nil
}
