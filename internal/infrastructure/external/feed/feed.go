package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

// StatusError 表示非 2xx 的 HTTP 回應。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client 提供具備重試與退避的 HTTP 下載；所有請求都會附上識別用的
// User-Agent。核心管線只會看到位元組或錯誤，不暴露任何 HTTP 狀態。
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient 建立下載用戶端。maxAttempts 含首次嘗試；baseDelay 為線性
// 退避的基準（延遲 = baseDelay × 第幾次嘗試 + 隨機抖動）。
func NewClient(timeout time.Duration, userAgent string, maxAttempts int) *Client {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		maxAttempts: maxAttempts,
		baseDelay:   500 * time.Millisecond,
		sleep:       sleepCtx,
	}
}

// Get 下載指定 URL 的內容，暫時性失敗（連線錯誤、429、5xx）會在
// 有限次數內重試，其餘錯誤立即回報。
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.getOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
		if attempt < c.maxAttempts {
			delay := time.Duration(attempt)*c.baseDelay + jitter()
			if err := c.sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("fetch %s: %w", url, err)
			}
		}
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", url, c.maxAttempts, lastErr)
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	// 連線層錯誤（逾時、斷線）一律視為暫時性。
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func jitter() time.Duration {
	return time.Duration(rand.Int63n(int64(250 * time.Millisecond)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
