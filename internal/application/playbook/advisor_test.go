package playbook

import (
	"strings"
	"testing"

	"market-digest/internal/domain/digest"
)

func ptr(v float64) *float64 { return &v }

func TestAdvise(t *testing.T) {
	t.Run("Calm Uptrend Gets Calendar", func(t *testing.T) {
		idea := Advise(digest.AssetStocks, digest.TrendUp, ptr(1.2), nil, nil)
		if idea.Ticker != "SPY" || idea.Strategy != "Call calendar" {
			t.Fatalf("unexpected idea: %+v", idea)
		}
	})

	t.Run("Fast Uptrend Gets Debit Spread", func(t *testing.T) {
		idea := Advise(digest.AssetStocks, digest.TrendUp, ptr(2.0), nil, nil)
		if idea.Strategy != "Bull call debit spread" {
			t.Fatalf("2.0%% magnitude should reach the spread branch, got %+v", idea)
		}
		if !strings.Contains(idea.Text, "+5–10 OTM call") {
			t.Errorf("broad proxy should use the wide spread width: %q", idea.Text)
		}
	})

	t.Run("Downtrend Mirrors With Puts", func(t *testing.T) {
		calm := Advise(digest.AssetBTC, digest.TrendDown, ptr(-1.0), nil, nil)
		if calm.Strategy != "Put calendar" {
			t.Errorf("expected put calendar, got %+v", calm)
		}
		fast := Advise(digest.AssetBTC, digest.TrendDown, ptr(-8.0), nil, nil)
		if fast.Strategy != "Bear put debit spread" {
			t.Errorf("expected bear put spread, got %+v", fast)
		}
		if !strings.Contains(fast.Text, "-2–5 OTM put") {
			t.Errorf("narrow proxy should use the narrow width: %q", fast.Text)
		}
	})

	t.Run("Sideways Gets Iron Condor", func(t *testing.T) {
		idea := Advise(digest.AssetETH, digest.TrendSideways, ptr(0.5), nil, nil)
		if idea.Ticker != "ETHO" || idea.Strategy != "Iron condor" {
			t.Fatalf("unexpected idea: %+v", idea)
		}
	})

	t.Run("Absent Change Treated As Zero Magnitude", func(t *testing.T) {
		idea := Advise(digest.AssetGold, digest.TrendUp, nil, nil, nil)
		if idea.Strategy != "Call calendar" {
			t.Errorf("nil change should fall in the calm branch, got %+v", idea)
		}
	})

	t.Run("Metal Macro Qualifiers", func(t *testing.T) {
		both := Advise(digest.AssetGold, digest.TrendUp, ptr(1.0), ptr(-12.0), ptr(-0.8))
		if !strings.Contains(both.Text, "real yields softer") || !strings.Contains(both.Text, "Dollar easing helps metals") {
			t.Errorf("both qualifiers should append: %q", both.Text)
		}
		onlyYield := Advise(digest.AssetSilver, digest.TrendSideways, nil, ptr(-5.0), ptr(0.4))
		if !strings.Contains(onlyYield.Text, "real yields softer") || strings.Contains(onlyYield.Text, "Dollar easing") {
			t.Errorf("only the yield qualifier should append: %q", onlyYield.Text)
		}
		none := Advise(digest.AssetGold, digest.TrendUp, ptr(1.0), ptr(3.0), nil)
		if strings.Contains(none.Text, "Tailwind") || strings.Contains(none.Text, "Dollar easing") {
			t.Errorf("no qualifier expected: %q", none.Text)
		}
	})

	t.Run("Non Metal Never Gets Qualifiers", func(t *testing.T) {
		idea := Advise(digest.AssetStocks, digest.TrendUp, ptr(1.0), ptr(-30.0), ptr(-2.0))
		if strings.Contains(idea.Text, "Tailwind") || strings.Contains(idea.Text, "Dollar easing") {
			t.Errorf("macro clauses are metals-only: %q", idea.Text)
		}
	})
}

func TestWatchlistIdea(t *testing.T) {
	idea := WatchlistIdea("NVDA")
	if idea.Ticker != "NVDA" || idea.Strategy != "Bull call debit spread" {
		t.Fatalf("unexpected idea: %+v", idea)
	}
	if !strings.Contains(idea.Text, "NVDA 30–45 DTE call spread") {
		t.Errorf("unexpected text: %q", idea.Text)
	}
}
