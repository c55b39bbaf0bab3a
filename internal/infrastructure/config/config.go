package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存批次摘要執行所需的全部設定。
type Config struct {
	Market   MarketConfig   `yaml:"market"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Output   OutputConfig   `yaml:"output"`
	DB       DBConfig       `yaml:"db"`
	Notifier NotifierConfig `yaml:"notifier"`
	Log      LogConfig      `yaml:"log"`
}

// MarketConfig 定義追蹤符號、總經序列與觀察名單的股票清單。
type MarketConfig struct {
	Symbols              map[string]string `yaml:"symbols"`
	MacroSeries          string            `yaml:"macro_series"`
	LookbackDays         int               `yaml:"lookback_days"`
	Universe             []string          `yaml:"universe"`
	ScreenerLookbackDays int               `yaml:"screener_lookback_days"`
	WatchlistLimit       int               `yaml:"watchlist_limit"`
	Events               []string          `yaml:"events"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
	UserAgent string        `yaml:"user_agent"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type DBConfig struct {
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
}

type NotifierConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
	Prefix  string `yaml:"prefix"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadFromFile 從 YAML 組態檔載入設定；檔案不存在時僅套用預設值。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

// 預設追蹤符號：指數、美元指數、兩種加密資產、兩種金屬。
func defaultSymbols() map[string]string {
	return map[string]string{
		"SPX": "^GSPC",
		"DXY": "DX-Y.NYB",
		"BTC": "BTC-USD",
		"ETH": "ETH-USD",
		"XAU": "XAUUSD=X",
		"XAG": "XAGUSD=X",
	}
}

func defaultUniverse() []string {
	return []string{
		"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "TSLA", "AVGO", "NFLX", "COST",
		"AMD", "CRM", "ADBE", "INTC", "ORCL", "JPM", "BAC", "GS", "UNH", "LLY",
		"XOM", "CVX", "WMT", "HD", "CAT", "PEP", "KO", "V", "MA", "PG",
		"NKE", "MCD", "GE", "BA", "NOW", "PANW", "MU", "SMCI",
	}
}

func defaultEvents() []string {
	return []string{
		"Watch: CPI/PCE, Jobs (NFP), ISM/PMI, central-bank minutes.",
		"Earnings: megacaps, semis, money-center banks when due.",
	}
}

func applyDefaults(cfg Config) Config {
	if len(cfg.Market.Symbols) == 0 {
		cfg.Market.Symbols = defaultSymbols()
	}
	if cfg.Market.MacroSeries == "" {
		cfg.Market.MacroSeries = "DFII10"
	}
	if cfg.Market.LookbackDays == 0 {
		cfg.Market.LookbackDays = 90
	}
	if len(cfg.Market.Universe) == 0 {
		cfg.Market.Universe = defaultUniverse()
	}
	if cfg.Market.ScreenerLookbackDays == 0 {
		cfg.Market.ScreenerLookbackDays = 160
	}
	if cfg.Market.WatchlistLimit == 0 {
		cfg.Market.WatchlistLimit = 12
	}
	if len(cfg.Market.Events) == 0 {
		cfg.Market.Events = defaultEvents()
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.Retries == 0 {
		cfg.Fetch.Retries = 3
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "market-digest/1.0"
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "data.json"
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 5
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 2
	}
	if cfg.DB.MaxIdleTime == 0 {
		cfg.DB.MaxIdleTime = 15 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("OUTPUT_PATH"); val != "" {
		cfg.Output.Path = val
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		cfg.DB.DSN = val
	}
	if val := os.Getenv("MACRO_SERIES"); val != "" {
		cfg.Market.MacroSeries = val
	}
	if val := os.Getenv("TELEGRAM_TOKEN"); val != "" {
		cfg.Notifier.Telegram.Token = val
	}
	if val := os.Getenv("TELEGRAM_CHAT_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Notifier.Telegram.ChatID = id
		}
	}
	if val := os.Getenv("TELEGRAM_ENABLED"); val != "" {
		cfg.Notifier.Telegram.Enabled = (val == "true")
	}
	if val := os.Getenv("FETCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Fetch.Timeout = d
		}
	}
	if val := os.Getenv("FETCH_USER_AGENT"); val != "" {
		cfg.Fetch.UserAgent = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	return cfg
}
