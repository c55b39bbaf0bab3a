package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"market-digest/internal/application/alert"
	digestapp "market-digest/internal/application/digest"
	"market-digest/internal/application/screener"
	digestdomain "market-digest/internal/domain/digest"
	"market-digest/internal/infrastructure/config"
	"market-digest/internal/infrastructure/db"
	"market-digest/internal/infrastructure/external/feed"
	"market-digest/internal/infrastructure/external/fred"
	"market-digest/internal/infrastructure/external/yahoo"
	"market-digest/internal/infrastructure/notify"
	filewriter "market-digest/internal/infrastructure/persistence/file"
	"market-digest/internal/infrastructure/persistence/postgres"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	outPath := flag.String("out", "", "override snapshot output path")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.LoadFromFile(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config failed")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		logger = logger.Level(level)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	ctx := context.Background()

	feedClient := feed.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent, cfg.Fetch.Retries)
	prices := yahoo.NewClient(feedClient)
	macro := fred.NewClient(feedClient)

	scrCfg := screener.DefaultConfig(cfg.Market.Universe)
	scrCfg.LookbackDays = cfg.Market.ScreenerLookbackDays
	scrCfg.TopN = cfg.Market.WatchlistLimit
	scr := screener.New(prices, scrCfg, logger)

	useCase := digestapp.NewUseCase(prices, macro, scr, digestapp.Config{
		Symbols:       cfg.Market.Symbols,
		MacroSeriesID: cfg.Market.MacroSeries,
		LookbackDays:  cfg.Market.LookbackDays,
		Events:        cfg.Market.Events,
	}, logger)

	logger.Info().Int("universe", len(cfg.Market.Universe)).Msg("starting digest run")
	snapshot := useCase.Execute(ctx)

	// 檔案輸出是唯一的致命路徑：寫不出文件代表本次執行失敗。
	if err := filewriter.NewWriter(cfg.Output.Path).Write(snapshot); err != nil {
		logger.Fatal().Err(err).Msg("write snapshot failed")
	}
	logger.Info().Str("path", cfg.Output.Path).Msg("snapshot written")

	storeSnapshot(ctx, cfg, snapshot, logger)
	notifyAlerts(ctx, cfg, snapshot, logger)
}

func storeSnapshot(ctx context.Context, cfg config.Config, snapshot digestdomain.Snapshot, logger zerolog.Logger) {
	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := db.Connect(connCtx, cfg.DB)
	if err != nil {
		logger.Warn().Err(err).Msg("database connection failed, snapshot kept on file only")
		return
	}
	if pool == nil {
		logger.Debug().Msg("no DB_DSN provided; snapshot kept on file only")
		return
	}
	defer pool.Close()

	if err := postgres.NewSnapshotRepo(pool).Replace(ctx, snapshot); err != nil {
		logger.Warn().Err(err).Msg("store snapshot in database failed")
		return
	}
	logger.Info().Msg("snapshot stored in database")
}

func notifyAlerts(ctx context.Context, cfg config.Config, snapshot digestdomain.Snapshot, logger zerolog.Logger) {
	tg := cfg.Notifier.Telegram
	if !tg.Enabled || !alert.Triggered(snapshot.Alerts) {
		return
	}
	client := notify.NewTelegramClient(tg.Token, tg.ChatID, tg.Prefix)
	if err := client.SendAlerts(ctx, snapshot.Alerts); err != nil {
		logger.Warn().Err(err).Msg("telegram alert push failed")
		return
	}
	logger.Info().Int("alerts", len(snapshot.Alerts)).Msg("alerts pushed to telegram")
}
