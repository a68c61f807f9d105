package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	alertadapters "tickrtime/internal/feature/alerts/adapters"
	alertusecase "tickrtime/internal/feature/alerts/usecase"
	authadapters "tickrtime/internal/feature/auth/adapters"
	earningsusecase "tickrtime/internal/feature/earnings/usecase"
	symbollistadapters "tickrtime/internal/feature/symbollist/adapters"
	symbollistusecase "tickrtime/internal/feature/symbollist/usecase"
	platformdb "tickrtime/internal/platform/db"
	"tickrtime/internal/platform/externalapi/finnhub"
	platformhttp "tickrtime/internal/platform/http"
	"tickrtime/internal/platform/mail"
	"tickrtime/internal/shared/ratelimiter"
)

const (
	// symbolSyncSpec は銘柄マスタ同期のスケジュール（毎日 05:00）です。
	symbolSyncSpec = "0 5 * * *"
	// alertSpec はアラート評価のスケジュール（毎日 07:30）です。
	alertSpec = "30 7 * * *"

	// jobTimeout は1ジョブあたりの実行時間上限です。
	jobTimeout = 10 * time.Minute

	// providerCallsPerMinute はFinnhub無料プランのレート上限です。
	providerCallsPerMinute = 60
)

func main() {
	db := platformdb.OpenDB()

	fhCfg := finnhub.LoadConfig()
	fh := finnhub.NewClient(fhCfg, platformhttp.NewHTTPClient(fhCfg.Timeout))

	limiter := ratelimiter.NewRateLimiter(providerCallsPerMinute, time.Minute)

	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	syncUC := symbollistusecase.NewSyncUsecase(fh, symbolRepo, "US")

	alertRepo := alertadapters.NewAlertRepository(db)
	userRepo := authadapters.NewUserRepository(db)
	calendarUC := earningsusecase.NewCalendarUsecase(fh)
	mailer := mail.NewFromConfig(mail.LoadConfig())
	notifyUC := alertusecase.NewNotifyUsecase(alertRepo, calendarUC, userRepo, mailer)

	c := cron.New()

	if _, err := c.AddFunc(symbolSyncSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		limiter.WaitIfNeeded()
		report, err := syncUC.Sync(ctx)
		if err != nil {
			slog.Error("symbol sync failed", "error", err)
			return
		}
		slog.Info("symbol sync finished", "added", len(report.Added), "delisted", len(report.Delisted), "total", report.Total)
	}); err != nil {
		log.Fatal(err)
	}

	if _, err := c.AddFunc(alertSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		limiter.WaitIfNeeded()
		report, err := notifyUC.RunDue(ctx, time.Now())
		if err != nil {
			slog.Error("alert run failed", "error", err)
			return
		}
		slog.Info("alert run finished", "evaluated", report.Evaluated, "notified", report.Notified)
	}); err != nil {
		log.Fatal(err)
	}

	c.Start()
	slog.Info("worker started", "symbol_sync", symbolSyncSpec, "alerts", alertSpec)

	// SIGINT/SIGTERMで停止
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("worker stopping")
	<-c.Stop().Done()
}
