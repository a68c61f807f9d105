package main

import (
	"log"
	"os"
	"time"

	"tickrtime/internal/app/router"
	alertadapters "tickrtime/internal/feature/alerts/adapters"
	alerthandler "tickrtime/internal/feature/alerts/transport/handler"
	alertusecase "tickrtime/internal/feature/alerts/usecase"
	authadapters "tickrtime/internal/feature/auth/adapters"
	authhandler "tickrtime/internal/feature/auth/transport/handler"
	authusecase "tickrtime/internal/feature/auth/usecase"
	earningshandler "tickrtime/internal/feature/earnings/transport/handler"
	earningsusecase "tickrtime/internal/feature/earnings/usecase"
	symbollistadapters "tickrtime/internal/feature/symbollist/adapters"
	symbollisthandler "tickrtime/internal/feature/symbollist/transport/handler"
	symbollistusecase "tickrtime/internal/feature/symbollist/usecase"
	watchlistadapters "tickrtime/internal/feature/watchlist/adapters"
	watchlisthandler "tickrtime/internal/feature/watchlist/transport/handler"
	watchlistusecase "tickrtime/internal/feature/watchlist/usecase"
	"tickrtime/internal/platform/cache"
	platformdb "tickrtime/internal/platform/db"
	"tickrtime/internal/platform/externalapi/finnhub"
	platformhttp "tickrtime/internal/platform/http"
	jwtmw "tickrtime/internal/platform/jwt"
	"tickrtime/internal/platform/mail"
	platformredis "tickrtime/internal/platform/redis"
	"tickrtime/internal/platform/session"
)

// accessTokenLifetime はJWTアクセストークンの有効期間です。
const accessTokenLifetime = 15 * time.Minute

func main() {
	// db
	db := platformdb.OpenDB()

	// Redis（リフレッシュセッションの保管先なので必須）
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Fatal("Redis is required for sessions: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// JWT_SECRETチェック
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, accessTokenLifetime)

	// 決算カレンダーのプロバイダー
	fhCfg := finnhub.LoadConfig()
	fh := finnhub.NewClient(fhCfg, platformhttp.NewHTTPClient(fhCfg.Timeout))

	// Redisキャッシュでラップ（夜間バッチ更新のため翌日まで有効）
	ttl := cache.TimeUntilNextMidnightEastern()
	cachedCalendar := cache.NewCachingCalendarRepository(rdb, ttl, fh, "earnings")

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := session.NewSessionRedis(rdb, "session")
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(db)
	alertRepo := alertadapters.NewAlertRepository(db)

	// Mailer（SMTP未設定時はNoop）
	mailer := mail.NewFromConfig(mail.LoadConfig())

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, mailer)
	calendarUC := earningsusecase.NewCalendarUsecase(cachedCalendar)
	historyUC := earningsusecase.NewHistoryUsecase(fh)
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)
	alertUC := alertusecase.NewAlertUsecase(alertRepo)

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Earnings:  earningshandler.NewEarningsHandler(calendarUC, historyUC),
		Symbols:   symbollisthandler.NewSymbolHandler(symbolUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Alerts:    alerthandler.NewAlertHandler(alertUC),
	}

	// ルータ生成
	r := router.NewRouter(handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
