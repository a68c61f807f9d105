// Package router はHTTPルーティングを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	alerthandler "tickrtime/internal/feature/alerts/transport/handler"
	authhandler "tickrtime/internal/feature/auth/transport/handler"
	earningshandler "tickrtime/internal/feature/earnings/transport/handler"
	symbollisthandler "tickrtime/internal/feature/symbollist/transport/handler"
	watchlisthandler "tickrtime/internal/feature/watchlist/transport/handler"
	"tickrtime/internal/platform/http/handler"
	jwtmw "tickrtime/internal/platform/jwt"
)

// Handlers はルーティングに必要な全ハンドラーをまとめます。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Earnings  *earningshandler.EarningsHandler
	Symbols   *symbollisthandler.SymbolHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Alerts    *alerthandler.AlertHandler
}

// NewRouter は全エンドポイントを登録したGinエンジンを生成します。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	// ブラウザのダッシュボードから呼ばれるためCORSを有効化
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// メールアドレス確認
	r.POST("/verify-email", h.Auth.VerifyEmail)
	// ログイン（アクセス/リフレッシュトークン発行）
	r.POST("/login", h.Auth.Login)
	// トークンリフレッシュ
	r.POST("/refresh", h.Auth.Refresh)
	// ログアウト（セッション失効）
	r.POST("/logout", h.Auth.Logout)

	// 認証必須のルート
	auth := r.Group("/")
	// リクエストヘッダーにJWTが必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/earnings", h.Earnings.GetCalendar)
		auth.GET("/earnings/:symbol", h.Earnings.GetHistory)
		auth.GET("/symbols", h.Symbols.List)

		auth.GET("/watchlist", h.Watchlist.List)
		auth.POST("/watchlist", h.Watchlist.Add)
		auth.DELETE("/watchlist/:symbol", h.Watchlist.Remove)

		auth.GET("/alerts", h.Alerts.List)
		auth.POST("/alerts", h.Alerts.Create)
		auth.DELETE("/alerts/:id", h.Alerts.Delete)
	}

	return r
}
