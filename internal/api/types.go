// Package api はHTTP境界で使用するリクエスト/レスポンス型を定義します。
package api

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse は全エンドポイント共通のエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果のメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest は /signup エンドポイントのリクエストボディを表します。
// Ginのbindingタグでバリデーション（必須・メール形式・パスワード長）を行います。
type SignupRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=8"`
}

// LoginRequest は /login エンドポイントのリクエストボディを表します。
type LoginRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// TokenResponse はログイン成功時のレスポンスです。
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshRequest represents the request for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailRequest は /verify-email エンドポイントのリクエストボディを表します。
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// EarningsEventResponse は1件の決算イベント（導出指標付き）を表します。
// actual/estimateが欠損している場合、surprise系フィールドはnullになります。
type EarningsEventResponse struct {
	Symbol          string   `json:"symbol"`
	Date            string   `json:"date"`
	ActualEPS       *float64 `json:"actual_eps"`
	EstimateEPS     *float64 `json:"estimate_eps"`
	Hour            string   `json:"hour,omitempty"`
	Quarter         int      `json:"quarter,omitempty"`
	Year            int      `json:"year,omitempty"`
	Surprise        *float64 `json:"surprise"`
	SurprisePercent *float64 `json:"surprise_percent"`
}

// WatchlistAddRequest は /watchlist への銘柄追加リクエストです。
type WatchlistAddRequest struct {
	Symbol string `json:"symbol" binding:"required,max=20"`
}

// WatchlistItemResponse はウォッチリスト1件のレスポンスです。
type WatchlistItemResponse struct {
	Symbol  string `json:"symbol"`
	AddedAt string `json:"added_at"`
}

// AlertCreateRequest は /alerts への決算アラート作成リクエストです。
// DaysBeforeは決算日の何日前から通知するかを指定します。
type AlertCreateRequest struct {
	Symbol     string `json:"symbol" binding:"required,max=20"`
	DaysBefore int    `json:"days_before" binding:"required,min=1,max=30"`
}

// AlertResponse は決算アラート1件のレスポンスです。
type AlertResponse struct {
	ID         uint   `json:"id"`
	Symbol     string `json:"symbol"`
	DaysBefore int    `json:"days_before"`
	Active     bool   `json:"active"`
}

// SymbolResponse は銘柄マスタ1件のレスポンスです。
type SymbolResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}
