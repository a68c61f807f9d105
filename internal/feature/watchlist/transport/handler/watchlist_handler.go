// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tickrtime/internal/api"
	"tickrtime/internal/feature/watchlist/domain/entity"
	"tickrtime/internal/feature/watchlist/usecase"
	jwtmw "tickrtime/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type WatchlistUsecase interface {
	Add(ctx context.Context, userID uint, symbol string) (*entity.WatchlistItem, error)
	Remove(ctx context.Context, userID uint, symbol string) error
	List(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
}

// WatchlistHandler はウォッチリスト操作のHTTPリクエストを処理します。
type WatchlistHandler struct {
	watchlist WatchlistUsecase
}

// NewWatchlistHandler はWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(watchlist WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist}
}

// currentUserID はJWTミドルウェアがコンテキストに設定したユーザーIDを取得します。
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Add は POST /watchlist を処理し、銘柄をウォッチリストに追加します。
// - バリデーションエラー時は400を返却
// - 既に登録済みの場合は409を返却
// - 成功時は201を返却
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req api.WatchlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	item, err := h.watchlist.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSymbol):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid symbol"})
		case errors.Is(err, usecase.ErrAlreadyInWatchlist):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "symbol already in watchlist"})
		default:
			slog.Error("failed to add watchlist item", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(*item))
}

// Remove は DELETE /watchlist/:symbol を処理します。
// - 未登録の銘柄は404を返却
// - 成功時は200を返却
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	symbol := c.Param("symbol")
	if err := h.watchlist.Remove(c.Request.Context(), userID, symbol); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSymbol):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid symbol"})
		case errors.Is(err, usecase.ErrNotInWatchlist):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "symbol not in watchlist"})
		default:
			slog.Error("failed to remove watchlist item", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "removed"})
}

// List は GET /watchlist を処理し、ユーザーのウォッチリストを返します。
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	items, err := h.watchlist.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list watchlist", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	resp := make([]api.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

func toItemResponse(item entity.WatchlistItem) api.WatchlistItemResponse {
	return api.WatchlistItemResponse{
		Symbol:  item.Symbol,
		AddedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
