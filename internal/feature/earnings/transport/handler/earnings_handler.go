// Package handler はearningsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tickrtime/internal/api"
	"tickrtime/internal/feature/earnings/domain/entity"
	"tickrtime/internal/feature/earnings/usecase"
)

// CalendarUsecase は決算カレンダー取得のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CalendarUsecase interface {
	GetCalendar(ctx context.Context, start, end string, order usecase.SortOrder) ([]entity.EnrichedEarningsRecord, error)
}

// HistoryUsecase は銘柄別決算履歴取得のユースケースを定義します。
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol string, limit int) ([]entity.EnrichedEarningsRecord, error)
}

// EarningsHandler は決算データのHTTPリクエストを処理します。
type EarningsHandler struct {
	calendar CalendarUsecase
	history  HistoryUsecase
}

// NewEarningsHandler はEarningsHandlerの新しいインスタンスを生成します。
func NewEarningsHandler(calendar CalendarUsecase, history HistoryUsecase) *EarningsHandler {
	return &EarningsHandler{calendar: calendar, history: history}
}

// GetCalendar は決算カレンダー取得APIエンドポイントを処理します。
// - from/toクエリパラメータ必須、YYYY-MM-DD形式
// - sort=asc|desc（デフォルトasc）
// - パラメータ不正時は400、アップストリーム全面失敗時は500を返却
func (h *EarningsHandler) GetCalendar(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from and to are required"})
		return
	}

	order := usecase.SortAsc
	switch c.DefaultQuery("sort", "asc") {
	case "asc":
	case "desc":
		order = usecase.SortDesc
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "sort must be asc or desc"})
		return
	}

	records, err := h.calendar.GetCalendar(c.Request.Context(), from, to, order)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid date range"})
			return
		}
		// 部分的なデータすら得られなかった場合のみここに到達する
		slog.Error("earnings calendar fetch failed", "from", from, "to", to, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, toResponses(records))
}

// GetHistory は銘柄別の過去決算取得APIエンドポイントを処理します。
func (h *EarningsHandler) GetHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	records, err := h.history.GetHistory(c.Request.Context(), symbol, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSymbol) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid symbol"})
			return
		}
		slog.Error("earnings history fetch failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, toResponses(records))
}

// toResponses はドメインレコードをAPIレスポンス型に変換します。
func toResponses(records []entity.EnrichedEarningsRecord) []api.EarningsEventResponse {
	out := make([]api.EarningsEventResponse, 0, len(records))
	for _, r := range records {
		out = append(out, api.EarningsEventResponse{
			Symbol:          r.Symbol,
			Date:            r.Date,
			ActualEPS:       r.ActualEPS,
			EstimateEPS:     r.EstimateEPS,
			Hour:            r.Hour,
			Quarter:         r.Quarter,
			Year:            r.Year,
			Surprise:        r.Surprise,
			SurprisePercent: r.SurprisePercent,
		})
	}
	return out
}
