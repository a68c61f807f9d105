// Package handler はalertsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tickrtime/internal/api"
	"tickrtime/internal/feature/alerts/domain/entity"
	"tickrtime/internal/feature/alerts/usecase"
	jwtmw "tickrtime/internal/platform/jwt"
)

// AlertUsecase はアラートCRUDのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AlertUsecase interface {
	Create(ctx context.Context, userID uint, symbol string, daysBefore int) (*entity.Alert, error)
	List(ctx context.Context, userID uint) ([]entity.Alert, error)
	Delete(ctx context.Context, userID, alertID uint) error
}

// AlertHandler はアラート操作のHTTPリクエストを処理します。
type AlertHandler struct {
	alerts AlertUsecase
}

// NewAlertHandler はAlertHandlerの新しいインスタンスを生成します。
func NewAlertHandler(alerts AlertUsecase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Create は POST /alerts を処理し、新しいアラートを作成します。
func (h *AlertHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req api.AlertCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	alert, err := h.alerts.Create(c.Request.Context(), userID, req.Symbol, req.DaysBefore)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSymbol):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid symbol"})
		case errors.Is(err, usecase.ErrInvalidDaysBefore):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "days_before out of range"})
		default:
			slog.Error("failed to create alert", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, toAlertResponse(*alert))
}

// List は GET /alerts を処理し、ユーザーのアラート一覧を返します。
func (h *AlertHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	alerts, err := h.alerts.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list alerts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	resp := make([]api.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		resp = append(resp, toAlertResponse(alert))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete は DELETE /alerts/:id を処理します。
func (h *AlertHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid alert id"})
		return
	}

	if err := h.alerts.Delete(c.Request.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, usecase.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "alert not found"})
			return
		}
		slog.Error("failed to delete alert", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "deleted"})
}

func toAlertResponse(alert entity.Alert) api.AlertResponse {
	return api.AlertResponse{
		ID:         alert.ID,
		Symbol:     alert.Symbol,
		DaysBefore: alert.DaysBefore,
		Active:     alert.Active,
	}
}
