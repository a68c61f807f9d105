// Package usecase はalertsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"tickrtime/internal/feature/alerts/domain/entity"
	"tickrtime/internal/shared/symbols"
)

const (
	// MinDaysBefore / MaxDaysBefore はDaysBeforeの許容範囲です。
	MinDaysBefore = 1
	MaxDaysBefore = 30
)

var (
	// ErrInvalidSymbol is returned when the symbol is empty after normalization.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidDaysBefore is returned when DaysBefore is outside the allowed range.
	ErrInvalidDaysBefore = errors.New("days_before out of range")

	// ErrAlertNotFound is returned when an alert does not exist or belongs to another user.
	ErrAlertNotFound = errors.New("alert not found")
)

// AlertRepository はアラートの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AlertRepository interface {
	// Create は新しいアラートを永続化します。
	Create(ctx context.Context, alert *entity.Alert) error

	// ListByUser はユーザーのアラートを作成日時の昇順で取得します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Alert, error)

	// ListActive は全ユーザーの有効なアラートを取得します。
	ListActive(ctx context.Context) ([]entity.Alert, error)

	// Delete はユーザー自身のアラートを削除します。
	// 対象が存在しない場合、ErrAlertNotFoundを返します。
	Delete(ctx context.Context, userID, alertID uint) error

	// MarkNotified は通知済みの決算日を記録します。
	MarkNotified(ctx context.Context, alertID uint, date string) error
}

// alertUsecase はアラートCRUDのビジネスロジックを実装します。
type alertUsecase struct {
	repo AlertRepository
}

// NewAlertUsecase はalertUsecaseの新しいインスタンスを生成します。
func NewAlertUsecase(repo AlertRepository) *alertUsecase {
	return &alertUsecase{repo: repo}
}

// Create は正規化した銘柄コードで新しいアラートを作成します。
func (u *alertUsecase) Create(ctx context.Context, userID uint, symbol string, daysBefore int) (*entity.Alert, error) {
	code := symbols.Normalize(symbol)
	if code == "" {
		return nil, ErrInvalidSymbol
	}
	if daysBefore < MinDaysBefore || daysBefore > MaxDaysBefore {
		return nil, ErrInvalidDaysBefore
	}

	alert := &entity.Alert{
		UserID:     userID,
		Symbol:     code,
		DaysBefore: daysBefore,
		Active:     true,
	}
	if err := u.repo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// List はユーザーのアラートを取得します。
func (u *alertUsecase) List(ctx context.Context, userID uint) ([]entity.Alert, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Delete はユーザー自身のアラートを削除します。
func (u *alertUsecase) Delete(ctx context.Context, userID, alertID uint) error {
	return u.repo.Delete(ctx, userID, alertID)
}
