package usecase

import (
	"context"

	"tickrtime/internal/feature/earnings/domain/entity"
	"tickrtime/internal/shared/symbols"
)

const (
	// DefaultHistoryLimit は銘柄別決算履歴のデフォルト取得件数です。
	DefaultHistoryLimit = 4
	// MaxHistoryLimit は銘柄別決算履歴の最大取得件数です。
	MaxHistoryLimit = 40
)

// HistoryRepository は銘柄別の過去決算実績の取得レイヤーを抽象化します。
// カレンダーとは別のアップストリームルート（フィールド形状も異なる）ですが、
// アダプター側で同一の内部レコード形状に変換します。
type HistoryRepository interface {
	// FetchHistory は指定銘柄の直近limit四半期分の決算実績を取得します。
	FetchHistory(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error)
}

// historyUsecase は銘柄別決算履歴のユースケースを実装します。
type historyUsecase struct {
	history HistoryRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(history HistoryRepository) *historyUsecase {
	return &historyUsecase{history: history}
}

// GetHistory は指定銘柄の過去決算を指標付きで新しい順に返します。
func (u *historyUsecase) GetHistory(ctx context.Context, symbol string, limit int) ([]entity.EnrichedEarningsRecord, error) {
	normalized := symbols.Normalize(symbol)
	if normalized == "" {
		return nil, ErrInvalidSymbol
	}
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}

	recs, err := u.history.FetchHistory(ctx, normalized, limit)
	if err != nil {
		return nil, err
	}

	out := make([]entity.EnrichedEarningsRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Enrich(rec))
	}
	return out, nil
}
