// Package usecase はwatchlistフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"tickrtime/internal/feature/watchlist/domain/entity"
	"tickrtime/internal/shared/symbols"
)

var (
	// ErrInvalidSymbol is returned when the symbol is empty after normalization.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrAlreadyInWatchlist is returned when the symbol is already on the user's watchlist.
	ErrAlreadyInWatchlist = errors.New("symbol already in watchlist")

	// ErrNotInWatchlist is returned when the symbol is not on the user's watchlist.
	ErrNotInWatchlist = errors.New("symbol not in watchlist")
)

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type WatchlistRepository interface {
	// Add は銘柄をユーザーのウォッチリストに追加します。
	// 既に存在する場合、ErrAlreadyInWatchlistを返します。
	Add(ctx context.Context, item *entity.WatchlistItem) error

	// Remove は銘柄をユーザーのウォッチリストから削除します。
	// 存在しない場合、ErrNotInWatchlistを返します。
	Remove(ctx context.Context, userID uint, symbol string) error

	// ListByUser はユーザーのウォッチリストを追加日時の昇順で取得します。
	ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
}

// watchlistUsecase はウォッチリスト操作のビジネスロジックを実装します。
// 銘柄コードは保存・削除・比較の前に必ず正規化します。
type watchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase はwatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(repo WatchlistRepository) *watchlistUsecase {
	return &watchlistUsecase{repo: repo}
}

// Add は正規化した銘柄コードをユーザーのウォッチリストに追加します。
func (u *watchlistUsecase) Add(ctx context.Context, userID uint, symbol string) (*entity.WatchlistItem, error) {
	code := symbols.Normalize(symbol)
	if code == "" {
		return nil, ErrInvalidSymbol
	}

	item := &entity.WatchlistItem{UserID: userID, Symbol: code}
	if err := u.repo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove は正規化した銘柄コードをユーザーのウォッチリストから削除します。
func (u *watchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) error {
	code := symbols.Normalize(symbol)
	if code == "" {
		return ErrInvalidSymbol
	}
	return u.repo.Remove(ctx, userID, code)
}

// List はユーザーのウォッチリストを取得します。
func (u *watchlistUsecase) List(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	return u.repo.ListByUser(ctx, userID)
}
