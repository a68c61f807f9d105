// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tickrtime/internal/feature/watchlist/domain/entity"
	"tickrtime/internal/feature/watchlist/usecase"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const uniqueViolation = "23505"

// watchlistPostgres はWatchlistRepositoryインターフェースのPostgreSQL実装です。
type watchlistPostgres struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistRepository は指定されたgorm.DB接続でwatchlistPostgresの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// Add は銘柄をウォッチリストに追加します。
// (user_id, symbol)の一意制約違反はusecase.ErrAlreadyInWatchlistに変換します。
func (r *watchlistPostgres) Add(ctx context.Context, item *entity.WatchlistItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.ErrAlreadyInWatchlist
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyInWatchlist
		}
		return err
	}
	return nil
}

// Remove は銘柄をウォッチリストから削除します。
// 対象行が存在しない場合、usecase.ErrNotInWatchlistを返します。
func (r *watchlistPostgres) Remove(ctx context.Context, userID uint, symbol string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNotInWatchlist
	}
	return nil
}

// ListByUser はユーザーのウォッチリストを追加日時の昇順で取得します。
func (r *watchlistPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
