// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tickrtime/internal/feature/symbollist/domain/entity"
	"tickrtime/internal/feature/symbollist/usecase"
)

// symbolPostgres はSymbolRepositoryインターフェースのPostgreSQL実装です。
type symbolPostgres struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolPostgres)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolPostgresリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolPostgres {
	return &symbolPostgres{db: db}
}

// ListActive はコード順にすべてのアクティブな銘柄を返します。
func (r *symbolPostgres) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var out []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListCodes はアクティブ・非アクティブを問わず全銘柄のコードを返します。
func (r *symbolPostgres) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// UpsertBatch は銘柄を一括で挿入または更新します。
// 既存コードは名称・市場・種別を更新し、is_activeをtrueに戻します（再上場対応）。
func (r *symbolPostgres) UpsertBatch(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "market", "type", "is_active"}),
	}).CreateInBatches(symbols, 500).Error
}

// DeactivateCodes は指定コードの銘柄を無効化します。
func (r *symbolPostgres) DeactivateCodes(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("code IN ?", codes).
		Update("is_active", false).Error
}
