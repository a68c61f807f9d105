// Package adapters はalertsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"tickrtime/internal/feature/alerts/domain/entity"
	"tickrtime/internal/feature/alerts/usecase"
)

// alertPostgres はAlertRepositoryインターフェースのPostgreSQL実装です。
type alertPostgres struct {
	db *gorm.DB
}

var _ usecase.AlertRepository = (*alertPostgres)(nil)

// NewAlertRepository は指定されたgorm.DB接続でalertPostgresの新しいインスタンスを生成します。
func NewAlertRepository(db *gorm.DB) *alertPostgres {
	return &alertPostgres{db: db}
}

// Create は新しいアラートを永続化します。
func (r *alertPostgres) Create(ctx context.Context, alert *entity.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

// ListByUser はユーザーのアラートを作成日時の昇順で取得します。
func (r *alertPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Alert, error) {
	var alerts []entity.Alert
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// ListActive は全ユーザーの有効なアラートを取得します。
func (r *alertPostgres) ListActive(ctx context.Context) ([]entity.Alert, error) {
	var alerts []entity.Alert
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Delete はユーザー自身のアラートを削除します。
// 他ユーザーのアラートIDを指定した場合もusecase.ErrAlertNotFoundを返します。
func (r *alertPostgres) Delete(ctx context.Context, userID, alertID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", alertID, userID).
		Delete(&entity.Alert{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrAlertNotFound
	}
	return nil
}

// MarkNotified は通知済みの決算日を記録します。
func (r *alertPostgres) MarkNotified(ctx context.Context, alertID uint, date string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Alert{}).
		Where("id = ?", alertID).
		Update("last_notified_date", date).Error
}
