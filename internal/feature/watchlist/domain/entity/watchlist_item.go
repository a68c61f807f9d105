// Package entity はwatchlistフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// WatchlistItem はユーザーがウォッチしている1銘柄を表します。
// 銘柄コードは正規化済み（大文字・ドット区切り）で保存されます。
type WatchlistItem struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol"`
	Symbol string `gorm:"size:20;not null;uniqueIndex:idx_watchlist_user_symbol"`

	CreatedAt time.Time
}

// TableName はGORMが使用するテーブル名を指定します。
func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
