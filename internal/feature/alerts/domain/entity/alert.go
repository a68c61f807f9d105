// Package entity はalertsフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Alert は決算イベントのメール通知設定を表します。
// DaysBeforeは決算日の何日前から通知するかを指定します。
// LastNotifiedDateは最後に通知した決算日（YYYY-MM-DD）で、同一イベントの再通知を防ぎます。
type Alert struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	Symbol     string `gorm:"size:20;not null"`
	DaysBefore int    `gorm:"not null"`
	Active     bool   `gorm:"not null;default:true"`

	LastNotifiedDate string `gorm:"size:10"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName はGORMが使用するテーブル名を指定します。
func (Alert) TableName() string {
	return "alerts"
}
