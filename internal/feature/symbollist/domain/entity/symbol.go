// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents a stock ticker symbol tracked by the system.
// Code is always stored normalized (trimmed, upper case) so that set
// comparisons against provider data never produce case-only mismatches.
type Symbol struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"size:20;not null;uniqueIndex"`
	Name     string `gorm:"size:255;not null"`
	Market   string `gorm:"size:100"`
	Type     string `gorm:"size:50"`
	IsActive bool   `gorm:"not null;default:true"`
	// UpdatedAt is bumped on every sync touch.
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName はGORMが使用するテーブル名を指定します。
func (Symbol) TableName() string {
	return "symbols"
}
