package cache

import (
	"time"
)

// TimeUntilNextMidnightEastern は次の米国東部時間0時までの期間を返します。
// 決算カレンダーは米国市場の日付で繰り上がるため、日次で更新される
// キャッシュのTTLに使用します。
func TimeUntilNextMidnightEastern() time.Duration {
	loc, _ := time.LoadLocation("America/New_York")
	now := time.Now().In(loc)

	// 翌日の0時を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).Add(24 * time.Hour)

	return next.Sub(now)
}
