// Package domain はearningsフィーチャーの純粋なドメインロジックを提供します。
package domain

import (
	"fmt"
	"time"
)

// DateLayout は日付文字列の形式（YYYY-MM-DD）です。
const DateLayout = "2006-01-02"

// DateRange は両端を含む日付区間を表すイミュータブルな値型です。
type DateRange struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
}

// ParseDate はYYYY-MM-DD形式の日付文字列をパースします。
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// SplitByMonth は[start, end]区間を暦月単位の部分区間に分割します。
// プロバイダーのカレンダーAPIは月境界をまたぐクエリで結果が欠落することが
// あるため、1リクエスト1暦月に収める必要があります。
//
// 戻り値は以下を満たします:
//   - 区間が触れる暦月ごとに1つのDateRange
//   - 先頭はstartから始まり、末尾はendで終わる
//   - 隣接する区間は連続し、重複しない
//
// 月末はうるう年を含め暦に正確です（time.Dateの日付正規化を利用）。
func SplitByMonth(start, end string) ([]DateRange, error) {
	startT, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	endT, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if startT.After(endT) {
		return nil, fmt.Errorf("start %s is after end %s", start, end)
	}

	var ranges []DateRange
	cur := startT
	for !cur.After(endT) {
		// curの属する月の末日（翌月0日 = 当月末日）
		monthEnd := time.Date(cur.Year(), cur.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		if monthEnd.After(endT) {
			monthEnd = endT
		}
		ranges = append(ranges, DateRange{
			Start: cur.Format(DateLayout),
			End:   monthEnd.Format(DateLayout),
		})
		cur = monthEnd.AddDate(0, 0, 1)
	}
	return ranges, nil
}
