package usecase

import (
	"math"
	"sort"

	"tickrtime/internal/feature/earnings/domain/entity"
)

// SortOrder は決算イベントの日付ソート方向です。
type SortOrder string

const (
	// SortAsc は日付昇順を指定します。
	SortAsc SortOrder = "asc"
	// SortDesc は日付降順を指定します。
	SortDesc SortOrder = "desc"
)

// dedupKey は(symbol, date)による自然な重複排除キーです。
type dedupKey struct {
	symbol string
	date   string
}

// Reconcile はサブ区間ごとのフェッチ結果を1つのクリーンな結果集合に統合します。
//
//  1. フィルタ: [start, end]の外に落ちるレコードを除外
//     （サブ区間でクリップしていても隣接月のノイズが混入することがある）
//  2. 重複排除: (symbol, date)が一致する後発レコードを除外（先勝ち）
//  3. 指標付加: surprise / surprisePercent を計算
//  4. ソート: 日付で昇順/降順、同日付は元の相対順を維持（安定ソート）
func Reconcile(batches [][]entity.EarningsRecord, start, end string, order SortOrder) []entity.EnrichedEarningsRecord {
	seen := make(map[dedupKey]struct{})
	out := make([]entity.EnrichedEarningsRecord, 0)

	for _, batch := range batches {
		for _, rec := range batch {
			if rec.Date < start || rec.Date > end {
				continue
			}
			key := dedupKey{symbol: rec.Symbol, date: rec.Date}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Enrich(rec))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortDesc {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// Enrich はレコードにサプライズ指標を付加します。
// actual/estimateのどちらかが欠損またはNaNの場合、導出値はnilになります
// （ゼロ扱いにもエラーにもしない）。estimateが0の場合、百分率は定義されません。
func Enrich(rec entity.EarningsRecord) entity.EnrichedEarningsRecord {
	enriched := entity.EnrichedEarningsRecord{EarningsRecord: rec}

	actual, estimate := rec.ActualEPS, rec.EstimateEPS
	if actual == nil || estimate == nil || math.IsNaN(*actual) || math.IsNaN(*estimate) {
		return enriched
	}

	surprise := *actual - *estimate
	enriched.Surprise = &surprise

	if *estimate != 0 {
		pct := surprise / math.Abs(*estimate) * 100
		enriched.SurprisePercent = &pct
	}
	return enriched
}
