// Package entity はearningsフィーチャーのドメインモデルを定義します。
package entity

// EarningsRecord はプロバイダーから取得した1件の決算イベントを表します。
// ActualEPS/EstimateEPSは未発表・未集計の場合nilになります。
// (Symbol, Date) が自然な重複排除キーです。
type EarningsRecord struct {
	Symbol      string   // ティッカーシンボル（正規化済み、例: "AAPL"）
	Date        string   // 決算発表日（YYYY-MM-DD）
	ActualEPS   *float64 // 実績EPS（未発表ならnil）
	EstimateEPS *float64 // アナリスト予想EPS（予想なしならnil）
	Hour        string   // 発表時間帯（"bmo"=寄付前, "amc"=引け後, "dmh"=場中）
	Quarter     int      // 会計四半期（1-4、不明なら0）
	Year        int      // 会計年度（不明なら0）
}

// EnrichedEarningsRecord はEarningsRecordに導出指標を付加したものです。
// リクエストスコープの一時的な値であり、永続化されません。
type EnrichedEarningsRecord struct {
	EarningsRecord

	// Surprise は実績EPS - 予想EPSです。どちらかが欠損していればnilです。
	Surprise *float64
	// SurprisePercent はサプライズを予想EPSの絶対値に対する百分率で表した
	// ものです。予想EPSが0または欠損の場合はnilです。
	SurprisePercent *float64
}
