// Package usecase はearningsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidRange は日付範囲の指定が不正な場合に返されます。
	ErrInvalidRange = errors.New("invalid date range")

	// ErrAllSubFetchesFailed は全ての月次サブフェッチが失敗した場合に返されます。
	// 一部のサブフェッチが成功していれば部分的な結果を返すため、このエラーは
	// アップストリーム全体が利用不能なことを意味します。
	ErrAllSubFetchesFailed = errors.New("all upstream sub-fetches failed")

	// ErrInvalidSymbol はシンボルが空または不正な場合に返されます。
	ErrInvalidSymbol = errors.New("invalid symbol")
)
