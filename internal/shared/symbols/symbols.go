// Package symbols はティッカーシンボルの正規化と比較ユーティリティを提供します。
//
// 外部プロバイダーは大文字小文字が混在したシンボル（例: "FLGpU"）を返すことが
// あるため、保存済みシンボルとの集合比較は必ず両辺を正規化してから行います。
package symbols

import "strings"

// Normalize はシンボルを内部表現（前後空白除去・大文字）に変換します。
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Equal は2つのシンボルを正規化して比較します。
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// NewSet は正規化済みシンボルの集合を構築します。
func NewSet(ss []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		set[Normalize(s)] = struct{}{}
	}
	return set
}

// Diff は保存済みシンボルとプロバイダー取得シンボルを正規化のうえ比較し、
// 新規上場（providerのみに存在）と上場廃止候補（storedのみに存在）を返します。
// 大文字小文字だけが異なるシンボルを誤検出しないことが正しさの要件です。
func Diff(stored, provider []string) (added, removed []string) {
	storedSet := NewSet(stored)
	providerSet := NewSet(provider)

	for _, s := range provider {
		n := Normalize(s)
		if _, ok := storedSet[n]; !ok {
			added = append(added, n)
			// 同一シンボルが複数回現れても1度だけ報告する
			storedSet[n] = struct{}{}
		}
	}
	for _, s := range stored {
		n := Normalize(s)
		if _, ok := providerSet[n]; !ok {
			removed = append(removed, n)
			providerSet[n] = struct{}{}
		}
	}
	return added, removed
}
