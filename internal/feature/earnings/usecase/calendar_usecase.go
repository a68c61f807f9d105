package usecase

import (
	"context"
	"log/slog"
	"sync"

	"tickrtime/internal/feature/earnings/domain"
	"tickrtime/internal/feature/earnings/domain/entity"
)

// CalendarRepository は決算カレンダーの取得レイヤーを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CalendarRepository interface {
	// FetchCalendar は[from, to]区間（両端含む）の決算イベントを取得します。
	// 区間は1暦月に収まっていることを呼び出し側が保証します。
	FetchCalendar(ctx context.Context, from, to string) ([]entity.EarningsRecord, error)
}

// calendarUsecase は決算カレンダー取得のユースケースを実装します。
type calendarUsecase struct {
	calendar CalendarRepository
}

// NewCalendarUsecase はcalendarUsecaseの新しいインスタンスを生成します。
func NewCalendarUsecase(calendar CalendarRepository) *calendarUsecase {
	return &calendarUsecase{calendar: calendar}
}

// GetCalendar は[start, end]区間の決算イベントを統合済み・指標付きで返します。
//
// 区間を暦月単位のサブ区間に分割し、サブ区間ごとに並行してフェッチします。
// サブフェッチ同士に順序依存はなく、共有可変状態にも触れません（結果は
// インデックスで自分のスロットに書き込みます）。失敗したサブフェッチは
// 空バッチとして扱いログに残します。全サブフェッチが失敗した場合のみ
// ErrAllSubFetchesFailedを返します（部分的なデータを全面失敗より優先）。
func (u *calendarUsecase) GetCalendar(ctx context.Context, start, end string, order SortOrder) ([]entity.EnrichedEarningsRecord, error) {
	ranges, err := domain.SplitByMonth(start, end)
	if err != nil {
		return nil, ErrInvalidRange
	}

	batches := make([][]entity.EarningsRecord, len(ranges))
	errs := make([]error, len(ranges))

	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r domain.DateRange) {
			defer wg.Done()
			recs, err := u.calendar.FetchCalendar(ctx, r.Start, r.End)
			if err != nil {
				// サブ区間単位で失敗を隔離し、他のサブフェッチは継続させる
				slog.Warn("earnings sub-fetch failed",
					"from", r.Start, "to", r.End, "error", err)
				errs[i] = err
				return
			}
			batches[i] = recs
		}(i, r)
	}
	wg.Wait()

	failed := 0
	for _, e := range errs {
		if e != nil {
			failed++
		}
	}
	if failed == len(ranges) {
		return nil, ErrAllSubFetchesFailed
	}
	if failed > 0 {
		slog.Warn("returning partial earnings calendar",
			"failed_ranges", failed, "total_ranges", len(ranges))
	}

	return Reconcile(batches, start, end, order), nil
}
