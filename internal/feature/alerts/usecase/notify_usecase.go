package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	authentity "tickrtime/internal/feature/auth/domain/entity"
	earningsentity "tickrtime/internal/feature/earnings/domain/entity"
	earningsusecase "tickrtime/internal/feature/earnings/usecase"
)

// CalendarService は決算カレンダー照会のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（alerts）が定義します。
type CalendarService interface {
	GetCalendar(ctx context.Context, start, end string, order earningsusecase.SortOrder) ([]earningsentity.EnrichedEarningsRecord, error)
}

// UserRepository は通知先ユーザーの照会を抽象化します。
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// Mailer はメール送信サービスを抽象化します。
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotifyReport はRunDueの実行結果サマリーです。
type NotifyReport struct {
	Evaluated int // 評価した有効アラート数
	Notified  int // 送信した通知数
}

// notifyUsecase は期限が迫った決算イベントのメール通知を実装します。
type notifyUsecase struct {
	alerts   AlertRepository
	calendar CalendarService
	users    UserRepository
	mailer   Mailer
}

// NewNotifyUsecase はnotifyUsecaseの新しいインスタンスを生成します。
func NewNotifyUsecase(alerts AlertRepository, calendar CalendarService, users UserRepository, mailer Mailer) *notifyUsecase {
	return &notifyUsecase{
		alerts:   alerts,
		calendar: calendar,
		users:    users,
		mailer:   mailer,
	}
}

// dateLayout は決算日の書式です（earnings側と同一）。
const dateLayout = "2006-01-02"

// RunDue は有効な全アラートを評価し、DaysBefore日以内に決算を控えた銘柄の
// 所有者へメールを送信します。通知済みの決算日は記録され、同一イベントが
// 二度通知されることはありません。メール未確認のユーザーには送信しません。
// 個々のアラートの失敗は全体を止めず、ログに残して続行します。
func (u *notifyUsecase) RunDue(ctx context.Context, now time.Time) (NotifyReport, error) {
	var report NotifyReport

	alerts, err := u.alerts.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list active alerts: %w", err)
	}
	if len(alerts) == 0 {
		return report, nil
	}

	// 全アラートを1回のカレンダー照会でカバーする
	maxDays := 0
	for _, a := range alerts {
		if a.DaysBefore > maxDays {
			maxDays = a.DaysBefore
		}
	}
	from := now.Format(dateLayout)
	to := now.AddDate(0, 0, maxDays).Format(dateLayout)

	events, err := u.calendar.GetCalendar(ctx, from, to, earningsusecase.SortAsc)
	if err != nil {
		return report, fmt.Errorf("failed to fetch earnings calendar: %w", err)
	}

	bySymbol := make(map[string][]earningsentity.EnrichedEarningsRecord)
	for _, ev := range events {
		bySymbol[ev.Symbol] = append(bySymbol[ev.Symbol], ev)
	}

	for _, alert := range alerts {
		report.Evaluated++

		// イベントは日付昇順なので、最初にマッチした（直近の）ものだけ通知する
		cutoff := now.AddDate(0, 0, alert.DaysBefore).Format(dateLayout)
		for _, ev := range bySymbol[alert.Symbol] {
			if ev.Date > cutoff {
				break
			}
			if ev.Date == alert.LastNotifiedDate {
				continue
			}

			if err := u.notify(ctx, alert.UserID, alert.Symbol, ev); err != nil {
				slog.Warn("alert notification failed", "alert_id", alert.ID, "symbol", alert.Symbol, "error", err)
				break
			}
			if err := u.alerts.MarkNotified(ctx, alert.ID, ev.Date); err != nil {
				slog.Warn("failed to record notified date", "alert_id", alert.ID, "error", err)
			}
			report.Notified++
			break
		}
	}

	return report, nil
}

// notify は1件の決算イベントについて所有者へメールを送信します。
func (u *notifyUsecase) notify(ctx context.Context, userID uint, symbol string, ev earningsentity.EnrichedEarningsRecord) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user %d: %w", userID, err)
	}
	if !user.EmailVerified {
		return fmt.Errorf("user %d has not verified their email", userID)
	}

	subject := fmt.Sprintf("Upcoming earnings: %s on %s", symbol, ev.Date)
	body := fmt.Sprintf("%s reports earnings on %s.", symbol, ev.Date)
	if ev.EstimateEPS != nil {
		body += fmt.Sprintf(" Consensus EPS estimate: %.2f.", *ev.EstimateEPS)
	}
	return u.mailer.Send(ctx, user.Email, subject, body)
}
