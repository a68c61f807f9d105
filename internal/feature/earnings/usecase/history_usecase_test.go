package usecase

import (
	"context"
	"errors"
	"testing"

	"tickrtime/internal/feature/earnings/domain/entity"
)

// mockHistoryRepository はテスト用のHistoryRepositoryモック実装です。
type mockHistoryRepository struct {
	gotSymbol string
	gotLimit  int
	fetchFn   func(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error)
}

func (m *mockHistoryRepository) FetchHistory(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error) {
	m.gotSymbol = symbol
	m.gotLimit = limit
	if m.fetchFn != nil {
		return m.fetchFn(ctx, symbol, limit)
	}
	return nil, nil
}

// TestHistoryUsecase_GetHistory は取得結果に指標が付加されることを検証します。
func TestHistoryUsecase_GetHistory(t *testing.T) {
	t.Parallel()

	mock := &mockHistoryRepository{
		fetchFn: func(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error) {
			return []entity.EarningsRecord{
				rec("AAPL", "2026-01-29", f(2.40), f(2.20)),
				rec("AAPL", "2025-10-30", f(1.64), nil),
			}, nil
		},
	}
	uc := NewHistoryUsecase(mock)

	out, err := uc.GetHistory(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Surprise == nil || *out[0].Surprise-0.2 > 1e-9 || *out[0].Surprise-0.2 < -1e-9 {
		t.Errorf("expected surprise 0.2, got %v", out[0].Surprise)
	}
	// 予想が欠損ならサプライズもnil
	if out[1].Surprise != nil || out[1].SurprisePercent != nil {
		t.Errorf("expected nil surprise without estimate, got %+v", out[1])
	}
}

// TestHistoryUsecase_GetHistory_NormalizesSymbol は入力シンボルが正規化されて
// リポジトリに渡ることを検証します。
func TestHistoryUsecase_GetHistory_NormalizesSymbol(t *testing.T) {
	t.Parallel()

	mock := &mockHistoryRepository{}
	uc := NewHistoryUsecase(mock)

	if _, err := uc.GetHistory(context.Background(), "  aapl ", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.gotSymbol != "AAPL" {
		t.Errorf("expected normalized symbol AAPL, got %q", mock.gotSymbol)
	}
}

// TestHistoryUsecase_GetHistory_InvalidSymbol は空シンボルでフェッチ前に
// エラーになることを検証します。
func TestHistoryUsecase_GetHistory_InvalidSymbol(t *testing.T) {
	t.Parallel()

	called := false
	mock := &mockHistoryRepository{
		fetchFn: func(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error) {
			called = true
			return nil, nil
		},
	}
	uc := NewHistoryUsecase(mock)

	_, err := uc.GetHistory(context.Background(), "   ", 4)
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Fatalf("expected ErrInvalidSymbol, got %v", err)
	}
	if called {
		t.Error("repository should not be called for an invalid symbol")
	}
}

// TestHistoryUsecase_GetHistory_LimitClamping は範囲外のlimitがデフォルト値に
// 置き換わることを検証します。
func TestHistoryUsecase_GetHistory_LimitClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero falls back to default", 0, DefaultHistoryLimit},
		{"negative falls back to default", -3, DefaultHistoryLimit},
		{"above max falls back to default", MaxHistoryLimit + 1, DefaultHistoryLimit},
		{"in range passes through", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockHistoryRepository{}
			uc := NewHistoryUsecase(mock)

			if _, err := uc.GetHistory(context.Background(), "MSFT", tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mock.gotLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, mock.gotLimit)
			}
		})
	}
}

// TestHistoryUsecase_GetHistory_RepositoryError はリポジトリのエラーが
// そのまま伝播することを検証します。
func TestHistoryUsecase_GetHistory_RepositoryError(t *testing.T) {
	t.Parallel()

	upstreamErr := errors.New("upstream unavailable")
	mock := &mockHistoryRepository{
		fetchFn: func(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error) {
			return nil, upstreamErr
		},
	}
	uc := NewHistoryUsecase(mock)

	_, err := uc.GetHistory(context.Background(), "AAPL", 4)
	if !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
