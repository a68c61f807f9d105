package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"tickrtime/internal/feature/earnings/domain/entity"
)

// mockCalendarRepository はテスト用のCalendarRepositoryモック実装です。
type mockCalendarRepository struct {
	fetchFn func(ctx context.Context, from, to string) ([]entity.EarningsRecord, error)
	calls   int
}

func (m *mockCalendarRepository) FetchCalendar(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, from, to)
	}
	return nil, nil
}

func sampleRecords() []entity.EarningsRecord {
	actual := 2.18
	estimate := 2.10
	return []entity.EarningsRecord{
		{Symbol: "AAPL", Date: "2025-01-30", ActualEPS: &actual, EstimateEPS: &estimate},
	}
}

func TestNewCachingCalendarRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       15 * time.Minute,
			expectedNamespace: "earnings",
		},
		{
			name:              "custom values preserved",
			ttl:               time.Hour,
			namespace:         "custom",
			expectedTTL:       time.Hour,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingCalendarRepository(nil, tt.ttl, &mockCalendarRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingCalendarRepository_NilRedis はRedisがnilの場合にキャッシュを
// バイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingCalendarRepository_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockCalendarRepository{
		fetchFn: func(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
			return sampleRecords(), nil
		},
	}

	repo := NewCachingCalendarRepository(nil, 15*time.Minute, inner, "earnings")

	out, err := repo.FetchCalendar(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || inner.calls != 1 {
		t.Errorf("expected direct inner call, got %d records and %d calls", len(out), inner.calls)
	}
}

// TestCachingCalendarRepository_CacheHit はキャッシュヒット時にRedisから
// データを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingCalendarRepository_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal(sampleRecords())
	mock.ExpectGet("earnings:2025-01-01:2025-01-31").SetVal(string(cached))

	inner := &mockCalendarRepository{}
	repo := NewCachingCalendarRepository(rdb, 15*time.Minute, inner, "earnings")

	out, err := repo.FetchCalendar(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Symbol != "AAPL" {
		t.Errorf("unexpected cached result: %+v", out)
	}
	if inner.calls != 0 {
		t.Errorf("inner repository must not be called on cache hit, got %d calls", inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingCalendarRepository_CacheMiss はキャッシュミス時にアップストリーム
// から取得し、結果をTTL付きで保存することを検証します。
func TestCachingCalendarRepository_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	records := sampleRecords()
	data, _ := json.Marshal(records)

	mock.ExpectGet("earnings:2025-01-01:2025-01-31").RedisNil()
	mock.ExpectSet("earnings:2025-01-01:2025-01-31", data, 15*time.Minute).SetVal("OK")

	inner := &mockCalendarRepository{
		fetchFn: func(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
			return records, nil
		},
	}
	repo := NewCachingCalendarRepository(rdb, 15*time.Minute, inner, "earnings")

	out, err := repo.FetchCalendar(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || inner.calls != 1 {
		t.Errorf("expected upstream fetch, got %d records and %d calls", len(out), inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingCalendarRepository_UpstreamErrorNotCached はアップストリーム
// エラーがキャッシュされず、そのまま返されることを検証します。
func TestCachingCalendarRepository_UpstreamErrorNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("earnings:2025-01-01:2025-01-31").RedisNil()

	wantErr := errors.New("upstream 502")
	inner := &mockCalendarRepository{
		fetchFn: func(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
			return nil, wantErr
		},
	}
	repo := NewCachingCalendarRepository(rdb, 15*time.Minute, inner, "earnings")

	_, err := repo.FetchCalendar(context.Background(), "2025-01-01", "2025-01-31")
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}

// TestCachingCalendarRepository_CorruptedCacheEntry は壊れたキャッシュを
// 削除してアップストリームにフォールバックすることを検証します。
func TestCachingCalendarRepository_CorruptedCacheEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	records := sampleRecords()
	data, _ := json.Marshal(records)

	mock.ExpectGet("earnings:2025-01-01:2025-01-31").SetVal("{not json")
	mock.ExpectDel("earnings:2025-01-01:2025-01-31").SetVal(1)
	mock.ExpectSet("earnings:2025-01-01:2025-01-31", data, 15*time.Minute).SetVal("OK")

	inner := &mockCalendarRepository{
		fetchFn: func(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
			return records, nil
		},
	}
	repo := NewCachingCalendarRepository(rdb, 15*time.Minute, inner, "earnings")

	out, err := repo.FetchCalendar(context.Background(), "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || inner.calls != 1 {
		t.Errorf("expected fallback to upstream, got %d records and %d calls", len(out), inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations: %v", err)
	}
}
