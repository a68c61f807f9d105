package usecase

import (
	"context"
	"errors"
	"testing"

	"tickrtime/internal/feature/watchlist/domain/entity"
)

// mockWatchlistRepository is a mock implementation of the WatchlistRepository interface.
type mockWatchlistRepository struct {
	AddFunc        func(ctx context.Context, item *entity.WatchlistItem) error
	RemoveFunc     func(ctx context.Context, userID uint, symbol string) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.WatchlistItem, error)
}

func (m *mockWatchlistRepository) Add(ctx context.Context, item *entity.WatchlistItem) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, item)
	}
	return nil
}

func (m *mockWatchlistRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, symbol)
	}
	return nil
}

func (m *mockWatchlistRepository) ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func TestWatchlistUsecase_Add(t *testing.T) {
	t.Run("normalizes the symbol before storing", func(t *testing.T) {
		var stored *entity.WatchlistItem
		repo := &mockWatchlistRepository{
			AddFunc: func(ctx context.Context, item *entity.WatchlistItem) error {
				stored = item
				return nil
			},
		}

		uc := NewWatchlistUsecase(repo)
		item, err := uc.Add(context.Background(), 7, "  aapl ")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored == nil {
			t.Fatal("repository was not called")
		}
		if stored.Symbol != "AAPL" {
			t.Errorf("expected normalized symbol AAPL, got %q", stored.Symbol)
		}
		if stored.UserID != 7 {
			t.Errorf("expected user 7, got %d", stored.UserID)
		}
		if item.Symbol != "AAPL" {
			t.Errorf("returned item not normalized: %q", item.Symbol)
		}
	})

	t.Run("empty symbol rejected", func(t *testing.T) {
		called := false
		repo := &mockWatchlistRepository{
			AddFunc: func(ctx context.Context, item *entity.WatchlistItem) error {
				called = true
				return nil
			},
		}

		uc := NewWatchlistUsecase(repo)
		_, err := uc.Add(context.Background(), 7, "   ")

		if !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("expected ErrInvalidSymbol, got: %v", err)
		}
		if called {
			t.Error("repository should not be called for invalid symbol")
		}
	})

	t.Run("duplicate propagates ErrAlreadyInWatchlist", func(t *testing.T) {
		repo := &mockWatchlistRepository{
			AddFunc: func(ctx context.Context, item *entity.WatchlistItem) error {
				return ErrAlreadyInWatchlist
			},
		}

		uc := NewWatchlistUsecase(repo)
		_, err := uc.Add(context.Background(), 7, "AAPL")

		if !errors.Is(err, ErrAlreadyInWatchlist) {
			t.Errorf("expected ErrAlreadyInWatchlist, got: %v", err)
		}
	})
}

func TestWatchlistUsecase_Remove(t *testing.T) {
	t.Run("normalizes the symbol before removing", func(t *testing.T) {
		var gotSymbol string
		repo := &mockWatchlistRepository{
			RemoveFunc: func(ctx context.Context, userID uint, symbol string) error {
				gotSymbol = symbol
				return nil
			},
		}

		uc := NewWatchlistUsecase(repo)
		err := uc.Remove(context.Background(), 7, "brk.b")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotSymbol != "BRK.B" {
			t.Errorf("expected normalized symbol BRK.B, got %q", gotSymbol)
		}
	})

	t.Run("empty symbol rejected", func(t *testing.T) {
		uc := NewWatchlistUsecase(&mockWatchlistRepository{})
		err := uc.Remove(context.Background(), 7, "")

		if !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("expected ErrInvalidSymbol, got: %v", err)
		}
	})

	t.Run("missing symbol propagates ErrNotInWatchlist", func(t *testing.T) {
		repo := &mockWatchlistRepository{
			RemoveFunc: func(ctx context.Context, userID uint, symbol string) error {
				return ErrNotInWatchlist
			},
		}

		uc := NewWatchlistUsecase(repo)
		err := uc.Remove(context.Background(), 7, "MSFT")

		if !errors.Is(err, ErrNotInWatchlist) {
			t.Errorf("expected ErrNotInWatchlist, got: %v", err)
		}
	})
}

func TestWatchlistUsecase_List(t *testing.T) {
	t.Run("returns repository items", func(t *testing.T) {
		repo := &mockWatchlistRepository{
			ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
				return []entity.WatchlistItem{
					{UserID: userID, Symbol: "AAPL"},
					{UserID: userID, Symbol: "MSFT"},
				}, nil
			},
		}

		uc := NewWatchlistUsecase(repo)
		items, err := uc.List(context.Background(), 7)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
	})

	t.Run("repository error propagates", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockWatchlistRepository{
			ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.WatchlistItem, error) {
				return nil, expectedErr
			},
		}

		uc := NewWatchlistUsecase(repo)
		_, err := uc.List(context.Background(), 7)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}
