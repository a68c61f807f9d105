// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"

	"tickrtime/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	// ListActive returns all active symbols ordered by code.
	ListActive(ctx context.Context) ([]entity.Symbol, error)

	// ListCodes returns the codes of all stored symbols, active or not.
	ListCodes(ctx context.Context) ([]string, error)

	// UpsertBatch inserts or refreshes symbols, reactivating any that
	// reappear in the provider directory.
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error

	// DeactivateCodes flags the given codes inactive. Symbols are never
	// hard-deleted so watchlists and alerts keep their references.
	DeactivateCodes(ctx context.Context, codes []string) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}
