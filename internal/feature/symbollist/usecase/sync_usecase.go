package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"tickrtime/internal/feature/symbollist/domain/entity"
	"tickrtime/internal/shared/symbols"
)

// ProviderSymbol はプロバイダーの銘柄ディレクトリの1エントリです。
type ProviderSymbol struct {
	Code   string // 正規化済みティッカー
	Name   string
	Market string
	Type   string
}

// SymbolProvider は外部プロバイダーの銘柄ディレクトリ取得を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type SymbolProvider interface {
	// FetchSymbols は指定取引所の全上場銘柄を取得します。
	FetchSymbols(ctx context.Context, exchange string) ([]ProviderSymbol, error)
}

// SyncReport は1回の銘柄同期の結果サマリです。
type SyncReport struct {
	Added    []string // 新規上場として登録したコード
	Delisted []string // 上場廃止として無効化したコード
	Total    int      // プロバイダーが返した銘柄数
}

// SyncUsecase はプロバイダーの銘柄ディレクトリと保存済み銘柄マスタを同期します。
type SyncUsecase struct {
	provider SymbolProvider
	repo     SymbolRepository
	exchange string
}

// NewSyncUsecase はSyncUsecaseの新しいインスタンスを生成します。
func NewSyncUsecase(provider SymbolProvider, repo SymbolRepository, exchange string) *SyncUsecase {
	return &SyncUsecase{provider: provider, repo: repo, exchange: exchange}
}

// Sync はプロバイダーの銘柄一覧を取得し、保存済みコードとの差分を反映します。
//
// 比較は両辺とも正規化してから行います。過去にプロバイダーが大文字小文字の
// 混在したシンボルを返した際、正規化せずに比較して誤った「新規上場」
// 「上場廃止」を検出した経緯があるためです。
// プロバイダーにのみ存在するコードは登録し、保存済みでプロバイダーに
// 存在しないコードは無効化します（削除はしません）。
func (u *SyncUsecase) Sync(ctx context.Context) (SyncReport, error) {
	listed, err := u.provider.FetchSymbols(ctx, u.exchange)
	if err != nil {
		return SyncReport{}, fmt.Errorf("fetch symbol directory: %w", err)
	}
	if len(listed) == 0 {
		// 空のディレクトリで全銘柄を廃止扱いにしない
		return SyncReport{}, fmt.Errorf("provider returned empty symbol directory")
	}

	stored, err := u.repo.ListCodes(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("list stored codes: %w", err)
	}

	providerCodes := make([]string, 0, len(listed))
	byCode := make(map[string]ProviderSymbol, len(listed))
	for _, s := range listed {
		code := symbols.Normalize(s.Code)
		providerCodes = append(providerCodes, code)
		byCode[code] = s
	}

	added, delisted := symbols.Diff(stored, providerCodes)

	// プロバイダーの全エントリをアップサートし、名称変更や再上場を反映する
	upserts := make([]entity.Symbol, 0, len(listed))
	for code, s := range byCode {
		upserts = append(upserts, entity.Symbol{
			Code:     code,
			Name:     s.Name,
			Market:   s.Market,
			Type:     s.Type,
			IsActive: true,
		})
	}
	if err := u.repo.UpsertBatch(ctx, upserts); err != nil {
		return SyncReport{}, fmt.Errorf("upsert symbols: %w", err)
	}

	if len(delisted) > 0 {
		if err := u.repo.DeactivateCodes(ctx, delisted); err != nil {
			return SyncReport{}, fmt.Errorf("deactivate symbols: %w", err)
		}
	}

	slog.Info("symbol sync complete",
		"exchange", u.exchange,
		"total", len(listed),
		"added", len(added),
		"delisted", len(delisted))

	return SyncReport{Added: added, Delisted: delisted, Total: len(listed)}, nil
}
