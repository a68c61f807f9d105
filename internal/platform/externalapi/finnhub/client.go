package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"tickrtime/internal/platform/externalapi/finnhub/dto"
	"tickrtime/internal/feature/earnings/domain/entity"
	earningsusecase "tickrtime/internal/feature/earnings/usecase"
	symbollistusecase "tickrtime/internal/feature/symbollist/usecase"
	"tickrtime/internal/shared/symbols"
)

// ErrMissingAPIKey はAPIキーが未設定の場合に返されます。
// 設定エラーは即座に失敗させ、リトライしません。
var ErrMissingAPIKey = errors.New("finnhub: API key is not configured")

// ErrMalformedResponse はレスポンスのJSON形状が期待と異なる場合に返されます。
var ErrMalformedResponse = errors.New("finnhub: malformed response")

// Client はFinnhub APIから決算データを取得するリポジトリ実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCalendarRepository/HistoryRepositoryを実装していることをコンパイル時に検証します。
var (
	_ earningsusecase.CalendarRepository = (*Client)(nil)
	_ earningsusecase.HistoryRepository  = (*Client)(nil)
	_ symbollistusecase.SymbolProvider   = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchCalendar は/calendar/earningsから[from, to]区間の決算イベントを取得します。
// 区間は呼び出し側（DateRangeSplitter）が1暦月に収めています。
func (c *Client) FetchCalendar(ctx context.Context, from, to string) ([]entity.EarningsRecord, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("token", c.cfg.APIKey)

	var body dto.EarningsCalendarResponse
	if err := c.getJSON(ctx, "/calendar/earnings", q, &body); err != nil {
		return nil, err
	}
	// 配列の欠落は形状不正として扱う（空配列とは区別する）
	if body.EarningsCalendar == nil {
		return nil, fmt.Errorf("%w: missing earningsCalendar array", ErrMalformedResponse)
	}

	records := make([]entity.EarningsRecord, 0, len(*body.EarningsCalendar))
	for _, e := range *body.EarningsCalendar {
		records = append(records, entity.EarningsRecord{
			Symbol:      symbols.Normalize(e.Symbol),
			Date:        e.Date,
			ActualEPS:   e.EPSActual,
			EstimateEPS: e.EPSEstimate,
			Hour:        e.Hour,
			Quarter:     e.Quarter,
			Year:        e.Year,
		})
	}
	return records, nil
}

// FetchHistory は/stock/earningsから指定銘柄の直近limit四半期の決算実績を取得します。
// カレンダーとはフィールド形状が異なるルートですが、同一の内部レコード形状に変換します。
func (c *Client) FetchHistory(ctx context.Context, symbol string, limit int) ([]entity.EarningsRecord, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("token", c.cfg.APIKey)

	var body []dto.StockEarningsEntry
	if err := c.getJSON(ctx, "/stock/earnings", q, &body); err != nil {
		return nil, err
	}

	records := make([]entity.EarningsRecord, 0, len(body))
	for _, e := range body {
		sym := symbols.Normalize(e.Symbol)
		if sym == "" {
			// このルートはsymbolフィールドを省略することがある
			sym = symbols.Normalize(symbol)
		}
		records = append(records, entity.EarningsRecord{
			Symbol:      sym,
			Date:        e.Period,
			ActualEPS:   e.Actual,
			EstimateEPS: e.Estimate,
			Quarter:     e.Quarter,
			Year:        e.Year,
		})
	}
	return records, nil
}

// FetchSymbols は/stock/symbolから指定取引所の銘柄ディレクトリを取得します。
// シンボルは正規化して返します。
func (c *Client) FetchSymbols(ctx context.Context, exchange string) ([]symbollistusecase.ProviderSymbol, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("exchange", exchange)
	q.Set("token", c.cfg.APIKey)

	var body []dto.SymbolEntry
	if err := c.getJSON(ctx, "/stock/symbol", q, &body); err != nil {
		return nil, err
	}

	listed := make([]symbollistusecase.ProviderSymbol, 0, len(body))
	for _, e := range body {
		listed = append(listed, symbollistusecase.ProviderSymbol{
			Code:   symbols.Normalize(e.Symbol),
			Name:   e.Description,
			Market: e.MIC,
			Type:   e.Type,
		})
	}
	return listed, nil
}

// getJSON はGETリクエストを実行し、レスポンスJSONをoutにデコードします。
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
