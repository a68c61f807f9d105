// Package dto defines data transfer objects for Finnhub API responses.
package dto

// EarningsCalendarResponse represents the JSON response from the
// /calendar/earnings endpoint. The wrapping array is a pointer so a
// response without the expected array can be told apart from an empty one.
type EarningsCalendarResponse struct {
	EarningsCalendar *[]EarningsCalendarEntry `json:"earningsCalendar"`
}

// EarningsCalendarEntry is one event in the calendar response.
// EPS fields are nullable upstream; null decodes to nil.
type EarningsCalendarEntry struct {
	Symbol      string   `json:"symbol"`
	Date        string   `json:"date"`
	EPSActual   *float64 `json:"epsActual"`
	EPSEstimate *float64 `json:"epsEstimate"`
	Hour        string   `json:"hour"`
	Quarter     int      `json:"quarter"`
	Year        int      `json:"year"`
}

// StockEarningsEntry is one quarter in the /stock/earnings response.
// Note the field shape differs from the calendar route: the event date is
// called "period" and EPS fields are "actual"/"estimate".
type StockEarningsEntry struct {
	Symbol   string   `json:"symbol"`
	Period   string   `json:"period"`
	Actual   *float64 `json:"actual"`
	Estimate *float64 `json:"estimate"`
	Quarter  int      `json:"quarter"`
	Year     int      `json:"year"`
}

// SymbolEntry is one listing in the /stock/symbol directory response.
type SymbolEntry struct {
	Symbol        string `json:"symbol"`
	DisplaySymbol string `json:"displaySymbol"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	MIC           string `json:"mic"`
	Currency      string `json:"currency"`
}
