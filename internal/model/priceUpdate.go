package model

import "time"

// RefreshStatus represents the outcome of a price refresh trigger.
type RefreshStatus struct {
	Triggered   bool       `json:"triggered"`   // false when another refresh was already in flight
	Updated     int        `json:"updated"`     // Number of assets whose price changed
	InProgress  bool       `json:"inProgress"`  // true while a refresh is outstanding
	LastUpdated *time.Time `json:"lastUpdated"` // Time of the last successful refresh
}

// Source is a web page the AI service cited while producing a quote.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// PriceQuote represents a single looked-up price used by the asset creation flow.
type PriceQuote struct {
	Symbol   string   `json:"symbol"`
	Price    float64  `json:"price"`
	Currency Currency `json:"currency"`
	Sources  []Source `json:"sources"`
}

// SearchCandidate is one match returned by a symbol search.
type SearchCandidate struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange,omitempty"`
}
