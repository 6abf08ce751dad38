// Package httpapi provides HTTP handlers and data transfer objects for the inventory API.
package httpapi

import "github.com/dsjohal14/stockroom/internal/scope/inventory"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	LineCount int    `json:"line_count"`
}

// ItemRequest represents an item to add
type ItemRequest struct {
	Particulars string `json:"particulars"`
	Quantity    string `json:"quantity"`
}

// UpdateRequest carries the new quantity of an item
type UpdateRequest struct {
	Quantity string `json:"quantity"`
}

// ItemResponse represents the outcome of a write
type ItemResponse struct {
	Item    inventory.Record `json:"item"`
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
}

// ItemsResponse lists the inventory
type ItemsResponse struct {
	Items []inventory.Record `json:"items"`
	Count int                `json:"count"`
}

// SearchRequest represents search request
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse represents search results
type SearchResponse struct {
	Results []inventory.Record `json:"results"`
	Count   int                `json:"count"`
	Query   string             `json:"query"`
	Skipped int                `json:"skipped"` // matching lines without a comma
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
