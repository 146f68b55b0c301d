// Package model defines data structures used throughout the application.
package model

import "time"

// Item represents a purchasable product line held by the registry.
// The ID is assigned by the store on creation and never changes;
// an Item built by a caller carries a zero ID until it is stored.
// Price and quantity are intentionally unvalidated — the registry
// stores whatever the caller submits, negative values included.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// APIResponse is a generic wrapper for API responses.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse creates a successful API response.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error API response.
func NewErrorResponse[T any](errMsg string) APIResponse[T] {
	return APIResponse[T]{
		Success: false,
		Error:   errMsg,
	}
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Item event types published over the WebSocket feed.
const (
	EventTypeCreated = "item_created"
	EventTypeUpdated = "item_updated"
)

// ItemEvent represents a change to a stored item, sent to
// WebSocket subscribers.
type ItemEvent struct {
	Type      string    `json:"type"`
	Item      Item      `json:"item"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCreatedEvent builds the event published after an item is stored.
func NewCreatedEvent(item Item) ItemEvent {
	return ItemEvent{
		Type:      EventTypeCreated,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpdatedEvent builds the event published after an item is updated.
func NewUpdatedEvent(item Item) ItemEvent {
	return ItemEvent{
		Type:      EventTypeUpdated,
		Item:      item,
		Timestamp: time.Now().UTC(),
	}
}
