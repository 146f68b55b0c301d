// Package handler provides HTTP request handlers for the item registry API.
package handler

import "itemsvc/internal/model"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status string `json:"status"`
}

// EventPublisher receives item change events for fan-out to
// subscribers. A nil publisher disables event publication.
type EventPublisher interface {
	Publish(event model.ItemEvent)
}
