package model

import (
	"encoding/json"
	"testing"
)

func TestNewSuccessResponse(t *testing.T) {
	// Arrange
	item := Item{ID: 1, Name: "itemA", Price: 10000, Quantity: 10}

	// Act
	resp := NewSuccessResponse(item)

	// Assert
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Data != item {
		t.Errorf("Data = %+v, want %+v", resp.Data, item)
	}
	if resp.Error != "" {
		t.Errorf("Error = %q, want empty", resp.Error)
	}
}

func TestNewErrorResponse(t *testing.T) {
	// Act
	resp := NewErrorResponse[Item]("item not found")

	// Assert
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.Error != "item not found" {
		t.Errorf("Error = %q, want %q", resp.Error, "item not found")
	}
}

func TestItem_JSONRoundTrip(t *testing.T) {
	// Arrange
	item := Item{ID: 2, Name: "itemB", Price: 20000, Quantity: 20}

	// Act
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var decoded Item
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}

	// Assert
	if decoded != item {
		t.Errorf("round trip = %+v, want %+v", decoded, item)
	}
}

func TestNewCreatedEvent(t *testing.T) {
	// Arrange
	item := Item{ID: 1, Name: "itemA", Price: 10000, Quantity: 10}

	// Act
	event := NewCreatedEvent(item)

	// Assert
	if event.Type != EventTypeCreated {
		t.Errorf("Type = %s, want %s", event.Type, EventTypeCreated)
	}
	if event.Item != item {
		t.Errorf("Item = %+v, want %+v", event.Item, item)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewUpdatedEvent(t *testing.T) {
	// Arrange
	item := Item{ID: 1, Name: "itemA2", Price: 12000, Quantity: 10}

	// Act
	event := NewUpdatedEvent(item)

	// Assert
	if event.Type != EventTypeUpdated {
		t.Errorf("Type = %s, want %s", event.Type, EventTypeUpdated)
	}
	if event.Item != item {
		t.Errorf("Item = %+v, want %+v", event.Item, item)
	}
}
