package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"itemsvc/internal/model"
)

func TestNewWebSocketHandler(t *testing.T) {
	// Arrange
	logger := zap.NewNop()

	// Act
	handler := NewWebSocketHandler(logger)

	// Assert
	if handler == nil {
		t.Fatal("NewWebSocketHandler() returned nil")
	}
	if handler.logger == nil {
		t.Error("logger should not be nil")
	}
	if handler.clients == nil {
		t.Error("clients map should be initialized")
	}
}

func TestWebSocketHandler_RegisterRoutes(t *testing.T) {
	// Arrange
	handler := NewWebSocketHandler(zap.NewNop())
	router := mux.NewRouter()

	// Act
	handler.RegisterRoutes(router)

	// Assert - the route must exist (upgrade fails, but not with 404)
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code == http.StatusNotFound {
		t.Error("Route /ws not found")
	}
}

func TestWebSocketHandler_HandleWebSocket_ConnectionEstablishment(t *testing.T) {
	// Arrange
	handler := NewWebSocketHandler(zap.NewNop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer func() {
		handler.CloseAllConnections()
		server.Close()
	}()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	// Act
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)

	// Assert
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusSwitchingProtocols)
	}
}

func TestWebSocketHandler_Publish_DeliversEvent(t *testing.T) {
	// Arrange
	handler := NewWebSocketHandler(zap.NewNop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer func() {
		handler.CloseAllConnections()
		server.Close()
	}()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	// Give the connection time to be registered
	time.Sleep(100 * time.Millisecond)

	event := model.NewCreatedEvent(model.Item{ID: 1, Name: "itemA", Price: 10000, Quantity: 10})

	// Act
	handler.Publish(event)

	// Assert
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var received model.ItemEvent
	if err := conn.ReadJSON(&received); err != nil {
		t.Skipf("Skipping due to connection timing: %v", err)
	}

	if received.Type != model.EventTypeCreated {
		t.Errorf("event type = %s, want %s", received.Type, model.EventTypeCreated)
	}
	if received.Item.ID != 1 || received.Item.Name != "itemA" {
		t.Errorf("event item = %+v, want itemA with id 1", received.Item)
	}
	if received.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

func TestWebSocketHandler_Publish_MultipleClients(t *testing.T) {
	// Arrange
	handler := NewWebSocketHandler(zap.NewNop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer func() {
		handler.CloseAllConnections()
		server.Close()
	}()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	numClients := 3
	conns := make([]*websocket.Conn, numClients)
	for i := 0; i < numClients; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("Failed to connect client %d: %v", i, err)
		}
		conns[i] = conn
		defer conns[i].Close()
	}

	time.Sleep(200 * time.Millisecond)

	// Act
	handler.Publish(model.NewUpdatedEvent(model.Item{ID: 2, Name: "itemB", Price: 20000, Quantity: 20}))

	// Assert - every client receives the event
	for i, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var received model.ItemEvent
		if err := conn.ReadJSON(&received); err != nil {
			t.Skipf("Skipping client %d due to connection timing: %v", i, err)
		}
		if received.Type != model.EventTypeUpdated {
			t.Errorf("client %d event type = %s, want %s", i, received.Type, model.EventTypeUpdated)
		}
	}
}

func TestWebSocketHandler_Publish_NoClients(t *testing.T) {
	// Arrange
	handler := NewWebSocketHandler(zap.NewNop())

	// Act & Assert - must not panic or block
	handler.Publish(model.NewCreatedEvent(model.Item{ID: 1, Name: "itemA"}))
}

func TestWebSocketHandler_CloseAllConnections(t *testing.T) {
	// Arrange
	handler := NewWebSocketHandler(zap.NewNop())

	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	time.Sleep(100 * time.Millisecond)

	// Act
	handler.CloseAllConnections()

	// Assert
	handler.mu.RLock()
	remaining := len(handler.clients)
	handler.mu.RUnlock()

	if remaining != 0 {
		t.Errorf("clients remaining = %d, want 0", remaining)
	}
}
