package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// События жизненного цикла заказа
	EventTypeOrderCreated   EventType = "order.created"
	EventTypeCheckoutFailed EventType = "order.checkout_failed"
)

// Topics для Kafka
const (
	TopicOrderEvents = "fos.order.events"
)

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType EventType              `json:"event_type"`
	OrderID   string                 `json:"order_id,omitempty"`
	UserID    string                 `json:"user_id"`
	ShopID    string                 `json:"shop_id"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, userID, shopID string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   orderID,
		UserID:    userID,
		ShopID:    shopID,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}
