package websocket

import "time"

// Envelope — "конверт", в котором уходят сообщения на фронтенд.
// Тип сообщения позволяет UI понять, что делать с payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Типы сообщений, которые шлет подсистема синхронизации.
const (
	MessageTypeNotification = "notification"
	MessageTypeNavigate     = "navigate"
	MessageTypeOrderSynced  = "order_synced"
)

// NavigatePayload - интент "перейти к заказу" после открытия уведомления.
type NavigatePayload struct {
	OrderID string `json:"orderId"`
}
