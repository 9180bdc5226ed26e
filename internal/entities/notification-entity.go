package entities

import (
	"time"

	"github.com/google/uuid"
)

// Notification - производная сущность: живет только в памяти сессии,
// никогда не пишется в БД и не переживает выход из аккаунта.
type Notification struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Read      bool          `json:"read"`
	OrderID   uuid.NullUUID `json:"order_id"`
	CreatedAt time.Time     `json:"created_at"`
}
