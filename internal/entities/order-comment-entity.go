package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type OrderComment struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	OrderID    uuid.UUID     `json:"order_id" db:"order_id"`
	AuthorID   uuid.NullUUID `json:"author_id" db:"author_id"` // NULL, если автор удален
	Content    string        `json:"content" db:"content"`
	IsInternal bool          `json:"is_internal" db:"is_internal"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`

	// Заполняется вручную при выборке с JOIN
	AuthorName null.String `json:"author_name,omitempty" db:"-"`
}
