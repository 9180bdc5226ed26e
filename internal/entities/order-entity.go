package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Code         string      `json:"code" db:"code"`
	Title        string      `json:"title" db:"title"`
	Description  null.String `json:"description" db:"description"`
	BusinessType null.String `json:"business_type" db:"business_type"`
	Status       string      `json:"status" db:"status"`
	Priority     null.String `json:"priority" db:"priority"`
	BudgetMin    null.Float64 `json:"budget_min" db:"budget_min"`
	BudgetMax    null.Float64 `json:"budget_max" db:"budget_max"`
	Currency     null.String `json:"currency" db:"currency"`
	DueDate      null.Time   `json:"due_date" db:"due_date"`
	ClientID     uuid.NullUUID `json:"client_id" db:"client_id"`
	AssignedTo   uuid.NullUUID `json:"assigned_to" db:"assigned_to"`
	CreatedBy    uuid.NullUUID `json:"created_by" db:"created_by"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// OwnedBy - принадлежит ли заказ данному клиенту.
func (o *Order) OwnedBy(profileID uuid.UUID) bool {
	return o.ClientID.Valid && o.ClientID.UUID == profileID
}
