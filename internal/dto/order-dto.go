package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateOrderDTO struct {
	Title        string      `json:"title" validate:"required,min=3,max=200"`
	Description  null.String `json:"description"`
	BusinessType null.String `json:"business_type"`
	Priority     null.String `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	BudgetMin    null.Float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax    null.Float64 `json:"budget_max" validate:"omitempty,gte=0"`
	Currency     null.String `json:"currency" validate:"omitempty,len=3"`
	DueDate      null.Time   `json:"due_date"`
	// Только для staff/admin: создать заказ от имени клиента.
	ClientID null.String `json:"client_id" validate:"omitempty,uuid"`
}

type UpdateOrderDTO struct {
	Title        null.String `json:"title" validate:"omitempty,min=3,max=200"`
	Description  null.String `json:"description"`
	BusinessType null.String `json:"business_type"`
	Status       null.String `json:"status" validate:"omitempty,oneof=not_started in_progress on_hold completed cancelled"`
	Priority     null.String `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	BudgetMin    null.Float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax    null.Float64 `json:"budget_max" validate:"omitempty,gte=0"`
	Currency     null.String `json:"currency" validate:"omitempty,len=3"`
	DueDate      null.Time   `json:"due_date"`
	AssignedTo   null.String `json:"assigned_to" validate:"omitempty,uuid"`
}

type ListOrdersDTO struct {
	Status string `query:"status" validate:"omitempty,oneof=not_started in_progress on_hold completed cancelled"`
	Limit  uint64 `query:"limit"`
	Offset uint64 `query:"offset"`
}
