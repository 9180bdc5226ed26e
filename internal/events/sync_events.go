package events

import (
	"github.com/google/uuid"

	"worktrack-portal/internal/entities"
)

// NotificationCreatedEvent - возникает, когда синтезатор собрал новое
// уведомление и оно попало в инбокс сессии.
type NotificationCreatedEvent struct {
	ViewerID     uuid.UUID
	Notification entities.Notification
}

func (e NotificationCreatedEvent) Name() string {
	return "sync.notification.created"
}

// NavigateEvent - интент "перейти к заказу" после открытия уведомления.
type NavigateEvent struct {
	ViewerID uuid.UUID
	OrderID  uuid.UUID
}

func (e NavigateEvent) Name() string {
	return "sync.navigate"
}

// OrderSyncedEvent - локальная коллекция заказов пополнилась или обновилась
// по событию из фида; UI может перерисовать таблицу.
type OrderSyncedEvent struct {
	ViewerID uuid.UUID
	Order    entities.Order
}

func (e OrderSyncedEvent) Name() string {
	return "sync.order.synced"
}
