package listeners

import (
	"context"

	"go.uber.org/zap"

	"worktrack-portal/internal/events"
	"worktrack-portal/pkg/eventbus"
	"worktrack-portal/pkg/websocket"
)

// UIListener пересылает события подсистемы синхронизации в открытые
// вкладки зрителя через websocket-хаб. Отсутствие подключенных вкладок
// не ошибка: инбокс и так хранит все в памяти сессии.
type UIListener struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewUIListener(hub *websocket.Hub, logger *zap.Logger) *UIListener {
	return &UIListener{hub: hub, logger: logger}
}

// Register подписывает слушателя на все события синхронизации.
func (l *UIListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.NotificationCreatedEvent{}.Name(), l.handleNotificationCreated)
	bus.Subscribe(events.NavigateEvent{}.Name(), l.handleNavigate)
	bus.Subscribe(events.OrderSyncedEvent{}.Name(), l.handleOrderSynced)
}

func (l *UIListener) handleNotificationCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.NotificationCreatedEvent)
	if !ok {
		return nil
	}
	if err := l.hub.SendMessageToUser(e.ViewerID.String(), e.Notification, websocket.MessageTypeNotification); err != nil {
		l.logger.Debug("Уведомление не доставлено во вкладки", zap.Error(err))
	}
	return nil
}

func (l *UIListener) handleNavigate(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.NavigateEvent)
	if !ok {
		return nil
	}
	payload := websocket.NavigatePayload{OrderID: e.OrderID.String()}
	if err := l.hub.SendMessageToUser(e.ViewerID.String(), payload, websocket.MessageTypeNavigate); err != nil {
		l.logger.Debug("Интент навигации не доставлен во вкладки", zap.Error(err))
	}
	return nil
}

func (l *UIListener) handleOrderSynced(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderSyncedEvent)
	if !ok {
		return nil
	}
	if err := l.hub.SendMessageToUser(e.ViewerID.String(), e.Order, websocket.MessageTypeOrderSynced); err != nil {
		l.logger.Debug("Обновление заказа не доставлено во вкладки", zap.Error(err))
	}
	return nil
}
