package feed

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"worktrack-portal/internal/entities"
	"worktrack-portal/pkg/constants"
)

// ChangeEvent - одно сырое событие изменения из фида. Ровно одно из
// полей Order/Comment/File заполнено, в зависимости от потока.
// События из push-подписки и из pull-опроса имеют одинаковую форму
// и кормят один и тот же канал сессии.
type ChangeEvent struct {
	Stream  string
	Op      string
	Order   *entities.Order
	Comment *entities.OrderComment
	File    *entities.OrderFile
}

// notifyEnvelope - формат payload, который собирает триггер worktrack_notify_change.
type notifyEnvelope struct {
	Stream string          `json:"stream"`
	Op     string          `json:"op"`
	Row    json.RawMessage `json:"row"`
}

// ParseNotifyPayload разбирает payload от pg_notify в типизированное событие.
// Возвращает (nil, nil) для событий, которые фид сознательно игнорирует
// (DELETE); ошибку - для битых payload. Битые события по контракту
// отбрасываются молча, не доходя до синтезатора.
func ParseNotifyPayload(raw []byte) (*ChangeEvent, error) {
	var env notifyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("нечитаемый payload уведомления: %w", err)
	}

	if env.Op == constants.OpDelete {
		return nil, nil
	}
	if env.Op != constants.OpInsert && env.Op != constants.OpUpdate {
		return nil, fmt.Errorf("неизвестная операция %q", env.Op)
	}

	ev := &ChangeEvent{Stream: env.Stream, Op: env.Op}

	switch env.Stream {
	case constants.StreamOrders:
		var o entities.Order
		if err := json.Unmarshal(env.Row, &o); err != nil {
			return nil, fmt.Errorf("битая строка заказа: %w", err)
		}
		if o.ID == uuid.Nil {
			return nil, fmt.Errorf("событие заказа без id")
		}
		ev.Order = &o
	case constants.StreamComments:
		var c entities.OrderComment
		if err := json.Unmarshal(env.Row, &c); err != nil {
			return nil, fmt.Errorf("битая строка комментария: %w", err)
		}
		if c.ID == uuid.Nil || c.OrderID == uuid.Nil {
			return nil, fmt.Errorf("событие комментария без id или order_id")
		}
		ev.Comment = &c
	case constants.StreamFiles:
		var f entities.OrderFile
		if err := json.Unmarshal(env.Row, &f); err != nil {
			return nil, fmt.Errorf("битая строка файла: %w", err)
		}
		if f.ID == uuid.Nil || f.OrderID == uuid.Nil {
			return nil, fmt.Errorf("событие файла без id или order_id")
		}
		ev.File = &f
	default:
		return nil, fmt.Errorf("неизвестный поток %q", env.Stream)
	}

	return ev, nil
}
