package feed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"worktrack-portal/pkg/constants"
)

// Интервал переподключения после обрыва push-соединения. Пока подписка
// лежит, события продолжает добирать pull-опрос - протокол детекции
// пропусков между клиентом и сервером не нужен.
const listenRetryInterval = 3 * time.Second

// Listener - push-ветка фида: держит выделенное соединение с LISTEN
// и перекладывает разобранные события в канал сессии.
type Listener struct {
	pool   *pgxpool.Pool
	events chan<- ChangeEvent
	logger *zap.Logger
}

func NewListener(pool *pgxpool.Pool, events chan<- ChangeEvent, logger *zap.Logger) *Listener {
	return &Listener{
		pool:   pool,
		events: events,
		logger: logger,
	}
}

// Run блокируется до отмены контекста. Ошибки соединения не фатальны:
// подписка поднимается заново, цикл живет столько же, сколько сессия.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.logger.Warn("Push-подписка оборвалась, переподключение",
				zap.String("channel", constants.ChangeFeedChannel),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(listenRetryInterval):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+constants.ChangeFeedChannel); err != nil {
		return err
	}
	l.logger.Info("Push-подписка установлена", zap.String("channel", constants.ChangeFeedChannel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		ev, err := ParseNotifyPayload([]byte(notification.Payload))
		if err != nil {
			// Битый payload отбрасываем молча: он не должен
			// добраться ни до дедупликации, ни до синтезатора.
			l.logger.Debug("Отброшен нечитаемый payload из push-фида", zap.Error(err))
			continue
		}
		if ev == nil {
			continue
		}

		select {
		case l.events <- *ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
