package sync

import (
	"context"
	"fmt"
	"sort"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/events"
	"worktrack-portal/internal/feed"
	"worktrack-portal/internal/repositories"
	"worktrack-portal/pkg/constants"
	"worktrack-portal/pkg/eventbus"
	apperrors "worktrack-portal/pkg/errors"
)

const (
	// Буфер канала событий: push и pull пишут конкурентно,
	// потребитель один.
	eventBufferSize = 64
	// Потолок начального снимка по каждому потоку.
	snapshotLimit = 500
)

// Session - живое состояние синхронизации одного зрителя: локальные
// коллекции, инбокс уведомлений и состояние дедупликации. Все события
// фида, push и pull, проходят через один канал и обрабатываются одной
// горутиной - внутри сессии нет гонок за порядок применения.
type Session struct {
	viewer *entities.Profile
	scope  repositories.Scope
	state  *State
	inbox  *Inbox

	mu       stdsync.RWMutex
	orders   map[uuid.UUID]entities.Order
	comments map[uuid.UUID][]entities.OrderComment
	files    map[uuid.UUID][]entities.OrderFile

	events chan feed.ChangeEvent
	cancel context.CancelFunc

	orderRepo   repositories.OrderRepositoryInterface
	commentRepo repositories.OrderCommentRepositoryInterface
	fileRepo    repositories.OrderFileRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface

	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewSession(
	viewer *entities.Profile,
	orderRepo repositories.OrderRepositoryInterface,
	commentRepo repositories.OrderCommentRepositoryInterface,
	fileRepo repositories.OrderFileRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *Session {
	return &Session{
		viewer:      viewer,
		scope:       repositories.Scope{ViewerID: viewer.ID, Role: viewer.Role},
		state:       NewState(),
		inbox:       NewInbox(),
		orders:      make(map[uuid.UUID]entities.Order),
		comments:    make(map[uuid.UUID][]entities.OrderComment),
		files:       make(map[uuid.UUID][]entities.OrderFile),
		events:      make(chan feed.ChangeEvent, eventBufferSize),
		orderRepo:   orderRepo,
		commentRepo: commentRepo,
		fileRepo:    fileRepo,
		profileRepo: profileRepo,
		bus:         bus,
		logger:      logger,
	}
}

func (s *Session) Viewer() *entities.Profile       { return s.viewer }
func (s *Session) Scope() repositories.Scope       { return s.scope }
func (s *Session) EventSink() chan<- feed.ChangeEvent { return s.events }

// Cursor реализует feed.CursorSource: poller читает курсоры прямо из
// состояния сессии.
func (s *Session) Cursor(stream string) time.Time {
	return s.state.Cursor(stream)
}

// Start сбрасывает состояние, снимает начальный снимок и запускает
// горутину-потребителя. Снимок заполняет коллекции, карту статусов и
// курсоры, не порождая ни одного уведомления.
func (s *Session) Start(ctx context.Context) error {
	s.state.Reset()
	if err := s.snapshot(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(runCtx)

	s.logger.Info("Сессия синхронизации запущена",
		zap.String("viewer_id", s.viewer.ID.String()),
		zap.String("role", s.viewer.Role),
	)
	return nil
}

// Stop останавливает потребителя и сбрасывает эфемерное состояние.
// Инбокс не переживает выход из аккаунта.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Reset()

	s.mu.Lock()
	s.orders = make(map[uuid.UUID]entities.Order)
	s.comments = make(map[uuid.UUID][]entities.OrderComment)
	s.files = make(map[uuid.UUID][]entities.OrderFile)
	s.mu.Unlock()

	s.logger.Info("Сессия синхронизации остановлена",
		zap.String("viewer_id", s.viewer.ID.String()),
	)
}

func (s *Session) snapshot(ctx context.Context) error {
	orders, err := s.orderRepo.ListUpdatedSince(ctx, s.scope, time.Time{}, snapshotLimit)
	if err != nil {
		return fmt.Errorf("ошибка начального снимка заказов: %w", err)
	}
	s.mu.Lock()
	for i := range orders {
		o := orders[i]
		s.state.SetStatus(o.ID, o.Status)
		s.state.AdvanceCursor(constants.StreamOrders, o.UpdatedAt)
		s.orders[o.ID] = o
	}
	s.mu.Unlock()

	comments, err := s.commentRepo.ListCreatedSince(ctx, s.scope, time.Time{}, snapshotLimit)
	if err != nil {
		return fmt.Errorf("ошибка начального снимка комментариев: %w", err)
	}
	s.mu.Lock()
	for i := range comments {
		c := comments[i]
		s.state.IsNew(constants.StreamComments, c.ID)
		s.state.AdvanceCursor(constants.StreamComments, c.CreatedAt)
		s.comments[c.OrderID] = append(s.comments[c.OrderID], c)
	}
	s.mu.Unlock()

	files, err := s.fileRepo.ListCreatedSince(ctx, s.scope, time.Time{}, snapshotLimit)
	if err != nil {
		return fmt.Errorf("ошибка начального снимка файлов: %w", err)
	}
	s.mu.Lock()
	for i := range files {
		f := files[i]
		s.state.IsNew(constants.StreamFiles, f.ID)
		s.state.AdvanceCursor(constants.StreamFiles, f.CreatedAt)
		s.files[f.OrderID] = append(s.files[f.OrderID], f)
	}
	s.mu.Unlock()

	return nil
}

func (s *Session) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.Ingest(ctx, ev)
		}
	}
}

// Ingest применяет одно событие фида. Откуда оно пришло - из
// push-подписки или из pull-цикла - здесь уже не различимо.
func (s *Session) Ingest(ctx context.Context, ev feed.ChangeEvent) {
	switch ev.Stream {
	case constants.StreamOrders:
		if ev.Order != nil {
			s.ingestOrder(ctx, ev.Order)
		}
	case constants.StreamComments:
		if ev.Comment != nil {
			s.ingestComment(ctx, ev.Comment)
		}
	case constants.StreamFiles:
		if ev.File != nil {
			s.ingestFile(ctx, ev.File)
		}
	default:
		s.logger.Debug("Событие неизвестного потока отброшено", zap.String("stream", ev.Stream))
	}
}

// ingestOrder: для потока заказов шлюзом служит сам diff - повторная
// доставка того же обновления дает prev == status и не порождает
// уведомления. При гонке push и pull выигрывает порядок обработки.
func (s *Session) ingestOrder(ctx context.Context, o *entities.Order) {
	transition, changed := ObserveStatus(s.state, o.ID, o.Status)
	s.state.AdvanceCursor(constants.StreamOrders, o.UpdatedAt)

	// Push-подписка доставляет все строки; чужие заказы наблюдаются
	// (статус и курсор), но в коллекцию клиента не попадают.
	if s.orderVisible(o) {
		s.mu.Lock()
		s.orders[o.ID] = *o
		s.mu.Unlock()
		s.bus.Publish(ctx, events.OrderSyncedEvent{ViewerID: s.viewer.ID, Order: *o})
	}

	if !changed || !TransitionVisible(s.viewer, o) {
		return
	}

	n, ok := Synthesize(Event{
		Kind:       KindStatusChanged,
		Order:      o,
		Transition: transition,
	}, s.viewer)
	if !ok {
		return
	}
	s.deliver(ctx, n)
}

func (s *Session) ingestComment(ctx context.Context, c *entities.OrderComment) {
	if !s.state.IsNew(constants.StreamComments, c.ID) {
		return
	}
	s.state.AdvanceCursor(constants.StreamComments, c.CreatedAt)

	// Внутренние комментарии не доходят до клиента ни одним путем:
	// pull отфильтрован на уровне запроса, push - здесь.
	if c.IsInternal && !s.viewer.IsStaffTier() {
		return
	}

	order := s.lookupOrder(ctx, c.OrderID)
	if order == nil || !s.orderVisible(order) {
		return
	}

	s.mu.Lock()
	s.comments[c.OrderID] = append(s.comments[c.OrderID], *c)
	s.mu.Unlock()

	n, ok := Synthesize(Event{
		Kind:    KindCommentAdded,
		Order:   order,
		Comment: c,
		Actor:   s.resolveActor(ctx, c.AuthorID),
	}, s.viewer)
	if !ok {
		return
	}
	s.deliver(ctx, n)
}

func (s *Session) ingestFile(ctx context.Context, f *entities.OrderFile) {
	if !s.state.IsNew(constants.StreamFiles, f.ID) {
		return
	}
	s.state.AdvanceCursor(constants.StreamFiles, f.CreatedAt)

	order := s.lookupOrder(ctx, f.OrderID)
	if order == nil || !s.orderVisible(order) {
		return
	}

	s.mu.Lock()
	s.files[f.OrderID] = append(s.files[f.OrderID], *f)
	s.mu.Unlock()

	n, ok := Synthesize(Event{
		Kind:  KindFileUploaded,
		Order: order,
		File:  f,
		Actor: s.resolveActor(ctx, f.UploadedBy),
	}, s.viewer)
	if !ok {
		return
	}
	s.deliver(ctx, n)
}

func (s *Session) deliver(ctx context.Context, n entities.Notification) {
	stored := s.inbox.Push(n)
	s.bus.Publish(ctx, events.NotificationCreatedEvent{
		ViewerID:     s.viewer.ID,
		Notification: stored,
	})
}

func (s *Session) orderVisible(o *entities.Order) bool {
	if s.viewer.IsStaffTier() {
		return true
	}
	return o.OwnedBy(s.viewer.ID)
}

// lookupOrder достает заказ из локальной коллекции, при промахе -
// одноразово из БД. Лениво загруженный заказ попадает в коллекцию и
// засевает карту статусов, чтобы следующее его обновление дало diff.
func (s *Session) lookupOrder(ctx context.Context, orderID uuid.UUID) *entities.Order {
	s.mu.RLock()
	o, ok := s.orders[orderID]
	s.mu.RUnlock()
	if ok {
		return &o
	}

	fetched, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		s.logger.Debug("Заказ для события не найден",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil
	}

	if _, known := s.state.LastStatus(fetched.ID); !known {
		s.state.SetStatus(fetched.ID, fetched.Status)
	}
	if s.orderVisible(fetched) {
		s.mu.Lock()
		s.orders[fetched.ID] = *fetched
		s.mu.Unlock()
	}
	return fetched
}

// resolveActor разворачивает id автора в профиль через кэширующий
// репозиторий. Удаленный автор или сбой кэша дают nil - событие
// обрабатывается как безличное.
func (s *Session) resolveActor(ctx context.Context, id uuid.NullUUID) *entities.Profile {
	if !id.Valid {
		return nil
	}
	actor, err := s.profileRepo.FindProfile(ctx, id.UUID)
	if err != nil {
		s.logger.Debug("Не удалось разрешить автора события",
			zap.String("profile_id", id.UUID.String()),
			zap.Error(err),
		)
		return nil
	}
	return actor
}

// Notifications возвращает инбокс сессии, новые записи первыми.
func (s *Session) Notifications() []entities.Notification {
	return s.inbox.List()
}

func (s *Session) UnreadCount() int {
	return s.inbox.UnreadCount()
}

func (s *Session) MarkAllRead() {
	s.inbox.MarkAllRead()
}

// Open помечает уведомление прочитанным, лениво подтягивает связанный
// заказ и публикует интент навигации. Уведомление без заказа просто
// помечается прочитанным.
func (s *Session) Open(ctx context.Context, notificationID uuid.UUID) (*entities.Order, error) {
	n, ok := s.inbox.MarkRead(notificationID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !n.OrderID.Valid {
		return nil, nil
	}

	order := s.lookupOrder(ctx, n.OrderID.UUID)
	if order == nil {
		return nil, apperrors.ErrNotFound
	}

	s.bus.Publish(ctx, events.NavigateEvent{ViewerID: s.viewer.ID, OrderID: order.ID})
	return order, nil
}

// Orders - локальная коллекция заказов зрителя, свежие сверху.
func (s *Session) Orders() []entities.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (s *Session) CommentsFor(orderID uuid.UUID) []entities.OrderComment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.comments[orderID]
	out := make([]entities.OrderComment, len(src))
	copy(out, src)
	return out
}

func (s *Session) FilesFor(orderID uuid.UUID) []entities.OrderFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.files[orderID]
	out := make([]entities.OrderFile, len(src))
	copy(out, src)
	return out
}
