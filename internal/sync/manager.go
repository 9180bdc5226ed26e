package sync

import (
	"context"
	stdsync "sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/feed"
	"worktrack-portal/internal/repositories"
	"worktrack-portal/pkg/config"
	"worktrack-portal/pkg/eventbus"
	apperrors "worktrack-portal/pkg/errors"
)

// Manager держит текущую сессию синхронизации и ее фид. Одновременно
// активна не больше одной сессии: вход нового зрителя сначала гасит
// предыдущую сессию вместе с ее подпиской и опросом.
type Manager struct {
	mu      stdsync.Mutex
	current *Session
	cancel  context.CancelFunc

	pool *pgxpool.Pool
	cfg  config.SyncConfig

	orderRepo   repositories.OrderRepositoryInterface
	commentRepo repositories.OrderCommentRepositoryInterface
	fileRepo    repositories.OrderFileRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface

	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewManager(
	pool *pgxpool.Pool,
	cfg config.SyncConfig,
	orderRepo repositories.OrderRepositoryInterface,
	commentRepo repositories.OrderCommentRepositoryInterface,
	fileRepo repositories.OrderFileRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		pool:        pool,
		cfg:         cfg,
		orderRepo:   orderRepo,
		commentRepo: commentRepo,
		fileRepo:    fileRepo,
		profileRepo: profileRepo,
		bus:         bus,
		logger:      logger,
	}
}

// StartSession устанавливает сессию для зрителя: снимок, запуск
// потребителя, затем push-подписка и pull-опрос поверх одного канала.
// Уже активная сессия (любого зрителя) сначала завершается.
func (m *Manager) StartSession(ctx context.Context, viewer *entities.Profile) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	session := NewSession(
		viewer,
		m.orderRepo, m.commentRepo, m.fileRepo, m.profileRepo,
		m.bus, m.logger,
	)
	if err := session.Start(ctx); err != nil {
		return nil, err
	}

	feedCtx, cancel := context.WithCancel(context.Background())

	listener := feed.NewListener(m.pool, session.EventSink(), m.logger)
	go listener.Run(feedCtx)

	poller := feed.NewPoller(
		m.cfg.PullInterval,
		m.cfg.PullBatchSize,
		session.Scope(),
		session,
		m.orderRepo, m.commentRepo, m.fileRepo,
		session.EventSink(),
		m.logger,
	)
	go poller.Run(feedCtx)

	m.current = session
	m.cancel = cancel
	return session, nil
}

// StopSession завершает текущую сессию, если она есть. Идемпотентна.
func (m *Manager) StopSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.current == nil {
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.current.Stop()
	m.current = nil
}

// Current возвращает активную сессию или ErrNoActiveSession.
func (m *Manager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, apperrors.ErrNoActiveSession
	}
	return m.current, nil
}

// SessionFor возвращает активную сессию, если она принадлежит данному
// зрителю. Чужой зритель получает ErrNoActiveSession.
func (m *Manager) SessionFor(viewerID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.Viewer().ID != viewerID {
		return nil, apperrors.ErrNoActiveSession
	}
	return m.current, nil
}
