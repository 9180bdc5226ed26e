package feed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"worktrack-portal/internal/repositories"
	"worktrack-portal/pkg/constants"
)

// CursorSource отдает курсор "последнего увиденного" по потоку.
// Реализуется состоянием сессии; poller его только читает.
type CursorSource interface {
	Cursor(stream string) time.Time
}

// Poller - pull-ветка фида: раз в интервал перечитывает каждый поток,
// ограничиваясь курсором (created_at > cursor), и кормит тот же канал,
// что и push-подписка. Дубликаты гасит идемпотентный шлюз сессии.
type Poller struct {
	interval  time.Duration
	batchSize uint64
	scope     repositories.Scope
	cursors   CursorSource

	orderRepo   repositories.OrderRepositoryInterface
	commentRepo repositories.OrderCommentRepositoryInterface
	fileRepo    repositories.OrderFileRepositoryInterface

	events chan<- ChangeEvent
	logger *zap.Logger
}

func NewPoller(
	interval time.Duration,
	batchSize uint64,
	scope repositories.Scope,
	cursors CursorSource,
	orderRepo repositories.OrderRepositoryInterface,
	commentRepo repositories.OrderCommentRepositoryInterface,
	fileRepo repositories.OrderFileRepositoryInterface,
	events chan<- ChangeEvent,
	logger *zap.Logger,
) *Poller {
	return &Poller{
		interval:    interval,
		batchSize:   batchSize,
		scope:       scope,
		cursors:     cursors,
		orderRepo:   orderRepo,
		commentRepo: commentRepo,
		fileRepo:    fileRepo,
		events:      events,
		logger:      logger,
	}
}

// Run блокируется до отмены контекста. Таймер перевзводится всегда,
// независимо от исхода прошлого цикла.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pullCycle(ctx)
		}
	}
}

// pullCycle опрашивает все три потока. Ошибка одного потока не мешает
// остальным: частичные результаты цикла применяются как есть.
func (p *Poller) pullCycle(ctx context.Context) {
	p.pullOrders(ctx)
	p.pullComments(ctx)
	p.pullFiles(ctx)
}

func (p *Poller) pullOrders(ctx context.Context) {
	since := p.cursors.Cursor(constants.StreamOrders)
	orders, err := p.orderRepo.ListUpdatedSince(ctx, p.scope, since, p.batchSize)
	if err != nil {
		p.logger.Warn("Pull-цикл: поток заказов недоступен", zap.Error(err))
		return
	}
	for i := range orders {
		p.send(ctx, ChangeEvent{Stream: constants.StreamOrders, Op: constants.OpUpdate, Order: &orders[i]})
	}
}

func (p *Poller) pullComments(ctx context.Context) {
	since := p.cursors.Cursor(constants.StreamComments)
	comments, err := p.commentRepo.ListCreatedSince(ctx, p.scope, since, p.batchSize)
	if err != nil {
		p.logger.Warn("Pull-цикл: поток комментариев недоступен", zap.Error(err))
		return
	}
	for i := range comments {
		p.send(ctx, ChangeEvent{Stream: constants.StreamComments, Op: constants.OpInsert, Comment: &comments[i]})
	}
}

func (p *Poller) pullFiles(ctx context.Context) {
	since := p.cursors.Cursor(constants.StreamFiles)
	files, err := p.fileRepo.ListCreatedSince(ctx, p.scope, since, p.batchSize)
	if err != nil {
		p.logger.Warn("Pull-цикл: поток файлов недоступен", zap.Error(err))
		return
	}
	for i := range files {
		p.send(ctx, ChangeEvent{Stream: constants.StreamFiles, Op: constants.OpInsert, File: &files[i]})
	}
}

func (p *Poller) send(ctx context.Context, ev ChangeEvent) {
	select {
	case p.events <- ev:
	case <-ctx.Done():
	}
}
