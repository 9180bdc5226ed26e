package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktrack-portal/internal/entities"
)

const profileCacheTTL = 10 * time.Minute

// Формат ключа: profile:<uuid>
const cacheKeyProfile = "profile:%s"

// CachedProfileRepository - кеширующая обертка над репозиторием профилей.
// Синтезатор уведомлений разрешает автора для каждого события; без кеша
// каждый комментарий стоил бы похода в БД.
type CachedProfileRepository struct {
	inner  ProfileRepositoryInterface
	cache  CacheRepositoryInterface
	logger *zap.Logger
}

func NewCachedProfileRepository(inner ProfileRepositoryInterface, cache CacheRepositoryInterface, logger *zap.Logger) ProfileRepositoryInterface {
	return &CachedProfileRepository{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedProfileRepository) FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	key := fmt.Sprintf(cacheKeyProfile, id)

	if cached, err := r.cache.Get(ctx, key); err == nil && cached != "" {
		var p entities.Profile
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
		// Битое значение в кеше - не повод падать, просто идем в БД.
		_ = r.cache.Del(ctx, key)
	}

	p, err := r.inner.FindProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(p); err == nil {
		if err := r.cache.Set(ctx, key, string(raw), profileCacheTTL); err != nil {
			r.logger.Debug("Не удалось закешировать профиль", zap.String("id", id.String()), zap.Error(err))
		}
	}

	return p, nil
}

func (r *CachedProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	// По email ищут только сидеры и отладка - кеш не нужен.
	return r.inner.FindProfileByEmail(ctx, email)
}
