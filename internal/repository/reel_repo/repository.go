package reel_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"roulette_client/internal/config"
	"roulette_client/internal/repository"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rdb redis.UniversalClient
	key string
}

// NewReelStateRepository Хранение позиции барабана в redis.
// Один скаляр под одним ключом, переживает перезапуск клиента
func NewReelStateRepository(rdb redis.UniversalClient, cfg config.RedisConfig) repository.ReelStateRepository {
	return &repo{
		rdb: rdb,
		key: cfg.ReelPositionKey(),
	}
}

// Position Последняя сохраненная позиция. Если записи нет — 0
func (r *repo) Position(ctx context.Context) (int64, error) {
	raw, err := r.rdb.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reel position: %w", err)
	}

	position, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupted reel position %q: %w", raw, err)
	}

	return position, nil
}

// SavePosition Сохранить позицию без срока жизни
func (r *repo) SavePosition(ctx context.Context, position int64) error {
	err := r.rdb.Set(ctx, r.key, strconv.FormatInt(position, 10), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to save reel position: %w", err)
	}
	return nil
}
