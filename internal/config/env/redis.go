package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"roulette_client/internal/config"
)

const (
	redisAddrEnvName     = "REDIS_ADDR"
	redisPasswordEnvName = "REDIS_PASSWORD"
	redisDBEnvName       = "REDIS_DB"
	reelPositionKeyName  = "REEL_POSITION_KEY"

	defaultReelPositionKey = "roulette:reel_position"
)

type redisConfig struct {
	addr            string
	password        string
	db              int
	reelPositionKey string
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		return nil, errors.New("redis addr not found")
	}

	db := 0
	if raw := os.Getenv(redisDBEnvName); len(raw) > 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db: %w", err)
		}
		db = parsed
	}

	key := os.Getenv(reelPositionKeyName)
	if len(key) == 0 {
		key = defaultReelPositionKey
	}

	return &redisConfig{
		addr:            addr,
		password:        os.Getenv(redisPasswordEnvName),
		db:              db,
		reelPositionKey: key,
	}, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.addr
}

func (cfg *redisConfig) Password() string {
	return cfg.password
}

func (cfg *redisConfig) DB() int {
	return cfg.db
}

func (cfg *redisConfig) ReelPositionKey() string {
	return cfg.reelPositionKey
}
