package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// SlotConfig Один слот колеса: номер и цвет.
// Порядок слотов в конфиге — общий контракт с движком
type SlotConfig struct {
	Number int
	Color  string
}

type WheelConfig interface {
	Slots() []SlotConfig
	TileSize() int64
	VisibleTiles() int64
	SafeZoneCycles() int64
	MinSpinRevolutions() int64
	FallbackRevolutions() int64
	MinAcceptCycles() int64
	MaxAcceptCycles() int64
}

type LimitsConfig interface {
	MinBet() decimal.Decimal
	MaxBetsPerRound() int
	MaxTotalPerRound() decimal.Decimal
	MinSubmitInterval() time.Duration
}

type LifecycleConfig interface {
	PollInterval() time.Duration
	CountdownTick() time.Duration
	SpinDuration() time.Duration
	ResultsLimit() int
}

type HTTPConfig interface {
	Address() string
}

type EngineConfig interface {
	BaseURL() string
	Timeout() time.Duration
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
	ReelPositionKey() string
}

type FeedConfig interface {
	URL() string
	Exchange() string
	Queue() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
}
