package env

import (
	"fmt"
	"os"
	"time"

	"roulette_client/internal/config"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// gameConfigFile Структура config.yaml целиком
type gameConfigFile struct {
	Wheel     wheelYAML     `yaml:"wheel"`
	Limits    limitsYAML    `yaml:"limits"`
	Lifecycle lifecycleYAML `yaml:"lifecycle"`
}

type wheelYAML struct {
	TileSize            int64      `yaml:"tile_size"`
	VisibleTiles        int64      `yaml:"visible_tiles"`
	SafeZoneCycles      int64      `yaml:"safe_zone_cycles"`
	MinSpinRevolutions  int64      `yaml:"min_spin_revolutions"`
	FallbackRevolutions int64      `yaml:"fallback_revolutions"`
	MinAcceptCycles     int64      `yaml:"min_accept_cycles"`
	MaxAcceptCycles     int64      `yaml:"max_accept_cycles"`
	Slots               []slotYAML `yaml:"slots"`
}

type slotYAML struct {
	Number int    `yaml:"number"`
	Color  string `yaml:"color"`
}

type limitsYAML struct {
	MinBet            string `yaml:"min_bet"`
	MaxBetsPerRound   int    `yaml:"max_bets_per_round"`
	MaxTotalPerRound  string `yaml:"max_total_per_round"`
	MinSubmitInterval string `yaml:"min_submit_interval"`
}

type lifecycleYAML struct {
	PollInterval  string `yaml:"poll_interval"`
	CountdownTick string `yaml:"countdown_tick"`
	SpinDuration  string `yaml:"spin_duration"`
	ResultsLimit  int    `yaml:"results_limit"`
}

func readGameConfigFile(path string) (*gameConfigFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var file gameConfigFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	return &file, nil
}

type wheelConfig struct {
	cfg wheelYAML
}

// NewWheelConfigFromYAML Конфигурация колеса из config.yaml
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	file, err := readGameConfigFile(path)
	if err != nil {
		return nil, err
	}

	w := file.Wheel
	if w.TileSize <= 0 || w.VisibleTiles <= 0 {
		return nil, fmt.Errorf("invalid wheel dimensions: tile_size=%d visible_tiles=%d", w.TileSize, w.VisibleTiles)
	}
	if len(w.Slots) == 0 {
		return nil, fmt.Errorf("wheel slots not found")
	}

	return &wheelConfig{cfg: w}, nil
}

func (c *wheelConfig) Slots() []config.SlotConfig {
	slots := make([]config.SlotConfig, len(c.cfg.Slots))
	for i, s := range c.cfg.Slots {
		slots[i] = config.SlotConfig{Number: s.Number, Color: s.Color}
	}
	return slots
}

func (c *wheelConfig) TileSize() int64            { return c.cfg.TileSize }
func (c *wheelConfig) VisibleTiles() int64        { return c.cfg.VisibleTiles }
func (c *wheelConfig) SafeZoneCycles() int64      { return c.cfg.SafeZoneCycles }
func (c *wheelConfig) MinSpinRevolutions() int64  { return c.cfg.MinSpinRevolutions }
func (c *wheelConfig) FallbackRevolutions() int64 { return c.cfg.FallbackRevolutions }
func (c *wheelConfig) MinAcceptCycles() int64     { return c.cfg.MinAcceptCycles }
func (c *wheelConfig) MaxAcceptCycles() int64     { return c.cfg.MaxAcceptCycles }

type limitsConfig struct {
	minBet            decimal.Decimal
	maxBetsPerRound   int
	maxTotalPerRound  decimal.Decimal
	minSubmitInterval time.Duration
}

// NewLimitsConfigFromYAML Лимиты ставок из config.yaml
func NewLimitsConfigFromYAML(path string) (config.LimitsConfig, error) {
	file, err := readGameConfigFile(path)
	if err != nil {
		return nil, err
	}

	minBet, err := decimal.NewFromString(file.Limits.MinBet)
	if err != nil {
		return nil, fmt.Errorf("invalid min bet: %w", err)
	}

	maxTotal, err := decimal.NewFromString(file.Limits.MaxTotalPerRound)
	if err != nil {
		return nil, fmt.Errorf("invalid max total per round: %w", err)
	}

	interval, err := time.ParseDuration(file.Limits.MinSubmitInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid min submit interval: %w", err)
	}

	if file.Limits.MaxBetsPerRound <= 0 {
		return nil, fmt.Errorf("invalid max bets per round: %d", file.Limits.MaxBetsPerRound)
	}

	return &limitsConfig{
		minBet:            minBet,
		maxBetsPerRound:   file.Limits.MaxBetsPerRound,
		maxTotalPerRound:  maxTotal,
		minSubmitInterval: interval,
	}, nil
}

func (c *limitsConfig) MinBet() decimal.Decimal           { return c.minBet }
func (c *limitsConfig) MaxBetsPerRound() int              { return c.maxBetsPerRound }
func (c *limitsConfig) MaxTotalPerRound() decimal.Decimal { return c.maxTotalPerRound }
func (c *limitsConfig) MinSubmitInterval() time.Duration  { return c.minSubmitInterval }

type lifecycleConfig struct {
	pollInterval  time.Duration
	countdownTick time.Duration
	spinDuration  time.Duration
	resultsLimit  int
}

// NewLifecycleConfigFromYAML Интервалы жизненного цикла раунда из config.yaml
func NewLifecycleConfigFromYAML(path string) (config.LifecycleConfig, error) {
	file, err := readGameConfigFile(path)
	if err != nil {
		return nil, err
	}

	poll, err := time.ParseDuration(file.Lifecycle.PollInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	tick, err := time.ParseDuration(file.Lifecycle.CountdownTick)
	if err != nil {
		return nil, fmt.Errorf("invalid countdown tick: %w", err)
	}

	spin, err := time.ParseDuration(file.Lifecycle.SpinDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid spin duration: %w", err)
	}

	limit := file.Lifecycle.ResultsLimit
	if limit <= 0 {
		limit = 20
	}

	return &lifecycleConfig{
		pollInterval:  poll,
		countdownTick: tick,
		spinDuration:  spin,
		resultsLimit:  limit,
	}, nil
}

func (c *lifecycleConfig) PollInterval() time.Duration  { return c.pollInterval }
func (c *lifecycleConfig) CountdownTick() time.Duration { return c.countdownTick }
func (c *lifecycleConfig) SpinDuration() time.Duration  { return c.spinDuration }
func (c *lifecycleConfig) ResultsLimit() int            { return c.resultsLimit }
