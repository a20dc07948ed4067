package round

import (
	"context"
	"sync"
	"time"

	"roulette_client/internal/config"
	"roulette_client/internal/model"
	"roulette_client/internal/repository"
	"roulette_client/internal/service"
	"roulette_client/internal/wheel"

	"go.uber.org/zap"
)

type serv struct {
	engine   repository.EngineRepository
	reel     repository.ReelStateRepository
	ledger   repository.LedgerRepository
	geo      *wheel.Geometry
	resolver *wheel.Resolver
	guard    *wheel.SpinGuard
	cfg      config.LifecycleConfig
	log      *zap.Logger

	// now Источник времени, подменяется в тестах
	now func() time.Time

	mtx       sync.RWMutex
	round     *model.Round
	timeLeft  int64
	position  int64
	animating bool
	degraded  bool
	hooks     []func(model.SpinCompleted)
	animTimer *time.Timer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRoundService Создать контроллер жизненного цикла раунда
func NewRoundService(
	engine repository.EngineRepository,
	reel repository.ReelStateRepository,
	ledger repository.LedgerRepository,
	geo *wheel.Geometry,
	cfg config.LifecycleConfig,
	log *zap.Logger,
) service.RoundService {
	return &serv{
		engine:   engine,
		reel:     reel,
		ledger:   ledger,
		geo:      geo,
		resolver: wheel.NewResolver(geo),
		guard:    wheel.NewSpinGuard(),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}
