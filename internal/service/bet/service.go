package bet

import (
	"sync"
	"time"

	"roulette_client/internal/config"
	"roulette_client/internal/model"
	"roulette_client/internal/repository"
	"roulette_client/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type serv struct {
	engine repository.EngineRepository
	ledger repository.LedgerRepository
	rounds service.RoundProvider
	limits config.LimitsConfig
	log    *zap.Logger

	// now Источник времени, подменяется в тестах
	now func() time.Time

	// inFlight Пер-пользовательский флаг отправки: вторая ставка того же
	// пользователя не уходит, пока не вернулась первая
	mtx      sync.Mutex
	inFlight map[string]bool
}

// NewBetService Создать сервис ставок
func NewBetService(
	engine repository.EngineRepository,
	ledger repository.LedgerRepository,
	rounds service.RoundProvider,
	limits config.LimitsConfig,
	log *zap.Logger,
) service.BetService {
	return &serv{
		engine:   engine,
		ledger:   ledger,
		rounds:   rounds,
		limits:   limits,
		log:      log,
		now:      time.Now,
		inFlight: make(map[string]bool),
	}
}

// UserBets Суммы ставок пользователя по цветам в активном раунде
func (s *serv) UserBets(userID string) map[model.Color]decimal.Decimal {
	return s.ledger.UserBets(userID)
}

func (s *serv) beginSubmit(userID string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *serv) endSubmit(userID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.inFlight, userID)
}
