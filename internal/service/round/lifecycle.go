package round

import (
	"context"
	"fmt"
	"time"

	"roulette_client/internal/model"

	"go.uber.org/zap"
)

// Start Загружает сохраненную позицию барабана, делает первичный снимок
// раунда и запускает фоновый цикл опроса и отсчета
func (s *serv) Start(ctx context.Context) error {
	position, err := s.reel.Position(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reel position: %w", err)
	}

	s.mtx.Lock()
	s.position = s.geo.Normalize(position)
	s.mtx.Unlock()

	// Первичный снимок до начала обслуживания запросов.
	// Ошибка не фатальна — цикл опроса доберет состояние
	s.refresh(ctx)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(runCtx)

	return nil
}

// Stop Останавливает цикл и отменяет таймер анимации — после остановки
// ни один коллбек не трогает освобожденное состояние
func (s *serv) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.mtx.Lock()
	if s.animTimer != nil {
		s.animTimer.Stop()
		s.animTimer = nil
	}
	s.mtx.Unlock()
}

// run Цикл контроллера: опрос движка с фиксированным интервалом и
// быстрый пересчет отсчета. Отсчет считается из уже полученных данных
// и никогда не ждет сети
func (s *serv) run(ctx context.Context) {
	defer s.wg.Done()

	poll := time.NewTicker(s.cfg.PollInterval())
	defer poll.Stop()
	tick := time.NewTicker(s.cfg.CountdownTick())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			s.refresh(ctx)
		case <-tick.C:
			s.mtx.Lock()
			s.recountLocked()
			s.mtx.Unlock()
		}
	}
}

// refresh Перечитывает раунд и его ставки. Любая сетевая ошибка —
// нефатальная: логируется, помечает состояние как устаревшее и ждет
// следующего опроса
func (s *serv) refresh(ctx context.Context) {
	snapshot, err := s.engine.CurrentRound(ctx)
	if err != nil {
		s.log.Warn("failed to fetch current round", zap.Error(err))
		s.setDegraded(true)
		return
	}
	s.setDegraded(false)

	s.applySnapshot(snapshot)

	bets, err := s.engine.RoundBets(ctx, snapshot.ID)
	if err != nil {
		s.log.Warn("failed to fetch round bets", zap.Error(err))
		return
	}
	s.ledger.ReplaceRoundBets(snapshot.ID, bets)
}

// applySnapshot Применяет снимок раунда. Смена id раунда — сброс всех
// раундовых агрегатов атомарно с этим же снимком: ни один читатель не
// увидит наполовину сброшенное состояние
func (s *serv) applySnapshot(snapshot *model.Round) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.round == nil || s.round.ID != snapshot.ID {
		// Позиция барабана при смене раунда не трогается —
		// она меняется только самим спином
		s.ledger.Reset(snapshot.ID)
		s.guard.Reset()
		s.log.Info("round changed",
			zap.String("round_id", snapshot.ID),
			zap.Int64("round_number", snapshot.RoundNumber),
		)
	}

	s.round = snapshot
	s.recountLocked()

	if snapshot.Status == model.StatusSpinning && snapshot.ResultSlot != nil {
		s.maybeStartSpinLocked(snapshot)
	} else if snapshot.Status != model.StatusSpinning {
		// Ушли из spinning — следующий спин оценивается заново
		s.guard.Reset()
	}
}

// recountLocked Пересчет отсчета из уже полученного раунда
func (s *serv) recountLocked() {
	if s.round == nil {
		s.timeLeft = 0
		return
	}

	switch s.round.Status {
	case model.StatusBetting:
		s.timeLeft = secondsLeft(s.round.BettingEndTime, s.now())
	case model.StatusSpinning:
		s.timeLeft = secondsLeft(s.round.SpinningEndTime, s.now())
	default:
		s.timeLeft = 0
	}
}

func (s *serv) setDegraded(v bool) {
	s.mtx.Lock()
	s.degraded = v
	s.mtx.Unlock()
}

// State Снимок состояния игры для UI
func (s *serv) State() model.GameState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	state := model.GameState{
		TimeLeft: s.timeLeft,
		Totals:   s.ledger.Totals(),
		Degraded: s.degraded,
	}
	if s.round != nil {
		snapshot := *s.round
		state.Round = &snapshot
	}
	return state
}

// CurrentRound Копия текущего раунда, nil если снимка еще нет
func (s *serv) CurrentRound() *model.Round {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.round == nil {
		return nil
	}
	snapshot := *s.round
	return &snapshot
}

// RecentResults История результатов, дедупликация по номеру раунда
// с сохранением первого вхождения
func (s *serv) RecentResults(ctx context.Context) ([]model.RoundResult, error) {
	results, err := s.engine.RecentResults(ctx, s.cfg.ResultsLimit())
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(results))
	out := make([]model.RoundResult, 0, len(results))
	for _, res := range results {
		if _, ok := seen[res.RoundNumber]; ok {
			continue
		}
		seen[res.RoundNumber] = struct{}{}
		out = append(out, res)
	}
	return out, nil
}

// OnRoundEvent Событие ленты об изменении раунда — то же перечитывание,
// что и по опросу
func (s *serv) OnRoundEvent(ctx context.Context) {
	s.refresh(ctx)
}

// OnBetEvent Событие ленты об изменении ставок — перечитать ставки
// активного раунда. Самому событию не доверяем: лента at-least-once
// и без гарантии порядка
func (s *serv) OnBetEvent(ctx context.Context) {
	current := s.CurrentRound()
	if current == nil {
		return
	}

	bets, err := s.engine.RoundBets(ctx, current.ID)
	if err != nil {
		s.log.Warn("failed to fetch round bets", zap.Error(err))
		return
	}
	s.ledger.ReplaceRoundBets(current.ID, bets)
}

// OnBalanceEvent Баланс принадлежит другой подсистеме, шлюз его не
// кэширует — событие только логируется
func (s *serv) OnBalanceEvent(_ context.Context) {
	s.log.Debug("balance change event received")
}

// OnSpinCompleted Подписка на завершение спина
func (s *serv) OnSpinCompleted(fn func(model.SpinCompleted)) {
	s.mtx.Lock()
	s.hooks = append(s.hooks, fn)
	s.mtx.Unlock()
}
