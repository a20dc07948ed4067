package round

import (
	"context"
	"time"

	"roulette_client/internal/model"

	"go.uber.org/zap"
)

// persistTimeout Таймаут на сохранение позиции после завершения анимации
const persistTimeout = 2 * time.Second

// maybeStartSpinLocked Запуск спина при входе в spinning. Вызывается
// под s.mtx. Флаг animating и защита от дублей вместе гарантируют ровно
// один запуск на тройку (слот, серверная позиция, статус), пока
// анимация идет — опрос наблюдает один и тот же снимок spinning
// несколько раз до ее завершения
func (s *serv) maybeStartSpinLocked(snapshot *model.Round) {
	if s.animating {
		return
	}

	slot := *snapshot.ResultSlot
	if !s.guard.Begin(slot, snapshot.ReelPosition) {
		return
	}

	target, err := s.resolver.Resolve(slot, s.position, snapshot.ReelPosition)
	if err != nil {
		s.guard.Finish()
		// Слота нет в геометрии — контракт с движком нарушен.
		// Это ошибка состояния, обходить ее молча нельзя
		s.log.DPanic("winning slot is missing from wheel geometry",
			zap.Int("slot", slot),
			zap.String("round_id", snapshot.ID),
			zap.Error(err),
		)
		return
	}

	s.animating = true
	s.log.Info("spin started",
		zap.String("round_id", snapshot.ID),
		zap.Int("slot", slot),
		zap.Int64("from", s.position),
		zap.Int64("target", target),
	)

	roundID := snapshot.ID
	s.animTimer = time.AfterFunc(s.cfg.SpinDuration(), func() {
		s.completeSpin(roundID, slot, target)
	})
}

// completeSpin Завершение анимации: позиция нормализуется, сохраняется
// и становится базой для следующего раунда, подписчики уведомляются
func (s *serv) completeSpin(roundID string, slot int, target int64) {
	normalized := s.geo.Normalize(target)

	s.mtx.Lock()
	s.position = normalized
	s.animating = false
	s.animTimer = nil
	hooks := make([]func(model.SpinCompleted), len(s.hooks))
	copy(hooks, s.hooks)
	s.mtx.Unlock()

	s.guard.Finish()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.reel.SavePosition(ctx, normalized); err != nil {
		s.log.Warn("failed to persist reel position", zap.Error(err))
	}

	color, err := s.geo.ColorOf(slot)
	if err != nil {
		color = ""
	}

	s.log.Info("spin completed",
		zap.String("round_id", roundID),
		zap.Int("slot", slot),
		zap.Int64("position", normalized),
	)

	event := model.SpinCompleted{
		RoundID:  roundID,
		Slot:     slot,
		Color:    color,
		Position: normalized,
	}
	for _, hook := range hooks {
		hook(event)
	}
}

// ReelState Текущее состояние барабана
func (s *serv) ReelState() model.ReelState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return model.ReelState{
		Position:  s.position,
		Animating: s.animating,
	}
}

// secondsLeft Целые секунды до target, не меньше нуля
func secondsLeft(target, now time.Time) int64 {
	left := target.Sub(now)
	if left <= 0 {
		return 0
	}
	return int64(left / time.Second)
}
