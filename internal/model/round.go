package model

import "time"

// RoundStatus Статус раунда на стороне движка.
// Переходы строго betting -> spinning -> completed, назад не бывает
type RoundStatus string

const (
	StatusBetting   RoundStatus = "betting"
	StatusSpinning  RoundStatus = "spinning"
	StatusCompleted RoundStatus = "completed"
)

// Round Снимок раунда, владелец — удаленный движок.
// Клиент хранит копию только для чтения
type Round struct {
	ID               string
	RoundNumber      int64
	Status           RoundStatus
	ResultSlot       *int
	ResultColor      Color
	ResultMultiplier int
	// ReelPosition Позиция барабана, предложенная сервером (пиксели, со знаком).
	// Может отсутствовать — тогда позиция считается на клиенте
	ReelPosition    *int64
	BettingEndTime  time.Time
	SpinningEndTime time.Time
	CreatedAt       time.Time
}

// RoundResult Запись истории результатов
type RoundResult struct {
	RoundNumber      int64
	ResultSlot       int
	ResultColor      Color
	ResultMultiplier int
	CreatedAt        time.Time
}

// GameState Снимок состояния игры для UI слоя
type GameState struct {
	Round    *Round
	TimeLeft int64 // Секунды до конца текущей фазы
	Totals   BetTotals
	// Degraded Последний опрос движка завершился ошибкой,
	// показываем данные из кэша
	Degraded bool
}

// ReelState Состояние барабана
type ReelState struct {
	Position  int64
	Animating bool
}

// SpinCompleted Событие завершения анимации спина.
// На него подписываются другие подсистемы (например обновление баланса)
type SpinCompleted struct {
	RoundID  string
	Slot     int
	Color    Color
	Position int64
}
