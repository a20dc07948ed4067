package service

import (
	"context"

	"roulette_client/internal/model"

	"github.com/shopspring/decimal"
)

// RoundService Контроллер жизненного цикла раунда. Наблюдает за
// состоянием движка через опрос и push-ленту, сам переходов не инициирует
type RoundService interface {
	Start(ctx context.Context) error
	Stop()

	State() model.GameState
	ReelState() model.ReelState
	CurrentRound() *model.Round
	RecentResults(ctx context.Context) ([]model.RoundResult, error)

	// OnSpinCompleted Подписка на завершение анимации спина
	OnSpinCompleted(fn func(model.SpinCompleted))

	// Обработчики событий push-ленты
	OnRoundEvent(ctx context.Context)
	OnBetEvent(ctx context.Context)
	OnBalanceEvent(ctx context.Context)
}

// RoundProvider Доступ к текущему раунду для сервиса ставок
type RoundProvider interface {
	CurrentRound() *model.Round
}

// BetService Клиентская политика ставок и отправка ставки в движок
type BetService interface {
	Place(ctx context.Context, userID string, color model.Color, amount decimal.Decimal) (*model.Bet, error)
	UserBets(userID string) map[model.Color]decimal.Decimal
}
