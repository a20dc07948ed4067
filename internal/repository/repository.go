package repository

import (
	"context"
	"time"

	"roulette_client/internal/model"

	"github.com/shopspring/decimal"
)

// EngineRepository Клиент удаленного игрового движка. Движок —
// единственный владелец раундов, ставок и расчетов
type EngineRepository interface {
	CurrentRound(ctx context.Context) (*model.Round, error)
	RoundBets(ctx context.Context, roundID string) ([]model.Bet, error)
	RecentResults(ctx context.Context, limit int) ([]model.RoundResult, error)
	PlaceBet(ctx context.Context, req model.PlaceBet) (*model.Bet, error)
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// ReelStateRepository Хранение последней позиции барабана.
// Читается один раз на старте, пишется только по завершении анимации
type ReelStateRepository interface {
	Position(ctx context.Context) (int64, error)
	SavePosition(ctx context.Context, position int64) error
}

// LedgerRepository Локальные агрегаты ставок активного раунда и лимиты
// пользователей. Все данные живут ровно один раунд
type LedgerRepository interface {
	// RoundID Раунд, к которому привязаны агрегаты
	RoundID() string
	// Reset Полный сброс под новый раунд: агрегаты, оверлей, лимиты
	Reset(roundID string)
	// ReplaceRoundBets Замена подтвержденного набора ставок раунда.
	// Набор для чужого раунда игнорируется, оверлей затирается целиком
	ReplaceRoundBets(roundID string, bets []model.Bet)
	// RecordOptimistic Оптимистичная ставка до подтверждения движком
	RecordOptimistic(bet model.Bet)
	// Totals Агрегаты по цветам, пересчитанные с нуля
	Totals() model.BetTotals
	// UserBets Суммы ставок пользователя по цветам в активном раунде
	UserBets(userID string) map[model.Color]decimal.Decimal
	// Limits Лимиты пользователя в активном раунде
	Limits(userID string) model.UserRoundLimits
	// NoteSubmission Учесть отправленную ставку в лимитах
	NoteSubmission(userID string, amount decimal.Decimal, at time.Time)
}
