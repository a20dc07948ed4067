package bet

import (
	"context"
	"fmt"

	"roulette_client/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Place Проверяет ставку по клиентской политике и отправляет в движок.
// Все проверки оптимистичные: движок перепроверит, здесь они только
// экономят раундтрипы. Отказ возвращается как RejectionError —
// пользователь должен изменить ввод, повторять бессмысленно
func (s *serv) Place(ctx context.Context, userID string, color model.Color, amount decimal.Decimal) (*model.Bet, error) {
	current := s.rounds.CurrentRound()
	if current == nil {
		return nil, model.Reject(model.RejectNoRound, "no active round")
	}
	if current.Status != model.StatusBetting {
		return nil, model.Reject(model.RejectBettingClosed, "betting is closed for this round")
	}
	if !color.Valid() {
		return nil, model.Reject(model.RejectInvalidColor, fmt.Sprintf("unknown color %q", color))
	}

	// Минимум 0.01 и не больше двух значащих знаков после запятой.
	// Хвостовые нули не в счет: 5.500 и 5.50 — одна и та же сумма
	if amount.LessThan(s.limits.MinBet()) || !amount.Equal(amount.Round(2)) {
		return nil, model.Reject(model.RejectInvalidAmount, "amount must be at least 0.01 with two decimals")
	}

	userLimits := s.ledger.Limits(userID)
	if userLimits.BetCount >= s.limits.MaxBetsPerRound() {
		return nil, model.Reject(model.RejectBetCountLimit,
			fmt.Sprintf("at most %d bets per round", s.limits.MaxBetsPerRound()))
	}
	if userLimits.TotalThisRound.Add(amount).GreaterThan(s.limits.MaxTotalPerRound()) {
		return nil, model.Reject(model.RejectRoundTotalLimit,
			fmt.Sprintf("at most %s total per round", s.limits.MaxTotalPerRound()))
	}
	if !userLimits.LastSubmit.IsZero() && s.now().Sub(userLimits.LastSubmit) < s.limits.MinSubmitInterval() {
		return nil, model.Reject(model.RejectTooFast, "too many bets, slow down")
	}

	// Баланс проверяем последним — единственная проверка с раундтрипом
	balance, err := s.engine.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}
	if amount.GreaterThan(balance) {
		return nil, model.Reject(model.RejectInsufficientBalance, "insufficient balance")
	}

	if !s.beginSubmit(userID) {
		return nil, model.Reject(model.RejectTooFast, "previous bet is still in flight")
	}
	defer s.endSubmit(userID)

	submittedAt := s.now()
	placed, err := s.engine.PlaceBet(ctx, model.PlaceBet{
		UserID:  userID,
		RoundID: current.ID,
		Color:   color,
		Amount:  amount,
	})
	if err != nil {
		return nil, err
	}

	s.ledger.NoteSubmission(userID, amount, submittedAt)

	// Оптимистичное отражение до следующего подтвержденного снимка.
	// Если движок вернул усеченный ответ — достраиваем локально
	if placed.ID == "" {
		placed.ID = uuid.NewString()
	}
	if placed.RoundID == "" {
		placed.RoundID = current.ID
	}
	if placed.UserID == "" {
		placed.UserID = userID
	}
	if placed.PotentialPayout.IsZero() {
		placed.PotentialPayout = amount.Mul(decimal.NewFromInt(color.Multiplier()))
	}
	s.ledger.RecordOptimistic(*placed)

	return placed, nil
}
