package ledger_repo

import (
	"sync"
	"time"

	"roulette_client/internal/model"
	"roulette_client/internal/repository"

	"github.com/shopspring/decimal"
)

// limitState Лимиты одного пользователя в активном раунде
type limitState struct {
	total      decimal.Decimal
	count      int
	lastSubmit time.Time
}

// LedgerRepo Реализация локальной книги ставок активного раунда.
// Подтвержденные ставки приходят из опроса и push-ленты, оптимистичные —
// из только что отправленных запросов. Все состояние привязано к id
// раунда и сбрасывается целиком при его смене
type LedgerRepo struct {
	mtx        sync.RWMutex
	roundID    string
	bets       []model.Bet
	optimistic []model.Bet
	limits     map[string]*limitState
}

// NewLedgerRepository Конструктор пустой книги ставок
func NewLedgerRepository() repository.LedgerRepository {
	return &LedgerRepo{
		limits: make(map[string]*limitState),
	}
}

func (r *LedgerRepo) RoundID() string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.roundID
}

// Reset Полный сброс под новый раунд
func (r *LedgerRepo) Reset(roundID string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.roundID = roundID
	r.bets = nil
	r.optimistic = nil
	r.limits = make(map[string]*limitState)
}

// ReplaceRoundBets Замена подтвержденного набора ставок.
// Набор для чужого раунда игнорируется — запоздавшее обновление старого
// раунда не должно испортить отображение нового. Оптимистичный оверлей
// затирается целиком: последний подтвержденный снимок побеждает
func (r *LedgerRepo) ReplaceRoundBets(roundID string, bets []model.Bet) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if roundID != r.roundID {
		return
	}

	r.bets = make([]model.Bet, len(bets))
	copy(r.bets, bets)
	r.optimistic = nil
}

// RecordOptimistic Отразить только что отправленную ставку до прихода
// подтвержденного снимка
func (r *LedgerRepo) RecordOptimistic(bet model.Bet) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if bet.RoundID != r.roundID {
		return
	}
	r.optimistic = append(r.optimistic, bet)
}

// Totals Агрегаты по цветам. Каждый раз пересчитываются с нуля по всему
// набору — инкрементальные счетчики разъезжаются на потерянных и
// дублированных событиях
func (r *LedgerRepo) Totals() model.BetTotals {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	totals := model.NewBetTotals()
	for _, bet := range r.bets {
		r.addToTotals(totals, bet)
	}
	for _, bet := range r.optimistic {
		r.addToTotals(totals, bet)
	}
	return totals
}

func (r *LedgerRepo) addToTotals(totals model.BetTotals, bet model.Bet) {
	if !bet.Color.Valid() {
		return
	}
	t := totals[bet.Color]
	t.Total = t.Total.Add(bet.Amount)
	t.Count++
	t.Bets = append(t.Bets, bet)
	totals[bet.Color] = t
}

// UserBets Суммы ставок пользователя по цветам в активном раунде
func (r *LedgerRepo) UserBets(userID string) map[model.Color]decimal.Decimal {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make(map[model.Color]decimal.Decimal)
	for _, bet := range r.bets {
		if bet.UserID == userID {
			out[bet.Color] = out[bet.Color].Add(bet.Amount)
		}
	}
	for _, bet := range r.optimistic {
		if bet.UserID == userID {
			out[bet.Color] = out[bet.Color].Add(bet.Amount)
		}
	}
	return out
}

func (r *LedgerRepo) Limits(userID string) model.UserRoundLimits {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	state, ok := r.limits[userID]
	if !ok {
		return model.UserRoundLimits{TotalThisRound: decimal.Zero}
	}
	return model.UserRoundLimits{
		TotalThisRound: state.total,
		BetCount:       state.count,
		LastSubmit:     state.lastSubmit,
	}
}

func (r *LedgerRepo) NoteSubmission(userID string, amount decimal.Decimal, at time.Time) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	state, ok := r.limits[userID]
	if !ok {
		state = &limitState{total: decimal.Zero}
		r.limits[userID] = state
	}
	state.total = state.total.Add(amount)
	state.count++
	state.lastSubmit = at
}
