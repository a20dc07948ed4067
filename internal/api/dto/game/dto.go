package game

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoundDTO struct {
	ID               string    `json:"id"`
	RoundNumber      int64     `json:"round_number"`
	Status           string    `json:"status"`
	ResultSlot       *int      `json:"result_slot,omitempty"`
	ResultColor      string    `json:"result_color,omitempty"`
	ResultMultiplier int       `json:"result_multiplier,omitempty"`
	BettingEndTime   time.Time `json:"betting_end_time"`
	SpinningEndTime  time.Time `json:"spinning_end_time"`
}

type BetDTO struct {
	ID       string          `json:"id"`
	Username string          `json:"username,omitempty"`
	Color    string          `json:"color"`
	Amount   decimal.Decimal `json:"amount"`
}

type ColorTotalDTO struct {
	Total decimal.Decimal `json:"total"` // Сумма ставок цвета
	Count int             `json:"count"` // Количество ставок
	Bets  []BetDTO        `json:"bets"`  // Ставки в порядке поступления
}

type StateResponse struct {
	Round    *RoundDTO                `json:"round"`
	TimeLeft int64                    `json:"time_left"` // Секунды до конца фазы
	Totals   map[string]ColorTotalDTO `json:"totals"`
	Degraded bool                     `json:"degraded"` // Данные из кэша, движок недоступен
}

type ReelResponse struct {
	Position  int64 `json:"position"` // Пиксели со знаком
	Animating bool  `json:"animating"`
}

type ResultDTO struct {
	RoundNumber      int64     `json:"round_number"`
	ResultSlot       int       `json:"result_slot"`
	ResultColor      string    `json:"result_color"`
	ResultMultiplier int       `json:"result_multiplier"`
	CreatedAt        time.Time `json:"created_at"`
}

type PlaceBetRequest struct {
	Color  string          `json:"color"`  // green | red | black
	Amount decimal.Decimal `json:"amount"` // Минимум 0.01, два знака
}

type PlaceBetResponse struct {
	ID              string          `json:"id"`
	RoundID         string          `json:"round_id"`
	Color           string          `json:"color"`
	Amount          decimal.Decimal `json:"amount"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
}

type UserBetsResponse struct {
	Bets map[string]decimal.Decimal `json:"bets"` // Цвет -> сумма
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"` // Код отказа клиентской политики
}
