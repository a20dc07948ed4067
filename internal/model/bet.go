package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Color Цвет ставки
type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// Colors Все цвета в фиксированном порядке
var Colors = []Color{ColorGreen, ColorRed, ColorBlack}

// Valid Проверка что цвет известен
func (c Color) Valid() bool {
	switch c {
	case ColorGreen, ColorRed, ColorBlack:
		return true
	}
	return false
}

// Multiplier Фиксированный множитель выплаты по цвету
func (c Color) Multiplier() int64 {
	if c == ColorGreen {
		return 14
	}
	return 2
}

// Bet Ставка, владелец — удаленный движок.
// После создания не меняется, движок дописывает только поля расчета
type Bet struct {
	ID              string
	RoundID         string
	UserID          string
	Username        string
	Color           Color
	Amount          decimal.Decimal
	PotentialPayout decimal.Decimal
	ActualPayout    *decimal.Decimal
	IsWinner        *bool
	CreatedAt       time.Time
}

// PlaceBet Запрос на ставку в движок
type PlaceBet struct {
	UserID  string
	RoundID string
	Color   Color
	Amount  decimal.Decimal
}

// ColorTotal Агрегат ставок по одному цвету в рамках раунда
type ColorTotal struct {
	Total decimal.Decimal
	Count int
	Bets  []Bet
}

// BetTotals Агрегаты по всем цветам. Пересчитываются с нуля при любом
// изменении набора ставок раунда и обнуляются при смене раунда
type BetTotals map[Color]ColorTotal

// NewBetTotals Пустые агрегаты по всем цветам
func NewBetTotals() BetTotals {
	t := make(BetTotals, len(Colors))
	for _, c := range Colors {
		t[c] = ColorTotal{Total: decimal.Zero}
	}
	return t
}

// UserRoundLimits Лимиты пользователя в рамках раунда.
// Обнуляются ровно один раз при смене id раунда
type UserRoundLimits struct {
	TotalThisRound decimal.Decimal
	BetCount       int
	LastSubmit     time.Time
}
