package model

import "fmt"

// RejectReason Код причины отказа по клиентской политике ставок.
// Движок все равно перепроверяет — эти проверки только экономят раундтрипы
type RejectReason string

const (
	RejectNoRound             RejectReason = "no_active_round"
	RejectBettingClosed       RejectReason = "betting_closed"
	RejectInvalidColor        RejectReason = "invalid_color"
	RejectInvalidAmount       RejectReason = "invalid_amount"
	RejectInsufficientBalance RejectReason = "insufficient_balance"
	RejectBetCountLimit       RejectReason = "bet_count_limit"
	RejectRoundTotalLimit     RejectReason = "round_total_limit"
	RejectTooFast             RejectReason = "too_fast"
)

// RejectionError Структурный отказ — пользователь должен изменить ввод,
// повторять запрос бессмысленно
type RejectionError struct {
	Reason  RejectReason
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("bet rejected (%s): %s", e.Reason, e.Message)
}

// Reject Создать отказ
func Reject(reason RejectReason, message string) error {
	return &RejectionError{Reason: reason, Message: message}
}
