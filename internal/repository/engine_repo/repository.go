package engine_repo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"roulette_client/internal/config"
	"roulette_client/internal/model"
	"roulette_client/internal/repository"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	actionCurrentRound  = "get_current_round"
	actionRoundBets     = "get_round_bets"
	actionRecentResults = "get_recent_results"
	actionPlaceBet      = "place_bet"
	actionBalance       = "get_balance"
)

type repo struct {
	baseURL string
	httpc   *http.Client
}

// NewEngineRepository HTTP клиент движка рулетки. Движок принимает один
// POST эндпоинт с полем action в теле
func NewEngineRepository(cfg config.EngineConfig) repository.EngineRepository {
	return &repo{
		baseURL: cfg.BaseURL(),
		httpc: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// invokeRequest Тело запроса к движку
type invokeRequest struct {
	Action    string           `json:"action"`
	RoundID   string           `json:"roundId,omitempty"`
	UserID    string           `json:"userId,omitempty"`
	BetColor  string           `json:"betColor,omitempty"`
	BetAmount *decimal.Decimal `json:"betAmount,omitempty"`
	Limit     int              `json:"limit,omitempty"`
}

// roundWire Раунд в формате движка
type roundWire struct {
	ID               string    `json:"id"`
	RoundNumber      int64     `json:"round_number"`
	Status           string    `json:"status"`
	ResultSlot       *int      `json:"result_slot"`
	ResultColor      string    `json:"result_color"`
	ResultMultiplier int       `json:"result_multiplier"`
	ReelPosition     *int64    `json:"reel_position"`
	BettingEndTime   time.Time `json:"betting_end_time"`
	SpinningEndTime  time.Time `json:"spinning_end_time"`
	CreatedAt        time.Time `json:"created_at"`
}

// betWire Ставка в формате движка
type betWire struct {
	ID              string           `json:"id"`
	RoundID         string           `json:"round_id"`
	UserID          string           `json:"user_id"`
	BetColor        string           `json:"bet_color"`
	BetAmount       decimal.Decimal  `json:"bet_amount"`
	PotentialPayout decimal.Decimal  `json:"potential_payout"`
	ActualPayout    *decimal.Decimal `json:"actual_payout"`
	IsWinner        *bool            `json:"is_winner"`
	CreatedAt       time.Time        `json:"created_at"`
	Profiles        *struct {
		Username string `json:"username"`
	} `json:"profiles"`
}

// resultWire Запись истории в формате движка
type resultWire struct {
	RoundNumber      int64     `json:"round_number"`
	ResultSlot       int       `json:"result_slot"`
	ResultColor      string    `json:"result_color"`
	ResultMultiplier int       `json:"result_multiplier"`
	CreatedAt        time.Time `json:"created_at"`
}

type balanceWire struct {
	Balance decimal.Decimal `json:"balance"`
}

// invoke Выполняет action запрос и декодирует ответ в out
func (r *repo) invoke(ctx context.Context, reqBody invokeRequest, out interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode engine request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build engine request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := r.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("engine call %s failed: %w", reqBody.Action, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read engine response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		// Движок кладет текст ошибки в поле error
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &failure); err == nil && len(failure.Error) > 0 {
			return fmt.Errorf("engine call %s rejected: %s", reqBody.Action, failure.Error)
		}
		return fmt.Errorf("engine call %s returned status %d", reqBody.Action, httpResp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode engine response: %w", err)
	}

	return nil
}

func (r *repo) CurrentRound(ctx context.Context) (*model.Round, error) {
	var wire roundWire
	err := r.invoke(ctx, invokeRequest{Action: actionCurrentRound}, &wire)
	if err != nil {
		return nil, err
	}

	return toRound(wire), nil
}

func (r *repo) RoundBets(ctx context.Context, roundID string) ([]model.Bet, error) {
	var wires []betWire
	err := r.invoke(ctx, invokeRequest{Action: actionRoundBets, RoundID: roundID}, &wires)
	if err != nil {
		return nil, err
	}

	bets := make([]model.Bet, 0, len(wires))
	for _, w := range wires {
		bets = append(bets, toBet(w))
	}
	return bets, nil
}

func (r *repo) RecentResults(ctx context.Context, limit int) ([]model.RoundResult, error) {
	var wires []resultWire
	err := r.invoke(ctx, invokeRequest{Action: actionRecentResults, Limit: limit}, &wires)
	if err != nil {
		return nil, err
	}

	results := make([]model.RoundResult, 0, len(wires))
	for _, w := range wires {
		results = append(results, model.RoundResult{
			RoundNumber:      w.RoundNumber,
			ResultSlot:       w.ResultSlot,
			ResultColor:      model.Color(w.ResultColor),
			ResultMultiplier: w.ResultMultiplier,
			CreatedAt:        w.CreatedAt,
		})
	}
	return results, nil
}

func (r *repo) PlaceBet(ctx context.Context, req model.PlaceBet) (*model.Bet, error) {
	var wire betWire
	err := r.invoke(ctx, invokeRequest{
		Action:    actionPlaceBet,
		UserID:    req.UserID,
		RoundID:   req.RoundID,
		BetColor:  string(req.Color),
		BetAmount: &req.Amount,
	}, &wire)
	if err != nil {
		return nil, err
	}

	bet := toBet(wire)
	return &bet, nil
}

func (r *repo) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var wire balanceWire
	err := r.invoke(ctx, invokeRequest{Action: actionBalance, UserID: userID}, &wire)
	if err != nil {
		return decimal.Zero, err
	}
	return wire.Balance, nil
}

func toRound(w roundWire) *model.Round {
	return &model.Round{
		ID:               w.ID,
		RoundNumber:      w.RoundNumber,
		Status:           model.RoundStatus(w.Status),
		ResultSlot:       w.ResultSlot,
		ResultColor:      model.Color(w.ResultColor),
		ResultMultiplier: w.ResultMultiplier,
		ReelPosition:     w.ReelPosition,
		BettingEndTime:   w.BettingEndTime,
		SpinningEndTime:  w.SpinningEndTime,
		CreatedAt:        w.CreatedAt,
	}
}

func toBet(w betWire) model.Bet {
	bet := model.Bet{
		ID:              w.ID,
		RoundID:         w.RoundID,
		UserID:          w.UserID,
		Color:           model.Color(w.BetColor),
		Amount:          w.BetAmount,
		PotentialPayout: w.PotentialPayout,
		ActualPayout:    w.ActualPayout,
		IsWinner:        w.IsWinner,
		CreatedAt:       w.CreatedAt,
	}
	if w.Profiles != nil {
		bet.Username = w.Profiles.Username
	}
	return bet
}
