package game

import (
	"errors"
	"net/http"

	dto "roulette_client/internal/api/dto/game"
	"roulette_client/internal/converter"
	"roulette_client/internal/middleware"
	"roulette_client/internal/model"
	"roulette_client/internal/service"
	"roulette_client/pkg/req"
	"roulette_client/pkg/resp"

	"github.com/shopspring/decimal"
)

type HandlerDeps struct {
	Rounds service.RoundService
	Bets   service.BetService
}

type Handler struct {
	rounds service.RoundService
	bets   service.BetService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		rounds: deps.Rounds,
		bets:   deps.Bets,
	}
}

// State Снимок игры: раунд, отсчет, агрегаты ставок по цветам
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.rounds.State()))
}

// Reel Текущее состояние барабана для первичной отрисовки
func (h *Handler) Reel(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToReelResponse(h.rounds.ReelState()))
}

// Results История результатов без дублей по номеру раунда
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.rounds.RecentResults(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToResultDTOs(results))
}

// PlaceBet Ставка на цвет. Отказ клиентской политики возвращается
// со структурным кодом причины
func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.PlaceBetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	placed, err := h.bets.Place(r.Context(), userID, model.Color(payload.Color), payload.Amount)
	if err != nil {
		var rejection *model.RejectionError
		if errors.As(err, &rejection) {
			resp.WriteJSONResponse(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error:  rejection.Message,
				Reason: string(rejection.Reason),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlaceBetResponse(placed))
}

// UserBets Суммы ставок пользователя по цветам в активном раунде
func (h *Handler) UserBets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	bets := h.bets.UserBets(userID)
	out := make(map[string]decimal.Decimal, len(bets))
	for color, amount := range bets {
		out[string(color)] = amount
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.UserBetsResponse{Bets: out})
}
