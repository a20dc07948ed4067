package converter

import (
	dto "roulette_client/internal/api/dto/game"
	"roulette_client/internal/model"
)

func ToStateResponse(state model.GameState) dto.StateResponse {
	resp := dto.StateResponse{
		TimeLeft: state.TimeLeft,
		Totals:   toTotals(state.Totals),
		Degraded: state.Degraded,
	}
	if state.Round != nil {
		resp.Round = toRoundDTO(state.Round)
	}
	return resp
}

func toRoundDTO(round *model.Round) *dto.RoundDTO {
	return &dto.RoundDTO{
		ID:               round.ID,
		RoundNumber:      round.RoundNumber,
		Status:           string(round.Status),
		ResultSlot:       round.ResultSlot,
		ResultColor:      string(round.ResultColor),
		ResultMultiplier: round.ResultMultiplier,
		BettingEndTime:   round.BettingEndTime,
		SpinningEndTime:  round.SpinningEndTime,
	}
}

func toTotals(totals model.BetTotals) map[string]dto.ColorTotalDTO {
	out := make(map[string]dto.ColorTotalDTO, len(totals))
	for color, total := range totals {
		out[string(color)] = dto.ColorTotalDTO{
			Total: total.Total,
			Count: total.Count,
			Bets:  toBetDTOs(total.Bets),
		}
	}
	return out
}

func toBetDTOs(bets []model.Bet) []dto.BetDTO {
	out := make([]dto.BetDTO, len(bets))
	for i, bet := range bets {
		out[i] = dto.BetDTO{
			ID:       bet.ID,
			Username: bet.Username,
			Color:    string(bet.Color),
			Amount:   bet.Amount,
		}
	}
	return out
}

func ToReelResponse(state model.ReelState) dto.ReelResponse {
	return dto.ReelResponse{
		Position:  state.Position,
		Animating: state.Animating,
	}
}

func ToResultDTOs(results []model.RoundResult) []dto.ResultDTO {
	out := make([]dto.ResultDTO, len(results))
	for i, res := range results {
		out[i] = dto.ResultDTO{
			RoundNumber:      res.RoundNumber,
			ResultSlot:       res.ResultSlot,
			ResultColor:      string(res.ResultColor),
			ResultMultiplier: res.ResultMultiplier,
			CreatedAt:        res.CreatedAt,
		}
	}
	return out
}

func ToPlaceBetResponse(bet *model.Bet) dto.PlaceBetResponse {
	return dto.PlaceBetResponse{
		ID:              bet.ID,
		RoundID:         bet.RoundID,
		Color:           string(bet.Color),
		Amount:          bet.Amount,
		PotentialPayout: bet.PotentialPayout,
	}
}
