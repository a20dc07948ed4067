package round

import (
	"context"
	"errors"
	"testing"
	"time"

	"roulette_client/internal/config"
	"roulette_client/internal/model"
	"roulette_client/internal/repository/ledger_repo"
	"roulette_client/internal/wheel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testWheelCfg struct{}

func (testWheelCfg) Slots() []config.SlotConfig {
	return []config.SlotConfig{
		{Number: 0, Color: "green"},
		{Number: 11, Color: "black"},
		{Number: 5, Color: "red"},
		{Number: 10, Color: "black"},
		{Number: 6, Color: "red"},
		{Number: 9, Color: "black"},
		{Number: 7, Color: "red"},
		{Number: 8, Color: "black"},
		{Number: 1, Color: "red"},
		{Number: 14, Color: "black"},
		{Number: 2, Color: "red"},
		{Number: 13, Color: "black"},
		{Number: 3, Color: "red"},
		{Number: 12, Color: "black"},
		{Number: 4, Color: "red"},
	}
}
func (testWheelCfg) TileSize() int64            { return 100 }
func (testWheelCfg) VisibleTiles() int64        { return 15 }
func (testWheelCfg) SafeZoneCycles() int64      { return 5 }
func (testWheelCfg) MinSpinRevolutions() int64  { return 50 }
func (testWheelCfg) FallbackRevolutions() int64 { return 5 }
func (testWheelCfg) MinAcceptCycles() int64     { return 3 }
func (testWheelCfg) MaxAcceptCycles() int64     { return 100 }

type testLifecycleCfg struct{}

func (testLifecycleCfg) PollInterval() time.Duration  { return 2 * time.Second }
func (testLifecycleCfg) CountdownTick() time.Duration { return 100 * time.Millisecond }
func (testLifecycleCfg) SpinDuration() time.Duration  { return 4 * time.Second }
func (testLifecycleCfg) ResultsLimit() int            { return 20 }

type fakeEngine struct {
	round    *model.Round
	roundErr error
	bets     []model.Bet
	betsErr  error
	results  []model.RoundResult
}

func (f *fakeEngine) CurrentRound(ctx context.Context) (*model.Round, error) {
	if f.roundErr != nil {
		return nil, f.roundErr
	}
	snapshot := *f.round
	return &snapshot, nil
}

func (f *fakeEngine) RoundBets(ctx context.Context, roundID string) ([]model.Bet, error) {
	return f.bets, f.betsErr
}

func (f *fakeEngine) RecentResults(ctx context.Context, limit int) ([]model.RoundResult, error) {
	return f.results, nil
}

func (f *fakeEngine) PlaceBet(ctx context.Context, req model.PlaceBet) (*model.Bet, error) {
	return nil, errors.New("not used")
}

func (f *fakeEngine) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("not used")
}

type fakeReel struct {
	position int64
	saved    []int64
	loadErr  error
	saveErr  error
}

func (f *fakeReel) Position(ctx context.Context) (int64, error) {
	return f.position, f.loadErr
}

func (f *fakeReel) SavePosition(ctx context.Context, position int64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, position)
	return nil
}

type fixture struct {
	serv   *serv
	engine *fakeEngine
	reel   *fakeReel
	clock  time.Time
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func bettingRound(id string, number int64) *model.Round {
	return &model.Round{
		ID:          id,
		RoundNumber: number,
		Status:      model.StatusBetting,
	}
}

func spinningRound(id string, number int64, slot int, serverPos *int64) *model.Round {
	return &model.Round{
		ID:           id,
		RoundNumber:  number,
		Status:       model.StatusSpinning,
		ResultSlot:   intPtr(slot),
		ReelPosition: serverPos,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	geo, err := wheel.NewGeometry(testWheelCfg{})
	require.NoError(t, err)

	engine := &fakeEngine{round: bettingRound("r1", 1)}
	reel := &fakeReel{}
	ledger := ledger_repo.NewLedgerRepository()

	s := NewRoundService(engine, reel, ledger, geo, testLifecycleCfg{}, zap.NewNop()).(*serv)

	f := &fixture{
		serv:   s,
		engine: engine,
		reel:   reel,
		clock:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	s.now = func() time.Time { return f.clock }
	return f
}

func TestStartLoadsAndNormalizesPosition(t *testing.T) {
	f := newFixture(t)
	f.reel.position = -75700 // за пределами безопасной зоны

	require.NoError(t, f.serv.Start(context.Background()))
	defer f.serv.Stop()

	state := f.serv.ReelState()
	assert.Equal(t, int64(-700), state.Position)
	assert.False(t, state.Animating)

	// Первичный снимок применен до выхода из Start
	current := f.serv.CurrentRound()
	require.NotNil(t, current)
	assert.Equal(t, "r1", current.ID)
}

func TestStartFailsWithoutPosition(t *testing.T) {
	f := newFixture(t)
	f.reel.loadErr = errors.New("redis down")

	err := f.serv.Start(context.Background())
	require.Error(t, err)
}

func TestRoundChangeResetsLedger(t *testing.T) {
	f := newFixture(t)
	f.serv.applySnapshot(bettingRound("r1", 1))

	f.serv.ledger.RecordOptimistic(model.Bet{
		RoundID: "r1",
		UserID:  "u1",
		Color:   model.ColorRed,
		Amount:  decimal.NewFromInt(10),
	})
	require.Equal(t, 1, f.serv.ledger.Totals()[model.ColorRed].Count)

	f.serv.applySnapshot(bettingRound("r2", 2))

	assert.Equal(t, "r2", f.serv.ledger.RoundID())
	for _, c := range model.Colors {
		assert.Zero(t, f.serv.ledger.Totals()[c].Count)
	}
}

func TestRoundChangeKeepsReelPosition(t *testing.T) {
	f := newFixture(t)
	f.serv.position = -700

	f.serv.applySnapshot(bettingRound("r1", 1))
	f.serv.applySnapshot(bettingRound("r2", 2))

	assert.Equal(t, int64(-700), f.serv.ReelState().Position)
}

func TestSpinStartsOncePerSnapshot(t *testing.T) {
	f := newFixture(t)
	defer f.serv.Stop()

	snapshot := spinningRound("r1", 1, 4, int64Ptr(-7000))
	f.serv.applySnapshot(snapshot)

	require.True(t, f.serv.ReelState().Animating)
	firstTimer := f.serv.animTimer
	require.NotNil(t, firstTimer)

	// Опрос приносит тот же снимок повторно — анимация не перезапускается
	f.serv.applySnapshot(snapshot)
	f.serv.applySnapshot(snapshot)

	assert.Same(t, firstTimer, f.serv.animTimer)
}

func TestSpinEvaluatedFreshAfterCompletion(t *testing.T) {
	f := newFixture(t)
	defer f.serv.Stop()

	snapshot := spinningRound("r1", 1, 4, int64Ptr(-7000))
	f.serv.applySnapshot(snapshot)
	require.True(t, f.serv.ReelState().Animating)

	f.serv.mtx.Lock()
	f.serv.animTimer.Stop()
	f.serv.mtx.Unlock()
	f.serv.completeSpin("r1", 4, -7000)
	require.False(t, f.serv.ReelState().Animating)

	// По завершении память дедупликации очищена: тот же снимок spinning
	// запускает спин заново
	f.serv.applySnapshot(snapshot)

	assert.True(t, f.serv.ReelState().Animating)
	assert.NotNil(t, f.serv.animTimer)
}

func TestNewRoundSpinsAgain(t *testing.T) {
	f := newFixture(t)
	defer f.serv.Stop()

	f.serv.applySnapshot(spinningRound("r1", 1, 4, int64Ptr(-7000)))
	f.serv.mtx.Lock()
	f.serv.animTimer.Stop()
	f.serv.mtx.Unlock()
	f.serv.completeSpin("r1", 4, -7000)

	// Новый раунд проходит фазу ставок и снова крутится
	f.serv.applySnapshot(bettingRound("r2", 2))
	f.serv.applySnapshot(spinningRound("r2", 2, 4, int64Ptr(-7700)))

	assert.True(t, f.serv.ReelState().Animating)
}

func TestCompleteSpinAlignsPersistsAndNotifies(t *testing.T) {
	f := newFixture(t)
	defer f.serv.Stop()

	var events []model.SpinCompleted
	f.serv.OnSpinCompleted(func(e model.SpinCompleted) {
		events = append(events, e)
	})

	// Слот 4, старт с нуля, серверной позиции нет: цель -75700
	f.serv.applySnapshot(spinningRound("r1", 1, 4, nil))
	require.True(t, f.serv.ReelState().Animating)

	f.serv.mtx.Lock()
	f.serv.animTimer.Stop()
	f.serv.mtx.Unlock()
	f.serv.completeSpin("r1", 4, -75700)

	state := f.serv.ReelState()
	assert.False(t, state.Animating)
	assert.Equal(t, int64(-700), state.Position)

	require.Len(t, f.reel.saved, 1)
	assert.Equal(t, int64(-700), f.reel.saved[0])

	require.Len(t, events, 1)
	assert.Equal(t, model.SpinCompleted{
		RoundID:  "r1",
		Slot:     4,
		Color:    model.ColorRed,
		Position: -700,
	}, events[0])
}

func TestUnknownSlotDoesNotAnimate(t *testing.T) {
	f := newFixture(t)
	defer f.serv.Stop()

	f.serv.applySnapshot(spinningRound("r1", 1, 99, nil))

	assert.False(t, f.serv.ReelState().Animating)
	assert.Nil(t, f.serv.animTimer)
}

func TestCountdownFromHeldData(t *testing.T) {
	f := newFixture(t)

	round := bettingRound("r1", 1)
	round.BettingEndTime = f.clock.Add(2900 * time.Millisecond)
	f.serv.applySnapshot(round)

	// Целые секунды вниз
	assert.Equal(t, int64(2), f.serv.State().TimeLeft)

	f.clock = f.clock.Add(3 * time.Second)
	f.serv.mtx.Lock()
	f.serv.recountLocked()
	f.serv.mtx.Unlock()

	// Прошедшее время не уходит в минус
	assert.Equal(t, int64(0), f.serv.State().TimeLeft)
}

func TestDegradedFlag(t *testing.T) {
	f := newFixture(t)

	f.engine.roundErr = errors.New("engine unavailable")
	f.serv.refresh(context.Background())
	assert.True(t, f.serv.State().Degraded)

	// Снимок из кэша продолжает отдаваться
	f.engine.roundErr = nil
	f.serv.refresh(context.Background())
	assert.False(t, f.serv.State().Degraded)
	require.NotNil(t, f.serv.State().Round)
}

func TestRefreshReplacesLedgerBets(t *testing.T) {
	f := newFixture(t)
	f.engine.bets = []model.Bet{
		{RoundID: "r1", UserID: "u1", Color: model.ColorRed, Amount: decimal.NewFromInt(10)},
		{RoundID: "r1", UserID: "u2", Color: model.ColorBlack, Amount: decimal.NewFromInt(3)},
	}

	f.serv.refresh(context.Background())

	totals := f.serv.State().Totals
	assert.Equal(t, 1, totals[model.ColorRed].Count)
	assert.Equal(t, 1, totals[model.ColorBlack].Count)
	assert.True(t, totals[model.ColorRed].Total.Equal(decimal.NewFromInt(10)))
}

func TestRecentResultsDeduplicated(t *testing.T) {
	f := newFixture(t)
	f.engine.results = []model.RoundResult{
		{RoundNumber: 3, ResultSlot: 4, ResultColor: model.ColorRed},
		{RoundNumber: 2, ResultSlot: 0, ResultColor: model.ColorGreen},
		{RoundNumber: 3, ResultSlot: 7, ResultColor: model.ColorRed},
		{RoundNumber: 1, ResultSlot: 11, ResultColor: model.ColorBlack},
	}

	results, err := f.serv.RecentResults(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 3)
	// Первое вхождение побеждает
	assert.Equal(t, int64(3), results[0].RoundNumber)
	assert.Equal(t, 4, results[0].ResultSlot)
	assert.Equal(t, int64(2), results[1].RoundNumber)
	assert.Equal(t, int64(1), results[2].RoundNumber)
}
