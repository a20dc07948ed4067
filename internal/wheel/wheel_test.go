package wheel_test

import (
	"testing"

	"roulette_client/internal/config"
	"roulette_client/internal/model"
	"roulette_client/internal/wheel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testWheelCfg Конфигурация колеса для тестов, совпадает с config.yaml
type testWheelCfg struct {
	slots []config.SlotConfig
}

func newTestWheelCfg() *testWheelCfg {
	return &testWheelCfg{
		slots: []config.SlotConfig{
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
		},
	}
}

func (c *testWheelCfg) Slots() []config.SlotConfig { return c.slots }
func (c *testWheelCfg) TileSize() int64            { return 100 }
func (c *testWheelCfg) VisibleTiles() int64        { return 15 }
func (c *testWheelCfg) SafeZoneCycles() int64      { return 5 }
func (c *testWheelCfg) MinSpinRevolutions() int64  { return 50 }
func (c *testWheelCfg) FallbackRevolutions() int64 { return 5 }
func (c *testWheelCfg) MinAcceptCycles() int64     { return 3 }
func (c *testWheelCfg) MaxAcceptCycles() int64     { return 100 }

func newTestGeometry(t *testing.T) *wheel.Geometry {
	t.Helper()
	geo, err := wheel.NewGeometry(newTestWheelCfg())
	require.NoError(t, err)
	return geo
}

func TestNewGeometry(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		geo := newTestGeometry(t)
		assert.Equal(t, 15, geo.SlotCount())
		assert.Equal(t, int64(1500), geo.CycleWidth())
		assert.Equal(t, int64(1500), geo.TrackVisibleWidth())
		assert.Equal(t, int64(750), geo.CenterMarkerOffset())
	})

	t.Run("duplicate slot number", func(t *testing.T) {
		cfg := newTestWheelCfg()
		cfg.slots = append(cfg.slots, config.SlotConfig{Number: 0, Color: "green"})

		_, err := wheel.NewGeometry(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicated")
	})

	t.Run("unknown color", func(t *testing.T) {
		cfg := newTestWheelCfg()
		cfg.slots[2].Color = "blue"

		_, err := wheel.NewGeometry(cfg)
		require.Error(t, err)
	})
}

func TestGeometryLookups(t *testing.T) {
	geo := newTestGeometry(t)

	t.Run("index follows wheel order", func(t *testing.T) {
		idx, err := geo.IndexOf(0)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)

		idx, err = geo.IndexOf(11)
		require.NoError(t, err)
		assert.Equal(t, 1, idx)

		idx, err = geo.IndexOf(4)
		require.NoError(t, err)
		assert.Equal(t, 14, idx)
	})

	t.Run("color by number", func(t *testing.T) {
		c, err := geo.ColorOf(0)
		require.NoError(t, err)
		assert.Equal(t, model.ColorGreen, c)

		c, err = geo.ColorOf(7)
		require.NoError(t, err)
		assert.Equal(t, model.ColorRed, c)

		c, err = geo.ColorOf(14)
		require.NoError(t, err)
		assert.Equal(t, model.ColorBlack, c)
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := geo.IndexOf(15)
		require.ErrorIs(t, err, wheel.ErrUnknownSlot)

		_, err = geo.ColorOf(-1)
		require.ErrorIs(t, err, wheel.ErrUnknownSlot)
	})
}

func TestNormalize(t *testing.T) {
	geo := newTestGeometry(t)
	cycle := geo.CycleWidth()
	safe := int64(5) * cycle

	t.Run("keeps position inside safe zone", func(t *testing.T) {
		for _, pos := range []int64{0, 1, -1, 700, -75700, 123456789, -123456789, safe, -safe} {
			got := geo.Normalize(pos)
			assert.GreaterOrEqual(t, got, -safe, "position %d", pos)
			assert.LessOrEqual(t, got, safe, "position %d", pos)
		}
	})

	t.Run("preserves alignment", func(t *testing.T) {
		for _, pos := range []int64{-75700, 42, -98765432, 10_000_001} {
			got := geo.Normalize(pos)
			assert.Zero(t, (got-pos)%cycle, "shift must be whole cycles for %d", pos)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, pos := range []int64{0, -75700, 555555, -1} {
			once := geo.Normalize(pos)
			assert.Equal(t, once, geo.Normalize(once))
		}
	})

	t.Run("in-zone position unchanged", func(t *testing.T) {
		// Остаток от деления уже в зоне — двигать нечего
		assert.Equal(t, int64(-700), geo.Normalize(-700))
		assert.Equal(t, int64(700), geo.Normalize(700))
		assert.Equal(t, int64(0), geo.Normalize(0))
	})
}

func TestTargetFor(t *testing.T) {
	geo := newTestGeometry(t)
	cycle := geo.CycleWidth()

	t.Run("known case", func(t *testing.T) {
		// Слот 4 — индекс 14, идеальная позиция 750 - 1450 = -700
		target, err := geo.TargetFor(4, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(-75700), target)
	})

	t.Run("always left by at least min revolutions", func(t *testing.T) {
		minSpin := int64(50) * cycle
		for _, from := range []int64{0, -700, 7000, -7499, 1} {
			for _, slot := range []int{0, 4, 7, 14} {
				target, err := geo.TargetFor(slot, from)
				require.NoError(t, err)
				assert.LessOrEqual(t, target, from-minSpin,
					"slot %d from %d", slot, from)
			}
		}
	})

	t.Run("target lands slot under marker", func(t *testing.T) {
		center := geo.CenterMarkerOffset()
		tile := geo.TileSize()
		for _, slot := range []int{0, 11, 5, 1, 14, 4} {
			idx, err := geo.IndexOf(slot)
			require.NoError(t, err)
			ideal := center - (int64(idx)*tile + tile/2)

			target, err := geo.TargetFor(slot, -3200)
			require.NoError(t, err)
			diff := ideal - target
			assert.Zero(t, diff%cycle, "slot %d: target must align with marker", slot)
		}
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := geo.TargetFor(99, 0)
		require.ErrorIs(t, err, wheel.ErrUnknownSlot)
	})
}

func TestResolver(t *testing.T) {
	geo := newTestGeometry(t)
	resolver := wheel.NewResolver(geo)
	cycle := geo.CycleWidth()

	ptr := func(v int64) *int64 { return &v }

	t.Run("no server position falls back to local target", func(t *testing.T) {
		want, err := geo.TargetFor(4, 0)
		require.NoError(t, err)

		got, err := resolver.Resolve(4, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("server position within bounds accepted", func(t *testing.T) {
		got, err := resolver.Resolve(4, 0, ptr(-7000))
		require.NoError(t, err)
		assert.Equal(t, int64(-7000), got)
	})

	t.Run("too close rejected", func(t *testing.T) {
		// Дистанция 50 меньше минимума в 3 оборота (4500)
		want, err := geo.TargetFor(4, 0)
		require.NoError(t, err)

		got, err := resolver.Resolve(4, 0, ptr(-50))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("too far rejected", func(t *testing.T) {
		tooFar := -(int64(100)*cycle + 1)
		want, err := geo.TargetFor(4, 0)
		require.NoError(t, err)

		got, err := resolver.Resolve(4, 0, ptr(tooFar))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("rightward server position rejected", func(t *testing.T) {
		want, err := geo.TargetFor(7, -1000)
		require.NoError(t, err)

		got, err := resolver.Resolve(7, -1000, ptr(6000))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("exact bounds accepted", func(t *testing.T) {
		got, err := resolver.Resolve(4, 0, ptr(-3*cycle))
		require.NoError(t, err)
		assert.Equal(t, -3*cycle, got)

		got, err = resolver.Resolve(4, 0, ptr(-100*cycle))
		require.NoError(t, err)
		assert.Equal(t, -100*cycle, got)
	})

	t.Run("unknown slot without server position", func(t *testing.T) {
		_, err := resolver.Resolve(42, 0, nil)
		require.ErrorIs(t, err, wheel.ErrUnknownSlot)
	})
}

func TestSpinGuard(t *testing.T) {
	ptr := func(v int64) *int64 { return &v }

	t.Run("same triple starts once while animating", func(t *testing.T) {
		guard := wheel.NewSpinGuard()

		assert.True(t, guard.Begin(4, ptr(-7000)))
		assert.False(t, guard.Begin(4, ptr(-7000)))
		assert.False(t, guard.Begin(4, ptr(-7000)))
	})

	t.Run("in-flight blocks any start", func(t *testing.T) {
		guard := wheel.NewSpinGuard()

		require.True(t, guard.Begin(4, nil))
		assert.False(t, guard.Begin(7, ptr(-9000)))

		guard.Finish()
		assert.True(t, guard.Begin(7, ptr(-9000)))
	})

	t.Run("finish clears the triple", func(t *testing.T) {
		guard := wheel.NewSpinGuard()

		require.True(t, guard.Begin(4, ptr(-7000)))
		require.False(t, guard.Begin(4, ptr(-7000)))
		guard.Finish()

		// После завершения та же тройка оценивается с чистого листа
		assert.True(t, guard.Begin(4, ptr(-7000)))
	})

	t.Run("reset does not stop in-flight animation", func(t *testing.T) {
		guard := wheel.NewSpinGuard()

		require.True(t, guard.Begin(4, nil))
		guard.Reset()
		assert.False(t, guard.Begin(7, nil))
	})
}
