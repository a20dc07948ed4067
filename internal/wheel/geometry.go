package wheel

import (
	"fmt"

	"roulette_client/internal/config"
	"roulette_client/internal/model"
)

// ErrUnknownSlot Выпавший слот отсутствует в геометрии колеса.
// Это нарушение контракта с движком, а не пользовательская ошибка
var ErrUnknownSlot = fmt.Errorf("winning slot is not on the wheel")

// Slot Один слот колеса: номер (метка, не индекс) и цвет
type Slot struct {
	Number int
	Color  model.Color
}

// Geometry Геометрия колеса: фиксированная последовательность слотов и
// размеры в целых пикселях. Должна совпадать с движком вплоть до порядка
// слотов — от этого зависит выравнивание слота под маркером
type Geometry struct {
	slots        []Slot
	indexByNum   map[int]int
	tileSize     int64
	visibleTiles int64

	safeZoneCycles      int64
	minSpinRevolutions  int64
	fallbackRevolutions int64
	minAcceptCycles     int64
	maxAcceptCycles     int64
}

// NewGeometry Построить геометрию из конфигурации
func NewGeometry(cfg config.WheelConfig) (*Geometry, error) {
	raw := cfg.Slots()
	slots := make([]Slot, 0, len(raw))
	indexByNum := make(map[int]int, len(raw))

	for i, s := range raw {
		color := model.Color(s.Color)
		if !color.Valid() {
			return nil, fmt.Errorf("slot %d has unknown color %q", s.Number, s.Color)
		}
		if _, ok := indexByNum[s.Number]; ok {
			return nil, fmt.Errorf("slot %d is duplicated on the wheel", s.Number)
		}
		slots = append(slots, Slot{Number: s.Number, Color: color})
		indexByNum[s.Number] = i
	}

	return &Geometry{
		slots:               slots,
		indexByNum:          indexByNum,
		tileSize:            cfg.TileSize(),
		visibleTiles:        cfg.VisibleTiles(),
		safeZoneCycles:      cfg.SafeZoneCycles(),
		minSpinRevolutions:  cfg.MinSpinRevolutions(),
		fallbackRevolutions: cfg.FallbackRevolutions(),
		minAcceptCycles:     cfg.MinAcceptCycles(),
		maxAcceptCycles:     cfg.MaxAcceptCycles(),
	}, nil
}

// Slots Последовательность слотов колеса
func (g *Geometry) Slots() []Slot {
	out := make([]Slot, len(g.slots))
	copy(out, g.slots)
	return out
}

// SlotCount Количество слотов
func (g *Geometry) SlotCount() int {
	return len(g.slots)
}

// TileSize Ширина одной плитки в пикселях
func (g *Geometry) TileSize() int64 {
	return g.tileSize
}

// CycleWidth Ширина одного полного оборота колеса в пикселях
func (g *Geometry) CycleWidth() int64 {
	return int64(len(g.slots)) * g.tileSize
}

// TrackVisibleWidth Ширина видимого окна трека
func (g *Geometry) TrackVisibleWidth() int64 {
	return g.visibleTiles * g.tileSize
}

// CenterMarkerOffset Смещение центрального маркера от левого края окна
func (g *Geometry) CenterMarkerOffset() int64 {
	return g.TrackVisibleWidth() / 2
}

// IndexOf Индекс слота в последовательности по его номеру
func (g *Geometry) IndexOf(number int) (int, error) {
	idx, ok := g.indexByNum[number]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSlot, number)
	}
	return idx, nil
}

// ColorOf Цвет слота по его номеру
func (g *Geometry) ColorOf(number int) (model.Color, error) {
	idx, err := g.IndexOf(number)
	if err != nil {
		return "", err
	}
	return g.slots[idx].Color, nil
}

// idealPosition Смещение, при котором центр плитки слота с индексом idx
// оказывается ровно под маркером
func (g *Geometry) idealPosition(idx int) int64 {
	return g.CenterMarkerOffset() - (int64(idx)*g.tileSize + g.tileSize/2)
}

// mod Остаток, всегда неотрицательный
func mod(a, m int64) int64 {
	return ((a % m) + m) % m
}
