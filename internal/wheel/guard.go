package wheel

import "sync"

// spinKey Тройка параметров, по которой различаются запуски анимации
type spinKey struct {
	slot      int
	hasServer bool
	server    int64
}

// SpinGuard Защита от повторного запуска одной и той же анимации.
// Опрос раунда идет с фиксированным интервалом и один и тот же снимок
// "spinning" приходит несколько раз, пока анимация идет — без этой
// защиты каждый опрос перезапускал бы спин. По завершении анимации
// память очищается и следующий спин оценивается с чистого листа.
//
// Check-and-set атомарный: два пересекающихся опроса не пройдут
// проверку одновременно
type SpinGuard struct {
	mtx      sync.Mutex
	last     *spinKey
	inFlight bool
}

// NewSpinGuard Создать защиту
func NewSpinGuard() *SpinGuard {
	return &SpinGuard{}
}

// Begin Попытка начать анимацию для данной тройки параметров.
// false — анимация уже идет или эта тройка уже запущена и еще
// не завершилась
func (g *SpinGuard) Begin(winningSlot int, serverPosition *int64) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if g.inFlight {
		return false
	}

	key := spinKey{slot: winningSlot}
	if serverPosition != nil {
		key.hasServer = true
		key.server = *serverPosition
	}

	if g.last != nil && *g.last == key {
		return false
	}

	g.last = &key
	g.inFlight = true
	return true
}

// Finish Анимация завершена: тройка забывается, следующий спин
// оценивается заново
func (g *SpinGuard) Finish() {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.inFlight = false
	g.last = nil
}

// Reset Сброс запомненной тройки при уходе из статуса spinning или
// при смене раунда. Идущую анимацию не трогает
func (g *SpinGuard) Reset() {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.last = nil
}
