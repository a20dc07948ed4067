package wheel

// Resolver Выбор между серверной и клиентской целевой позицией.
// Серверное значение принимается только если оно левее текущей позиции
// и дистанция укладывается в [minAcceptCycles, maxAcceptCycles] оборотов.
// Все остальное молча отбрасывается в пользу клиентского расчета —
// это защита от скачка или разворота анимации, а не ошибка.
//
// Известное ограничение: остаток выравнивания серверного значения не
// проверяется. Серверная позиция в допустимых границах, но смещенная
// относительно выпавшего слота, будет принята и покажет под маркером
// не ту плитку
type Resolver struct {
	geo *Geometry
}

// NewResolver Создать политику согласования позиций
func NewResolver(geo *Geometry) *Resolver {
	return &Resolver{geo: geo}
}

// Resolve Вернуть целевую позицию для выпавшего слота.
// serverPosition == nil — сервер позицию не прислал, считаем сами
func (r *Resolver) Resolve(winningSlot int, fromPosition int64, serverPosition *int64) (int64, error) {
	if serverPosition == nil {
		return r.geo.TargetFor(winningSlot, fromPosition)
	}

	cycle := r.geo.CycleWidth()
	distance := fromPosition - *serverPosition
	minDistance := r.geo.minAcceptCycles * cycle
	maxDistance := r.geo.maxAcceptCycles * cycle

	// distance > 0 означает движение влево
	if distance >= minDistance && distance <= maxDistance {
		return *serverPosition, nil
	}

	return r.geo.TargetFor(winningSlot, fromPosition)
}
