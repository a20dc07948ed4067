package wheel

// TargetFor Считает целевое смещение для выпавшего слота: плитка слота
// встает центром под маркер, а само смещение лежит строго левее fromPosition
// минимум на minSpinRevolutions оборотов — анимация всегда едет справа
// налево и делает несколько полных оборотов независимо от результата.
//
// Возвращает ErrUnknownSlot если слота нет на колесе — контракт с движком
// нарушен, это фатальная ошибка состояния
func (g *Geometry) TargetFor(winningSlot int, fromPosition int64) (int64, error) {
	idx, err := g.IndexOf(winningSlot)
	if err != nil {
		return 0, err
	}

	cycle := g.CycleWidth()
	ideal := g.idealPosition(idx)

	// Сдвигаем идеальную позицию влево целыми оборотами — выравнивание
	// под маркером при этом не меняется
	minFinal := fromPosition - g.minSpinRevolutions*cycle
	target := ideal
	for target > minFinal {
		target -= cycle
	}

	// Страховка направления: цель обязана быть строго левее старта.
	// Если нет — уходим на fallbackRevolutions оборотов влево и шагами
	// вправо ищем ближайшую позицию с остатком идеального выравнивания
	if target >= fromPosition {
		target = fromPosition - g.fallbackRevolutions*cycle
		for target+cycle < fromPosition {
			test := target + cycle
			if mod(test-ideal, cycle) == 0 {
				target = test
				break
			}
			target = test
		}
	}

	return target, nil
}
