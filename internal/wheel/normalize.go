package wheel

// Normalize Сворачивает произвольное смещение в безопасную зону
// [-safeZoneCycles*cycle, +safeZoneCycles*cycle] шагами в один оборот.
// Выравнивание сохраняется: (Normalize(x) - x) кратно ширине оборота.
// Идемпотентна
func (g *Geometry) Normalize(position int64) int64 {
	cycle := g.CycleWidth()
	minSafe := -g.safeZoneCycles * cycle
	maxSafe := g.safeZoneCycles * cycle

	normalized := position % cycle

	for normalized < minSafe {
		normalized += cycle
	}
	for normalized > maxSafe {
		normalized -= cycle
	}

	return normalized
}
