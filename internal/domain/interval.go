package domain

// IntervalsOverlap проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// в минутах с начала суток. Граничащие интервалы (aEnd == bStart) не пересекаются.
//
// Единственная точка правды для пересечений: генерация слотов, оценка занятости
// дней и проверка конфликта при создании бронирования используют эту функцию,
// чтобы их семантика не расходилась.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
