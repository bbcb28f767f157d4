package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// computeSlots вычисляет доступные слоты на день.
// Чистая функция: результат полностью определяется аргументами, повторный
// вызов с теми же данными возвращает тот же упорядоченный список
func computeSlots(
	workingHours *domain.WorkingHours,
	booked []domain.BookedInterval,
	durationHours int,
	granularityMinutes int,
	date time.Time,
	now time.Time,
	minLeadTimeMinutes int,
) ([]domain.Slot, error) {
	// Мастер не работает в этот день
	if !workingHours.IsAvailable {
		return []domain.Slot{}, nil
	}

	if isDateInPast(date, now) {
		return []domain.Slot{}, nil
	}

	durationMinutes := durationHours * domain.MinutesPerHour

	// Шаг 1: Генерируем кандидатов от начала рабочего дня с фиксированным шагом.
	// Кандидат, чей конец выходит за конец рабочего дня, не предлагается -
	// частично помещающиеся слоты исключены
	candidates := make([]types.TimeString, 0)
	current := workingHours.StartTime

	for current.IsBefore(workingHours.EndTime) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(workingHours.EndTime) {
			break
		}

		candidates = append(candidates, current)

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
		current = next
	}

	// Шаг 2: Отбрасываем кандидатов, пересекающихся с занятыми интервалами.
	// Пересечение полуинтервалов [start, end): строгие неравенства, граничное
	// касание (запись заканчивается ровно в начале кандидата) пересечением не считается
	free := make([]types.TimeString, 0, len(candidates))
	for _, start := range candidates {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		if !overlapsAny(start, end, booked) {
			free = append(free, start)
		}
	}

	// Шаг 3: Для сегодняшней даты отбрасываем кандидатов, начинающихся
	// раньше минимально допустимого времени (текущее время + lead time)
	if isSameDay(date, now) {
		minAllowed, err := types.NewTimeString(now).AddMinutes(minLeadTimeMinutes)
		if err != nil {
			return nil, err
		}

		filtered := make([]types.TimeString, 0, len(free))
		for _, start := range free {
			if start.IsAfter(minAllowed) {
				filtered = append(filtered, start)
			}
		}
		free = filtered
	}

	// Шаг 4: Оформляем слоты с отформатированным временем для UI
	slots := make([]domain.Slot, len(free))
	for i, start := range free {
		slots[i] = domain.NewSlot(date, start)
	}

	return slots, nil
}

// overlapsAny проверяет пересечение кандидата с любым занятым интервалом
func overlapsAny(start, end types.TimeString, booked []domain.BookedInterval) bool {
	for _, interval := range booked {
		if interval.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
