// Package timerange содержит арифметику полуоткрытых интервалов [start, end).
//
// Overlaps - единственный предикат пересечения в сервисе: им пользуются проверка
// доступности, сетка слотов и отчёты. Интервалы, которые только касаются концами,
// не пересекаются.
package timerange

import (
	"sort"
	"time"
)

// Range полуоткрытый интервал [Start, End)
type Range struct {
	Start time.Time
	End   time.Time
}

// New создает интервал
func New(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// IsValid true, если End строго позже Start
func (r Range) IsValid() bool {
	return r.End.After(r.Start)
}

// Duration длительность интервала
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps проверяет пересечение с другим интервалом
func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

// Overlaps true тогда и только тогда, когда aStart < bEnd и aEnd > bStart.
//
// Примеры:
// - [14:00, 15:00) и [14:30, 15:30) → пересекаются
// - [14:00, 15:00) и [15:00, 16:00) → НЕ пересекаются (граничат)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// MergeContiguous сворачивает набор начал слотов одного ресурса в минимальный набор
// непрерывных интервалов. Вход сортируется и очищается от дубликатов, поэтому порядок
// не важен. Блок продлевается на slotDuration, пока следующее начало совпадает с его концом.
//
// {14:00, 15:00, 16:00, 18:00}, 60m → [14:00-17:00), [18:00-19:00)
func MergeContiguous(starts []time.Time, slotDuration time.Duration) []Range {
	times := normalize(starts)
	if len(times) == 0 || slotDuration <= 0 {
		return []Range{}
	}

	ranges := make([]Range, 0, len(times))
	current := Range{Start: times[0], End: times[0].Add(slotDuration)}

	for _, next := range times[1:] {
		if next.Equal(current.End) {
			current.End = next.Add(slotDuration)
			continue
		}
		ranges = append(ranges, current)
		current = Range{Start: next, End: next.Add(slotDuration)}
	}

	return append(ranges, current)
}

// normalize возвращает отсортированную копию без дубликатов
func normalize(starts []time.Time) []time.Time {
	times := make([]time.Time, len(starts))
	copy(times, starts)

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	out := times[:0]
	for i, t := range times {
		if i > 0 && t.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, t)
	}
	return out
}
