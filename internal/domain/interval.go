package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps возвращает true, если интервалы действительно пересекаются.
// Используются строгие неравенства: интервалы, граничащие точно в одной
// точке (один заканчивается там, где начинается другой), НЕ пересекаются.
//
// Примеры:
// - [11:30,12:00) и [11:20,11:40) → пересекаются (11:30-11:40)
// - [11:30,12:00) и [11:00,11:30) → не пересекаются (граничат)
// - [11:30,12:00) и [12:00,12:30) → не пересекаются (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// ConflictsWithAny возвращает true, если интервал пересекается хотя бы
// с одним из переданных занятых интервалов
func (i Interval) ConflictsWithAny(occupied []Interval) bool {
	for _, o := range occupied {
		if i.Overlaps(o) {
			return true
		}
	}
	return false
}
