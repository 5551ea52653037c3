package domain

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// WorkingHours рабочие часы салона на один день недели (0 = воскресенье)
type WorkingHours struct {
	ID        int64
	SalonID   int64
	DayOfWeek int
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsOpen    bool
}

// StaffSchedule недельное расписание мастера на один день недели.
// Перерыв, если задан, лежит внутри [StartTime, EndTime] и разбивает
// рабочий интервал на два.
type StaffSchedule struct {
	ID         int64
	StaffID    int64
	DayOfWeek  int
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	IsWorking  bool
}

// BlockedDate исключение из расписания на конкретную календарную дату.
// StaffID == nil означает, что закрыт весь салон.
type BlockedDate struct {
	ID      int64
	SalonID int64
	StaffID *int64
	Date    time.Time
	Reason  *string

	CreatedAt time.Time
}

// CoversStaff возвращает true, если блокировка действует на мастера:
// либо она общесалонная, либо адресована именно ему
func (b *BlockedDate) CoversStaff(staffID int64) bool {
	return b.StaffID == nil || *b.StaffID == staffID
}

// TimeRange интервал времени в часах-минутах без даты, [From, To)
type TimeRange struct {
	From types.TimeString
	To   types.TimeString
}

// OpenRanges вычисляет открытые под-интервалы дня мастера: пересечение
// рабочих часов салона с расписанием мастера, минус перерыв мастера.
// Возвращает до двух упорядоченных непересекающихся интервалов;
// пустой срез означает, что день закрыт.
func OpenRanges(wh *WorkingHours, sched *StaffSchedule) []TimeRange {
	if wh == nil || !wh.IsOpen {
		return nil
	}
	if sched == nil || !sched.IsWorking {
		return nil
	}

	// Эффективное окно: пересечение часов салона и мастера
	from := wh.OpenTime
	if sched.StartTime.IsAfter(from) {
		from = sched.StartTime
	}
	to := wh.CloseTime
	if sched.EndTime.IsBefore(to) {
		to = sched.EndTime
	}
	if !from.IsBefore(to) {
		return nil
	}

	if sched.BreakStart == nil || sched.BreakEnd == nil {
		return []TimeRange{{From: from, To: to}}
	}

	return subtractBreak(TimeRange{From: from, To: to}, *sched.BreakStart, *sched.BreakEnd)
}

// subtractBreak вычитает перерыв из рабочего интервала,
// возвращая до двух оставшихся под-интервалов
func subtractBreak(window TimeRange, breakStart, breakEnd types.TimeString) []TimeRange {
	// Перерыв вне окна не меняет окно
	if !breakStart.IsBefore(window.To) || !breakEnd.IsAfter(window.From) {
		return []TimeRange{window}
	}

	ranges := make([]TimeRange, 0, 2)
	if window.From.IsBefore(breakStart) {
		ranges = append(ranges, TimeRange{From: window.From, To: breakStart})
	}
	if breakEnd.IsBefore(window.To) {
		ranges = append(ranges, TimeRange{From: breakEnd, To: window.To})
	}
	return ranges
}
