package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Service вычисление доступности: календарные правила, генерация слотов
// и проверка занятости. Используется виджетом (список слотов, серые даты),
// созданием hold'а и переносом бронирования.
type Service struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	holdRepo     HoldRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	holdRepo HoldRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		holdRepo:     holdRepo,
		logger:       logger,
	}
}

// SlotQuery параметры вычисления доступности одного дня
type SlotQuery struct {
	Salon   *domain.Salon
	Service *domain.Service
	Variant *domain.ServiceVariant // nil, если вариант не выбран
	StaffID int64
	Date    time.Time // Календарный день (время игнорируется)
	Now     time.Time // Текущий момент, передаётся вызывающим

	// ExcludeBookingID исключает бронирование из проверки занятости
	// (собственная строка при переносе)
	ExcludeBookingID *int64
}

// slotLength возвращает полную длину слота в минутах: длительность
// услуги (вариант авторитетнее) плюс buffer_after
func (q *SlotQuery) slotLength() int {
	return q.Service.EffectiveDuration(q.Variant) + q.Service.BufferAfterMinutes
}

// DaySlots возвращает упорядоченный список времён начала ("HH:MM"),
// доступных для бронирования в указанный день.
// Слоты идут встык: шаг генерации равен длительность + buffer_after,
// тот же шаг используется в UnavailableDates.
func (s *Service) DaySlots(ctx context.Context, q SlotQuery) ([]types.TimeString, error) {
	loc, err := time.LoadLocation(q.Salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, q.Salon.Timezone, err)
	}

	if err := s.validateDateWindow(q, loc); err != nil {
		return nil, err
	}

	openRanges, err := s.OpenRanges(ctx, q.Salon, q.StaffID, q.Date, loc)
	if err != nil {
		return nil, err
	}
	if len(openRanges) == 0 {
		return []types.TimeString{}, nil
	}

	occupied, err := s.occupiedIntervals(ctx, q, loc)
	if err != nil {
		return nil, err
	}

	candidates, err := generateCandidates(openRanges, q.slotLength())
	if err != nil {
		return nil, fmt.Errorf("%w: generate candidates: %v", ErrInternal, err)
	}

	minStart := q.Now.Add(time.Duration(q.Service.EffectiveMinAdvanceHours()) * time.Hour)
	slotLen := time.Duration(q.slotLength()) * time.Minute

	slots := make([]types.TimeString, 0, len(candidates))
	for _, candidate := range candidates {
		start, err := candidate.At(q.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: materialize candidate: %v", ErrInternal, err)
		}

		// min_advance_hours проверяется на каждом кандидате, а не только
		// на дне: граница может приходиться на середину дня
		if start.Before(minStart) {
			continue
		}

		interval := domain.Interval{Start: start, End: start.Add(slotLen)}
		if interval.ConflictsWithAny(occupied) {
			continue
		}

		slots = append(slots, candidate)
	}

	return slots, nil
}

// UnavailableDates возвращает даты ("YYYY-MM-DD") в диапазоне [from, to],
// на которые нет ни одного доступного слота. Используется виджетом,
// чтобы серить дни в календаре. Считается тем же кодом, что и DaySlots,
// поэтому всегда согласуется с детальным представлением дня.
func (s *Service) UnavailableDates(ctx context.Context, q SlotQuery, from, to time.Time) ([]string, error) {
	loc, err := time.LoadLocation(q.Salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, q.Salon.Timezone, err)
	}

	unavailable := make([]string, 0)
	for day := dateOnly(from, loc); !day.After(dateOnly(to, loc)); day = day.AddDate(0, 0, 1) {
		dayQuery := q
		dayQuery.Date = day

		slots, err := s.DaySlots(ctx, dayQuery)
		switch {
		case err == nil:
			if len(slots) == 0 {
				unavailable = append(unavailable, day.Format(domain.DateFormat))
			}
		// Дни вне окна бронирования для диапазонного запроса не ошибка,
		// а просто недоступные дни
		case isWindowError(err):
			unavailable = append(unavailable, day.Format(domain.DateFormat))
		default:
			return nil, err
		}
	}

	return unavailable, nil
}

// CheckSlot проверяет конкретное время начала и возвращает абсолютный
// интервал слота. Применяет те же правила, что и DaySlots: окно
// бронирования, рабочие часы и предикат пересечения занятости.
func (s *Service) CheckSlot(ctx context.Context, q SlotQuery, start types.TimeString) (domain.Interval, error) {
	loc, err := time.LoadLocation(q.Salon.Timezone)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, q.Salon.Timezone, err)
	}

	if err := s.validateDateWindow(q, loc); err != nil {
		return domain.Interval{}, err
	}

	slotLen := q.slotLength()
	end, err := start.AddMinutes(slotLen)
	if err != nil {
		return domain.Interval{}, ErrOutsideWorkingHours
	}

	openRanges, err := s.OpenRanges(ctx, q.Salon, q.StaffID, q.Date, loc)
	if err != nil {
		return domain.Interval{}, err
	}

	// Интервал должен целиком помещаться в один открытый под-интервал
	fits := false
	for _, r := range openRanges {
		if !start.IsBefore(r.From) && !end.IsAfter(r.To) {
			fits = true
			break
		}
	}
	if !fits {
		return domain.Interval{}, ErrOutsideWorkingHours
	}

	absStart, err := start.At(q.Date, loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: materialize start: %v", ErrInternal, err)
	}

	minStart := q.Now.Add(time.Duration(q.Service.EffectiveMinAdvanceHours()) * time.Hour)
	if absStart.Before(minStart) {
		return domain.Interval{}, ErrTooEarly
	}

	interval := domain.Interval{
		Start: absStart,
		End:   absStart.Add(time.Duration(slotLen) * time.Minute),
	}

	occupied, err := s.occupiedIntervals(ctx, q, loc)
	if err != nil {
		return domain.Interval{}, err
	}

	if interval.ConflictsWithAny(occupied) {
		return domain.Interval{}, ErrSlotTaken
	}

	return interval, nil
}

// OpenRanges вычисляет открытые под-интервалы дня мастера:
// рабочие часы салона ∩ расписание мастера − перерыв,
// с учётом блокировок даты (общесалонных и персональных)
func (s *Service) OpenRanges(
	ctx context.Context,
	salon *domain.Salon,
	staffID int64,
	date time.Time,
	loc *time.Location,
) ([]domain.TimeRange, error) {
	day := dateOnly(date, loc)
	weekday := int(day.Weekday())

	wh, err := s.scheduleRepo.GetWorkingHours(ctx, salon.ID, weekday)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("%w: get working hours: %v", ErrInternal, err)
	}

	sched, err := s.scheduleRepo.GetStaffSchedule(ctx, staffID, weekday)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("%w: get staff schedule: %v", ErrInternal, err)
	}

	ranges := domain.OpenRanges(wh, sched)
	if len(ranges) == 0 {
		return nil, nil
	}

	// Блокировка даты отменяет рабочие часы и расписание целиком
	blocked, err := s.scheduleRepo.GetBlockedDates(ctx, salon.ID, staffID, day, day)
	if err != nil {
		return nil, fmt.Errorf("%w: get blocked dates: %v", ErrInternal, err)
	}
	for _, bd := range blocked {
		if bd.CoversStaff(staffID) {
			return nil, nil
		}
	}

	return ranges, nil
}

// occupiedIntervals загружает занятые интервалы дня: активные бронирования
// (за вычетом исключённого ID) и живые hold'ы
func (s *Service) occupiedIntervals(ctx context.Context, q SlotQuery, loc *time.Location) ([]domain.Interval, error) {
	dayStart := dateOnly(q.Date, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.bookingRepo.GetActiveByStaffAndRange(ctx, q.StaffID, dayStart, dayEnd, q.ExcludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: get bookings: %v", ErrInternal, err)
	}

	holds, err := s.holdRepo.GetActiveByStaffAndRange(ctx, q.StaffID, dayStart, dayEnd, q.Now)
	if err != nil {
		return nil, fmt.Errorf("%w: get holds: %v", ErrInternal, err)
	}

	occupied := make([]domain.Interval, 0, len(bookings)+len(holds))
	for _, b := range bookings {
		occupied = append(occupied, b.Interval())
	}
	for _, h := range holds {
		occupied = append(occupied, h.Interval())
	}

	return occupied, nil
}

// validateDateWindow проверяет окно бронирования услуги для дня запроса:
// день не в прошлом относительно min_advance и не дальше max_advance_days
func (s *Service) validateDateWindow(q SlotQuery, loc *time.Location) error {
	dayStart := dateOnly(q.Date, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Если весь день раньше минимального времени начала, слотов не будет
	minStart := q.Now.Add(time.Duration(q.Service.EffectiveMinAdvanceHours()) * time.Hour)
	if !dayEnd.After(minStart) {
		return ErrDateInPast
	}

	maxDay := dateOnly(q.Now.In(loc), loc).AddDate(0, 0, q.Service.EffectiveMaxAdvanceDays())
	if dayStart.After(maxDay) {
		return ErrDateTooFar
	}

	return nil
}

// generateCandidates генерирует кандидатов начала слота: в каждом открытом
// под-интервале от его начала с шагом step, пока слот целиком помещается
func generateCandidates(openRanges []domain.TimeRange, step int) ([]types.TimeString, error) {
	candidates := make([]types.TimeString, 0)

	for _, r := range openRanges {
		current := r.From
		for {
			end, err := current.AddMinutes(step)
			if err != nil || end.IsAfter(r.To) {
				break
			}

			candidates = append(candidates, current)

			current, err = current.AddMinutes(step)
			if err != nil {
				break
			}
		}
	}

	return candidates, nil
}

// dateOnly обнуляет время, оставляя календарный день в локации loc
func dateOnly(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// isWindowError возвращает true для ошибок окна бронирования
func isWindowError(err error) bool {
	return errors.Is(err, ErrDateInPast) || errors.Is(err, ErrDateTooFar)
}

// isNotFound возвращает true для ошибок "запись не найдена" репозитория
// расписаний: отсутствие строки означает закрытый день, не сбой
func isNotFound(err error) bool {
	return errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) ||
		errors.Is(err, scheduleRepo.ErrStaffScheduleNotFound)
}
