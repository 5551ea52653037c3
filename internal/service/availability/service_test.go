package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	scheduleStorage "github.com/m04kA/Salon-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type fakeScheduleRepo struct {
	wh      *domain.WorkingHours
	sched   *domain.StaffSchedule
	blocked []*domain.BlockedDate
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64, _ int) (*domain.WorkingHours, error) {
	if f.wh == nil {
		return nil, scheduleStorage.ErrWorkingHoursNotFound
	}
	return f.wh, nil
}

func (f *fakeScheduleRepo) GetStaffSchedule(_ context.Context, _ int64, _ int) (*domain.StaffSchedule, error) {
	if f.sched == nil {
		return nil, scheduleStorage.ErrStaffScheduleNotFound
	}
	return f.sched, nil
}

func (f *fakeScheduleRepo) GetBlockedDates(_ context.Context, _, staffID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	out := make([]*domain.BlockedDate, 0)
	for _, bd := range f.blocked {
		if bd.Date.Before(from) || bd.Date.After(to) {
			continue
		}
		if !bd.CoversStaff(staffID) {
			continue
		}
		out = append(out, bd)
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByStaffAndRange(_ context.Context, staffID int64, from, to time.Time, excludeBookingID *int64) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.StaffID != staffID || !b.IsActive() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if !b.StartTime.Before(to) || !from.Before(b.EndTime) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeHoldRepo struct {
	holds []*domain.SlotHold
}

func (f *fakeHoldRepo) GetActiveByStaffAndRange(_ context.Context, staffID int64, from, to time.Time, now time.Time) ([]*domain.SlotHold, error) {
	out := make([]*domain.SlotHold, 0)
	for _, h := range f.holds {
		if h.StaffID != staffID || h.IsExpired(now) {
			continue
		}
		if !h.StartTime.Before(to) || !from.Before(h.EndTime) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func fullDaySchedule(t *testing.T) *fakeScheduleRepo {
	t.Helper()
	return &fakeScheduleRepo{
		wh: &domain.WorkingHours{
			SalonID:   1,
			OpenTime:  ts(t, "09:00"),
			CloseTime: ts(t, "18:00"),
			IsOpen:    true,
		},
		sched: &domain.StaffSchedule{
			StaffID:   10,
			StartTime: ts(t, "09:00"),
			EndTime:   ts(t, "18:00"),
			IsWorking: true,
		},
	}
}

func testSalon() *domain.Salon {
	return &domain.Salon{ID: 1, Slug: "test-salon", Timezone: "Europe/Moscow"}
}

func testQuery(t *testing.T, svc *domain.Service) SlotQuery {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	return SlotQuery{
		Salon:   testSalon(),
		Service: svc,
		StaffID: 10,
		Date:    date,
		Now:     date.AddDate(0, 0, -2),
	}
}

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func TestDaySlots_BackToBack(t *testing.T) {
	svc := NewService(fullDaySchedule(t), &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})
	q := testQuery(t, &domain.Service{DurationMinutes: 60, BufferAfterMinutes: 15})

	slots, err := svc.DaySlots(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t,
		[]string{"09:00", "10:15", "11:30", "12:45", "14:00", "15:15", "16:30"},
		slotStrings(slots),
	)

	// Каждый слот целиком помещается до закрытия
	for _, s := range slots {
		end, err := s.AddMinutes(75)
		require.NoError(t, err)
		assert.False(t, end.IsAfter(ts(t, "18:00")), "slot %s overruns closing time", s)
	}
}

func TestDaySlots_BreakSplitsDay(t *testing.T) {
	repo := fullDaySchedule(t)
	repo.sched.BreakStart = ptr.Ptr(ts(t, "13:00"))
	repo.sched.BreakEnd = ptr.Ptr(ts(t, "14:00"))

	svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})
	q := testQuery(t, &domain.Service{DurationMinutes: 30})

	slots, err := svc.DaySlots(context.Background(), q)

	require.NoError(t, err)
	got := slotStrings(slots)
	assert.Contains(t, got, "12:30")
	assert.Contains(t, got, "14:00")
	for _, s := range got {
		assert.False(t, s > "12:30" && s < "14:00", "slot %s overlaps the break", s)
	}
}

func TestDaySlots_MinAdvanceMidDay(t *testing.T) {
	svc := NewService(fullDaySchedule(t), &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})
	q := testQuery(t, &domain.Service{DurationMinutes: 30, MinAdvanceHours: ptr.Ptr(2)})

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	// Запрос "на сегодня" в 10:30: раньше 12:30 начинать нельзя
	q.Now = time.Date(2026, 9, 14, 10, 30, 0, 0, loc)

	slots, err := svc.DaySlots(context.Background(), q)

	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "12:30", slots[0].String())
	for _, s := range slotStrings(slots) {
		assert.GreaterOrEqual(t, s, "12:30")
	}
}

func TestDaySlots_ClosedDay(t *testing.T) {
	repo := fullDaySchedule(t)
	repo.wh.IsOpen = false

	svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	slots, err := svc.DaySlots(context.Background(), testQuery(t, &domain.Service{DurationMinutes: 30}))

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlots_NoWorkingHoursRow(t *testing.T) {
	// Отсутствие строки рабочих часов означает закрытый день, не ошибку
	svc := NewService(&fakeScheduleRepo{}, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	slots, err := svc.DaySlots(context.Background(), testQuery(t, &domain.Service{DurationMinutes: 30}))

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlots_StaffNotWorking(t *testing.T) {
	repo := fullDaySchedule(t)
	repo.sched.IsWorking = false

	svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	slots, err := svc.DaySlots(context.Background(), testQuery(t, &domain.Service{DurationMinutes: 30}))

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlots_StaffHoursNarrowerThanSalon(t *testing.T) {
	repo := fullDaySchedule(t)
	repo.sched.StartTime = ts(t, "10:00")
	repo.sched.EndTime = ts(t, "14:00")

	svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	slots, err := svc.DaySlots(context.Background(), testQuery(t, &domain.Service{DurationMinutes: 60}))

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, slotStrings(slots))
}

func TestDaySlots_BlockedDate(t *testing.T) {
	q := testQuery(t, &domain.Service{DurationMinutes: 30})

	tests := []struct {
		name    string
		staffID *int64
		empty   bool
	}{
		{name: "salon wide block", staffID: nil, empty: true},
		{name: "block for this staff", staffID: ptr.Ptr(int64(10)), empty: true},
		{name: "block for another staff", staffID: ptr.Ptr(int64(99)), empty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fullDaySchedule(t)
			repo.blocked = []*domain.BlockedDate{{
				SalonID: 1,
				StaffID: tt.staffID,
				Date:    q.Date,
			}}

			svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

			slots, err := svc.DaySlots(context.Background(), q)

			require.NoError(t, err)
			if tt.empty {
				assert.Empty(t, slots)
			} else {
				assert.NotEmpty(t, slots)
			}
		})
	}
}

func TestDaySlots_OccupiedIntervals(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	q := testQuery(t, &domain.Service{DurationMinutes: 60, BufferAfterMinutes: 15})
	at := func(hh, mm int) time.Time {
		return time.Date(2026, 9, 14, hh, mm, 0, 0, loc)
	}

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, StaffID: 10, StartTime: at(10, 15), EndTime: at(11, 30), Status: domain.StatusConfirmed},
		// Отменённое бронирование интервал не занимает
		{ID: 2, StaffID: 10, StartTime: at(14, 0), EndTime: at(15, 15), Status: domain.StatusCancelled},
	}}
	holds := &fakeHoldRepo{holds: []*domain.SlotHold{
		{ID: 1, StaffID: 10, StartTime: at(15, 15), EndTime: at(16, 30), ExpiresAt: q.Now.Add(5 * time.Minute)},
		// Истёкший hold инертен
		{ID: 2, StaffID: 10, StartTime: at(9, 0), EndTime: at(10, 15), ExpiresAt: q.Now.Add(-time.Minute)},
	}}

	svc := NewService(fullDaySchedule(t), bookings, holds, nopLogger{})

	slots, err := svc.DaySlots(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:30", "12:45", "14:00", "16:30"}, slotStrings(slots))
}

func TestDaySlots_ExcludeBookingID(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	q := testQuery(t, &domain.Service{DurationMinutes: 60, BufferAfterMinutes: 15})
	q.ExcludeBookingID = ptr.Ptr(int64(1))

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:        1,
		StaffID:   10,
		StartTime: time.Date(2026, 9, 14, 10, 15, 0, 0, loc),
		EndTime:   time.Date(2026, 9, 14, 11, 30, 0, 0, loc),
		Status:    domain.StatusConfirmed,
	}}}

	svc := NewService(fullDaySchedule(t), bookings, &fakeHoldRepo{}, nopLogger{})

	slots, err := svc.DaySlots(context.Background(), q)

	require.NoError(t, err)
	assert.Contains(t, slotStrings(slots), "10:15")
}

func TestDaySlots_VariantDurationAuthoritative(t *testing.T) {
	svc := NewService(fullDaySchedule(t), &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})
	q := testQuery(t, &domain.Service{DurationMinutes: 30, BufferAfterMinutes: 15})
	q.Variant = &domain.ServiceVariant{ID: 5, DurationMinutes: 90}

	slots, err := svc.DaySlots(context.Background(), q)

	require.NoError(t, err)
	// Шаг 90 + 15 = 105 минут
	assert.Equal(t, []string{"09:00", "10:45", "12:30", "14:15", "16:00"}, slotStrings(slots))
}

func TestDaySlots_WindowErrors(t *testing.T) {
	svc := NewService(fullDaySchedule(t), &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	t.Run("date in past", func(t *testing.T) {
		q := testQuery(t, &domain.Service{DurationMinutes: 30})
		q.Now = q.Date.AddDate(0, 0, 3)

		_, err := svc.DaySlots(context.Background(), q)

		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("date too far", func(t *testing.T) {
		q := testQuery(t, &domain.Service{DurationMinutes: 30, MaxAdvanceDays: ptr.Ptr(7)})
		q.Now = q.Date.AddDate(0, 0, -30)

		_, err := svc.DaySlots(context.Background(), q)

		assert.ErrorIs(t, err, ErrDateTooFar)
	})

	t.Run("default horizon is 90 days", func(t *testing.T) {
		q := testQuery(t, &domain.Service{DurationMinutes: 30})
		q.Now = q.Date.AddDate(0, 0, -91)

		_, err := svc.DaySlots(context.Background(), q)

		assert.ErrorIs(t, err, ErrDateTooFar)
	})
}

func TestDaySlots_InvalidTimezone(t *testing.T) {
	svc := NewService(fullDaySchedule(t), &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})
	q := testQuery(t, &domain.Service{DurationMinutes: 30})
	q.Salon.Timezone = "Mars/Olympus"

	_, err := svc.DaySlots(context.Background(), q)

	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestDaySlots_DSTSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 29.03.2026 стрелки переводятся на час вперёд: после перехода зона UTC+2
	repo := fullDaySchedule(t)
	svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	date := time.Date(2026, 3, 29, 0, 0, 0, 0, loc)
	q := SlotQuery{
		Salon:   &domain.Salon{ID: 1, Slug: "berlin", Timezone: "Europe/Berlin"},
		Service: &domain.Service{DurationMinutes: 60},
		StaffID: 10,
		Date:    date,
		Now:     date.AddDate(0, 0, -1),
	}

	interval, err := svc.CheckSlot(context.Background(), q, ts(t, "09:00"))

	require.NoError(t, err)
	assert.Equal(t, 7, interval.Start.UTC().Hour())
	assert.Equal(t, time.Hour, interval.End.Sub(interval.Start))
}

func TestCheckSlot(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	at := func(hh, mm int) time.Time {
		return time.Date(2026, 9, 14, hh, mm, 0, 0, loc)
	}

	newSvc := func(bookings []*domain.Booking) *Service {
		return NewService(fullDaySchedule(t), &fakeBookingRepo{bookings: bookings}, &fakeHoldRepo{}, nopLogger{})
	}
	baseQuery := func() SlotQuery {
		return testQuery(t, &domain.Service{DurationMinutes: 60, BufferAfterMinutes: 15})
	}

	t.Run("ok", func(t *testing.T) {
		interval, err := newSvc(nil).CheckSlot(context.Background(), baseQuery(), ts(t, "10:15"))

		require.NoError(t, err)
		assert.Equal(t, at(10, 15), interval.Start)
		assert.Equal(t, at(11, 30), interval.End)
	})

	t.Run("outside working hours", func(t *testing.T) {
		_, err := newSvc(nil).CheckSlot(context.Background(), baseQuery(), ts(t, "17:30"))

		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("too early", func(t *testing.T) {
		q := baseQuery()
		q.Service.MinAdvanceHours = ptr.Ptr(2)
		q.Now = at(10, 30)

		_, err := newSvc(nil).CheckSlot(context.Background(), q, ts(t, "11:00"))

		assert.ErrorIs(t, err, ErrTooEarly)
	})

	t.Run("taken", func(t *testing.T) {
		bookings := []*domain.Booking{{
			ID: 1, StaffID: 10,
			StartTime: at(10, 0), EndTime: at(11, 15),
			Status: domain.StatusPending,
		}}

		_, err := newSvc(bookings).CheckSlot(context.Background(), baseQuery(), ts(t, "11:00"))

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("touching boundary is compatible", func(t *testing.T) {
		bookings := []*domain.Booking{{
			ID: 1, StaffID: 10,
			StartTime: at(9, 0), EndTime: at(10, 15),
			Status: domain.StatusConfirmed,
		}}

		interval, err := newSvc(bookings).CheckSlot(context.Background(), baseQuery(), ts(t, "10:15"))

		require.NoError(t, err)
		assert.Equal(t, at(10, 15), interval.Start)
	})

	t.Run("does not fit across break", func(t *testing.T) {
		repo := fullDaySchedule(t)
		repo.sched.BreakStart = ptr.Ptr(ts(t, "13:00"))
		repo.sched.BreakEnd = ptr.Ptr(ts(t, "14:00"))
		svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

		_, err := svc.CheckSlot(context.Background(), baseQuery(), ts(t, "12:30"))

		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})
}

func TestUnavailableDates_ConsistentWithDaySlots(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	repo := fullDaySchedule(t)
	repo.blocked = []*domain.BlockedDate{{
		SalonID: 1,
		Date:    time.Date(2026, 9, 15, 0, 0, 0, 0, loc),
	}}

	svc := NewService(repo, &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})
	q := testQuery(t, &domain.Service{DurationMinutes: 60})

	from := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)
	to := time.Date(2026, 9, 16, 0, 0, 0, 0, loc)

	unavailable, err := svc.UnavailableDates(context.Background(), q, from, to)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-15"}, unavailable)

	// Каждый день диапазона согласован с детальным представлением
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayQuery := q
		dayQuery.Date = day

		slots, err := svc.DaySlots(context.Background(), dayQuery)
		require.NoError(t, err)

		marked := false
		for _, d := range unavailable {
			if d == day.Format(domain.DateFormat) {
				marked = true
			}
		}
		assert.Equal(t, marked, len(slots) == 0, "day %s", day.Format(domain.DateFormat))
	}
}

func TestUnavailableDates_OutOfWindowDaysMarked(t *testing.T) {
	svc := NewService(fullDaySchedule(t), &fakeBookingRepo{}, &fakeHoldRepo{}, nopLogger{})

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	q := testQuery(t, &domain.Service{DurationMinutes: 60, MaxAdvanceDays: ptr.Ptr(1)})
	q.Now = time.Date(2026, 9, 14, 12, 0, 0, 0, loc)

	from := time.Date(2026, 9, 13, 0, 0, 0, 0, loc)
	to := time.Date(2026, 9, 17, 0, 0, 0, 0, loc)

	unavailable, err := svc.UnavailableDates(context.Background(), q, from, to)

	require.NoError(t, err)
	// Вчера и дни за горизонтом недоступны, сегодня и завтра открыты
	assert.Equal(t, []string{"2026-09-13", "2026-09-16", "2026-09-17"}, unavailable)
}
