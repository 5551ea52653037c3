package get_reschedule_options

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type fakeSalonRepo struct {
	salons map[string]*domain.Salon
}

func (f *fakeSalonRepo) GetBySlug(_ context.Context, slug string) (*domain.Salon, error) {
	s, ok := f.salons[slug]
	if !ok {
		return nil, salonRepo.ErrSalonNotFound
	}
	return s, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
	variants map[int64]*domain.ServiceVariant
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	return f.services[serviceID], nil
}

func (f *fakeCatalogRepo) GetVariant(_ context.Context, _, variantID int64) (*domain.ServiceVariant, error) {
	return f.variants[variantID], nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByRescheduleToken(_ context.Context, salonID int64, token string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.SalonID != salonID || b.RescheduleToken == nil {
			continue
		}
		if *b.RescheduleToken == token {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type fakeAvailability struct {
	slots     []types.TimeString
	err       error
	lastQuery availability.SlotQuery
}

func (f *fakeAvailability) DaySlots(_ context.Context, q availability.SlotQuery) ([]types.TimeString, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustSlots(t *testing.T, raw ...string) []types.TimeString {
	t.Helper()
	out := make([]types.TimeString, len(raw))
	for i, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		require.NoError(t, err)
		out[i] = ts
	}
	return out
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	av       *fakeAvailability
	now      time.Time
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	now := time.Date(2026, 9, 12, 10, 0, 0, 0, loc)

	salons := &fakeSalonRepo{salons: map[string]*domain.Salon{
		"beauty-bar": {ID: 1, Slug: "beauty-bar", Name: "Beauty Bar", Timezone: "Europe/Moscow", OwnerEmail: "owner@beauty-bar.ru"},
	}}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			10: {ID: 10, SalonID: 1, Name: "Стрижка", DurationMinutes: 60, BufferAfterMinutes: 15, Price: 1500, IsActive: true, OnlineBookingEnabled: true},
		},
	}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:              77,
		SalonID:         1,
		ServiceID:       10,
		StaffID:         5,
		StartTime:       time.Date(2026, 9, 14, 10, 15, 0, 0, loc),
		EndTime:         time.Date(2026, 9, 14, 11, 30, 0, 0, loc),
		Status:          domain.StatusConfirmed,
		ServiceName:     "Стрижка",
		DurationMinutes: 60,
		ServicePrice:    1500,
		ClientName:      "Ольга Петрова",
		RescheduleToken: ptr.Ptr("reschedule-token"),
	}}}
	av := &fakeAvailability{}

	uc := NewUseCase(salons, catalog, bookings, av, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	return &fixture{uc: uc, bookings: bookings, av: av, now: now, loc: loc}
}

func TestExecute_ReturnsBookingSummary(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		Token:     "reschedule-token",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.Booking.ServiceID)
	assert.Equal(t, int64(5), resp.Booking.StaffID)
	assert.Equal(t, "Стрижка", resp.Booking.ServiceName)
	assert.Equal(t, 60, resp.Booking.DurationMinutes)
	assert.Equal(t, 1500.0, resp.Booking.Price)
	assert.Equal(t, "2026-09-14", resp.Booking.Date)
	assert.Equal(t, "10:15", resp.Booking.StartTime)

	// Без даты слоты не считаются
	assert.Nil(t, resp.Slots)
}

func TestExecute_ComputesSlotsForDate(t *testing.T) {
	f := newFixture(t)
	f.av.slots = mustSlots(t, "09:00", "12:30", "14:00")

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	resp, err := f.uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		Token:     "reschedule-token",
		Date:      &date,
	})
	require.NoError(t, err)

	assert.Equal(t, f.av.slots, resp.Slots)

	// Собственный интервал исключается из занятости, иначе перенос
	// на соседнее время того же дня был бы невозможен
	require.NotNil(t, f.av.lastQuery.ExcludeBookingID)
	assert.Equal(t, int64(77), *f.av.lastQuery.ExcludeBookingID)
	assert.Equal(t, f.now, f.av.lastQuery.Now)
}

func TestExecute_WindowErrorsYieldEmptySlots(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"дата в прошлом", availability.ErrDateInPast},
		{"дата за горизонтом", availability.ErrDateTooFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.av.err = tt.err

			date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
			resp, err := f.uc.Execute(context.Background(), &Request{
				SalonSlug: "beauty-bar",
				Token:     "reschedule-token",
				Date:      &date,
			})
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_Eligibility(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *domain.Booking)
		wantErr error
	}{
		{"уже перенесено", func(b *domain.Booking) { b.WasRescheduled = true }, ErrAlreadyRescheduled},
		{"отменено", func(b *domain.Booking) { b.Status = domain.StatusCancelled }, ErrWrongStatus},
		{"завершено", func(b *domain.Booking) { b.Status = domain.StatusCompleted }, ErrWrongStatus},
		{"неявка", func(b *domain.Booking) { b.Status = domain.StatusNoShow }, ErrWrongStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f.bookings.bookings[0])

			_, err := f.uc.Execute(context.Background(), &Request{
				SalonSlug: "beauty-bar",
				Token:     "reschedule-token",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TooLate(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings[0].StartTime = f.now.Add(-2 * time.Hour)

	_, err := f.uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		Token:     "reschedule-token",
	})
	assert.ErrorIs(t, err, ErrTooLate)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		Token:     "guessed-token",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{
		SalonSlug: "ghost",
		Token:     "reschedule-token",
	})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
