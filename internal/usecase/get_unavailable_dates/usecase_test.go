package get_unavailable_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
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
	staff    map[int64]*domain.Staff
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	return f.services[serviceID], nil
}

func (f *fakeCatalogRepo) GetVariant(_ context.Context, _, _ int64) (*domain.ServiceVariant, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, _, staffID int64) (*domain.Staff, error) {
	return f.staff[staffID], nil
}

type fakeAvailability struct {
	dates    []string
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeAvailability) UnavailableDates(_ context.Context, _ availability.SlotQuery, from, to time.Time) ([]string, error) {
	f.lastFrom = from
	f.lastTo = to
	return f.dates, nil
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

func newTestUseCase(av *fakeAvailability) *UseCase {
	salons := &fakeSalonRepo{salons: map[string]*domain.Salon{
		"beauty-bar": {ID: 1, Slug: "beauty-bar", Name: "Beauty Bar", Timezone: "Europe/Moscow"},
	}}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			10: {ID: 10, SalonID: 1, Name: "Стрижка", DurationMinutes: 60, Price: 1500, IsActive: true, OnlineBookingEnabled: true},
		},
		staff: map[int64]*domain.Staff{
			5: {ID: 5, SalonID: 1, Name: "Анна", IsActive: true},
		},
	}

	uc := NewUseCase(salons, catalog, av, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_ReturnsUnavailableDates(t *testing.T) {
	av := &fakeAvailability{dates: []string{"2026-09-14", "2026-09-20"}}
	uc := newTestUseCase(av)

	from := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		ServiceID: 10,
		StaffID:   5,
		FromDate:  from,
		ToDate:    to,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-09-14", "2026-09-20"}, resp.UnavailableDates)
	assert.Equal(t, from, av.lastFrom)
	assert.Equal(t, to, av.lastTo)
}

func TestExecute_PeriodValidation(t *testing.T) {
	from := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
	}{
		{"конец раньше начала", from.AddDate(0, 0, -1)},
		{"период длиннее трёх месяцев", from.AddDate(0, 0, maxPeriodDays+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAvailability{})
			_, err := uc.Execute(context.Background(), &Request{
				SalonSlug: "beauty-bar",
				ServiceID: 10,
				StaffID:   5,
				FromDate:  from,
				ToDate:    tt.to,
			})
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}
