package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
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
	staff    map[int64]*domain.Staff
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetVariant(_ context.Context, _, variantID int64) (*domain.ServiceVariant, error) {
	v, ok := f.variants[variantID]
	if !ok {
		return nil, catalogRepo.ErrVariantNotFound
	}
	return v, nil
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, _, staffID int64) (*domain.Staff, error) {
	s, ok := f.staff[staffID]
	if !ok {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return s, nil
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

func newTestUseCase(av *fakeAvailability, now time.Time) *UseCase {
	salons := &fakeSalonRepo{salons: map[string]*domain.Salon{
		"beauty-bar": {ID: 1, Slug: "beauty-bar", Name: "Beauty Bar", Timezone: "Europe/Moscow"},
	}}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			10: {ID: 10, SalonID: 1, Name: "Стрижка", DurationMinutes: 60, BufferAfterMinutes: 15, Price: 1500, IsActive: true, OnlineBookingEnabled: true},
			11: {ID: 11, SalonID: 1, Name: "Окрашивание", DurationMinutes: 120, Price: 4000, IsActive: true, OnlineBookingEnabled: false},
			12: {ID: 12, SalonID: 1, Name: "Архивная услуга", DurationMinutes: 30, Price: 700, IsActive: false, OnlineBookingEnabled: true},
		},
		variants: map[int64]*domain.ServiceVariant{
			100: {ID: 100, ServiceID: 10, Name: "Длинные волосы", DurationMinutes: 90, Price: 2000},
		},
		staff: map[int64]*domain.Staff{
			5: {ID: 5, SalonID: 1, Name: "Анна", IsActive: true},
			6: {ID: 6, SalonID: 1, Name: "Мария", IsActive: false},
		},
	}

	uc := NewUseCase(salons, catalog, av, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

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

func TestExecute_ReturnsSlots(t *testing.T) {
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	av := &fakeAvailability{}
	uc := newTestUseCase(av, now)
	av.slots = mustSlots(t, "09:00", "10:15", "11:30")

	resp, err := uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		ServiceID: 10,
		StaffID:   5,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, av.slots, resp.Slots)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 1500.0, resp.Price)
	assert.Equal(t, now, av.lastQuery.Now)
}

func TestExecute_VariantOverridesDurationAndPrice(t *testing.T) {
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	av := &fakeAvailability{}
	uc := newTestUseCase(av, now)
	variantID := int64(100)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonSlug: "beauty-bar",
		ServiceID: 10,
		VariantID: &variantID,
		StaffID:   5,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 2000.0, resp.Price)
	require.NotNil(t, av.lastQuery.Variant)
	assert.Equal(t, variantID, av.lastQuery.Variant.ID)
}

func TestExecute_EntityChecks(t *testing.T) {
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	badVariant := int64(999)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"салон не найден", &Request{SalonSlug: "ghost", ServiceID: 10, StaffID: 5, Date: date}, ErrSalonNotFound},
		{"услуга не найдена", &Request{SalonSlug: "beauty-bar", ServiceID: 999, StaffID: 5, Date: date}, ErrServiceNotFound},
		{"онлайн-запись выключена", &Request{SalonSlug: "beauty-bar", ServiceID: 11, StaffID: 5, Date: date}, ErrServiceUnavailable},
		{"неактивная услуга", &Request{SalonSlug: "beauty-bar", ServiceID: 12, StaffID: 5, Date: date}, ErrServiceUnavailable},
		{"вариант не найден", &Request{SalonSlug: "beauty-bar", ServiceID: 10, VariantID: &badVariant, StaffID: 5, Date: date}, ErrVariantNotFound},
		{"мастер не найден", &Request{SalonSlug: "beauty-bar", ServiceID: 10, StaffID: 999, Date: date}, ErrStaffNotFound},
		{"неактивный мастер", &Request{SalonSlug: "beauty-bar", ServiceID: 10, StaffID: 6, Date: date}, ErrStaffNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAvailability{}, now)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_WindowErrors(t *testing.T) {
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		availErr error
		wantErr  error
	}{
		{"дата в прошлом", availability.ErrDateInPast, ErrInvalidDate},
		{"дата за горизонтом", availability.ErrDateTooFar, ErrDateTooFarInFuture},
		{"некорректная зона", availability.ErrInvalidTimezone, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAvailability{err: tt.availErr}, now)
			_, err := uc.Execute(context.Background(), &Request{
				SalonSlug: "beauty-bar",
				ServiceID: 10,
				StaffID:   5,
				Date:      date,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
