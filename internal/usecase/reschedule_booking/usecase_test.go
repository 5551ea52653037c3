package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/integrations/captcha"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
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
	staff    map[int64]*domain.Staff
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	return f.services[serviceID], nil
}

func (f *fakeCatalogRepo) GetVariant(_ context.Context, _, variantID int64) (*domain.ServiceVariant, error) {
	return f.variants[variantID], nil
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, _, staffID int64) (*domain.Staff, error) {
	return f.staff[staffID], nil
}

// fakeBookingRepo воспроизводит семантику одноразового токена:
// Reschedule обнуляет токен и помечает was_rescheduled
type fakeBookingRepo struct {
	bookings      []*domain.Booking
	rescheduleErr error
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

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, newStart, newEnd time.Time) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	for _, b := range f.bookings {
		if b.ID != id || b.WasRescheduled || !b.IsActive() {
			continue
		}
		b.OriginalStartTime = ptr.Ptr(b.StartTime)
		b.OriginalEndTime = ptr.Ptr(b.EndTime)
		b.StartTime = newStart
		b.EndTime = newEnd
		b.WasRescheduled = true
		b.RescheduleToken = nil
		return nil
	}
	return bookingRepo.ErrAlreadyRescheduled
}

type fakeAvailability struct {
	interval  domain.Interval
	err       error
	lastQuery availability.SlotQuery
}

func (f *fakeAvailability) CheckSlot(_ context.Context, q availability.SlotQuery, _ types.TimeString) (domain.Interval, error) {
	f.lastQuery = q
	if f.err != nil {
		return domain.Interval{}, f.err
	}
	return f.interval, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCaptchaClient struct {
	err error
}

func (f *fakeCaptchaClient) Verify(_ context.Context, _ string) error {
	return f.err
}

type fakeMailer struct {
	notices       chan *mailer.BookingEmail
	notifications chan *mailer.BookingEmail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		notices:       make(chan *mailer.BookingEmail, 1),
		notifications: make(chan *mailer.BookingEmail, 1),
	}
}

func (f *fakeMailer) SendRescheduleNotice(_ context.Context, email *mailer.BookingEmail) error {
	f.notices <- email
	return nil
}

func (f *fakeMailer) SendOwnerNotification(_ context.Context, email *mailer.BookingEmail) error {
	f.notifications <- email
	return nil
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

type fixture struct {
	uc       *UseCase
	catalog  *fakeCatalogRepo
	bookings *fakeBookingRepo
	av       *fakeAvailability
	mailer   *fakeMailer
	captcha  *fakeCaptchaClient
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
		staff: map[int64]*domain.Staff{
			5: {ID: 5, SalonID: 1, Name: "Анна", IsActive: true},
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
		ClientEmail:     ptr.Ptr("olga@example.com"),
		CancelToken:     "cancel-token",
		RescheduleToken: ptr.Ptr("reschedule-token"),
	}}}
	av := &fakeAvailability{interval: domain.Interval{
		Start: time.Date(2026, 9, 15, 12, 30, 0, 0, loc),
		End:   time.Date(2026, 9, 15, 13, 45, 0, 0, loc),
	}}
	mail := newFakeMailer()
	capClient := &fakeCaptchaClient{}

	uc := NewUseCase(salons, catalog, bookings, av, &fakeTxManager{}, capClient, mail, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	return &fixture{uc: uc, catalog: catalog, bookings: bookings, av: av, mailer: mail, captcha: capClient, now: now, loc: loc}
}

func validRequest() *Request {
	return &Request{
		SalonSlug:    "beauty-bar",
		Token:        "reschedule-token",
		Date:         "2026-09-15",
		StartTime:    "12:30",
		CaptchaToken: "captcha-ok",
	}
}

func TestExecute_ReschedulesBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.BookingID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "12:30", resp.StartTime)
	assert.Equal(t, "13:45", resp.EndTime)
	assert.Equal(t, "2026-09-14", resp.OldDate)
	assert.Equal(t, "10:15", resp.OldStartTime)

	b := f.bookings.bookings[0]
	assert.True(t, b.WasRescheduled)
	assert.Nil(t, b.RescheduleToken)
	require.NotNil(t, b.OriginalStartTime)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 15, 0, 0, f.loc), *b.OriginalStartTime)

	// Собственный интервал исключён из проверки занятости
	require.NotNil(t, f.av.lastQuery.ExcludeBookingID)
	assert.Equal(t, int64(77), *f.av.lastQuery.ExcludeBookingID)
}

func TestExecute_TokenIsSingleUse(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторный запрос с тем же токеном не находит бронирование
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SendsRescheduleNotice(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case email := <-f.mailer.notices:
		assert.Equal(t, "olga@example.com", email.ClientEmail)
		assert.Equal(t, "2026-09-15", email.Date)
		assert.Equal(t, "12:30", email.StartTime)
		assert.Equal(t, "2026-09-14", email.OldDate)
		assert.Equal(t, "10:15", email.OldStartTime)
	case <-time.After(time.Second):
		t.Fatal("reschedule notice was not sent")
	}

	select {
	case email := <-f.mailer.notifications:
		assert.Equal(t, "owner@beauty-bar.ru", email.OwnerEmail)
		assert.Equal(t, "2026-09-15", email.Date)
		assert.Equal(t, "2026-09-14", email.OldDate)
	case <-time.After(time.Second):
		t.Fatal("owner notification was not sent")
	}
}

func TestExecute_NotifiesOwnerWithoutClientEmail(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings[0].ClientEmail = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case email := <-f.mailer.notifications:
		assert.Equal(t, "owner@beauty-bar.ru", email.OwnerEmail)
		assert.Empty(t, email.ClientEmail)
	case <-time.After(time.Second):
		t.Fatal("owner notification was not sent")
	}

	select {
	case <-f.mailer.notices:
		t.Fatal("reschedule notice sent without client email")
	default:
	}
}

func TestExecute_Eligibility(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture)
		wantErr error
	}{
		{
			"уже перенесено",
			func(f *fixture) { f.bookings.bookings[0].WasRescheduled = true },
			ErrAlreadyRescheduled,
		},
		{
			"отменённое бронирование",
			func(f *fixture) { f.bookings.bookings[0].Status = domain.StatusCancelled },
			ErrWrongStatus,
		},
		{
			"завершённое бронирование",
			func(f *fixture) { f.bookings.bookings[0].Status = domain.StatusCompleted },
			ErrWrongStatus,
		},
		{
			"бронирование уже началось",
			func(f *fixture) {
				f.bookings.bookings[0].StartTime = f.now.Add(-time.Hour)
			},
			ErrTooLate,
		},
		{
			"меньше min_advance_hours до начала",
			func(f *fixture) {
				f.catalog.services[10].MinAdvanceHours = ptr.Ptr(2)
				f.bookings.bookings[0].StartTime = f.now.Add(30 * time.Minute)
			},
			ErrTooLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f)

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_UnknownToken(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Token = "guessed-token"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CaptchaFailed(t *testing.T) {
	f := newFixture(t)
	f.captcha.err = captcha.ErrCaptchaFailed

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCaptchaFailed)
	assert.False(t, f.bookings.bookings[0].WasRescheduled)
}

func TestExecute_SlotAndWindowErrors(t *testing.T) {
	tests := []struct {
		name     string
		checkErr error
		wantErr  error
	}{
		{"интервал занят", availability.ErrSlotTaken, ErrSlotTaken},
		{"вне рабочих часов", availability.ErrOutsideWorkingHours, ErrSlotTaken},
		{"дата в прошлом", availability.ErrDateInPast, ErrInvalidDate},
		{"дата за горизонтом", availability.ErrDateTooFar, ErrInvalidDate},
		{"слишком рано", availability.ErrTooEarly, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.av.err = tt.checkErr

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, f.bookings.bookings[0].WasRescheduled)
		})
	}
}

func TestExecute_ConcurrentRescheduleLosesRace(t *testing.T) {
	f := newFixture(t)
	f.bookings.rescheduleErr = bookingRepo.ErrAlreadyRescheduled

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyRescheduled)
}
