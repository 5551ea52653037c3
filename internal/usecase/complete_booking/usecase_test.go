package complete_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/hold"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/integrations/captcha"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
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

type fakeHoldRepo struct {
	holds   map[int64]*domain.SlotHold
	deleted []int64
}

func (f *fakeHoldRepo) GetByID(_ context.Context, id int64) (*domain.SlotHold, error) {
	h, ok := f.holds[id]
	if !ok {
		return nil, holdRepo.ErrHoldNotFound
	}
	return h, nil
}

func (f *fakeHoldRepo) Delete(_ context.Context, id int64) error {
	delete(f.holds, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookingRepo struct {
	existing  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 77
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveByStaffAndRange(_ context.Context, staffID int64, from, to time.Time, _ *int64) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.existing {
		if b.StaffID != staffID || !b.IsActive() {
			continue
		}
		if b.StartTime.Before(to) && from.Before(b.EndTime) {
			out = append(out, b)
		}
	}
	return out, nil
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

// fakeMailer складывает отправленные письма в буферизованные каналы,
// чтобы тест мог дождаться фоновой отправки
type fakeMailer struct {
	confirmations chan *mailer.BookingEmail
	notifications chan *mailer.BookingEmail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		confirmations: make(chan *mailer.BookingEmail, 1),
		notifications: make(chan *mailer.BookingEmail, 1),
	}
}

func (f *fakeMailer) SendBookingConfirmation(_ context.Context, email *mailer.BookingEmail) error {
	f.confirmations <- email
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
	holds    *fakeHoldRepo
	bookings *fakeBookingRepo
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
		variants: map[int64]*domain.ServiceVariant{
			100: {ID: 100, ServiceID: 10, Name: "Длинные волосы", DurationMinutes: 90, Price: 2000},
		},
		staff: map[int64]*domain.Staff{
			5: {ID: 5, SalonID: 1, Name: "Анна", IsActive: true},
		},
	}
	holds := &fakeHoldRepo{holds: map[int64]*domain.SlotHold{
		42: {
			ID:           42,
			SalonID:      1,
			StaffID:      5,
			ServiceID:    10,
			StartTime:    time.Date(2026, 9, 14, 10, 15, 0, 0, loc),
			EndTime:      time.Date(2026, 9, 14, 11, 30, 0, 0, loc),
			SessionToken: "secret-token",
			ExpiresAt:    now.Add(domain.HoldTTLMinutes * time.Minute),
		},
	}}
	bookings := &fakeBookingRepo{}
	mail := newFakeMailer()
	capClient := &fakeCaptchaClient{}

	uc := NewUseCase(salons, catalog, holds, bookings, &fakeTxManager{}, capClient, mail, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}

	return &fixture{uc: uc, holds: holds, bookings: bookings, mailer: mail, captcha: capClient, now: now, loc: loc}
}

func validRequest() *Request {
	return &Request{
		SalonSlug:    "beauty-bar",
		HoldID:       42,
		SessionToken: "secret-token",
		ClientName:   "Ольга Петрова",
		ClientPhone:  "+7 900 123-45-67",
		ClientEmail:  ptr.Ptr("olga@example.com"),
		CaptchaToken: "captcha-ok",
	}
}

func TestExecute_CreatesBookingFromHold(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.BookingID)
	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Equal(t, "10:15", resp.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.NotEmpty(t, resp.CancelToken)
	assert.NotEmpty(t, resp.RescheduleToken)
	assert.NotEqual(t, resp.CancelToken, resp.RescheduleToken)

	created := f.bookings.created
	require.NotNil(t, created)
	assert.Equal(t, domain.SourceWidget, created.Source)
	assert.Equal(t, "Стрижка", created.ServiceName)
	assert.Equal(t, 60, created.DurationMinutes)
	assert.Equal(t, 1500.0, created.ServicePrice)
	assert.Equal(t, "Ольга Петрова", created.ClientName)

	// Hold одноразовый: после подтверждения он удалён
	assert.Equal(t, []int64{42}, f.holds.deleted)
}

func TestExecute_SendsEmails(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case email := <-f.mailer.confirmations:
		assert.Equal(t, "olga@example.com", email.ClientEmail)
		assert.Equal(t, "Beauty Bar", email.SalonName)
		assert.Equal(t, "Анна", email.StaffName)
		assert.Equal(t, "2026-09-14", email.Date)
		assert.Equal(t, "10:15", email.StartTime)
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not sent")
	}

	select {
	case email := <-f.mailer.notifications:
		assert.Equal(t, "owner@beauty-bar.ru", email.OwnerEmail)
	case <-time.After(time.Second):
		t.Fatal("owner notification was not sent")
	}
}

func TestExecute_SkipsClientEmailWhenAbsent(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ClientEmail = nil

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	select {
	case <-f.mailer.notifications:
	case <-time.After(time.Second):
		t.Fatal("owner notification was not sent")
	}

	select {
	case <-f.mailer.confirmations:
		t.Fatal("confirmation email sent without client address")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExecute_HoldFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture, req *Request)
	}{
		{
			"hold отсутствует",
			func(f *fixture, req *Request) { req.HoldID = 999 },
		},
		{
			"чужой session token",
			func(f *fixture, req *Request) { req.SessionToken = "wrong-token" },
		},
		{
			"hold истёк",
			func(f *fixture, req *Request) {
				f.holds.holds[42].ExpiresAt = f.now.Add(-time.Minute)
			},
		},
		{
			"hold другого салона",
			func(f *fixture, req *Request) { f.holds.holds[42].SalonID = 2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrHoldExpired)
			assert.Nil(t, f.bookings.created)
		})
	}
}

// dayTime собирает время дня бронирования (2026-09-14) из строки "HH:MM"
func dayTime(t *testing.T, hhmm string, loc *time.Location) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return time.Date(2026, 9, 14, parsed.Hour(), parsed.Minute(), 0, 0, loc)
}

func TestExecute_SlotTakenOnRecheck(t *testing.T) {
	// Бронирование из дашборда успело занять интервал hold'а (10:15-11:30).
	// Конфликт детектируется по пересечению интервалов, включая
	// бронирование, начавшееся раньше hold'а.
	tests := []struct {
		name       string
		start, end string
	}{
		{"начинается внутри hold'а", "10:30", "11:30"},
		{"начинается до hold'а и пересекает его", "09:30", "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.bookings.existing = []*domain.Booking{{
				ID:        1,
				StaffID:   5,
				StartTime: dayTime(t, tt.start, f.loc),
				EndTime:   dayTime(t, tt.end, f.loc),
				Status:    domain.StatusConfirmed,
			}}

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrSlotTaken)
			assert.Nil(t, f.bookings.created)
		})
	}
}

func TestExecute_ExclusionConstraintBackstop(t *testing.T) {
	f := newFixture(t)
	f.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CaptchaFailed(t *testing.T) {
	f := newFixture(t)
	f.captcha.err = captcha.ErrCaptchaFailed

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCaptchaFailed)
	assert.Nil(t, f.bookings.created)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"пустое имя", func(req *Request) { req.ClientName = "  " }},
		{"пустой телефон", func(req *Request) { req.ClientPhone = "" }},
		{"некорректный email", func(req *Request) { req.ClientEmail = ptr.Ptr("not-an-email") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
