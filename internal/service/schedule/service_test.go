package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule/models"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

type fakeScheduleRepo struct {
	workingHours map[int]*domain.WorkingHours
	blocked      map[int64]*domain.BlockedDate
	nextID       int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		workingHours: make(map[int]*domain.WorkingHours),
		blocked:      make(map[int64]*domain.BlockedDate),
		nextID:       1,
	}
}

func (f *fakeScheduleRepo) GetAllWorkingHours(_ context.Context, _ int64) ([]*domain.WorkingHours, error) {
	out := make([]*domain.WorkingHours, 0, len(f.workingHours))
	for day := 0; day <= 6; day++ {
		if wh, ok := f.workingHours[day]; ok {
			out = append(out, wh)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) UpsertWorkingHours(_ context.Context, wh *domain.WorkingHours) error {
	f.workingHours[wh.DayOfWeek] = wh
	return nil
}

func (f *fakeScheduleRepo) ListBlockedDates(_ context.Context, salonID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	out := make([]*domain.BlockedDate, 0)
	for _, bd := range f.blocked {
		if bd.SalonID == salonID && !bd.Date.Before(from) && !bd.Date.After(to) {
			out = append(out, bd)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) CreateBlockedDate(_ context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error) {
	created := *bd
	created.ID = f.nextID
	f.nextID++
	f.blocked[created.ID] = &created
	return &created, nil
}

func (f *fakeScheduleRepo) DeleteBlockedDate(_ context.Context, salonID, id int64) error {
	bd, ok := f.blocked[id]
	if !ok || bd.SalonID != salonID {
		return scheduleRepo.ErrBlockedDateNotFound
	}
	delete(f.blocked, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSalon() *domain.Salon {
	return &domain.Salon{ID: 1, Slug: "test-salon", Timezone: "Europe/Moscow"}
}

func TestUpsertWorkingHours(t *testing.T) {
	t.Run("create and overwrite", func(t *testing.T) {
		repo := newFakeScheduleRepo()
		svc := NewService(repo, nopLogger{})

		err := svc.UpsertWorkingHours(context.Background(), testSalon(), &models.UpsertWorkingHoursRequest{
			DayOfWeek: 1, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true,
		})
		require.NoError(t, err)

		err = svc.UpsertWorkingHours(context.Background(), testSalon(), &models.UpsertWorkingHoursRequest{
			DayOfWeek: 1, OpenTime: "10:00", CloseTime: "17:00", IsOpen: true,
		})
		require.NoError(t, err)

		resp, err := svc.GetWorkingHours(context.Background(), testSalon())
		require.NoError(t, err)
		require.Len(t, resp.WorkingHours, 1)
		assert.Equal(t, "10:00", resp.WorkingHours[0].OpenTime)
		assert.Equal(t, "17:00", resp.WorkingHours[0].CloseTime)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(newFakeScheduleRepo(), nopLogger{})

		tests := []struct {
			name    string
			req     *models.UpsertWorkingHoursRequest
			wantErr error
		}{
			{
				name:    "day out of range",
				req:     &models.UpsertWorkingHoursRequest{DayOfWeek: 7, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true},
				wantErr: ErrInvalidDayOfWeek,
			},
			{
				name:    "open after close",
				req:     &models.UpsertWorkingHoursRequest{DayOfWeek: 1, OpenTime: "19:00", CloseTime: "18:00", IsOpen: true},
				wantErr: ErrInvalidTimeRange,
			},
			{
				name:    "malformed time",
				req:     &models.UpsertWorkingHoursRequest{DayOfWeek: 1, OpenTime: "9am", CloseTime: "18:00", IsOpen: true},
				wantErr: ErrInvalidInput,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := svc.UpsertWorkingHours(context.Background(), testSalon(), tt.req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("closed day skips range check", func(t *testing.T) {
		svc := NewService(newFakeScheduleRepo(), nopLogger{})

		err := svc.UpsertWorkingHours(context.Background(), testSalon(), &models.UpsertWorkingHoursRequest{
			DayOfWeek: 0, OpenTime: "00:00", CloseTime: "00:00", IsOpen: false,
		})

		require.NoError(t, err)
	})
}

func TestBlockedDates(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo, nopLogger{})

	created, err := svc.CreateBlockedDate(context.Background(), testSalon(), &models.CreateBlockedDateRequest{
		Date:   "2026-09-15",
		Reason: ptr.Ptr("отпуск"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", created.Date)
	assert.Nil(t, created.StaffID)

	staffBlock, err := svc.CreateBlockedDate(context.Background(), testSalon(), &models.CreateBlockedDateRequest{
		StaffID: ptr.Ptr(int64(10)),
		Date:    "2026-09-20",
	})
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, loc)

	list, err := svc.ListBlockedDates(context.Background(), testSalon(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	require.NoError(t, svc.DeleteBlockedDate(context.Background(), testSalon(), staffBlock.ID))

	list, err = svc.ListBlockedDates(context.Background(), testSalon(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	err = svc.DeleteBlockedDate(context.Background(), testSalon(), staffBlock.ID)
	assert.ErrorIs(t, err, ErrBlockedDateNotFound)
}

func TestCreateBlockedDate_InvalidDate(t *testing.T) {
	svc := NewService(newFakeScheduleRepo(), nopLogger{})

	_, err := svc.CreateBlockedDate(context.Background(), testSalon(), &models.CreateBlockedDateRequest{
		Date: "15.09.2026",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBlockedDates_InvalidPeriod(t *testing.T) {
	svc := NewService(newFakeScheduleRepo(), nopLogger{})

	now := time.Now()
	_, err := svc.ListBlockedDates(context.Background(), testSalon(), now, now.AddDate(0, 0, -1))

	assert.ErrorIs(t, err, ErrInvalidInput)
}
