package jobs_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lenslend-backend/internal/config"
	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/jobs"
	"lenslend-backend/internal/repository/postgres"
)

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, gearName string) error {
	args := m.Called(ctx, ownerEmail, renterName, gearName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingStatusNotification(ctx context.Context, email, gearName string, status domain.BookingStatus, note string) error {
	args := m.Called(ctx, email, gearName, status, note)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, gearName, endDate string) error {
	args := m.Called(ctx, email, gearName, endDate)
	return args.Error(0)
}

func newJobRunner(t *testing.T) (*jobs.JobRunner, sqlmock.Sqlmock, *MockEmailService) {
	db, dbMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	emailSvc := new(MockEmailService)
	runner := jobs.NewJobRunner(db, postgres.NewStore(db), &jobs.Services{Email: emailSvc}, &config.Config{})
	return runner, dbMock, emailSvc
}

func TestActivatePaidBookings(t *testing.T) {
	t.Run("MarksActivatedGearRented", func(t *testing.T) {
		runner, dbMock, _ := newJobRunner(t)

		dbMock.ExpectQuery("UPDATE bookings").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "renter_id", "gear_id"}).
				AddRow(10, 1, 7).
				AddRow(11, 3, 8))
		dbMock.ExpectExec("UPDATE gear").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		runner.ActivatePaidBookings()
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("NoBookingsDue", func(t *testing.T) {
		runner, dbMock, _ := newJobRunner(t)

		dbMock.ExpectQuery("UPDATE bookings").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "renter_id", "gear_id"}))

		runner.ActivatePaidBookings()
		// No gear update when nothing was activated.
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestSendReturnReminders(t *testing.T) {
	t.Run("EmailsBothParties", func(t *testing.T) {
		runner, dbMock, emailSvc := newJobRunner(t)

		dbMock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "end_date", "name", "r.email", "o.email"}).
				AddRow(10, "2026-09-01", "Canon R5", "renter@test.com", "owner@test.com"))
		emailSvc.On("SendReturnReminder", mock.Anything, "renter@test.com", "Canon R5", "2026-09-01").Return(nil)
		emailSvc.On("SendReturnReminder", mock.Anything, "owner@test.com", "Canon R5", "2026-09-01").Return(nil)

		runner.SendReturnReminders()
		assert.NoError(t, dbMock.ExpectationsWereMet())
		emailSvc.AssertExpectations(t)
	})
}
