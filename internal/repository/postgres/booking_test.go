package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/repository/postgres"
)

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		booking := &domain.Booking{
			GearID:           2,
			RenterID:         3,
			OwnerID:          4,
			StartDate:        "2026-10-01",
			EndDate:          "2026-10-03",
			TotalDays:        3,
			DailyRateCents:   2500,
			TotalAmountCents: 7500,
			Status:           domain.BookingStatusRequested,
			PaymentStatus:    domain.PaymentStatusUnpaid,
			StatusHistory: domain.StatusHistory{
				{Status: domain.BookingStatusRequested, Timestamp: time.Now().UTC()},
			},
		}

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(booking.GearID, booking.RenterID, booking.OwnerID, booking.StartDate, booking.EndDate,
				booking.TotalDays, booking.DailyRateCents, booking.TotalAmountCents, booking.Status,
				booking.PaymentStatus, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).
				AddRow(1, "2026-09-20T12:00:00Z", "2026-09-20T12:00:00Z"))

		err := repo.Create(ctx, booking)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), booking.ID)
		assert.Equal(t, "2026-09-20T12:00:00Z", booking.CreatedOn)
		assert.Equal(t, "2026-09-20T12:00:00Z", booking.UpdatedOn)
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		history := `[{"status":"requested","timestamp":"2026-09-20T12:00:00Z"}]`
		rows := sqlmock.NewRows([]string{"id", "gear_id", "renter_id", "owner_id", "start_date", "end_date", "total_days", "daily_rate_cents", "total_amount_cents", "status", "payment_status", "status_history", "paid_at", "created_on", "updated_on"}).
			AddRow(1, 2, 3, 4, "2026-10-01", "2026-10-03", 3, 2500, 7500, "requested", "unpaid", []byte(history), nil, "2026-09-20T12:00:00Z", "2026-09-20T12:00:00Z")

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		booking, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, booking)
		assert.Equal(t, int32(1), booking.ID)
		assert.Equal(t, domain.BookingStatusRequested, booking.Status)
		assert.Len(t, booking.StatusHistory, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		booking, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, booking)
	})
}

func TestBookingRepository_AppendStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	change := domain.StatusChange{
		Status:    domain.BookingStatusAccepted,
		Timestamp: time.Date(2026, 9, 21, 12, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings").
			WithArgs(int32(1), change.Status, sqlmock.AnyArg(), false, change.Timestamp, domain.BookingStatusRequested).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AppendStatus(ctx, 1, domain.BookingStatusRequested, change, false)
		assert.NoError(t, err)
	})

	t.Run("MarkPaid", func(t *testing.T) {
		paid := domain.StatusChange{Status: domain.BookingStatusPaid, Timestamp: change.Timestamp}
		mock.ExpectExec("UPDATE bookings").
			WithArgs(int32(1), paid.Status, sqlmock.AnyArg(), true, paid.Timestamp, domain.BookingStatusAccepted).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AppendStatus(ctx, 1, domain.BookingStatusAccepted, paid, true)
		assert.NoError(t, err)
	})

	// A booking whose status moved between the read and the write matches
	// zero rows. The second of two racing transitions must lose.
	t.Run("StaleStatusConflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings").
			WithArgs(int32(1), change.Status, sqlmock.AnyArg(), false, change.Timestamp, domain.BookingStatusRequested).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AppendStatus(ctx, 1, domain.BookingStatusRequested, change, false)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookingRepository_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("FiltersByStatus", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM bookings b").
			WithArgs(int32(4), "requested").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		history := `[{"status":"requested","timestamp":"2026-09-20T12:00:00Z"}]`
		rows := sqlmock.NewRows([]string{"id", "gear_id", "renter_id", "owner_id", "start_date", "end_date", "total_days", "daily_rate_cents", "total_amount_cents", "status", "payment_status", "status_history", "paid_at", "created_on", "updated_on",
			"u_id", "u_name", "u_avatar_url", "g_id", "g_name", "g_category", "g_daily_rate_cents"}).
			AddRow(1, 2, 3, 4, "2026-10-01", "2026-10-03", 3, 2500, 7500, "requested", "unpaid", []byte(history), nil, "2026-09-20T12:00:00Z", "2026-09-20T12:00:00Z",
				3, "Renter", "", 2, "Canon R5", "cameras", 2500)

		mock.ExpectQuery("SELECT b.id, (.+) FROM bookings b").
			WithArgs(int32(4), "requested", int32(20), int32(0)).
			WillReturnRows(rows)

		listings, total, err := repo.ListByOwner(ctx, 4, "requested", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, listings, 1)
		assert.Equal(t, int32(1), listings[0].Booking.ID)
		assert.NotNil(t, listings[0].Renter)
		assert.Equal(t, "Renter", listings[0].Renter.Name)
		assert.Equal(t, "Canon R5", listings[0].Gear.Name)
	})
}
