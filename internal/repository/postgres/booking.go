package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, gear_id, renter_id, owner_id, start_date, end_date, total_days, daily_rate_cents, total_amount_cents, status, payment_status, status_history, paid_at, created_on, updated_on`

func scanBooking(row interface{ Scan(...interface{}) error }, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.GearID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.TotalDays, &b.DailyRateCents, &b.TotalAmountCents, &b.Status, &b.PaymentStatus, &b.StatusHistory, &b.PaidAt, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (gear_id, renter_id, owner_id, start_date, end_date, total_days, daily_rate_cents, total_amount_cents, status, payment_status, status_history, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.GearID, b.RenterID, b.OwnerID, b.StartDate, b.EndDate, b.TotalDays,
		b.DailyRateCents, b.TotalAmountCents, b.Status, b.PaymentStatus,
		b.StatusHistory, now, now,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("booking %d", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// AppendStatus updates the status fields and appends the history entry in a
// single statement. The JSONB concatenation keeps prior entries verbatim, so
// the audit log can only grow. markPaid additionally stamps payment_status
// and paid_at in the same write. The update is guarded by the status the
// caller transitioned from, so of two concurrent transitions only one lands.
func (r *bookingRepository) AppendStatus(ctx context.Context, id int32, from domain.BookingStatus, change domain.StatusChange, markPaid bool) error {
	entry, err := json.Marshal([]domain.StatusChange{change})
	if err != nil {
		return err
	}

	query := `UPDATE bookings
	          SET status = $2,
	              status_history = status_history || $3::jsonb,
	              payment_status = CASE WHEN $4 THEN 'paid' ELSE payment_status END,
	              paid_at = CASE WHEN $4 THEN $5 ELSE paid_at END,
	              updated_on = $5
	          WHERE id = $1 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, id, change.Status, string(entry), markPaid, change.Timestamp, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.Validationf("booking %d is no longer %s", id, from)
	}
	return nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	return r.list(ctx, "renter_id", "owner_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	return r.list(ctx, "owner_id", "renter_id", ownerID, status, page, pageSize)
}

// list returns bookings for one party column joined with the counterpart's
// profile and the gear summary.
func (r *bookingRepository) list(ctx context.Context, partyCol, otherCol string, userID int32, status string, page, pageSize int32) ([]domain.BookingListing, int32, error) {
	offset := (page - 1) * pageSize
	where := fmt.Sprintf("b.%s = $1", partyCol)

	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND b.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSql := `SELECT count(*) FROM bookings b WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT b.id, b.gear_id, b.renter_id, b.owner_id, b.start_date, b.end_date, b.total_days, b.daily_rate_cents, b.total_amount_cents, b.status, b.payment_status, b.status_history, b.paid_at, b.created_on, b.updated_on,
	       u.id, u.name, u.avatar_url,
	       g.id, g.name, g.category, g.daily_rate_cents
	FROM bookings b
	JOIN users u ON u.id = b.%s
	JOIN gear g ON g.id = b.gear_id
	WHERE %s
	ORDER BY b.created_on DESC LIMIT $%d OFFSET $%d`, otherCol, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var listings []domain.BookingListing
	for rows.Next() {
		var l domain.BookingListing
		var other domain.User
		b := &l.Booking
		if err := rows.Scan(
			&b.ID, &b.GearID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.TotalDays, &b.DailyRateCents, &b.TotalAmountCents, &b.Status, &b.PaymentStatus, &b.StatusHistory, &b.PaidAt, &b.CreatedOn, &b.UpdatedOn,
			&other.ID, &other.Name, &other.AvatarURL,
			&l.Gear.ID, &l.Gear.Name, &l.Gear.Category, &l.Gear.DailyRateCents,
		); err != nil {
			return nil, 0, err
		}
		if partyCol == "renter_id" {
			l.Owner = &other
		} else {
			l.Renter = &other
		}
		listings = append(listings, l)
	}
	return listings, count, rows.Err()
}
