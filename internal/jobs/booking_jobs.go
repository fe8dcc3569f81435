package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/logger"
)

// ActivatePaidBookings moves paid bookings into ACTIVE once their start date
// arrives. The audit entry is appended in the same statement as the status
// change.
func (jr *JobRunner) ActivatePaidBookings() {
	jr.runWithRecovery("ActivatePaidBookings", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		entry, err := json.Marshal([]domain.StatusChange{{
			Status:    domain.BookingStatusActive,
			Timestamp: now,
			Note:      "rental period started",
		}})
		if err != nil {
			logger.Error("Failed to encode status entry", "error", err)
			return
		}

		query := `
			UPDATE bookings
			SET status = 'active',
			    status_history = status_history || $1::jsonb,
			    updated_on = $2
			WHERE status = 'paid'
			  AND start_date <= $3
			RETURNING id, renter_id, gear_id
		`

		rows, err := jr.db.QueryContext(ctx, query, entry, now.Format(time.RFC3339), now.Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to activate paid bookings", "error", err)
			return
		}
		defer rows.Close()

		var gearIDs []int32
		for rows.Next() {
			var id, renterID, gearID int32
			if err := rows.Scan(&id, &renterID, &gearID); err != nil {
				logger.Error("Failed to scan activated booking", "error", err)
				continue
			}
			gearIDs = append(gearIDs, gearID)
			logger.Debug("Activated booking",
				"booking_id", id,
				"renter_id", renterID,
				"gear_id", gearID)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating activated bookings", "error", err)
			return
		}

		// The gear backing each activated rental is no longer bookable.
		if len(gearIDs) > 0 {
			_, err := jr.db.ExecContext(ctx,
				`UPDATE gear SET status = 'rented', updated_on = $2 WHERE id = ANY($1) AND status = 'available'`,
				pq.Array(gearIDs), now.Format(time.RFC3339))
			if err != nil {
				logger.Error("Failed to mark activated gear rented", "error", err)
			}
		}

		logger.Info("Activated paid bookings", "count", len(gearIDs))
	})
}

// SendReturnReminders emails both parties of active bookings whose rental
// period ends today.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		query := `
			SELECT b.id, b.end_date, g.name, r.email, o.email
			FROM bookings b
			JOIN gear g ON g.id = b.gear_id
			JOIN users r ON r.id = b.renter_id
			JOIN users o ON o.id = b.owner_id
			WHERE b.status = 'active'
			  AND b.end_date = $1
		`

		rows, err := jr.db.QueryContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to query bookings ending today", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id                      int32
				endDate, gearName       string
				renterEmail, ownerEmail string
			)
			if err := rows.Scan(&id, &endDate, &gearName, &renterEmail, &ownerEmail); err != nil {
				logger.Error("Failed to scan booking for reminder", "error", err)
				continue
			}

			if err := jr.services.Email.SendReturnReminder(ctx, renterEmail, gearName, endDate); err != nil {
				logger.Error("Failed to send return reminder to renter", "booking_id", id, "error", err)
			}
			if err := jr.services.Email.SendReturnReminder(ctx, ownerEmail, gearName, endDate); err != nil {
				logger.Error("Failed to send return reminder to owner", "booking_id", id, "error", err)
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating bookings ending today", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}
