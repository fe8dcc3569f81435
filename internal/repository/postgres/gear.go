package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/repository"
)

type gearRepository struct {
	db *sql.DB
}

func NewGearRepository(db *sql.DB) repository.GearRepository {
	return &gearRepository{db: db}
}

const gearColumns = `id, owner_id, name, category, description, condition, daily_rate_cents, status, saves_count, created_on, updated_on`

func scanGear(row interface{ Scan(...interface{}) error }, g *domain.Gear) error {
	return row.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Category, &g.Description, &g.Condition, &g.DailyRateCents, &g.Status, &g.SavesCount, &g.CreatedOn, &g.UpdatedOn)
}

func (r *gearRepository) Create(ctx context.Context, g *domain.Gear) error {
	query := `INSERT INTO gear (owner_id, name, category, description, condition, daily_rate_cents, status, saves_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, g.OwnerID, g.Name, g.Category, g.Description, g.Condition, g.DailyRateCents, g.Status, now, now).Scan(&g.ID)
}

func (r *gearRepository) GetByID(ctx context.Context, id int32) (*domain.Gear, error) {
	g := &domain.Gear{}
	query := `SELECT ` + gearColumns + ` FROM gear WHERE id = $1`
	err := scanGear(r.db.QueryRowContext(ctx, query, id), g)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("gear %d", id)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *gearRepository) Update(ctx context.Context, g *domain.Gear) error {
	query := `UPDATE gear SET name=$1, category=$2, description=$3, condition=$4, daily_rate_cents=$5, status=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, g.Name, g.Category, g.Description, g.Condition, g.DailyRateCents, g.Status, time.Now(), g.ID)
	return err
}

func (r *gearRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gear WHERE id = $1`, id)
	return err
}

func (r *gearRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Gear, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM gear WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + gearColumns + ` FROM gear WHERE owner_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Gear
	for rows.Next() {
		var g domain.Gear
		if err := scanGear(rows, &g); err != nil {
			return nil, 0, err
		}
		items = append(items, g)
	}
	return items, count, rows.Err()
}

func (r *gearRepository) Search(ctx context.Context, query, category string, maxDailyRateCents int32, page, pageSize int32) ([]domain.Gear, int32, error) {
	offset := (page - 1) * pageSize
	sqlStr := `SELECT ` + gearColumns + ` FROM gear WHERE status = 'available'`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlStr += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if category != "" {
		sqlStr += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	if maxDailyRateCents > 0 {
		sqlStr += fmt.Sprintf(" AND daily_rate_cents <= $%d", argIdx)
		args = append(args, maxDailyRateCents)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlStr + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Gear
	for rows.Next() {
		var g domain.Gear
		if err := scanGear(rows, &g); err != nil {
			return nil, 0, err
		}
		items = append(items, g)
	}
	return items, count, rows.Err()
}

// Save inserts the save row and bumps saves_count in one transaction. The
// counter update is keyed on the insert actually landing, so repeated saves
// are idempotent and the count never drifts.
func (r *gearRepository) Save(ctx context.Context, userID, gearID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO gear_saves (user_id, gear_id, created_on) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		userID, gearID, time.Now())
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE gear SET saves_count = saves_count + 1 WHERE id = $1`, gearID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *gearRepository) Unsave(ctx context.Context, userID, gearID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM gear_saves WHERE user_id = $1 AND gear_id = $2`, userID, gearID)
	if err != nil {
		return err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if deleted > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE gear SET saves_count = GREATEST(saves_count - 1, 0) WHERE id = $1`, gearID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *gearRepository) ListSaved(ctx context.Context, userID int32) ([]domain.Gear, error) {
	query := `SELECT g.id, g.owner_id, g.name, g.category, g.description, g.condition, g.daily_rate_cents, g.status, g.saves_count, g.created_on, g.updated_on
	          FROM gear g JOIN gear_saves s ON s.gear_id = g.id
	          WHERE s.user_id = $1 ORDER BY s.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Gear
	for rows.Next() {
		var g domain.Gear
		if err := scanGear(rows, &g); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}
