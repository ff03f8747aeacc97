// Package repository implements all database queries for the registration
// service. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creativecommunity/registration/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateMobile is returned when an insert trips the unique constraint
// on mobile_number. The pre-submit existence check and the insert are not
// atomic, so this constraint is the final authority on duplicates.
var ErrDuplicateMobile = errors.New("this mobile number is already registered")

const registrationColumns = `id, full_name, first_name, middle_name, last_name,
	 mobile_number, room_number, group_name, wing_commander_name,
	 interests, custom_interest, software, custom_software,
	 stage_vibes, custom_stage_vibe, created_at`

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a new registration and returns it with a generated UUID
// and creation timestamp. A unique-constraint violation on mobile_number
// is mapped to ErrDuplicateMobile.
func (r *RegistrationRepository) Create(ctx context.Context, rec model.Registration) (*model.Registration, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO registrations (`+registrationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		rec.ID, rec.FullName, rec.FirstName, rec.MiddleName, rec.LastName,
		rec.MobileNumber, rec.RoomNumber, rec.GroupName, rec.WingCommanderName,
		rec.Interests, rec.CustomInterest, rec.Software, rec.CustomSoftware,
		rec.StageVibes, rec.CustomStageVibe, rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateMobile
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return &rec, nil
}

// ExistsByMobileNumber reports whether a registration with the given
// mobile number already exists.
func (r *RegistrationRepository) ExistsByMobileNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE mobile_number = $1)`,
		number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check mobile number: %w", err)
	}
	return exists, nil
}

// List returns all registrations ordered by creation time descending.
func (r *RegistrationRepository) List(ctx context.Context) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// ListByGroup returns the registrations for one group, newest first.
func (r *RegistrationRepository) ListByGroup(ctx context.Context, groupName string) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 WHERE group_name = $1
		 ORDER BY created_at DESC`,
		groupName,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations by group: %w", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// DeleteByID removes one registration or returns ErrNotFound.
func (r *RegistrationRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every registration.
func (r *RegistrationRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM registrations`); err != nil {
		return fmt.Errorf("delete all registrations: %w", err)
	}
	return nil
}

// Count returns the total number of registrations.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func scanRegistrations(rows pgx.Rows) ([]model.Registration, error) {
	var regs []model.Registration
	for rows.Next() {
		var rec model.Registration
		err := rows.Scan(
			&rec.ID, &rec.FullName, &rec.FirstName, &rec.MiddleName, &rec.LastName,
			&rec.MobileNumber, &rec.RoomNumber, &rec.GroupName, &rec.WingCommanderName,
			&rec.Interests, &rec.CustomInterest, &rec.Software, &rec.CustomSoftware,
			&rec.StageVibes, &rec.CustomStageVibe, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, rec)
	}
	return regs, rows.Err()
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
