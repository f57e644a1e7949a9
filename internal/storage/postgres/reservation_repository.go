package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationColumns = `
id, resource_id, guest_id, guest_name, guest_email, guest_phone, shape,
check_in, check_out, starts_at, ends_at, guest_count, nights,
base_cents, fees_cents, tax_cents, total_cents, currency,
status, payment_status, hold_expires_at, external_ref, enabled, created_at`

// ListCandidates returns the live pending/confirmed reservations for a
// resource, capped at limit. No pagination beyond the cap.
func (r *ReservationRepository) ListCandidates(ctx context.Context, resourceID string, limit int) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE resource_id = $1 AND status IN ('pending', 'confirmed') AND enabled
LIMIT $2`

	rows, err := r.pool.Query(ctx, query, resourceID, limit)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

// FindPendingByClientRef resolves an idempotency token to its live pending
// reservation, newest first. Returns nil when no row matches.
func (r *ReservationRepository) FindPendingByClientRef(ctx context.Context, resourceID, guestID, externalRef string) (*domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE resource_id = $1 AND guest_id = $2 AND external_ref = $3
  AND status = 'pending' AND payment_status = 'unpaid' AND enabled
ORDER BY created_at DESC
LIMIT 1`

	rows, err := r.pool.Query(ctx, query, resourceID, guestID, externalRef)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("find pending by client ref: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("find pending by client ref: %w", err)
		}
		return nil, nil
	}
	res, err := scanReservation(rows)
	if err != nil {
		return nil, fmt.Errorf("scan pending: %w", err)
	}
	return &res, nil
}

// CountActiveForGuestSince counts a guest's live reservations created at or
// after since; feeds the monthly quota gate.
func (r *ReservationRepository) CountActiveForGuestSince(ctx context.Context, guestID string, since time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM reservations
WHERE guest_id = $1 AND status IN ('pending', 'confirmed') AND enabled AND created_at >= $2`

	var n int
	if err := r.pool.QueryRow(ctx, query, guestID, since).Scan(&n); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count active for guest: %w", err)
	}
	return n, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (
	id, resource_id, guest_id, guest_name, guest_email, guest_phone, shape,
	check_in, check_out, starts_at, ends_at, guest_count, nights,
	base_cents, fees_cents, tax_cents, total_cents, currency,
	status, payment_status, hold_expires_at, external_ref, enabled, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
	$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
)`

	_, err := r.pool.Exec(ctx, stmt,
		res.ID,
		res.ResourceID,
		res.GuestID,
		res.GuestName,
		res.GuestEmail,
		res.GuestPhone,
		string(res.Shape),
		res.CheckIn,
		res.CheckOut,
		res.StartsAt,
		res.EndsAt,
		res.GuestCount,
		res.Nights,
		int64(res.BaseCents),
		int64(res.FeesCents),
		int64(res.TaxCents),
		int64(res.TotalCents),
		res.Currency,
		string(res.Status),
		string(res.PaymentStatus),
		res.HoldExpiresAt,
		res.ExternalRef,
		res.Enabled,
		res.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrResourceNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			if isInvalidUUID(err) {
				return domain.Reservation{}, domain.ErrReservationNotFound
			}
			return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
		}
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	res, err := scanReservation(rows)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("scan reservation: %w", err)
	}
	return res, nil
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var (
		res           domain.Reservation
		shape         string
		status        string
		paymentStatus string
		base          int64
		fees          int64
		tax           int64
		total         int64
	)
	err := row.Scan(
		&res.ID,
		&res.ResourceID,
		&res.GuestID,
		&res.GuestName,
		&res.GuestEmail,
		&res.GuestPhone,
		&shape,
		&res.CheckIn,
		&res.CheckOut,
		&res.StartsAt,
		&res.EndsAt,
		&res.GuestCount,
		&res.Nights,
		&base,
		&fees,
		&tax,
		&total,
		&res.Currency,
		&status,
		&paymentStatus,
		&res.HoldExpiresAt,
		&res.ExternalRef,
		&res.Enabled,
		&res.CreatedAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Shape = domain.BookingShape(shape)
	res.Status = domain.ReservationStatus(status)
	res.PaymentStatus = domain.PaymentStatus(paymentStatus)
	res.BaseCents = domain.Cents(base)
	res.FeesCents = domain.Cents(fees)
	res.TaxCents = domain.Cents(tax)
	res.TotalCents = domain.Cents(total)
	return res, nil
}
