package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raulbellosom/travel-sub002/internal/domain"
)

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) Get(ctx context.Context, id string) (domain.Resource, error) {
	const query = `
SELECT id, COALESCE(owner_id::text, ''), published, enabled, price_cents, pricing_model,
       currency, max_guests, slot_buffer_minutes, commercial_mode, contact_only, reservation_count
FROM resources
WHERE id = $1`

	var (
		res          domain.Resource
		priceCents   int64
		pricingModel string
		mode         string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.OwnerID,
		&res.Published,
		&res.Enabled,
		&priceCents,
		&pricingModel,
		&res.Currency,
		&res.MaxGuests,
		&res.SlotBufferMinutes,
		&mode,
		&res.ContactOnly,
		&res.ReservationCount,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("get resource: %w", err)
	}
	res.PriceCents = domain.Cents(priceCents)
	res.PricingModel = domain.PricingModel(pricingModel)
	res.CommercialMode = domain.CommercialMode(mode)
	return res, nil
}

func (r *ResourceRepository) IncrementReservationCount(ctx context.Context, id string) error {
	const stmt = `UPDATE resources SET reservation_count = reservation_count + 1 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("increment reservation count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}
