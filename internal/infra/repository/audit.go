package repository

import (
	"context"

	"space-booking/internal/domain/audit"
	"space-booking/internal/infra"
	"space-booking/internal/usecase/shared"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) shared.AuditRepository {
	return &AuditRepository{db: db}
}

const appendAuditQuery = `
INSERT INTO reservation_audit (id, reservation_id, event_type, old_value, new_value, message, actor, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *AuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	_, err := r.db.ExecContext(ctx, appendAuditQuery,
		entry.ID().String(), entry.ReservationID(),
		string(entry.EventType()), entry.OldValue(), entry.NewValue(),
		entry.Message(), entry.Actor(), entry.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to append audit entry", err)
	}
	return nil
}
