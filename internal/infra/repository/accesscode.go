package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"space-booking/internal/domain/accesscode"
	"space-booking/internal/infra"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AccessCodeRepository struct {
	db DBTX
}

func NewAccessCodeRepository(db DBTX) shared.AccessCodeRepository {
	return &AccessCodeRepository{db: db}
}

const createAccessCodeQuery = `
INSERT INTO access_codes (id, reservation_id, space_id, code, status, valid_until, device_ref, regenerated_by, regenerated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *AccessCodeRepository) Create(ctx context.Context, code *accesscode.AccessCode) error {
	_, err := r.db.ExecContext(ctx, createAccessCodeQuery,
		code.ID(), code.ReservationID(), code.SpaceID(),
		code.Code(), string(code.Status()), code.ValidUntil(),
		code.DeviceRef(), code.RegeneratedBy(), code.RegeneratedAt(), code.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "access code already exists", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create access code", err)
	}
	return nil
}

const findActiveCodeQuery = `
SELECT id, reservation_id, space_id, code, status, valid_until, device_ref, regenerated_by, regenerated_at, created_at
FROM access_codes
WHERE reservation_id = $1 AND status = 'active'
ORDER BY created_at DESC
LIMIT 1`

func (r *AccessCodeRepository) FindActiveByReservation(ctx context.Context, reservationID uuid.UUID) (*accesscode.AccessCode, error) {
	row := r.db.QueryRowContext(ctx, findActiveCodeQuery, reservationID)

	var (
		id, resID, spaceID uuid.UUID
		codeValue, status  string
		validUntil         time.Time
		deviceRef          sql.NullString
		regeneratedBy      sql.NullString
		regeneratedAt      sql.NullTime
		createdAt          time.Time
	)
	err := row.Scan(&id, &resID, &spaceID, &codeValue, &status, &validUntil, &deviceRef, &regeneratedBy, &regeneratedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "access code not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find access code", err)
	}

	return accesscode.Reconstruct(
		id, resID, spaceID, codeValue,
		accesscode.Status(status), validUntil,
		nullString(deviceRef), nullString(regeneratedBy), nullTime(regeneratedAt),
		createdAt,
	), nil
}

const updateAccessCodeQuery = `
UPDATE access_codes SET code = $2, status = $3, device_ref = $4, regenerated_by = $5, regenerated_at = $6 WHERE id = $1`

func (r *AccessCodeRepository) Update(ctx context.Context, code *accesscode.AccessCode) error {
	result, err := r.db.ExecContext(ctx, updateAccessCodeQuery,
		code.ID(), code.Code(), string(code.Status()), code.DeviceRef(),
		code.RegeneratedBy(), code.RegeneratedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update access code", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "access code not found", nil)
	}
	return nil
}
