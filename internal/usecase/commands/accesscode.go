package commands

import (
	"context"
	"log/slog"

	"space-booking/internal/domain/accesscode"
	"space-booking/internal/domain/audit"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AccessCodeCommands interface {
	// Issue generates and provisions a code for a confirmed reservation.
	Issue(ctx context.Context, res *reservation.Reservation) error
	// Ensure issues a code only when the reservation has no active one.
	Ensure(ctx context.Context, res *reservation.Reservation) error
	// Regenerate replaces the current code, keeping its validity window.
	Regenerate(ctx context.Context, reservationID uuid.UUID, actor shared.Actor) (*accesscode.AccessCode, error)
	// Revoke deactivates the code and removes it from the device. Revocation
	// is best-effort: failures are logged, never returned.
	Revoke(ctx context.Context, reservationID uuid.UUID)
	// Validate reports whether the presented code currently opens the space.
	Validate(ctx context.Context, reservationID uuid.UUID, code string) (bool, error)
}

type accessCodeCommands struct {
	uow      shared.UnitOfWork
	devices  DeviceGateway
	notifier Notifier
	clock    clock.Clock
}

func NewAccessCodeCommands(uow shared.UnitOfWork, devices DeviceGateway, notifier Notifier, clk clock.Clock) AccessCodeCommands {
	return &accessCodeCommands{
		uow:      uow,
		devices:  devices,
		notifier: notifier,
		clock:    clk,
	}
}

func (c *accessCodeCommands) Issue(ctx context.Context, res *reservation.Reservation) error {
	code, err := accesscode.NewAccessCode(res.ID(), res.SpaceID(), res.Stay().End(), c.clock.Now())
	if err != nil {
		return errs.Wrap(err, "failed to generate access code")
	}

	var deviceID *string
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sp, err := tx.Spaces().FindByID(ctx, res.SpaceID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		deviceID = sp.DeviceID()

		if err := tx.AccessCodes().Create(ctx, code); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		appendAuditBestEffort(ctx, tx, audit.CodeIssued(res.ID(), code.Code(), reservation.ActorSystem, c.clock.Now()))
		return nil
	})
	if err != nil {
		return err
	}

	c.provision(ctx, code, deviceID)

	if err := c.notifier.Send(ctx, Notification{
		Kind:          NotifyAccessCode,
		ReservationID: res.ID(),
		UserID:        res.UserID(),
		AccessCode:    code.Code(),
		StartDate:     res.Stay().Start(),
		EndDate:       res.Stay().End(),
	}); err != nil {
		slog.Error("access code notification failed", "reservation_id", res.ID(), "error", err.Error())
	}

	return nil
}

func (c *accessCodeCommands) Ensure(ctx context.Context, res *reservation.Reservation) error {
	exists := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.AccessCodes().FindActiveByReservation(ctx, res.ID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		exists = true
		return nil
	})
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.Issue(ctx, res)
}

// provision pushes the code to the space's lock and records the device
// reference. A space without a device gets a code anyway: residents can
// still read it from their reservation.
func (c *accessCodeCommands) provision(ctx context.Context, code *accesscode.AccessCode, deviceID *string) {
	if deviceID == nil {
		return
	}

	if status, err := c.devices.Status(ctx, *deviceID); err != nil {
		slog.Warn("device status check failed, attempting provisioning anyway",
			"device_id", *deviceID, "error", err.Error())
	} else if status == DeviceOffline {
		slog.Warn("device offline, code not pushed",
			"reservation_id", code.ReservationID(), "device_id", *deviceID)
		return
	}

	ref, err := c.devices.ProvisionCode(ctx, *deviceID, code.Code(), code.ValidUntil())
	if err != nil {
		slog.Error("device provisioning failed",
			"reservation_id", code.ReservationID(), "device_id", *deviceID, "error", err.Error())
		return
	}

	code.AttachDevice(ref)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.AccessCodes().Update(ctx, code)
	})
	if err != nil {
		slog.Error("failed to persist device reference",
			"reservation_id", code.ReservationID(), "error", err.Error())
	}
}

func (c *accessCodeCommands) Regenerate(ctx context.Context, reservationID uuid.UUID, actor shared.Actor) (*accesscode.AccessCode, error) {
	var (
		code     *accesscode.AccessCode
		deviceID *string
		oldRef   *string
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.AccessCodes().FindActiveByReservation(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.NewCoded(errs.CodeAccessCodeUnavailable, "no active access code for reservation",
					errs.ErrAccessCodeNotFound, map[string]any{"reservationId": reservationID.String()})
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		sp, err := tx.Spaces().FindByID(ctx, found.SpaceID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		deviceID = sp.DeviceID()
		oldRef = found.DeviceRef()

		oldCode, err := found.Regenerate(actor.Name, c.clock.Now())
		if err != nil {
			return errs.Wrap(err, "failed to regenerate access code")
		}
		if err := tx.AccessCodes().Update(ctx, found); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		appendAuditBestEffort(ctx, tx, audit.CodeRotated(reservationID, oldCode, found.Code(), actor.Name, c.clock.Now()))

		code = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.swapOnDevice(ctx, code, deviceID, oldRef)

	return code, nil
}

// swapOnDevice replaces the code behind an existing device reference, or
// provisions from scratch when there is none. A failed in-place update falls
// back to revoke-and-provision.
func (c *accessCodeCommands) swapOnDevice(ctx context.Context, code *accesscode.AccessCode, deviceID, oldRef *string) {
	if deviceID == nil {
		return
	}
	if oldRef == nil {
		c.provision(ctx, code, deviceID)
		return
	}

	err := c.devices.UpdateCode(ctx, *deviceID, *oldRef, code.Code(), code.ValidUntil())
	if err == nil {
		return
	}
	slog.Warn("in-place device code update failed, reprovisioning",
		"reservation_id", code.ReservationID(), "device_id", *deviceID, "error", err.Error())

	if err := c.devices.RevokeCode(ctx, *deviceID, *oldRef); err != nil {
		slog.Warn("failed to revoke previous device code",
			"reservation_id", code.ReservationID(), "error", err.Error())
	}
	c.provision(ctx, code, deviceID)
}

func (c *accessCodeCommands) Revoke(ctx context.Context, reservationID uuid.UUID) {
	var (
		deviceID *string
		ref      *string
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		code, err := tx.AccessCodes().FindActiveByReservation(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil // nothing to revoke
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		sp, err := tx.Spaces().FindByID(ctx, code.SpaceID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		deviceID = sp.DeviceID()
		ref = code.DeviceRef()

		code.Deactivate()
		return tx.AccessCodes().Update(ctx, code)
	})
	if err != nil {
		slog.Error("failed to deactivate access code", "reservation_id", reservationID, "error", err.Error())
		return
	}

	if deviceID != nil && ref != nil {
		if err := c.devices.RevokeCode(ctx, *deviceID, *ref); err != nil {
			slog.Warn("failed to remove code from device",
				"reservation_id", reservationID, "device_id", *deviceID, "error", err.Error())
		}
	}
}

func (c *accessCodeCommands) Validate(ctx context.Context, reservationID uuid.UUID, code string) (bool, error) {
	valid := false
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.AccessCodes().FindActiveByReservation(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		valid = found.Code() == code && found.IsValidAt(c.clock.Now())
		return nil
	})
	if err != nil {
		return false, err
	}
	return valid, nil
}
