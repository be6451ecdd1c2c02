package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"space-booking/internal/domain/audit"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const cancelReasonPaymentTimeout = "Payment timeout reached"

type CreateReservationInput struct {
	SpaceID   uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (*reservation.Reservation, error)
	Confirm(ctx context.Context, id uuid.UUID, paymentIntentID *string) (*reservation.Reservation, error)
	Activate(ctx context.Context, id uuid.UUID, actor shared.Actor) error
	Complete(ctx context.Context, id uuid.UUID, actor shared.Actor) error
	Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor, reason string) error
	RetryPayment(ctx context.Context, id uuid.UUID, actor shared.Actor) error
	MarkPaymentFailed(ctx context.Context, id uuid.UUID) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
	Expire(ctx context.Context, id uuid.UUID, reason string) error
}

type reservationCommands struct {
	uow      shared.UnitOfWork
	factory  *reservation.Factory
	codes    AccessCodeCommands
	notifier Notifier
	payments PaymentGateway
	clock    clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	codes AccessCodeCommands,
	notifier Notifier,
	payments PaymentGateway,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommands{
		uow:      uow,
		factory:  factory,
		codes:    codes,
		notifier: notifier,
		payments: payments,
		clock:    clk,
	}
}

// Create runs the whole admission sequence inside one serializable
// transaction: stateless validation, availability across the shared group,
// annual quota, then the insert.
func (c *reservationCommands) Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (*reservation.Reservation, error) {
	var created *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sp, err := tx.Spaces().FindByID(ctx, in.SpaceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.NewCoded(errs.CodeSpaceNotFound, "space not found", errs.ErrSpaceNotFound,
					map[string]any{"spaceId": in.SpaceID.String()})
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		stay, err := c.factory.ValidateRequest(sp, in.StartDate, in.EndDate)
		if err != nil {
			return validationError(sp, err)
		}

		if err := c.ensureAvailable(ctx, tx, sp, stay, nil); err != nil {
			return err
		}
		if err := c.ensureQuota(ctx, tx, sp, actor.UnitID, stay); err != nil {
			return err
		}

		res := c.factory.CreateReservation(sp, actor.UnitID, actor.UserID, stay, actor.Privileged())

		intentID, err := c.payments.CreateIntent(ctx, res)
		if err != nil {
			return errs.NewCoded(errs.CodePaymentIntentFailed, "could not start a payment session",
				errs.ErrExternalIntegration, map[string]any{"spaceId": sp.ID().String()})
		}
		if intentID != "" {
			res.AttachPaymentIntent(intentID, c.clock.Now())
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if sp.HasAnnualQuota() && sp.QuotaScope() == space.QuotaScopeGlobal {
			sp.IncrementAnnualCount()
			if err := tx.Spaces().UpdateAnnualCount(ctx, sp); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		appendAuditBestEffort(ctx, tx, audit.Created(res.ID(), actor.Name, c.clock.Now()))

		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *reservationCommands) ensureAvailable(ctx context.Context, tx shared.Tx, sp *space.Space, stay reservation.Stay, excludeID *uuid.UUID) error {
	groupIDs, err := tx.Spaces().SharedGroupIDs(ctx, sp.ID())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	conflict, err := tx.Reservations().ExistsOverlapping(ctx, groupIDs, stay, excludeID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if conflict {
		return errs.NewCoded(errs.CodeSpaceNotAvailable, "space is not available for the requested dates",
			errs.ErrAvailabilityConflict, map[string]any{
				"spaceId":   sp.ID().String(),
				"startDate": stay.Start().Format(time.DateOnly),
				"endDate":   stay.End().Format(time.DateOnly),
			})
	}
	return nil
}

func (c *reservationCommands) ensureQuota(ctx context.Context, tx shared.Tx, sp *space.Space, unitID uuid.UUID, stay reservation.Stay) error {
	if !sp.HasAnnualQuota() {
		return nil
	}

	unitCount := 0
	if sp.QuotaScope() == space.QuotaScopeUnit {
		count, err := tx.Reservations().CountForUnitYear(ctx, sp.ID(), unitID, stay.Start().Year())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		unitCount = count
	}

	if !sp.QuotaAllows(unitCount) {
		return errs.NewCoded(errs.CodeAnnualQuotaExceeded, "annual reservation limit reached",
			errs.ErrQuotaExceeded, map[string]any{
				"spaceId": sp.ID().String(),
				"limit":   sp.MaxAnnualReservations(),
			})
	}
	return nil
}

// Confirm records the successful payment and transitions the reservation.
// Access code provisioning and notifications run after commit; their
// failures degrade the result but never revert the confirmation.
func (c *reservationCommands) Confirm(ctx context.Context, id uuid.UUID, paymentIntentID *string) (*reservation.Reservation, error) {
	var confirmed *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.Confirm(paymentIntentID, c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusConfirmed)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		now := c.clock.Now()
		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), reservation.ActorSystem, now))
		appendAuditBestEffort(ctx, tx, audit.Confirmed(res.ID(), reservation.ActorSystem, now))
		if paymentIntentID != nil {
			appendAuditBestEffort(ctx, tx, audit.PaymentReceived(res.ID(), *paymentIntentID, reservation.ActorSystem, now))
		}

		confirmed = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.codes.Issue(ctx, confirmed); err != nil {
		slog.Error("access code provisioning failed after confirmation",
			"reservation_id", confirmed.ID(), "error", err.Error())
	}
	c.notify(ctx, Notification{
		Kind:          NotifyReservationConfirmed,
		ReservationID: confirmed.ID(),
		UserID:        confirmed.UserID(),
		StartDate:     confirmed.Stay().Start(),
		EndDate:       confirmed.Stay().End(),
	})

	return confirmed, nil
}

func (c *reservationCommands) Activate(ctx context.Context, id uuid.UUID, actor shared.Actor) error {
	var activated *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.Activate(clock.Today(c.clock), c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusActive)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), actor.Name, c.clock.Now()))

		activated = res
		return nil
	})
	if err != nil {
		return err
	}

	// A stay must never start without a working code.
	if err := c.codes.Ensure(ctx, activated); err != nil {
		slog.Error("access code check failed on activation",
			"reservation_id", activated.ID(), "error", err.Error())
	}
	return nil
}

func (c *reservationCommands) Complete(ctx context.Context, id uuid.UUID, actor shared.Actor) error {
	var completed *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.Complete(clock.Today(c.clock), c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusCompleted)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), actor.Name, c.clock.Now()))

		completed = res
		return nil
	})
	if err != nil {
		return err
	}

	c.codes.Revoke(ctx, completed.ID())
	return nil
}

func (c *reservationCommands) Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor, reason string) error {
	var cancelled *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(res.UserID()) {
			return errs.NewCoded(errs.CodeReservationNotFound, "reservation not found",
				errs.ErrReservationNotFound, map[string]any{"reservationId": id.String()})
		}

		from := res.Status()
		if err := res.Cancel(reason, actor.Name, c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusCancelled)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := releaseQuotaFor(ctx, tx, res.SpaceID()); err != nil {
			return err
		}

		now := c.clock.Now()
		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), actor.Name, now))
		appendAuditBestEffort(ctx, tx, audit.Cancelled(res.ID(), reason, actor.Name, now))

		cancelled = res
		return nil
	})
	if err != nil {
		return err
	}

	c.codes.Revoke(ctx, cancelled.ID())
	c.notify(ctx, Notification{
		Kind:          NotifyReservationCancelled,
		ReservationID: cancelled.ID(),
		UserID:        cancelled.UserID(),
		StartDate:     cancelled.Stay().Start(),
		EndDate:       cancelled.Stay().End(),
	})

	return nil
}

func (c *reservationCommands) RetryPayment(ctx context.Context, id uuid.UUID, actor shared.Actor) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(res.UserID()) {
			return errs.NewCoded(errs.CodeReservationNotFound, "reservation not found",
				errs.ErrReservationNotFound, map[string]any{"reservationId": id.String()})
		}

		from := res.Status()
		if err := res.RetryPayment(c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusPendingPayment)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *reservationCommands) MarkPaymentFailed(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.MarkPaymentFailed(c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusPaymentFailed)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), reservation.ActorSystem, c.clock.Now()))
		return nil
	})
}

func (c *reservationCommands) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	var refunded *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.MarkRefunded(c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusRefunded)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := releaseQuotaFor(ctx, tx, res.SpaceID()); err != nil {
			return err
		}

		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), reservation.ActorSystem, c.clock.Now()))

		refunded = res
		return nil
	})
	if err != nil {
		return err
	}

	if ref := refunded.PaymentIntentID(); ref != nil {
		if err := c.payments.Refund(ctx, *ref); err != nil {
			slog.Error("refund request failed", "reservation_id", refunded.ID(), "error", err.Error())
		}
	}
	c.codes.Revoke(ctx, refunded.ID())

	return nil
}

// Expire handles a payment session that lapsed provider-side before the
// local window elapsed. Same effects as the sweep: release quota, drop any
// access code, record the reason (payment timeout when none is given).
func (c *reservationCommands) Expire(ctx context.Context, id uuid.UUID, reason string) error {
	if reason == "" {
		reason = cancelReasonPaymentTimeout
	}
	var expired *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		from := res.Status()
		if err := res.Expire(reason, c.clock.Now()); err != nil {
			return transitionError(err, from, reservation.StatusExpired)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := releaseQuotaFor(ctx, tx, res.SpaceID()); err != nil {
			return err
		}

		now := c.clock.Now()
		appendAuditBestEffort(ctx, tx, audit.StatusChanged(res.ID(), from.String(), res.Status().String(), reservation.ActorSystem, now))
		appendAuditBestEffort(ctx, tx, audit.Cancelled(res.ID(), reason, reservation.ActorSystem, now))

		expired = res
		return nil
	})
	if err != nil {
		return err
	}

	c.codes.Revoke(ctx, expired.ID())
	c.notify(ctx, Notification{
		Kind:          NotifyReservationExpired,
		ReservationID: expired.ID(),
		UserID:        expired.UserID(),
		StartDate:     expired.Stay().Start(),
		EndDate:       expired.Stay().End(),
	})

	return nil
}

func (c *reservationCommands) findReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.NewCoded(errs.CodeReservationNotFound, "reservation not found",
				errs.ErrReservationNotFound, map[string]any{"reservationId": id.String()})
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func releaseQuotaFor(ctx context.Context, tx shared.Tx, spaceID uuid.UUID) error {
	sp, err := tx.Spaces().FindByID(ctx, spaceID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !sp.HasAnnualQuota() || sp.QuotaScope() != space.QuotaScopeGlobal {
		return nil
	}
	sp.DecrementAnnualCount()
	if err := tx.Spaces().UpdateAnnualCount(ctx, sp); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// appendAuditBestEffort: the trail must never fail the operation it records.
func appendAuditBestEffort(ctx context.Context, tx shared.Tx, entry audit.Entry) {
	if err := tx.Audit().Append(ctx, entry); err != nil {
		slog.Error("failed to append audit entry",
			"reservation_id", entry.ReservationID(),
			"event_type", entry.EventType(),
			"error", err.Error())
	}
}

func (c *reservationCommands) notify(ctx context.Context, n Notification) {
	if err := c.notifier.Send(ctx, n); err != nil {
		slog.Error("notification delivery failed",
			"kind", n.Kind, "reservation_id", n.ReservationID, "error", err.Error())
	}
}

func validationError(sp *space.Space, err error) error {
	switch {
	case errors.Is(err, reservation.ErrInvalidDateRange):
		return errs.NewCoded(errs.CodeInvalidDateRange, "end date must not be before start date", errs.ErrValidation, nil)
	case errors.Is(err, reservation.ErrStartInPast):
		return errs.NewCoded(errs.CodeStartDateInPast, "start date cannot be in the past", errs.ErrValidation, nil)
	case errors.Is(err, space.ErrInactive):
		return errs.NewCoded(errs.CodeSpaceInactive, "space is not active", errs.ErrValidation,
			map[string]any{"spaceId": sp.ID().String()})
	case errors.Is(err, space.ErrDurationTooShort):
		return errs.NewCoded(errs.CodeDurationTooShort, "stay is shorter than the minimum duration", errs.ErrValidation,
			map[string]any{"minDays": sp.MinDurationDays()})
	case errors.Is(err, space.ErrDurationTooLong):
		return errs.NewCoded(errs.CodeDurationTooLong, "stay is longer than the maximum duration", errs.ErrValidation,
			map[string]any{"maxDays": sp.MaxDurationDays()})
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

func transitionError(err error, from, to reservation.Status) error {
	if errors.Is(err, reservation.ErrInvalidTransition) {
		return errs.NewCoded(errs.CodeInvalidTransition, "reservation state does not allow this operation",
			errs.ErrInvalidStateTransition, map[string]any{
				"from": from.String(),
				"to":   to.String(),
			})
	}
	return err
}
