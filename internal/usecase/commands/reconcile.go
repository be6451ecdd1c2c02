package commands

import (
	"context"
	"errors"
	"log/slog"

	"space-booking/internal/domain/audit"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReconcileCommands are the system-driven sweeps: expiry of unpaid
// reservations, day-of activation, completion and reminder delivery.
// Every sweep processes reservations independently so one failure never
// stalls the rest.
type ReconcileCommands interface {
	ExpireOverdue(ctx context.Context) (int, error)
	ActivateDue(ctx context.Context) (int, error)
	CompleteDue(ctx context.Context) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

// errNotExpirable: the provider reports the session as paid, so the
// reservation waits for its confirmation webhook instead of expiring.
var errNotExpirable = errs.New("reservation settled, not expirable")

type reconcileCommands struct {
	uow      shared.UnitOfWork
	codes    AccessCodeCommands
	notifier Notifier
	payments PaymentGateway
	clock    clock.Clock
}

func NewReconcileCommands(uow shared.UnitOfWork, codes AccessCodeCommands, notifier Notifier, payments PaymentGateway, clk clock.Clock) ReconcileCommands {
	return &reconcileCommands{
		uow:      uow,
		codes:    codes,
		notifier: notifier,
		payments: payments,
		clock:    clk,
	}
}

func (c *reconcileCommands) ExpireOverdue(ctx context.Context) (int, error) {
	overdue, err := c.collect(ctx, func(ctx context.Context, tx shared.Tx) ([]*reservation.Reservation, error) {
		return tx.Reservations().FindExpiredPending(ctx, c.clock.Now())
	})
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range overdue {
		if c.expireOne(ctx, id) {
			expired++
		}
	}
	return expired, nil
}

func (c *reconcileCommands) expireOne(ctx context.Context, id uuid.UUID) bool {
	var res *reservation.Reservation

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// The webhook can lag the actual charge. Ask the provider before
		// throwing the reservation away.
		if paid, err := c.payments.VerifySuccess(ctx, found); err != nil {
			slog.Warn("payment verification failed, deferring expiry",
				"reservation_id", id, "error", err.Error())
			return errs.Mark(err, errs.ErrExternalIntegration)
		} else if paid {
			slog.Info("payment settled out of band, skipping expiry", "reservation_id", id)
			return errNotExpirable
		}

		from := found.Status()
		if err := found.Expire(cancelReasonPaymentTimeout, c.clock.Now()); err != nil {
			// Someone paid between the sweep query and this transaction.
			return err
		}
		if err := tx.Reservations().Update(ctx, found); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := releaseQuotaFor(ctx, tx, found.SpaceID()); err != nil {
			return err
		}

		now := c.clock.Now()
		appendAuditBestEffort(ctx, tx, audit.StatusChanged(found.ID(), from.String(), found.Status().String(), reservation.ActorSystem, now))
		appendAuditBestEffort(ctx, tx, audit.Cancelled(found.ID(), cancelReasonPaymentTimeout, reservation.ActorSystem, now))

		res = found
		return nil
	})
	if err != nil {
		if !errors.Is(err, errNotExpirable) {
			slog.Warn("skipping reservation during expiry sweep", "reservation_id", id, "error", err.Error())
		}
		return false
	}

	c.codes.Revoke(ctx, res.ID())
	c.notifyBestEffort(ctx, Notification{
		Kind:          NotifyReservationExpired,
		ReservationID: res.ID(),
		UserID:        res.UserID(),
		StartDate:     res.Stay().Start(),
		EndDate:       res.Stay().End(),
	})
	return true
}

func (c *reconcileCommands) ActivateDue(ctx context.Context) (int, error) {
	due, err := c.collect(ctx, func(ctx context.Context, tx shared.Tx) ([]*reservation.Reservation, error) {
		return tx.Reservations().FindConfirmedStartingOn(ctx, clock.Today(c.clock))
	})
	if err != nil {
		return 0, err
	}

	activated := 0
	for _, id := range due {
		var res *reservation.Reservation
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			found, err := tx.Reservations().FindByID(ctx, id)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			from := found.Status()
			if err := found.Activate(clock.Today(c.clock), c.clock.Now()); err != nil {
				return err
			}
			if err := tx.Reservations().Update(ctx, found); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			appendAuditBestEffort(ctx, tx, audit.StatusChanged(found.ID(), from.String(), found.Status().String(), reservation.ActorSystem, c.clock.Now()))
			res = found
			return nil
		})
		if err != nil {
			slog.Warn("skipping reservation during activation sweep", "reservation_id", id, "error", err.Error())
			continue
		}
		if err := c.codes.Ensure(ctx, res); err != nil {
			slog.Error("access code check failed during activation sweep",
				"reservation_id", id, "error", err.Error())
		}
		activated++
	}
	return activated, nil
}

func (c *reconcileCommands) CompleteDue(ctx context.Context) (int, error) {
	due, err := c.collect(ctx, func(ctx context.Context, tx shared.Tx) ([]*reservation.Reservation, error) {
		return tx.Reservations().FindActiveEndedBefore(ctx, clock.Today(c.clock))
	})
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, id := range due {
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			found, err := tx.Reservations().FindByID(ctx, id)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			from := found.Status()
			if err := found.Complete(clock.Today(c.clock), c.clock.Now()); err != nil {
				return err
			}
			if err := tx.Reservations().Update(ctx, found); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			appendAuditBestEffort(ctx, tx, audit.StatusChanged(found.ID(), from.String(), found.Status().String(), reservation.ActorSystem, c.clock.Now()))
			return nil
		})
		if err != nil {
			slog.Warn("skipping reservation during completion sweep", "reservation_id", id, "error", err.Error())
			continue
		}
		c.codes.Revoke(ctx, id)
		completed++
	}
	return completed, nil
}

// SendReminders delivers day-before stay reminders and re-sends access codes
// for stays starting today.
func (c *reconcileCommands) SendReminders(ctx context.Context) (int, error) {
	today := clock.Today(c.clock)
	tomorrow := today.AddDate(0, 0, 1)

	sent := 0

	var startingToday, startingTomorrow []*reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if startingToday, err = tx.Reservations().FindConfirmedStartingOn(ctx, today); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if startingTomorrow, err = tx.Reservations().FindConfirmedStartingOn(ctx, tomorrow); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, res := range startingTomorrow {
		c.notifyBestEffort(ctx, Notification{
			Kind:          NotifyStayReminder,
			ReservationID: res.ID(),
			UserID:        res.UserID(),
			StartDate:     res.Stay().Start(),
			EndDate:       res.Stay().End(),
		})
		sent++
	}

	for _, res := range startingToday {
		code, err := c.findActiveCode(ctx, res.ID())
		if err != nil {
			slog.Warn("no access code for day-of reminder", "reservation_id", res.ID(), "error", err.Error())
			continue
		}
		c.notifyBestEffort(ctx, Notification{
			Kind:          NotifyAccessCode,
			ReservationID: res.ID(),
			UserID:        res.UserID(),
			AccessCode:    code,
			StartDate:     res.Stay().Start(),
			EndDate:       res.Stay().End(),
		})
		sent++
	}

	return sent, nil
}

func (c *reconcileCommands) findActiveCode(ctx context.Context, reservationID uuid.UUID) (string, error) {
	var code string
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.AccessCodes().FindActiveByReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		code = found.Code()
		return nil
	})
	return code, err
}

func (c *reconcileCommands) collect(
	ctx context.Context,
	find func(ctx context.Context, tx shared.Tx) ([]*reservation.Reservation, error),
) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := find(ctx, tx)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, res := range found {
			ids = append(ids, res.ID())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *reconcileCommands) notifyBestEffort(ctx context.Context, n Notification) {
	if err := c.notifier.Send(ctx, n); err != nil {
		slog.Error("notification delivery failed",
			"kind", n.Kind, "reservation_id", n.ReservationID, "error", err.Error())
	}
}
