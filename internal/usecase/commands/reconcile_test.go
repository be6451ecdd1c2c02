//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"space-booking/internal/domain/accesscode"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/shared"
	"space-booking/tests/common/builder"
	commandsmock "space-booking/tests/mock/commands"
	sharedmock "space-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReconcileCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	spaces       *sharedmock.MockSpaceRepository
	reservations *sharedmock.MockReservationRepository
	accessCodes  *sharedmock.MockAccessCodeRepository
	auditRepo    *sharedmock.MockAuditRepository
	codes        *commandsmock.MockAccessCodeCommands
	notifier     *commandsmock.MockNotifier
	payments     *commandsmock.MockPaymentGateway
	clk          *clock.MockClock
	reconcile    commands.ReconcileCommands
}

func (s *ReconcileCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.spaces = sharedmock.NewMockSpaceRepository(s.ctrl)
	s.reservations = sharedmock.NewMockReservationRepository(s.ctrl)
	s.accessCodes = sharedmock.NewMockAccessCodeRepository(s.ctrl)
	s.auditRepo = sharedmock.NewMockAuditRepository(s.ctrl)
	s.codes = commandsmock.NewMockAccessCodeCommands(s.ctrl)
	s.notifier = commandsmock.NewMockNotifier(s.ctrl)
	s.payments = commandsmock.NewMockPaymentGateway(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC))

	s.tx.EXPECT().Spaces().Return(s.spaces).AnyTimes()
	s.tx.EXPECT().Reservations().Return(s.reservations).AnyTimes()
	s.tx.EXPECT().AccessCodes().Return(s.accessCodes).AnyTimes()
	s.tx.EXPECT().Audit().Return(s.auditRepo).AnyTimes()
	s.auditRepo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()

	s.reconcile = commands.NewReconcileCommands(s.uow, s.codes, s.notifier, s.payments, s.clk)
}

func (s *ReconcileCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReconcileCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReconcileCommandsTestSuite))
}

func (s *ReconcileCommandsTestSuite) expireSpaceFor(res *reservation.Reservation) {
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.ID = res.SpaceID()
		b.UsedAnnualCount = 1
	}).BuildDomain()
	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.spaces.EXPECT().UpdateAnnualCount(gomock.Any(), sp).Return(nil)
}

func (s *ReconcileCommandsTestSuite) TestExpireOverdue_ExpiresAndReleasesQuota() {
	overdue := builder.NewReservationBuilder().BuildDomain()

	s.reservations.EXPECT().FindExpiredPending(gomock.Any(), s.clk.Now()).
		Return([]*reservation.Reservation{overdue}, nil)
	s.reservations.EXPECT().FindByID(gomock.Any(), overdue.ID()).Return(overdue, nil)
	s.payments.EXPECT().VerifySuccess(gomock.Any(), overdue).Return(false, nil)
	s.reservations.EXPECT().Update(gomock.Any(), overdue).Return(nil)
	s.expireSpaceFor(overdue)
	s.codes.EXPECT().Revoke(gomock.Any(), overdue.ID())
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n commands.Notification) error {
			s.Equal(commands.NotifyReservationExpired, n.Kind)
			return nil
		})

	count, err := s.reconcile.ExpireOverdue(context.Background())

	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(reservation.StatusExpired, overdue.Status())
	s.Require().NotNil(overdue.CancelReason())
	s.Equal("Payment timeout reached", *overdue.CancelReason())
	s.Require().NotNil(overdue.CancelledBy())
	s.Equal(reservation.ActorSystem, *overdue.CancelledBy())
}

func (s *ReconcileCommandsTestSuite) TestExpireOverdue_SkipsReservationPaidMidSweep() {
	paid := builder.NewReservationBuilder().BuildDomain()
	overdue := builder.NewReservationBuilder().BuildDomain()

	s.reservations.EXPECT().FindExpiredPending(gomock.Any(), s.clk.Now()).
		Return([]*reservation.Reservation{paid, overdue}, nil)

	// the provider reports the first one as settled: the webhook just has not
	// landed yet, so the sweep leaves it alone
	s.reservations.EXPECT().FindByID(gomock.Any(), paid.ID()).Return(paid, nil)
	s.payments.EXPECT().VerifySuccess(gomock.Any(), paid).Return(true, nil)

	s.reservations.EXPECT().FindByID(gomock.Any(), overdue.ID()).Return(overdue, nil)
	s.payments.EXPECT().VerifySuccess(gomock.Any(), overdue).Return(false, nil)
	s.reservations.EXPECT().Update(gomock.Any(), overdue).Return(nil)
	s.expireSpaceFor(overdue)
	s.codes.EXPECT().Revoke(gomock.Any(), overdue.ID())
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	count, err := s.reconcile.ExpireOverdue(context.Background())

	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(reservation.StatusPendingPayment, paid.Status())
}

func (s *ReconcileCommandsTestSuite) TestActivateDue_ActivatesStartingToday() {
	due := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.Status = reservation.StatusConfirmed
		b.PaymentStatus = reservation.PaymentSucceeded
		b.PaymentExpiresAt = nil
	}).BuildDomain()

	s.reservations.EXPECT().FindConfirmedStartingOn(gomock.Any(), clock.Today(s.clk)).
		Return([]*reservation.Reservation{due}, nil)
	s.reservations.EXPECT().FindByID(gomock.Any(), due.ID()).Return(due, nil)
	s.reservations.EXPECT().Update(gomock.Any(), due).Return(nil)
	s.codes.EXPECT().Ensure(gomock.Any(), due).Return(nil)

	count, err := s.reconcile.ActivateDue(context.Background())

	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(reservation.StatusActive, due.Status())
}

func (s *ReconcileCommandsTestSuite) TestCompleteDue_CompletesEndedStaysAndRevokesCodes() {
	s.clk.Set(time.Date(2026, 3, 18, 6, 0, 0, 0, time.UTC))

	ended := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.Status = reservation.StatusActive
		b.PaymentStatus = reservation.PaymentSucceeded
		b.PaymentExpiresAt = nil
	}).BuildDomain()

	s.reservations.EXPECT().FindActiveEndedBefore(gomock.Any(), clock.Today(s.clk)).
		Return([]*reservation.Reservation{ended}, nil)
	s.reservations.EXPECT().FindByID(gomock.Any(), ended.ID()).Return(ended, nil)
	s.reservations.EXPECT().Update(gomock.Any(), ended).Return(nil)
	s.codes.EXPECT().Revoke(gomock.Any(), ended.ID())

	count, err := s.reconcile.CompleteDue(context.Background())

	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(reservation.StatusCompleted, ended.Status())
}

func (s *ReconcileCommandsTestSuite) TestSendReminders_DayBeforeAndDayOf() {
	today := clock.Today(s.clk)
	tomorrow := today.AddDate(0, 0, 1)

	startingToday := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.Status = reservation.StatusConfirmed
		b.PaymentStatus = reservation.PaymentSucceeded
		b.PaymentExpiresAt = nil
		b.Start = today
		b.End = today.AddDate(0, 0, 2)
	}).BuildDomain()
	startingTomorrow := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.Status = reservation.StatusConfirmed
		b.PaymentStatus = reservation.PaymentSucceeded
		b.PaymentExpiresAt = nil
		b.Start = tomorrow
		b.End = tomorrow.AddDate(0, 0, 1)
	}).BuildDomain()

	code := accesscode.Reconstruct(
		uuid.New(), startingToday.ID(), startingToday.SpaceID(),
		"A1B2C3", accesscode.StatusActive,
		today.AddDate(0, 0, 2).Add(23*time.Hour+59*time.Minute+59*time.Second),
		nil, nil, nil, s.clk.Now(),
	)

	s.reservations.EXPECT().FindConfirmedStartingOn(gomock.Any(), today).
		Return([]*reservation.Reservation{startingToday}, nil)
	s.reservations.EXPECT().FindConfirmedStartingOn(gomock.Any(), tomorrow).
		Return([]*reservation.Reservation{startingTomorrow}, nil)
	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), startingToday.ID()).Return(code, nil)

	var kinds []string
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n commands.Notification) error {
			kinds = append(kinds, n.Kind)
			if n.Kind == commands.NotifyAccessCode {
				s.Equal("A1B2C3", n.AccessCode)
			}
			return nil
		}).Times(2)

	count, err := s.reconcile.SendReminders(context.Background())

	s.Require().NoError(err)
	s.Equal(2, count)
	s.Contains(kinds, commands.NotifyStayReminder)
	s.Contains(kinds, commands.NotifyAccessCode)
}
