//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"space-booking/internal/domain/accesscode"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/shared"
	"space-booking/tests/common/builder"
	commandsmock "space-booking/tests/mock/commands"
	sharedmock "space-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AccessCodeCommandsTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	spaces      *sharedmock.MockSpaceRepository
	accessCodes *sharedmock.MockAccessCodeRepository
	auditRepo   *sharedmock.MockAuditRepository
	devices     *commandsmock.MockDeviceGateway
	notifier    *commandsmock.MockNotifier
	clk         *clock.MockClock
	codes       commands.AccessCodeCommands
}

func (s *AccessCodeCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.spaces = sharedmock.NewMockSpaceRepository(s.ctrl)
	s.accessCodes = sharedmock.NewMockAccessCodeRepository(s.ctrl)
	s.auditRepo = sharedmock.NewMockAuditRepository(s.ctrl)
	s.devices = commandsmock.NewMockDeviceGateway(s.ctrl)
	s.notifier = commandsmock.NewMockNotifier(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	s.tx.EXPECT().Spaces().Return(s.spaces).AnyTimes()
	s.tx.EXPECT().AccessCodes().Return(s.accessCodes).AnyTimes()
	s.tx.EXPECT().Audit().Return(s.auditRepo).AnyTimes()
	s.auditRepo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()

	s.codes = commands.NewAccessCodeCommands(s.uow, s.devices, s.notifier, s.clk)
}

func (s *AccessCodeCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAccessCodeCommandsSuite(t *testing.T) {
	suite.Run(t, new(AccessCodeCommandsTestSuite))
}

func (s *AccessCodeCommandsTestSuite) activeCode(reservationID, spaceID uuid.UUID, deviceRef *string) *accesscode.AccessCode {
	return accesscode.Reconstruct(
		uuid.New(), reservationID, spaceID,
		"A1B2C3", accesscode.StatusActive,
		time.Date(2026, 3, 17, 23, 59, 59, 0, time.UTC),
		deviceRef, nil, nil, s.clk.Now(),
	)
}

func (s *AccessCodeCommandsTestSuite) TestIssue_ProvisionsOnDeviceAndNotifies() {
	deviceID := "lock-42"
	res := builder.NewReservationBuilder().BuildDomain()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.ID = res.SpaceID()
		b.DeviceID = &deviceID
	}).BuildDomain()

	var issued *accesscode.AccessCode
	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, code *accesscode.AccessCode) error {
			issued = code
			return nil
		})
	s.devices.EXPECT().Status(gomock.Any(), deviceID).Return(commands.DeviceOnline, nil)
	s.devices.EXPECT().ProvisionCode(gomock.Any(), deviceID, gomock.Any(), gomock.Any()).Return("ref-1", nil)
	s.accessCodes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n commands.Notification) error {
			s.Equal(commands.NotifyAccessCode, n.Kind)
			s.Len(n.AccessCode, 6)
			return nil
		})

	err := s.codes.Issue(context.Background(), res)

	s.Require().NoError(err)
	s.Require().NotNil(issued)
	s.Len(issued.Code(), 6)
	s.Require().NotNil(issued.DeviceRef())
	s.Equal("ref-1", *issued.DeviceRef())
	// end-of-stay expiry for stays that end in the future
	s.Equal(time.Date(2026, 3, 17, 23, 59, 59, 0, time.UTC), issued.ValidUntil())
}

func (s *AccessCodeCommandsTestSuite) TestIssue_SpaceWithoutDeviceSkipsProvisioning() {
	res := builder.NewReservationBuilder().BuildDomain()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.ID = res.SpaceID()
		b.DeviceID = nil
	}).BuildDomain()

	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	err := s.codes.Issue(context.Background(), res)

	s.Require().NoError(err)
}

func (s *AccessCodeCommandsTestSuite) TestIssue_ProvisioningFailureStillIssues() {
	deviceID := "lock-42"
	res := builder.NewReservationBuilder().BuildDomain()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.ID = res.SpaceID()
		b.DeviceID = &deviceID
	}).BuildDomain()

	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.devices.EXPECT().Status(gomock.Any(), deviceID).Return(commands.DeviceOnline, nil)
	s.devices.EXPECT().ProvisionCode(gomock.Any(), deviceID, gomock.Any(), gomock.Any()).
		Return("", errors.New("bridge unreachable"))
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	err := s.codes.Issue(context.Background(), res)

	s.Require().NoError(err)
}

func (s *AccessCodeCommandsTestSuite) TestIssue_OfflineDeviceSkipsProvisioning() {
	deviceID := "lock-42"
	res := builder.NewReservationBuilder().BuildDomain()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.ID = res.SpaceID()
		b.DeviceID = &deviceID
	}).BuildDomain()

	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.devices.EXPECT().Status(gomock.Any(), deviceID).Return(commands.DeviceOffline, nil)
	// no ProvisionCode expectation: nothing is pushed to an offline lock
	s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	err := s.codes.Issue(context.Background(), res)

	s.Require().NoError(err)
}

func (s *AccessCodeCommandsTestSuite) TestEnsure_IssuesOnlyWhenMissing() {
	res := builder.NewReservationBuilder().BuildDomain()

	s.Run("active code already present", func() {
		code := s.activeCode(res.ID(), res.SpaceID(), nil)
		s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), res.ID()).Return(code, nil)

		s.Require().NoError(s.codes.Ensure(context.Background(), res))
	})

	s.Run("missing code is issued", func() {
		sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
			b.ID = res.SpaceID()
			b.DeviceID = nil
		}).BuildDomain()

		s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), res.ID()).
			Return(nil, infra.WrapRepoErr(infra.KindNotFound, "access code not found", errors.New("no rows")))
		s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
		s.accessCodes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.codes.Ensure(context.Background(), res))
	})
}

func (s *AccessCodeCommandsTestSuite) TestRegenerate_RotatesCodeInPlaceOnDevice() {
	deviceID := "lock-42"
	oldRef := "ref-old"
	reservationID := uuid.New()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.DeviceID = &deviceID
	}).BuildDomain()
	code := s.activeCode(reservationID, sp.ID(), &oldRef)
	actor := shared.Actor{UserID: uuid.New(), UnitID: uuid.New(), Name: "Alice Tenant", Role: shared.RoleTenant}

	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).Return(code, nil)
	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Update(gomock.Any(), code).Return(nil)
	s.devices.EXPECT().UpdateCode(gomock.Any(), deviceID, oldRef, gomock.Any(), code.ValidUntil()).Return(nil)

	rotated, err := s.codes.Regenerate(context.Background(), reservationID, actor)

	s.Require().NoError(err)
	s.NotEqual("A1B2C3", rotated.Code())
	s.Len(rotated.Code(), 6)
	s.Require().NotNil(rotated.RegeneratedBy())
	s.Equal("Alice Tenant", *rotated.RegeneratedBy())
	s.Require().NotNil(rotated.RegeneratedAt())
	s.Equal(s.clk.Now(), *rotated.RegeneratedAt())
	// the in-place update keeps the existing device reference
	s.Require().NotNil(rotated.DeviceRef())
	s.Equal(oldRef, *rotated.DeviceRef())
}

func (s *AccessCodeCommandsTestSuite) TestRegenerate_FailedUpdateFallsBackToReprovision() {
	deviceID := "lock-42"
	oldRef := "ref-old"
	reservationID := uuid.New()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.DeviceID = &deviceID
	}).BuildDomain()
	code := s.activeCode(reservationID, sp.ID(), &oldRef)
	actor := shared.Actor{Name: "Bob Board", Role: shared.RoleBoard}

	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).Return(code, nil)
	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Update(gomock.Any(), code).Return(nil).Times(2)
	s.devices.EXPECT().UpdateCode(gomock.Any(), deviceID, oldRef, gomock.Any(), code.ValidUntil()).
		Return(errors.New("code slot locked"))
	s.devices.EXPECT().RevokeCode(gomock.Any(), deviceID, oldRef).Return(nil)
	s.devices.EXPECT().Status(gomock.Any(), deviceID).Return(commands.DeviceOnline, nil)
	s.devices.EXPECT().ProvisionCode(gomock.Any(), deviceID, gomock.Any(), code.ValidUntil()).Return("ref-new", nil)

	rotated, err := s.codes.Regenerate(context.Background(), reservationID, actor)

	s.Require().NoError(err)
	s.Require().NotNil(rotated.DeviceRef())
	s.Equal("ref-new", *rotated.DeviceRef())
}

func (s *AccessCodeCommandsTestSuite) TestRegenerate_NoActiveCode() {
	reservationID := uuid.New()
	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).
		Return(nil, infra.WrapRepoErr(infra.KindNotFound, "access code not found", errors.New("no rows")))

	_, err := s.codes.Regenerate(context.Background(), reservationID, shared.Actor{Name: "Alice"})

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrAccessCodeNotFound)
	var coded *errs.CodedError
	s.Require().ErrorAs(err, &coded)
	s.Equal(errs.CodeAccessCodeUnavailable, coded.Code)
}

func (s *AccessCodeCommandsTestSuite) TestRevoke_DeactivatesAndRemovesFromDevice() {
	deviceID := "lock-42"
	ref := "ref-1"
	reservationID := uuid.New()
	sp := builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
		b.DeviceID = &deviceID
	}).BuildDomain()
	code := s.activeCode(reservationID, sp.ID(), &ref)

	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).Return(code, nil)
	s.spaces.EXPECT().FindByID(gomock.Any(), sp.ID()).Return(sp, nil)
	s.accessCodes.EXPECT().Update(gomock.Any(), code).Return(nil)
	s.devices.EXPECT().RevokeCode(gomock.Any(), deviceID, ref).Return(nil)

	s.codes.Revoke(context.Background(), reservationID)

	s.Equal(accesscode.StatusInactive, code.Status())
}

func (s *AccessCodeCommandsTestSuite) TestRevoke_NothingActiveIsNoop() {
	reservationID := uuid.New()
	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).
		Return(nil, infra.WrapRepoErr(infra.KindNotFound, "access code not found", errors.New("no rows")))

	s.codes.Revoke(context.Background(), reservationID)
}

func (s *AccessCodeCommandsTestSuite) TestValidate() {
	reservationID := uuid.New()
	code := s.activeCode(reservationID, uuid.New(), nil)

	cases := []struct {
		name      string
		presented string
		at        time.Time
		want      bool
	}{
		{"matching code within validity", "A1B2C3", time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC), true},
		{"wrong code", "XXXXXX", time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC), false},
		{"expired code", "A1B2C3", time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.clk.Set(tc.at)
			s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).Return(code, nil)

			valid, err := s.codes.Validate(context.Background(), reservationID, tc.presented)

			s.Require().NoError(err)
			s.Equal(tc.want, valid)
		})
	}
}

func (s *AccessCodeCommandsTestSuite) TestValidate_NoActiveCodeIsInvalid() {
	reservationID := uuid.New()
	s.accessCodes.EXPECT().FindActiveByReservation(gomock.Any(), reservationID).
		Return(nil, infra.WrapRepoErr(infra.KindNotFound, "access code not found", errors.New("no rows")))

	valid, err := s.codes.Validate(context.Background(), reservationID, "A1B2C3")

	s.Require().NoError(err)
	s.False(valid)
}
