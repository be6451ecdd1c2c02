//go:build unit

package space_test

import (
	"testing"

	"space-booking/internal/domain/space"
	"space-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestValidateDuration(t *testing.T) {
	sp := builder.NewSpaceBuilder().
		With(func(b *builder.SpaceBuilder) {
			b.MinDurationDays = 2
			b.MaxDurationDays = 7
		}).
		BuildDomain()

	assert.ErrorIs(t, sp.ValidateDuration(1), space.ErrDurationTooShort)
	assert.NoError(t, sp.ValidateDuration(2))
	assert.NoError(t, sp.ValidateDuration(7))
	assert.ErrorIs(t, sp.ValidateDuration(8), space.ErrDurationTooLong)

	t.Run("zero bounds disable the checks", func(t *testing.T) {
		unbounded := builder.NewSpaceBuilder().
			With(func(b *builder.SpaceBuilder) {
				b.MinDurationDays = 0
				b.MaxDurationDays = 0
			}).
			BuildDomain()
		assert.NoError(t, unbounded.ValidateDuration(1))
		assert.NoError(t, unbounded.ValidateDuration(365))
	})
}

func TestNightlyRate(t *testing.T) {
	sp := builder.NewSpaceBuilder().BuildDomain()

	assert.Equal(t, int64(2500), sp.NightlyRateCents(true))
	assert.Equal(t, int64(4500), sp.NightlyRateCents(false))
}

func TestQuotaAllows(t *testing.T) {
	t.Run("global scope uses the shared counter", func(t *testing.T) {
		sp := builder.NewSpaceBuilder().
			With(func(b *builder.SpaceBuilder) {
				b.MaxAnnualReservations = 2
				b.UsedAnnualCount = 1
			}).
			BuildDomain()

		assert.True(t, sp.QuotaAllows(0))

		sp.IncrementAnnualCount()
		assert.False(t, sp.QuotaAllows(0))
	})

	t.Run("unit scope uses the derived count", func(t *testing.T) {
		sp := builder.NewSpaceBuilder().
			With(func(b *builder.SpaceBuilder) {
				b.QuotaScope = space.QuotaScopeUnit
				b.MaxAnnualReservations = 3
				b.UsedAnnualCount = 99 // counter is irrelevant for unit scope
			}).
			BuildDomain()

		assert.True(t, sp.QuotaAllows(2))
		assert.False(t, sp.QuotaAllows(3))
	})

	t.Run("zero ceiling disables the quota", func(t *testing.T) {
		sp := builder.NewSpaceBuilder().
			With(func(b *builder.SpaceBuilder) { b.MaxAnnualReservations = 0 }).
			BuildDomain()
		assert.True(t, sp.QuotaAllows(1000))
	})
}

func TestAnnualCounter(t *testing.T) {
	t.Run("decrement clamps at zero", func(t *testing.T) {
		sp := builder.NewSpaceBuilder().BuildDomain()

		sp.DecrementAnnualCount()
		assert.Equal(t, 0, sp.UsedAnnualCount())

		sp.IncrementAnnualCount()
		sp.IncrementAnnualCount()
		sp.DecrementAnnualCount()
		assert.Equal(t, 1, sp.UsedAnnualCount())
	})

	t.Run("unit scope never touches the counter", func(t *testing.T) {
		sp := builder.NewSpaceBuilder().
			With(func(b *builder.SpaceBuilder) { b.QuotaScope = space.QuotaScopeUnit }).
			BuildDomain()

		sp.IncrementAnnualCount()
		assert.Equal(t, 0, sp.UsedAnnualCount())
	})
}
