package reservation

import "math"

// PriceBreakdown itemizes every component of a reservation's price. The
// total always equals the sum of its parts.
type PriceBreakdown struct {
	NightlyRate Money
	Days        int
	DaysTotal   Money
	CleaningFee Money
	Deposit     Money
	PlatformFee Money
	FixedFee    Money
	Total       Money
	Currency    string
}

// FeePolicy is the platform's cut on top of the space price. Percent applies
// to the days total plus cleaning fee; FixedFeeCents is charged once.
type FeePolicy struct {
	Percent       float64
	FixedFeeCents int64
}

type Calculator struct {
	fees FeePolicy
}

func NewCalculator(fees FeePolicy) *Calculator {
	return &Calculator{fees: fees}
}

// Calculate produces the deterministic breakdown for a stay. The percentage
// fee is rounded half-up to the nearest cent. A zero fee base yields zero
// platform fees so free internal bookings stay free.
func (c *Calculator) Calculate(nightlyRateCents, cleaningFeeCents, depositCents int64, days int, currency string) PriceBreakdown {
	daysTotal := nightlyRateCents * int64(days)
	feeBase := daysTotal + cleaningFeeCents

	var platformFee, fixedFee int64
	if feeBase > 0 {
		platformFee = roundHalfUp(float64(feeBase) * c.fees.Percent / 100)
		fixedFee = c.fees.FixedFeeCents
	}

	total := daysTotal + cleaningFeeCents + depositCents + platformFee + fixedFee

	return PriceBreakdown{
		NightlyRate: NewMoney(nightlyRateCents),
		Days:        days,
		DaysTotal:   NewMoney(daysTotal),
		CleaningFee: NewMoney(cleaningFeeCents),
		Deposit:     NewMoney(depositCents),
		PlatformFee: NewMoney(platformFee),
		FixedFee:    NewMoney(fixedFee),
		Total:       NewMoney(total),
		Currency:    currency,
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
