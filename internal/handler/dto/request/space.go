package request

import (
	"time"

	"space-booking/internal/domain/reservation"
)

// DateRangeQuery binds ?start=YYYY-MM-DD&end=YYYY-MM-DD query parameters.
type DateRangeQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

func (q DateRangeQuery) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, q.Start)
	if err != nil {
		return time.Time{}, time.Time{}, reservation.ErrInvalidDateRange
	}
	end, err := time.Parse(time.DateOnly, q.End)
	if err != nil {
		return time.Time{}, time.Time{}, reservation.ErrInvalidDateRange
	}
	return start, end, nil
}
