package reservation

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusActive         Status = "ACTIVE"
	StatusCompleted      Status = "COMPLETED"
	StatusPaymentFailed  Status = "PAYMENT_FAILED"
	StatusCancelled      Status = "CANCELLED"
	StatusExpired        Status = "EXPIRED"
	StatusRefunded       Status = "REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusActive, StatusCompleted,
		StatusPaymentFailed, StatusCancelled, StatusExpired, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired, StatusRefunded:
		return true
	default:
		return false
	}
}

// Blocks reports whether a reservation in this status still occupies its
// dates for availability purposes.
func (s Status) Blocks() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusActive:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentSucceeded, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}
