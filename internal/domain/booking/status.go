package booking

import "github.com/afaeffea/salon-bot-tg/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending           Status = "pending"
	StatusConfirmed         Status = "confirmed"
	StatusDeclined          Status = "declined"
	StatusCancelled         Status = "cancelled"
	StatusRescheduleOffered Status = "reschedule_offered"
	StatusRescheduled       Status = "rescheduled"
)

// ActiveStatuses are the statuses that occupy the master's calendar and
// count toward the no-overlap invariant.
var ActiveStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusRescheduleOffered,
}

func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusRescheduleOffered
}

// ===============================
// Validations
// ===============================

// CanResolve checks a provider decision on a fresh booking.
func CanResolve(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel allows cancellation of any not-yet-terminal appointment.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanOfferReschedule: only pending or confirmed appointments may enter
// the reschedule negotiation.
func CanOfferReschedule(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanResolveReschedule checks accept/decline of a pending offer.
func CanResolveReschedule(current Status) error {
	if current != StatusRescheduleOffered {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
