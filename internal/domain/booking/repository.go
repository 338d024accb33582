package booking

import (
	"context"

	"github.com/afaeffea/salon-bot-tg/internal/models"
)

// Repository is the appointment ledger. Create and AcceptReschedule are
// the only operations with a race: both must run their overlap check and
// their writes as one atomic unit, serialized against concurrent writers
// for the same master. Implementations surface a detected overlap as
// httperr code "time_conflict" (Create) or "slot_unavailable"
// (AcceptReschedule) with no partial mutation.
type Repository interface {
	// Create inserts ap with status pending after verifying that no
	// active appointment of the same master and date overlaps
	// [StartTime,EndTime).
	Create(ctx context.Context, ap *models.Appointment) error

	GetByID(ctx context.Context, id uint) (*View, error)

	// List returns joined views ordered by date then start time. A nil
	// ClientID and MasterID lists the whole ledger (operator views).
	List(ctx context.Context, f ListFilter) ([]View, error)

	// ListActiveOnDate feeds the availability computation: intervals of
	// appointments in ActiveStatuses for (master, date).
	ListActiveOnDate(ctx context.Context, masterID uint, date string) ([]BookedSlot, error)

	UpdateStatus(ctx context.Context, id uint, status Status) error

	// OfferReschedule stores the proposal and the current status, then
	// moves the appointment to reschedule_offered.
	OfferReschedule(ctx context.Context, id uint, proposedDate, proposedStart, proposedEnd string) error

	// AcceptReschedule clones the appointment into a confirmed one at
	// the proposed slot and marks the original rescheduled, inside the
	// same transaction as the overlap check. The original's own id is
	// excluded from the scan; the check covers everything else booked
	// against the proposed interval since the offer was made.
	AcceptReschedule(ctx context.Context, id uint) (*View, error)

	// DeclineReschedule restores the status saved at offer time
	// (declined when none was saved) and clears the proposal fields.
	DeclineReschedule(ctx context.Context, id uint) error
}
