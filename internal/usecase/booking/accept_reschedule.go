package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

// AcceptReschedule resolves an offer in the master's favor: a new
// confirmed appointment is created at the proposed slot and the original
// becomes rescheduled, both inside the ledger's atomic conflict check.
// When the proposed slot was taken in the meantime the ledger reports
// "slot_unavailable" and nothing changes; the offer stays open.
type AcceptReschedule struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
}

func NewAcceptReschedule(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
) *AcceptReschedule {
	return &AcceptReschedule{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

func (uc *AcceptReschedule) Execute(
	ctx context.Context,
	appointmentID uint,
) (*domain.View, error) {

	old, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanResolveReschedule(domain.Status(old.Status)); err != nil {
		return nil, err
	}

	created, err := uc.repo.AcceptReschedule(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.KindRescheduleAccepted, created, old)

	return created, nil
}
