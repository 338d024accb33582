package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

// SetStatus is the master's decision on a fresh booking: confirm or
// decline. These transitions only narrow the active set, so no overlap
// re-check is needed.
type SetStatus struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
}

func NewSetStatus(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
) *SetStatus {
	return &SetStatus{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	status domain.Status,
) (*domain.View, error) {

	if status != domain.StatusConfirmed && status != domain.StatusDeclined {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanResolve(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	ap.Status = string(status)

	kind := notify.KindConfirmed
	if status == domain.StatusDeclined {
		kind = notify.KindDeclined
	}
	uc.dispatcher.Dispatch(kind, ap, nil)

	return ap, nil
}
