package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

// DeclineReschedule reverts the appointment to the status it held when
// the offer was made and clears the proposal fields.
type DeclineReschedule struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
}

func NewDeclineReschedule(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
) *DeclineReschedule {
	return &DeclineReschedule{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

func (uc *DeclineReschedule) Execute(
	ctx context.Context,
	appointmentID uint,
) (*domain.View, error) {

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanResolveReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if err := uc.repo.DeclineReschedule(ctx, appointmentID); err != nil {
		return nil, err
	}

	ap, err = uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.KindRescheduleDeclined, ap, nil)

	return ap, nil
}
