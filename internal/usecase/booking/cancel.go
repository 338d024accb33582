package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

type Cancel struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	appointmentID uint,
) (*domain.View, error) {

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, appointmentID, domain.StatusCancelled); err != nil {
		return nil, err
	}
	ap.Status = string(domain.StatusCancelled)

	uc.dispatcher.Dispatch(notify.KindCancelled, ap, nil)

	return ap, nil
}
