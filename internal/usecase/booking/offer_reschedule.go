package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	"github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
	"github.com/afaeffea/salon-bot-tg/internal/validators"
)

type OfferRescheduleInput struct {
	AppointmentID uint
	ProposedDate  string // "2006-01-02"
	ProposedStart string // "15:04"
}

// OfferReschedule moves a pending or confirmed appointment into the
// negotiation state. The proposed end is derived from the same effective
// duration the original booking used. The original slot stays occupied
// by the appointment itself until the client resolves the offer; the
// proposed slot is NOT reserved.
type OfferReschedule struct {
	repo       domain.Repository
	catalog    catalog.Repository
	dispatcher *notify.Dispatcher
}

func NewOfferReschedule(
	repo domain.Repository,
	catalogRepo catalog.Repository,
	dispatcher *notify.Dispatcher,
) *OfferReschedule {
	return &OfferReschedule{
		repo:       repo,
		catalog:    catalogRepo,
		dispatcher: dispatcher,
	}
}

func (uc *OfferReschedule) Execute(
	ctx context.Context,
	in OfferRescheduleInput,
) (*domain.View, error) {

	if !validators.ValidDate(in.ProposedDate) || !validators.ValidTime(in.ProposedStart) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	ap, err := uc.repo.GetByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanOfferReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	duration, err := uc.catalog.EffectiveDuration(ctx, ap.MasterID, ap.ServiceID)
	if err != nil {
		return nil, err
	}

	startMin := schedule.ToMinutes(in.ProposedStart)
	endMin := startMin + duration
	if endMin > 24*60 {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	proposedEnd := schedule.FromMinutes(endMin)

	if err := uc.repo.OfferReschedule(
		ctx,
		in.AppointmentID,
		in.ProposedDate,
		in.ProposedStart,
		proposedEnd,
	); err != nil {
		return nil, err
	}

	ap, err = uc.repo.GetByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.KindRescheduleOffered, ap, nil)

	return ap, nil
}
