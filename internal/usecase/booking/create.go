package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	"github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/models"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
	"github.com/afaeffea/salon-bot-tg/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ClientID  uint
	MasterID  uint
	ServiceID uint

	Date  string // "2006-01-02"
	Start string // "15:04"

	ClientName  string
	ClientPhone string
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo       domain.Repository
	catalog    catalog.Repository
	dispatcher *notify.Dispatcher
}

func NewCreate(
	repo domain.Repository,
	catalogRepo catalog.Repository,
	dispatcher *notify.Dispatcher,
) *Create {
	return &Create{
		repo:       repo,
		catalog:    catalogRepo,
		dispatcher: dispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the request, resolves the effective service duration
// and hands the appointment to the ledger, which performs the
// authoritative conflict check. Overlap surfaces as httperr code
// "time_conflict" and is never retried here: the client must pick
// another slot.
func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*domain.View, error) {

	// --------------------------------------------------
	// 1. Input validation (before touching the store)
	// --------------------------------------------------
	if !validators.ValidDate(in.Date) || !validators.ValidTime(in.Start) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	name, ok := validators.ValidName(in.ClientName)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_name")
	}

	phone := validators.NormalizePhone(in.ClientPhone)
	if phone == "" {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	// --------------------------------------------------
	// 2. Master + effective duration
	// --------------------------------------------------
	master, err := uc.catalog.GetMaster(ctx, in.MasterID)
	if err != nil {
		return nil, err
	}

	duration, err := uc.catalog.EffectiveDuration(ctx, in.MasterID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	startMin := schedule.ToMinutes(in.Start)
	endMin := startMin + duration
	if endMin > 24*60 {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Conflict-checked insert (atomic in the ledger)
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    in.ClientID,
		MasterID:    master.ID,
		ServiceID:   in.ServiceID,
		Date:        in.Date,
		StartTime:   in.Start,
		EndTime:     schedule.FromMinutes(endMin),
		ClientName:  name,
		ClientPhone: phone,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	view, err := uc.repo.GetByID(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.KindBookingCreated, view, nil)

	return view, nil
}
