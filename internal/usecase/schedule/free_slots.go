package schedule

import (
	"context"
	"time"

	"github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	domain "github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/timezone"
	"github.com/afaeffea/salon-bot-tg/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type FreeSlotsInput struct {
	MasterID  uint
	ServiceID uint
	Date      string // "2006-01-02"

	// ExcludeAppointmentID drops one appointment from the booked set,
	// used while a reschedule offer is being assembled for it. 0 = none.
	ExcludeAppointmentID uint
}

// ======================================================
// USE CASE
// ======================================================

type FreeSlots struct {
	catalog  catalog.Repository
	schedule domain.Repository
	bookings booking.Repository

	// now is replaceable in tests; defaults to the configured timezone.
	now func() time.Time
}

func NewFreeSlots(
	catalogRepo catalog.Repository,
	scheduleRepo domain.Repository,
	bookingRepo booking.Repository,
	tz string,
) *FreeSlots {
	return &FreeSlots{
		catalog:  catalogRepo,
		schedule: scheduleRepo,
		bookings: bookingRepo,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute returns the advisory list of bookable "HH:MM" start times.
// The booking ledger remains the authority: a returned slot can still be
// lost to a concurrent booking.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	in FreeSlotsInput,
) ([]string, error) {

	if !validators.ValidDate(in.Date) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	master, err := uc.catalog.GetMaster(ctx, in.MasterID)
	if err != nil {
		return nil, err
	}

	duration, err := uc.catalog.EffectiveDuration(ctx, in.MasterID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	weekday := mondayBasedWeekday(date)

	rule, breaks, err := domain.Resolve(
		ctx,
		uc.schedule,
		master.ID,
		master.AllowPersonalSchedule,
		weekday,
	)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return []string{}, nil // day off
	}

	blocks, err := uc.schedule.ListBlocksForDate(ctx, master.ID, in.Date)
	if err != nil {
		return nil, err
	}

	active, err := uc.bookings.ListActiveOnDate(ctx, master.ID, in.Date)
	if err != nil {
		return nil, err
	}
	booked := make([]domain.Window, 0, len(active))
	for _, a := range active {
		if in.ExcludeAppointmentID != 0 && a.ID == in.ExcludeAppointmentID {
			continue
		}
		booked = append(booked, domain.Window{Start: a.StartTime, End: a.EndTime})
	}

	cutoff := domain.NoCutoff
	now := uc.now()
	if in.Date == now.Format("2006-01-02") {
		cutoff = now.Hour()*60 + now.Minute() + domain.LeadTimeMin
	}

	return domain.FreeSlots(domain.DayInput{
		Rule:        *rule,
		Breaks:      breaks,
		Blocks:      blocks,
		Booked:      booked,
		DurationMin: duration,
		CutoffMin:   cutoff,
	}), nil
}

// mondayBasedWeekday maps time.Weekday (Sunday=0) onto the schedule
// convention 0=Monday … 6=Sunday.
func mondayBasedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
