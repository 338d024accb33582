package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	domain "github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type fakeCatalog struct {
	master   *models.Master
	duration int
}

var _ catalog.Repository = (*fakeCatalog)(nil)

func (f *fakeCatalog) GetMaster(_ context.Context, id uint) (*models.Master, error) {
	if f.master == nil || f.master.ID != id {
		return nil, httperr.ErrBusiness("master_not_found")
	}
	return f.master, nil
}

func (f *fakeCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	return &models.Service{ID: id}, nil
}

func (f *fakeCatalog) EffectiveDuration(_ context.Context, _, _ uint) (int, error) {
	return f.duration, nil
}

func (f *fakeCatalog) EffectivePrice(_ context.Context, _, _ uint) (string, error) {
	return "", nil
}

func (f *fakeCatalog) ListServicesForMaster(_ context.Context, _ uint) ([]catalog.Offering, error) {
	return nil, nil
}

func (f *fakeCatalog) ListMastersForService(_ context.Context, _ uint) ([]catalog.MasterOffer, error) {
	return nil, nil
}

type fakeSchedule struct {
	salonRule  *domain.Rule
	masterRule *domain.Rule
	breaks     []domain.Window
	blocks     []domain.Window
}

var _ domain.Repository = (*fakeSchedule)(nil)

func (f *fakeSchedule) GetWorkRule(_ context.Context, _ int) (*domain.Rule, error) {
	return f.salonRule, nil
}

func (f *fakeSchedule) GetMasterWorkRule(_ context.Context, _ uint, _ int) (*domain.Rule, error) {
	return f.masterRule, nil
}

func (f *fakeSchedule) ListBreaks(_ context.Context, _ int) ([]domain.Window, error) {
	return f.breaks, nil
}

func (f *fakeSchedule) ListMasterBreaks(_ context.Context, _ uint, _ int) ([]domain.Window, error) {
	return nil, nil
}

func (f *fakeSchedule) ListBlocksForDate(_ context.Context, _ uint, _ string) ([]domain.Window, error) {
	return f.blocks, nil
}

type fakeBookings struct {
	booking.Repository
	active []booking.BookedSlot
}

func (f *fakeBookings) ListActiveOnDate(_ context.Context, _ uint, _ string) ([]booking.BookedSlot, error) {
	return f.active, nil
}

func newFreeSlotsUC(cat *fakeCatalog, sched *fakeSchedule, booked *fakeBookings, now time.Time) *FreeSlots {
	uc := NewFreeSlots(cat, sched, booked, "UTC")
	uc.now = func() time.Time { return now }
	return uc
}

func fixedNow() time.Time {
	// A Tuesday, well before the queried dates.
	return time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
}

func TestFreeSlotsHappyPath(t *testing.T) {
	cat := &fakeCatalog{master: &models.Master{ID: 1}, duration: 60}
	sched := &fakeSchedule{
		salonRule: &domain.Rule{StartTime: "09:00", EndTime: "13:00", SlotStepMin: 60},
	}
	uc := newFreeSlotsUC(cat, sched, &fakeBookings{}, fixedNow())

	slots, err := uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, slots)
}

func TestFreeSlotsDayOff(t *testing.T) {
	cat := &fakeCatalog{master: &models.Master{ID: 1}, duration: 60}
	uc := newFreeSlotsUC(cat, &fakeSchedule{}, &fakeBookings{}, fixedNow())

	slots, err := uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "2026-09-01",
	})
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFreeSlotsPersonalRuleUsedWhenAllowed(t *testing.T) {
	cat := &fakeCatalog{
		master:   &models.Master{ID: 1, AllowPersonalSchedule: true},
		duration: 60,
	}
	sched := &fakeSchedule{
		salonRule:  &domain.Rule{StartTime: "09:00", EndTime: "18:00", SlotStepMin: 60},
		masterRule: &domain.Rule{StartTime: "14:00", EndTime: "16:00", SlotStepMin: 60},
	}
	uc := newFreeSlotsUC(cat, sched, &fakeBookings{}, fixedNow())

	slots, err := uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00", "15:00"}, slots)
}

func TestFreeSlotsExcludesBookedAndBlocks(t *testing.T) {
	cat := &fakeCatalog{master: &models.Master{ID: 1}, duration: 60}
	sched := &fakeSchedule{
		salonRule: &domain.Rule{StartTime: "09:00", EndTime: "13:00", SlotStepMin: 60},
		blocks:    []domain.Window{{Start: "09:00", End: "10:00"}},
	}
	booked := &fakeBookings{active: []booking.BookedSlot{
		{ID: 5, StartTime: "11:00", EndTime: "12:00"},
	}}
	uc := newFreeSlotsUC(cat, sched, booked, fixedNow())

	slots, err := uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "12:00"}, slots)

	// Assembling a reschedule offer for the booked appointment frees
	// its own interval.
	slots, err = uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:             1,
		ServiceID:            10,
		Date:                 "2026-09-01",
		ExcludeAppointmentID: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "12:00"}, slots)
}

func TestFreeSlotsSameDayLeadTime(t *testing.T) {
	cat := &fakeCatalog{master: &models.Master{ID: 1}, duration: 30}
	sched := &fakeSchedule{
		salonRule: &domain.Rule{StartTime: "09:00", EndTime: "16:00", SlotStepMin: 30},
	}
	now := time.Date(2026, 9, 1, 14, 5, 0, 0, time.UTC)
	uc := newFreeSlotsUC(cat, sched, &fakeBookings{}, now)

	slots, err := uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "2026-09-01",
	})
	require.NoError(t, err)

	// 14:05 plus the 30 minute lead rules out everything before 14:35.
	assert.Equal(t, []string{"15:00", "15:30"}, slots)

	// A future date is unaffected by the clock.
	slots, err = uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "2026-09-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", slots[0])
}

func TestFreeSlotsInvalidDate(t *testing.T) {
	cat := &fakeCatalog{master: &models.Master{ID: 1}, duration: 30}
	uc := newFreeSlotsUC(cat, &fakeSchedule{}, &fakeBookings{}, fixedNow())

	_, err := uc.Execute(context.Background(), FreeSlotsInput{
		MasterID:  1,
		ServiceID: 10,
		Date:      "01.09.2026",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
