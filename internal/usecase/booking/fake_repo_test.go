package booking

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	"github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/models"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

// fakeLedger is an in-memory stand-in for the gorm ledger with the same
// atomicity contract: one mutex plays the role of the per-master
// advisory lock, so check-then-write sequences are serialized.
type fakeLedger struct {
	mu   sync.Mutex
	seq  uint
	rows map[uint]*models.Appointment
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: map[uint]*models.Appointment{}}
}

var _ domain.Repository = (*fakeLedger)(nil)

func (f *fakeLedger) hasOverlapLocked(masterID uint, date, start, end string, excludeID uint) bool {
	for _, row := range f.rows {
		if row.ID == excludeID || row.MasterID != masterID || row.Date != date {
			continue
		}
		if !domain.IsActive(domain.Status(row.Status)) {
			continue
		}
		if schedule.Overlaps(row.StartTime, row.EndTime, start, end) {
			return true
		}
	}
	return false
}

func (f *fakeLedger) Create(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasOverlapLocked(ap.MasterID, ap.Date, ap.StartTime, ap.EndTime, 0) {
		return httperr.ErrBusiness("time_conflict")
	}

	f.seq++
	ap.ID = f.seq
	ap.Reference = fmt.Sprintf("ref-%d", f.seq)
	ap.Status = string(domain.InitialStatus())

	stored := *ap
	f.rows[ap.ID] = &stored
	return nil
}

func (f *fakeLedger) viewLocked(row *models.Appointment) *domain.View {
	return &domain.View{
		ID:                row.ID,
		Reference:         row.Reference,
		ClientID:          row.ClientID,
		MasterID:          row.MasterID,
		ServiceID:         row.ServiceID,
		Date:              row.Date,
		StartTime:         row.StartTime,
		EndTime:           row.EndTime,
		Status:            row.Status,
		ClientName:        row.ClientName,
		ClientPhone:       row.ClientPhone,
		ProposedDate:      row.ProposedDate,
		ProposedStartTime: row.ProposedStartTime,
		ProposedEndTime:   row.ProposedEndTime,
	}
}

func (f *fakeLedger) GetByID(_ context.Context, id uint) (*domain.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return f.viewLocked(row), nil
}

func (f *fakeLedger) List(_ context.Context, filter domain.ListFilter) ([]domain.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	views := []domain.View{}
	for _, row := range f.rows {
		if filter.ClientID != nil && row.ClientID != *filter.ClientID {
			continue
		}
		if filter.MasterID != nil && row.MasterID != *filter.MasterID {
			continue
		}
		if filter.Date != "" && row.Date != filter.Date {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if row.Status == string(s) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		views = append(views, *f.viewLocked(row))
	}
	return views, nil
}

func (f *fakeLedger) ListActiveOnDate(_ context.Context, masterID uint, date string) ([]domain.BookedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots := []domain.BookedSlot{}
	for _, row := range f.rows {
		if row.MasterID != masterID || row.Date != date {
			continue
		}
		if !domain.IsActive(domain.Status(row.Status)) {
			continue
		}
		slots = append(slots, domain.BookedSlot{
			ID:        row.ID,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return slots, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, id uint, status domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	row.Status = string(status)
	return nil
}

func (f *fakeLedger) OfferReschedule(_ context.Context, id uint, proposedDate, proposedStart, proposedEnd string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}

	before := row.Status
	row.StatusBeforeReschedule = &before
	row.ProposedDate = &proposedDate
	row.ProposedStartTime = &proposedStart
	row.ProposedEndTime = &proposedEnd
	row.Status = string(domain.StatusRescheduleOffered)
	return nil
}

func (f *fakeLedger) AcceptReschedule(_ context.Context, id uint) (*domain.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if row.ProposedDate == nil || row.ProposedStartTime == nil || row.ProposedEndTime == nil {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if f.hasOverlapLocked(row.MasterID, *row.ProposedDate, *row.ProposedStartTime, *row.ProposedEndTime, row.ID) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	f.seq++
	created := &models.Appointment{
		ID:          f.seq,
		Reference:   fmt.Sprintf("ref-%d", f.seq),
		ClientID:    row.ClientID,
		MasterID:    row.MasterID,
		ServiceID:   row.ServiceID,
		Date:        *row.ProposedDate,
		StartTime:   *row.ProposedStartTime,
		EndTime:     *row.ProposedEndTime,
		ClientName:  row.ClientName,
		ClientPhone: row.ClientPhone,
		Status:      string(domain.StatusConfirmed),
	}
	f.rows[created.ID] = created

	row.Status = string(domain.StatusRescheduled)
	return f.viewLocked(created), nil
}

func (f *fakeLedger) DeclineReschedule(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}

	restored := string(domain.StatusDeclined)
	if row.StatusBeforeReschedule != nil {
		restored = *row.StatusBeforeReschedule
	}
	row.Status = restored
	row.ProposedDate = nil
	row.ProposedStartTime = nil
	row.ProposedEndTime = nil
	row.StatusBeforeReschedule = nil
	return nil
}

// fakeCatalog serves one master and a fixed duration per service.
type fakeCatalog struct {
	master    *models.Master
	durations map[uint]int
}

var _ catalog.Repository = (*fakeCatalog)(nil)

func (f *fakeCatalog) GetMaster(_ context.Context, id uint) (*models.Master, error) {
	if f.master == nil || f.master.ID != id {
		return nil, httperr.ErrBusiness("master_not_found")
	}
	return f.master, nil
}

func (f *fakeCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	if _, ok := f.durations[id]; !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &models.Service{ID: id}, nil
}

func (f *fakeCatalog) EffectiveDuration(_ context.Context, _, serviceID uint) (int, error) {
	d, ok := f.durations[serviceID]
	if !ok {
		return 0, httperr.ErrBusiness("service_not_found")
	}
	return d, nil
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

// captureNotifier records dispatched kinds for assertions.
type captureNotifier struct {
	kinds chan notify.Kind
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{kinds: make(chan notify.Kind, 16)}
}

func (n *captureNotifier) Notify(ev notify.Event) {
	n.kinds <- ev.Kind
}
