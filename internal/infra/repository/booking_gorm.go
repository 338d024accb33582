package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// lockMaster serializes conflict-check-then-insert per master. The
// advisory lock is released at transaction end and never blocks writes
// for unrelated masters.
func lockMaster(tx *gorm.DB, masterID uint) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(masterID)).Error
}

// --------------------------------------------------
// Create (atomic conflict check + insert)
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockMaster(tx, ap.MasterID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where(
				"master_id = ? AND date = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.MasterID,
				ap.Date,
				activeStatuses(),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		ap.Status = string(domain.InitialStatus())
		if ap.Reference == "" {
			ap.Reference = uuid.NewString()
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

const viewSelect = `
	SELECT a.id,
	       a.reference,
	       a.client_id,
	       cu.tg_id       AS client_tg_id,
	       a.master_id,
	       mu.tg_id       AS master_tg_id,
	       a.service_id,
	       a.date,
	       a.start_time,
	       a.end_time,
	       a.status,
	       a.client_name,
	       a.client_phone,
	       m.display_name AS master_name,
	       s.title        AS service_title,
	       a.proposed_date,
	       a.proposed_start_time,
	       a.proposed_end_time
	FROM appointments a
	JOIN users cu   ON a.client_id = cu.id
	JOIN masters m  ON a.master_id = m.id
	JOIN users mu   ON m.user_id = mu.id
	JOIN services s ON a.service_id = s.id`

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*domain.View, error) {

	var views []domain.View
	if err := r.db.WithContext(ctx).
		Raw(viewSelect+" WHERE a.id = ?", id).
		Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &views[0], nil
}

func (r *BookingGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]domain.View, error) {

	q := viewSelect + " WHERE 1=1"
	args := []any{}

	if f.ClientID != nil {
		q += " AND a.client_id = ?"
		args = append(args, *f.ClientID)
	}
	if f.MasterID != nil {
		q += " AND a.master_id = ?"
		args = append(args, *f.MasterID)
	}
	if f.Date != "" {
		q += " AND a.date = ?"
		args = append(args, f.Date)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q += " AND a.status IN ?"
		args = append(args, statuses)
	}
	q += " ORDER BY a.date, a.start_time"

	var views []domain.View
	if err := r.db.WithContext(ctx).Raw(q, args...).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *BookingGormRepository) ListActiveOnDate(
	ctx context.Context,
	masterID uint,
	date string,
) ([]domain.BookedSlot, error) {

	var slots []domain.BookedSlot
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("id", "start_time", "end_time").
		Where("master_id = ? AND date = ? AND status IN ?", masterID, date, activeStatuses()).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Status transitions
// --------------------------------------------------

func (r *BookingGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return nil
}

// --------------------------------------------------
// Reschedule protocol
// --------------------------------------------------

func (r *BookingGormRepository) OfferReschedule(
	ctx context.Context,
	id uint,
	proposedDate string,
	proposedStart string,
	proposedEnd string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := tx.First(&ap, id).Error; err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		prev := ap.Status
		return tx.Model(&ap).Updates(map[string]any{
			"status":                   string(domain.StatusRescheduleOffered),
			"status_before_reschedule": prev,
			"proposed_date":            proposedDate,
			"proposed_start_time":      proposedStart,
			"proposed_end_time":        proposedEnd,
		}).Error
	})
}

func (r *BookingGormRepository) AcceptReschedule(
	ctx context.Context,
	id uint,
) (*domain.View, error) {

	var newID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.Appointment
		if err := tx.First(&old, id).Error; err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}
		if old.ProposedDate == nil || old.ProposedStartTime == nil || old.ProposedEndTime == nil {
			return httperr.ErrBusiness("invalid_state")
		}

		if err := lockMaster(tx, old.MasterID); err != nil {
			return err
		}

		// The original slot was not held during the offer window, so the
		// proposed interval is checked against everything except the
		// appointment being replaced.
		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where(
				"master_id = ? AND date = ? AND status IN ? AND start_time < ? AND end_time > ? AND id <> ?",
				old.MasterID,
				*old.ProposedDate,
				activeStatuses(),
				*old.ProposedEndTime,
				*old.ProposedStartTime,
				old.ID,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		next := models.Appointment{
			Reference:   uuid.NewString(),
			ClientID:    old.ClientID,
			MasterID:    old.MasterID,
			ServiceID:   old.ServiceID,
			Date:        *old.ProposedDate,
			StartTime:   *old.ProposedStartTime,
			EndTime:     *old.ProposedEndTime,
			ClientName:  old.ClientName,
			ClientPhone: old.ClientPhone,
			Status:      string(domain.StatusConfirmed),
		}
		if err := tx.Create(&next).Error; err != nil {
			return err
		}
		newID = next.ID

		return tx.Model(&old).
			Update("status", string(domain.StatusRescheduled)).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, newID)
}

func (r *BookingGormRepository) DeclineReschedule(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := tx.First(&ap, id).Error; err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		restored := string(domain.StatusDeclined)
		if ap.StatusBeforeReschedule != nil && *ap.StatusBeforeReschedule != "" {
			restored = *ap.StatusBeforeReschedule
		}

		return tx.Model(&ap).Updates(map[string]any{
			"status":                   restored,
			"status_before_reschedule": nil,
			"proposed_date":            nil,
			"proposed_start_time":      nil,
			"proposed_end_time":        nil,
		}).Error
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
