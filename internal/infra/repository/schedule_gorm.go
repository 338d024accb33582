package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Work rules
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWorkRule(
	ctx context.Context,
	weekday int,
) (*domain.Rule, error) {

	var wr models.WorkRule
	err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&wr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.Rule{
		StartTime:   wr.StartTime,
		EndTime:     wr.EndTime,
		SlotStepMin: wr.SlotStepMin,
	}, nil
}

func (r *ScheduleGormRepository) GetMasterWorkRule(
	ctx context.Context,
	masterID uint,
	weekday int,
) (*domain.Rule, error) {

	var wr models.MasterWorkRule
	err := r.db.WithContext(ctx).
		Where("master_id = ? AND weekday = ?", masterID, weekday).
		First(&wr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.Rule{
		StartTime:   wr.StartTime,
		EndTime:     wr.EndTime,
		SlotStepMin: wr.SlotStepMin,
	}, nil
}

// --------------------------------------------------
// Breaks
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBreaks(
	ctx context.Context,
	weekday int,
) ([]domain.Window, error) {

	var rows []models.Break
	if err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	windows := make([]domain.Window, 0, len(rows))
	for _, b := range rows {
		windows = append(windows, domain.Window{Start: b.StartTime, End: b.EndTime})
	}
	return windows, nil
}

func (r *ScheduleGormRepository) ListMasterBreaks(
	ctx context.Context,
	masterID uint,
	weekday int,
) ([]domain.Window, error) {

	var rows []models.MasterBreak
	if err := r.db.WithContext(ctx).
		Where("master_id = ? AND weekday = ?", masterID, weekday).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	windows := make([]domain.Window, 0, len(rows))
	for _, b := range rows {
		windows = append(windows, domain.Window{Start: b.StartTime, End: b.EndTime})
	}
	return windows, nil
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

// ListBlocksForDate returns global blocks and the master's own blocks
// together; both apply at once.
func (r *ScheduleGormRepository) ListBlocksForDate(
	ctx context.Context,
	masterID uint,
	date string,
) ([]domain.Window, error) {

	var rows []models.Block
	if err := r.db.WithContext(ctx).
		Where("date = ? AND (master_id IS NULL OR master_id = ?)", date, masterID).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	windows := make([]domain.Window, 0, len(rows))
	for _, b := range rows {
		windows = append(windows, domain.Window{Start: b.StartTime, End: b.EndTime})
	}
	return windows, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
