package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afaeffea/salon-bot-tg/internal/domain/schedule"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/httpresp"
	"github.com/afaeffea/salon-bot-tg/internal/models"
	"github.com/afaeffea/salon-bot-tg/internal/validators"
)

// ScheduleHandler manages the salon-wide and per-master schedule
// configuration: work rules, breaks and ad-hoc blocks.
type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// --------- Work rules (salon) ---------

type WorkRuleRequest struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	SlotStepMin int    `json:"slot_step_min" binding:"required,gt=0"`
}

func (r *WorkRuleRequest) validate(c *gin.Context) bool {
	if !validators.ValidTime(r.StartTime) || !validators.ValidTime(r.EndTime) {
		httperr.BadRequest(c, "invalid_date_or_time", "times must be HH:MM")
		return false
	}
	if schedule.ToMinutes(r.StartTime) >= schedule.ToMinutes(r.EndTime) {
		httperr.BadRequest(c, "invalid_date_or_time", "start must precede end")
		return false
	}
	return true
}

func (h *ScheduleHandler) ListWorkRules(c *gin.Context) {
	var rules []models.WorkRule
	if err := h.db.Order("weekday").Find(&rules).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list work rules")
		return
	}
	httpresp.List(c, rules)
}

func (h *ScheduleHandler) UpsertWorkRule(c *gin.Context) {
	var req WorkRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	rule := models.WorkRule{
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SlotStepMin: req.SlotStepMin,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "slot_step_min"}),
	}).Create(&rule).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to upsert work rule")
		return
	}
	httpresp.OK(c, rule)
}

// DeleteWorkRule removes the rule, turning the weekday into a day off.
func (h *ScheduleHandler) DeleteWorkRule(c *gin.Context) {
	weekday, ok := paramUint(c, "weekday")
	if !ok {
		return
	}
	if err := h.db.Where("weekday = ?", weekday).Delete(&models.WorkRule{}).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete work rule")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// --------- Work rules (master) ---------

func (h *ScheduleHandler) ListMasterWorkRules(c *gin.Context) {
	masterID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var rules []models.MasterWorkRule
	if err := h.db.Where("master_id = ?", masterID).Order("weekday").Find(&rules).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list work rules")
		return
	}
	httpresp.List(c, rules)
}

func (h *ScheduleHandler) UpsertMasterWorkRule(c *gin.Context) {
	masterID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req WorkRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	rule := models.MasterWorkRule{
		MasterID:    masterID,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SlotStepMin: req.SlotStepMin,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "master_id"}, {Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "slot_step_min"}),
	}).Create(&rule).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to upsert work rule")
		return
	}
	httpresp.OK(c, rule)
}

func (h *ScheduleHandler) DeleteMasterWorkRule(c *gin.Context) {
	masterID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	weekday, ok := paramUint(c, "weekday")
	if !ok {
		return
	}
	if err := h.db.
		Where("master_id = ? AND weekday = ?", masterID, weekday).
		Delete(&models.MasterWorkRule{}).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete work rule")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// --------- Breaks ---------

type BreakRequest struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (r *BreakRequest) validate(c *gin.Context) bool {
	if !validators.ValidTime(r.StartTime) || !validators.ValidTime(r.EndTime) ||
		schedule.ToMinutes(r.StartTime) >= schedule.ToMinutes(r.EndTime) {
		httperr.BadRequest(c, "invalid_date_or_time", "times must be HH:MM, start before end")
		return false
	}
	return true
}

func (h *ScheduleHandler) ListBreaks(c *gin.Context) {
	var rows []models.Break
	if err := h.db.Order("weekday, start_time").Find(&rows).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list breaks")
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) AddBreak(c *gin.Context) {
	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	row := models.Break{Weekday: req.Weekday, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := h.db.Create(&row).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to add break")
		return
	}
	httpresp.OK(c, row)
}

func (h *ScheduleHandler) DeleteBreak(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.db.Delete(&models.Break{}, id).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete break")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *ScheduleHandler) AddMasterBreak(c *gin.Context) {
	masterID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	row := models.MasterBreak{
		MasterID:  masterID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.db.Create(&row).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to add break")
		return
	}
	httpresp.OK(c, row)
}

func (h *ScheduleHandler) DeleteMasterBreak(c *gin.Context) {
	id, ok := paramUint(c, "breakId")
	if !ok {
		return
	}
	if err := h.db.Delete(&models.MasterBreak{}, id).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete break")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// --------- Blocks ---------

type BlockRequest struct {
	MasterID  *uint  `json:"master_id"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	q := h.db.Order("date, start_time")
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var rows []models.Block
	if err := q.Find(&rows).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list blocks")
		return
	}
	httpresp.List(c, rows)
}

func (h *ScheduleHandler) AddBlock(c *gin.Context) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !validators.ValidDate(req.Date) ||
		!validators.ValidTime(req.StartTime) || !validators.ValidTime(req.EndTime) ||
		schedule.ToMinutes(req.StartTime) >= schedule.ToMinutes(req.EndTime) {
		httperr.BadRequest(c, "invalid_date_or_time", "bad date or time window")
		return
	}

	row := models.Block{
		MasterID:  req.MasterID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if err := h.db.Create(&row).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to add block")
		return
	}
	httpresp.OK(c, row)
}

func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := h.db.Delete(&models.Block{}, id).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to delete block")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}
