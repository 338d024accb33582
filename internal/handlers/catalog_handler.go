package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/httpresp"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

// CatalogHandler serves the services list, per-master offerings and the
// admin CRUD for services and overrides. Configuration management only;
// the availability and booking paths resolve effective values through
// the catalog repository.
type CatalogHandler struct {
	db      *gorm.DB
	catalog catalog.Repository
}

func NewCatalogHandler(db *gorm.DB, catalogRepo catalog.Repository) *CatalogHandler {
	return &CatalogHandler{db: db, catalog: catalogRepo}
}

// --------- Public listings ---------

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Where("is_active = ?", true).Order("title").Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list services")
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) ListServicesForMaster(c *gin.Context) {
	masterID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	offerings, err := h.catalog.ListServicesForMaster(c.Request.Context(), masterID)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to list offerings")
		return
	}
	httpresp.List(c, offerings)
}

func (h *CatalogHandler) ListMastersForService(c *gin.Context) {
	serviceID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	masters, err := h.catalog.ListMastersForService(c.Request.Context(), serviceID)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to list masters")
		return
	}
	httpresp.List(c, masters)
}

// --------- Admin: services ---------

type ServiceRequest struct {
	Title       string `json:"title" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required,gt=0"`
	PriceText   string `json:"price_text"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Title:              req.Title,
		DefaultDurationMin: req.DurationMin,
		DefaultPriceText:   req.PriceText,
		IsActive:           true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create service")
		return
	}
	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "service not found")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc.Title = req.Title
	svc.DefaultDurationMin = req.DurationMin
	svc.DefaultPriceText = req.PriceText
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update service")
		return
	}
	httpresp.OK(c, svc)
}

// --------- Admin/master: overrides ---------

type MasterServiceRequest struct {
	MasterID    uint    `json:"master_id" binding:"required"`
	ServiceID   uint    `json:"service_id" binding:"required"`
	DurationMin *int    `json:"duration_min"`
	PriceText   *string `json:"price_text"`
	IsActive    *bool   `json:"is_active"`
}

// UpsertMasterService writes the (master, service) override row; the
// unique pair makes repeated calls idempotent updates.
func (h *CatalogHandler) UpsertMasterService(c *gin.Context) {
	var req MasterServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DurationMin != nil && *req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "duration must be positive")
		return
	}

	row := models.MasterService{
		MasterID:    req.MasterID,
		ServiceID:   req.ServiceID,
		DurationMin: req.DurationMin,
		PriceText:   req.PriceText,
		IsActive:    true,
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "master_id"}, {Name: "service_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"duration_min", "price_text", "is_active"}),
	}).Create(&row).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to upsert override")
		return
	}
	httpresp.OK(c, row)
}

// --------- helpers ---------

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func notFoundOrInternal(c *gin.Context, err error, code, message string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, code, message)
		return
	}
	httperr.Internal(c, "internal_error", message)
}
