package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/httpresp"
	"github.com/afaeffea/salon-bot-tg/internal/middleware"
	"github.com/afaeffea/salon-bot-tg/internal/models"
	ucBooking "github.com/afaeffea/salon-bot-tg/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC            *ucBooking.Create
	setStatusUC         *ucBooking.SetStatus
	cancelUC            *ucBooking.Cancel
	offerRescheduleUC   *ucBooking.OfferReschedule
	acceptRescheduleUC  *ucBooking.AcceptReschedule
	declineRescheduleUC *ucBooking.DeclineReschedule
	listUC              *ucBooking.List
}

func NewAppointmentHandler(
	createUC *ucBooking.Create,
	setStatusUC *ucBooking.SetStatus,
	cancelUC *ucBooking.Cancel,
	offerRescheduleUC *ucBooking.OfferReschedule,
	acceptRescheduleUC *ucBooking.AcceptReschedule,
	declineRescheduleUC *ucBooking.DeclineReschedule,
	listUC *ucBooking.List,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:            createUC,
		setStatusUC:         setStatusUC,
		cancelUC:            cancelUC,
		offerRescheduleUC:   offerRescheduleUC,
		acceptRescheduleUC:  acceptRescheduleUC,
		declineRescheduleUC: declineRescheduleUC,
		listUC:              listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	MasterID  uint   `json:"master_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
}

type OfferRescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CLIENT SIDE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	view, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateInput{
		ClientID:    clientID,
		MasterID:    req.MasterID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Start:       req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, view)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	view, err := h.listUC.Get(c.Request.Context(), id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if !h.mayView(c, view) {
		httperr.Forbidden(c, "forbidden", "not your appointment")
		return
	}

	httpresp.OK(c, view)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listUC.ForClient(c.Request.Context(), clientID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	view, err := h.listUC.Get(c.Request.Context(), id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	if !h.mayView(c, view) {
		httperr.Forbidden(c, "forbidden", "not your appointment")
		return
	}

	view, err = h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *AppointmentHandler) AcceptReschedule(c *gin.Context) {
	h.resolveReschedule(c, true)
}

func (h *AppointmentHandler) DeclineReschedule(c *gin.Context) {
	h.resolveReschedule(c, false)
}

func (h *AppointmentHandler) resolveReschedule(c *gin.Context, accept bool) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	view, err := h.listUC.Get(ctx, id)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	if view.ClientID != c.MustGet(middleware.ContextUserID).(uint) &&
		c.GetString(middleware.ContextUserRole) != models.RoleAdmin {
		httperr.Forbidden(c, "forbidden", "not your appointment")
		return
	}

	if accept {
		view, err = h.acceptRescheduleUC.Execute(ctx, id)
	} else {
		view, err = h.declineRescheduleUC.Execute(ctx, id)
	}
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, view)
}

// ======================================================
// MASTER SIDE
// ======================================================

func (h *AppointmentHandler) ListForMaster(c *gin.Context) {
	masterID, ok := contextMasterID(c)
	if !ok {
		return
	}

	filter := domain.ListFilter{MasterID: &masterID, Date: c.Query("date")}
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.Status(strings.TrimSpace(s)))
		}
	}

	views, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.decide(c, domain.StatusConfirmed)
}

func (h *AppointmentHandler) Decline(c *gin.Context) {
	h.decide(c, domain.StatusDeclined)
}

func (h *AppointmentHandler) decide(c *gin.Context, status domain.Status) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if !h.ownsAppointment(c, id) {
		return
	}

	view, err := h.setStatusUC.Execute(c.Request.Context(), id, status)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *AppointmentHandler) OfferReschedule(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if !h.ownsAppointment(c, id) {
		return
	}

	var req OfferRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	view, err := h.offerRescheduleUC.Execute(c.Request.Context(), ucBooking.OfferRescheduleInput{
		AppointmentID: id,
		ProposedDate:  req.Date,
		ProposedStart: req.Time,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, view)
}

// ======================================================
// ADMIN SIDE
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	filter := domain.ListFilter{Date: c.Query("date")}
	if c.Query("pending") == "true" {
		filter.Statuses = []domain.Status{domain.StatusPending}
	}

	views, err := h.listUC.Execute(c.Request.Context(), filter)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, views)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) mayView(c *gin.Context, view *domain.View) bool {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	if role == models.RoleAdmin || view.ClientID == userID {
		return true
	}
	if masterID, ok := c.Get(middleware.ContextMasterID); ok {
		return view.MasterID == masterID.(uint)
	}
	return false
}

// ownsAppointment gates master decisions to the master's own calendar;
// admins pass through.
func (h *AppointmentHandler) ownsAppointment(c *gin.Context, id uint) bool {
	if c.GetString(middleware.ContextUserRole) == models.RoleAdmin {
		return true
	}

	masterID, ok := contextMasterID(c)
	if !ok {
		return false
	}

	view, err := h.listUC.Get(c.Request.Context(), id)
	if err != nil {
		writeBusinessError(c, err)
		return false
	}
	if view.MasterID != masterID {
		httperr.Forbidden(c, "forbidden", "not your appointment")
		return false
	}
	return true
}

func contextMasterID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(middleware.ContextMasterID); ok {
		return v.(uint), true
	}
	httperr.Forbidden(c, "forbidden", "master session required")
	return 0, false
}

// writeBusinessError maps tagged business errors onto HTTP statuses;
// anything untagged is a storage fault.
func writeBusinessError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "unexpected error")
		return
	}

	switch be.Code {
	case "time_conflict", "slot_unavailable":
		httperr.Conflict(c, be.Code, "slot no longer available")
	case "appointment_not_found", "master_not_found", "service_not_found":
		httperr.NotFound(c, be.Code, "not found")
	default:
		httperr.BadRequest(c, be.Code, be.Code)
	}
}
