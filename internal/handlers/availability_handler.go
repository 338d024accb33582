package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/httpresp"
	ucSchedule "github.com/afaeffea/salon-bot-tg/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	freeSlots *ucSchedule.FreeSlots
}

func NewAvailabilityHandler(freeSlots *ucSchedule.FreeSlots) *AvailabilityHandler {
	return &AvailabilityHandler{freeSlots: freeSlots}
}

// Get returns the advisory slot list for master+service+date. An
// optional exclude_appointment_id supports recomputation while a
// reschedule offer is being prepared for that appointment.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	masterID, err1 := strconv.ParseUint(c.Query("master_id"), 10, 32)
	serviceID, err2 := strconv.ParseUint(c.Query("service_id"), 10, 32)
	date := c.Query("date")
	if err1 != nil || err2 != nil || date == "" {
		httperr.BadRequest(c, "invalid_request", "master_id, service_id and date are required")
		return
	}

	var excludeID uint64
	if raw := c.Query("exclude_appointment_id"); raw != "" {
		excludeID, _ = strconv.ParseUint(raw, 10, 32)
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), ucSchedule.FreeSlotsInput{
		MasterID:             uint(masterID),
		ServiceID:            uint(serviceID),
		Date:                 date,
		ExcludeAppointmentID: uint(excludeID),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": slots})
}
