package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/httpresp"
	infraRepo "github.com/afaeffea/salon-bot-tg/internal/infra/repository"
	"github.com/afaeffea/salon-bot-tg/internal/middleware"
	"github.com/afaeffea/salon-bot-tg/internal/validators"
)

type MeHandler struct {
	users *infraRepo.UserGormRepository
}

func NewMeHandler(users *infraRepo.UserGormRepository) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		httperr.NotFound(c, "user_not_found", "user not found")
		return
	}

	httpresp.OK(c, user)
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	if req.FullName != nil {
		name, ok := validators.ValidName(*req.FullName)
		if !ok {
			httperr.BadRequest(c, "invalid_name", "name must be 2-64 characters")
			return
		}
		if err := h.users.UpdateName(ctx, userID, name); err != nil {
			httperr.Internal(c, "internal_error", "failed to update name")
			return
		}
	}

	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if phone == "" {
			httperr.BadRequest(c, "invalid_phone", "phone format not recognised")
			return
		}
		if err := h.users.UpdatePhone(ctx, userID, phone); err != nil {
			httperr.Internal(c, "internal_error", "failed to update phone")
			return
		}
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load user")
		return
	}
	httpresp.OK(c, user)
}
