package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/httpresp"
	infraRepo "github.com/afaeffea/salon-bot-tg/internal/infra/repository"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type MasterHandler struct {
	db    *gorm.DB
	users *infraRepo.UserGormRepository
}

func NewMasterHandler(db *gorm.DB, users *infraRepo.UserGormRepository) *MasterHandler {
	return &MasterHandler{db: db, users: users}
}

func (h *MasterHandler) List(c *gin.Context) {
	q := h.db.Preload("User").Order("display_name")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var masters []models.Master
	if err := q.Find(&masters).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list masters")
		return
	}
	httpresp.List(c, masters)
}

type CreateMasterRequest struct {
	TgID        int64  `json:"tg_id" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`

	// Optional staff login credentials.
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create registers a master: the identity is bootstrapped from the chat
// id and a master row is attached to it.
func (h *MasterHandler) Create(c *gin.Context) {
	var req CreateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetOrCreateByTgID(ctx, req.TgID, req.Username, req.FullName)
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to resolve user")
		return
	}

	updates := map[string]any{"role": models.RoleMaster}
	if req.Email != "" && req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "internal_error", "failed to hash password")
			return
		}
		updates["email"] = req.Email
		updates["password_hash"] = string(hashed)
	}
	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update user")
		return
	}

	master := models.Master{
		UserID:      user.ID,
		DisplayName: req.DisplayName,
		IsActive:    true,
	}
	if err := h.db.Create(&master).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create master")
		return
	}

	httpresp.Created(c, master)
}

type UpdateMasterRequest struct {
	DisplayName           *string `json:"display_name"`
	IsActive              *bool   `json:"is_active"`
	AllowPersonalSchedule *bool   `json:"allow_personal_schedule"`
}

func (h *MasterHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var master models.Master
	if err := h.db.First(&master, id).Error; err != nil {
		notFoundOrInternal(c, err, "master_not_found", "master not found")
		return
	}

	var req UpdateMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.DisplayName != nil {
		master.DisplayName = *req.DisplayName
	}
	if req.IsActive != nil {
		master.IsActive = *req.IsActive
	}
	if req.AllowPersonalSchedule != nil {
		master.AllowPersonalSchedule = *req.AllowPersonalSchedule
	}

	if err := h.db.Save(&master).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update master")
		return
	}
	httpresp.OK(c, master)
}
