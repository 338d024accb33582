package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/afaeffea/salon-bot-tg/internal/config"
	infraRepo "github.com/afaeffea/salon-bot-tg/internal/infra/repository"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	users  *infraRepo.UserGormRepository
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, users *infraRepo.UserGormRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, users: users, config: cfg}
}

// --------- Requests ---------

type SessionRequest struct {
	TgID     int64  `json:"tg_id" binding:"required"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Session bootstraps identity for the chat front-end: the bot service
// authenticates with its shared token and exchanges a chat identity for
// a user record plus a JWT. Operator chat ids from ADMIN_IDS get the
// admin role; users with a master row get the master role.
func (h *AuthHandler) Session(c *gin.Context) {
	if h.config.BotToken == "" || c.GetHeader("X-Bot-Token") != h.config.BotToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_bot_token"})
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.users.GetOrCreateByTgID(c.Request.Context(), req.TgID, req.Username, req.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	role := models.RoleClient
	var masterID *uint

	var master models.Master
	err = h.db.Where("user_id = ?", user.ID).First(&master).Error
	switch {
	case err == nil:
		role = models.RoleMaster
		masterID = &master.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if h.config.IsAdminTgID(user.TgID) {
		role = models.RoleAdmin
	}

	token, err := h.generateToken(user.ID, role, masterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"role":  role,
		"token": token,
	})
}

// Login authenticates staff (admins and masters) with email+password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	var masterID *uint
	var master models.Master
	if err := h.db.Where("user_id = ?", user.ID).First(&master).Error; err == nil {
		masterID = &master.ID
	}

	token, err := h.generateToken(user.ID, user.Role, masterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"role":  user.Role,
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(userID uint, role string, masterID *uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if masterID != nil {
		claims["masterId"] = *masterID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
