package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// GetOrCreateByTgID bootstraps a user from the chat identity. The upsert
// avoids a unique race on tg_id and always refreshes the profile fields
// the front-end sends along.
func (r *UserGormRepository) GetOrCreateByTgID(
	ctx context.Context,
	tgID int64,
	username string,
	fullName string,
) (*models.User, error) {

	u := models.User{
		TgID:     tgID,
		Username: username,
		FullName: fullName,
		Role:     models.RoleClient,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tg_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "full_name"}),
		}).
		Create(&u).Error; err != nil {
		return nil, err
	}

	var out models.User
	if err := r.db.WithContext(ctx).
		Where("tg_id = ?", tgID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) UpdatePhone(
	ctx context.Context,
	id uint,
	phone string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("phone", phone).Error
}

func (r *UserGormRepository) UpdateName(
	ctx context.Context,
	id uint,
	name string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("full_name", name).Error
}
