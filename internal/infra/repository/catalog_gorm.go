package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/catalog"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetMaster(
	ctx context.Context,
	id uint,
) (*models.Master, error) {

	var m models.Master
	err := r.db.WithContext(ctx).Preload("User").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("master_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Effective values (override ?? service default)
// --------------------------------------------------

func (r *CatalogGormRepository) EffectiveDuration(
	ctx context.Context,
	masterID uint,
	serviceID uint,
) (int, error) {

	var out struct{ Dur int }
	res := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(ms.duration_min, s.default_duration_min) AS dur
		FROM services s
		LEFT JOIN master_services ms
		       ON ms.master_id = ? AND ms.service_id = s.id
		WHERE s.id = ?`,
		masterID, serviceID,
	).Scan(&out)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, httperr.ErrBusiness("service_not_found")
	}
	return out.Dur, nil
}

func (r *CatalogGormRepository) EffectivePrice(
	ctx context.Context,
	masterID uint,
	serviceID uint,
) (string, error) {

	var out struct{ Price string }
	res := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(ms.price_text, s.default_price_text) AS price
		FROM services s
		LEFT JOIN master_services ms
		       ON ms.master_id = ? AND ms.service_id = s.id
		WHERE s.id = ?`,
		masterID, serviceID,
	).Scan(&out)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", httperr.ErrBusiness("service_not_found")
	}
	return out.Price, nil
}

// --------------------------------------------------
// Offered listings
// --------------------------------------------------

// An absent override row counts as offered; a present inactive row
// removes the pair.

func (r *CatalogGormRepository) ListServicesForMaster(
	ctx context.Context,
	masterID uint,
) ([]domain.Offering, error) {

	var out []domain.Offering
	if err := r.db.WithContext(ctx).Raw(`
		SELECT s.id AS service_id,
		       s.title,
		       COALESCE(ms.duration_min, s.default_duration_min) AS duration_min,
		       COALESCE(ms.price_text, s.default_price_text)     AS price_text
		FROM services s
		LEFT JOIN master_services ms
		       ON ms.master_id = ? AND ms.service_id = s.id
		WHERE s.is_active AND COALESCE(ms.is_active, TRUE)
		ORDER BY s.title`,
		masterID,
	).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) ListMastersForService(
	ctx context.Context,
	serviceID uint,
) ([]domain.MasterOffer, error) {

	var out []domain.MasterOffer
	if err := r.db.WithContext(ctx).Raw(`
		SELECT m.id AS master_id,
		       m.display_name,
		       COALESCE(ms.duration_min, s.default_duration_min) AS duration_min,
		       COALESCE(ms.price_text, s.default_price_text)     AS price_text
		FROM masters m
		JOIN services s ON s.id = ?
		LEFT JOIN master_services ms
		       ON ms.master_id = m.id AND ms.service_id = s.id
		WHERE m.is_active AND COALESCE(ms.is_active, TRUE)
		ORDER BY m.display_name`,
		serviceID,
	).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*CatalogGormRepository)(nil)
