package catalog

import (
	"context"

	"github.com/afaeffea/salon-bot-tg/internal/models"
)

// Offering is a service as offered by a particular master, with the
// override-resolved duration and price.
type Offering struct {
	ServiceID   uint   `json:"service_id"`
	Title       string `json:"title"`
	DurationMin int    `json:"duration_min"`
	PriceText   string `json:"price_text"`
}

// MasterOffer is a master listed for a chosen service.
type MasterOffer struct {
	MasterID    uint   `json:"master_id"`
	DisplayName string `json:"display_name"`
	DurationMin int    `json:"duration_min"`
	PriceText   string `json:"price_text"`
}

// Repository resolves services, masters and per-master overrides.
// Effective values take the override when present and non-null, else the
// service default, regardless of the override row's active flag; the
// flag only governs the offered listings.
type Repository interface {
	GetMaster(ctx context.Context, id uint) (*models.Master, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)

	EffectiveDuration(ctx context.Context, masterID, serviceID uint) (int, error)
	EffectivePrice(ctx context.Context, masterID, serviceID uint) (string, error)

	// ListServicesForMaster returns active services the master offers
	// (override row absent, or present and active).
	ListServicesForMaster(ctx context.Context, masterID uint) ([]Offering, error)

	// ListMastersForService returns active masters offering the service.
	ListMastersForService(ctx context.Context, serviceID uint) ([]MasterOffer, error)
}
