package booking

import (
	"context"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

func (uc *List) Get(
	ctx context.Context,
	id uint,
) (*domain.View, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *List) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]domain.View, error) {
	return uc.repo.List(ctx, f)
}

// ForClient lists a client's non-terminal appointments.
func (uc *List) ForClient(
	ctx context.Context,
	clientID uint,
) ([]domain.View, error) {
	return uc.repo.List(ctx, domain.ListFilter{
		ClientID: &clientID,
		Statuses: domain.ActiveStatuses,
	})
}
