package auctioneer

import (
	"context"
	"errors"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/database/gateway"
	"auctiondesk/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	GetAuctioneerName(ctx context.Context, auctioneerID string) (string, error)
}

type IAuctioneerService interface {
	Info(ctx context.Context) (models.Auctioneer, error)
}

type auctioneerService struct {
	store Store
}

func NewAuctioneerService(store Store) IAuctioneerService {
	return &auctioneerService{store: store}
}

// Info returns the current auctioneer for the dashboard header. The name
// falls back to a generic label when the user row is missing or blank.
func (svc *auctioneerService) Info(ctx context.Context) (models.Auctioneer, error) {
	id, err := actor.Auctioneer(ctx)
	if err != nil {
		return models.Auctioneer{}, err
	}
	out := models.Auctioneer{ID: id, Name: models.DefaultAuctioneerName}

	name, err := svc.store.GetAuctioneerName(ctx, id)
	switch {
	case errors.Is(err, gateway.ErrNotFound):
	case err != nil:
		zap.L().Warn("auctioneer_name_failed", zap.String("id", id), zap.Error(err))
	case name != "":
		out.Name = name
	}
	return out, nil
}
