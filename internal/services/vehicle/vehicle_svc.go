package vehicle

import (
	"context"
	"errors"

	"auctiondesk/internal/database/gateway"
	"auctiondesk/internal/models"
	"auctiondesk/internal/services/auction"
)

var ErrNotFound = errors.New("vehicle not found")

type Store interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, ficha string) (*models.Vehicle, error)
	ListVehicleRefs(ctx context.Context, excludeAuctionID string) ([]models.VehicleRef, error)
}

type IVehicleService interface {
	ListAll(ctx context.Context) ([]models.Vehicle, error)
	ListAvailable(ctx context.Context, excludeAuctionID string) ([]models.Vehicle, error)
	Get(ctx context.Context, ficha string) (*models.Vehicle, error)
	IsAvailable(ctx context.Context, ficha, excludeAuctionID string) (bool, error)
}

type vehicleService struct {
	store Store
}

var _ IVehicleService = (*vehicleService)(nil)

func NewVehicleService(store Store) IVehicleService {
	return &vehicleService{store: store}
}

func (svc *vehicleService) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	vs, err := svc.store.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	if vs == nil {
		vs = []models.Vehicle{}
	}
	return vs, nil
}

// held returns the fichas referenced by auctions that are still open.
// Finalized and cancelled auctions release their vehicle.
func (svc *vehicleService) held(ctx context.Context, excludeAuctionID string) (map[string]bool, error) {
	refs, err := svc.store.ListVehicleRefs(ctx, excludeAuctionID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(refs))
	for _, r := range refs {
		if auction.IsTerminal(r.Status) {
			continue
		}
		out[r.Ficha] = true
	}
	return out, nil
}

// ListAvailable lists vehicles not held by any open auction. When editing,
// excludeAuctionID keeps the auction's own vehicle selectable.
func (svc *vehicleService) ListAvailable(ctx context.Context, excludeAuctionID string) ([]models.Vehicle, error) {
	all, err := svc.store.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	held, err := svc.held(ctx, excludeAuctionID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Vehicle, 0, len(all))
	for _, v := range all {
		if !held[v.Ficha] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (svc *vehicleService) Get(ctx context.Context, ficha string) (*models.Vehicle, error) {
	v, err := svc.store.GetVehicle(ctx, ficha)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (svc *vehicleService) IsAvailable(ctx context.Context, ficha, excludeAuctionID string) (bool, error) {
	held, err := svc.held(ctx, excludeAuctionID)
	if err != nil {
		return false, err
	}
	return !held[ficha], nil
}
