package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/database/gateway"
	"auctiondesk/internal/events"
	"auctiondesk/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("auction not found")
	ErrForbidden     = errors.New("auction is not managed by this auctioneer")
	ErrStatusChanged = errors.New("auction status changed since it was read")
)

// Store is the slice of the data store gateway the auction service uses.
type Store interface {
	ListLinks(ctx context.Context, auctioneerID string) ([]models.Link, error)
	LinkExists(ctx context.Context, auctionID, auctioneerID string) (bool, error)
	ListAuctionsByIDs(ctx context.Context, ids []string) ([]models.Auction, error)
	GetAuction(ctx context.Context, id string) (*models.Auction, error)
	CreateAuction(ctx context.Context, a models.Auction, link models.Link) error
	UpdateAuction(ctx context.Context, id string, u models.AuctionUpdate) error
	UpdateStatusFrom(ctx context.Context, id string, from, to models.Status, reason *string) (bool, error)
	DeleteAuctionCascade(ctx context.Context, auctionID, auctioneerID string) error
	HasAdjudication(ctx context.Context, auctionID string) (bool, error)
	ListBids(ctx context.Context, auctionID string) ([]models.Bid, error)
	GetVehicle(ctx context.Context, ficha string) (*models.Vehicle, error)
}

// VehicleChecker answers whether a vehicle may be assigned to an auction.
type VehicleChecker interface {
	IsAvailable(ctx context.Context, ficha, excludeAuctionID string) (bool, error)
}

// Transition is one status change persisted by a reconciliation pass.
type Transition struct {
	AuctionID string        `json:"auction_id"`
	From      models.Status `json:"from"`
	To        models.Status `json:"to"`
}

// AuctionDetail is what the details dialog shows. HighestBidID is the first
// bid of the date/time ordering.
// TODO: confirm with the business whether the badge should follow the
// highest amount instead of the most recent bid.
type AuctionDetail struct {
	Auction      models.Auction  `json:"auction"`
	Vehicle      *models.Vehicle `json:"vehicle"`
	Bids         []models.Bid    `json:"bids"`
	HighestBidID string          `json:"highest_bid_id,omitempty"`
}

type IAuctionService interface {
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	GetAuction(ctx context.Context, id string) (*models.Auction, error)
	GetAuctionDetail(ctx context.Context, id string) (*AuctionDetail, error)
	ListBids(ctx context.Context, id string) ([]models.Bid, error)
	CreateAuction(ctx context.Context, form AuctionForm) (*models.Auction, error)
	UpdateAuction(ctx context.Context, id string, form AuctionForm) (*models.Auction, error)
	Publish(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Cancel(ctx context.Context, id, reason string) error
	Delete(ctx context.Context, id string) error
	Reconcile(ctx context.Context, auctions []models.Auction) []Transition
	Now() time.Time
}

type auctionService struct {
	store    Store
	vehicles VehicleChecker
	pub      events.Publisher
	loc      *time.Location
	now      func() time.Time
}

var _ IAuctionService = (*auctionService)(nil)

type Option func(*auctionService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *auctionService) { s.now = now }
}

func NewAuctionService(store Store, vehicles VehicleChecker, pub events.Publisher, loc *time.Location, opts ...Option) IAuctionService {
	if pub == nil {
		pub = events.Nop{}
	}
	if loc == nil {
		loc = time.Local
	}
	svc := &auctionService{
		store:    store,
		vehicles: vehicles,
		pub:      pub,
		loc:      loc,
		now:      time.Now,
	}
	for _, o := range opts {
		o(svc)
	}
	return svc
}

func (svc *auctionService) Now() time.Time { return svc.now() }

// ListAuctions returns the auctions managed by the current auctioneer. The
// link's creation time stands in for the auction's own created_at.
func (svc *auctionService) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	auctioneerID, err := actor.Auctioneer(ctx)
	if err != nil {
		return nil, err
	}
	links, err := svc.store.ListLinks(ctx, auctioneerID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	if len(links) == 0 {
		return []models.Auction{}, nil
	}

	ids := make([]string, 0, len(links))
	created := make(map[string]time.Time, len(links))
	for _, l := range links {
		ids = append(ids, l.AuctionID)
		created[l.AuctionID] = l.CreatedAt
	}
	auctions, err := svc.store.ListAuctionsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	for i := range auctions {
		if t, ok := created[auctions[i].ID]; ok && !t.IsZero() {
			auctions[i].CreatedAt = &t
		}
	}
	return auctions, nil
}

// loadManaged fetches an auction the current auctioneer manages. Ids are
// UUIDs in the store; anything else cannot name an auction.
func (svc *auctionService) loadManaged(ctx context.Context, id string) (*models.Auction, string, error) {
	auctioneerID, err := actor.Auctioneer(ctx)
	if err != nil {
		return nil, "", err
	}
	if _, err = uuid.Parse(id); err != nil {
		return nil, "", ErrNotFound
	}
	ok, err := svc.store.LinkExists(ctx, id, auctioneerID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		// Distinguish "does not exist" from "someone else's".
		if _, err := svc.store.GetAuction(ctx, id); errors.Is(err, gateway.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", ErrForbidden
	}
	a, err := svc.store.GetAuction(ctx, id)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return a, auctioneerID, nil
}

func (svc *auctionService) GetAuction(ctx context.Context, id string) (*models.Auction, error) {
	a, _, err := svc.loadManaged(ctx, id)
	return a, err
}

func (svc *auctionService) GetAuctionDetail(ctx context.Context, id string) (*AuctionDetail, error) {
	a, _, err := svc.loadManaged(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &AuctionDetail{Auction: *a, Bids: []models.Bid{}}

	if a.Ficha != nil {
		v, err := svc.store.GetVehicle(ctx, *a.Ficha)
		if err != nil {
			zap.L().Warn("auction_detail.vehicle_failed", zap.String("id", id), zap.Error(err))
		} else {
			detail.Vehicle = v
		}
	}

	if a.Status == models.StatusActive {
		bids, err := svc.store.ListBids(ctx, id)
		if err != nil {
			zap.L().Warn("auction_detail.bids_failed", zap.String("id", id), zap.Error(err))
		} else {
			detail.Bids = bids
		}
	}
	if len(detail.Bids) > 0 {
		detail.HighestBidID = detail.Bids[0].ID
	}
	return detail, nil
}

func (svc *auctionService) ListBids(ctx context.Context, id string) ([]models.Bid, error) {
	if _, _, err := svc.loadManaged(ctx, id); err != nil {
		return nil, err
	}
	return svc.store.ListBids(ctx, id)
}

// checkVehicle adds a field error when the chosen vehicle does not exist or
// is held by another open auction.
func (svc *auctionService) checkVehicle(ctx context.Context, ficha, excludeAuctionID string) error {
	if _, err := svc.store.GetVehicle(ctx, ficha); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return FieldErrors{FieldVehicle: "selected vehicle does not exist"}
		}
		return err
	}
	ok, err := svc.vehicles.IsAvailable(ctx, ficha, excludeAuctionID)
	if err != nil {
		return err
	}
	if !ok {
		return FieldErrors{FieldVehicle: "selected vehicle is already assigned to another auction"}
	}
	return nil
}

// CreateAuction validates the form and stores a new Pendiente auction
// together with its managing link.
func (svc *auctionService) CreateAuction(ctx context.Context, form AuctionForm) (*models.Auction, error) {
	auctioneerID, err := actor.Auctioneer(ctx)
	if err != nil {
		return nil, err
	}
	now := svc.now()
	in, err := form.Validate(now, svc.loc)
	if err != nil {
		return nil, err
	}
	if err = svc.checkVehicle(ctx, in.Vehicle, ""); err != nil {
		return nil, err
	}

	created := now.UTC()
	starts, ends := in.StartsAt.UTC(), in.EndsAt.UTC()
	ficha := in.Vehicle
	a := models.Auction{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		Status:          models.StatusPending,
		CreatedAt:       &created,
		StartsAt:        &starts,
		EndsAt:          &ends,
		BasePrice:       in.BasePrice,
		MinBidIncrement: in.MinBid,
		MaxParticipants: in.MaxParticipants,
		Ficha:           &ficha,
	}
	link := models.Link{AuctioneerID: auctioneerID, AuctionID: a.ID, CreatedAt: created}
	if err = svc.store.CreateAuction(ctx, a, link); err != nil {
		zap.L().Error("auction_create_failed", zap.Error(err))
		return nil, err
	}
	svc.announce(ctx, auctioneerID, events.Event{Event: events.EventCreated, AuctionID: a.ID, To: a.Status})
	return &a, nil
}

func (svc *auctionService) UpdateAuction(ctx context.Context, id string, form AuctionForm) (*models.Auction, error) {
	a, auctioneerID, err := svc.loadManaged(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = CheckEdit(*a); err != nil {
		return nil, err
	}
	in, err := form.Validate(svc.now(), svc.loc)
	if err != nil {
		return nil, err
	}
	if err = svc.checkVehicle(ctx, in.Vehicle, id); err != nil {
		return nil, err
	}

	err = svc.store.UpdateAuction(ctx, id, models.AuctionUpdate{
		Title:           in.Title,
		Description:     in.Description,
		StartsAt:        in.StartsAt.UTC(),
		EndsAt:          in.EndsAt.UTC(),
		BasePrice:       in.BasePrice,
		MinBidIncrement: in.MinBid,
		MaxParticipants: in.MaxParticipants,
		Ficha:           in.Vehicle,
	})
	if err != nil {
		zap.L().Error("auction_update_failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	svc.announce(ctx, auctioneerID, events.Event{Event: events.EventUpdated, AuctionID: id, To: a.Status})
	return svc.GetAuction(ctx, id)
}

func (svc *auctionService) Publish(ctx context.Context, id string) error {
	a, auctioneerID, err := svc.loadManaged(ctx, id)
	if err != nil {
		return err
	}
	if err = CheckPublish(*a, svc.now()); err != nil {
		return err
	}
	return svc.setStatus(ctx, auctioneerID, *a, models.StatusPublished, nil)
}

func (svc *auctionService) Stop(ctx context.Context, id string) error {
	a, auctioneerID, err := svc.loadManaged(ctx, id)
	if err != nil {
		return err
	}
	if err = CheckStop(*a); err != nil {
		return err
	}
	return svc.setStatus(ctx, auctioneerID, *a, models.StatusPending, nil)
}

func (svc *auctionService) Cancel(ctx context.Context, id, reason string) error {
	a, auctioneerID, err := svc.loadManaged(ctx, id)
	if err != nil {
		return err
	}
	trimmed, err := CheckCancel(*a, reason)
	if err != nil {
		return err
	}
	return svc.setStatus(ctx, auctioneerID, *a, models.StatusCancelled, &trimmed)
}

// Delete removes the auction with its bids, participations, adjudications
// and link.
func (svc *auctionService) Delete(ctx context.Context, id string) error {
	a, auctioneerID, err := svc.loadManaged(ctx, id)
	if err != nil {
		return err
	}
	if err = CheckDelete(*a); err != nil {
		return err
	}
	if err = svc.store.DeleteAuctionCascade(ctx, id, auctioneerID); err != nil {
		zap.L().Error("auction_delete_failed", zap.String("id", id), zap.Error(err))
		return err
	}
	svc.announce(ctx, auctioneerID, events.Event{Event: events.EventDeleted, AuctionID: id, From: a.Status})
	return nil
}

func (svc *auctionService) setStatus(ctx context.Context, auctioneerID string, a models.Auction, to models.Status, reason *string) error {
	applied, err := svc.store.UpdateStatusFrom(ctx, a.ID, a.Status, to, reason)
	if err != nil {
		zap.L().Error("auction_status_write_failed",
			zap.String("id", a.ID), zap.String("to", string(to)), zap.Error(err))
		return err
	}
	if !applied {
		return ErrStatusChanged
	}
	e := events.Event{Event: events.EventStateChanged, AuctionID: a.ID, From: a.Status, To: to}
	if reason != nil {
		e.Reason = *reason
	}
	svc.announce(ctx, auctioneerID, e)
	return nil
}

// Reconcile evaluates the automatic transitions of every auction once against
// the current time and persists those that apply. A write only lands while
// the stored status still matches the one the decision was made from, so a
// stale copy never overwrites a newer manual change. Failed checks and writes
// are logged and skipped; the next pass retries them.
func (svc *auctionService) Reconcile(ctx context.Context, auctions []models.Auction) []Transition {
	auctioneerID, _ := actor.Auctioneer(ctx)
	now := svc.now()

	var done []Transition
	for _, a := range auctions {
		adjudicated := false
		if a.Status == models.StatusExpired {
			ok, err := svc.store.HasAdjudication(ctx, a.ID)
			if err != nil {
				zap.L().Warn("reconcile.adjudication_check_failed", zap.String("id", a.ID), zap.Error(err))
				continue
			}
			adjudicated = ok
		}

		next, ok := NextAutomatic(a, now, adjudicated)
		if !ok {
			continue
		}
		applied, err := svc.store.UpdateStatusFrom(ctx, a.ID, a.Status, next, nil)
		if err != nil {
			zap.L().Warn("reconcile.write_failed",
				zap.String("id", a.ID), zap.String("to", string(next)), zap.Error(err))
			continue
		}
		if !applied {
			zap.L().Info("reconcile.skipped_stale",
				zap.String("id", a.ID), zap.String("from", string(a.Status)), zap.String("to", string(next)))
			continue
		}
		zap.L().Info("reconcile.transition",
			zap.String("id", a.ID), zap.String("from", string(a.Status)), zap.String("to", string(next)))
		done = append(done, Transition{AuctionID: a.ID, From: a.Status, To: next})
		svc.announce(ctx, auctioneerID, events.Event{Event: events.EventStateChanged, AuctionID: a.ID, From: a.Status, To: next})
	}
	return done
}

func (svc *auctionService) announce(ctx context.Context, auctioneerID string, e events.Event) {
	if auctioneerID == "" {
		return
	}
	e.At = svc.now().UTC()
	if err := svc.pub.Publish(ctx, auctioneerID, e); err != nil {
		zap.L().Warn("auction_event_publish_failed", zap.String("id", e.AuctionID), zap.Error(err))
	}
}
