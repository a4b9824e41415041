// Package auctionview keeps the auctioneer's in-memory auction list: the
// collection the dashboard reads, filters and acts on. It falls back to a
// built-in example dataset when the store is unreachable, and in that mode
// simulates every action locally.
package auctionview

import (
	"context"
	"slices"
	"sync"
	"time"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/models"
	"auctiondesk/internal/redis/lock"
	"auctiondesk/internal/services/auction"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is what the dashboard renders.
type Snapshot struct {
	Auctions         []models.Auction `json:"auctions"`
	UsingExampleData bool             `json:"using_example_data"`
	Banner           string           `json:"banner,omitempty"`
}

// Locker serialises reconciliation passes across instances serving the
// same auctioneer.
type Locker interface {
	TryLock(ctx context.Context, key string) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type View struct {
	svc    auction.IAuctionService
	loc    *time.Location
	locker Locker

	mu           sync.Mutex
	auctions     []models.Auction
	usingExample bool
	banner       string

	changes chan struct{}
}

type Option func(*View)

// WithLocker makes every reconciliation pass hold the auctioneer's lock.
func WithLocker(l Locker) Option {
	return func(v *View) { v.locker = l }
}

func New(svc auction.IAuctionService, loc *time.Location, opts ...Option) *View {
	if loc == nil {
		loc = time.Local
	}
	v := &View{
		svc:     svc,
		loc:     loc,
		changes: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Changes fires whenever the number of auctions held changes.
func (v *View) Changes() <-chan struct{} { return v.changes }

func (v *View) Location() *time.Location { return v.loc }

// replace swaps the collection and signals a count change. Callers hold mu.
func (v *View) replace(list []models.Auction) {
	before := len(v.auctions)
	v.auctions = list
	if len(list) != before {
		select {
		case v.changes <- struct{}{}:
		default:
		}
	}
}

// Reload fetches the list from the store. On failure the example dataset
// takes its place; on success one reconciliation pass runs, under the
// locker when one is set.
func (v *View) Reload(ctx context.Context) Snapshot {
	list, err := v.svc.ListAuctions(ctx)

	v.mu.Lock()
	if err != nil {
		zap.L().Error("auction_list_failed", zap.Error(err))
		v.usingExample = true
		v.banner = ExampleDataBanner
		v.replace(exampleAuctions())
		v.mu.Unlock()
		return v.Snapshot(Filter{})
	}
	v.usingExample = false
	v.banner = ""
	v.replace(list)
	v.mu.Unlock()

	v.Reconcile(ctx)
	return v.Snapshot(Filter{})
}

// Snapshot returns the auctions passing f.
func (v *View) Snapshot(f Filter) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Auctions:         f.Apply(v.auctions, v.loc),
		UsingExampleData: v.usingExample,
		Banner:           v.banner,
	}
}

func (v *View) UsingExampleData() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.usingExample
}

func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.auctions)
}

func (v *View) Get(id string) (models.Auction, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.index(id)
	if i < 0 {
		return models.Auction{}, false
	}
	return v.auctions[i], true
}

func (v *View) index(id string) int {
	return slices.IndexFunc(v.auctions, func(a models.Auction) bool { return a.ID == id })
}

// Reconcile re-reads the auctions from the store, runs the automatic
// transitions over that fresh list and keeps the result. With a locker the
// whole pass holds the auctioneer's lock; a pass that cannot take it is
// skipped. Example data is never reconciled.
func (v *View) Reconcile(ctx context.Context) []auction.Transition {
	if v.UsingExampleData() {
		return nil
	}
	if v.locker == nil {
		return v.reconcile(ctx)
	}

	auctioneerID, err := actor.Auctioneer(ctx)
	if err != nil {
		zap.L().Warn("reconcile.no_actor", zap.Error(err))
		return nil
	}
	key := lock.Key(auctioneerID)
	ok, err := v.locker.TryLock(ctx, key)
	if err != nil {
		zap.L().Warn("reconcile.lock_failed", zap.Error(err))
		return nil
	}
	if !ok {
		zap.L().Debug("reconcile.lock_held_elsewhere", zap.String("key", key))
		return nil
	}
	defer func() {
		if err := v.locker.Unlock(ctx, key); err != nil {
			zap.L().Warn("reconcile.unlock_failed", zap.Error(err))
		}
	}()
	return v.reconcile(ctx)
}

func (v *View) reconcile(ctx context.Context) []auction.Transition {
	fresh, err := v.svc.ListAuctions(ctx)
	if err != nil {
		zap.L().Warn("reconcile.list_failed", zap.Error(err))
		return nil
	}

	var done []auction.Transition
	if len(fresh) > 0 {
		done = v.svc.Reconcile(ctx, fresh)
	}
	for _, t := range done {
		if i := slices.IndexFunc(fresh, func(a models.Auction) bool { return a.ID == t.AuctionID }); i >= 0 {
			fresh[i].Status = t.To
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.usingExample {
		return nil
	}
	// an action still in flight keeps its transient status until it lands
	for i := range fresh {
		if j := v.index(fresh[i].ID); j >= 0 && transient(v.auctions[j].Status) {
			fresh[i].Status = v.auctions[j].Status
		}
	}
	v.replace(fresh)
	return done
}

func transient(s models.Status) bool {
	return s == models.StatusPublishing || s == models.StatusPausing
}

// optimistic flags the auction with a transient status while fn writes, and
// restores revert if fn fails. The list is reloaded after a successful write.
func (v *View) optimistic(ctx context.Context, id string, check func(models.Auction) error,
	transient, revert models.Status, fn func() error) error {
	v.mu.Lock()
	i := v.index(id)
	if i < 0 {
		v.mu.Unlock()
		return auction.ErrNotFound
	}
	if err := check(v.auctions[i]); err != nil {
		v.mu.Unlock()
		return err
	}
	v.auctions[i].Status = transient
	v.mu.Unlock()

	if err := fn(); err != nil {
		v.mu.Lock()
		if j := v.index(id); j >= 0 && v.auctions[j].Status == transient {
			v.auctions[j].Status = revert
		}
		v.mu.Unlock()
		return err
	}
	v.Reload(ctx)
	return nil
}

// simulate applies a local-only change while showing example data. It
// reports false when the view is backed by the store.
func (v *View) simulate(id string, check func(models.Auction) error, apply func(i int)) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.usingExample {
		return false, nil
	}
	i := v.index(id)
	if i < 0 {
		return true, auction.ErrNotFound
	}
	if err := check(v.auctions[i]); err != nil {
		return true, err
	}
	apply(i)
	return true, nil
}

func (v *View) Publish(ctx context.Context, id string) error {
	check := func(a models.Auction) error { return auction.CheckPublish(a, v.svc.Now()) }
	if ok, err := v.simulate(id, check, func(i int) { v.auctions[i].Status = models.StatusPublished }); ok {
		return err
	}
	return v.optimistic(ctx, id, check, models.StatusPublishing, models.StatusPending,
		func() error { return v.svc.Publish(ctx, id) })
}

func (v *View) Stop(ctx context.Context, id string) error {
	if ok, err := v.simulate(id, auction.CheckStop, func(i int) { v.auctions[i].Status = models.StatusPending }); ok {
		return err
	}
	return v.optimistic(ctx, id, auction.CheckStop, models.StatusPausing, models.StatusPublished,
		func() error { return v.svc.Stop(ctx, id) })
}

// Cancel has no optimistic state; the list is reloaded once the write lands.
func (v *View) Cancel(ctx context.Context, id, reason string) error {
	var trimmed string
	check := func(a models.Auction) (err error) {
		trimmed, err = auction.CheckCancel(a, reason)
		return err
	}
	ok, err := v.simulate(id, check, func(i int) {
		v.auctions[i].Status = models.StatusCancelled
		v.auctions[i].CancelReason = &trimmed
	})
	if ok {
		return err
	}
	if err := v.svc.Cancel(ctx, id, reason); err != nil {
		return err
	}
	v.Reload(ctx)
	return nil
}

func (v *View) Delete(ctx context.Context, id string) error {
	ok, err := v.simulate(id, auction.CheckDelete, func(i int) {
		v.replace(slices.Delete(slices.Clone(v.auctions), i, i+1))
	})
	if ok {
		return err
	}
	if err := v.svc.Delete(ctx, id); err != nil {
		return err
	}
	v.Reload(ctx)
	return nil
}

func (v *View) Create(ctx context.Context, form auction.AuctionForm) (*models.Auction, error) {
	if v.UsingExampleData() {
		now := v.svc.Now()
		in, err := form.Validate(now, v.loc)
		if err != nil {
			return nil, err
		}
		a := fromInput(uuid.NewString(), in)
		created := now.UTC()
		a.CreatedAt = &created
		v.mu.Lock()
		v.replace(append(slices.Clone(v.auctions), a))
		v.mu.Unlock()
		return &a, nil
	}
	a, err := v.svc.CreateAuction(ctx, form)
	if err != nil {
		return nil, err
	}
	v.Reload(ctx)
	return a, nil
}

func (v *View) Update(ctx context.Context, id string, form auction.AuctionForm) (*models.Auction, error) {
	if v.UsingExampleData() {
		in, err := form.Validate(v.svc.Now(), v.loc)
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		defer v.mu.Unlock()
		i := v.index(id)
		if i < 0 {
			return nil, auction.ErrNotFound
		}
		if err := auction.CheckEdit(v.auctions[i]); err != nil {
			return nil, err
		}
		a := fromInput(id, in)
		a.CreatedAt = v.auctions[i].CreatedAt
		v.auctions[i] = a
		return &a, nil
	}
	a, err := v.svc.UpdateAuction(ctx, id, form)
	if err != nil {
		return nil, err
	}
	v.Reload(ctx)
	return a, nil
}

func fromInput(id string, in auction.AuctionInput) models.Auction {
	starts, ends := in.StartsAt.UTC(), in.EndsAt.UTC()
	ficha := in.Vehicle
	return models.Auction{
		ID:              id,
		Title:           in.Title,
		Description:     in.Description,
		Status:          models.StatusPending,
		StartsAt:        &starts,
		EndsAt:          &ends,
		BasePrice:       in.BasePrice,
		MinBidIncrement: in.MinBid,
		MaxParticipants: in.MaxParticipants,
		Ficha:           &ficha,
	}
}
