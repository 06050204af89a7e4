package planner

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

// Config tunes how the Repository synchronizes with its store.
type Config struct {
	// OptimisticWrites applies mutations in memory before persisting and
	// keeps them when persistence fails. When false a mutation is committed
	// only after the store confirmed it.
	OptimisticWrites bool
	// Seed is written to an empty snapshot store on Initialize. Nil means
	// domain.ExampleActivities.
	Seed []domain.Activity
	// NewID generates local identifiers. Nil means random UUIDs.
	NewID func() domain.ID
}

// Listener receives the sorted activity list after every committed change.
type Listener func(activities []domain.Activity)

// Repository owns the canonical in-memory activity list and mediates every
// mutation through exactly one store.
type Repository struct {
	snapshots repository.SnapshotStore
	records   repository.RecordStore
	cfg       Config
	logger    *zap.Logger

	// writeMu serializes mutations; mu guards the list for readers.
	writeMu    sync.Mutex
	mu         sync.RWMutex
	activities []domain.Activity
	loaded     bool

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int

	tokenMu sync.Mutex
	pending map[string]domain.ID
}

// NewLocal builds a Repository over a whole-collection snapshot store.
func NewLocal(store repository.SnapshotStore, cfg Config, logger *zap.Logger) *Repository {
	r := newRepository(cfg, logger)
	r.snapshots = store
	return r
}

// NewRemote builds a Repository over a per-record store whose identifiers
// are assigned remotely.
func NewRemote(store repository.RecordStore, cfg Config, logger *zap.Logger) *Repository {
	r := newRepository(cfg, logger)
	r.records = store
	return r
}

func newRepository(cfg Config, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Seed == nil {
		cfg.Seed = domain.ExampleActivities()
	}
	if cfg.NewID == nil {
		cfg.NewID = func() domain.ID { return domain.ID(uuid.NewString()) }
	}
	return &Repository{
		cfg:       cfg,
		logger:    logger,
		listeners: make(map[int]Listener),
		pending:   make(map[string]domain.ID),
	}
}

// Initialize replaces the in-memory list with the store's contents. An
// empty snapshot store is seeded and the seed persisted right away. On
// failure the list is left empty and a LOAD_FAILED error is returned.
func (r *Repository) Initialize(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	activities, err := r.load(ctx)
	if err == nil {
		err = checkUniqueIDs(activities)
	}
	if err != nil {
		r.reset()
		r.logger.Error("failed to load activities", zap.Error(err))
		return domain.WrapError(domain.ErrCodeLoad, "failed to load activities", err)
	}

	r.mu.Lock()
	r.activities = activities
	r.loaded = true
	r.mu.Unlock()

	r.logger.Info("activities loaded", zap.Int("count", len(activities)))
	r.publish()
	return nil
}

func (r *Repository) load(ctx context.Context) ([]domain.Activity, error) {
	if r.records != nil {
		return r.records.List(ctx)
	}
	activities, err := r.snapshots.Load(ctx)
	if !errors.Is(err, repository.ErrNoSnapshot) {
		return activities, err
	}
	seed := slices.Clone(r.cfg.Seed)
	if err := r.snapshots.SaveAll(ctx, seed); err != nil {
		return nil, err
	}
	r.logger.Info("seeded empty activity store", zap.Int("count", len(seed)))
	return seed, nil
}

func (r *Repository) reset() {
	r.mu.Lock()
	r.activities = nil
	r.loaded = false
	r.mu.Unlock()
	r.publish()
}

// Create validates the draft and appends a new incomplete activity.
func (r *Repository) Create(ctx context.Context, draft domain.Draft) (domain.Activity, error) {
	if err := draft.Validate(); err != nil {
		return domain.Activity{}, err
	}
	draft = draft.Normalize()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, err := r.current()
	if err != nil {
		return domain.Activity{}, err
	}

	if r.records != nil {
		// Identity is assigned remotely, so the insert waits for the store.
		incomplete := false
		draft.Completed = &incomplete
		created, err := r.records.Create(ctx, draft)
		if err != nil {
			return domain.Activity{}, r.persistenceError("create", err)
		}
		if idx := indexOf(current, created.ID); idx >= 0 {
			// The store reused an id we already hold; its copy wins.
			current[idx] = *created
			r.commit(current)
			return *created, nil
		}
		r.commit(append(current, *created))
		return *created, nil
	}

	activity := draft.NewActivity(r.newLocalID(current))
	next := append(current, activity)
	return activity, r.apply(ctx, "create", next, nil)
}

// Update replaces every field of the activity except its id. Completed is
// preserved unless the draft sets it.
func (r *Repository) Update(ctx context.Context, id domain.ID, draft domain.Draft) (domain.Activity, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, err := r.current()
	if err != nil {
		return domain.Activity{}, err
	}
	idx := indexOf(current, id)
	if idx < 0 {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if err := draft.Validate(); err != nil {
		return domain.Activity{}, err
	}

	updated := draft.Normalize().Apply(current[idx])
	current[idx] = updated
	return updated, r.apply(ctx, "update", current, func(ctx context.Context) error {
		record := updated
		return r.records.Update(ctx, &record)
	})
}

// ToggleComplete flips the completed flag of one activity.
func (r *Repository) ToggleComplete(ctx context.Context, id domain.ID) (domain.Activity, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, err := r.current()
	if err != nil {
		return domain.Activity{}, err
	}
	idx := indexOf(current, id)
	if idx < 0 {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	toggled := current[idx]
	toggled.Completed = !toggled.Completed
	current[idx] = toggled
	return toggled, r.apply(ctx, "toggle", current, func(ctx context.Context) error {
		record := toggled
		return r.records.Update(ctx, &record)
	})
}

// Delete removes one activity. Presentation is expected to confirm first,
// see RequestDelete.
func (r *Repository) Delete(ctx context.Context, id domain.ID) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.delete(ctx, id)
}

func (r *Repository) delete(ctx context.Context, id domain.ID) error {
	current, err := r.current()
	if err != nil {
		return err
	}
	idx := indexOf(current, id)
	if idx < 0 {
		return domain.ErrActivityNotFound
	}

	next := slices.Delete(current, idx, idx+1)
	return r.apply(ctx, "delete", next, func(ctx context.Context) error {
		return r.records.Delete(ctx, id)
	})
}

// SortedView returns a fresh copy of all activities ordered by date and
// time. Equal timestamps keep their list order.
func (r *Repository) SortedView() []domain.Activity {
	r.mu.RLock()
	view := slices.Clone(r.activities)
	r.mu.RUnlock()
	return sortActivities(view)
}

// Activities returns a copy of the list in its canonical order.
func (r *Repository) Activities() []domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.activities)
}

// Get returns a copy of one activity.
func (r *Repository) Get(id domain.ID) (domain.Activity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := indexOf(r.activities, id); idx >= 0 {
		return r.activities[idx], true
	}
	return domain.Activity{}, false
}

// Loaded reports whether the last Initialize succeeded.
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// Subscribe registers a listener and returns a function removing it.
// Listeners run synchronously inside the mutation and must not call back
// into the Repository's mutating methods.
func (r *Repository) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.listeners, id)
		r.subMu.Unlock()
	}
}

// apply commits next according to the write policy. remote persists the
// change against a record store; snapshot stores always get the full list.
func (r *Repository) apply(ctx context.Context, op string, next []domain.Activity, remote func(context.Context) error) error {
	persist := remote
	if r.snapshots != nil {
		persist = func(ctx context.Context) error {
			return r.snapshots.SaveAll(ctx, next)
		}
	}

	if r.cfg.OptimisticWrites {
		r.commit(next)
		if err := persist(ctx); err != nil {
			return r.persistenceError(op, err)
		}
		return nil
	}

	if err := persist(ctx); err != nil {
		return r.persistenceError(op, err)
	}
	r.commit(next)
	return nil
}

func (r *Repository) commit(next []domain.Activity) {
	r.mu.Lock()
	r.activities = next
	r.mu.Unlock()
	r.publish()
}

func (r *Repository) publish() {
	r.subMu.Lock()
	listeners := make([]Listener, 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	r.subMu.Unlock()

	if len(listeners) == 0 {
		return
	}
	for _, fn := range listeners {
		fn(r.SortedView())
	}
}

// current returns a private copy of the list, or ErrNotLoaded.
func (r *Repository) current() ([]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return nil, domain.ErrNotLoaded
	}
	return slices.Clone(r.activities), nil
}

func (r *Repository) persistenceError(op string, err error) error {
	r.logger.Warn("activity persistence failed",
		zap.String("operation", op),
		zap.Bool("optimistic", r.cfg.OptimisticWrites),
		zap.Error(err))
	return domain.WrapError(domain.ErrCodePersistence, op+" not persisted", err)
}

func (r *Repository) newLocalID(current []domain.Activity) domain.ID {
	for {
		id := r.cfg.NewID()
		if id != "" && indexOf(current, id) < 0 {
			return id
		}
	}
}

func indexOf(activities []domain.Activity, id domain.ID) int {
	return slices.IndexFunc(activities, func(a domain.Activity) bool {
		return a.ID == id
	})
}

func sortActivities(activities []domain.Activity) []domain.Activity {
	slices.SortStableFunc(activities, func(a, b domain.Activity) int {
		return strings.Compare(a.SortKey(), b.SortKey())
	})
	return activities
}

func checkUniqueIDs(activities []domain.Activity) error {
	seen := make(map[domain.ID]struct{}, len(activities))
	for _, a := range activities {
		if a.ID == "" {
			return errors.New("activity without id")
		}
		if _, dup := seen[a.ID]; dup {
			return errors.New("duplicate activity id " + a.ID.String())
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
