package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

type fakeSnapshots struct {
	saved   []domain.Activity
	has     bool
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func (f *fakeSnapshots) Load(_ context.Context) ([]domain.Activity, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if !f.has {
		return nil, repository.ErrNoSnapshot
	}
	return slices.Clone(f.saved), nil
}

func (f *fakeSnapshots) SaveAll(_ context.Context, activities []domain.Activity) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = slices.Clone(activities)
	f.has = true
	return nil
}

type fakeRecords struct {
	items     []domain.Activity
	next      int
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	creates   []domain.Draft
	updates   []domain.Activity
	deletes   []domain.ID
}

func (f *fakeRecords) List(_ context.Context) ([]domain.Activity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.items), nil
}

func (f *fakeRecords) GetByID(_ context.Context, id domain.ID) (*domain.Activity, error) {
	for _, a := range f.items {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, domain.ErrActivityNotFound
}

func (f *fakeRecords) Create(_ context.Context, draft domain.Draft) (*domain.Activity, error) {
	f.creates = append(f.creates, draft)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.next++
	created := draft.NewActivity(domain.ID(fmt.Sprintf("r-%d", f.next)))
	f.items = append(f.items, created)
	return &created, nil
}

func (f *fakeRecords) Update(_ context.Context, activity *domain.Activity) error {
	f.updates = append(f.updates, *activity)
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.items {
		if f.items[i].ID == activity.ID {
			f.items[i] = *activity
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func (f *fakeRecords) Delete(_ context.Context, id domain.ID) error {
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func counterIDs() func() domain.ID {
	n := 0
	return func() domain.ID {
		n++
		return domain.ID(fmt.Sprintf("local-%d", n))
	}
}

func newLocalRepo(t *testing.T, store *fakeSnapshots) *Repository {
	t.Helper()
	repo := NewLocal(store, Config{OptimisticWrites: true, NewID: counterIDs()}, nil)
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return repo
}

func newRemoteRepo(t *testing.T, store *fakeRecords) *Repository {
	t.Helper()
	repo := NewRemote(store, Config{}, nil)
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return repo
}

func draftFixture() domain.Draft {
	return domain.Draft{
		Title:       "Lista de exercícios",
		Description: "Resolver questões 1 a 10",
		Date:        "2024-01-21",
		Time:        "09:15",
		Subject:     "Química",
		Priority:    domain.PriorityLow,
	}
}

func remoteFixture() *fakeRecords {
	return &fakeRecords{items: domain.ExampleActivities()}
}

func TestLocalInitializeSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := &fakeSnapshots{}

	first := NewLocal(store, Config{OptimisticWrites: true}, nil)
	if err := first.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	view := first.SortedView()
	if len(view) != 2 || view[0].Title != "Prova de Matemática" || view[1].Title != "Trabalho de História" {
		t.Fatalf("unexpected seed %#v", view)
	}
	if store.saves != 1 || len(store.saved) != 2 {
		t.Fatalf("expected the seed to be persisted once, saves=%d saved=%d", store.saves, len(store.saved))
	}

	second := NewLocal(store, Config{OptimisticWrites: true}, nil)
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("second Initialize() must not re-seed, saves=%d", store.saves)
	}
	if !slices.Equal(second.Activities(), first.Activities()) {
		t.Fatalf("expected identical records, got %#v", second.Activities())
	}
}

func TestLocalInitializeKeepsEmptiedList(t *testing.T) {
	store := &fakeSnapshots{has: true, saved: []domain.Activity{}}
	repo := newLocalRepo(t, store)
	if len(repo.SortedView()) != 0 || store.saves != 0 {
		t.Fatalf("an explicitly empty store must not be seeded, saves=%d", store.saves)
	}
}

func TestInitializeFailure(t *testing.T) {
	ctx := context.Background()
	store := &fakeSnapshots{loadErr: errors.New("disk unavailable")}
	repo := NewLocal(store, Config{OptimisticWrites: true}, nil)

	err := repo.Initialize(ctx)
	if !domain.IsDomainError(err, domain.ErrCodeLoad) {
		t.Fatalf("expected LOAD_FAILED, got %v", err)
	}
	if len(repo.SortedView()) != 0 || repo.Loaded() {
		t.Fatal("failed load must leave the list empty")
	}

	if _, err := repo.Create(ctx, draftFixture()); !domain.IsDomainError(err, domain.ErrCodeLoad) {
		t.Fatalf("expected mutations to be refused before a load, got %v", err)
	}
	if store.saves != 0 {
		t.Fatal("a refused mutation must not overwrite the store")
	}

	store.loadErr = nil
	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("retry Initialize() error = %v", err)
	}
	if !repo.Loaded() || len(repo.SortedView()) != 2 {
		t.Fatal("expected the repository to recover after a retry")
	}
}

func TestInitializeRejectsDuplicateIDs(t *testing.T) {
	seed := domain.ExampleActivities()
	seed[1].ID = seed[0].ID
	store := &fakeSnapshots{has: true, saved: seed}
	repo := NewLocal(store, Config{}, nil)
	if err := repo.Initialize(context.Background()); !domain.IsDomainError(err, domain.ErrCodeLoad) {
		t.Fatalf("expected LOAD_FAILED for duplicate ids, got %v", err)
	}
}

func TestRemoteInitializeFailure(t *testing.T) {
	store := &fakeRecords{listErr: errors.New("503 service unavailable")}
	repo := NewRemote(store, Config{}, nil)
	if err := repo.Initialize(context.Background()); !domain.IsDomainError(err, domain.ErrCodeLoad) {
		t.Fatalf("expected LOAD_FAILED, got %v", err)
	}
	if len(repo.SortedView()) != 0 {
		t.Fatal("failed load must leave the list empty")
	}
}

func TestCreateAppendsValidDraft(t *testing.T) {
	ctx := context.Background()
	repos := map[string]*Repository{
		"local":  newLocalRepo(t, &fakeSnapshots{}),
		"remote": newRemoteRepo(t, remoteFixture()),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			before := repo.SortedView()
			created, err := repo.Create(ctx, draftFixture())
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			after := repo.SortedView()
			if len(after) != len(before)+1 {
				t.Fatalf("expected %d activities, got %d", len(before)+1, len(after))
			}

			var matches []domain.Activity
			for _, a := range after {
				if a.ID == created.ID {
					matches = append(matches, a)
				}
			}
			if len(matches) != 1 {
				t.Fatalf("expected exactly one record with id %s, got %d", created.ID, len(matches))
			}
			want := draftFixture().NewActivity(created.ID)
			if matches[0] != want || created.ID == "" || matches[0].Completed {
				t.Fatalf("created record %#v, want %#v", matches[0], want)
			}
		})
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	ctx := context.Background()
	local := &fakeSnapshots{}
	remote := remoteFixture()
	repos := map[string]*Repository{
		"local":  newLocalRepo(t, local),
		"remote": newRemoteRepo(t, remote),
	}
	mutations := []func(*domain.Draft){
		func(d *domain.Draft) { d.Title = "" },
		func(d *domain.Draft) { d.Description = "" },
		func(d *domain.Draft) { d.Subject = "" },
	}
	for name, repo := range repos {
		for i, mutate := range mutations {
			draft := draftFixture()
			mutate(&draft)
			before := repo.Activities()
			if _, err := repo.Create(ctx, draft); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Fatalf("%s/%d: expected INVALID, got %v", name, i, err)
			}
			if !slices.Equal(before, repo.Activities()) {
				t.Fatalf("%s/%d: invalid create mutated the list", name, i)
			}
		}
	}
	if local.saves != 1 {
		t.Fatalf("invalid drafts must never reach the local store, saves=%d", local.saves)
	}
	if len(remote.creates) != 0 {
		t.Fatalf("invalid drafts must never reach the remote store, creates=%d", len(remote.creates))
	}
}

func TestLocalCreateAssignsIDBeforeInsert(t *testing.T) {
	store := &fakeSnapshots{}
	repo := newLocalRepo(t, store)
	created, err := repo.Create(context.Background(), draftFixture())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "local-1" {
		t.Fatalf("unexpected local id %q", created.ID)
	}
	if len(store.saved) != 3 || store.saved[2].ID != "local-1" {
		t.Fatalf("expected the full list with the new record persisted, got %#v", store.saved)
	}
}

func TestLocalIDsSkipCollisions(t *testing.T) {
	ids := []domain.ID{"1", "2", "fresh"}
	n := 0
	repo := NewLocal(&fakeSnapshots{}, Config{NewID: func() domain.ID {
		id := ids[n]
		n++
		return id
	}}, nil)
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	created, err := repo.Create(context.Background(), draftFixture())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "fresh" {
		t.Fatalf("expected colliding ids to be skipped, got %q", created.ID)
	}
}

func TestRemoteCreateUsesStoreIdentity(t *testing.T) {
	store := remoteFixture()
	repo := newRemoteRepo(t, store)
	created, err := repo.Create(context.Background(), draftFixture())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "r-1" {
		t.Fatalf("expected store-assigned id, got %q", created.ID)
	}
	if sent := store.creates[0]; sent.Completed == nil || *sent.Completed {
		t.Fatalf("expected completed=false to be sent, got %#v", sent.Completed)
	}
}

func TestRemoteCreateFailureDoesNotInsert(t *testing.T) {
	store := remoteFixture()
	store.createErr = errors.New("connection reset")
	repo := newRemoteRepo(t, store)

	_, err := repo.Create(context.Background(), draftFixture())
	if !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if !errors.Is(err, store.createErr) {
		t.Fatalf("expected the cause to be kept, got %v", err)
	}
	if len(repo.Activities()) != 2 {
		t.Fatalf("failed remote create must not insert, got %d", len(repo.Activities()))
	}
}

func TestLocalCreateKeepsMutationWhenSaveFails(t *testing.T) {
	store := &fakeSnapshots{}
	repo := newLocalRepo(t, store)
	store.saveErr = errors.New("quota exceeded")

	created, err := repo.Create(context.Background(), draftFixture())
	if !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if _, ok := repo.Get(created.ID); !ok {
		t.Fatal("optimistic local create must stay in memory")
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	repos := map[string]*Repository{
		"local":  newLocalRepo(t, &fakeSnapshots{}),
		"remote": newRemoteRepo(t, remoteFixture()),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			original, _ := repo.Get("1")

			toggled, err := repo.ToggleComplete(ctx, "1")
			if err != nil {
				t.Fatalf("ToggleComplete() error = %v", err)
			}
			if toggled.Completed == original.Completed {
				t.Fatal("expected completed to flip")
			}
			flippedBack := toggled
			flippedBack.Completed = original.Completed
			if flippedBack != original {
				t.Fatalf("toggle changed other fields: %#v vs %#v", toggled, original)
			}

			if _, err := repo.ToggleComplete(ctx, "1"); err != nil {
				t.Fatalf("second ToggleComplete() error = %v", err)
			}
			restored, _ := repo.Get("1")
			if restored != original {
				t.Fatalf("expected %#v after two toggles, got %#v", original, restored)
			}
			other, _ := repo.Get("2")
			if other.Completed {
				t.Fatal("toggle touched another record")
			}
		})
	}
}

func TestRemoteToggleSendsFullRecord(t *testing.T) {
	store := remoteFixture()
	repo := newRemoteRepo(t, store)
	if _, err := repo.ToggleComplete(context.Background(), "2"); err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	want := domain.ExampleActivities()[1]
	want.Completed = true
	if len(store.updates) != 1 || store.updates[0] != want {
		t.Fatalf("expected full record %#v, got %#v", want, store.updates)
	}
}

func TestUpdateReplacesFieldsKeepsCompleted(t *testing.T) {
	ctx := context.Background()
	repos := map[string]*Repository{
		"local":  newLocalRepo(t, &fakeSnapshots{}),
		"remote": newRemoteRepo(t, remoteFixture()),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.ToggleComplete(ctx, "1"); err != nil {
				t.Fatalf("ToggleComplete() error = %v", err)
			}

			draft := draftFixture()
			if _, err := repo.Update(ctx, "1", draft); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			got, _ := repo.Get("1")
			want := draft.NewActivity("1")
			want.Completed = true
			if got != want {
				t.Fatalf("got %#v, want %#v", got, want)
			}

			reopen := false
			draft.Completed = &reopen
			if _, err := repo.Update(ctx, "1", draft); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if got, _ := repo.Get("1"); got.Completed {
				t.Fatal("explicit completed in the draft must be applied")
			}
		})
	}
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t, &fakeSnapshots{})

	if _, err := repo.Update(ctx, "missing", draftFixture()); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if _, err := repo.ToggleComplete(ctx, "missing"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	bad := draftFixture()
	bad.Subject = " "
	before, _ := repo.Get("1")
	if _, err := repo.Update(ctx, "1", bad); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID, got %v", err)
	}
	if after, _ := repo.Get("1"); after != before {
		t.Fatal("invalid update mutated the record")
	}
}

func TestRemoteUpdateFailureLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	store := remoteFixture()
	repo := newRemoteRepo(t, store)
	store.updateErr = errors.New("network is unreachable")
	before := repo.Activities()

	if _, err := repo.Update(ctx, "1", draftFixture()); !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED from Update, got %v", err)
	}
	if _, err := repo.ToggleComplete(ctx, "1"); !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED from ToggleComplete, got %v", err)
	}
	if !slices.Equal(before, repo.Activities()) {
		t.Fatalf("remote failure changed in-memory state: %#v", repo.Activities())
	}
}

func TestLocalUpdateKeepsMutationWhenSaveFails(t *testing.T) {
	store := &fakeSnapshots{}
	repo := newLocalRepo(t, store)
	store.saveErr = errors.New("storage full")

	if _, err := repo.ToggleComplete(context.Background(), "1"); !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if got, _ := repo.Get("1"); !got.Completed {
		t.Fatal("optimistic local toggle must stay in memory")
	}
}

func TestConfirmedLocalWritesRollBack(t *testing.T) {
	store := &fakeSnapshots{}
	repo := NewLocal(store, Config{OptimisticWrites: false}, nil)
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	store.saveErr = errors.New("read-only file system")

	if _, err := repo.ToggleComplete(context.Background(), "1"); !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if got, _ := repo.Get("1"); got.Completed {
		t.Fatal("confirmed writes must not commit on failure")
	}
}

func TestDeleteTwiceNotFound(t *testing.T) {
	ctx := context.Background()
	repos := map[string]*Repository{
		"local":  newLocalRepo(t, &fakeSnapshots{}),
		"remote": newRemoteRepo(t, remoteFixture()),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			before := len(repo.Activities())
			if err := repo.Delete(ctx, "1"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if got := len(repo.Activities()); got != before-1 {
				t.Fatalf("expected %d activities, got %d", before-1, got)
			}
			if err := repo.Delete(ctx, "1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
				t.Fatalf("expected NOT_FOUND on second delete, got %v", err)
			}
		})
	}
}

func TestRemoteDeleteFailureKeepsRecord(t *testing.T) {
	store := remoteFixture()
	repo := newRemoteRepo(t, store)
	store.deleteErr = errors.New("timeout")

	if err := repo.Delete(context.Background(), "2"); !domain.IsDomainError(err, domain.ErrCodePersistence) {
		t.Fatalf("expected PERSISTENCE_FAILED, got %v", err)
	}
	if _, ok := repo.Get("2"); !ok {
		t.Fatal("failed remote delete must keep the record")
	}
}

func TestTwoStepDelete(t *testing.T) {
	ctx := context.Background()
	store := &fakeSnapshots{}
	repo := newLocalRepo(t, store)

	if _, err := repo.RequestDelete("missing"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	token, err := repo.RequestDelete("2")
	if err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	if token.Title != "Trabalho de História" {
		t.Fatalf("unexpected token title %q", token.Title)
	}
	if _, ok := repo.Get("2"); !ok {
		t.Fatal("RequestDelete must not remove anything")
	}

	cancelled, err := repo.RequestDelete("1")
	if err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	repo.CancelDelete(cancelled)
	if err := repo.ConfirmDelete(ctx, cancelled); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected cancelled token to be rejected, got %v", err)
	}

	if err := repo.ConfirmDelete(ctx, token); err != nil {
		t.Fatalf("ConfirmDelete() error = %v", err)
	}
	if _, ok := repo.Get("2"); ok {
		t.Fatal("expected activity 2 to be deleted")
	}
	if len(store.saved) != 1 || store.saved[0].ID != "1" {
		t.Fatalf("expected the deletion to be persisted, got %#v", store.saved)
	}
	if err := repo.ConfirmDelete(ctx, token); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected a used token to be rejected, got %v", err)
	}
}

func TestSortedViewIsStableAndChronological(t *testing.T) {
	store := &fakeSnapshots{has: true, saved: []domain.Activity{
		{ID: "late", Title: "t", Date: "2024-01-22", Time: "23:59"},
		{ID: "tie-a", Title: "t", Date: "2024-01-21", Time: "08:00"},
		{ID: "early", Title: "t", Date: "2024-01-20", Time: "14:00"},
		{ID: "tie-b", Title: "t", Date: "2024-01-21", Time: "08:00"},
		{ID: "dec", Title: "t", Date: "2023-12-31", Time: "23:59"},
	}}
	repo := newLocalRepo(t, store)

	view := repo.SortedView()
	var got []domain.ID
	for _, a := range view {
		got = append(got, a.ID)
	}
	want := []domain.ID{"dec", "early", "tie-a", "tie-b", "late"}
	if !slices.Equal(got, want) {
		t.Fatalf("sorted ids %v, want %v", got, want)
	}

	view[0].Title = "mutated"
	if canonical := repo.Activities(); canonical[0].ID != "late" || canonical[4].Title != "t" {
		t.Fatal("SortedView must not alter the canonical list")
	}
}

func TestSubscribeReceivesCommittedChanges(t *testing.T) {
	ctx := context.Background()
	store := remoteFixture()
	repo := NewRemote(store, Config{}, nil)

	var snapshots [][]domain.Activity
	cancel := repo.Subscribe(func(activities []domain.Activity) {
		snapshots = append(snapshots, activities)
	})

	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if _, err := repo.ToggleComplete(ctx, "1"); err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	store.updateErr = errors.New("offline")
	_, _ = repo.ToggleComplete(ctx, "1")

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(snapshots))
	}
	if !snapshots[1][0].Completed {
		t.Fatal("expected the second notification to carry the toggled record")
	}

	cancel()
	store.updateErr = nil
	if _, err := repo.ToggleComplete(ctx, "2"); err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatal("cancelled listener was still notified")
	}
}

func TestSingleDigitHoursAreStoredAsHHMM(t *testing.T) {
	ctx := context.Background()
	repo := newLocalRepo(t, &fakeSnapshots{})

	draft := draftFixture()
	draft.Date = "2024-01-20"
	draft.Time = "9:05"
	created, err := repo.Create(ctx, draft)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Time != "09:05" {
		t.Fatalf("expected 09:05, got %q", created.Time)
	}

	edit := domain.DraftOf(domain.ExampleActivities()[0])
	edit.Time = "7:30"
	updated, err := repo.Update(ctx, "1", edit)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Time != "07:30" {
		t.Fatalf("expected 07:30, got %q", updated.Time)
	}

	view := repo.SortedView()
	want := []domain.ID{"1", created.ID, "2"}
	for i, id := range want {
		if view[i].ID != id {
			t.Fatalf("position %d = %s (%s), want %s", i, view[i].ID, view[i].Time, id)
		}
	}
}
