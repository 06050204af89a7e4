package router

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	apiHandler "github.com/fastygo/studyplanner/api/handler"
	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/internal/infrastructure/monitor"
	"github.com/fastygo/studyplanner/internal/middleware"
	"github.com/fastygo/studyplanner/pkg/httpcontext"
	"github.com/fastygo/studyplanner/repository/remote"
	activityUC "github.com/fastygo/studyplanner/usecase/activity"
	"github.com/fastygo/studyplanner/usecase/planner"
)

// tableStore mimics the Postgres repository in memory.
type tableStore struct {
	mu    sync.Mutex
	rows  []domain.Activity
	count int
}

func (s *tableStore) List(context.Context) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Activity{}, s.rows...), nil
}

func (s *tableStore) GetByID(_ context.Context, id domain.ID) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.rows {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, domain.ErrActivityNotFound
}

func (s *tableStore) Create(_ context.Context, draft domain.Draft) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	a := draft.NewActivity(domain.ID("row-" + string(rune('0'+s.count))))
	if draft.Completed != nil {
		a.Completed = *draft.Completed
	}
	s.rows = append(s.rows, a)
	return &a, nil
}

func (s *tableStore) Update(_ context.Context, activity *domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == activity.ID {
			s.rows[i] = *activity
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func (s *tableStore) Delete(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrActivityNotFound
}

func startServer(t *testing.T, secret string, store *tableStore) *fasthttp.Client {
	t.Helper()
	adapter := httpcontext.NewAdapter(time.Second)
	mon := monitor.New(nil, nil, time.Minute, nil)
	handlers := Handlers{
		Activity: apiHandler.NewActivityHandler(activityUC.New(store, nil, nil), adapter, nil),
		Health:   apiHandler.NewHealthHandler(mon, adapter, nil),
	}
	r := New(handlers, middleware.JWTAuth(secret, "", nil))

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: r.Handler}
	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})
	return &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
}

func TestRemoteRepositoryAgainstService(t *testing.T) {
	ctx := context.Background()
	store := &tableStore{rows: domain.ExampleActivities()}
	client := startServer(t, "", store)

	records, err := remote.NewActivityClient(remote.Config{
		BaseURL: "http://planner.test/api/v1/activities",
		Client:  client,
	})
	if err != nil {
		t.Fatalf("NewActivityClient() error = %v", err)
	}
	repo := planner.NewRemote(records, planner.Config{}, nil)
	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if len(repo.SortedView()) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(repo.SortedView()))
	}

	created, err := repo.Create(ctx, domain.Draft{
		Title:       "Feira de ciências",
		Description: "Montar maquete",
		Date:        "2024-01-21",
		Time:        "13:00",
		Subject:     "Ciências",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "row-1" {
		t.Fatalf("expected server id, got %q", created.ID)
	}
	if view := repo.SortedView(); view[1].ID != "row-1" {
		t.Fatalf("expected the new activity between the seeds, got %#v", view)
	}

	if _, err := repo.ToggleComplete(ctx, "row-1"); err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	stored, _ := store.GetByID(ctx, "row-1")
	if !stored.Completed {
		t.Fatal("toggle did not reach the service")
	}

	token, err := repo.RequestDelete("2")
	if err != nil {
		t.Fatalf("RequestDelete() error = %v", err)
	}
	if err := repo.ConfirmDelete(ctx, token); err != nil {
		t.Fatalf("ConfirmDelete() error = %v", err)
	}
	if rows, _ := store.List(ctx); len(rows) != 2 {
		t.Fatalf("expected 2 rows after delete, got %d", len(rows))
	}

	if err := records.Delete(ctx, "2"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND from the service, got %v", err)
	}
}

func TestProtectedRoutes(t *testing.T) {
	store := &tableStore{rows: domain.ExampleActivities()}
	client := startServer(t, "s3cret", store)
	ctx := context.Background()

	anonymous, _ := remote.NewActivityClient(remote.Config{
		BaseURL: "http://planner.test/api/v1/activities",
		Client:  client,
	})
	if _, err := anonymous.List(ctx); err == nil {
		t.Fatal("expected 401 without a token")
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "student-1"}).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	authorized, _ := remote.NewActivityClient(remote.Config{
		BaseURL: "http://planner.test/api/v1/activities",
		Token:   token,
		Client:  client,
	})
	list, err := authorized.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List() = %d, %v", len(list), err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)
	req.SetRequestURI("http://planner.test/health")
	if err := client.Do(req, resp); err != nil {
		t.Fatalf("health request error = %v", err)
	}
	if resp.StatusCode() != fasthttp.StatusServiceUnavailable {
		t.Fatalf("health must be public and report unchecked dependencies, got %d", resp.StatusCode())
	}
}
