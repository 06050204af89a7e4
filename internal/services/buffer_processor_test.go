package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/internal/infrastructure/buffer"
	"github.com/fastygo/studyplanner/usecase"
)

type fakeHealth struct{ online bool }

func (f *fakeHealth) IsOnline() bool { return f.online }

type fakeWriter struct {
	failures int
	upserts  []domain.Activity
	deletes  []domain.ID
	calls    []string
}

func (f *fakeWriter) Upsert(_ context.Context, activity *domain.Activity) error {
	f.calls = append(f.calls, "upsert:"+activity.ID.String())
	if f.failures > 0 {
		f.failures--
		return errors.New("database unavailable")
	}
	f.upserts = append(f.upserts, *activity)
	return nil
}

func (f *fakeWriter) Delete(_ context.Context, id domain.ID) error {
	f.calls = append(f.calls, "delete:"+id.String())
	if f.failures > 0 {
		f.failures--
		return errors.New("database unavailable")
	}
	f.deletes = append(f.deletes, id)
	return domain.ErrActivityNotFound
}

func newTestProcessor(t *testing.T, health *fakeHealth, writer *fakeWriter) (*BufferProcessor, *buffer.Store) {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return NewBufferProcessor(store, health, writer, nil, ProcessorConfig{MaxRetries: 2}), store
}

func sampleActivity() *domain.Activity {
	a := domain.ExampleActivities()[0]
	return &a
}

func TestBufferOperationRunsImmediatelyWhenOnline(t *testing.T) {
	writer := &fakeWriter{}
	bp, _ := newTestProcessor(t, &fakeHealth{online: true}, writer)
	bridge := NewBufferBridge(bp)

	if err := bridge.BufferActivity(context.Background(), usecase.OperationCreate, sampleActivity()); err != nil {
		t.Fatalf("BufferActivity() error = %v", err)
	}
	if len(writer.upserts) != 1 || bp.Size() != 0 {
		t.Fatalf("expected an immediate write, upserts=%d size=%d", len(writer.upserts), bp.Size())
	}
}

func TestBufferOperationQueuesWhenOffline(t *testing.T) {
	writer := &fakeWriter{}
	health := &fakeHealth{}
	bp, store := newTestProcessor(t, health, writer)
	bridge := NewBufferBridge(bp)
	ctx := context.Background()

	activity := sampleActivity()
	_ = bridge.BufferActivity(ctx, usecase.OperationCreate, activity)
	activity.Completed = true
	_ = bridge.BufferActivity(ctx, usecase.OperationUpdate, activity)
	_ = bridge.BufferActivity(ctx, usecase.OperationDelete, activity)

	if len(writer.calls) != 0 || bp.Size() != 3 {
		t.Fatalf("expected 3 queued items and no writes, calls=%v size=%d", writer.calls, bp.Size())
	}
	items, _ := store.Batch(10)
	if items[2].Data != nil {
		t.Fatal("delete items carry no payload")
	}
	var queued domain.Activity
	if err := json.Unmarshal(items[1].Data, &queued); err != nil || !queued.Completed {
		t.Fatalf("unexpected update payload %s", items[1].Data)
	}

	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("Drain() while offline error = %v", err)
	}
	if bp.Size() != 3 {
		t.Fatal("offline drain must not touch the queue")
	}

	health.online = true
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	want := []string{"upsert:1", "upsert:1", "delete:1"}
	if len(writer.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", writer.calls, want)
	}
	for i := range want {
		if writer.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", writer.calls, want)
		}
	}
	if bp.Size() != 0 {
		t.Fatalf("expected empty queue, got %d", bp.Size())
	}
}

func TestBufferOperationQueuesBehindPendingItems(t *testing.T) {
	writer := &fakeWriter{}
	health := &fakeHealth{}
	bp, _ := newTestProcessor(t, health, writer)
	ctx := context.Background()

	_ = bp.BufferOperation(ctx, buffer.Item{ActivityID: "1", Operation: buffer.OperationDelete})
	health.online = true
	_ = bp.BufferOperation(ctx, buffer.Item{ActivityID: "2", Operation: buffer.OperationDelete})

	if len(writer.calls) != 0 || bp.Size() != 2 {
		t.Fatalf("expected the second write to queue behind the first, calls=%v", writer.calls)
	}
}

func TestDrainStopsAtFailureAndDropsAfterMaxRetries(t *testing.T) {
	writer := &fakeWriter{}
	health := &fakeHealth{}
	bp, _ := newTestProcessor(t, health, writer)
	ctx := context.Background()

	_ = bp.BufferOperation(ctx, buffer.Item{ActivityID: "1", Operation: buffer.OperationDelete})
	_ = bp.BufferOperation(ctx, buffer.Item{ActivityID: "2", Operation: buffer.OperationDelete})
	health.online = true

	writer.failures = 1
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(writer.calls) != 1 || bp.Size() != 2 {
		t.Fatalf("drain must stop at the failing item, calls=%v size=%d", writer.calls, bp.Size())
	}

	writer.failures = 1
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(writer.deletes) != 1 || writer.deletes[0] != "2" || bp.Size() != 0 {
		t.Fatalf("expected item 1 dropped and item 2 replayed, deletes=%v size=%d", writer.deletes, bp.Size())
	}
}

func TestBufferBridgeRejectsMissingID(t *testing.T) {
	bp, _ := newTestProcessor(t, &fakeHealth{online: true}, &fakeWriter{})
	err := NewBufferBridge(bp).BufferActivity(context.Background(), usecase.OperationUpdate, &domain.Activity{})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID, got %v", err)
	}
}
