package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AdminAuditLog
	fail    bool
	gate    chan struct{}
}

func (r *memAuditRepo) Create(ctx context.Context, entry *entity.AdminAuditLog) error {
	if r.gate != nil {
		<-r.gate
	}
	if r.fail {
		return errors.New("insert failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminAuditLog, error) {
	return nil, nil
}

func (r *memAuditRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.AdminAuditLog, error) {
	return nil, nil
}

func (r *memAuditRepo) written() []*entity.AdminAuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.AdminAuditLog(nil), r.entries...)
}

func TestDispatcher_WritesQueuedEventsOnClose(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewDispatcher(repo, zap.NewNop(), 8)
	admin := uuid.New()
	ip := "192.0.2.1"

	d.Dispatch(Event{AdminID: admin, Action: "user.status_changed", Details: map[string]any{"status": "suspended"}, IP: &ip})
	d.Dispatch(Event{AdminID: admin, Action: "user.deleted"})

	require.NoError(t, d.Close(context.Background()))

	entries := repo.written()
	require.Len(t, entries, 2)
	assert.Equal(t, "user.status_changed", entries[0].Action)
	assert.Equal(t, admin, entries[0].AdminID)
	assert.Equal(t, "suspended", entries[0].Details["status"])
	assert.Equal(t, &ip, entries[0].IP)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
	assert.Equal(t, "user.deleted", entries[1].Action)
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewDispatcher(repo, zap.NewNop(), 1)
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })
	assert.NoError(t, d.Close(context.Background()))
	assert.Empty(t, repo.written())
}

func TestDispatcher_FullQueueDoesNotBlock(t *testing.T) {
	repo := &memAuditRepo{gate: make(chan struct{})}
	d := NewDispatcher(repo, zap.NewNop(), 1)

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Dispatch(Event{Action: "burst"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	close(repo.gate)
	require.NoError(t, d.Close(context.Background()))
	assert.LessOrEqual(t, len(repo.written()), 2)
}

func TestDispatcher_WriteFailureIsSwallowed(t *testing.T) {
	repo := &memAuditRepo{fail: true}
	d := NewDispatcher(repo, zap.NewNop(), 4)

	d.Dispatch(Event{Action: "user.deleted"})

	require.NoError(t, d.Close(context.Background()))
	assert.Empty(t, repo.written())
}

func TestDispatcher_CloseHonoursContext(t *testing.T) {
	repo := &memAuditRepo{gate: make(chan struct{})}
	d := NewDispatcher(repo, zap.NewNop(), 4)
	d.Dispatch(Event{Action: "stuck"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
	close(repo.gate)
}
