package audit

import (
	"context"
	"sync"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultQueueSize = 100

// Event is one administrative action to append to the audit trail.
type Event struct {
	AdminID uuid.UUID
	Action  string
	Details map[string]any
	IP      *string
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

// Dispatcher writes events from a bounded queue on a single worker. A full
// queue drops the event; Close drains what is already queued.
type Dispatcher struct {
	repo  repository.AuditLogRepository
	log   *zap.Logger
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(repo repository.AuditLogRepository, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = defaultQueueSize
	}

	d := &Dispatcher{
		repo:  repo,
		log:   log.With(zap.String("component", "audit")),
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		d.write(ev)
	}
}

func (d *Dispatcher) write(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := &entity.AdminAuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AdminID: ev.AdminID,
		Action:  ev.Action,
		Details: ev.Details,
		IP:      ev.IP,
	}

	if err := d.repo.Create(ctx, entry); err != nil {
		d.log.Error("Failed to write audit event",
			zap.Error(err),
			zap.String("action", ev.Action),
			zap.String("admin_id", ev.AdminID.String()),
		)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("Audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until queued ones are written or
// ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
