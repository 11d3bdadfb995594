package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Publisher delivers one audit entry to an external consumer.
type Publisher interface {
	PublishAudit(ctx context.Context, entry domain.AuditLogEntry) error
}

// Dispatcher fans recorded audit entries out to a Publisher through a fixed
// set of workers. Entries are sharded by performer, so each performer's
// entries are published in the order they were recorded.
type Dispatcher struct {
	workers   []chan domain.AuditLogEntry
	publisher Publisher
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher Publisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.AuditLogEntry, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditLogEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Enqueue hands an entry to the worker responsible for its performer. It
// never blocks: when that worker's buffer is full the entry is dropped.
func (d *Dispatcher) Enqueue(entry domain.AuditLogEntry) {
	idx := d.shardIndex(entry.PerformedBy)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditPublishTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("action", string(entry.Action)).
			Str("performed_by", entry.PerformedBy).
			Int("worker_id", idx).
			Msg("audit fan-out queue full, entry dropped")
	}
}

// shardIndex maps a performer id deterministically to a worker index.
func (d *Dispatcher) shardIndex(performedBy string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(performedBy))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditLogEntry) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		if ctx.Err() != nil {
			d.discard(id, ch)
			return
		}
		select {
		case <-ctx.Done():
			d.discard(id, ch)
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.publisher.PublishAudit(ctx, entry); err != nil {
				metrics.AuditPublishTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("audit_id", entry.ID).
					Str("action", string(entry.Action)).
					Int("worker_id", id).
					Msg("audit publish failed")
				continue
			}
			metrics.AuditPublishTotal.WithLabelValues("published").Inc()
		}
	}
}

// discard empties a stopped worker's buffer, counting each entry as dropped.
// The entries are already stored in Mongo; only their fan-out is lost.
func (d *Dispatcher) discard(id int, ch <-chan domain.AuditLogEntry) {
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	dropped := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				d.logDiscarded(id, dropped)
				return
			}
			depth.Dec()
			metrics.AuditPublishTotal.WithLabelValues("dropped").Inc()
			dropped++
		default:
			d.logDiscarded(id, dropped)
			return
		}
	}
}

func (d *Dispatcher) logDiscarded(id, dropped int) {
	if dropped == 0 {
		return
	}
	d.log.Warn().Int("worker_id", id).Int("dropped", dropped).Msg("audit fan-out stopped with entries still queued")
}
