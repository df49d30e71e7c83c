package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/api/metrics"
	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes sign-in events to a fixed set of workers using consistent
// hashing on the normalized username, so events of one account are persisted
// in the order they happened.
type Dispatcher struct {
	workers []chan domain.SignInEvent
	auditor ports.SignInAuditor
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.SignInRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, auditor ports.SignInAuditor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.SignInEvent, numWorkers),
		auditor: auditor,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SignInEvent, channelBuffer)
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
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its username. It never
// blocks: when that worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(event domain.SignInEvent) {
	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("username", event.Username).
			Int("worker_id", idx).
			Msg("audit queue full, sign-in event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(domain.NormalizeName(username)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SignInEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.auditor.Record(ctx, event)
			metrics.AuditProcessingDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.AuditEventsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("username", event.Username).
					Int("worker_id", id).
					Msg("sign-in event processing failed")
				continue
			}
			metrics.AuditEventsProcessedTotal.WithLabelValues(string(event.Outcome)).Inc()
		}
	}
}
