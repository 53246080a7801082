// Package emitter pushes total_passed increments to the external
// aggregator over HTTP, off the frame thread, per §4.7/§5: a best-effort,
// bounded-deadline POST that never rolls back the counter on failure. The
// frame loop only waits in Push, and only while the bounded queue is full.
package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const postDeadline = 2 * time.Second

// payload mirrors the outbound counter wire shape from spec §6.
type payload struct {
	Role            string `json:"role"`
	TotalCarsPassed uint64 `json:"total_cars_passed"`
}

// Emitter drains a bounded, lossless queue of total_passed values on its
// own goroutine and POSTs each to the aggregator, grounded on the
// teacher's messageRunner(doneChan, pubChan, ...) shape.
type Emitter struct {
	client     *http.Client
	url        string
	role       string
	instanceID string
	logger     *zap.Logger

	queue chan uint64
	done  chan struct{}
}

// New creates an Emitter posting to url with the given role tag. queueSize
// bounds the backlog the goroutine may accumulate if the aggregator is
// briefly unreachable; Push blocks once it's full rather than dropping a
// value, since loss here would violate monotonicity visibility (§5).
func New(url, role string, queueSize int, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		client: &http.Client{Timeout: postDeadline},
		url:    url,
		role:   role,
		logger: logger,
		queue:  make(chan uint64, queueSize),
		done:   make(chan struct{}),
	}
}

// SetInstanceID tags every outbound POST with an X-Instance-Id header,
// letting the aggregator's logs correlate an emit with the tracker process
// that sent it. Optional; unset by default.
func (e *Emitter) SetInstanceID(id string) {
	e.instanceID = id
}

// Push enqueues a new total_passed value for delivery. Call this only from
// the frame loop, only on an actual increment.
func (e *Emitter) Push(total uint64) {
	e.queue <- total
}

// Run drains the queue until Stop is called, then drains whatever remains
// with a bounded timeout before returning (§5 "Cancellation").
func (e *Emitter) Run() {
	for {
		select {
		case total := <-e.queue:
			e.post(total)
		case <-e.done:
			e.drain()
			return
		}
	}
}

func (e *Emitter) drain() {
	deadline := time.After(postDeadline)
	for {
		select {
		case total := <-e.queue:
			e.post(total)
		case <-deadline:
			return
		default:
			return
		}
	}
}

func (e *Emitter) post(total uint64) {
	body, err := json.Marshal(payload{Role: e.role, TotalCarsPassed: total})
	if err != nil {
		e.logger.Error("failed to encode emitter payload", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), postDeadline)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		e.logger.Error("failed to build emitter request", zap.Error(errors.Wrap(err, "emitter")))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if e.instanceID != "" {
		req.Header.Set("X-Instance-Id", e.instanceID)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("emit failed, dropping", zap.Error(err), zap.Uint64("total_passed", total))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("aggregator rejected emit, dropping",
			zap.Int("status", resp.StatusCode), zap.Uint64("total_passed", total))
	}
}

// Stop signals Run to drain and return. Safe to call once.
func (e *Emitter) Stop() {
	close(e.done)
}
