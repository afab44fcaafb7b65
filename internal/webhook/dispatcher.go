// Package webhook delivers rules-changed notifications to configured
// endpoints. Delivery is best-effort and asynchronous: a save never waits on
// a webhook and a dead endpoint never fails a save.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopkit/paytoggle/internal/rules"
)

const (
	// queueSize is the buffer size for the event queue.
	queueSize = 256

	// maxDeliveryTries caps retries per endpoint per event.
	maxDeliveryTries = 4

	deliveryTimeout = 10 * time.Second
)

// Dispatcher fans events out to all configured endpoints from a single
// background worker.
type Dispatcher struct {
	endpoints []Endpoint
	client    *http.Client
	queue     chan Event
	done      chan struct{}
	closed    int32 // atomic flag to prevent double-close
	log       zerolog.Logger
}

// NewDispatcher creates a dispatcher for the given endpoints.
func NewDispatcher(endpoints []Endpoint, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		endpoints: endpoints,
		client:    &http.Client{Timeout: deliveryTimeout},
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
		log:       log.With().Str("component", "webhook").Logger(),
	}
}

// NewRulesUpdatedEvent builds the event emitted after a successful save.
func NewRulesUpdatedEvent(rs rules.RuleSet, etag string, meta Metadata) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventRulesUpdated,
		Timestamp: time.Now().UTC(),
		ETag:      etag,
		Rules:     rs,
		Metadata:  meta,
	}
}

// Start begins processing events from the queue.
func (d *Dispatcher) Start() {
	go d.worker()
}

// Close gracefully shuts down the dispatcher, draining pending events.
// Safe to call multiple times.
func (d *Dispatcher) Close() error {
	if !atomic.CompareAndSwapInt32(&d.closed, 0, 1) {
		return nil // Already closed
	}
	close(d.queue)
	<-d.done
	return nil
}

// Dispatch enqueues an event without blocking. When the queue is full the
// event is dropped and logged; the persisted rule set is still the source of
// truth for any receiver that missed an event.
func (d *Dispatcher) Dispatch(evt Event) {
	if atomic.LoadInt32(&d.closed) == 1 {
		return
	}
	select {
	case d.queue <- evt:
	default:
		d.log.Warn().Str("event_id", evt.ID).Msg("webhook queue full, dropping event")
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for evt := range d.queue {
		for _, ep := range d.endpoints {
			d.deliver(evt, ep)
		}
	}
}

func (d *Dispatcher) deliver(evt Event, ep Endpoint) {
	payload, err := json.Marshal(evt)
	if err != nil {
		d.log.Error().Err(err).Str("event_id", evt.ID).Msg("marshal webhook event")
		return
	}
	signature := ComputeHMAC(payload, ep.Secret)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	attempt := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(payload))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Paytoggle-Event", evt.Type)
		req.Header.Set("X-Paytoggle-Delivery", evt.ID)
		req.Header.Set("X-Paytoggle-Signature", signature)

		resp, err := d.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return struct{}{}, nil
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// The endpoint rejected the payload; retrying won't change that.
			return struct{}{}, backoff.Permanent(fmt.Errorf("endpoint returned %d", resp.StatusCode))
		}
		return struct{}{}, fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}

	_, err = backoff.Retry(ctx, attempt,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxDeliveryTries),
	)
	if err != nil {
		d.log.Warn().Err(err).Str("url", ep.URL).Str("event_id", evt.ID).Msg("webhook delivery failed")
		return
	}
	d.log.Debug().Str("url", ep.URL).Str("event_id", evt.ID).Msg("webhook delivered")
}
