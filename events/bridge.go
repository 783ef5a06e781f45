// Package events turns the Lightning daemon's blocking wait for the next paid
// invoice into a stream that any number of subscribers can follow.
//
// A single Bridge.Run loop owns the long poll. Every result is published to
// an lnd subscribe.Server, whose handler goroutine owns the subscriber set
// and gives each subscriber its own ordered, unbounded queue. Subscribers
// coming and going never touch the poll.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/cenkalti/backoff/v4"
	"github.com/lightningnetwork/lnd/queue"
	"github.com/lightningnetwork/lnd/subscribe"
	log "github.com/sirupsen/logrus"
)

const DefaultRecentSize = 50

var (
	ErrAlreadyRunning     = errors.New("payment event bridge already running")
	ErrSubscriptionClosed = errors.New("subscription closed")
)

type Kind string

const (
	InvoicePaid Kind = "invoice_paid"
	PollFault   Kind = "poll_fault"
)

type PaymentEvent struct {
	Kind      Kind               `json:"kind"`
	Invoice   *lightning.Invoice `json:"invoice,omitempty"`
	AmountSat money.Money        `json:"amount_sat,omitempty"`
	PayIndex  uint64             `json:"pay_index,omitempty"`
	Error     string             `json:"error,omitempty"`
	Time      time.Time          `json:"time"`
}

type Option func(*Bridge)

func WithCursorStore(store CursorStore) Option {
	return func(b *Bridge) {
		b.cursors = store
	}
}

// WithRecentSize sets how many events Recent keeps.
func WithRecentSize(size int) Option {
	return func(b *Bridge) {
		b.recentSize = size
	}
}

// WithBackOff sets the policy used between failed polls.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(b *Bridge) {
		b.newBackOff = newBackOff
	}
}

type Bridge struct {
	lightning  lightning.Client
	cursors    CursorStore
	server     *subscribe.Server
	newBackOff func() backoff.BackOff
	now        func() time.Time
	recentSize int

	recentMu sync.Mutex
	recent   *queue.CircularBuffer

	running atomic.Bool
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	// Never give up, the bridge lives as long as the process.
	b.MaxElapsedTime = 0

	return b
}

// NewBridge creates a bridge and starts its subscription server. Call Run to
// start polling and Stop to release subscribers.
func NewBridge(client lightning.Client, opts ...Option) (*Bridge, error) {
	b := &Bridge{
		lightning:  client,
		cursors:    &MemoryCursor{},
		server:     subscribe.NewServer(),
		newBackOff: defaultBackOff,
		now:        time.Now,
		recentSize: DefaultRecentSize,
	}
	for _, opt := range opts {
		opt(b)
	}

	recent, err := queue.NewCircularBuffer(b.recentSize)
	if err != nil {
		return nil, fmt.Errorf("invalid recent events size %d: %w", b.recentSize, err)
	}
	b.recent = recent

	if err := b.server.Start(); err != nil {
		return nil, fmt.Errorf("failed to start subscription server: %w", err)
	}

	return b, nil
}

// Stop closes every subscription. Run must have returned already.
func (b *Bridge) Stop() error {
	return b.server.Stop()
}

// Run polls the daemon until ctx is done. There is no timeout on a single
// poll. Failures are published as PollFault events and polling resumes after
// a backoff. Only one Run may be active per bridge.
func (b *Bridge) Run(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer b.running.Store(false)

	bo := b.newBackOff()

	var cursor uint64
	for {
		var err error
		cursor, err = b.initialCursor(ctx)
		if err == nil {
			break
		}
		if err := b.fault(ctx, bo, fmt.Errorf("loading pay index: %w", err)); err != nil {
			return err
		}
	}
	bo.Reset()

	log.WithField("pay_index", cursor).Info("waiting for paid invoices")

	for {
		invoice, err := b.lightning.WaitAnyInvoice(ctx, cursor)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if err := b.fault(ctx, bo, err); err != nil {
				return err
			}

			continue
		}
		bo.Reset()

		if invoice.PayIndex != 0 && invoice.PayIndex <= cursor {
			log.WithField("pay_index", invoice.PayIndex).Warn("daemon returned an already delivered invoice")

			continue
		}
		if invoice.PayIndex > cursor {
			cursor = invoice.PayIndex
		}

		if err := b.cursors.SaveCursor(ctx, cursor); err != nil {
			log.WithError(err).WithField("pay_index", cursor).Error("failed to save pay index")
		}
		payIndexGauge.Set(float64(cursor))

		log.WithField("pay_index", cursor).WithField("label", invoice.Label).Info("invoice paid")
		b.publish(PaymentEvent{
			Kind:      InvoicePaid,
			Invoice:   invoice,
			AmountSat: invoice.AmountReceivedMsat.ToSats(),
			PayIndex:  invoice.PayIndex,
			Time:      b.now(),
		})
	}
}

// initialCursor prefers the stored cursor. Without one it starts after the
// newest paid invoice so history is not replayed.
func (b *Bridge) initialCursor(ctx context.Context) (uint64, error) {
	cursor, ok, err := b.cursors.LoadCursor(ctx)
	if err != nil {
		return 0, err
	}
	if ok {
		return cursor, nil
	}

	invoices, err := b.lightning.ListInvoices(ctx)
	if err != nil {
		return 0, err
	}
	for _, inv := range invoices {
		if inv.PayIndex > cursor {
			cursor = inv.PayIndex
		}
	}

	return cursor, nil
}

// fault reports err and sleeps for the next backoff interval. It returns an
// error only when ctx is done.
func (b *Bridge) fault(ctx context.Context, bo backoff.BackOff, err error) error {
	wait := bo.NextBackOff()
	if wait == backoff.Stop {
		bo.Reset()
		wait = bo.NextBackOff()
	}

	log.WithError(err).WithField("retry_in", wait).Warn("invoice poll failed")
	pollFaultsTotal.Inc()
	b.publish(PaymentEvent{Kind: PollFault, Error: err.Error(), Time: b.now()})

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *Bridge) publish(event PaymentEvent) {
	b.recentMu.Lock()
	b.recent.Add(event)
	b.recentMu.Unlock()

	eventsTotal.WithLabelValues(string(event.Kind)).Inc()
	if err := b.server.SendUpdate(event); err != nil {
		log.WithError(err).Debug("event not delivered, server stopped")
	}
}

// Recent returns the last published events, oldest first.
func (b *Bridge) Recent() []PaymentEvent {
	b.recentMu.Lock()
	items := b.recent.List()
	b.recentMu.Unlock()

	events := make([]PaymentEvent, 0, len(items))
	for _, item := range items {
		if ev, ok := item.(PaymentEvent); ok {
			events = append(events, ev)
		}
	}

	return events
}

// Subscription receives every event published after Subscribe returned, in
// publication order.
type Subscription struct {
	client *subscribe.Client
	once   sync.Once
}

func (b *Bridge) Subscribe() (*Subscription, error) {
	client, err := b.server.Subscribe()
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	subscribersGauge.Inc()

	return &Subscription{client: client}, nil
}

// Next blocks until the next event, ctx is done or the subscription closes.
func (s *Subscription) Next(ctx context.Context) (PaymentEvent, error) {
	select {
	case update, ok := <-s.client.Updates():
		if !ok {
			return PaymentEvent{}, ErrSubscriptionClosed
		}
		ev, ok := update.(PaymentEvent)
		if !ok {
			return PaymentEvent{}, fmt.Errorf("unexpected update %T", update)
		}

		return ev, nil
	case <-s.client.Quit():
		return PaymentEvent{}, ErrSubscriptionClosed
	case <-ctx.Done():
		return PaymentEvent{}, ctx.Err()
	}
}

// Cancel stops delivery. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.client.Cancel()
		subscribersGauge.Dec()
	})
}
