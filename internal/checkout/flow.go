package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/medstore/internal/domain/cart"
	"github.com/example/medstore/internal/i18n"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrSubmissionInProgress = errors.New("a checkout submission is already in progress")

const (
	DefaultSubject = "New Order Notification"
	tracerName     = "github.com/example/medstore/internal/checkout"
)

var (
	attrOrderRef  = attribute.Key("medstore.order.ref")
	attrLineCount = attribute.Key("medstore.order.lines")
	attrOutcome   = attribute.Key("medstore.checkout.outcome")
)

// Notifier delivers an order notification over the network boundary
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, s Submission) error

func (f NotifierFunc) Notify(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// RemoteError wraps a notifier failure; cart and contact are left untouched
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string {
	return "order notification failed: " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Status is the observable checkout state for the presentation layer
type Status struct {
	State        State   `json:"state"`
	LastOutcome  Outcome `json:"last_outcome,omitempty"`
	LastError    string  `json:"last_error,omitempty"`
	LastOrderRef string  `json:"last_order_ref,omitempty"`
	Contact      Contact `json:"contact"`
}

// Options configures a Flow
type Options struct {
	Recipient string
	Subject   string
	// Language used for product names in the notification
	Language i18n.Language
	// Timeout bounds a single notifier call. Zero means no bound.
	Timeout time.Duration
}

// Flow is the checkout state machine:
// Idle -> Submitting -> {Success -> Idle(cleared), Failed -> Idle(unchanged)}
//
// Fields are guarded by the Locker passed to Submit, which must also guard
// the cart. Outside Submit the owner is expected to hold that lock.
type Flow struct {
	notifier Notifier
	products ProductLookup
	opts     Options
	now      func() time.Time

	state     State
	contact   Contact
	outcome   Outcome
	lastErr   error
	lastOrder string
}

func NewFlow(notifier Notifier, products ProductLookup, opts Options) *Flow {
	if opts.Subject == "" {
		opts.Subject = DefaultSubject
	}
	if !opts.Language.Valid() {
		opts.Language = i18n.English
	}
	return &Flow{
		notifier: notifier,
		products: products,
		opts:     opts,
		now:      time.Now,
		state:    StateIdle,
	}
}

// SetContact replaces the contact form fields. Validation happens at submit.
func (f *Flow) SetContact(c Contact) {
	f.contact = c
}

func (f *Flow) Contact() Contact {
	return f.contact
}

// Submitting reports whether a notifier call is in flight
func (f *Flow) Submitting() bool {
	return f.state == StateSubmitting
}

func (f *Flow) Status() Status {
	s := Status{
		State:        f.state,
		LastOutcome:  f.outcome,
		LastOrderRef: f.lastOrder,
		Contact:      f.contact,
	}
	if f.lastErr != nil {
		s.LastError = f.lastErr.Error()
	}
	return s
}

// Submit validates the contact, serializes the cart and sends it to the
// notifier. lock must guard both the flow and c and must not be held by the
// caller; it is released while the notifier call is awaited. A second Submit
// during that window fails with ErrSubmissionInProgress. The call itself is
// not cancelled by ctx; it runs to completion or Options.Timeout.
func (f *Flow) Submit(ctx context.Context, lock sync.Locker, c *cart.Cart) (*CustomerOrder, error) {
	lock.Lock()
	if f.state == StateSubmitting {
		lock.Unlock()
		return nil, ErrSubmissionInProgress
	}
	order, err := f.prepare(c)
	if err != nil {
		f.outcome = OutcomeFailed
		f.lastErr = err
		lock.Unlock()
		return nil, err
	}
	f.state = StateSubmitting
	lock.Unlock()

	err = f.deliver(ctx, order)

	lock.Lock()
	defer lock.Unlock()
	f.state = StateIdle
	if err != nil {
		f.outcome = OutcomeFailed
		f.lastErr = err
		return nil, err
	}

	c.Clear()
	f.contact = Contact{}
	f.outcome = OutcomeSucceeded
	f.lastErr = nil
	f.lastOrder = order.Reference
	return order, nil
}

func (f *Flow) prepare(c *cart.Cart) (*CustomerOrder, error) {
	if err := f.contact.Validate(); err != nil {
		return nil, err
	}
	return BuildOrder(c, f.products, f.contact, f.opts.Language, f.now())
}

func (f *Flow) deliver(ctx context.Context, order *CustomerOrder) error {
	ctx = context.WithoutCancel(ctx)
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "checkout.submit",
		trace.WithAttributes(
			attrOrderRef.String(order.Reference),
			attrLineCount.Int(len(order.Lines)),
		))
	defer span.End()

	submission := NewSubmission(order, f.opts.Recipient, f.opts.Subject)
	if err := f.notifier.Notify(ctx, submission); err != nil {
		log.Printf("[Checkout] Notification for order %s failed: %v", order.Reference, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "notification failed")
		span.SetAttributes(attrOutcome.String(string(OutcomeFailed)))
		return &RemoteError{Err: err}
	}

	log.Printf("[Checkout] Order %s submitted (%d lines, total %s)", order.Reference, len(order.Lines), FormatMoney(order.Total))
	span.SetAttributes(attrOutcome.String(string(OutcomeSucceeded)))
	return nil
}
