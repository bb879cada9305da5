package wizard

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/cloudx-io/auctionwizard/auctionapi"
	"github.com/cloudx-io/auctionwizard/core"
)

var (
	ErrNoNextStep     = errors.New("no step after the current one")
	ErrStepOutOfRange = errors.New("step index out of range")
	ErrWrongStep      = errors.New("operation not available on the current step")
	ErrWrongSaleType  = errors.New("operation not available for this sale type")
	ErrPhaseImmediate = errors.New("date is set by the immediate toggle")
	ErrListAfterStart = errors.New("listing date is after the sale start")
	ErrEndBeforeStart = errors.New("end date is before the sale start")
	ErrNotPublishable = errors.New("listing is not publishable")
)

// Clock provides the current time.
// This interface enables dependency injection for deterministic testing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var defaultClock Clock = systemClock{}

// Session is the in-memory state of one listing wizard run. Every operation returns a new
// Session and leaves the receiver untouched.
type Session struct {
	ID         uuid.UUID
	Step       int
	Attributes core.AuctionState
	Tiered     core.TieredAuctionState

	StartImmediately bool
	ListImmediately  bool
	UntilSold        bool

	// StepsVisible is cleared once the review is confirmed.
	StepsVisible bool

	// Accounts is set after a successful publish.
	Accounts *auctionapi.AuctionManagerAccounts

	QuoteMint core.QuoteMint
	Whitelist map[string]auctionapi.WhitelistedCreator

	clock Clock
}

// Option configures a new Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithQuoteMint sets the currency prices are entered in.
func WithQuoteMint(q core.QuoteMint) Option {
	return func(s *Session) { s.QuoteMint = q }
}

// WithWhitelist sets the creators allowed on the store.
func WithWhitelist(w map[string]auctionapi.WhitelistedCreator) Option {
	return func(s *Session) { s.Whitelist = w }
}

// NewSession starts a wizard on the category step with default attributes.
func NewSession(opts ...Option) Session {
	s := Session{
		ID:               uuid.New(),
		Attributes:       core.NewAuctionState(),
		Tiered:           core.NewTieredAuctionState(),
		StartImmediately: true,
		ListImmediately:  true,
		UntilSold:        true,
		StepsVisible:     true,
		QuoteMint:        core.QuoteMint{Decimals: 9},
		clock:            defaultClock,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Clone returns a copy sharing no mutable state with s.
func (s Session) Clone() Session {
	c := s
	c.Attributes = s.Attributes.Clone()
	c.Tiered = s.Tiered.Clone()
	if s.Accounts != nil {
		a := *s.Accounts
		c.Accounts = &a
	}
	if s.Whitelist != nil {
		c.Whitelist = maps.Clone(s.Whitelist)
	}
	return c
}

func (s Session) now() time.Time {
	clock := s.clock
	if clock == nil {
		clock = defaultClock
	}
	return clock.Now().Truncate(time.Second)
}

// Steps returns the sequence of the session's category.
func (s Session) Steps() []Step {
	return Steps(s.Attributes.Category)
}

// Current returns the step the session is on.
func (s Session) Current() Step {
	step, err := StepAt(s.Attributes.Category, s.Step)
	if err != nil {
		return stepCategory
	}
	return step
}

// Confirm advances to the next step of the current sequence.
func (s Session) Confirm() (Session, error) {
	if s.Step+1 >= len(s.Steps()) {
		return s, fmt.Errorf("%w: %s is the last step", ErrNoNextStep, s.Current().ID)
	}
	next := s.Clone()
	next.Step++
	return next, nil
}

// Back returns to the previous step, stopping at the first one.
func (s Session) Back() Session {
	next := s.Clone()
	if next.Step > 0 {
		next.Step--
	}
	return next
}

// GoTo jumps to step n of the current sequence.
func (s Session) GoTo(n int) (Session, error) {
	if _, err := StepAt(s.Attributes.Category, n); err != nil {
		return s, err
	}
	next := s.Clone()
	next.Step = n
	return next, nil
}

// Compile runs the configuration compiler on the session state.
func (s Session) Compile() *core.CompiledAuction {
	return core.Compile(s.Attributes, s.Tiered, s.QuoteMint)
}

// ConfirmReview seeds unset start and list dates to now, hides the step list and advances
// to the publish step.
func (s Session) ConfirmReview() (Session, error) {
	if s.Current().ID != StepReview {
		return s, fmt.Errorf("%w: review on %s", ErrWrongStep, s.Current().ID)
	}
	next := s.Clone()
	if next.Attributes.StartSaleTS == nil {
		start := next.now()
		next.Attributes.StartSaleTS = &start
	}
	if next.Attributes.StartListTS == nil {
		list := next.now()
		next.Attributes.StartListTS = &list
	}
	next.StepsVisible = false
	return next.Confirm()
}
