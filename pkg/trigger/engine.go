package trigger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// providerTimeout bounds a single provider call.
const providerTimeout = 10 * time.Second

// Event names the transition that produced a Snapshot.
type Event int

const (
	EventOpened Event = iota
	EventUpdated
	EventNavigated
	EventFailed
	EventCommitted
	EventAborted
	EventClosed
)

func (e Event) String() string {
	switch e {
	case EventOpened:
		return "opened"
	case EventUpdated:
		return "updated"
	case EventNavigated:
		return "navigated"
	case EventFailed:
		return "failed"
	case EventCommitted:
		return "committed"
	case EventAborted:
		return "aborted"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view of the session handed to the presentation
// layer after every transition.
type Snapshot struct {
	Event       Event
	IsOpen      bool
	SessionID   string
	Start       int
	Query       string
	Options     []Option
	Highlighted int
	Loading     bool

	// Err is the last provider failure of the open session.
	Err error

	// Committed is the chosen option when Event is EventCommitted.
	Committed Option
}

// Observer receives a Snapshot on every transition.
type Observer interface {
	OnChange(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

// OnChange calls f(s).
func (f ObserverFunc) OnChange(s Snapshot) {
	f(s)
}

// Engine ties the scanner, session state, filter and committer together for
// one trigger. It reacts synchronously to Sync, key and UI commands; the only
// asynchronous step is a Fetch, whose Result must be handed back through
// Deliver on the same goroutine that calls everything else. An Engine is not
// safe for concurrent use.
type Engine struct {
	cfg    Config
	src    Source
	logger *zap.Logger

	s session

	// dismissed is the trigger offset closed by Escape or a commit. It stays
	// closed until the scan leaves that trigger.
	dismissed int

	text  []rune
	caret int

	cancel    context.CancelFunc
	timeout   time.Duration
	observers []subscription
	nextObs   int
}

type subscription struct {
	id int
	o  Observer
}

// NewEngine returns an Engine for cfg. A nil logger disables logging.
func NewEngine(cfg Config, src Source, logger *zap.Logger) (*Engine, error) {
	if cfg.trigger == 0 {
		return nil, ErrEmptyTrigger
	}
	if !src.set {
		return nil, ErrNoSource
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		cfg:       cfg,
		src:       src,
		logger:    logger,
		s:         newSession(),
		dismissed: -1,
		timeout:   providerTimeout,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Subscribe registers o for every transition and returns a function that
// removes it. Observers are notified in subscription order.
func (e *Engine) Subscribe(o Observer) func() {
	id := e.nextObs
	e.nextObs++
	e.observers = append(e.observers, subscription{id: id, o: o})
	return func() {
		e.observers = lo.Reject(e.observers, func(s subscription, _ int) bool {
			return s.id == id
		})
	}
}

// Sync re-scans text at caret and applies the resulting transition. It
// returns a Fetch when a provider query has to run, nil otherwise.
func (e *Engine) Sync(text string, caret int) Fetch {
	e.text = []rune(text)
	e.caret = clamp(caret, 0, len(e.text))
	d := Scan(e.text, e.caret, e.cfg)

	if !d.Active {
		e.dismissed = -1
		if e.s.state == Open {
			e.closeSession(EventClosed, Option{})
		}
		return nil
	}

	if d.Start == e.dismissed {
		return nil
	}
	e.dismissed = -1

	if e.s.state == Open && d.Start != e.s.desc.Start {
		e.closeSession(EventClosed, Option{})
	}

	if e.s.state == Closed {
		e.s.open(uuid.NewString(), d)
		e.logger.Debug("trigger session opened",
			zap.String("session", e.s.id),
			zap.Int("start", d.Start),
			zap.String("query", d.Query),
		)
		return e.query(EventOpened)
	}

	if d.Query == e.s.desc.Query {
		return nil
	}

	e.s.requery(d)
	return e.query(EventUpdated)
}

// query refreshes the options for the current descriptor.
func (e *Engine) query(ev Event) Fetch {
	if !e.src.IsRemote() {
		e.s.setOptions(Filter(e.src.candidates, e.s.desc.Query, e.cfg), e.cfg.highlightFirst)
		e.emit(ev, Option{})
		return nil
	}

	e.cancelInFlight()
	seq := e.s.issue()
	epoch := e.s.epoch
	query := e.s.desc.Query
	provider := e.src.provider

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	e.cancel = cancel
	e.emit(ev, Option{})

	return func() Result {
		options, err := provider.Provide(ctx, query)
		return Result{Epoch: epoch, Seq: seq, Query: query, Options: options, Err: err}
	}
}

// Deliver applies a provider Result. Results from a closed session or for a
// query that has since been superseded are dropped.
func (e *Engine) Deliver(r Result) {
	if !e.s.current(r.Epoch, r.Seq) {
		e.logger.Debug("trigger discarding stale options",
			zap.Uint64("startSeq", r.Seq),
			zap.Uint64("currentSeq", e.s.seq),
			zap.String("query", r.Query),
		)
		return
	}
	e.cancelInFlight()

	if r.Err != nil {
		e.logger.Error("trigger options provider failed",
			zap.String("session", e.s.id),
			zap.String("query", r.Query),
			zap.Error(r.Err),
		)
		e.s.fail(r.Err)
		e.emit(EventFailed, Option{})
		return
	}

	e.s.setOptions(limitOptions(uniqueOptions(r.Options), e.cfg.maxOptions), e.cfg.highlightFirst)
	e.emit(EventUpdated, Option{})
}

// Navigate moves the highlight by delta, wrapping around the list. It does
// nothing while closed or when the list is empty.
func (e *Engine) Navigate(delta int) {
	if e.s.navigate(delta) {
		e.emit(EventNavigated, Option{})
	}
}

// Abort closes the open session without touching the text. The same trigger
// stays closed until the caret leaves it.
func (e *Engine) Abort() {
	if e.s.state != Open {
		return
	}
	e.dismissed = e.s.desc.Start
	e.closeSession(EventAborted, Option{})
}

// Close closes the open session, for example when the input loses focus or
// is cleared. It also forgets a dismissed trigger.
func (e *Engine) Close() {
	e.dismissed = -1
	if e.s.state == Open {
		e.closeSession(EventClosed, Option{})
	}
}

// CommitHighlighted commits the highlighted option against the text and
// caret of the last Sync. It reports false, changing nothing, when nothing
// is highlighted.
func (e *Engine) CommitHighlighted() (Splice, Option, bool) {
	opt, ok := e.s.highlightedOption()
	if !ok {
		return Splice{}, Option{}, false
	}
	return e.commit(opt)
}

// CommitID commits the listed option with the given id.
func (e *Engine) CommitID(id string) (Splice, Option, bool) {
	opt, ok := e.s.find(id)
	if !ok {
		return Splice{}, Option{}, false
	}
	return e.commit(opt)
}

func (e *Engine) commit(opt Option) (Splice, Option, bool) {
	d := Scan(e.text, e.caret, e.cfg)
	if !d.Active || d.Start != e.s.desc.Start {
		// The host changed the text without a Sync.
		e.closeSession(EventClosed, Option{})
		return Splice{}, Option{}, false
	}

	splice := Commit(e.text, e.caret, d, opt)
	e.text = []rune(splice.Text)
	e.caret = splice.Caret
	e.dismissed = d.Start
	e.closeSession(EventCommitted, opt)

	return splice, opt, true
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	return e.snapshot(EventUpdated, Option{})
}

// IsOpen reports whether a session is open.
func (e *Engine) IsOpen() bool {
	return e.s.state == Open
}

func (e *Engine) snapshot(ev Event, committed Option) Snapshot {
	options := make([]Option, len(e.s.options))
	copy(options, e.s.options)

	return Snapshot{
		Event:       ev,
		IsOpen:      e.s.state == Open,
		SessionID:   e.s.id,
		Start:       e.s.desc.Start,
		Query:       e.s.desc.Query,
		Options:     options,
		Highlighted: e.s.highlighted,
		Loading:     e.s.loading,
		Err:         e.s.err,
		Committed:   committed,
	}
}

func (e *Engine) closeSession(ev Event, committed Option) {
	e.cancelInFlight()
	id := e.s.id
	e.s.close()
	e.logger.Debug("trigger session closed",
		zap.String("session", id),
		zap.Stringer("event", ev),
	)
	e.emit(ev, committed)
}

func (e *Engine) cancelInFlight() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *Engine) emit(ev Event, committed Option) {
	if len(e.observers) == 0 {
		return
	}
	snap := e.snapshot(ev, committed)
	for _, s := range e.observers {
		s.o.OnChange(snap)
	}
}
