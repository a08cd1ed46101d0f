package trigger

// State is the lifecycle state of a session.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// session is the single mutable state of an Engine. Only the transition
// methods below change it.
type session struct {
	state       State
	id          string
	desc        Descriptor
	options     []Option
	highlighted int

	// populated is false until the first options list of the session lands,
	// which decides between the highlight-first policy and the reset rule.
	populated bool
	loading   bool
	err       error

	// seq is the token of the most recently issued query. epoch changes on
	// every open and close so results from an earlier session never match.
	seq   uint64
	epoch uint64
}

func newSession() session {
	return session{highlighted: -1}
}

// open starts a fresh session for d.
func (s *session) open(id string, d Descriptor) {
	s.epoch++
	s.state = Open
	s.id = id
	s.desc = d
	s.options = nil
	s.highlighted = -1
	s.populated = false
	s.loading = false
	s.err = nil
	s.seq = 0
}

// requery records a changed descriptor within the same session.
func (s *session) requery(d Descriptor) {
	s.desc = d
}

// close destroys the session and invalidates any in-flight query.
func (s *session) close() {
	if s.state == Closed {
		return
	}
	s.epoch++
	s.state = Closed
	s.id = ""
	s.desc = Descriptor{}
	s.options = nil
	s.highlighted = -1
	s.populated = false
	s.loading = false
	s.err = nil
	s.seq = 0
}

// issue returns the token for a new query and marks the list as loading.
// The previous list stays visible but loses its highlight, so Accept cannot
// commit an option of a superseded query.
func (s *session) issue() uint64 {
	s.seq++
	s.loading = true
	s.highlighted = -1
	return s.seq
}

// current reports whether a result for (epoch, seq) still belongs to the
// open session and is the latest issued query.
func (s *session) current(epoch, seq uint64) bool {
	return s.state == Open && s.epoch == epoch && s.seq == seq
}

// setOptions replaces the list and re-derives the highlight.
func (s *session) setOptions(options []Option, highlightFirst bool) {
	s.loading = false
	s.err = nil
	s.options = options

	switch {
	case len(options) == 0:
		s.highlighted = -1
	case !s.populated && !highlightFirst:
		s.highlighted = -1
	default:
		s.highlighted = 0
	}
	s.populated = true
}

// fail records a provider failure. The session stays open with an empty
// list so Enter and Tab fall through to the host.
func (s *session) fail(err error) {
	s.loading = false
	s.err = err
	s.options = nil
	s.highlighted = -1
	s.populated = true
}

// navigate moves the highlight, wrapping in both directions. It is a no-op
// on an empty list.
func (s *session) navigate(delta int) bool {
	if s.state != Open || len(s.options) == 0 || delta == 0 {
		return false
	}
	s.highlighted = wrapIndex(s.highlighted, delta, len(s.options))
	return true
}

// highlightedOption returns the highlighted option, if any.
func (s *session) highlightedOption() (Option, bool) {
	if s.state != Open || s.highlighted < 0 || s.highlighted >= len(s.options) {
		return Option{}, false
	}
	return s.options[s.highlighted], true
}

// find returns the listed option with the given id.
func (s *session) find(id string) (Option, bool) {
	if s.state != Open {
		return Option{}, false
	}
	for _, o := range s.options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
