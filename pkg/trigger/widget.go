package trigger

// Host is the editable surface a Widget drives. Offsets are in runes.
type Host interface {
	Text() string
	Caret() int
	SetText(text string)
	SetCaret(offset int)
}

// Widget binds an Engine to a Host. It reads text and caret from the host on
// every input event and writes commits back to it. Hosts with value
// semantics, such as Bubble Tea models, use the Engine directly instead.
type Widget struct {
	host   Host
	engine *Engine
}

// NewWidget returns a Widget driving host with e.
func NewWidget(host Host, e *Engine) *Widget {
	return &Widget{host: host, engine: e}
}

// Engine returns the underlying engine.
func (w *Widget) Engine() *Engine {
	return w.engine
}

// HandleInput must be called after every text or caret change on the host.
func (w *Widget) HandleInput() Fetch {
	return w.engine.Sync(w.host.Text(), w.host.Caret())
}

// HandleKey routes a key intent. When handled is false the host applies the
// key itself and then calls HandleInput.
func (w *Widget) HandleKey(in Intent) (handled bool, f Fetch) {
	snap := w.engine.Snapshot()
	action := Route(snap.IsOpen, snap.Highlighted, in)

	switch action.Kind {
	case ActionNavigate:
		w.engine.Navigate(action.Delta)
	case ActionCommit:
		if splice, _, ok := w.engine.CommitHighlighted(); ok {
			w.apply(splice)
			f = w.HandleInput()
		}
	case ActionAbort:
		w.engine.Abort()
	default:
		return false, nil
	}

	return true, f
}

// Select commits the listed option with the given id. It reports false when
// no open session lists that id. The returned Fetch, if any, queries a
// session opened by the inserted text.
func (w *Widget) Select(id string) (bool, Fetch) {
	splice, _, ok := w.engine.CommitID(id)
	if !ok {
		return false, nil
	}
	w.apply(splice)
	return true, w.HandleInput()
}

// Navigate moves the highlight by delta.
func (w *Widget) Navigate(delta int) {
	w.engine.Navigate(delta)
}

// Abort closes the session and leaves the text untouched.
func (w *Widget) Abort() {
	w.engine.Abort()
}

// Blur closes the session when the host loses focus.
func (w *Widget) Blur() {
	w.engine.Close()
}

// Deliver hands a provider Result back to the engine.
func (w *Widget) Deliver(r Result) {
	w.engine.Deliver(r)
}

func (w *Widget) apply(s Splice) {
	w.host.SetText(s.Text)
	w.host.SetCaret(s.Caret)
}
