package trigger

// Intent is a key press expressed as what the user means, independent of
// any key event representation.
type Intent int

const (
	IntentNone Intent = iota
	IntentDown
	IntentUp
	IntentAccept // Enter or Tab
	IntentEscape
	IntentInsert // a character typed
	IntentDelete // Backspace, Delete and word deletions
	IntentCaret  // caret movement without editing
)

func (i Intent) String() string {
	switch i {
	case IntentDown:
		return "down"
	case IntentUp:
		return "up"
	case IntentAccept:
		return "accept"
	case IntentEscape:
		return "escape"
	case IntentInsert:
		return "insert"
	case IntentDelete:
		return "delete"
	case IntentCaret:
		return "caret"
	default:
		return "none"
	}
}

// ActionKind is what the session does in response to an intent.
type ActionKind int

const (
	// ActionPass leaves the key to the host. The host applies it and then
	// re-scans.
	ActionPass ActionKind = iota
	ActionNavigate
	ActionCommit
	ActionAbort
)

// Action is the result of routing an intent.
type Action struct {
	Kind  ActionKind
	Delta int
}

// Consumed reports whether the session handles the key, so the host must not
// apply it as ordinary input.
func (a Action) Consumed() bool {
	return a.Kind != ActionPass
}

// Route maps an intent to an action given the session state. Enter and Tab
// only commit when an option is highlighted; with an empty list they reach
// the host as ordinary input.
func Route(open bool, highlighted int, in Intent) Action {
	if !open {
		return Action{Kind: ActionPass}
	}

	switch in {
	case IntentDown:
		return Action{Kind: ActionNavigate, Delta: 1}
	case IntentUp:
		return Action{Kind: ActionNavigate, Delta: -1}
	case IntentAccept:
		if highlighted >= 0 {
			return Action{Kind: ActionCommit}
		}
	case IntentEscape:
		return Action{Kind: ActionAbort}
	}

	return Action{Kind: ActionPass}
}
