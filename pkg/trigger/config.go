package trigger

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Configuration errors. NewConfig and ParseTrigger wrap these so callers can
// match them with errors.Is.
var (
	ErrEmptyTrigger        = errors.New("trigger character is empty")
	ErrMultiCharTrigger    = errors.New("trigger must be a single character")
	ErrTriggerInQuery      = errors.New("trigger character is accepted by the query pattern")
	ErrTriggerIsTerminator = errors.New("trigger character is also a terminator")
	ErrInvalidMaxOptions   = errors.New("max options must not be negative")
	ErrNoSource            = errors.New("no candidate source configured")
)

// DefaultMaxOptions is the number of options shown when no limit is configured.
const DefaultMaxOptions = 10

// MatchMode selects how candidates are matched against the query.
type MatchMode int

const (
	// MatchSubstring keeps candidates whose label contains the query, ranking
	// prefix matches first. This is the default.
	MatchSubstring MatchMode = iota

	// MatchFuzzy keeps candidates whose label contains the query characters
	// in order, ranked by fuzzy score.
	MatchFuzzy
)

func (m MatchMode) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// RunePredicate reports whether a character is accepted.
type RunePredicate func(r rune) bool

// WordQuery accepts letters, digits, '_' and '-'. It is the default query
// pattern.
func WordQuery(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// NonSpaceQuery accepts every character except whitespace. It accepts any
// trigger too, so wrap it with Except before use.
func NonSpaceQuery(r rune) bool {
	return !unicode.IsSpace(r)
}

// Except returns p with the given characters removed from its accepted set.
func Except(p RunePredicate, excluded ...rune) RunePredicate {
	return func(r rune) bool {
		for _, x := range excluded {
			if r == x {
				return false
			}
		}
		return p(r)
	}
}

// AlnumBoundary accepts any character before the trigger that is not a
// letter or digit, so "user@domain" does not open a session. It is the
// default boundary.
func AlnumBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// SpaceBoundary only accepts whitespace before the trigger.
func SpaceBoundary(r rune) bool {
	return unicode.IsSpace(r)
}

// AnyBoundary accepts every character before the trigger.
func AnyBoundary(rune) bool {
	return true
}

// Config is the immutable configuration of one trigger. Build it with
// NewConfig.
type Config struct {
	trigger        rune
	query          RunePredicate
	boundary       RunePredicate
	terminators    map[rune]struct{}
	maxOptions     int
	caseSensitive  bool
	matchMode      MatchMode
	highlightFirst bool
}

// ConfigOption customises a Config in NewConfig.
type ConfigOption func(*Config)

// WithQueryPattern sets the predicate every query character must satisfy.
func WithQueryPattern(p RunePredicate) ConfigOption {
	return func(c *Config) {
		if p != nil {
			c.query = p
		}
	}
}

// WithBoundary sets the predicate the character immediately before the
// trigger must satisfy. The start of the text is always a valid boundary.
func WithBoundary(p RunePredicate) ConfigOption {
	return func(c *Config) {
		if p != nil {
			c.boundary = p
		}
	}
}

// WithTerminators sets the characters that end a query. Terminators
// override the query pattern.
func WithTerminators(chars string) ConfigOption {
	return func(c *Config) {
		c.terminators = make(map[rune]struct{}, len(chars))
		for _, r := range chars {
			c.terminators[r] = struct{}{}
		}
	}
}

// WithMaxOptions caps the filtered list. Zero disables the cap.
func WithMaxOptions(n int) ConfigOption {
	return func(c *Config) {
		c.maxOptions = n
	}
}

// WithCaseSensitive makes matching case sensitive.
func WithCaseSensitive(sensitive bool) ConfigOption {
	return func(c *Config) {
		c.caseSensitive = sensitive
	}
}

// WithMatchMode selects the matching strategy.
func WithMatchMode(mode MatchMode) ConfigOption {
	return func(c *Config) {
		c.matchMode = mode
	}
}

// WithHighlightFirst controls whether a freshly opened list highlights its
// first entry (true, the default) or nothing.
func WithHighlightFirst(first bool) ConfigOption {
	return func(c *Config) {
		c.highlightFirst = first
	}
}

// NewConfig validates and returns a Config for the given trigger.
func NewConfig(trigger rune, opts ...ConfigOption) (Config, error) {
	c := Config{
		trigger:        trigger,
		query:          WordQuery,
		boundary:       AlnumBoundary,
		terminators:    map[rune]struct{}{' ': {}, '\t': {}, '\n': {}},
		maxOptions:     DefaultMaxOptions,
		matchMode:      MatchSubstring,
		highlightFirst: true,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if trigger == 0 || trigger == utf8.RuneError {
		return Config{}, ErrEmptyTrigger
	}
	if c.query(trigger) {
		return Config{}, fmt.Errorf("trigger %q: %w", trigger, ErrTriggerInQuery)
	}
	if _, ok := c.terminators[trigger]; ok {
		return Config{}, fmt.Errorf("trigger %q: %w", trigger, ErrTriggerIsTerminator)
	}
	if c.maxOptions < 0 {
		return Config{}, fmt.Errorf("%d: %w", c.maxOptions, ErrInvalidMaxOptions)
	}
	if c.matchMode != MatchSubstring && c.matchMode != MatchFuzzy {
		return Config{}, fmt.Errorf("unknown match mode %s", c.matchMode)
	}

	return c, nil
}

// ParseTrigger converts a configured trigger string into a rune.
func ParseTrigger(s string) (rune, error) {
	switch utf8.RuneCountInString(s) {
	case 0:
		return 0, ErrEmptyTrigger
	case 1:
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrMultiCharTrigger)
	}
}

// Trigger returns the trigger character.
func (c Config) Trigger() rune { return c.trigger }

// MaxOptions returns the option cap, zero meaning unlimited.
func (c Config) MaxOptions() int { return c.maxOptions }

// CaseSensitive reports whether matching is case sensitive.
func (c Config) CaseSensitive() bool { return c.caseSensitive }

// MatchMode returns the matching strategy.
func (c Config) MatchMode() MatchMode { return c.matchMode }

// HighlightFirst reports whether a new list highlights its first entry.
func (c Config) HighlightFirst() bool { return c.highlightFirst }

// IsTerminator reports whether r closes a query.
func (c Config) IsTerminator(r rune) bool {
	_, ok := c.terminators[r]
	return ok
}

// inQuery reports whether r may appear inside a query.
func (c Config) inQuery(r rune) bool {
	return r != c.trigger && !c.IsTerminator(r) && c.query(r)
}
