package trigger

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Option is one entry of the options list. Label is what the list shows,
// InsertText is what a commit splices into the text. Detail is optional
// secondary text for the list.
type Option struct {
	ID         string
	Label      string
	InsertText string
	Detail     string
}

// Text returns the text spliced in on commit, falling back to the label.
func (o Option) Text() string {
	if o.InsertText != "" {
		return o.InsertText
	}
	return o.Label
}

// Filter returns the candidates matching query, ordered for display and
// capped at cfg.MaxOptions. An empty query returns the candidates in their
// original order. IDs are unique within the result; the first candidate with
// a given ID wins.
func Filter(candidates []Option, query string, cfg Config) []Option {
	candidates = uniqueOptions(candidates)

	var matched []Option
	switch {
	case query == "":
		matched = candidates
	case cfg.matchMode == MatchFuzzy:
		matched = fuzzyFilter(candidates, query, cfg)
	default:
		matched = substringFilter(candidates, query, cfg)
	}

	return limitOptions(matched, cfg.maxOptions)
}

type substringMatch struct {
	option   Option
	prefix   bool
	labelLen int
}

// substringFilter keeps labels containing query and ranks prefix matches
// before interior ones, then shorter labels first. sort.SliceStable keeps
// candidate order for everything else.
func substringFilter(candidates []Option, query string, cfg Config) []Option {
	if !cfg.caseSensitive {
		query = strings.ToLower(query)
	}

	var matches []substringMatch
	for _, c := range candidates {
		label := c.Label
		if !cfg.caseSensitive {
			label = strings.ToLower(label)
		}
		idx := strings.Index(label, query)
		if idx < 0 {
			continue
		}
		matches = append(matches, substringMatch{
			option:   c,
			prefix:   idx == 0,
			labelLen: utf8.RuneCountInString(c.Label),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].labelLen < matches[j].labelLen
	})

	return lo.Map(matches, func(m substringMatch, _ int) Option {
		return m.option
	})
}

// labelSource adapts a candidate slice to fuzzy.Source.
type labelSource struct {
	options       []Option
	caseSensitive bool
}

func (s labelSource) String(i int) string {
	if s.caseSensitive {
		return s.options[i].Label
	}
	return strings.ToLower(s.options[i].Label)
}

func (s labelSource) Len() int {
	return len(s.options)
}

func fuzzyFilter(candidates []Option, query string, cfg Config) []Option {
	if !cfg.caseSensitive {
		query = strings.ToLower(query)
	}

	matches := fuzzy.FindFrom(query, labelSource{options: candidates, caseSensitive: cfg.caseSensitive})
	return lo.Map(matches, func(m fuzzy.Match, _ int) Option {
		return candidates[m.Index]
	})
}

func uniqueOptions(options []Option) []Option {
	return lo.UniqBy(options, func(o Option) string {
		return o.ID
	})
}

func limitOptions(options []Option, limit int) []Option {
	if limit > 0 && len(options) > limit {
		options = options[:limit]
	}
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
