package trigger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_OpenResetsState(t *testing.T) {
	s := newSession()
	s.open("one", Descriptor{Active: true, Start: 0, Query: "a"})
	s.issue()
	s.issue()
	firstEpoch := s.epoch

	s.close()
	s.open("two", Descriptor{Active: true, Start: 3})

	assert.Equal(t, Open, s.state)
	assert.Equal(t, uint64(0), s.seq)
	assert.Greater(t, s.epoch, firstEpoch)
	assert.Equal(t, -1, s.highlighted)
}

func TestSession_CurrentToken(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})

	first := s.issue()
	second := s.issue()

	assert.False(t, s.current(s.epoch, first))
	assert.True(t, s.current(s.epoch, second))

	epoch := s.epoch
	s.close()
	assert.False(t, s.current(epoch, second))
}

func TestSession_HighlightPolicy(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})

	s.setOptions(opts("a", "b"), false)
	assert.Equal(t, -1, s.highlighted, "fresh list without highlight-first")

	s.setOptions(opts("a"), false)
	assert.Equal(t, 0, s.highlighted, "changed list resets to first")

	s.setOptions(nil, true)
	assert.Equal(t, -1, s.highlighted, "empty list has no highlight")
}

func TestSession_NavigateWraps(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})
	s.setOptions(opts("a", "b", "c"), true)

	s.highlighted = 2
	assert.True(t, s.navigate(1))
	assert.Equal(t, 0, s.highlighted)

	assert.True(t, s.navigate(-1))
	assert.Equal(t, 2, s.highlighted)
}

func TestSession_NavigateFromNone(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})
	s.setOptions(opts("a", "b", "c"), false)
	assert.Equal(t, -1, s.highlighted)

	s.navigate(1)
	assert.Equal(t, 0, s.highlighted)

	s.highlighted = -1
	s.navigate(-1)
	assert.Equal(t, 2, s.highlighted)
}

func TestSession_NavigateEmptyIsNoop(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})
	s.setOptions(nil, true)

	assert.False(t, s.navigate(1))
	assert.Equal(t, -1, s.highlighted)

	closed := newSession()
	assert.False(t, closed.navigate(1))
}

func TestSession_Fail(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})
	s.setOptions(opts("a"), true)
	s.issue()

	s.fail(errors.New("boom"))

	assert.Equal(t, Open, s.state)
	assert.False(t, s.loading)
	assert.Empty(t, s.options)
	assert.Equal(t, -1, s.highlighted)
	assert.EqualError(t, s.err, "boom")

	_, ok := s.highlightedOption()
	assert.False(t, ok)
}

func TestSession_Find(t *testing.T) {
	s := newSession()
	s.open("id", Descriptor{Active: true})
	s.setOptions(opts("a", "b"), true)

	o, ok := s.find("b")
	assert.True(t, ok)
	assert.Equal(t, "b", o.Label)

	_, ok = s.find("zzz")
	assert.False(t, ok)
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, -1, wrapIndex(0, 1, 0))
	assert.Equal(t, 1, wrapIndex(0, 1, 3))
	assert.Equal(t, 0, wrapIndex(2, 1, 3))
	assert.Equal(t, 2, wrapIndex(0, -1, 3))
	assert.Equal(t, 1, wrapIndex(0, 4, 3))
}
