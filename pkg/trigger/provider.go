package trigger

import "context"

// Provider supplies options for a query, typically from a remote or
// persistent source. Provide runs off the input loop and must honour ctx,
// which is cancelled once the query is superseded or the session closes.
type Provider interface {
	Provide(ctx context.Context, query string) ([]Option, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, query string) ([]Option, error)

// Provide calls f(ctx, query).
func (f ProviderFunc) Provide(ctx context.Context, query string) ([]Option, error) {
	return f(ctx, query)
}

// Source is where an Engine gets its candidates from: a static list filtered
// locally, or a Provider queried asynchronously.
type Source struct {
	candidates []Option
	provider   Provider
	set        bool
}

// Static returns a Source filtering a fixed candidate list in place.
func Static(candidates []Option) Source {
	c := make([]Option, len(candidates))
	copy(c, candidates)
	return Source{candidates: c, set: true}
}

// Remote returns a Source that asks p for every query.
func Remote(p Provider) Source {
	return Source{provider: p, set: p != nil}
}

// IsRemote reports whether the source is asynchronous.
func (s Source) IsRemote() bool {
	return s.provider != nil
}

// Result is the outcome of a Fetch. It carries the session epoch and query
// token it was issued under so the Engine can drop stale results.
type Result struct {
	Epoch   uint64
	Seq     uint64
	Query   string
	Options []Option
	Err     error
}

// Fetch performs one provider call. Hosts run it off their input loop and
// hand the Result back through Engine.Deliver on the loop. A nil Fetch means
// there is nothing to run.
type Fetch func() Result
