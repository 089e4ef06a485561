package roles

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mwapio/console/pkg/apiclient"
	"github.com/mwapio/console/pkg/observability"
)

// rolesPath is the backend route serving the role summary
const rolesPath = "/users/me/roles"

// fetchKey is the single-flight key; there is only ever one summary
// per session, so one key suffices.
const fetchKey = "roles"

// ErrFetchDiscarded is returned to waiters whose fetch was cancelled by
// a session change before its result could be applied.
var ErrFetchDiscarded = errors.New("role fetch discarded: session changed")

// State is the resolver lifecycle state
type State int

const (
	StateIdle State = iota
	StateFetching
	StateReady
	StateFailed
)

func (s State) String() string {
	return []string{"idle", "fetching", "ready", "failed"}[s]
}

// Resolver produces exactly one RoleSummary per authenticated session
// segment and exposes the readiness signal gating entity fetches.
type Resolver struct {
	client  *apiclient.Client
	logger  *observability.Logger
	metrics *observability.Metrics

	group singleflight.Group

	mu       sync.Mutex
	state    State
	summary  *RoleSummary
	lastErr  error
	gen      uint64
	fetchCtx context.Context
	cancel   context.CancelFunc
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithLogger sets the structured logger
func WithLogger(logger *observability.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *observability.Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

// NewResolver creates a resolver in the Idle state
func NewResolver(client *apiclient.Client, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client: client,
		logger: observability.NewLogger(observability.InfoLevel, nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the role summary, fetching it when the resolver is
// Idle. Concurrent callers during a fetch share one network call. A
// Failed resolver keeps returning its degraded summary and recorded
// error until Refresh or Reset.
func (r *Resolver) Resolve(ctx context.Context) (*RoleSummary, error) {
	r.mu.Lock()
	switch r.state {
	case StateReady:
		summary := r.summary
		r.mu.Unlock()
		return summary, nil
	case StateFailed:
		summary, err := r.summary, r.lastErr
		r.mu.Unlock()
		return summary, err
	case StateIdle:
		fctx, cancel := context.WithCancel(context.Background())
		r.state = StateFetching
		r.fetchCtx = fctx
		r.cancel = cancel
	}
	gen := r.gen
	fctx := r.fetchCtx
	r.mu.Unlock()

	ch := r.group.DoChan(fetchKey, func() (interface{}, error) {
		return nil, r.fetch(fctx, gen)
	})

	select {
	case <-ctx.Done():
		// The shared fetch keeps running for other waiters.
		return nil, ctx.Err()
	case res := <-ch:
		if errors.Is(res.Err, ErrFetchDiscarded) {
			return nil, res.Err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.gen != gen {
			return nil, ErrFetchDiscarded
		}
		return r.summary, r.lastErr
	}
}

// fetch performs the network call and applies the outcome, unless the
// session changed underneath it.
func (r *Resolver) fetch(ctx context.Context, gen uint64) error {
	var summary RoleSummary
	err := r.client.Get(ctx, rolesPath, nil, &summary)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen != gen || r.state != StateFetching {
		// Session changed mid-flight; the resolution is discarded.
		r.metrics.RecordRoleFetch("cancelled")
		r.logger.Debug("discarding stale role fetch result")
		return ErrFetchDiscarded
	}
	r.cancel = nil

	if err != nil {
		// Degrade to least privilege rather than blocking the app.
		r.state = StateFailed
		r.summary = &RoleSummary{ProjectRoles: []ProjectRole{}}
		r.lastErr = err
		r.metrics.RecordRoleFetch("error")
		r.logger.WithError(err).Warn("role fetch failed, degrading to least-privilege view")
		return nil
	}

	r.state = StateReady
	r.summary = &summary
	r.lastErr = nil
	r.metrics.RecordRoleFetch("success")
	r.logger.WithField("user_id", summary.UserID).Debug("role summary resolved")
	return nil
}

// Ready reports whether a role summary has been successfully obtained.
// Entity fetches are gated on this flag.
func (r *Resolver) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == StateReady
}

// State returns the current lifecycle state
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Summary returns the current summary, or nil before the first
// successful resolution. In the Failed state it returns the degraded
// all-false summary.
func (r *Resolver) Summary() *RoleSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// Err returns the recorded fetch error, if any
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Reset discards all resolved state and cancels any in-flight fetch.
// It runs synchronously so the session store can guarantee no stale
// summary survives a logout into the next login.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	// Drop the in-flight single-flight call so the next Resolve starts
	// a fresh fetch instead of joining the doomed one.
	r.group.Forget(fetchKey)
	r.state = StateIdle
	r.summary = nil
	r.lastErr = nil
}

// Refresh drops a Ready or Failed outcome and fetches again. This is
// the manual re-trigger path; a Failed resolver never retries on its
// own.
func (r *Resolver) Refresh(ctx context.Context) (*RoleSummary, error) {
	r.mu.Lock()
	if r.state == StateReady || r.state == StateFailed {
		r.state = StateIdle
		r.summary = nil
		r.lastErr = nil
	}
	r.mu.Unlock()

	return r.Resolve(ctx)
}
