package symbols

import (
	"fmt"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/trace"
)

// Session holds what exists before a Context does: the binding model and the
// queue of bindings other components asked to have resolved. One Session
// serves one unit at a time; Cleanup makes it reusable.
type Session struct {
	universe *binding.Universe
	opts     Options

	queue  []binding.Ref
	queued map[binding.Ref]struct{}
	ctx    *Context
}

// NewSession creates a session over universe.
func NewSession(universe *binding.Universe, opts Options) *Session {
	if universe == nil {
		panic("symbols: nil universe")
	}
	return &Session{
		universe: universe,
		opts:     opts,
		queued:   make(map[binding.Ref]struct{}),
	}
}

// QueueForResolution asks for ref to be resolved. Without a live context the
// binding waits for the next Initialize; otherwise it is resolved now.
// Queueing the same binding twice is a no-op.
func (s *Session) QueueForResolution(ref binding.Ref) {
	if s.ctx != nil {
		s.ctx.Resolve(ref)
		return
	}
	if _, dup := s.queued[ref]; dup {
		return
	}
	s.queued[ref] = struct{}{}
	s.queue = append(s.queue, ref)
}

// Pending lists bindings waiting for Initialize, in queue order.
func (s *Session) Pending() []binding.Ref {
	return append([]binding.Ref(nil), s.queue...)
}

// Context returns the live context, nil between Cleanup and Initialize.
func (s *Session) Context() *Context { return s.ctx }

// Initialize creates the context for unit, drains the queue, then builds
// the scope table for the whole unit. Calling it twice without Cleanup
// panics.
func (s *Session) Initialize(unit *ast.Unit) *Context {
	if s.ctx != nil {
		panic(fmt.Errorf("symbols: session already initialized for %s", s.ctx.unit.Path))
	}
	if unit == nil {
		panic("symbols: nil unit")
	}
	span := trace.Begin(s.opts.Tracer, trace.ScopePass, "symbols.initialize", s.opts.Span)
	opts := s.opts
	if id := span.ID(); id != 0 {
		opts.Span = id
	}
	ctx := newContext(s.universe, unit, opts)
	s.ctx = ctx

	queue := s.queue
	s.queue, s.queued = nil, make(map[binding.Ref]struct{})
	for _, ref := range queue {
		ctx.Resolve(ref)
	}

	ctx.scopes = BuildScopes(ctx.table, ctx, unit, unit.Root(), ctx.table.Global, nil)

	span.WithExtra("unit", unit.Path).
		WithExtra("queued", fmt.Sprint(len(queue))).
		WithExtra("symbols", fmt.Sprint(ctx.table.Symbols.Len())).
		WithExtra("scopes", fmt.Sprint(ctx.table.Scopes.Len())).
		End("")
	return ctx
}

// Cleanup discards the live context. Calling it without a live context
// panics.
func (s *Session) Cleanup() {
	if s.ctx == nil {
		panic("symbols: cleanup without initialize")
	}
	s.ctx.closed = true
	s.ctx = nil
}
