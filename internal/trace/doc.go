// Package trace provides the tracing and logging layer of the translator.
//
// Enable it from the command line:
//
//	xlate resolve --trace=- --trace-level=detail model.xbm
//
// Tracer implementations:
//
//   - Nop: zero-overhead default
//   - StreamTracer: writes each event immediately (file/stderr)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// Levels gate event scopes: LevelPhase shows driver and pass boundaries,
// LevelDetail adds per-unit events, LevelDebug adds one event per resolved
// binding.
//
// Tracers travel through the pipeline on the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "symbols.initialize", 0)
//	defer span.End("")
package trace
