// Package driver runs the binding pipeline over a model: load each unit,
// queue configured bindings, initialize the symbol context, rename, validate.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"xlate/internal/ast"
	"xlate/internal/binding"
	"xlate/internal/config"
	"xlate/internal/diag"
	"xlate/internal/model"
	"xlate/internal/naming"
	"xlate/internal/observ"
	"xlate/internal/source"
	"xlate/internal/symbols"
	"xlate/internal/trace"
)

// Options control a run.
type Options struct {
	Config         config.Config
	MaxDiagnostics int
	// Jobs bounds RunAll's parallelism; zero means GOMAXPROCS.
	Jobs     int
	Timings  bool
	Progress ProgressSink
}

// Result is the outcome for one unit. Context stays live so callers can
// inspect it; Close releases it.
type Result struct {
	Path    string
	Unit    *ast.Unit
	Session *symbols.Session
	Context *symbols.Context
	Renames []naming.Rename
	Bag     *diag.Bag
	Timing  observ.Report
}

// Close cleans up the unit's session.
func (r *Result) Close() {
	if r != nil && r.Session != nil && r.Session.Context() != nil {
		r.Session.Cleanup()
	}
}

// PanicError carries a fatal condition raised while processing a unit.
type PanicError struct {
	Unit  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: fatal: %v", e.Unit, e.Value)
}

// Run processes the unit at index of m. The universe is only read, so
// several Runs over the same model may proceed concurrently.
func Run(ctx context.Context, m *model.Model, index int, opts Options) (res *Result, err error) {
	path := fmt.Sprintf("unit#%d", index)
	if index >= 0 && index < len(m.Units) {
		path = m.Units[index].Path
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "driver.unit", trace.CurrentSpan(ctx)).WithExtra("unit", path)
	stage := StageLoad
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Unit: path, Value: r, Stack: debug.Stack()}
		}
		if err != nil {
			emit(opts.Progress, Event{Unit: path, Stage: stage, Status: StatusError, Err: err})
			span.End(err.Error())
			return
		}
		span.End("")
	}()

	started := time.Now()
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	timer := observ.NewTimer()
	res = &Result{Path: path, Bag: bag}

	step := func(s Stage, fn func() string) {
		stage = s
		emit(opts.Progress, Event{Unit: path, Stage: s, Status: StatusWorking})
		timer.Track(string(s), fn)
	}

	var loadErr error
	step(StageLoad, func() string {
		res.Unit, loadErr = m.Unit(index)
		if loadErr != nil {
			return "failed"
		}
		return fmt.Sprintf("%d nodes", res.Unit.Len())
	})
	if loadErr != nil {
		diag.ReportError(reporter, diag.ModelBadUnit, source.Span{}, loadErr.Error()).Emit()
		return res, fmt.Errorf("%s: %w", path, loadErr)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Session = symbols.NewSession(m.Universe, symbols.Options{
		Reporter: reporter,
		Tracer:   tracer,
		Span:     span.ID(),
	})
	step(StageQueue, func() string {
		queued := 0
		for _, name := range opts.Config.Resolve.Queue {
			id, ok := m.Universe.FindType(name)
			if !ok {
				diag.ReportWarning(reporter, diag.SymUnknownQueuedName, source.Span{},
					fmt.Sprintf("queued type %q is not in the model", name)).Emit()
				continue
			}
			res.Session.QueueForResolution(binding.TypeRef(id))
			queued++
		}
		return fmt.Sprintf("%d queued", queued)
	})

	step(StageResolve, func() string {
		res.Context = res.Session.Initialize(res.Unit)
		checkDeclarations(res.Unit, reporter)
		return fmt.Sprintf("%d symbols, %d scopes", res.Context.Table().Symbols.Len(), res.Context.Table().Scopes.Len())
	})

	if opts.Config.RenameEnabled() {
		step(StageRename, func() string {
			res.Renames = naming.Apply(res.Context, naming.New(opts.Config.NamerConfig()), reporter, tracer)
			return fmt.Sprintf("%d renamed", len(res.Renames))
		})
	}

	if opts.Config.Resolve.Validate {
		step(StageValidate, func() string {
			verr := res.Context.Table().Validate()
			if verr == nil {
				return "ok"
			}
			for _, line := range strings.Split(verr.Error(), "\n") {
				diag.ReportError(reporter, diag.SymInvariantViolation, source.Span{}, line).Emit()
			}
			return "failed"
		})
	}

	if n := reporter.Suppressed(); n > 0 {
		span.WithExtra("suppressed", fmt.Sprint(n))
	}
	res.Timing = timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(bag, path, res.Timing)
	}
	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{Unit: path, Stage: stage, Status: status, Elapsed: time.Since(started)})
	return res, nil
}

// RunAll runs every unit of m concurrently, each with its own session and
// interner. Results are in unit order. The first failure cancels the units
// not yet started.
func RunAll(ctx context.Context, m *model.Model, opts Options) ([]*Result, error) {
	if len(m.Units) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = opts.Config.Resolve.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "driver.run_all", trace.CurrentSpan(ctx)).
		WithExtra("units", fmt.Sprint(len(m.Units)))
	ctx = trace.WithSpan(ctx, span)

	for _, u := range m.Units {
		emit(opts.Progress, Event{Unit: u.Path, Stage: StageLoad, Status: StatusQueued})
	}

	results := make([]*Result, len(m.Units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(m.Units)))
	for i := range m.Units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := Run(gctx, m, i, opts)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	span.End(errString(err))
	return results, err
}

// FirstPanic extracts a PanicError from err.
func FirstPanic(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
