package stylecheck

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/yacobolo/stylecheck/internal/csslint"
	core "github.com/yacobolo/stylecheck/internal/stylecheck"
)

var (
	configured atomic.Bool
	warnOnce   sync.Once
)

// WarnIfUnconfigured writes a warning to w, once per process, when Configure
// has not been called yet. Call it from TestMain before the tests run.
func WarnIfUnconfigured(w io.Writer) {
	if configured.Load() {
		return
	}
	warnOnce.Do(func() {
		fmt.Fprintln(w, "stylecheck: not configured, generated styles will not be linted. Call stylecheck.Configure in TestMain.")
	})
}

// Suite lints the styles captured by the tests of one package.
// One window is live at a time, so tests that render styles must not run in
// parallel.
type Suite struct {
	cfg    Config
	runner *core.Runner
	log    *zap.Logger

	mu     sync.Mutex
	active *Window
}

// Configure creates the suite. The configuration is fixed from here on.
func Configure(cfg Config) *Suite {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Linter == nil {
		cfg.Linter = csslint.New(cfg.Logger, nil)
	}

	runner := core.NewRunner(cfg.Linter, cfg.Resolver, core.RunnerConfig{
		StripIndent: cfg.StripIndent,
		Syntax:      cfg.Syntax,
		Formatter:   cfg.Formatter,
		Format: core.FormatOptions{
			Collapse:  cfg.Collapse,
			UseColors: cfg.UseColors,
		},
		Extra: cfg.Extra,
	}, cfg.Logger)

	configured.Store(true)
	return &Suite{cfg: cfg, runner: runner, log: cfg.Logger}
}

// Collect records a fragment in the live window. Fragments processed outside
// of any test are dropped.
func (s *Suite) Collect(selector, css string) {
	s.mu.Lock()
	w := s.active
	s.mu.Unlock()
	if w == nil {
		s.log.Debug("fragment captured outside a test", zap.String("selector", selector))
		return
	}
	w.Collect(selector, css)
}

// Intercept wraps p so every processed fragment reaches the live window
func (s *Suite) Intercept(p Processor) Processor {
	return core.Intercept(p, s.Collect)
}

// InterceptFunc wraps a plain-call processor so every processed fragment reaches the live window
func (s *Suite) InterceptFunc(fn ProcessFunc) ProcessFunc {
	return core.InterceptFunc(fn, s.Collect)
}

// InterceptFactory wraps every processor f builds so processed fragments reach the live window
func (s *Suite) InterceptFactory(f Factory) Factory {
	return core.InterceptFactory(f, s.Collect)
}

// open makes w the live window and returns a func restoring the previous one
func (s *Suite) open(w *Window) func() {
	s.mu.Lock()
	previous := s.active
	s.active = w
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		if s.active == w {
			s.active = previous
		}
		s.mu.Unlock()
	}
}

// Begin opens a fresh window for t. When t finishes, everything captured is
// linted and asserted. A test that captured nothing is not linted.
func (s *Suite) Begin(t testing.TB) *Window {
	t.Helper()
	testPath := callerPath(1)

	w := core.NewWindow()
	closeWindow := s.open(w)

	t.Cleanup(func() {
		closeWindow()
		fragments := w.Drain()
		s.log.Debug("test window closed", zap.String("test", t.Name()), zap.Int("fragments", len(fragments)))
		if len(fragments) == 0 {
			return
		}

		outcomes, err := s.runner.LintAll(context.Background(), fragments)
		if err != nil {
			t.Fatalf("stylecheck: %v", err)
			return
		}
		s.assert(t, outcomes, testPath)
	})
	return w
}

// Lint lints fragments with the suite's configuration
func (s *Suite) Lint(ctx context.Context, fragments []Fragment) ([]Outcome, error) {
	return s.runner.LintAll(ctx, fragments)
}

// Assert reports a test error unless outcomes are free of lint errors, and
// returns whether the assertion passed.
func (s *Suite) Assert(t testing.TB, outcomes []Outcome) bool {
	t.Helper()
	return s.assert(t, outcomes, callerPath(1))
}

// AssertFunc runs fn with a fresh window, then lints and asserts what it
// captured. Nothing captured passes.
func (s *Suite) AssertFunc(t testing.TB, fn func(w *Window)) bool {
	t.Helper()
	testPath := callerPath(1)

	w := core.NewWindow()
	func() {
		defer s.open(w)()
		fn(w)
	}()

	fragments := w.Drain()
	if len(fragments) == 0 {
		return true
	}
	outcomes, err := s.runner.LintAll(context.Background(), fragments)
	if err != nil {
		t.Errorf("stylecheck: %v", err)
		return false
	}
	return s.assert(t, outcomes, testPath)
}

func (s *Suite) assert(t testing.TB, outcomes []Outcome, testPath string) bool {
	t.Helper()
	verdict := core.Evaluate(outcomes, testPath, s.cfg.FailOnError, s.cfg.Stderr)
	if !verdict.Pass {
		t.Errorf("%s", verdict.Message())
	}
	return verdict.Pass
}

// callerPath returns the file of the caller skip frames above its caller,
// relative to the working directory when possible.
func callerPath(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	wd, err := os.Getwd()
	if err != nil {
		return file
	}
	rel, err := filepath.Rel(wd, file)
	if err != nil {
		return file
	}
	return rel
}
