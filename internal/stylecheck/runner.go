package stylecheck

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunnerConfig holds per-suite lint settings
type RunnerConfig struct {
	StripIndent bool
	Syntax      string         // passed to the linter, e.g. "scss"
	Formatter   Formatter      // caller-supplied formatter; nil selects the diagnostic formatter
	Format      FormatOptions  // diagnostic formatter settings
	Extra       map[string]any // forwarded verbatim to every invocation
}

// Runner lints captured fragments
type Runner struct {
	linter   Linter
	resolver Resolver
	config   RunnerConfig
	log      *zap.Logger
}

// NewRunner creates a runner. A nil resolver resolves nothing and a nil logger
// discards everything.
func NewRunner(linter Linter, resolver Resolver, config RunnerConfig, log *zap.Logger) *Runner {
	if resolver == nil {
		resolver = NopResolver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		linter:   linter,
		resolver: resolver,
		config:   config,
		log:      log,
	}
}

// LintAll lints every fragment concurrently and waits for all of them.
// The outcomes are in completion order, not fragment order. Only linter
// failures are errors; fragments with violations are regular outcomes.
func (r *Runner) LintAll(ctx context.Context, fragments []Fragment) ([]Outcome, error) {
	if len(fragments) == 0 {
		return nil, nil
	}
	if r.linter == nil {
		return nil, errors.New("no linter configured")
	}

	r.log.Debug("dispatching lint batch", zap.Int("fragments", len(fragments)))

	var (
		mu       sync.Mutex
		outcomes = make([]Outcome, 0, len(fragments))
		g        errgroup.Group
	)
	for i, fragment := range fragments {
		i, fragment := i, fragment
		g.Go(func() error {
			outcome, err := r.lintOne(ctx, fragment)
			if err != nil {
				return fmt.Errorf("lint fragment %d (%q): %w", i, fragment.Selector, err)
			}
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Debug("lint batch complete", zap.Int("outcomes", len(outcomes)))
	return outcomes, nil
}

// lintOne normalizes one fragment, invokes the linter and packages the result
func (r *Runner) lintOne(ctx context.Context, fragment Fragment) (Outcome, error) {
	component := r.resolver.Resolve(fragment.Selector)
	normalized := Normalize(fragment.Selector, fragment.CSS, r.config.StripIndent)

	formatter := r.config.Formatter
	useDefault := formatter == nil
	if useDefault {
		formatter = NewFormatter(fragment.Selector, normalized.Source, component, r.config.Format)
	}

	opts := LintOptions{
		Code:         normalized.Text,
		CodeFilename: CodeFilename,
		Syntax:       r.config.Syntax,
		Formatter:    WrapFormatter(formatter, normalized.Filter),
		Extra:        r.config.Extra,
	}

	result, err := r.linter.Lint(ctx, opts)
	if err != nil {
		return Outcome{}, err
	}
	if result == nil {
		return Outcome{}, errors.New("linter returned no result")
	}

	r.log.Debug("fragment linted",
		zap.String("selector", fragment.Selector),
		zap.Bool("errored", result.Errored),
		zap.Bool("resolved", component != nil))

	return Outcome{
		Fragment:         fragment,
		Component:        component,
		Result:           result,
		Options:          opts,
		DefaultFormatter: useDefault,
	}, nil
}
