package stylecheck

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeLinter reports one error per "bad" in the code, at the position of the word
func fakeLinter(ctx context.Context, opts LintOptions) (*Result, error) {
	var warnings []Warning
	for i, line := range splitLines(opts.Code) {
		rest := line
		offset := 0
		for {
			idx := strings.Index(rest, "bad")
			if idx < 0 {
				break
			}
			warnings = append(warnings, Warning{
				Line:     i + 1,
				Column:   offset + idx + 1,
				Severity: SeverityError,
				Text:     "Unexpected bad (fake-rule)",
				Rule:     "fake-rule",
			})
			offset += idx + 3
			rest = rest[idx+3:]
		}
	}

	result := &Result{
		Errored: len(warnings) > 0,
		Results: []FileResult{{Source: opts.CodeFilename, Errored: len(warnings) > 0, Warnings: warnings}},
	}
	if opts.Formatter != nil {
		result.Output = opts.Formatter(result.Results)
	}
	return result, nil
}

func TestLintAllEmpty(t *testing.T) {
	var calls atomic.Int32
	linter := LinterFunc(func(ctx context.Context, opts LintOptions) (*Result, error) {
		calls.Add(1)
		return fakeLinter(ctx, opts)
	})
	r := NewRunner(linter, nil, RunnerConfig{}, zaptest.NewLogger(t))

	outcomes, err := r.LintAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, outcomes)
	assert.Zero(t, calls.Load())
}

func TestLintAllWithoutLinter(t *testing.T) {
	r := NewRunner(nil, nil, RunnerConfig{}, nil)
	_, err := r.LintAll(context.Background(), []Fragment{{Selector: ".a", CSS: "x"}})
	assert.ErrorContains(t, err, "no linter configured")
}

func TestLintAllInvocationOptions(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []LintOptions
	)
	linter := LinterFunc(func(ctx context.Context, opts LintOptions) (*Result, error) {
		mu.Lock()
		seen = append(seen, opts)
		mu.Unlock()
		return fakeLinter(ctx, opts)
	})
	extra := map[string]any{"rules": map[string]any{"x": "off"}}
	r := NewRunner(linter, nil, RunnerConfig{StripIndent: true, Syntax: "scss", Extra: extra}, zaptest.NewLogger(t))

	outcomes, err := r.LintAll(context.Background(), []Fragment{{Selector: ".a", CSS: "\n    color: red;\n  "}})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Len(t, seen, 1)

	assert.Equal(t, ".a { \ncolor: red;\n }", seen[0].Code)
	assert.Equal(t, CodeFilename, seen[0].CodeFilename)
	assert.Equal(t, "scss", seen[0].Syntax)
	assert.Equal(t, extra, seen[0].Extra)
	assert.NotNil(t, seen[0].Formatter)
	assert.True(t, outcomes[0].DefaultFormatter)
	assert.Nil(t, outcomes[0].Component)
}

func TestLintAllCountsErrorsInEitherCompletionOrder(t *testing.T) {
	fragments := []Fragment{
		{Selector: ".clean", CSS: "color: red;"},
		{Selector: ".dirty", CSS: "bad: 1; bad: 2;"},
	}

	for _, first := range []string{".clean", ".dirty"} {
		t.Run("first to finish "+first, func(t *testing.T) {
			finished := make(chan struct{})
			linter := LinterFunc(func(ctx context.Context, opts LintOptions) (*Result, error) {
				if !strings.HasPrefix(opts.Code, first) {
					<-finished
				} else {
					defer close(finished)
				}
				return fakeLinter(ctx, opts)
			})
			r := NewRunner(linter, nil, RunnerConfig{}, zaptest.NewLogger(t))

			outcomes, err := r.LintAll(context.Background(), fragments)
			require.NoError(t, err)
			require.Len(t, outcomes, 2)
			assert.ElementsMatch(t, fragments, []Fragment{outcomes[0].Fragment, outcomes[1].Fragment})
			assert.Equal(t, 2, CountErrors(outcomes))
		})
	}
}

func TestLintAllLinterFailure(t *testing.T) {
	boom := errors.New("boom")
	linter := LinterFunc(func(ctx context.Context, opts LintOptions) (*Result, error) {
		if strings.HasPrefix(opts.Code, ".b") {
			return nil, boom
		}
		return fakeLinter(ctx, opts)
	})
	r := NewRunner(linter, nil, RunnerConfig{}, zaptest.NewLogger(t))

	_, err := r.LintAll(context.Background(), []Fragment{
		{Selector: ".a", CSS: "color: red;"},
		{Selector: ".b", CSS: "color: red;"},
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `lint fragment 1 (".b")`)
}

func TestLintAllNilResult(t *testing.T) {
	linter := LinterFunc(func(context.Context, LintOptions) (*Result, error) { return nil, nil })
	r := NewRunner(linter, nil, RunnerConfig{}, nil)

	_, err := r.LintAll(context.Background(), []Fragment{{Selector: ".a", CSS: "x"}})
	assert.ErrorContains(t, err, "linter returned no result")
}

func TestLintAllCallerFormatterSeesFilteredWarnings(t *testing.T) {
	var seen []FileResult
	formatter := func(results []FileResult) string {
		seen = results
		return "custom"
	}
	r := NewRunner(LinterFunc(fakeLinter), nil, RunnerConfig{Formatter: formatter}, zaptest.NewLogger(t))

	// ".bad" is part of the wrapper and must not be reported
	outcomes, err := r.LintAll(context.Background(), []Fragment{{Selector: ".bad", CSS: "x: bad;"}})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.False(t, outcomes[0].DefaultFormatter)
	assert.Equal(t, "custom", outcomes[0].Result.Output)
	require.Len(t, seen, 1)
	require.Len(t, seen[0].Warnings, 1)
	assert.Equal(t, 4, seen[0].Warnings[0].Column)
	assert.Equal(t, 1, CountErrors(outcomes))
}

type staticResolver map[string]*ComponentMeta

func (r staticResolver) Resolve(selector string) *ComponentMeta {
	return r[selector]
}

func TestLintAllDefaultFormatterUsesComponent(t *testing.T) {
	component := &ComponentMeta{ID: "Kx9__Title-kQmKdb", Name: "Title", FileHash: "Kx9", Hash: "bcCCNc"}
	resolver := staticResolver{".bcCCNc": component}
	r := NewRunner(LinterFunc(fakeLinter), resolver, RunnerConfig{Format: FormatOptions{Collapse: true}}, zaptest.NewLogger(t))

	outcomes, err := r.LintAll(context.Background(), []Fragment{{Selector: ".bcCCNc", CSS: "color: bad;"}})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.Same(t, component, outcomes[0].Component)
	assert.Equal(t, strings.Join([]string{
		"Title rendered in __TEST_PATH__ with className bcCCNc and ID Kx9__Title-kQmKdb",
		"",
		"1 | color: bad;",
		"           ^",
		"  ✖ Unexpected bad (fake-rule)",
		"",
	}, "\n"), outcomes[0].Result.Output)
}
