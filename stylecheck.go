// Package stylecheck lints the CSS a styling engine generates while tests run.
//
// Every (selector, css) pair the engine hands to its CSS processor is
// captured during a test. When the test ends the captures are linted
// concurrently and the test fails if any lint error was found, with
// diagnostics pointing at the lines of the component's own CSS.
//
// # Setup
//
// Configure the suite once and wrap the engine's processor:
//
//	var (
//		suite  *stylecheck.Suite
//		engine *sheet.Engine
//	)
//
//	func TestMain(m *testing.M) {
//		stylecheck.WarnIfUnconfigured(os.Stderr)
//		cfg := stylecheck.DefaultConfig()
//		cfg.Resolver = stylecheck.MarkupResolver{Source: func() string { return engine.Document().HTML() }}
//		suite = stylecheck.Configure(cfg)
//		engine = sheet.NewEngine(func() sheet.Processor { return suite.Intercept(sheet.NewCompiler()) })
//		os.Exit(m.Run())
//	}
//
// # Per-test linting
//
// Begin opens a capture window; everything rendered until the test ends is
// linted in the test's cleanup:
//
//	func TestTitle(t *testing.T) {
//		suite.Begin(t)
//		engine.Render(title, "color: red;")
//	}
//
// # Explicit assertions
//
//	suite.AssertFunc(t, func(w *stylecheck.Window) {
//		engine.Render(title, "line-height: {20 / 14};")
//	})
package stylecheck

import (
	core "github.com/yacobolo/stylecheck/internal/stylecheck"
)

// Core types, re-exported for callers outside this module
type (
	Fragment       = core.Fragment
	ComponentMeta  = core.ComponentMeta
	Warning        = core.Warning
	Severity       = core.Severity
	FileResult     = core.FileResult
	Result         = core.Result
	Formatter      = core.Formatter
	LintOptions    = core.LintOptions
	Linter         = core.Linter
	LinterFunc     = core.LinterFunc
	Outcome        = core.Outcome
	Window         = core.Window
	Processor      = core.Processor
	ProcessFunc    = core.ProcessFunc
	Factory        = core.Factory
	Collector      = core.Collector
	Resolver       = core.Resolver
	NopResolver    = core.NopResolver
	MarkupResolver = core.MarkupResolver
)

// Severity constants
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
)

// Placeholder tokens that appear in formatter output until the assertion
// replaces them with the test file path.
const (
	CodeFilename  = core.CodeFilename
	TestPathToken = core.TestPathToken
)

// NewWindow returns an empty capture window
func NewWindow() *Window {
	return core.NewWindow()
}

// Intercept wraps one processor so collect sees every call
func Intercept(p Processor, collect Collector) Processor {
	return core.Intercept(p, collect)
}

// InterceptFunc wraps a plain-call processor
func InterceptFunc(fn ProcessFunc, collect Collector) ProcessFunc {
	return core.InterceptFunc(fn, collect)
}

// InterceptFactory wraps every processor f builds
func InterceptFactory(f Factory, collect Collector) Factory {
	return core.InterceptFactory(f, collect)
}

// Unwrap returns the real processor behind any interceptors
func Unwrap(p Processor) Processor {
	return core.Unwrap(p)
}
