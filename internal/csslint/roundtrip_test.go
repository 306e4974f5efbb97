package csslint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/stylecheck/internal/stylecheck"
)

type position struct {
	Line   int
	Column int
	Rule   string
}

func positions(warnings []stylecheck.Warning) []position {
	out := make([]position, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, position{Line: w.Line, Column: w.Column, Rule: w.Rule})
	}
	return out
}

// lintWrapped lints the normalized form of a fragment and returns the
// warnings that survive the normalizer's filter
func lintWrapped(t *testing.T, selector, css string) []stylecheck.Warning {
	t.Helper()
	n := stylecheck.Normalize(selector, css, false)
	require.NotNil(t, n.Filter)

	results := []stylecheck.FileResult{{
		Source:   stylecheck.CodeFilename,
		Warnings: Check(n.Text, true, DefaultRules()),
	}}
	stylecheck.WrapFormatter(nil, n.Filter)(results)
	return results[0].Warnings
}

func TestWrappedCoordinatesMatchDirectLint(t *testing.T) {
	fragments := []struct {
		name string
		css  string
	}{
		{name: "invalid value", css: "color: red; line-height: {20 / 14};"},
		{name: "clean", css: "color: red;"},
		{name: "multi-line", css: "colr: red;\nwidth: 1frob;\ncolor: #ggg;"},
		{name: "indented lines", css: "\n  margin: 0;\n  padding: 1frob;\n"},
		{name: "duplicate property", css: "color: red;\ncolor: blue;"},
		{name: "nested parent reference", css: "& > a { colr: 1px; }"},
		{name: "nested rule with bad brace space", css: "color: red;\n&:hover {color: blue; }"},
		{name: "pseudo-class rule", css: "a:hover {color: red;}"},
	}

	for _, selector := range []string{".a", ".Title-hash", ".ünï"} {
		for _, tt := range fragments {
			t.Run(selector+" "+tt.name, func(t *testing.T) {
				direct := Check(tt.css, true, DefaultRules())
				wrapped := lintWrapped(t, selector, tt.css)
				assert.ElementsMatch(t, positions(direct), positions(wrapped))
			})
		}
	}
}

func TestWrappedStrayBraceStaysInsideSource(t *testing.T) {
	css := "colr: red;}"
	warnings := lintWrapped(t, ".a", css)

	require.NotEmpty(t, warnings)
	var syntax []stylecheck.Warning
	for _, w := range warnings {
		assert.Equal(t, 1, w.Line)
		assert.LessOrEqual(t, w.Column, len(css), w.Text)
		if w.Rule == RuleSyntax {
			syntax = append(syntax, w)
		}
	}
	require.Len(t, syntax, 1)
	assert.Equal(t, 11, syntax[0].Column)
}
