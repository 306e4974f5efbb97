package stylecheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentLabel(t *testing.T) {
	component := &ComponentMeta{ID: "Kx9__Title-kQmKdb", Name: "Title", FileHash: "Kx9", Hash: "bcCCNc"}

	assert.Equal(t,
		"Title rendered in __TEST_PATH__ with className bcCCNc and ID Kx9__Title-kQmKdb",
		ComponentLabel(".bcCCNc", component))
	assert.Equal(t,
		"Component rendered in __TEST_PATH__ with className bcCCNc",
		ComponentLabel(".bcCCNc", nil))
	assert.Equal(t, "Component rendered in __TEST_PATH__", ComponentLabel("", nil))
}

func TestFormatterCollapsed(t *testing.T) {
	code := "color: red;\nwidth: 1frob; colr: blue;"
	formatter := NewFormatter(".a", code, nil, FormatOptions{Collapse: true})

	out := formatter([]FileResult{{
		Warnings: []Warning{
			{Line: 2, Column: 15, Severity: SeverityError, Text: `Unexpected unknown property "colr" (property-no-unknown)`, Rule: "property-no-unknown"},
			{Line: 2, Column: 8, Severity: SeverityError, Text: `Unexpected unknown unit "frob" (unit-no-unknown)`, Rule: "unit-no-unknown"},
		},
	}})

	expected := strings.Join([]string{
		"Component rendered in __TEST_PATH__ with className a",
		"",
		"2 | width: 1frob; colr: blue;",
		"           ^      ^",
		`  ✖ Unexpected unknown unit "frob" (unit-no-unknown)`,
		`  ✖ Unexpected unknown property "colr" (property-no-unknown)`,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestFormatterExpanded(t *testing.T) {
	code := "color: red;\nwidth: 1frob; colr: blue;"
	formatter := NewFormatter(".a", code, nil, FormatOptions{})

	out := formatter([]FileResult{{
		Warnings: []Warning{
			{Line: 2, Column: 8, Text: `Unexpected unknown unit "frob" (unit-no-unknown)`, Rule: "unit-no-unknown"},
			{Line: 2, Column: 15, Text: `Unexpected unknown property "colr" (property-no-unknown)`, Rule: "property-no-unknown"},
		},
	}})

	expected := strings.Join([]string{
		"Component rendered in __TEST_PATH__ with className a",
		"",
		"2 | width: 1frob; colr: blue;",
		"           ^",
		`  ✖ Unexpected unknown unit "frob" (unit-no-unknown)`,
		"",
		"2 | width: 1frob; colr: blue;",
		"                  ^",
		`  ✖ Unexpected unknown property "colr" (property-no-unknown)`,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestFormatterAlignsLineNumbers(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "color: red;"
	}
	lines[1] = "colr: red;"
	lines[11] = "colr: red;"
	formatter := NewFormatter("", strings.Join(lines, "\n"), nil, FormatOptions{Collapse: true})

	out := formatter([]FileResult{{
		Warnings: []Warning{
			{Line: 12, Column: 1, Text: "bad (property-no-unknown)", Rule: "property-no-unknown"},
			{Line: 2, Column: 1, Text: "bad (property-no-unknown)", Rule: "property-no-unknown"},
		},
	}})

	assert.Contains(t, out, "\n 2 | colr: red;\n     ^\n   ✖ bad (property-no-unknown)\n")
	assert.Contains(t, out, "\n12 | colr: red;\n     ^\n   ✖ bad (property-no-unknown)\n")
	assert.Less(t, strings.Index(out, " 2 |"), strings.Index(out, "12 |"))
}

func TestFormatterSkipsCleanResults(t *testing.T) {
	formatter := NewFormatter(".a", "color: red;", nil, FormatOptions{Collapse: true})
	assert.Empty(t, formatter([]FileResult{{Source: CodeFilename}}))
}

func TestFormatterEdgeColumns(t *testing.T) {
	formatter := NewFormatter("", "a", nil, FormatOptions{Collapse: true})

	out := formatter([]FileResult{{
		Warnings: []Warning{
			{Line: 1, Column: 0, Text: "before (x)", Rule: "x"},
			{Line: 1, Column: 4, Text: "past the end", Rule: "y"},
			{Line: 5, Column: 1, Text: "past the last line", Rule: "z"},
		},
	}})

	assert.Contains(t, out, "1 | a\n    ^  ^\n")
	assert.Contains(t, out, "  ✖ past the end (y)\n")
	assert.Contains(t, out, "5 | \n    ^\n")
}

func TestFormatterColors(t *testing.T) {
	formatter := NewFormatter("", "colr: red;", nil, FormatOptions{Collapse: true, UseColors: true})
	out := formatter([]FileResult{{
		Warnings: []Warning{{Line: 1, Column: 1, Text: "bad (property-no-unknown)", Rule: "property-no-unknown"}},
	}})

	assert.Contains(t, out, "Component rendered in __TEST_PATH__")
	assert.Contains(t, out, "colr: red;")
	assert.Contains(t, out, "bad")
}

func TestFormatterKeepsTabs(t *testing.T) {
	formatter := NewFormatter("", "\t\tcolr: red;", nil, FormatOptions{})
	out := formatter([]FileResult{{
		Warnings: []Warning{{Line: 1, Column: 3, Text: "bad (property-no-unknown)", Rule: "property-no-unknown"}},
	}})

	assert.Contains(t, out, "1 | \t\tcolr: red;\n    \t\t^\n")
}
