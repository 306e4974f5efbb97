package csslint

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/stylecheck/internal/stylecheck"
)

// token is a lexer token with its 1-based position
type token struct {
	tt   css.TokenType
	text string
	line int
	col  int // in runes
}

var eof = token{tt: css.ErrorToken}

// tokenize lexes code into positioned tokens. The lexer returns every input
// byte as part of some token, so positions are tracked by walking token text.
func tokenize(code string) []token {
	lexer := css.NewLexer(parse.NewInputString(code))
	var tokens []token
	line, col := 1, 1
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		text := string(data)
		tokens = append(tokens, token{tt: tt, text: text, line: line, col: col})
		for _, r := range text {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}
	return tokens
}

// checker walks the token stream once and collects warnings
type checker struct {
	tokens   []token
	pos      int
	scss     bool
	rules    Rules
	warnings []stylecheck.Warning
}

// Check lints code and returns its warnings in source order.
// scss allows declarations outside of any rule, the way styling engines
// hand over a component's declaration list.
func Check(code string, scss bool, rules Rules) []stylecheck.Warning {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")

	c := &checker{
		tokens: tokenize(code),
		scss:   scss,
		rules:  rules,
	}
	c.statements(0, nil)
	return c.warnings
}

func (c *checker) at(i int) token {
	if i < 0 || i >= len(c.tokens) {
		return eof
	}
	return c.tokens[i]
}

func (c *checker) cur() token {
	return c.at(c.pos)
}

func (c *checker) skipTrivia() {
	for isTrivia(c.cur().tt) {
		c.pos++
	}
}

func isTrivia(tt css.TokenType) bool {
	return tt == css.WhitespaceToken || tt == css.CommentToken
}

func opensNesting(tt css.TokenType) bool {
	return tt == css.LeftParenthesisToken || tt == css.FunctionToken ||
		tt == css.LeftBracketToken || tt == css.LeftBraceToken
}

func closesNesting(tt css.TokenType) bool {
	return tt == css.RightParenthesisToken || tt == css.RightBracketToken || tt == css.RightBraceToken
}

func (c *checker) report(rule string, t token, format string, args ...any) {
	severity := SeverityError
	if rule != RuleSyntax {
		severity = c.rules[rule]
	}
	if severity == "" || severity == SeverityOff {
		return
	}
	c.warnings = append(c.warnings, stylecheck.Warning{
		Line:     t.line,
		Column:   t.col,
		Severity: stylecheck.Severity(severity),
		Text:     fmt.Sprintf(format, args...) + " (" + rule + ")",
		Rule:     rule,
	})
}

// statements parses a list of statements until the block opened by open
// closes, or until EOF at the top level (open == nil).
func (c *checker) statements(depth int, open *token) {
	seen := make(map[string]bool)
	for {
		c.skipTrivia()
		t := c.cur()
		switch {
		case t.tt == css.ErrorToken:
			if open != nil {
				c.report(RuleSyntax, *open, "Unclosed block")
			}
			return
		case t.tt == css.RightBraceToken:
			if open == nil {
				c.report(RuleSyntax, t, "Unexpected }")
				c.pos++
				continue
			}
			c.checkClosingBrace(c.pos)
			c.pos++
			return
		case t.tt == css.SemicolonToken:
			c.pos++
		case t.tt == css.AtKeywordToken:
			c.atRule(depth)
		case c.startsRule():
			c.rule(depth)
		default:
			c.declaration(depth, seen)
		}
	}
}

// startsRule reports whether the statement at pos is a rule with a block.
// "a:hover {" is a rule; "line-height: {20 / 14}" is a declaration with a
// broken value, told apart by the whitespace after the colon.
func (c *checker) startsRule() bool {
	nesting := 0
	for i := c.pos; ; i++ {
		t := c.at(i)
		switch {
		case t.tt == css.ErrorToken:
			return false
		case t.tt == css.LeftBraceToken && nesting == 0:
			return !c.looksLikeDeclaration(c.pos)
		case (t.tt == css.SemicolonToken || t.tt == css.RightBraceToken) && nesting == 0:
			return false
		case opensNesting(t.tt):
			nesting++
		case closesNesting(t.tt) && nesting > 0:
			nesting--
		}
	}
}

func (c *checker) looksLikeDeclaration(i int) bool {
	first := c.at(i)
	if first.tt != css.IdentToken && first.tt != css.CustomPropertyNameToken {
		return false
	}
	j := i + 1
	for isTrivia(c.at(j).tt) {
		j++
	}
	if c.at(j).tt != css.ColonToken {
		return false
	}
	return c.at(j+1).tt == css.WhitespaceToken
}

// rule consumes a selector and its block
func (c *checker) rule(depth int) {
	c.seekBlock()
	if c.cur().tt != css.LeftBraceToken {
		return
	}
	c.block(depth)
}

// atRule consumes an at-rule statement or an at-rule with a block
func (c *checker) atRule(depth int) {
	c.pos++
	c.seekBlock()
	switch c.cur().tt {
	case css.SemicolonToken:
		c.pos++
	case css.LeftBraceToken:
		c.block(depth)
	}
}

// seekBlock advances to the next "{", ";" or "}" outside parentheses
func (c *checker) seekBlock() {
	nesting := 0
	for {
		t := c.cur()
		switch {
		case t.tt == css.ErrorToken:
			return
		case (t.tt == css.LeftBraceToken || t.tt == css.SemicolonToken || t.tt == css.RightBraceToken) && nesting == 0:
			return
		case t.tt == css.LeftParenthesisToken || t.tt == css.FunctionToken || t.tt == css.LeftBracketToken:
			nesting++
		case (t.tt == css.RightParenthesisToken || t.tt == css.RightBracketToken) && nesting > 0:
			nesting--
		}
		c.pos++
	}
}

// block checks the brace at pos and parses the statements inside it
func (c *checker) block(depth int) {
	open := c.cur()
	c.checkOpeningBrace(c.pos)
	c.pos++
	c.statements(depth+1, &open)
}

// checkOpeningBrace wants a newline or exactly one space after "{"
func (c *checker) checkOpeningBrace(i int) {
	next := c.at(i + 1)
	if next.tt == css.RightBraceToken {
		return
	}
	if next.tt == css.WhitespaceToken {
		if c.at(i+2).tt == css.RightBraceToken {
			return
		}
		if next.text == " " || strings.HasPrefix(next.text, "\n") {
			return
		}
	}
	open := c.at(i)
	c.report(RuleOpeningBraceSpaceAfter, token{line: open.line, col: open.col + 1},
		`Expected single space or newline after "{"`)
}

// checkClosingBrace wants exactly one space, or a newline and indentation, before "}"
func (c *checker) checkClosingBrace(i int) {
	prev := c.at(i - 1)
	if prev.tt == css.LeftBraceToken {
		return
	}
	if prev.tt == css.WhitespaceToken {
		if c.at(i-2).tt == css.LeftBraceToken {
			return
		}
		if prev.text == " " || strings.Contains(prev.text, "\n") {
			return
		}
	}
	c.report(RuleClosingBraceSpaceBefore, c.at(i), `Expected single space or newline before "}"`)
}

// skipStatement advances past the current statement, leaving a closing "}" in place
func (c *checker) skipStatement() {
	nesting := 0
	for {
		t := c.cur()
		switch {
		case t.tt == css.ErrorToken:
			return
		case t.tt == css.SemicolonToken && nesting == 0:
			c.pos++
			return
		case t.tt == css.RightBraceToken && nesting == 0:
			return
		case opensNesting(t.tt):
			nesting++
		case closesNesting(t.tt):
			nesting--
		}
		c.pos++
	}
}

// declaration parses "property: value" and runs the declaration rules
func (c *checker) declaration(depth int, seen map[string]bool) {
	start := c.cur()

	// SCSS variables: $name: value;
	if c.scss && start.tt == css.DelimToken && start.text == "$" {
		c.skipStatement()
		return
	}

	topLevel := depth == 0 && !c.scss
	if topLevel || (start.tt != css.IdentToken && start.tt != css.CustomPropertyNameToken) {
		c.report(RuleSyntax, start, "Unknown word")
		c.skipStatement()
		return
	}

	name := strings.ToLower(start.text)
	c.pos++
	c.skipTrivia()
	colon := c.cur()
	if colon.tt != css.ColonToken {
		c.report(RuleSyntax, start, "Unknown word")
		c.skipStatement()
		return
	}
	c.pos++
	value := c.value()

	custom := strings.HasPrefix(name, "--")
	if !custom && !knownProperty(name) {
		c.report(RulePropertyNoUnknown, start, "Unexpected unknown property %q", name)
	}
	if seen[name] {
		c.report(RuleNoDuplicateProperties, start, "Unexpected duplicate %q", name)
	}
	seen[name] = true

	if !custom {
		c.checkValue(name, colon, value)
	}
}

// value collects the tokens of a declaration value, consuming the
// terminating ";" but leaving a closing "}" in place. Leading and trailing
// trivia are dropped.
func (c *checker) value() []token {
	var tokens []token
	nesting := 0
loop:
	for {
		t := c.cur()
		switch {
		case t.tt == css.ErrorToken:
			break loop
		case t.tt == css.SemicolonToken && nesting == 0:
			c.pos++
			break loop
		case t.tt == css.RightBraceToken && nesting == 0:
			break loop
		case opensNesting(t.tt):
			nesting++
		case closesNesting(t.tt):
			nesting--
		}
		tokens = append(tokens, t)
		c.pos++
	}

	for len(tokens) > 0 && isTrivia(tokens[0].tt) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && isTrivia(tokens[len(tokens)-1].tt) {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func (c *checker) checkValue(name string, colon token, value []token) {
	if len(value) == 0 {
		c.report(RuleValueNoUnknown, colon, "Unexpected empty value for property %q", name)
		return
	}

	invalid := len(value) == 1 && value[0].tt == css.DelimToken
	var text strings.Builder
	for _, t := range value {
		switch t.tt {
		case css.LeftBraceToken, css.RightBraceToken, css.BadStringToken, css.BadURLToken:
			invalid = true
		}
		text.WriteString(t.text)
	}
	if invalid {
		c.report(RuleValueNoUnknown, value[0], "Unexpected unknown value %q for property %q",
			strings.Join(strings.Fields(text.String()), " "), name)
		return
	}

	for _, t := range value {
		switch t.tt {
		case css.DimensionToken:
			if unit := dimensionUnit(t.text); !knownUnits[strings.ToLower(unit)] {
				c.report(RuleUnitNoUnknown, t, "Unexpected unknown unit %q", unit)
			}
		case css.HashToken:
			if !validHex(t.text[1:]) {
				c.report(RuleColorNoInvalidHex, t, "Unexpected invalid hex color %q", t.text)
			}
		}
	}
}

// dimensionUnit strips the number from a dimension token: "10frobs" -> "frobs"
func dimensionUnit(text string) string {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i+1 < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if text[j] == '+' || text[j] == '-' {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			i = j
			for i < len(text) && isDigit(text[i]) {
				i++
			}
		}
	}
	return text[i:]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func validHex(hex string) bool {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(hex); i++ {
		b := hex[i]
		if !isDigit(b) && (b < 'a' || b > 'f') && (b < 'A' || b > 'F') {
			return false
		}
	}
	return true
}
