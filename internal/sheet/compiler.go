// Package sheet is a minimal styled-components-like styling engine.
//
// Components are defined once, rendered with their CSS, and every render
// emits a class hash plus a <style> tag in the document. The CSS goes
// through a Processor, which is the seam test harnesses wrap to observe
// generated styles.
package sheet

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Processor compiles a (selector, css) pair into flat CSS
type Processor interface {
	Process(selector, css string) (string, error)
}

// Plugin post-processes every rule the compiler emits
type Plugin func(rule string) string

// Compiler is the default Processor. It flattens declarations into
// "selector{prop:value;}" and nested rules into prefixed rules:
//
//	.a { color: red; &:hover { color: blue; } b { margin: 0; } }
//	=> .a{color:red;}.a:hover{color:blue;}.a b{margin:0;}
type Compiler struct {
	plugins []Plugin
}

// NewCompiler returns a compiler as a Processor. Its signature fits a Factory.
func NewCompiler() Processor {
	return &Compiler{}
}

// Use registers plugins, applied in order to each emitted rule
func (c *Compiler) Use(plugins ...Plugin) {
	c.plugins = append(c.plugins, plugins...)
}

// Process compiles css scoped to selector. An empty selector compiles css as a
// global stylesheet.
func (c *Compiler) Process(selector, source string) (string, error) {
	p := &compileState{tokens: lex(source)}
	var out strings.Builder
	var parents []string
	if selector != "" {
		parents = []string{selector}
	}
	c.block(&out, p, parents)
	return out.String(), nil
}

// compileState is the token cursor of one Process call
type compileState struct {
	tokens []token
	pos    int
}

type token struct {
	tt   css.TokenType
	text string
}

func lex(source string) []token {
	lexer := css.NewLexer(parse.NewInputString(source))
	var tokens []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		if tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, token{tt: tt, text: string(data)})
	}
}

// block compiles statements until the closing brace of the current block or
// EOF. Own declarations come first as one rule, nested rules follow.
func (c *Compiler) block(out *strings.Builder, p *compileState, parents []string) {
	var decls strings.Builder
	var nested strings.Builder
	var stmt strings.Builder

	flush := func() {
		if decl := declaration(stmt.String()); decl != "" {
			decls.WriteString(decl)
		}
		stmt.Reset()
	}

	nesting := 0
loop:
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		p.pos++
		switch {
		case t.tt == css.LeftParenthesisToken || t.tt == css.FunctionToken || t.tt == css.LeftBracketToken:
			nesting++
		case (t.tt == css.RightParenthesisToken || t.tt == css.RightBracketToken) && nesting > 0:
			nesting--
		case t.tt == css.SemicolonToken && nesting == 0:
			flush()
			continue
		case t.tt == css.RightBraceToken && nesting == 0:
			break loop
		case t.tt == css.LeftBraceToken && nesting == 0:
			prelude := collapse(stmt.String())
			stmt.Reset()
			if strings.HasPrefix(prelude, "@") {
				var inner strings.Builder
				c.block(&inner, p, parents)
				nested.WriteString(prelude + "{" + inner.String() + "}")
			} else {
				c.block(&nested, p, combine(parents, prelude))
			}
			continue
		}
		stmt.WriteString(t.text)
	}
	flush()

	if decls.Len() > 0 {
		rule := decls.String()
		if len(parents) > 0 {
			rule = strings.Join(parents, ",") + "{" + rule + "}"
		}
		out.WriteString(c.apply(rule))
	}
	out.WriteString(nested.String())
}

func (c *Compiler) apply(rule string) string {
	for _, plugin := range c.plugins {
		rule = plugin(rule)
	}
	return rule
}

// declaration renders "prop : value" as "prop:value;"
func declaration(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return ""
	}
	name, value, ok := strings.Cut(stmt, ":")
	if !ok {
		return collapse(stmt) + ";"
	}
	return strings.TrimSpace(name) + ":" + collapse(value) + ";"
}

// combine nests each selector of the prelude inside each parent.
// "&" stands for the parent; selectors without one become descendants.
func combine(parents []string, prelude string) []string {
	children := strings.Split(prelude, ",")
	if len(parents) == 0 {
		parents = []string{""}
	}
	var combined []string
	for _, parent := range parents {
		for _, child := range children {
			child = strings.TrimSpace(child)
			switch {
			case strings.Contains(child, "&"):
				combined = append(combined, strings.ReplaceAll(child, "&", parent))
			case parent == "":
				combined = append(combined, child)
			default:
				combined = append(combined, parent+" "+child)
			}
		}
	}
	return combined
}

// collapse trims s and squeezes internal whitespace runs to one space
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
