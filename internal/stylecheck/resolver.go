package stylecheck

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// Resolver associates a generated selector with the component that produced it.
// A nil result is the normal outcome when nothing is known.
type Resolver interface {
	Resolve(selector string) *ComponentMeta
}

// NopResolver never knows anything
type NopResolver struct{}

// Resolve always returns nil
func (NopResolver) Resolve(string) *ComponentMeta { return nil }

// HashAttribute lists the class hashes a style tag carries
const HashAttribute = "data-styled-components"

// componentIDPattern matches "/* sc-component-id: <id> */ .<id> {}.<hash>".
// The id cannot contain spaces or "*", so a match never spans two marker blocks.
// RE2 has no backreferences, so the repeated id is captured as group 2 and compared.
var componentIDPattern = `/\* sc-component-id: ([^\s*]+) \*/\s\.([^\s{]+) \{\}\.%s\b`

// componentIDParts splits an id into its optional file hash and component name
var componentIDParts = regexp.MustCompile(`^(([^_]+)__)?([^-]+)`)

// MarkupResolver finds component metadata in rendered markup
type MarkupResolver struct {
	// Source returns the current rendered document; empty means nothing is queryable.
	Source func() string
}

// Resolve looks for a <style> tag listing the selector's hash and reads the
// component marker that precedes the hash's rule.
func (r MarkupResolver) Resolve(selector string) *ComponentMeta {
	if r.Source == nil || !strings.HasPrefix(selector, ".") || len(selector) < 2 {
		return nil
	}
	markup := r.Source()
	if markup == "" {
		return nil
	}

	hash := selector[1:]
	text, ok := findStyleText(markup, hash)
	if !ok {
		return nil
	}

	pattern, err := regexp.Compile(strings.Replace(componentIDPattern, "%s", regexp.QuoteMeta(hash), 1))
	if err != nil {
		return nil
	}
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		if m[1] != m[2] {
			continue
		}
		parts := componentIDParts.FindStringSubmatch(m[1])
		if parts == nil {
			continue
		}
		return &ComponentMeta{
			ID:       m[1],
			Name:     parts[3],
			FileHash: parts[2],
			Hash:     hash,
		}
	}
	return nil
}

// findStyleText returns the text of the first <style> tag whose hash attribute
// contains hash as a whitespace-separated token.
func findStyleText(markup, hash string) (string, bool) {
	lexer := html.NewLexer(parse.NewInputString(markup))

	inStyle := false
	matched := false
	var text bytes.Buffer
	for {
		tt, data := lexer.Next()
		switch tt {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken:
			inStyle = string(lexer.Text()) == "style"
			matched = false
			text.Reset()
		case html.AttributeToken:
			if inStyle && string(lexer.Text()) == HashAttribute {
				value := strings.Trim(string(lexer.AttrVal()), `"'`)
				for _, field := range strings.Fields(value) {
					if field == hash {
						matched = true
						break
					}
				}
			}
		case html.TextToken:
			if inStyle && matched {
				text.Write(data)
			}
		case html.EndTagToken:
			if inStyle && matched && string(lexer.Text()) == "style" {
				return text.String(), true
			}
			inStyle = false
		}
	}
}
