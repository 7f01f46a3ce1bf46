package render

import (
	"fmt"
	"strings"

	"github.com/probmark/probmark/pkg/model"
)

// Reserved token identifiers available to every template.
const (
	tokenContent   = "CONTENT"
	tokenEnvName   = "ENV_NAME"
	tokenLabelPart = "LABEL_PART"
	tokenLabel     = "LABEL"
)

// lookupFunc resolves a token identifier to its substitution value.
type lookupFunc func(token string) (string, bool)

// substitute runs the single forward pass over text, replacing every #TOKEN#
// with its looked-up value. Substituted values are emitted verbatim and never
// re-scanned, so delimiter-like text inside them cannot trigger another
// replacement. A '#' that does not open a well-formed token passes through as
// literal text.
func substitute(text string, lookup lookupFunc) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '#' {
			b.WriteByte(text[i])
			i++
			continue
		}
		ident, end, ok := scanToken(text, i)
		if !ok {
			b.WriteByte(text[i])
			i++
			continue
		}
		value, bound := lookup(ident)
		if !bound {
			// Registration cross-checks every token, so this indicates a
			// template mutated after construction. Never emit the raw token.
			return "", fmt.Errorf("render: unbound placeholder %q", ident)
		}
		b.WriteString(value)
		i = end
	}
	return b.String(), nil
}

// scanToken reports the identifier of the token starting at text[start]
// (which must be '#') and the index just past its closing '#'.
func scanToken(text string, start int) (ident string, end int, ok bool) {
	close := strings.IndexByte(text[start+1:], '#')
	if close < 0 {
		return "", 0, false
	}
	ident = text[start+1 : start+1+close]
	if !isIdentifier(ident) {
		return "", 0, false
	}
	return ident, start + close + 2, true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// templateTokens returns the distinct token identifiers referenced by text,
// in first-occurrence order.
func templateTokens(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for i := 0; i < len(text); {
		if text[i] != '#' {
			i++
			continue
		}
		ident, end, ok := scanToken(text, i)
		if !ok {
			i++
			continue
		}
		if _, dup := seen[ident]; !dup {
			seen[ident] = struct{}{}
			out = append(out, ident)
		}
		i = end
	}
	return out
}

// verifyTemplates enforces the construction-time template contract: a
// template for all three formats, and every referenced token bound by the
// effective table, the reserved identifiers, or a derived entry. Failures
// here are fatal to registering the variant.
func verifyTemplates(spec *model.CommandSpec, table *model.EffectiveParameterTable) error {
	for _, format := range model.Formats() {
		tpl, ok := spec.Templates[format]
		if !ok || strings.TrimSpace(tpl.Text) == "" {
			return &model.IncompleteFormatImplementation{Command: spec.Name, Format: format}
		}
		for _, text := range []string{tpl.Text, tpl.Content} {
			for _, token := range templateTokens(text) {
				if !bindable(spec, table, token) {
					return &model.MissingPlaceholderBinding{Command: spec.Name, Format: format, Token: token}
				}
			}
		}
	}
	return nil
}

func bindable(spec *model.CommandSpec, table *model.EffectiveParameterTable, token string) bool {
	switch token {
	case tokenContent, tokenLabelPart:
		return true
	case tokenEnvName:
		return spec.Environment != "" || spec.EnvironmentFunc != nil
	case tokenLabel:
		return spec.Structural
	}
	if derivedBinding(spec, token) != nil {
		return true
	}
	return table.Has(strings.ToLower(token)) || table.Has(token)
}

// derivedBinding finds a command-defined binding for token, preferring the
// leaf declaration over ancestors'.
func derivedBinding(spec *model.CommandSpec, token string) model.DerivedBinding {
	for cur := spec; cur != nil; cur = cur.Parent {
		if fn, ok := cur.Derived[token]; ok && fn != nil {
			return fn
		}
	}
	return nil
}
