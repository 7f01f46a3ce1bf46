package document

import "strings"

// EscapeLaTeX escapes LaTeX special characters in text while leaving math
// spans untouched. Spans are delimited by $...$ or \[...\]; text that is a
// single math span passes through unchanged.
func EscapeLaTeX(text string) string {
	if text == "" {
		return text
	}
	if strings.HasPrefix(text, "$") && strings.HasSuffix(text, "$") && len(text) > 1 {
		return text
	}
	if strings.HasPrefix(text, "\\[") && strings.HasSuffix(text, "\\]") {
		return text
	}

	var out strings.Builder
	var part strings.Builder
	inMath := false

	flush := func(math bool) {
		if part.Len() == 0 {
			return
		}
		if math {
			out.WriteString(part.String())
		} else {
			out.WriteString(escapeRun(part.String()))
		}
		part.Reset()
	}

	delimiter := func(d string) {
		if inMath {
			part.WriteString(d)
			flush(true)
		} else {
			flush(false)
			part.WriteString(d)
		}
		inMath = !inMath
	}

	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "\\["), strings.HasPrefix(text[i:], "\\]"):
			delimiter(text[i : i+2])
			i += 2
		case text[i] == '$':
			delimiter("$")
			i++
		default:
			part.WriteByte(text[i])
			i++
		}
	}
	flush(inMath)
	return out.String()
}

func escapeRun(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			b.WriteString("\\textbackslash{}")
		case '#':
			b.WriteString("\\#")
		case '$':
			b.WriteString("\\$")
		case '%':
			b.WriteString("\\%")
		case '&':
			b.WriteString("\\&")
		case '_':
			b.WriteString("\\_")
		case '{':
			b.WriteString("\\{")
		case '}':
			b.WriteString("\\}")
		case '~':
			b.WriteString("\\textasciitilde{}")
		case '^':
			b.WriteString("\\textasciicircum{}")
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
