package document

import (
	"strconv"
	"strings"
)

// ParseParams parses a "key:value, key:value" parameter string into typed
// values. Commas inside single or double quotes do not split. Values parse
// as bool, int or float when they look like one; quoted values stay strings.
func ParseParams(text string) map[string]any {
	params := map[string]any{}

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		text = text[1 : len(text)-1]
	}
	if text == "" {
		return params
	}

	for _, part := range splitQuoted(text, ',') {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = coerce(strings.TrimSpace(value))
	}
	return params
}

// splitQuoted splits text on sep outside of quoted runs.
func splitQuoted(text string, sep byte) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == sep:
			parts = append(parts, strings.TrimSpace(text[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(text[start:]))
	return parts
}

func coerce(value string) any {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
