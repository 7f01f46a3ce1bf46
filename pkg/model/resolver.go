package model

import (
	"fmt"
	"strconv"
	"strings"
)

// EffectiveParameterTable is the fully merged parameter set for a variant
// after walking its ancestor chain root to leaf. It is immutable after
// construction and shared read-only by every instance of the spec.
type EffectiveParameterTable struct {
	command string
	order   []string
	params  map[string]ParameterDescriptor
}

// Descriptor returns the merged descriptor for name.
func (t *EffectiveParameterTable) Descriptor(name string) (ParameterDescriptor, bool) {
	desc, ok := t.params[name]
	return desc, ok
}

// Has reports whether name is declared anywhere in the chain.
func (t *EffectiveParameterTable) Has(name string) bool {
	_, ok := t.params[name]
	return ok
}

// Names returns parameter names in first-declaration order, root to leaf.
func (t *EffectiveParameterTable) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Defaults returns a fresh map of every parameter's default value.
func (t *EffectiveParameterTable) Defaults() map[string]any {
	out := make(map[string]any, len(t.params))
	for name, desc := range t.params {
		out[name] = desc.Default
	}
	return out
}

// Resolve walks the ancestor chain from root to spec and layers descriptors:
// each level overwrites keys it redeclares, adds keys it newly declares, and
// leaves the rest untouched. The result is cached on the spec; resolving is
// idempotent for a fixed chain.
func Resolve(spec *CommandSpec) (*EffectiveParameterTable, error) {
	if spec == nil {
		return nil, fmt.Errorf("model: spec is required")
	}
	if spec.effective != nil {
		return spec.effective, nil
	}

	chain, err := ancestorChain(spec)
	if err != nil {
		return nil, err
	}

	table := &EffectiveParameterTable{
		command: spec.Name,
		params:  make(map[string]ParameterDescriptor),
	}
	for _, level := range chain {
		for _, desc := range level.Params {
			name := strings.TrimSpace(desc.Name)
			if name == "" {
				return nil, fmt.Errorf("model: command %q declares a parameter with an empty name", level.Name)
			}
			desc.Name = name
			if err := normalizeDefault(&desc, level.Name); err != nil {
				return nil, err
			}
			prev, exists := table.params[name]
			if exists && prev.Kind != desc.Kind && !desc.Retype {
				return nil, &ParameterKindConflict{Command: level.Name, Name: name, Want: prev.Kind, Got: desc.Kind}
			}
			if !exists {
				table.order = append(table.order, name)
			}
			table.params[name] = desc
		}
	}

	spec.effective = table
	return table, nil
}

// ancestorChain returns the chain root first, failing on cycles.
func ancestorChain(spec *CommandSpec) ([]*CommandSpec, error) {
	var chain []*CommandSpec
	seen := make(map[*CommandSpec]struct{})
	for cur := spec; cur != nil; cur = cur.Parent {
		if _, ok := seen[cur]; ok {
			return nil, fmt.Errorf("model: command %q has a cyclic ancestor chain", spec.Name)
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func normalizeDefault(desc *ParameterDescriptor, command string) error {
	if desc.Default == nil {
		switch desc.Kind {
		case KindNumber:
			desc.Default = float64(0)
		case KindString:
			desc.Default = ""
		case KindBoolean:
			desc.Default = false
		default:
			return fmt.Errorf("model: command %q parameter %q has unknown kind %q", command, desc.Name, desc.Kind)
		}
		return nil
	}
	normalized, err := coerceValue(desc.Kind, desc.Default)
	if err != nil {
		return fmt.Errorf("model: command %q parameter %q default does not match kind %s: %v", command, desc.Name, desc.Kind, err)
	}
	desc.Default = normalized
	return nil
}

// ValidateOverrides checks every override key and value against the table and
// returns a normalized copy: numbers as float64 (numeric strings parsed for
// number-kind parameters), booleans as bool, strings as string. The input map
// is never mutated.
func (t *EffectiveParameterTable) ValidateOverrides(overrides map[string]any) (map[string]any, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(overrides))
	for name, value := range overrides {
		desc, ok := t.params[name]
		if !ok {
			return nil, &UnknownParameterError{Command: t.command, Name: name}
		}
		normalized, err := coerceValue(desc.Kind, value)
		if err != nil {
			return nil, &ParameterKindMismatch{Command: t.command, Name: name, Want: desc.Kind, Got: value}
		}
		if desc.Validator != nil {
			if err := desc.Validator(normalized); err != nil {
				return nil, fmt.Errorf("model: command %q parameter %q: %w", t.command, name, err)
			}
		}
		out[name] = normalized
	}
	return out, nil
}

// coerceValue normalizes value to the canonical Go type for kind. Numeric
// strings are accepted only for number-kind parameters; no other cross-kind
// coercion happens.
func coerceValue(kind Kind, value any) (any, error) {
	switch kind {
	case KindNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("string %q does not parse as a number", v)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("unsupported number value %T", value)
		}
	case KindString:
		if v, ok := value.(string); ok {
			return v, nil
		}
		return nil, fmt.Errorf("unsupported string value %T", value)
	case KindBoolean:
		if v, ok := value.(bool); ok {
			return v, nil
		}
		return nil, fmt.Errorf("unsupported boolean value %T", value)
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
