package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probmark/probmark/pkg/model"
)

// Instance is a live, possibly stateful use of a CommandSpec. It shares the
// spec's resolved parameter table read-only and owns the structural counter.
// Instances are bound to one authoring session or document and must not be
// shared across documents that render concurrently.
type Instance struct {
	spec    *model.CommandSpec
	table   *model.EffectiveParameterTable
	rules   []model.ContentRule
	counter int
}

// NewInstance resolves the spec's parameter chain, composes its validation
// chain, and cross-checks every declared template. All contract violations
// surface here, before the instance can render anything.
func NewInstance(spec *model.CommandSpec) (*Instance, error) {
	if spec == nil {
		return nil, fmt.Errorf("render: spec is required")
	}
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("render: spec name is required")
	}
	table, err := model.Resolve(spec)
	if err != nil {
		return nil, err
	}
	rules, err := model.ValidationChain(spec)
	if err != nil {
		return nil, err
	}
	if err := verifyTemplates(spec, table); err != nil {
		return nil, err
	}
	return &Instance{spec: spec, table: table, rules: rules}, nil
}

// Spec returns the defining command spec.
func (i *Instance) Spec() *model.CommandSpec { return i.spec }

// Table returns the shared effective parameter table.
func (i *Instance) Table() *model.EffectiveParameterTable { return i.table }

// Structural reports whether the instance carries enumeration state.
func (i *Instance) Structural() bool { return i.spec.Structural }

// Reset zeroes the structural counter. The caller (the document parser)
// invokes it when entering a new structural block; render never resets on
// its own.
func (i *Instance) Reset() { i.counter = 0 }

// Counter returns the current structural counter value.
func (i *Instance) Counter() int { return i.counter }

// Render produces the formatted fragment for one request. For structural
// variants the counter advances first, so two identical calls yield
// successive labels; every other variant renders purely.
func (i *Instance) Render(req Request) (string, error) {
	tpl, ok := i.spec.Templates[req.Format]
	if !ok {
		return "", &model.IncompleteFormatImplementation{Command: i.spec.Name, Format: req.Format}
	}

	if err := model.CheckContent(i.spec.Name, i.rules, req.Content); err != nil {
		return "", err
	}
	overrides, err := i.table.ValidateOverrides(req.Params)
	if err != nil {
		return "", err
	}

	params := i.table.Defaults()
	for name, value := range overrides {
		params[name] = value
	}

	var label string
	if i.spec.Structural {
		i.counter++
		pattern, _ := params["format"].(string)
		label = ExpandLabel(pattern, i.counter)
	}

	pass := func(text, content string) (string, error) {
		return substitute(text, i.lookup(params, req.Format, content, label))
	}

	content := req.Content
	if tpl.Content != "" {
		if content, err = pass(tpl.Content, req.Content); err != nil {
			return "", err
		}
	}
	out, err := pass(tpl.Text, content)
	if err != nil {
		return "", err
	}

	out = applyIndent(out, params, req.Format)
	if req.Format != model.FormatLaTeX && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func (i *Instance) lookup(params map[string]any, format model.Format, content, label string) lookupFunc {
	return func(token string) (string, bool) {
		switch token {
		case tokenContent:
			return content, true
		case tokenEnvName:
			return i.environment(params), i.spec.Environment != "" || i.spec.EnvironmentFunc != nil
		case tokenLabelPart:
			return i.labelPart(params, format), true
		case tokenLabel:
			return label, i.spec.Structural
		}
		if fn := derivedBinding(i.spec, token); fn != nil {
			return fn(params, format), true
		}
		if value, ok := params[strings.ToLower(token)]; ok {
			return formatValue(value), true
		}
		if value, ok := params[token]; ok {
			return formatValue(value), true
		}
		return "", false
	}
}

func (i *Instance) environment(params map[string]any) string {
	if i.spec.EnvironmentFunc != nil {
		return i.spec.EnvironmentFunc(params)
	}
	return i.spec.Environment
}

// labelPart renders the labeling annotation for the reserved #LABEL_PART#
// binding: empty unless a label parameter is set. A spec can override the
// fragment with a derived LABEL_PART entry.
func (i *Instance) labelPart(params map[string]any, format model.Format) string {
	if fn := derivedBinding(i.spec, tokenLabelPart); fn != nil {
		return fn(params, format)
	}
	label, _ := params["label"].(string)
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	switch format {
	case model.FormatLaTeX:
		return `\textbf{` + label + `:} `
	case model.FormatMarkdown:
		return "**" + label + ":** "
	default:
		return label + ": "
	}
}

// formatValue converts a context value to its canonical text form: booleans
// as literal true/false, numbers as decimal text without a trailing zero
// fraction.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// applyIndent renders the indent parameter for the text formats: two spaces
// per em unit, prefixed to every non-empty line. LaTeX templates carry their
// own \hspace and are left alone.
func applyIndent(out string, params map[string]any, format model.Format) string {
	if format == model.FormatLaTeX {
		return out
	}
	units, _ := params["indent"].(float64)
	n := int(units)
	if n <= 0 {
		return out
	}
	prefix := strings.Repeat("  ", n)
	lines := strings.Split(out, "\n")
	for idx, line := range lines {
		if line != "" {
			lines[idx] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
