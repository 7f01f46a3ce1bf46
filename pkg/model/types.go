package model

// Kind is the simplified enum for parameter value types.
type Kind string

const (
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
)

// Format identifies one of the output targets every command variant must
// implement.
type Format string

const (
	FormatMarkdown  Format = "markdown"
	FormatPlaintext Format = "plaintext"
	FormatLaTeX     Format = "latex"
)

// Formats returns every output format, in registration-check order.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatPlaintext, FormatLaTeX}
}

// ParameterDescriptor declares one configurable option of a command variant.
// Descriptors are owned by exactly one declaring spec and are immutable after
// declaration. A descendant redeclaring an ancestor's name overrides the
// default and validator; changing Kind additionally requires Retype, otherwise
// resolution fails with ParameterKindConflict.
type ParameterDescriptor struct {
	Name        string
	Kind        Kind
	Description string
	Default     any
	// Validator optionally constrains override values beyond the kind check.
	Validator func(value any) error
	// Retype marks an intentional kind change relative to the ancestor
	// declaration of the same name.
	Retype bool
}

// Template is a token-substitution string for one (variant, format) pair.
// Placeholder tokens are written #NAME#; substitution is a single pass and
// substituted values are never re-scanned.
type Template struct {
	Text string
	// Content optionally holds a sub-template whose substituted result is
	// spliced into Text at the #CONTENT# slot before the base pass runs.
	Content string
}

// TemplateSet maps output formats to their templates. A registered variant
// must cover all three formats.
type TemplateSet map[Format]Template

// ValidationMode declares how a variant's content rule composes with its
// ancestors' rules.
type ValidationMode int

const (
	// ValidationExtends runs the ancestor chain first and adds the local rule.
	ValidationExtends ValidationMode = iota
	// ValidationReplaces discards inherited rules and applies only the local one.
	ValidationReplaces
)

// ContentRule is a named content-acceptance predicate. Description is
// surfaced verbatim in InvalidContentError for user-facing reporting.
type ContentRule struct {
	Description string
	Accept      func(content string) bool
}

// DerivedBinding computes a command-defined context entry from the resolved
// parameters at render time. Derived entries participate in template token
// substitution alongside declared parameters and the reserved identifiers.
type DerivedBinding func(params map[string]any, format Format) string

// CommandSpec is the declarative definition of a command variant, independent
// of any particular use. Specs form a specialization chain through Parent;
// the root has none.
type CommandSpec struct {
	Name        string
	Description string
	Parent      *CommandSpec

	// Environment names the LaTeX wrapper construct bound to #ENV_NAME#.
	Environment string
	// EnvironmentFunc, when set, picks the environment from resolved
	// parameters (e.g. equation vs equation* based on "numbered").
	EnvironmentFunc func(params map[string]any) string

	Params    []ParameterDescriptor
	Templates TemplateSet

	// Rule is the locally declared content rule; nil inherits the chain
	// unchanged.
	Rule       *ContentRule
	Validation ValidationMode

	// Derived lists command-defined extra bindings, keyed by token identifier.
	Derived map[string]DerivedBinding

	// Structural marks list-like variants that carry a per-instance counter
	// and receive the reserved #LABEL# binding.
	Structural bool

	effective *EffectiveParameterTable
}
