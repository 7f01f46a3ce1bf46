package model

import "fmt"

// InvalidContentError reports content rejected by a variant's validation
// chain. Constraint carries the failing rule's description.
type InvalidContentError struct {
	Command    string
	Constraint string
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("model: command %q rejected content: %s", e.Command, e.Constraint)
}

// UnknownParameterError reports an override key absent from the effective
// parameter table.
type UnknownParameterError struct {
	Command string
	Name    string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("model: command %q has no parameter %q", e.Command, e.Name)
}

// ParameterKindMismatch reports an override value whose type disagrees with
// the declared kind.
type ParameterKindMismatch struct {
	Command string
	Name    string
	Want    Kind
	Got     any
}

func (e *ParameterKindMismatch) Error() string {
	return fmt.Sprintf("model: command %q parameter %q wants %s, got %T", e.Command, e.Name, e.Want, e.Got)
}

// ParameterKindConflict is a construction-time error: a descendant redeclared
// a parameter with a different kind without the Retype flag.
type ParameterKindConflict struct {
	Command string
	Name    string
	Want    Kind
	Got     Kind
}

func (e *ParameterKindConflict) Error() string {
	return fmt.Sprintf("model: command %q redeclares parameter %q as %s (ancestor declares %s)", e.Command, e.Name, e.Got, e.Want)
}

// MissingPlaceholderBinding is a construction-time error: a template
// references a token with no binding in the effective table, the reserved
// identifiers, or the spec's derived entries.
type MissingPlaceholderBinding struct {
	Command string
	Format  Format
	Token   string
}

func (e *MissingPlaceholderBinding) Error() string {
	return fmt.Sprintf("model: command %q %s template references unbound placeholder %q", e.Command, e.Format, e.Token)
}

// IncompleteFormatImplementation is a construction-time error: a variant
// lacks a template for one of the three output formats.
type IncompleteFormatImplementation struct {
	Command string
	Format  Format
}

func (e *IncompleteFormatImplementation) Error() string {
	return fmt.Sprintf("model: command %q has no %s template", e.Command, e.Format)
}
