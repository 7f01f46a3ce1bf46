// Package render turns command specs into live instances and renders content
// through them. Construction performs the contract checks (complete format
// coverage, every template token bound); rendering is a single substitution
// pass whose only side effect is the structural counter on the instance
// itself.
package render
