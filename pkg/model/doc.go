// Package model holds the declarative data types for document commands:
// parameter descriptors, command specs with their specialization chains,
// per-format template sets, and the resolver that merges a chain into one
// effective parameter table. Everything here is plain data plus pure merge
// logic; rendering behavior lives in pkg/render.
package model
