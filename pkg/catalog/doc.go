// Package catalog declares the built-in command set and loads additional
// command definitions from JSON or YAML files. A catalog is the source of
// specs from which per-document render registries are built.
package catalog
