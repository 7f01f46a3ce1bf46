// Package document parses command-structured markdown into blocks and
// renders whole documents through a command registry. A document is a
// sequence of lines; a line of the form #name{params} opens a command
// block whose content runs until the next command line.
package document
