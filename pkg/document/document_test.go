package document_test

import (
	"strings"
	"testing"

	"github.com/probmark/probmark/pkg/document"
)

func TestLaTeXDocument(t *testing.T) {
	out := document.LaTeXDocument("\\textbf{hi}", document.DefaultOptions())

	for _, want := range []string{
		"\\documentclass{article}",
		"\\usepackage{amsmath}",
		"\\usepackage{mdframed}",
		"\\geometry{margin=1in}",
		"\\Large",
		"\\begin{document}",
		"\\textbf{hi}",
		"\\end{document}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("document missing %q:\n%s", want, out)
		}
	}
}

func TestLaTeXDocumentFontMapping(t *testing.T) {
	out := document.LaTeXDocument("x", document.Options{FontSize: 10, FontFamily: "Times New Roman"})
	if !strings.Contains(out, "\\usepackage{times}") {
		t.Fatalf("times package missing:\n%s", out)
	}
	if !strings.Contains(out, "\\normalsize") {
		t.Fatalf("size command missing:\n%s", out)
	}

	custom := document.LaTeXDocument("x", document.Options{FontFamily: "Calibri"})
	if !strings.Contains(custom, "\\usepackage{fontspec}") {
		t.Fatalf("fontspec missing for custom family:\n%s", custom)
	}
}
