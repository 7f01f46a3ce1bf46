package document

import "strings"

// Options control full LaTeX document assembly.
type Options struct {
	// FontSize in points; mapped onto the closest standard size command.
	FontSize int
	// FontFamily by display name, e.g. "Times New Roman". Empty keeps the
	// default Computer Modern.
	FontFamily string
	// Margin passed to the geometry package. Empty means "1in".
	Margin string
}

// DefaultOptions returns the standing export settings.
func DefaultOptions() Options {
	return Options{FontSize: 14, Margin: "1in"}
}

func fontSizeCommand(size int) string {
	switch {
	case size <= 8:
		return "\\small"
	case size <= 10:
		return "\\normalsize"
	case size <= 12:
		return "\\large"
	case size <= 14:
		return "\\Large"
	case size <= 17:
		return "\\LARGE"
	case size <= 20:
		return "\\huge"
	default:
		return "\\Huge"
	}
}

func fontPackages(family string) (packages, command string) {
	switch family {
	case "", "Computer Modern":
		return "", ""
	case "Times New Roman":
		return "\\usepackage{times}", "\\rmfamily"
	case "Helvetica":
		return "\\usepackage{helvet}\n\\renewcommand{\\familydefault}{\\sfdefault}", ""
	case "Courier":
		return "\\usepackage{courier}", "\\ttfamily"
	case "Palatino":
		return "\\usepackage{palatino}", ""
	case "Bookman":
		return "\\usepackage{bookman}", ""
	case "Carlito":
		return "\\usepackage{carlito}", ""
	default:
		return "\\usepackage{fontspec}\n\\setmainfont{" + family + "}", ""
	}
}

// LaTeXDocument wraps rendered content in a complete article document with
// the math, list and framing packages the built-in commands rely on.
func LaTeXDocument(content string, opts Options) string {
	if opts.Margin == "" {
		opts.Margin = "1in"
	}
	if opts.FontSize == 0 {
		opts.FontSize = 14
	}
	packages, fontCmd := fontPackages(opts.FontFamily)

	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{amsmath}\n")
	b.WriteString("\\usepackage{amssymb}\n")
	b.WriteString("\\usepackage{graphicx}\n")
	b.WriteString("\\graphicspath{{./}{./images/}}\n")
	b.WriteString("\\usepackage{geometry}\n")
	b.WriteString("\\usepackage{xcolor}\n")
	b.WriteString("\\usepackage{mdframed}\n")
	b.WriteString("\\usepackage{enumitem}\n")
	if packages != "" {
		b.WriteString(packages)
		b.WriteString("\n")
	}
	b.WriteString("\n\\geometry{margin=" + opts.Margin + "}\n")
	b.WriteString("\\setlength{\\parindent}{0pt}\n")
	b.WriteString("\n\\begin{document}\n")
	b.WriteString(fontSizeCommand(opts.FontSize))
	if fontCmd != "" {
		b.WriteString(fontCmd)
	}
	b.WriteString("\n\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n\\end{document}\n")
	return b.String()
}
