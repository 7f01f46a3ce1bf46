package catalog

import (
	"fmt"
	"strings"

	"github.com/probmark/probmark/pkg/model"
)

// ContentRoot returns the abstract root every built-in command specializes.
// It declares the layout parameters shared by all content commands and the
// base content rule. The root carries no templates and is never registered.
func ContentRoot() *model.CommandSpec {
	return &model.CommandSpec{
		Name:        "content",
		Description: "Abstract content root shared by all commands.",
		Params: []model.ParameterDescriptor{
			{
				Name:        "vspace",
				Kind:        model.KindNumber,
				Description: "Vertical space after the block, in em units.",
				Default:     1.0,
			},
			{
				Name:        "indent",
				Kind:        model.KindNumber,
				Description: "Left indentation of the block, in em units.",
				Default:     0.0,
			},
		},
		Rule: model.NonEmptyRule(),
	}
}

// Builtin returns the built-in command specs, parented to root, in their
// canonical order.
func Builtin(root *model.CommandSpec) []*model.CommandSpec {
	text := &model.CommandSpec{
		Name:        "text",
		Description: "Plain paragraph of content.",
		Parent:      root,
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#CONTENT#"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "\\hspace{#INDENT#em}#CONTENT#\\par\n\\vspace{#VSPACE#em}\n"},
		},
	}

	strongOpen := func(params map[string]any, format model.Format) string {
		if on, _ := params["bold"].(bool); !on {
			return ""
		}
		if format == model.FormatLaTeX {
			return "\\textbf{"
		}
		return "**"
	}
	strongClose := func(params map[string]any, format model.Format) string {
		if on, _ := params["bold"].(bool); !on {
			return ""
		}
		if format == model.FormatLaTeX {
			return "}"
		}
		return "**"
	}

	problem := &model.CommandSpec{
		Name:        "problem",
		Description: "Problem statement, optionally emphasized.",
		Parent:      root,
		Params: []model.ParameterDescriptor{
			{
				Name:        "bold",
				Kind:        model.KindBoolean,
				Description: "Emphasize the whole statement.",
				Default:     false,
			},
		},
		Derived: map[string]model.DerivedBinding{
			"STRONG_OPEN":  strongOpen,
			"STRONG_CLOSE": strongClose,
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#STRONG_OPEN##CONTENT##STRONG_CLOSE#"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "\\hspace{#INDENT#em}#STRONG_OPEN##CONTENT##STRONG_CLOSE#\\par\n\\vspace{#VSPACE#em}\n"},
		},
	}

	question := &model.CommandSpec{
		Name:        "question",
		Description: "Question posed to the reader.",
		Parent:      root,
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "*#CONTENT#*"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "\\hspace{#INDENT#em}\\emph{#CONTENT#}\\par\n\\vspace{#VSPACE#em}\n"},
		},
	}

	answer := &model.CommandSpec{
		Name:        "answer",
		Description: "Final answer, introduced by a configurable label.",
		Parent:      root,
		Params: []model.ParameterDescriptor{
			{
				Name:        "label",
				Kind:        model.KindString,
				Description: "Label text placed before the answer.",
				Default:     "Answer",
			},
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#LABEL_PART##CONTENT#"},
			model.FormatPlaintext: {Text: "#LABEL_PART##CONTENT#"},
			model.FormatLaTeX:     {Text: "\\hspace{#INDENT#em}#LABEL_PART##CONTENT#\\par\n\\vspace{#VSPACE#em}\n"},
		},
	}

	solution := &model.CommandSpec{
		Name:        "solution",
		Description: "Worked solution of the problem.",
		Parent:      root,
		Params: []model.ParameterDescriptor{
			{
				Name:        "label",
				Kind:        model.KindString,
				Description: "Label text placed before the solution.",
				Default:     "Solution",
			},
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#LABEL_PART##CONTENT#"},
			model.FormatPlaintext: {Text: "#LABEL_PART##CONTENT#"},
			model.FormatLaTeX:     {Text: "\\hspace{#INDENT#em}#LABEL_PART##CONTENT#\\par\n\\vspace{#VSPACE#em}\n"},
		},
	}

	note := &model.CommandSpec{
		Name:        "note",
		Description: "Side note, rendered as a framed box when important.",
		Parent:      root,
		Params: []model.ParameterDescriptor{
			{
				Name:        "important",
				Kind:        model.KindBoolean,
				Description: "Render the note with a visible frame.",
				Default:     false,
			},
		},
		EnvironmentFunc: func(params map[string]any) string {
			if on, _ := params["important"].(bool); on {
				return "mdframed"
			}
			return "quote"
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "> #CONTENT#"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "\\begin{#ENV_NAME#}\n#CONTENT#\n\\end{#ENV_NAME#}\n\\vspace{#VSPACE#em}\n"},
		},
	}

	noBlankLines := &model.ContentRule{
		Description: "must not contain blank lines",
		Accept: func(content string) bool {
			return !containsBlankLine(content)
		},
	}

	eq := &model.CommandSpec{
		Name:        "eq",
		Description: "Display equation, numbered on request.",
		Parent:      root,
		Params: []model.ParameterDescriptor{
			{
				Name:        "numbered",
				Kind:        model.KindBoolean,
				Description: "Emit a numbered equation environment.",
				Default:     false,
			},
			{
				Name:        "align",
				Kind:        model.KindString,
				Description: "Horizontal placement: left, center or right.",
				Default:     "left",
				Validator:   oneOf("align", "left", "center", "right"),
			},
		},
		EnvironmentFunc: func(params map[string]any) string {
			if on, _ := params["numbered"].(bool); on {
				return "equation"
			}
			return "equation*"
		},
		Validation: model.ValidationExtends,
		Rule:       noBlankLines,
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "$$\n#CONTENT#\n$$"},
			model.FormatPlaintext: {Text: "    #CONTENT#"},
			model.FormatLaTeX:     {Text: "\\begin{#ENV_NAME#}\n#CONTENT#\n\\end{#ENV_NAME#}\n\\vspace{#VSPACE#em}\n"},
		},
	}

	align := &model.CommandSpec{
		Name:        "align",
		Description: "Multi-line aligned equations.",
		Parent:      root,
		Environment: "align*",
		Validation:  model.ValidationExtends,
		Rule:        noBlankLines,
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "$$\n#CONTENT#\n$$"},
			model.FormatPlaintext: {Text: "    #CONTENT#"},
			model.FormatLaTeX:     {Text: "\\begin{#ENV_NAME#}\n#CONTENT#\n\\end{#ENV_NAME#}\n\\vspace{#VSPACE#em}\n"},
		},
	}

	enum := &model.CommandSpec{
		Name:        "enum",
		Description: "Numbered list item with a configurable label pattern.",
		Parent:      text,
		Structural:  true,
		Params: []model.ParameterDescriptor{
			{
				Name:        "format",
				Kind:        model.KindString,
				Description: "Label pattern, e.g. \"a)\" or \"1.\".",
				Default:     "a)",
			},
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#LABEL# #CONTENT#"},
			model.FormatPlaintext: {Text: "#LABEL# #CONTENT#"},
			model.FormatLaTeX:     {Text: "\\item #CONTENT#\n\\vspace{#VSPACE#em}\n"},
		},
	}

	bullet := &model.CommandSpec{
		Name:        "bullet",
		Description: "Unordered list item.",
		Parent:      text,
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "- #CONTENT#"},
			model.FormatPlaintext: {Text: "- #CONTENT#"},
			model.FormatLaTeX:     {Text: "\\item #CONTENT#\n\\vspace{#VSPACE#em}\n"},
		},
	}

	return []*model.CommandSpec{
		text, problem, question, answer, solution,
		note, eq, align, enum, bullet,
	}
}

func containsBlankLine(content string) bool {
	blank := true
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			if blank {
				return true
			}
			blank = true
		case ' ', '\t', '\r':
		default:
			blank = false
		}
	}
	return false
}

func oneOf(name string, allowed ...string) func(any) error {
	return func(value any) error {
		s, _ := value.(string)
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return fmt.Errorf("catalog: %s must be one of %s, got %q",
			name, strings.Join(allowed, ", "), s)
	}
}
