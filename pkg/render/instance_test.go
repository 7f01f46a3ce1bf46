package render_test

import (
	"errors"
	"testing"

	"github.com/probmark/probmark/pkg/model"
	"github.com/probmark/probmark/pkg/render"
)

func contentRoot() *model.CommandSpec {
	return &model.CommandSpec{
		Name: "content",
		Params: []model.ParameterDescriptor{
			{Name: "vspace", Kind: model.KindNumber, Default: 1.0},
			{Name: "indent", Kind: model.KindNumber},
		},
		Rule: model.NonEmptyRule(),
	}
}

func plainTemplates() model.TemplateSet {
	return model.TemplateSet{
		model.FormatMarkdown:  {Text: "#CONTENT#"},
		model.FormatPlaintext: {Text: "#CONTENT#"},
		model.FormatLaTeX:     {Text: "#CONTENT#\\par\n\\vspace{#VSPACE#em}\n"},
	}
}

func TestRenderStatelessIsPure(t *testing.T) {
	inst, err := render.NewInstance(&model.CommandSpec{
		Name:      "text",
		Parent:    contentRoot(),
		Templates: plainTemplates(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	req := render.Request{Content: "hello", Format: model.FormatMarkdown}
	first, err := inst.Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := inst.Render(req)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if first != second {
		t.Fatalf("stateless render differed: %q vs %q", first, second)
	}
	if first != "hello\n" {
		t.Fatalf("render = %q", first)
	}
}

func TestRenderSinglePassLeavesContentOpaque(t *testing.T) {
	inst, err := render.NewInstance(&model.CommandSpec{
		Name:      "text",
		Parent:    contentRoot(),
		Templates: plainTemplates(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	// Token-shaped text inside content must come out verbatim.
	out, err := inst.Render(render.Request{
		Content: "use #VSPACE# to tune spacing",
		Format:  model.FormatMarkdown,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "use #VSPACE# to tune spacing\n" {
		t.Fatalf("substituted value was re-scanned: %q", out)
	}
}

func TestRenderLiteralHashPassesThrough(t *testing.T) {
	inst, err := render.NewInstance(&model.CommandSpec{
		Name:      "text",
		Parent:    contentRoot(),
		Templates: plainTemplates(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	out, err := inst.Render(render.Request{
		Content: "problem # 3 is hard",
		Format:  model.FormatPlaintext,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "problem # 3 is hard\n" {
		t.Fatalf("render = %q", out)
	}
}

func TestStructuralCounterAdvancesAndResets(t *testing.T) {
	spec := &model.CommandSpec{
		Name:       "enum",
		Parent:     contentRoot(),
		Structural: true,
		Params: []model.ParameterDescriptor{
			{Name: "format", Kind: model.KindString, Default: "a)"},
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#LABEL# #CONTENT#"},
			model.FormatPlaintext: {Text: "#LABEL# #CONTENT#"},
			model.FormatLaTeX:     {Text: "\\item #CONTENT#"},
		},
	}
	inst, err := render.NewInstance(spec)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	req := render.Request{Content: "first", Format: model.FormatMarkdown}
	for i, want := range []string{"a) first\n", "b) first\n", "c) first\n"} {
		got, err := inst.Render(req)
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("render %d = %q, want %q", i, got, want)
		}
	}

	inst.Reset()
	got, err := inst.Render(render.Request{
		Content: "again",
		Params:  map[string]any{"format": "1."},
		Format:  model.FormatMarkdown,
	})
	if err != nil {
		t.Fatalf("render after reset: %v", err)
	}
	if got != "1. again\n" {
		t.Fatalf("render after reset = %q", got)
	}
}

func TestEnvironmentFuncSelectsEnvironment(t *testing.T) {
	spec := &model.CommandSpec{
		Name:   "eq",
		Parent: contentRoot(),
		Params: []model.ParameterDescriptor{
			{Name: "numbered", Kind: model.KindBoolean},
		},
		EnvironmentFunc: func(params map[string]any) string {
			if on, _ := params["numbered"].(bool); on {
				return "equation"
			}
			return "equation*"
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "$$#CONTENT#$$"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "\\begin{#ENV_NAME#}#CONTENT#\\end{#ENV_NAME#}"},
		},
	}
	inst, err := render.NewInstance(spec)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	plain, err := inst.Render(render.Request{Content: "x=1", Format: model.FormatLaTeX})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if plain != "\\begin{equation*}x=1\\end{equation*}" {
		t.Fatalf("unnumbered = %q", plain)
	}

	numbered, err := inst.Render(render.Request{
		Content: "x=1",
		Params:  map[string]any{"numbered": true},
		Format:  model.FormatLaTeX,
	})
	if err != nil {
		t.Fatalf("render numbered: %v", err)
	}
	if numbered != "\\begin{equation}x=1\\end{equation}" {
		t.Fatalf("numbered = %q", numbered)
	}
}

func TestLabelPartFormats(t *testing.T) {
	spec := &model.CommandSpec{
		Name:   "answer",
		Parent: contentRoot(),
		Params: []model.ParameterDescriptor{
			{Name: "label", Kind: model.KindString, Default: "Answer"},
		},
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#LABEL_PART##CONTENT#"},
			model.FormatPlaintext: {Text: "#LABEL_PART##CONTENT#"},
			model.FormatLaTeX:     {Text: "#LABEL_PART##CONTENT#"},
		},
	}
	inst, err := render.NewInstance(spec)
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	cases := []struct {
		format model.Format
		want   string
	}{
		{model.FormatMarkdown, "**Answer:** 42\n"},
		{model.FormatPlaintext, "Answer: 42\n"},
		{model.FormatLaTeX, "\\textbf{Answer:} 42"},
	}
	for _, tc := range cases {
		got, err := inst.Render(render.Request{Content: "42", Format: tc.format})
		if err != nil {
			t.Fatalf("render %s: %v", tc.format, err)
		}
		if got != tc.want {
			t.Fatalf("%s label part = %q, want %q", tc.format, got, tc.want)
		}
	}

	// Clearing the label removes the annotation entirely.
	got, err := inst.Render(render.Request{
		Content: "42",
		Params:  map[string]any{"label": ""},
		Format:  model.FormatMarkdown,
	})
	if err != nil {
		t.Fatalf("render without label: %v", err)
	}
	if got != "42\n" {
		t.Fatalf("empty label render = %q", got)
	}
}

func TestIndentAppliesToTextFormats(t *testing.T) {
	inst, err := render.NewInstance(&model.CommandSpec{
		Name:      "text",
		Parent:    contentRoot(),
		Templates: plainTemplates(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	got, err := inst.Render(render.Request{
		Content: "one\ntwo",
		Params:  map[string]any{"indent": 2},
		Format:  model.FormatPlaintext,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "    one\n    two\n" {
		t.Fatalf("indented render = %q", got)
	}
}

func TestContentRuleRejectsThroughChain(t *testing.T) {
	inst, err := render.NewInstance(&model.CommandSpec{
		Name:      "text",
		Parent:    contentRoot(),
		Templates: plainTemplates(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	_, err = inst.Render(render.Request{Content: "   ", Format: model.FormatMarkdown})
	var invalid *model.InvalidContentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidContentError, got %v", err)
	}
}

func TestNewInstanceRejectsIncompleteFormats(t *testing.T) {
	_, err := render.NewInstance(&model.CommandSpec{
		Name:   "partial",
		Parent: contentRoot(),
		Templates: model.TemplateSet{
			model.FormatMarkdown: {Text: "#CONTENT#"},
		},
	})
	var incomplete *model.IncompleteFormatImplementation
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteFormatImplementation, got %v", err)
	}
}

func TestNewInstanceRejectsUnboundPlaceholder(t *testing.T) {
	_, err := render.NewInstance(&model.CommandSpec{
		Name:   "dangling",
		Parent: contentRoot(),
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#CONTENT# #MYSTERY#"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "#CONTENT#"},
		},
	})
	var missing *model.MissingPlaceholderBinding
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPlaceholderBinding, got %v", err)
	}
	if missing.Token != "MYSTERY" {
		t.Fatalf("token = %q", missing.Token)
	}
}

func TestNewInstanceRejectsLabelOutsideStructural(t *testing.T) {
	_, err := render.NewInstance(&model.CommandSpec{
		Name:   "text",
		Parent: contentRoot(),
		Templates: model.TemplateSet{
			model.FormatMarkdown:  {Text: "#LABEL# #CONTENT#"},
			model.FormatPlaintext: {Text: "#CONTENT#"},
			model.FormatLaTeX:     {Text: "#CONTENT#"},
		},
	})
	var missing *model.MissingPlaceholderBinding
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPlaceholderBinding for #LABEL#, got %v", err)
	}
}
