package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/probmark/probmark/pkg/catalog"
	"github.com/probmark/probmark/pkg/model"
	"github.com/probmark/probmark/pkg/render"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]model.Format{
		"markdown":  model.FormatMarkdown,
		"md":        model.FormatMarkdown,
		"plaintext": model.FormatPlaintext,
		"txt":       model.FormatPlaintext,
		"latex":     model.FormatLaTeX,
		"TEX":       model.FormatLaTeX,
	}
	for name, want := range cases {
		got, err := parseFormat(name)
		if err != nil {
			t.Fatalf("parseFormat(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("parseFormat(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := parseFormat("pdf"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestRenderCommandMatchesLibrary(t *testing.T) {
	doc := "#problem{bold: true}\nSolve $x^2 = 4$.\n#answer\nx = 2 or x = -2\n"
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := runCommand(t, "render", path, "--format", "markdown")

	reg, err := catalog.Default().Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	want, err := reg.Render("problem", render.Request{
		Content: "Solve $x^2 = 4$.",
		Params:  map[string]any{"bold": true},
		Format:  model.FormatMarkdown,
	})
	if err != nil {
		t.Fatalf("library render: %v", err)
	}
	if !strings.Contains(got, strings.TrimSuffix(want, "\n")) {
		t.Fatalf("CLI output diverged from library:\nCLI:\n%s\nlibrary fragment:\n%s", got, want)
	}
	if !strings.Contains(got, "**Answer:**") {
		t.Fatalf("answer block missing:\n%s", got)
	}
}

func TestCommandsListsBuiltins(t *testing.T) {
	out := runCommand(t, "commands")
	for _, name := range []string{"#text", "#problem", "#eq", "#enum"} {
		if !strings.Contains(out, name) {
			t.Fatalf("commands output missing %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "vspace") {
		t.Fatalf("inherited parameters not listed:\n%s", out)
	}
}
