package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/probmark/probmark/pkg/logging"
	"github.com/probmark/probmark/pkg/model"
	"github.com/probmark/probmark/pkg/render"
)

// Block is one parsed unit of a document: either a command invocation or a
// run of plain text (Command empty).
type Block struct {
	Command string
	Params  map[string]any
	Content string
	Line    int
}

// Parser splits documents into blocks and renders them through a registry.
type Parser struct {
	registry *render.Registry
	log      zerolog.Logger
}

// NewParser returns a parser bound to the given registry.
func NewParser(registry *render.Registry) *Parser {
	return &Parser{
		registry: registry,
		log:      logging.GetLogger("document"),
	}
}

var commandLine = regexp.MustCompile(`^#([A-Za-z][A-Za-z0-9_]*)(\{[^}]*\})?\s*(.*)$`)

// Split breaks text into blocks. A command line opens a block whose content
// runs until the next command line; a standalone "#eq" line terminates an
// open eq block without starting a new one. Lines outside any command fold
// into plain-text blocks.
func (p *Parser) Split(text string) []Block {
	lines := strings.Split(text, "\n")
	var blocks []Block

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		m := commandLine.FindStringSubmatch(line)
		if m == nil {
			start := i
			var run []string
			for i < len(lines) && !commandLine.MatchString(strings.TrimSpace(lines[i])) {
				run = append(run, strings.TrimRight(lines[i], " \t"))
				i++
			}
			content := strings.TrimSpace(strings.Join(run, "\n"))
			if content != "" {
				blocks = append(blocks, Block{Content: content, Line: start + 1})
			}
			continue
		}

		block := Block{
			Command: m[1],
			Params:  ParseParams(m[2]),
			Line:    i + 1,
		}
		var content []string
		if rest := strings.TrimSpace(m[3]); rest != "" {
			content = append(content, rest)
		}
		i++
		for i < len(lines) {
			current := strings.TrimSpace(lines[i])
			if block.Command == "eq" && current == "#eq" {
				i++
				break
			}
			if commandLine.MatchString(current) {
				break
			}
			content = append(content, strings.TrimRight(lines[i], " \t"))
			i++
		}
		block.Content = strings.TrimSpace(strings.Join(content, "\n"))
		blocks = append(blocks, block)
	}
	return blocks
}

// Render converts a whole document to the requested format. Structural
// counters restart at the top of every document and whenever other content
// interrupts a structural run. In LaTeX output, consecutive list items are
// wrapped in a single enumerate or itemize environment and plain text is
// escaped outside math spans.
func (p *Parser) Render(text string, format model.Format) (string, error) {
	p.registry.ResetStructural()
	blocks := p.Split(text)
	p.log.Debug().Int("blocks", len(blocks)).Str("format", string(format)).Msg("rendering document")

	var out []string
	listEnv := ""
	closeList := func() {
		if listEnv != "" {
			out = append(out, "\\end{"+listEnv+"}")
			listEnv = ""
		}
	}

	var run *render.Instance
	breakRun := func(next *render.Instance) {
		if run != nil && run != next {
			run.Reset()
		}
		run = next
	}

	for _, block := range blocks {
		if block.Command == "" {
			breakRun(nil)
			closeList()
			content := block.Content
			if format == model.FormatLaTeX {
				content = EscapeLaTeX(content) + "\\par"
			}
			out = append(out, content)
			continue
		}

		instance, err := p.registry.Get(block.Command)
		if err != nil {
			return "", fmt.Errorf("document: line %d: %w", block.Line, err)
		}
		if instance.Structural() {
			breakRun(instance)
		} else {
			breakRun(nil)
		}
		rendered, err := instance.Render(render.Request{
			Content: block.Content,
			Params:  block.Params,
			Format:  format,
		})
		if err != nil {
			return "", fmt.Errorf("document: line %d: #%s: %w", block.Line, block.Command, err)
		}

		if format == model.FormatLaTeX {
			if strings.HasPrefix(strings.TrimSpace(rendered), "\\item") {
				env := "itemize"
				if instance.Structural() {
					env = "enumerate"
				}
				if listEnv != env {
					closeList()
					out = append(out, "\\begin{"+env+"}")
					listEnv = env
				}
			} else {
				closeList()
			}
		}
		out = append(out, rendered)
	}
	closeList()

	return strings.Join(out, "\n"), nil
}
