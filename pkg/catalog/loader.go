package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/probmark/probmark/pkg/model"
)

// LoadFS walks the provided filesystem and folds every JSON/YAML command
// definition file into the catalog. Loaded commands may introduce new names
// or redefine existing ones, built-ins included. When fsys is nil the
// catalog is left untouched.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		return c.loadFile(data, path)
	})
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

type definitionFile struct {
	Variables map[string]string            `json:"variables" yaml:"variables"`
	Commands  map[string]commandDefinition `json:"commands" yaml:"commands"`
}

type commandDefinition struct {
	Description string                         `json:"description" yaml:"description"`
	Parent      string                         `json:"parent" yaml:"parent"`
	Environment string                         `json:"environment" yaml:"environment"`
	Structural  bool                           `json:"structural" yaml:"structural"`
	Validation  string                         `json:"validation" yaml:"validation"`
	MinLength   int                            `json:"minLength" yaml:"minLength"`
	Parameters  map[string]parameterDefinition `json:"parameters" yaml:"parameters"`
	Templates   templatesDefinition            `json:"templates" yaml:"templates"`
}

type parameterDefinition struct {
	Kind        string `json:"kind" yaml:"kind"`
	Description string `json:"description" yaml:"description"`
	Default     any    `json:"default" yaml:"default"`
	Retype      bool   `json:"retype" yaml:"retype"`
}

type templatesDefinition struct {
	Base      string `json:"base" yaml:"base"`
	Markdown  string `json:"markdown" yaml:"markdown"`
	Plaintext string `json:"plaintext" yaml:"plaintext"`
	LaTeX     string `json:"latex" yaml:"latex"`
}

func (c *Catalog) loadFile(data []byte, source string) error {
	doc, err := parseDefinition(data, source)
	if err != nil {
		return err
	}

	for name, value := range doc.Variables {
		key := strings.TrimSpace(name)
		if key == "" {
			return fmt.Errorf("catalog: file %s defines an empty variable name", source)
		}
		c.vars[key] = value
	}

	names := make([]string, 0, len(doc.Commands))
	for name := range doc.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec, err := c.buildSpec(name, doc.Commands[name], source)
		if err != nil {
			return err
		}
		c.add(spec)
	}
	return nil
}

func parseDefinition(data []byte, source string) (definitionFile, error) {
	var doc definitionFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return definitionFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return definitionFile{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
}

func (c *Catalog) buildSpec(name string, def commandDefinition, source string) (*model.CommandSpec, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("catalog: file %s defines a command with an empty name", source)
	}

	parent, err := c.resolveParent(def.Parent, trimmed, source)
	if err != nil {
		return nil, err
	}

	mode, err := parseValidationMode(def.Validation, trimmed, source)
	if err != nil {
		return nil, err
	}

	params, err := buildParameters(def.Parameters, trimmed, source)
	if err != nil {
		return nil, err
	}

	templates, err := c.buildTemplates(def.Templates, trimmed, source)
	if err != nil {
		return nil, err
	}

	spec := &model.CommandSpec{
		Name:        trimmed,
		Description: def.Description,
		Parent:      parent,
		Environment: def.Environment,
		Structural:  def.Structural,
		Validation:  mode,
		Params:      params,
		Templates:   templates,
	}
	if def.MinLength > 0 {
		spec.Rule = model.MinLengthRule(def.MinLength)
	}
	return spec, nil
}

func (c *Catalog) resolveParent(parent, command, source string) (*model.CommandSpec, error) {
	name := strings.TrimSpace(parent)
	if name == "" || name == c.root.Name {
		return c.root, nil
	}
	spec, ok := c.specs[name]
	if !ok {
		return nil, fmt.Errorf("catalog: command %q (file %s) names unknown parent %q", command, source, name)
	}
	return spec, nil
}

func parseValidationMode(mode, command, source string) (model.ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "extends":
		return model.ValidationExtends, nil
	case "replaces":
		return model.ValidationReplaces, nil
	default:
		return 0, fmt.Errorf("catalog: command %q (file %s) has unknown validation mode %q", command, source, mode)
	}
}

func buildParameters(defs map[string]parameterDefinition, command, source string) ([]model.ParameterDescriptor, error) {
	if len(defs) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]model.ParameterDescriptor, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("catalog: command %q (file %s) defines a parameter with an empty name", command, source)
		}
		def := defs[name]
		kind, err := parseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("catalog: command %q parameter %q (file %s): %w", command, trimmed, source, err)
		}
		params = append(params, model.ParameterDescriptor{
			Name:        trimmed,
			Kind:        kind,
			Description: def.Description,
			Default:     def.Default,
			Retype:      def.Retype,
		})
	}
	return params, nil
}

func parseKind(kind string) (model.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "number", "float", "int", "integer":
		return model.KindNumber, nil
	case "string", "str", "text":
		return model.KindString, nil
	case "boolean", "bool":
		return model.KindBoolean, nil
	default:
		return "", fmt.Errorf("unknown kind %q", kind)
	}
}

func (c *Catalog) buildTemplates(def templatesDefinition, command, source string) (model.TemplateSet, error) {
	entries := map[model.Format]string{
		model.FormatMarkdown:  def.Markdown,
		model.FormatPlaintext: def.Plaintext,
		model.FormatLaTeX:     def.LaTeX,
	}

	base, err := c.expandVariables(def.Base, command, source)
	if err != nil {
		return nil, err
	}

	set := model.TemplateSet{}
	for format, text := range entries {
		if text == "" {
			continue
		}
		expanded, err := c.expandVariables(text, command, source)
		if err != nil {
			return nil, err
		}
		set[format] = model.Template{Text: expanded, Content: base}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("catalog: command %q (file %s) declares no templates", command, source)
	}
	return set, nil
}

var variableRef = regexp.MustCompile(`\$variables\.([A-Za-z0-9_]+)\$`)

// expandVariables substitutes every $variables.name$ reference with the
// catalog's current value for name. Unknown references fail the load.
func (c *Catalog) expandVariables(text, command, source string) (string, error) {
	var missing string
	out := variableRef.ReplaceAllStringFunc(text, func(ref string) string {
		name := variableRef.FindStringSubmatch(ref)[1]
		value, ok := c.vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return ref
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("catalog: command %q (file %s) references unknown variable %q", command, source, missing)
	}
	return out, nil
}
