package catalog

import (
	"fmt"
	"sort"

	"github.com/probmark/probmark/pkg/model"
	"github.com/probmark/probmark/pkg/render"
)

// Catalog holds a named set of command specs plus the template variables
// available to loaded definitions. The zero value is not usable; construct
// one with Default or New.
type Catalog struct {
	root  *model.CommandSpec
	specs map[string]*model.CommandSpec
	order []string
	vars  map[string]string
}

// New returns an empty catalog around the given root spec.
func New(root *model.CommandSpec) *Catalog {
	return &Catalog{
		root:  root,
		specs: map[string]*model.CommandSpec{},
		vars:  map[string]string{},
	}
}

// Default returns a catalog populated with the built-in command set.
func Default() *Catalog {
	root := ContentRoot()
	c := New(root)
	for _, spec := range Builtin(root) {
		c.add(spec)
	}
	return c
}

// Root returns the abstract root spec all commands specialize.
func (c *Catalog) Root() *model.CommandSpec { return c.root }

// Lookup returns the spec registered under name.
func (c *Catalog) Lookup(name string) (*model.CommandSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Names returns the command names in registration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Specs returns the specs in registration order.
func (c *Catalog) Specs() []*model.CommandSpec {
	out := make([]*model.CommandSpec, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.specs[name])
	}
	return out
}

// SortedNames returns the command names in lexical order.
func (c *Catalog) SortedNames() []string {
	out := c.Names()
	sort.Strings(out)
	return out
}

// Registry builds a fresh render registry from every spec in the catalog.
// Construction errors in any spec fail the whole build.
func (c *Catalog) Registry() (*render.Registry, error) {
	reg := render.NewRegistry()
	for _, name := range c.order {
		if err := reg.Register(c.specs[name]); err != nil {
			return nil, fmt.Errorf("catalog: command %q: %w", name, err)
		}
	}
	return reg, nil
}

// add records a spec, replacing any earlier definition of the same name
// while keeping its position in the order. Children of a replaced spec are
// rewired to the replacement so redefining a parent flows into every chain
// built from this catalog.
func (c *Catalog) add(spec *model.CommandSpec) {
	old, seen := c.specs[spec.Name]
	if !seen {
		c.order = append(c.order, spec.Name)
	}
	c.specs[spec.Name] = spec
	if old == nil || old == spec {
		return
	}
	for _, other := range c.specs {
		if other.Parent == old {
			other.Parent = spec
		}
	}
}
