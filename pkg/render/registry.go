package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/probmark/probmark/pkg/model"
)

// Registry stores constructed command instances by name, providing discovery
// and duplication safeguards. One registry represents one authoring session
// or document; parallel documents each build their own so structural
// counters never interfere.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[string]*Instance),
	}
}

// Register constructs an instance for spec and adds it under its name.
// Construction-time contract violations (incomplete formats, unbound
// placeholders, kind conflicts) are fatal to this variant and surface here.
// Duplicate names return an error.
func (r *Registry) Register(spec *model.CommandSpec) error {
	instance, err := NewInstance(spec)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[spec.Name]; exists {
		return fmt.Errorf("render: command %q already registered", spec.Name)
	}
	r.instances[spec.Name] = instance
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(spec *model.CommandSpec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// Get retrieves an instance by command name.
func (r *Registry) Get(name string) (*Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.instances[name]
	if !ok {
		return nil, fmt.Errorf("render: command %q not found", name)
	}
	return instance, nil
}

// Has reports whether a command is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.instances[name]
	return ok
}

// List returns a sorted list of registered command names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render dispatches a request to the named command.
func (r *Registry) Render(name string, req Request) (string, error) {
	instance, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return instance.Render(req)
}

// ResetStructural zeroes the counter of every structural instance. The
// document parser calls it when a fresh document begins.
func (r *Registry) ResetStructural() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, instance := range r.instances {
		if instance.Structural() {
			instance.Reset()
		}
	}
}
