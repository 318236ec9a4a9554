package pdf

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// DefaultEngine is used when no engine is named.
const DefaultEngine = EngineChrome

// ErrUnknownEngine is returned by Registry.Get for unregistered names.
var ErrUnknownEngine = errors.New("pdf: unknown engine")

// Registry stores converters by engine name. Converters handed out by Get
// validate their output with pdfcpu.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// EngineOptions configures the built-in engines.
type EngineOptions struct {
	Chrome ChromeOptions
	Basic  BasicOptions
}

// NewDefaultRegistry registers the chrome and basic engines.
func NewDefaultRegistry(opts EngineOptions) *Registry {
	reg := NewRegistry()
	reg.MustRegister(EngineChrome, NewChromeConverter(opts.Chrome))
	reg.MustRegister(EngineBasic, NewBasicConverter(opts.Basic))
	return reg
}

// Register adds a converter. Duplicate names return an error.
func (r *Registry) Register(name string, conv Converter) error {
	if conv == nil {
		return fmt.Errorf("pdf: converter is required")
	}
	if name == "" {
		return fmt.Errorf("pdf: engine name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.converters[name]; exists {
		return fmt.Errorf("pdf: engine %q already registered", name)
	}
	r.converters[name] = Validated(name, conv)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, conv Converter) {
	if err := r.Register(name, conv); err != nil {
		panic(err)
	}
}

// Get retrieves a converter by name; an empty name selects DefaultEngine.
func (r *Registry) Get(name string) (Converter, error) {
	if name == "" {
		name = DefaultEngine
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.converters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, name)
	}
	return conv, nil
}

// List returns the sorted engine names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an engine is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.converters[name]
	return ok
}
