package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/ledgrid/internal/module"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Options control how modules register themselves.
type Options struct {
	// FunctionModules asks modules that support it to register their
	// function-call variant instead of inlining their code.
	FunctionModules bool
	// Logger receives registration logs; nil means slog.Default.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithFunctionModules toggles function-call registration.
func WithFunctionModules(enabled bool) Option {
	return func(o *Options) { o.FunctionModules = enabled }
}

// WithLogger sets the logger registrations are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Registry holds all registered modules for a single application instance.
type Registry struct {
	modules map[string]module.Module
	opts    Options
}

// New creates and initializes a new Registry instance.
func New(opts ...Option) *Registry {
	r := &Registry{modules: make(map[string]module.Module)}
	for _, opt := range opts {
		opt(&r.opts)
	}
	if r.opts.Logger == nil {
		r.opts.Logger = slog.Default()
	}
	return r
}

// Options returns the options the registry was created with.
func (r *Registry) Options() Options {
	return r.opts
}

// Register binds key to m.
func (r *Registry) Register(key string, m module.Module) {
	if _, exists := r.modules[key]; exists {
		panic(fmt.Sprintf("module with key '%s' already registered", key))
	}
	r.opts.Logger.Debug("Registering module.", "key", key, "as_function", module.IsFunction(m))
	r.modules[key] = m
}

// Lookup resolves a module by key.
func (r *Registry) Lookup(key string) (module.Module, bool) {
	m, ok := r.modules[key]
	return m, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.modules))
	for k := range r.modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}
