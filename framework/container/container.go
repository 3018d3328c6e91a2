package container

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var ErrNotBound = errors.New("container: no binding registered")

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool
}

// Extender wraps an already-resolved instance with decorator logic.
type Extender func(instance any, c *Container) any

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the service container the application is assembled in.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Resolve (generic)
//   - Extend (decorate resolved instances)
//   - Defer (lazy registration on first resolution)
//   - AfterResolving callbacks
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// abstract → resolved singleton instance
	instances map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string

	// abstract → Extender funcs
	extenders map[string][]Extender

	// abstract → loader run once before its first resolution
	loaders map[string]func()

	afterResolving []func(string, any)
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		extenders: make(map[string][]Extender),
		loaders:   make(map[string]func()),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Make builds a new value.
//
//	c.Bind("forms.handler", func(c *container.Container) any {
//	    return forms.NewHandler(container.Resolve[*forms.Manager](c, "forms"), nil)
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton("validation.rules", func(c *container.Container) any {
//	    return validation.DefaultRegistry()
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
//
//	c.Instance("config", cfg)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// bind is the internal registration helper (must hold mu.Lock).
func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	key := c.canonical(abstract)
	// a rebound singleton is rebuilt by the new factory
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
//
//	c.Alias("forms", "forms.manager")
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// Extend decorates the instance of an abstract each time it is built.
// Already cached singletons are decorated in place.
//
//	c.Extend("validation.rules", func(instance any, c *container.Container) any {
//	    reg := instance.(*validation.Registry)
//	    _ = reg.Register(usernameRule)
//	    return reg
//	})
func (c *Container) Extend(abstract string, fn Extender) {
	c.mu.Lock()
	key := c.canonical(abstract)
	inst, cached := c.instances[key]
	if !cached {
		c.extenders[key] = append(c.extenders[key], fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	inst = fn(inst, c)

	c.mu.Lock()
	c.instances[key] = inst
	c.mu.Unlock()
}

// Defer registers load to run once, right before abstract is first resolved.
// Deferred service providers use it to register their bindings lazily.
func (c *Container) Defer(abstract string, load func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders[c.canonical(abstract)] = load
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container. It panics with an error
// wrapping ErrNotBound when nothing is registered; use Resolve for a typed
// result or TryMake to get the error.
func (c *Container) Make(abstract string) any {
	instance, err := c.TryMake(abstract)
	if err != nil {
		panic(err)
	}
	return instance
}

// TryMake is like Make but returns the error.
func (c *Container) TryMake(abstract string) (any, error) {
	c.mu.Lock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.Unlock()
		return inst, nil
	}
	load, deferred := c.loaders[key]
	delete(c.loaders, key)
	c.mu.Unlock()

	if deferred {
		load()
	}

	c.mu.RLock()
	inst, cached := c.instances[key]
	b, bound := c.bindings[key]
	c.mu.RUnlock()

	switch {
	case cached:
		return inst, nil
	case !bound:
		return nil, fmt.Errorf("%w: [%s]", ErrNotBound, abstract)
	}
	return c.build(key, b), nil
}

// build runs a factory, applies extenders and caches singletons.
func (c *Container) build(key string, b *binding) any {
	instance := b.factory(c)

	c.mu.RLock()
	exts := slices.Clone(c.extenders[key])
	c.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, c)
	}

	if b.singleton {
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	}

	c.fireAfterResolving(key, instance)
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether an abstract has been registered, lazily or not.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	_, hasLoader := c.loaders[key]
	return hasBinding || hasInstance || hasLoader
}

// Bindings returns the registered abstract keys, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances)+len(c.loaders))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	for k := range c.loaders {
		if _, ok := c.bindings[k]; !ok {
			if _, ok := c.instances[k]; !ok {
				out = append(out, k)
			}
		}
	}
	slices.Sort(out)
	return out
}

// canonical resolves an alias to its canonical key.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired each time a factory builds an
// instance.
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := slices.Clone(c.afterResolving)
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result. It panics on a missing
// binding or a type mismatch.
//
//	manager := container.Resolve[*forms.Manager](c, "forms")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is like Resolve but returns an error instead of panicking.
func TryResolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.TryMake(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, want %T", abstract, instance, zero)
	}
	return typed, nil
}
