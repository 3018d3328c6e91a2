// Package container provides the service container and the service provider
// lifecycle the application is assembled with.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&providers.FormsServiceProvider{})
//  3. Boot: registry.Boot(); safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
//	// Transient: new instance every Make
//	c.Bind("forms.handler", func(c *container.Container) any { return forms.NewHandler(...) })
//
//	// Singleton: created once, reused
//	c.Singleton("forms", func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    return forms.NewManager(nil, nil, forms.WithMaxSessions(cfg.Forms.MaxSessions))
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("forms", "forms.manager")
//
// # Resolving
//
//	raw := c.Make("forms")                                  // panics when unbound
//	manager := container.Resolve[*forms.Manager](c, "forms") // typed
//	manager, err := container.TryResolve[*forms.Manager](c, "forms")
//
// # Extend
//
//	c.Extend("validation.rules", func(instance any, c *container.Container) any {
//	    reg := instance.(*validation.Registry)
//	    _ = reg.SetMessage(validation.RuleRequired, "Please fill in this field")
//	    return reg
//	})
//
// # Deferred Providers
//
//	type RulesProvider struct{ container.BaseProvider }
//
//	func (p *RulesProvider) IsDeferred() bool   { return true }
//	func (p *RulesProvider) Provides() []string { return []string{"validation.rules"} }
//	func (p *RulesProvider) Register(app *container.Container) {
//	    app.Singleton("validation.rules", func(c *container.Container) any {
//	        return validation.DefaultRegistry() // only built on first Make
//	    })
//	}
package container
