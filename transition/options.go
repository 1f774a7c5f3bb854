package transition

// Option configures a Controller.
type Option func(*Controller)

// WithName labels the controller's element in logs, spans and metrics.
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

// WithID overrides the generated controller ID.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithStyleFunc replaces MapStyles as the style-mapping collaborator.
func WithStyleFunc(fn StyleFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.styles = fn
		}
	}
}

// WithTimingFunction sets the timing function used when CurrentStyle is
// called without one.
func WithTimingFunction(timingFunction string) Option {
	return func(c *Controller) {
		if timingFunction != "" {
			c.timingFunction = timingFunction
		}
	}
}

// WithCallbacks sets the lifecycle callbacks.
func WithCallbacks(callbacks Callbacks) Option {
	return func(c *Controller) {
		c.callbacks = callbacks
	}
}

// WithLogger sets the activity logger. A nil logger silences the controller.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger == nil {
			c.logger = nopLogger{}

			return
		}

		c.logger = logger
	}
}

// WithReducedMotion seeds the reduced-motion flag CurrentStyle uses before
// the first request. Every request replaces it.
func WithReducedMotion(reduced bool) Option {
	return func(c *Controller) {
		c.reducedMotion = reduced
	}
}
