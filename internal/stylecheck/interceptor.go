package stylecheck

// Processor is the styling engine's CSS-processing entry point
type Processor interface {
	Process(selector, css string) (string, error)
}

// ProcessFunc is a processor the engine invokes as a plain function
type ProcessFunc func(selector, css string) (string, error)

// Process calls f(selector, css)
func (f ProcessFunc) Process(selector, css string) (string, error) {
	return f(selector, css)
}

// Factory builds processor instances for engines that construct their processor
type Factory func() Processor

// Collector receives every fragment a wrapped processor sees
type Collector func(selector, css string)

// interceptor reports each call to collect, then delegates to the real processor
type interceptor struct {
	next    Processor
	collect Collector
}

// Intercept wraps one processor instance. Output and errors of the wrapped
// processor are returned unchanged.
func Intercept(p Processor, collect Collector) Processor {
	return &interceptor{next: p, collect: collect}
}

func (i *interceptor) Process(selector, css string) (string, error) {
	i.collect(selector, css)
	return i.next.Process(selector, css)
}

// Unwrap returns the real processor, for callers that need its extra methods
// (plugin registration and the like).
func (i *interceptor) Unwrap() Processor {
	return i.next
}

// InterceptFunc is the plain-call entry point
func InterceptFunc(fn ProcessFunc, collect Collector) ProcessFunc {
	return func(selector, css string) (string, error) {
		collect(selector, css)
		return fn(selector, css)
	}
}

// InterceptFactory is the constructor-style entry point: every processor the
// factory builds is wrapped.
func InterceptFactory(f Factory, collect Collector) Factory {
	return func() Processor {
		return Intercept(f(), collect)
	}
}

// Unwrap peels interceptors off p until it reaches the real processor
func Unwrap(p Processor) Processor {
	for {
		u, ok := p.(interface{ Unwrap() Processor })
		if !ok {
			return p
		}
		p = u.Unwrap()
	}
}
