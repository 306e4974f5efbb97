package stylecheck

import "sync"

// Window accumulates the fragments captured during one test.
// It is created per test by the lifecycle adapter; nesting is not supported.
type Window struct {
	mu        sync.Mutex
	fragments []Fragment
}

// NewWindow returns an empty window
func NewWindow() *Window {
	return &Window{}
}

// Collect appends a fragment. Its signature matches Collector so a window can be
// handed directly to the interceptor.
func (w *Window) Collect(selector, css string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fragments = append(w.fragments, Fragment{Selector: selector, CSS: css})
}

// Reset discards everything captured so far
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fragments = nil
}

// Drain returns the captured fragments in capture order and clears the window
func (w *Window) Drain() []Fragment {
	w.mu.Lock()
	defer w.mu.Unlock()
	drained := w.fragments
	w.fragments = nil
	return drained
}

// Len reports how many fragments are waiting to be linted
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.fragments)
}

// Intercept wraps p so every processed fragment lands in this window
func (w *Window) Intercept(p Processor) Processor {
	return Intercept(p, w.Collect)
}

// InterceptFunc wraps a plain-call processor so every processed fragment lands in this window
func (w *Window) InterceptFunc(fn ProcessFunc) ProcessFunc {
	return InterceptFunc(fn, w.Collect)
}

// InterceptFactory wraps a processor factory so every instance it builds reports to this window
func (w *Window) InterceptFactory(f Factory) Factory {
	return InterceptFactory(f, w.Collect)
}
