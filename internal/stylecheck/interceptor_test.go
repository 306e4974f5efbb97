package stylecheck

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	plugins []string
}

func (p *recordingProcessor) Process(selector, css string) (string, error) {
	return selector + "{" + css + "}", nil
}

func (p *recordingProcessor) Use(name string) {
	p.plugins = append(p.plugins, name)
}

func TestInterceptCollectsThenDelegates(t *testing.T) {
	w := NewWindow()
	p := w.Intercept(&recordingProcessor{})

	out, err := p.Process(".a", "color: red;")
	require.NoError(t, err)
	assert.Equal(t, ".a{color: red;}", out)

	out, err = p.Process("", "body { margin: 0; }")
	require.NoError(t, err)
	assert.Equal(t, "{body { margin: 0; }}", out)

	assert.Equal(t, []Fragment{
		{Selector: ".a", CSS: "color: red;"},
		{Selector: "", CSS: "body { margin: 0; }"},
	}, w.Drain())
}

func TestInterceptReturnsProcessorErrors(t *testing.T) {
	boom := errors.New("boom")
	w := NewWindow()
	fn := w.InterceptFunc(func(selector, css string) (string, error) {
		return "partial", boom
	})

	out, err := fn(".a", "color: red;")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", out)
	assert.Equal(t, 1, w.Len(), "the fragment is captured before delegating")
}

func TestInterceptFactoryWrapsEveryInstance(t *testing.T) {
	w := NewWindow()
	built := 0
	factory := w.InterceptFactory(func() Processor {
		built++
		return &recordingProcessor{}
	})

	first := factory()
	second := factory()
	assert.Equal(t, 2, built)

	_, err := first.Process(".a", "a: 1;")
	require.NoError(t, err)
	_, err = second.Process(".b", "b: 2;")
	require.NoError(t, err)

	assert.Equal(t, []Fragment{
		{Selector: ".a", CSS: "a: 1;"},
		{Selector: ".b", CSS: "b: 2;"},
	}, w.Drain())
}

func TestUnwrapReachesTheRealProcessor(t *testing.T) {
	inner := &recordingProcessor{}
	wrapped := Intercept(Intercept(inner, func(string, string) {}), func(string, string) {})

	up, ok := Unwrap(wrapped).(*recordingProcessor)
	require.True(t, ok)
	up.Use("prefixer")
	assert.Equal(t, []string{"prefixer"}, inner.plugins)

	assert.Same(t, inner, Unwrap(inner))
}

func TestProcessFuncIsAProcessor(t *testing.T) {
	var p Processor = ProcessFunc(func(selector, css string) (string, error) {
		return selector + css, nil
	})
	out, err := p.Process("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestWindow(t *testing.T) {
	w := NewWindow()
	assert.Zero(t, w.Len())
	assert.Empty(t, w.Drain())

	w.Collect(".a", "x")
	w.Collect(".b", "y")
	assert.Equal(t, 2, w.Len())

	w.Reset()
	assert.Zero(t, w.Len())

	w.Collect(".c", "z")
	drained := w.Drain()
	assert.Equal(t, []Fragment{{Selector: ".c", CSS: "z"}}, drained)
	assert.Zero(t, w.Len(), "drain clears the window")
}

func TestWindowConcurrentCollect(t *testing.T) {
	w := NewWindow()
	p := w.Intercept(&recordingProcessor{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Process(".a", "color: red;")
		}()
	}
	wg.Wait()

	assert.Len(t, w.Drain(), 50)
}
