package sheet

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
)

// Factory builds the engine's processor
type Factory func() Processor

// Component is a defined styled component
type Component struct {
	ID   string // "<fileHash>__<Name>-<idHash>", or "<Name>-<idHash>" without a file
	Name string
}

// Engine defines components and renders their styles into a Document
type Engine struct {
	processor Processor
	doc       *Document

	mu       sync.Mutex
	defined  map[string]int
	rendered map[string]bool // by class hash
}

// NewEngine builds the processor once from factory. A nil factory selects
// NewCompiler.
func NewEngine(factory Factory) *Engine {
	if factory == nil {
		factory = NewCompiler
	}
	return &Engine{
		processor: factory(),
		doc:       &Document{},
		defined:   make(map[string]int),
		rendered:  make(map[string]bool),
	}
}

// Processor returns the processor the engine renders with
func (e *Engine) Processor() Processor {
	return e.processor
}

// Document returns the rendered document
func (e *Engine) Document() *Document {
	return e.doc
}

// Define registers a component declared in file. Names are sanitized to
// letters and digits, and defining the same name twice in one file yields
// distinct IDs.
func (e *Engine) Define(file, name string) *Component {
	name = sanitizeName(name)
	if name == "" {
		name = "styled"
	}

	e.mu.Lock()
	key := file + "\x00" + name
	count := e.defined[key]
	e.defined[key] = count + 1
	e.mu.Unlock()

	id := name + "-" + alphabeticHash(fmt.Sprintf("%s:%s:%d", file, name, count))
	if file != "" {
		id = alphabeticHash(file) + "__" + id
	}
	return &Component{ID: id, Name: name}
}

// Render processes css for c and returns the class name to apply. Each
// distinct CSS yields its own class hash and style block.
func (e *Engine) Render(c *Component, css string) (string, error) {
	hash := alphabeticHash(c.ID + css)

	e.mu.Lock()
	done := e.rendered[hash]
	e.mu.Unlock()
	if done {
		return hash, nil
	}

	compiled, err := e.processor.Process("."+hash, css)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", c.ID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.rendered[hash] {
		e.rendered[hash] = true
		e.doc.add(hash, fmt.Sprintf("/* sc-component-id: %s */\n.%s {}%s", c.ID, c.ID, compiled))
	}
	return hash, nil
}

// Reset forgets every rendered style, so the next render of any CSS is
// processed again. Defined components stay valid.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.rendered = make(map[string]bool)
	e.mu.Unlock()
	e.doc.Reset()
}

// Global processes a stylesheet that is not scoped to any component
func (e *Engine) Global(css string) error {
	compiled, err := e.processor.Process("", css)
	if err != nil {
		return fmt.Errorf("render global styles: %w", err)
	}
	e.doc.add("", compiled)
	return nil
}

// Document collects rendered style blocks
type Document struct {
	mu     sync.Mutex
	hashes []string
	blocks []string
}

func (d *Document) add(hash, block string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if hash != "" {
		d.hashes = append(d.hashes, hash)
	}
	d.blocks = append(d.blocks, block)
}

// HTML renders the document as a single <style> tag listing every class hash
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.blocks) == 0 {
		return ""
	}
	return fmt.Sprintf(`<style data-styled-components="%s">%s</style>`,
		strings.Join(d.hashes, " "), strings.Join(d.blocks, ""))
}

// Reset empties the document
func (d *Document) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hashes = nil
	d.blocks = nil
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// alphabeticHash renders the FNV-1a hash of s in letters only, so hashes are
// valid class names and never contain "-" or "_".
func alphabeticHash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	n := h.Sum32()

	var b []byte
	for n >= uint32(len(alphabet)) {
		b = append(b, alphabet[n%uint32(len(alphabet))])
		n /= uint32(len(alphabet))
	}
	b = append(b, alphabet[n])
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
