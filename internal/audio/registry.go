package audio

import (
	"strings"
	"sync"

	"github.com/example/go-wavtone/internal/sample"
)

// Encoder encodes tones in one fixed sample format.
type Encoder interface {
	Format() sample.Format
	Encode(p Params) ([]byte, error)
	EncodeSignal(p Params, raw []float32) ([]byte, error)
}

type codecEncoder[T any] struct {
	codec sample.Codec[T]
}

// NewEncoder binds Encode to codec c.
func NewEncoder[T any](c sample.Codec[T]) Encoder {
	return codecEncoder[T]{codec: c}
}

func (e codecEncoder[T]) Format() sample.Format { return e.codec }

func (e codecEncoder[T]) Encode(p Params) ([]byte, error) { return Encode(e.codec, p) }

func (e codecEncoder[T]) EncodeSignal(p Params, raw []float32) ([]byte, error) {
	return EncodeSignal(e.codec, p, raw)
}

// Registry maps format names to encoders, in registration order.
type Registry struct {
	encoders map[string]Encoder
	order    []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]Encoder),
		mtx:      &sync.Mutex{},
	}
}

// DefaultRegistry returns a registry holding every built-in sample format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewEncoder(sample.Uint8))
	r.Register(NewEncoder(sample.Uint16))
	r.Register(NewEncoder(sample.Int16))
	r.Register(NewEncoder(sample.Uint24))
	r.Register(NewEncoder(sample.Int24))
	r.Register(NewEncoder(sample.Uint32))
	r.Register(NewEncoder(sample.Int32))
	r.Register(NewEncoder(sample.Float32))

	return r
}

// Register adds e under its format name, replacing any previous encoder with
// the same name.
func (r *Registry) Register(e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	name := e.Format().Name()
	if _, exists := r.encoders[name]; !exists {
		r.order = append(r.order, name)
	}
	r.encoders[name] = e
}

// Get resolves name, accepting the aliases known to sample.Lookup.
func (r *Registry) Get(name string) (Encoder, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, err := sample.Lookup(key); err == nil {
		key = f.Name()
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.encoders[key]
	return e, ok
}

func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return append([]string(nil), r.order...)
}

// Encoders returns the registered encoders in registration order.
func (r *Registry) Encoders() []Encoder {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]Encoder, len(r.order))
	for i, name := range r.order {
		out[i] = r.encoders[name]
	}

	return out
}
