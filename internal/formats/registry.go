package formats

import (
	"fmt"
	"strings"
)

// Registry holds the registered format definitions. Formats are registered
// once at startup and read-only afterwards.
type Registry struct {
	formats []Format
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a format definition. It returns an error on a duplicate
// name; the registry is the single source of truth for detection.
func (r *Registry) Register(f Format) error {
	for _, existing := range r.formats {
		if strings.EqualFold(existing.Name(), f.Name()) {
			return fmt.Errorf("duplicate format name: %s", f.Name())
		}
	}
	r.formats = append(r.formats, f)
	return nil
}

// Formats returns the registered formats in registration order.
func (r *Registry) Formats() []Format {
	return r.formats
}

// Get returns the format with the given name, or nil.
func (r *Registry) Get(name string) Format {
	for _, f := range r.formats {
		if strings.EqualFold(f.Name(), name) {
			return f
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Format{Chase{}, Generic{}, DebitCredit{}, Headerless{}} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}
