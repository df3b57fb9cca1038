package core

import (
	"fmt"
	"sort"
	"sync"
)

// FormatInfo describes an import format to clients.
type FormatInfo struct {
	Key        string `json:"key" yaml:"key"`
	Label      string `json:"label" yaml:"label"`
	SchemaFile string `json:"schema_file" yaml:"schema_file"`
}

// FormatDefinition binds a format key to its validator and assembler.
type FormatDefinition struct {
	Info      FormatInfo
	Validator DocumentValidator
	Assembler *Assembler
}

// Parse validates data and assembles its jobs. Nothing is assembled unless
// the document passed validation.
func (d FormatDefinition) Parse(data []byte) (*ParseResult, error) {
	doc, err := d.Validator.Validate(data)
	if err != nil {
		return nil, err
	}
	return d.Assembler.Assemble(doc)
}

// Registry holds the import formats known to the service.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]FormatDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]FormatDefinition)}
}

// Register adds a format definition.
// Panics if a format with the same key is already registered.
func (r *Registry) Register(def FormatDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[def.Info.Key]; exists {
		panic(fmt.Sprintf("format already registered: %s", def.Info.Key))
	}
	if def.Validator == nil || def.Assembler == nil {
		panic(fmt.Sprintf("format %s: validator and assembler are required", def.Info.Key))
	}

	r.formats[def.Info.Key] = def
}

// Get returns a format definition by key.
func (r *Registry) Get(key string) (FormatDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.formats[key]
	return def, ok
}

// All returns every registered format sorted by key.
func (r *Registry) All() []FormatDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]FormatDefinition, 0, len(r.formats))
	for _, def := range r.formats {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})
	return result
}

// Keys returns the registered format keys, sorted.
func (r *Registry) Keys() []string {
	all := r.All()
	keys := make([]string, len(all))
	for i, def := range all {
		keys[i] = def.Info.Key
	}
	return keys
}

// Count returns the number of registered formats.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.formats)
}

// Parse runs the named format's pipeline over data.
func (r *Registry) Parse(format string, data []byte) (*ParseResult, error) {
	def, ok := r.Get(format)
	if !ok {
		return nil, unsupportedFormat(format)
	}
	return def.Parse(data)
}
