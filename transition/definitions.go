package transition

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"facette.io/natsort"
	"gopkg.in/yaml.v3"
)

// DefinitionsFile is the on-disk shape of a set of named transition
// definitions:
//
//	definitions:
//	  fade:
//	    transitionProperty: opacity
//	    in:  { opacity: "1" }
//	    out: { opacity: "0" }
type DefinitionsFile struct {
	Definitions map[string]Definition `json:"definitions" yaml:"definitions"`
}

// Definitions is a registry of named transition definitions supplied by the
// host. It is safe for concurrent use.
type Definitions struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewDefinitions creates an empty registry.
func NewDefinitions() *Definitions {
	return &Definitions{
		defs: make(map[string]Definition),
	}
}

// LoadDefinitions reads a YAML definitions file from disk.
func LoadDefinitions(path string) (*Definitions, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file %q: %w", path, err)
	}

	return LoadDefinitionsFromBytes(data)
}

// LoadDefinitionsFromBytes parses and validates YAML definitions.
func LoadDefinitionsFromBytes(data []byte) (*Definitions, error) {
	var file DefinitionsFile

	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}

	err = file.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	defs := NewDefinitions()

	for name, def := range file.Definitions {
		defs.defs[name] = def
	}

	return defs, nil
}

// Validate checks every definition in the file.
func (f *DefinitionsFile) Validate() error {
	if len(f.Definitions) == 0 {
		return ErrDefinitionsRequired
	}

	var errs []error

	for _, name := range sortedKeys(f.Definitions) {
		errs = append(errs, ValidateDefinition(name, f.Definitions[name]))
	}

	return errors.Join(errs...)
}

// ValidateDefinition checks a single named definition.
func ValidateDefinition(name string, def Definition) error {
	if strings.TrimSpace(name) == "" {
		return ErrDefinitionNameRequired
	}

	if len(def.In) == 0 && len(def.Out) == 0 {
		return WrapDefinitionError(name, ErrDefinitionEmpty)
	}

	for _, styles := range []Style{def.Common, def.In, def.Out} {
		for prop := range styles {
			if isReservedProperty(prop) {
				return WrapDefinitionError(name, fmt.Errorf("%w: %s", ErrReservedProperty, prop))
			}
		}
	}

	return nil
}

// isReservedProperty reports whether prop is computed by MapStyles and so
// must not appear in a definition's style maps.
func isReservedProperty(prop string) bool {
	switch prop {
	case PropertyTransitionDuration, PropertyTransitionTimingFunction, PropertyTransitionProperty:
		return true
	default:
		return false
	}
}

// Register adds or replaces a definition after validating it.
func (d *Definitions) Register(name string, def Definition) error {
	err := ValidateDefinition(name, def)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.defs[name] = def

	return nil
}

// Lookup returns the definition registered under name.
func (d *Definitions) Lookup(name string) (Definition, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	def, ok := d.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q (available: %v)", ErrDefinitionNotFound, name, sortedKeys(d.defs))
	}

	return def, nil
}

// Names returns the registered names in natural order, so "slide-2" comes
// before "slide-10".
func (d *Definitions) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return sortedKeys(d.defs)
}

func sortedKeys(m map[string]Definition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	natsort.Sort(keys)

	return keys
}
