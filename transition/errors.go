package transition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDefinition indicates that a transition definition failed validation.
	ErrInvalidDefinition = errors.New("invalid transition definition")
	// ErrDefinitionNotFound indicates that no definition is registered under a name.
	ErrDefinitionNotFound = errors.New("transition definition not found")
	// ErrDefinitionNameRequired indicates that a definition was given an empty name.
	ErrDefinitionNameRequired = errors.New("definition name is required")
	// ErrDefinitionEmpty indicates that a definition declares neither in nor out styles.
	ErrDefinitionEmpty = errors.New("definition must declare in or out styles")
	// ErrDefinitionsRequired indicates that a definitions file declares nothing.
	ErrDefinitionsRequired = errors.New("at least one definition is required")
	// ErrReservedProperty indicates that a definition sets a property the style
	// mapping owns.
	ErrReservedProperty = errors.New("property is reserved")
)

// DefinitionError wraps an error with the name of the offending definition.
type DefinitionError struct {
	Name string
	Err  error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("definition %s: %v", e.Name, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// WrapDefinitionError wraps an error with definition context.
func WrapDefinitionError(name string, err error) error {
	if err == nil {
		return nil
	}

	return &DefinitionError{
		Name: name,
		Err:  err,
	}
}
