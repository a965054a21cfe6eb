package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates an entity description that cannot be translated.
	ErrInvalidSchema = errors.New("laragen: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("laragen: missing configuration")
	// ErrUnmappedType indicates a column type without a Blueprint method.
	ErrUnmappedType = errors.New("laragen: unmapped column type")
	// ErrInvalidRelation indicates a malformed foreign key or association.
	ErrInvalidRelation = errors.New("laragen: invalid relation")
	// ErrGenerationFailed indicates a failure while writing generated files.
	ErrGenerationFailed = errors.New("laragen: code generation failed")
)

// SchemaError represents an entity-level error. It is the only error that
// aborts the translation of an entity.
type SchemaError struct {
	Entity  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("laragen: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(entity, message string, cause error) *SchemaError {
	return &SchemaError{
		Entity:  entity,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("laragen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("laragen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// MappingError reports a column whose type has no Blueprint method.
// The column is left out of the migration.
type MappingError struct {
	Entity string
	Column string
	Type   string
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("laragen: column type %q of %s.%s is not defined in laravel", e.Type, e.Entity, e.Column)
}

// Is reports whether the target matches the sentinel error for MappingError.
func (e *MappingError) Is(target error) bool {
	return target == ErrUnmappedType
}

// NewMappingError creates a new MappingError.
func NewMappingError(entity, column, typ string) *MappingError {
	return &MappingError{
		Entity: entity,
		Column: column,
		Type:   typ,
	}
}

// RelationError represents a foreign key or association that was skipped.
type RelationError struct {
	From    string
	To      string
	Name    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RelationError) Error() string {
	var b strings.Builder
	b.WriteString("laragen: relation error")
	if e.Name != "" {
		b.WriteString(" on ")
		b.WriteString(e.Name)
	}
	if e.From != "" && e.To != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.To)
	} else if e.From != "" {
		b.WriteString(" from ")
		b.WriteString(e.From)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RelationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RelationError.
func (e *RelationError) Is(target error) bool {
	return target == ErrInvalidRelation
}

// NewRelationError creates a new RelationError.
func NewRelationError(from, to, name, message string, cause error) *RelationError {
	return &RelationError{
		From:    from,
		To:      to,
		Name:    name,
		Message: message,
		Cause:   cause,
	}
}

// GenerationError represents a failure to persist a generated unit.
type GenerationError struct {
	Phase   string // "translate", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("laragen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsMappingError reports whether the error is a MappingError.
func IsMappingError(err error) bool {
	var mappingErr *MappingError
	return errors.As(err, &mappingErr)
}

// IsRelationError reports whether the error is a RelationError.
func IsRelationError(err error) bool {
	var relErr *RelationError
	return errors.As(err, &relErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
