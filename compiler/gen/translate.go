package gen

import (
	"github.com/syssam/laragen/compiler/php"
	"github.com/syssam/laragen/schema"
)

// Translator maps one entity description to one generated unit.
type Translator interface {
	// Name returns the translator's identifier ("migration", "model").
	Name() string

	// Translate builds the class for e and renders it. Per-column and
	// per-relation problems are reported in Unit.Diagnostics; only an entity
	// that cannot be translated at all returns an error.
	Translate(e *schema.Entity) (*Unit, error)
}

// Kind of a generated unit.
type Kind uint8

const (
	MigrationUnit Kind = iota + 1
	ModelUnit
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case MigrationUnit:
		return "migration"
	case ModelUnit:
		return "model"
	default:
		return "unknown"
	}
}

// Unit is one generated file.
type Unit struct {
	Kind Kind
	// Entity is the name of the source entity.
	Entity string
	// Name is the file name, extension included.
	Name string
	// Class is the model the source was rendered from.
	Class *php.Class
	// Source is the rendered PHP.
	Source []byte
	// Diagnostics are the non-fatal problems met while translating.
	Diagnostics []error
}

// render fills Source from Class.
func (u *Unit) render(indent string) {
	u.Source = []byte(php.Render(u.Class, indent))
}
