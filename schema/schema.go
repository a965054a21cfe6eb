package schema

import (
	"fmt"

	"github.com/syssam/laragen/schema/tag"
)

// Kind discriminates the entity descriptions the host can hand over.
type Kind string

const (
	// KindTable is an ER-diagram table; it produces a migration.
	KindTable Kind = "table"
	// KindClass is a UML class; it produces a model.
	KindClass Kind = "class"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindTable || k == KindClass
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// Visibility values of class attributes.
const (
	Public    = "public"
	Protected = "protected"
	Private   = "private"
)

type (
	// Entity is one table or class description.
	Entity struct {
		Kind         Kind           `json:"kind" yaml:"kind"`
		Name         string         `json:"name" yaml:"name"`
		Columns      []*Column      `json:"columns,omitempty" yaml:"columns,omitempty"`
		Attributes   []*Attribute   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
		Associations []*Association `json:"associations,omitempty" yaml:"associations,omitempty"`
		Tags         []tag.Tag      `json:"tags,omitempty" yaml:"tags,omitempty"`
	}

	// Column is a table column.
	Column struct {
		Name       string     `json:"name" yaml:"name"`
		Type       string     `json:"type" yaml:"type"`
		Length     int        `json:"length,omitempty" yaml:"length,omitempty"`
		Nullable   bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
		Unique     bool       `json:"unique,omitempty" yaml:"unique,omitempty"`
		PrimaryKey bool       `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
		ForeignKey bool       `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
		Reference  *Reference `json:"reference,omitempty" yaml:"reference,omitempty"`
		Tags       []tag.Tag  `json:"tags,omitempty" yaml:"tags,omitempty"`
	}

	// Reference points a foreign-key column at the column it references.
	Reference struct {
		Table  string `json:"table" yaml:"table"`
		Column string `json:"column" yaml:"column"`
	}

	// Attribute is a class attribute.
	Attribute struct {
		Name       string    `json:"name" yaml:"name"`
		Type       string    `json:"type,omitempty" yaml:"type,omitempty"`
		Visibility string    `json:"visibility,omitempty" yaml:"visibility,omitempty"`
		Tags       []tag.Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
	}

	// Association is a structural relationship between two classes.
	Association struct {
		Name string `json:"name,omitempty" yaml:"name,omitempty"`
		End1 *End   `json:"end1" yaml:"end1"`
		End2 *End   `json:"end2" yaml:"end2"`
	}

	// End is one side of an association. Name is the class at that side.
	End struct {
		Name         string    `json:"name" yaml:"name"`
		Multiplicity string    `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
		Tags         []tag.Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
	}
)

// Validate checks the structural minimum of an entity description: a known
// kind and a name. Problems in single columns or tags are not reported here.
func (e *Entity) Validate() error {
	if e == nil {
		return fmt.Errorf("schema: nil entity")
	}
	if e.Name == "" {
		return fmt.Errorf("schema: entity without name")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("schema: entity %q has unknown kind %q", e.Name, e.Kind)
	}
	return nil
}

// Public reports whether the attribute is public. Attributes without an
// explicit visibility are public.
func (a *Attribute) Public() bool {
	return a.Visibility == "" || a.Visibility == Public
}

// References returns the tables this table references through foreign keys,
// in column order and without duplicates.
func (e *Entity) References() []string {
	var (
		refs []string
		seen = make(map[string]struct{})
	)
	for _, c := range e.Columns {
		if c == nil || !c.ForeignKey || c.Reference == nil || c.Reference.Table == "" {
			continue
		}
		if _, ok := seen[c.Reference.Table]; ok {
			continue
		}
		seen[c.Reference.Table] = struct{}{}
		refs = append(refs, c.Reference.Table)
	}
	return refs
}
