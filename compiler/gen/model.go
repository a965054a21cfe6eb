package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/laragen/compiler/php"
	"github.com/syssam/laragen/schema"
	"github.com/syssam/laragen/schema/tag"
)

// ModelTranslator builds Eloquent model classes from class entities.
type ModelTranslator struct {
	cfg *Config
}

// NewModelTranslator returns a translator using cfg; nil means defaults.
func NewModelTranslator(cfg *Config) *ModelTranslator {
	if cfg == nil {
		cfg, _ = NewConfig()
	}
	return &ModelTranslator{cfg: cfg}
}

// Name implements Translator.
func (*ModelTranslator) Name() string { return "model" }

// Translate implements Translator.
func (t *ModelTranslator) Translate(e *schema.Entity) (*Unit, error) {
	if e == nil || e.Name == "" {
		return nil, NewSchemaError("", "class without name", nil)
	}
	c, diags := t.Class(e)
	u := &Unit{
		Kind:        ModelUnit,
		Entity:      e.Name,
		Name:        c.Name + ".php",
		Class:       c,
		Diagnostics: diags,
	}
	u.render(t.cfg.Indent)
	return u, nil
}

// Class builds the model class of e. Entity tags without a table entry are
// ignored. Relation accessors are only added when enabled in the config; the
// returned errors are the associations that were skipped.
func (t *ModelTranslator) Class(e *schema.Entity) (*php.Class, []error) {
	c := php.NewClass(className(e.Name))
	c.AddImport(modelImport)

	tags := tag.Extract(e.Tags)
	for _, name := range tags.Names() {
		if imp, ok := ModelImport(name); ok {
			c.AddImport(imp)
		}
		if trait, ok := ModelTrait(name); ok {
			c.AddTrait(trait)
		}
	}
	if tags.Has(TagAuthenticatable) {
		c.AddExtend("Authenticatable")
	} else {
		c.AddExtend("Model")
	}

	c.AddField(php.NewField("fillable", php.Protected, php.Strings(Fillable(e)...), ""))

	if !t.cfg.Relations {
		return c, nil
	}
	rels, diags := Relations(e)
	for _, r := range rels {
		if imp, ok := ModelImport(r.Kind); ok && !c.HasImport(imp) {
			c.AddImport(imp)
		}
		c.AddMethod(r.Method())
	}
	return c, diags
}

// Fillable returns the names of the public attributes of e, in order.
func Fillable(e *schema.Entity) []string {
	names := make([]string, 0, len(e.Attributes))
	for _, a := range e.Attributes {
		if a == nil || !a.Public() {
			continue
		}
		names = append(names, a.Name)
	}
	return names
}

// Relation is an Eloquent relation accessor derived from an association.
type Relation struct {
	// Accessor is the method name, e.g. "posts".
	Accessor string
	// Kind is the Eloquent relation method: hasOne, hasMany, belongsTo or
	// belongsToMany.
	Kind string
	// Target is the related class.
	Target string
	// Key hints read from the association-end tags.
	ForeignKey   string
	LocalKey     string
	ForeignTable string
	LocalTable   string
}

// Method returns the accessor method of the relation.
func (r Relation) Method() *php.Method {
	m := php.NewMethod(r.Accessor, php.Public, fmt.Sprintf("Get the %s relation.", r.Accessor))
	m.AddReturn(className(r.Kind))
	m.SetBody(php.Lines{fmt.Sprintf("return $this->%s(%s);", r.Kind, strings.Join(r.args(), ", "))})
	return m
}

// args returns the call arguments: the related class, then the key hints the
// relation kind accepts. Trailing empty hints are dropped, inner ones are null.
func (r Relation) args() []string {
	hints := []string{r.ForeignKey, r.LocalKey}
	if r.Kind == TagBelongsToMany {
		hints = []string{r.ForeignTable, r.ForeignKey, r.LocalKey}
	}
	for len(hints) > 0 && hints[len(hints)-1] == "" {
		hints = hints[:len(hints)-1]
	}
	args := []string{r.Target + "::class"}
	for _, h := range hints {
		if h == "" {
			args = append(args, "null")
			continue
		}
		args = append(args, "'"+h+"'")
	}
	return args
}

// Relations derives the relation accessors of e from its associations.
// Each association contributes its end(s) pointing away from e, or both ends
// for a self-association. Associations not touching e are ignored; malformed
// ones are skipped and reported. Accessor names are unique: a symmetric
// self-association yields one accessor, and any other clash is skipped and
// reported.
func Relations(e *schema.Entity) ([]Relation, []error) {
	var (
		rels  []Relation
		diags []error
		// accessor name -> index of the association that declared it
		seen = make(map[string]int)
	)
	for i, a := range e.Associations {
		if a == nil || a.End1 == nil || a.End2 == nil {
			diags = append(diags, NewRelationError(e.Name, "", associationName(a, i), "association without both ends", nil))
			continue
		}
		if a.End1.Name == "" || a.End2.Name == "" {
			diags = append(diags, NewRelationError(e.Name, "", associationName(a, i), "association end without name", nil))
			continue
		}
		ends := [2]*schema.End{a.End1, a.End2}
		self := a.End1.Name == a.End2.Name
		if !self && a.End1.Name != e.Name && a.End2.Name != e.Name {
			continue
		}
		for j, other := range ends {
			if !self && other.Name == e.Name {
				continue
			}
			r, err := relation(ends[1-j], other)
			if err != nil {
				diags = append(diags, NewRelationError(e.Name, other.Name, associationName(a, i), "", err))
				continue
			}
			if prev, ok := seen[r.Accessor]; ok {
				if prev != i || r != rels[len(rels)-1] {
					msg := fmt.Sprintf("duplicate accessor %q", r.Accessor)
					diags = append(diags, NewRelationError(e.Name, other.Name, associationName(a, i), msg, nil))
				}
				continue
			}
			seen[r.Accessor] = i
			rels = append(rels, r)
		}
	}
	return rels, diags
}

func relation(own, other *schema.End) (Relation, error) {
	ownCard, ok := ParseMultiplicity(own.Multiplicity)
	if !ok {
		return Relation{}, fmt.Errorf("unknown multiplicity %q", own.Multiplicity)
	}
	otherCard, ok := ParseMultiplicity(other.Multiplicity)
	if !ok {
		return Relation{}, fmt.Errorf("unknown multiplicity %q", other.Multiplicity)
	}
	kind, _ := RelationKind(ownCard, otherCard)
	tags := tag.Extract(other.Tags)
	if override := tags.Value(TagRelation); isRelationKind(override) {
		kind = override
	}
	accessor := camel(other.Name)
	if kind == TagHasMany || kind == TagBelongsToMany {
		accessor = plural(accessor)
	}
	return Relation{
		Accessor:     accessor,
		Kind:         kind,
		Target:       className(other.Name),
		ForeignKey:   tags.Value(TagForeignKey),
		LocalKey:     tags.Value(TagLocalKey),
		ForeignTable: tags.Value(TagForeignTable),
		LocalTable:   tags.Value(TagLocalTable),
	}, nil
}

func isRelationKind(s string) bool {
	switch s {
	case TagHasOne, TagHasMany, TagBelongsTo, TagBelongsToMany:
		return true
	}
	return false
}

func associationName(a *schema.Association, i int) string {
	if a != nil && a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("association #%d", i)
}
