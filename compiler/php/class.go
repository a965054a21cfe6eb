package php

// Visibility of a class member.
type Visibility string

// Member visibilities.
const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// The following types make up the intermediate model of one generated class.
// A Class is built by a single translator and only read by the emitter.
type (
	// Class is a PHP class declaration.
	Class struct {
		// Name of the class. Must not be empty.
		Name string
		// Imports holds the "use" statements, without the keyword and the
		// trailing semicolon. Duplicates are kept.
		Imports []string
		// Extends holds the parent types, rendered comma-joined.
		Extends []string
		// Implements holds the implemented interfaces.
		Implements []string
		// Traits holds the traits used inside the class body.
		Traits []string
		// Fields in declaration order.
		Fields []*Field
		// Methods in declaration order.
		Methods []*Method
	}

	// Method is a class method.
	Method struct {
		Name        string
		Visibility  Visibility
		Description string
		// Params are rendered verbatim, e.g. "$request" or "Request $request".
		Params  []string
		Returns []Return
		// Body renders the statements; nil renders a placeholder comment.
		Body Body
	}

	// Field is a class property.
	Field struct {
		Name        string
		Visibility  Visibility
		Description string
		Returns     []Return
		Value       Value
	}

	// Return is a documented return (or property) type.
	Return struct {
		Type string
	}
)

// NewClass returns an empty class with the given name.
func NewClass(name string) *Class {
	return &Class{Name: name}
}

// AddImport appends a "use" statement.
func (c *Class) AddImport(imp string) { c.Imports = append(c.Imports, imp) }

// AddExtend appends a parent type.
func (c *Class) AddExtend(typ string) { c.Extends = append(c.Extends, typ) }

// AddImplement appends an implemented interface.
func (c *Class) AddImplement(iface string) { c.Implements = append(c.Implements, iface) }

// AddTrait appends a trait.
func (c *Class) AddTrait(trait string) { c.Traits = append(c.Traits, trait) }

// AddField appends a field.
func (c *Class) AddField(f *Field) { c.Fields = append(c.Fields, f) }

// AddMethod appends a method.
func (c *Class) AddMethod(m *Method) { c.Methods = append(c.Methods, m) }

// HasImport reports whether imp was already added.
func (c *Class) HasImport(imp string) bool {
	for _, i := range c.Imports {
		if i == imp {
			return true
		}
	}
	return false
}

// NewMethod returns a method without parameters and body.
func NewMethod(name string, vis Visibility, description string) *Method {
	return &Method{Name: name, Visibility: vis, Description: description}
}

// AddParam appends a parameter.
func (m *Method) AddParam(param string) { m.Params = append(m.Params, param) }

// AddReturn appends a documented return type.
func (m *Method) AddReturn(typ string) { m.Returns = append(m.Returns, Return{Type: typ}) }

// SetBody sets the body strategy.
func (m *Method) SetBody(b Body) { m.Body = b }

// NewField returns a field holding v.
func NewField(name string, vis Visibility, v Value, description string) *Field {
	return &Field{Name: name, Visibility: vis, Value: v, Description: description}
}

// Value is the initial value of a field: a single scalar or an ordered list
// of scalars rendered as an array literal. Scalars are strings, numbers,
// booleans or nil.
type Value struct {
	items []any
	list  bool
}

// Scalar returns a single-valued Value.
func Scalar(v any) Value { return Value{items: []any{v}} }

// List returns an array Value holding vs in order.
func List(vs ...any) Value {
	return Value{items: append([]any(nil), vs...), list: true}
}

// Strings returns an array Value of strings.
func Strings(vs ...string) Value {
	items := make([]any, len(vs))
	for i, v := range vs {
		items[i] = v
	}
	return Value{items: items, list: true}
}

// IsList reports whether the value is an array.
func (v Value) IsList() bool { return v.list }

// Items returns the scalars of the value. A scalar value has exactly one item;
// the zero Value has none and renders as null.
func (v Value) Items() []any { return append([]any(nil), v.items...) }

// Append adds an item, turning the value into a list if it held a scalar.
func (v Value) Append(item any) Value {
	return Value{items: append(v.Items(), item), list: true}
}
