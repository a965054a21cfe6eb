package php

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is rendered inside methods without a body.
const Placeholder = "// Your code goes here..."

// Header opens every emitted file.
const Header = "<?php"

// Render emits c into a fresh writer indenting with unit and returns the text.
func Render(c *Class, unit string) string {
	w := NewWriter(unit)
	Emit(w, c)
	return w.String()
}

// Emit writes the source of c to w. The output layout is fixed: header,
// imports, signature, traits, fields, methods and the closing brace.
func Emit(w *Writer, c *Class) {
	w.WriteLine(Header)
	w.WriteLine("")
	for _, imp := range c.Imports {
		w.WriteLine("use " + imp + ";")
	}
	w.WriteLine("")

	w.WriteLine(signature(c))
	w.WriteLine("{")
	w.Indent()
	if len(c.Traits) > 0 {
		w.WriteLine("use " + strings.Join(c.Traits, ", ") + ";")
		w.WriteLine("")
	}
	for _, f := range c.Fields {
		docBlock(w, f.Description, f.Returns)
		emitField(w, f)
		w.WriteLine("")
	}
	for _, m := range c.Methods {
		docBlock(w, m.Description, m.Returns)
		emitMethod(w, m)
		w.WriteLine("")
	}
	w.Outdent()
	w.WriteLine("}")
}

func signature(c *Class) string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(c.Name)
	if len(c.Extends) > 0 {
		b.WriteString(" extends ")
		b.WriteString(strings.Join(c.Extends, ","))
	}
	if len(c.Implements) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(c.Implements, ","))
	}
	return b.String()
}

// docBlock is written only for documented members.
func docBlock(w *Writer, description string, returns []Return) {
	if description == "" {
		return
	}
	w.WriteLine("/**")
	w.WriteLine(" * " + description)
	w.WriteLine(" *")
	for _, r := range returns {
		w.WriteLine(" * @return " + r.Type)
	}
	w.WriteLine(" */")
}

func emitMethod(w *Writer, m *Method) {
	w.WriteLine(fmt.Sprintf("%s function %s(%s)", m.Visibility, m.Name, strings.Join(m.Params, ", ")))
	w.WriteLine("{")
	w.Indent()
	if m.Body == nil {
		w.WriteLine(Placeholder)
	} else {
		m.Body.Render(w)
	}
	w.Outdent()
	w.WriteLine("}")
}

func emitField(w *Writer, f *Field) {
	decl := fmt.Sprintf("%s $%s = ", f.Visibility, f.Name)
	if !f.Value.list {
		var v any
		if len(f.Value.items) > 0 {
			v = f.Value.items[0]
		}
		w.WriteLine(decl + Literal(v) + ";")
		return
	}
	w.WriteLine(decl + "[")
	w.Indent()
	for _, v := range f.Value.items {
		w.WriteLine(Literal(v) + ",")
	}
	w.Outdent()
	w.WriteLine("];")
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// Literal renders a scalar as a PHP literal: strings double-quoted, numbers
// bare, booleans as true/false and nil as null.
func Literal(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return `"` + quoter.Replace(v) + `"`
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case fmt.Stringer:
		return `"` + quoter.Replace(v.String()) + `"`
	default:
		return fmt.Sprint(v)
	}
}
