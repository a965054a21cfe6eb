package php

// Body renders the statements of a method body. The emitter has already
// indented the writer one level inside the method braces when Render is called.
type Body interface {
	Render(w *Writer)
}

// Lines is a body of verbatim statements, one per line.
type Lines []string

// Render implements Body.
func (l Lines) Render(w *Writer) { w.WriteLines(l...) }

// Block is a statement that opens a nested block, such as a closure passed to
// a call, renders its body one level deeper and closes it.
type Block struct {
	Open  string
	Body  Body
	Close string
}

// Render implements Body.
func (b Block) Render(w *Writer) {
	w.WriteLine(b.Open)
	if b.Body != nil {
		w.Indent()
		b.Body.Render(w)
		w.Outdent()
	}
	w.WriteLine(b.Close)
}

// Seq renders several bodies one after another.
type Seq []Body

// Render implements Body.
func (s Seq) Render(w *Writer) {
	for _, b := range s {
		b.Render(w)
	}
}

// BodyFunc adapts a plain function to Body, for bodies that do not fit the
// declarative forms above.
type BodyFunc func(w *Writer)

// Render implements Body.
func (f BodyFunc) Render(w *Writer) { f(w) }
