package php

import "strings"

// DefaultIndent is the indent unit used by NewWriter.
const DefaultIndent = "\t"

// Writer accumulates lines of text at a tracked indentation depth.
type Writer struct {
	buf    strings.Builder
	unit   string
	depth  int
	prefix string
}

// NewWriter returns a Writer indenting with unit; an empty unit means tab.
func NewWriter(unit string) *Writer {
	if unit == "" {
		unit = DefaultIndent
	}
	return &Writer{unit: unit}
}

// WriteLine appends text at the current depth followed by a newline.
// Empty lines carry no indentation.
func (w *Writer) WriteLine(text string) {
	if text != "" {
		w.buf.WriteString(w.prefix)
		w.buf.WriteString(text)
	}
	w.buf.WriteByte('\n')
}

// WriteLines appends each line with WriteLine.
func (w *Writer) WriteLines(lines ...string) {
	for _, l := range lines {
		w.WriteLine(l)
	}
}

// Indent increases the depth by one.
func (w *Writer) Indent() {
	w.depth++
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// Outdent decreases the depth by one. It panics at depth zero: an unbalanced
// outdent is a bug in the caller.
func (w *Writer) Outdent() {
	if w.depth == 0 {
		panic("php: Outdent called at depth zero")
	}
	w.depth--
	w.prefix = strings.Repeat(w.unit, w.depth)
}

// Depth returns the current indentation depth.
func (w *Writer) Depth() int { return w.depth }

// String returns all text written so far.
func (w *Writer) String() string { return w.buf.String() }

// Bytes returns all text written so far.
func (w *Writer) Bytes() []byte { return []byte(w.buf.String()) }
