// Package tag holds the free-form annotations that drive conditional code
// generation, and the extractor that turns a list of them into a lookup.
//
// A tag is a name plus an arbitrary bag of parameters. In description files
// it is written as a flat object:
//
//	tags:
//	  - name: default
//	    value: "'active'"
//	  - name: onDelete
//	    value: set null
package tag

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKey is the parameter most tags carry their payload in.
const ValueKey = "value"

// Params are the parameters of a tag, everything but its name.
type Params map[string]any

// String returns the parameter stored under key rendered as text.
// Missing or nil parameters yield the empty string.
func (p Params) String(key string) string {
	if p == nil {
		return ""
	}
	return text(p[key])
}

// Value returns the "value" parameter rendered as text.
func (p Params) Value() string { return p.String(ValueKey) }

// Tag is a single annotation attached to an entity, column or relationship end.
type Tag struct {
	Name   string
	Params Params
}

// New returns a tag with the given name and "value" parameter.
func New(name string, value any) Tag {
	return Tag{Name: name, Params: Params{ValueKey: value}}
}

// MarshalJSON encodes the tag as a flat object.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.flatten())
}

// UnmarshalJSON decodes a flat object, splitting the name from the parameters.
func (t *Tag) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	return t.split(m)
}

// MarshalYAML encodes the tag as a flat mapping.
func (t Tag) MarshalYAML() (any, error) {
	return t.flatten(), nil
}

// UnmarshalYAML decodes a flat mapping, splitting the name from the parameters.
func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}
	return t.split(m)
}

func (t Tag) flatten() map[string]any {
	m := make(map[string]any, len(t.Params)+1)
	for k, v := range t.Params {
		m[k] = v
	}
	m["name"] = t.Name
	return m
}

func (t *Tag) split(m map[string]any) error {
	name, ok := m["name"].(string)
	if !ok {
		return fmt.Errorf("tag: missing or non-string name in %v", m)
	}
	delete(m, "name")
	t.Name = name
	t.Params = Params(m)
	return nil
}

// Set is the result of Extract: tag names mapped to their parameters.
// Names keep the order of their first occurrence.
type Set struct {
	names  []string
	params map[string]Params
}

// Extract reduces tags left to right into a Set. A name seen twice keeps the
// position of its first occurrence and the parameters of its last.
func Extract(tags []Tag) *Set {
	s := &Set{params: make(map[string]Params, len(tags))}
	for _, t := range tags {
		if _, ok := s.params[t.Name]; !ok {
			s.names = append(s.names, t.Name)
		}
		p := make(Params, len(t.Params))
		for k, v := range t.Params {
			p[k] = v
		}
		s.params[t.Name] = p
	}
	return s
}

// Get returns the parameters of the named tag.
func (s *Set) Get(name string) (Params, bool) {
	p, ok := s.params[name]
	return p, ok
}

// Has reports whether the named tag is present.
func (s *Set) Has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// Value returns the "value" parameter of the named tag, or "" if absent.
func (s *Set) Value(name string) string {
	return s.params[name].Value()
}

// Names returns the tag names in first-occurrence order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of distinct tag names.
func (s *Set) Len() int { return len(s.names) }

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
