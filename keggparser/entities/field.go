package entities

import (
	"bytes"
	"encoding/json"
)

// FieldKind discriminates between the two value shapes a normalized tag can
// produce.
type FieldKind int

const (
	// FieldScalar is a single trimmed string.
	FieldScalar FieldKind = iota
	// FieldList is an ordered list of strings.
	FieldList
)

// Field is the normalized value of one tag. Exactly one of Value or List is
// meaningful, selected by Kind.
type Field struct {
	Kind  FieldKind
	Value string
	List  []string
}

// Scalar wraps a single string value.
func Scalar(v string) Field {
	return Field{Kind: FieldScalar, Value: v}
}

// List wraps a list value.
func List(vs []string) Field {
	return Field{Kind: FieldList, List: vs}
}

// MarshalJSON renders the field as either a JSON string or a JSON array.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.Kind == FieldList {
		if f.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(f.List)
	}
	return json.Marshal(f.Value)
}

// Entry is a normalized flat-file record: an ordered mapping from tag to
// Field. Absent tags are simply missing keys.
type Entry struct {
	tags   []string
	fields map[string]Field
}

// NewEntry returns an empty Entry.
func NewEntry() *Entry {
	return &Entry{
		fields: make(map[string]Field),
	}
}

// Set stores a field under tag, keeping insertion order for new tags.
func (e *Entry) Set(tag string, f Field) {
	if _, exists := e.fields[tag]; !exists {
		e.tags = append(e.tags, tag)
	}
	e.fields[tag] = f
}

// Get returns the field stored under tag.
func (e *Entry) Get(tag string) (Field, bool) {
	f, ok := e.fields[tag]
	return f, ok
}

// Has reports whether tag is present.
func (e *Entry) Has(tag string) bool {
	_, ok := e.fields[tag]
	return ok
}

// Tags returns the tags in insertion order.
func (e *Entry) Tags() []string {
	return e.tags
}

// Len returns the number of tags in the entry.
func (e *Entry) Len() int {
	return len(e.tags)
}

// MarshalJSON renders the entry as a JSON object with tags in insertion
// order. encoding/json maps would sort keys alphabetically, which would
// lose the source record order.
func (e *Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tag := range e.tags {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tag)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.fields[tag])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
