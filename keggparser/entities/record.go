// Package entities defines the record, field and table types produced by the
// KEGG flat-file and TSV parsers.
package entities

// RawRecord is an ordered mapping from a flat-file tag to the raw value
// lines collected under that tag. Tags keep the order in which they were
// first seen. A tag carries one line per source line: the opening line plus
// any continuation lines below it.
type RawRecord struct {
	tags  []string
	lines map[string][]string
}

// NewRawRecord returns an empty RawRecord.
func NewRawRecord() *RawRecord {
	return &RawRecord{
		lines: make(map[string][]string),
	}
}

// Set opens a new entry for tag with first as its only line. If the tag was
// already present its lines are replaced; the KEGG format groups all lines
// of a tag contiguously, so a repeated tag is a fresh block, not an append.
func (r *RawRecord) Set(tag string, first string) {
	if _, exists := r.lines[tag]; !exists {
		r.tags = append(r.tags, tag)
	}
	r.lines[tag] = []string{first}
}

// Append adds a continuation line to an existing tag.
func (r *RawRecord) Append(tag string, line string) {
	if _, exists := r.lines[tag]; !exists {
		r.tags = append(r.tags, tag)
	}
	r.lines[tag] = append(r.lines[tag], line)
}

// Tags returns the tags in first-seen order.
func (r *RawRecord) Tags() []string {
	return r.tags
}

// Lines returns the raw value lines stored under tag.
func (r *RawRecord) Lines(tag string) ([]string, bool) {
	lines, ok := r.lines[tag]
	return lines, ok
}

// Len returns the number of distinct tags in the record.
func (r *RawRecord) Len() int {
	return len(r.tags)
}
