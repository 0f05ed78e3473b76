// Package keggparser converts KEGG flat-file records and tab-delimited
// listings into structured in-memory records and tables. The flat-file
// format uses a fixed-width tag column: the first 12 characters of a line
// name the field, the remainder is the value, and lines with a blank tag
// column continue the previous field. A line starting with "///" terminates
// the record.
package keggparser

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/giygas/kegg-api/keggparser/entities"
)

const (
	// tagWidth is the fixed width of the tag column.
	tagWidth = 12

	// recordTerminator marks the end of a single entry's text block.
	recordTerminator = "///"
)

// Tokenize scans a raw flat-file record line by line and groups value lines
// under their tags, preserving first-seen tag order. Scanning stops at the
// record terminator; everything after it is discarded. A repeated top-level
// tag resets its entry rather than accumulating, matching the source
// format's one-contiguous-block-per-tag convention.
//
// Empty input yields an empty record, not an error. A continuation line
// before any tag fails with ErrMalformedRecord.
func Tokenize(text string) (*entities.RawRecord, error) {
	record := entities.NewRawRecord()
	currentTag := ""

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, recordTerminator) {
			break
		}

		tagZone := line
		payload := ""
		if len(line) > tagWidth {
			tagZone = line[:tagWidth]
			payload = strings.TrimSpace(line[tagWidth:])
		}
		tag := strings.TrimSpace(tagZone)

		if tag != "" {
			currentTag = tag
			record.Set(tag, payload)
			continue
		}

		if currentTag == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
		}
		record.Append(currentTag, payload)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan record text: %w", err)
	}

	return record, nil
}
