package keggparser

import (
	"fmt"
	"strings"

	"github.com/giygas/kegg-api/keggparser/entities"
)

// OrthologTag is the synthesized key holding the ortholog descriptions
// paired with the GENE ids. It is only present when GENE is present.
const OrthologTag = "ORTHOLOG"

// normalizedField is one output field produced by a rule. A single tag can
// produce more than one (GENE also emits ORTHOLOG).
type normalizedField struct {
	tag   string
	field entities.Field
}

// normalizeRule interprets the raw lines of one tag.
type normalizeRule func(tag string, lines []string) ([]normalizedField, error)

// normalizeRules dispatches each tag to its interpretation. Tags not listed
// here fall back to scalarRule. Matching is by exact tag string.
var normalizeRules = map[string]normalizeRule{
	"ENTRY":       entryRule,
	"NAME":        scalarRule,
	"ORGANISM":    scalarRule,
	"GENE":        geneRule,
	"REL_PATHWAY": compactListRule,
	"PATHWAY_MAP": mapSplitRule,
	"PATHWAY":     listRule,
	"GENES":       listRule,
	"REACTION":    listRule,
	"MODULE":      listRule,
}

// Normalize applies the per-tag rules to a tokenized record and returns the
// normalized entry. It is a pure function of its input: no state is carried
// between tags or between calls. Any rule failure aborts the whole parse.
func Normalize(raw *entities.RawRecord) (*entities.Entry, error) {
	entry := entities.NewEntry()

	for _, tag := range raw.Tags() {
		lines, _ := raw.Lines(tag)

		rule, ok := normalizeRules[tag]
		if !ok {
			rule = scalarRule
		}

		fields, err := rule(tag, lines)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			entry.Set(f.tag, f.field)
		}
	}

	return entry, nil
}

// ParseEntry tokenizes and normalizes a raw flat-file record in one call.
func ParseEntry(text string) (*entities.Entry, error) {
	raw, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// entryRule splits the first line on whitespace. Continuation lines under
// ENTRY are discarded; upstream records are not known to use them, but this
// keeps compatibility with the historical behavior.
func entryRule(tag string, lines []string) ([]normalizedField, error) {
	return []normalizedField{
		{tag: tag, field: entities.List(strings.Fields(lines[0]))},
	}, nil
}

// scalarRule keeps the first line, trimmed. Also the default for unlisted
// tags.
func scalarRule(tag string, lines []string) ([]normalizedField, error) {
	return []normalizedField{
		{tag: tag, field: entities.Scalar(strings.TrimSpace(lines[0]))},
	}, nil
}

// geneRule splits each line into a gene id and an ortholog description on
// the first whitespace run and collects them into two index-aligned lists.
func geneRule(tag string, lines []string) ([]normalizedField, error) {
	genes := make([]string, 0, len(lines))
	orthologs := make([]string, 0, len(lines))

	for _, line := range lines {
		id, desc, ok := splitGeneLine(line)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedGene, line)
		}
		genes = append(genes, id)
		orthologs = append(orthologs, desc)
	}

	return []normalizedField{
		{tag: tag, field: entities.List(genes)},
		{tag: OrthologTag, field: entities.List(orthologs)},
	}, nil
}

// splitGeneLine splits on the first whitespace run, skipping leading
// whitespace. Both halves must be non-empty for the split to succeed.
func splitGeneLine(line string) (string, string, bool) {
	s := strings.TrimLeft(line, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return "", "", false
	}
	id := s[:i]
	desc := strings.TrimLeft(s[i:], " \t")
	if desc == "" {
		return "", "", false
	}
	return id, desc, true
}

// compactListRule trims each line and drops the ones that become empty.
func compactListRule(tag string, lines []string) ([]normalizedField, error) {
	values := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return []normalizedField{
		{tag: tag, field: entities.List(values)},
	}, nil
}

// mapSplitRule splits the first line on the two-space separator KEGG uses
// between a map id and its title.
func mapSplitRule(tag string, lines []string) ([]normalizedField, error) {
	return []normalizedField{
		{tag: tag, field: entities.List(strings.Split(lines[0], "  "))},
	}, nil
}

// listRule trims every line and keeps all of them, empties included.
func listRule(tag string, lines []string) ([]normalizedField, error) {
	values := make([]string, 0, len(lines))
	for _, line := range lines {
		values = append(values, strings.TrimSpace(line))
	}
	return []normalizedField{
		{tag: tag, field: entities.List(values)},
	}, nil
}
