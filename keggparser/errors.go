package keggparser

import "errors"

var (
	// ErrMalformedRecord reports a continuation line that appears before
	// any tag has been established.
	ErrMalformedRecord = errors.New("malformed record: continuation line before any tag")

	// ErrMalformedGene reports a GENE line that cannot be split into a
	// gene id and an ortholog description.
	ErrMalformedGene = errors.New("malformed gene line: missing ortholog separator")
)
