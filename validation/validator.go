// Package validation provides input validation for user-supplied
// identifiers and quality reporting over a freshly parsed dataset.
package validation

import (
	"fmt"
	"regexp"

	"github.com/giygas/kegg-api/keggparser/entities"
)

var (
	organismRe = regexp.MustCompile(`^[a-z]{2,5}$`)
	entryIDRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]{0,63}$`)
)

// DataQualityReport summarizes issues found in a parsed dataset.
type DataQualityReport struct {
	DuplicatePathwayIDs        []string
	PathwaysWithoutDescription int
	LinksWithUnknownPathway    int
	AnnotationsWithoutGene     int
}

// DataValidator validates user input and dataset integrity.
type DataValidator struct{}

// NewDataValidator creates a new DataValidator instance
func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// ValidateOrganism checks that input looks like a KEGG organism code.
func (v *DataValidator) ValidateOrganism(input string) error {
	if input == "" {
		return fmt.Errorf("organism code cannot be empty")
	}
	if !organismRe.MatchString(input) {
		return fmt.Errorf("organism code must be 2-5 lowercase letters, got: %s", input)
	}
	return nil
}

// ValidateEntryID checks that input is safe to interpolate into a request
// path. KEGG identifiers are short alphanumeric strings with an optional
// namespace prefix (e.g. "eco00190", "md:M00001", "hsa:3043").
func (v *DataValidator) ValidateEntryID(input string) error {
	if input == "" {
		return fmt.Errorf("entry id cannot be empty")
	}
	if !entryIDRe.MatchString(input) {
		return fmt.Errorf("entry id contains invalid characters: %s", input)
	}
	return nil
}

// ReportDataQuality inspects a parsed dataset and returns a summary of the
// issues found. The report never blocks an update, it only feeds logging.
func (v *DataValidator) ReportDataQuality(pathways []entities.PathwayRef,
	links []entities.GeneLink, annotations []entities.GeneAnnotation) *DataQualityReport {

	report := &DataQualityReport{}

	seen := make(map[string]bool, len(pathways))
	for _, p := range pathways {
		if seen[p.ID] {
			report.DuplicatePathwayIDs = append(report.DuplicatePathwayIDs, p.ID)
		}
		seen[p.ID] = true

		if p.Description == "" {
			report.PathwaysWithoutDescription++
		}
	}

	for _, link := range links {
		if !seen[link.PathwayID] {
			report.LinksWithUnknownPathway++
		}
	}

	for _, a := range annotations {
		if a.Gene == "" {
			report.AnnotationsWithoutGene++
		}
	}

	return report
}
