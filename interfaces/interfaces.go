// Package interfaces defines the core abstractions of the KEGG API so the
// fetching, parsing, storage and scheduling concerns stay independently
// testable.
package interfaces

import (
	"context"
	"time"

	"github.com/giygas/kegg-api/keggparser/entities"
)

// DataStore is the contract for the in-memory organism dataset. All reads
// are safe for concurrent use and updates swap the whole dataset atomically.
type DataStore interface {
	GetPathways() []entities.PathwayRef
	GetPathwayIndex() map[string]string
	GetGeneLinks() []entities.GeneLink
	GetAnnotations() []entities.GeneAnnotation
	GetLastUpdated() time.Time
	IsUpdating() bool

	UpdateData(pathways []entities.PathwayRef, index map[string]string,
		links []entities.GeneLink, annotations []entities.GeneAnnotation)
	BeginUpdate() bool
	EndUpdate()
}

// Fetcher supplies raw text responses from the KEGG REST service. The
// returned text uses the fixed-width tag convention for entry records and
// tab-delimited rows for listings; transport failures surface as
// *keggclient.FetchError.
type Fetcher interface {
	GetEntry(ctx context.Context, entryID string) (string, error)
	GetPathway(ctx context.Context, pathid string) (string, error)
	GetModule(ctx context.Context, mdid string) (string, error)
	ListPathways(ctx context.Context, org string) (string, error)
	LinkPathways(ctx context.Context, org string) (string, error)
	ListOrganism(ctx context.Context, org string) (string, error)
}

// Scheduler manages the periodic dataset refresh.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports system health derived from the data container.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
	CalculateNextUpdate() time.Time
}
