// Package data provides thread-safe storage for the organism dataset. The
// Container holds the pathway listing, gene links and gene annotations
// behind atomic values so a refresh swaps the whole dataset with zero
// downtime for readers.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/kegg-api/interfaces"
	"github.com/giygas/kegg-api/keggparser/entities"
	"github.com/giygas/kegg-api/logging"
)

// Compile-time check to ensure Container implements DataStore
var _ interfaces.DataStore = (*Container)(nil)

// Container holds the parsed organism dataset with atomic pointers for
// zero-downtime updates.
type Container struct {
	pathways     atomic.Value // []entities.PathwayRef
	pathwayIndex atomic.Value // map[string]string
	geneLinks    atomic.Value // []entities.GeneLink
	annotations  atomic.Value // []entities.GeneAnnotation
	lastUpdated  atomic.Value // time.Time
	updating     atomic.Bool
	startTime    atomic.Value // time.Time
}

// NewContainer creates a Container with empty data
func NewContainer() *Container {
	c := &Container{}
	c.pathways.Store(make([]entities.PathwayRef, 0))
	c.pathwayIndex.Store(make(map[string]string))
	c.geneLinks.Store(make([]entities.GeneLink, 0))
	c.annotations.Store(make([]entities.GeneAnnotation, 0))
	c.lastUpdated.Store(time.Time{})
	c.startTime.Store(time.Time{})
	return c
}

// Thread-safe getters with type check

// GetPathways returns the organism's pathway listing
func (c *Container) GetPathways() []entities.PathwayRef {
	if v := c.pathways.Load(); v != nil {
		if pathways, ok := v.([]entities.PathwayRef); ok {
			return pathways
		}
	}

	logging.Warn("Pathway list is empty or invalid")
	return []entities.PathwayRef{}
}

// GetPathwayIndex returns the pathway id to description index for O(1) lookups
func (c *Container) GetPathwayIndex() map[string]string {
	if v := c.pathwayIndex.Load(); v != nil {
		if index, ok := v.(map[string]string); ok {
			return index
		}
	}

	logging.Warn("Pathway index is empty or invalid")
	return make(map[string]string)
}

// GetGeneLinks returns the gene to pathway links
func (c *Container) GetGeneLinks() []entities.GeneLink {
	if v := c.geneLinks.Load(); v != nil {
		if links, ok := v.([]entities.GeneLink); ok {
			return links
		}
	}

	logging.Warn("Gene link list is empty or invalid")
	return []entities.GeneLink{}
}

// GetAnnotations returns the organism's gene annotations
func (c *Container) GetAnnotations() []entities.GeneAnnotation {
	if v := c.annotations.Load(); v != nil {
		if annotations, ok := v.([]entities.GeneAnnotation); ok {
			return annotations
		}
	}

	logging.Warn("Annotation list is empty or invalid")
	return []entities.GeneAnnotation{}
}

// GetLastUpdated returns the timestamp of the last dataset refresh
func (c *Container) GetLastUpdated() time.Time {
	if v := c.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a dataset refresh is currently in progress
func (c *Container) IsUpdating() bool {
	return c.updating.Load()
}

// SetServerStartTime sets the server start time
func (c *Container) SetServerStartTime(startTime time.Time) {
	c.startTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (c *Container) GetServerStartTime() time.Time {
	if v := c.startTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically swaps in a freshly parsed dataset
func (c *Container) UpdateData(pathways []entities.PathwayRef, index map[string]string,
	links []entities.GeneLink, annotations []entities.GeneAnnotation) {

	// Atomic swap (zero downtime replacement)
	c.pathways.Store(pathways)
	c.pathwayIndex.Store(index)
	c.geneLinks.Store(links)
	c.annotations.Store(annotations)
	c.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a dataset refresh.
// Returns true if the refresh can proceed, false if another is in progress.
func (c *Container) BeginUpdate() bool {
	return c.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a dataset refresh
func (c *Container) EndUpdate() {
	c.updating.Store(false)
}
