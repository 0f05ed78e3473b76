// Package scheduler drives the periodic organism dataset refresh. It pulls
// the pathway listing, gene links and gene annotations through the injected
// fetcher, parses them, runs a quality report and swaps the result into the
// data store atomically.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/giygas/kegg-api/interfaces"
	"github.com/giygas/kegg-api/keggparser"
	"github.com/giygas/kegg-api/logging"
	"github.com/giygas/kegg-api/validation"
	"github.com/go-co-op/gocron"
)

// refreshTimeout bounds one full dataset refresh, three fetches included.
const refreshTimeout = 5 * time.Minute

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles dataset refreshes and staleness monitoring using
// dependency injection.
type Scheduler struct {
	dataStore interfaces.DataStore
	fetcher   interfaces.Fetcher
	organism  string
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, fetcher interfaces.Fetcher, organism string) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		fetcher:   fetcher,
		organism:  organism,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial dataset load and schedules the daily refresh.
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.Refresh(); err != nil {
		logging.Error("Failed to perform initial dataset load", "error", err)
		return fmt.Errorf("initial dataset load failed: %w", err)
	}

	// Refresh daily at 06:00; KEGG data changes slowly
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.Refresh(); err != nil {
			logging.Error("Failed to refresh dataset", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule refresh", "error", err)
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	s.scheduler.StartAsync()

	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Refresh performs a complete dataset refresh using the injected
// dependencies.
func (s *Scheduler) Refresh() error {
	// Prevent concurrent refreshes
	if !s.dataStore.BeginUpdate() {
		logging.Info("Refresh already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting dataset refresh", "organism", s.organism)
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	pathwayText, err := s.fetcher.ListPathways(ctx, s.organism)
	if err != nil {
		return fmt.Errorf("failed to fetch pathway listing: %w", err)
	}

	linkText, err := s.fetcher.LinkPathways(ctx, s.organism)
	if err != nil {
		return fmt.Errorf("failed to fetch gene links: %w", err)
	}

	organismText, err := s.fetcher.ListOrganism(ctx, s.organism)
	if err != nil {
		return fmt.Errorf("failed to fetch gene annotations: %w", err)
	}

	newPathways := keggparser.ReadPathwayList(pathwayText)
	newLinks := keggparser.AnnotateGeneLinks(keggparser.ReadGeneLinks(linkText), newPathways)
	newAnnotations := keggparser.ReadOrganismGenes(organismText)

	newIndex := make(map[string]string, len(newPathways))
	for _, p := range newPathways {
		newIndex[p.ID] = p.Description
	}

	validator := validation.NewDataValidator()
	report := validator.ReportDataQuality(newPathways, newLinks, newAnnotations)

	if len(report.DuplicatePathwayIDs) > 0 {
		logging.Warn("Duplicate pathway ids detected",
			"total", len(report.DuplicatePathwayIDs),
			"pathid_list", report.DuplicatePathwayIDs,
		)
	}

	if report.LinksWithUnknownPathway > 0 {
		logging.Warn("Gene links referencing unknown pathways",
			"count", report.LinksWithUnknownPathway,
		)
	}

	if report.PathwaysWithoutDescription > 0 {
		logging.Warn("Pathways without description",
			"count", report.PathwaysWithoutDescription,
		)
	}

	// Atomic swap using the injected data store
	s.dataStore.UpdateData(newPathways, newIndex, newLinks, newAnnotations)

	elapsed := time.Since(start)
	logging.Info("Dataset refresh completed",
		"duration", elapsed.String(),
		"pathways", len(newPathways),
		"gene_links", len(newLinks),
		"annotations", len(newAnnotations))

	return nil
}

// startStalenessMonitoring warns when the dataset has not been refreshed
// for longer than the daily schedule should allow.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 30*time.Hour {
				logging.Warn("Dataset hasn't been refreshed in over 30 hours")
			}
		}
	}()
}
