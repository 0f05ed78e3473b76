package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/giygas/kegg-api/data"
)

// fakeFetcher serves canned listing responses and counts calls.
type fakeFetcher struct {
	pathwayText  string
	linkText     string
	organismText string
	err          error
	calls        atomic.Int32
}

func (f *fakeFetcher) GetEntry(ctx context.Context, entryID string) (string, error) {
	return "", nil
}

func (f *fakeFetcher) GetPathway(ctx context.Context, pathid string) (string, error) {
	return "", nil
}

func (f *fakeFetcher) GetModule(ctx context.Context, mdid string) (string, error) {
	return "", nil
}

func (f *fakeFetcher) ListPathways(ctx context.Context, org string) (string, error) {
	f.calls.Add(1)
	return f.pathwayText, f.err
}

func (f *fakeFetcher) LinkPathways(ctx context.Context, org string) (string, error) {
	f.calls.Add(1)
	return f.linkText, f.err
}

func (f *fakeFetcher) ListOrganism(ctx context.Context, org string) (string, error) {
	f.calls.Add(1)
	return f.organismText, f.err
}

func TestRefreshPopulatesDataStore(t *testing.T) {
	fetcher := &fakeFetcher{
		pathwayText: "eco00010\tGlycolysis / Gluconeogenesis\n" +
			"eco00020\tCitrate cycle (TCA cycle)\n",
		linkText:     "path:eco00010\teco:b0002\n",
		organismText: "eco:b0002\tCDS\t337..2799\tthrA; aspartate kinase\n",
	}
	container := data.NewContainer()
	s := NewScheduler(container, fetcher, "eco")

	if err := s.Refresh(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pathways := container.GetPathways()
	if len(pathways) != 2 {
		t.Fatalf("Expected 2 pathways, got %d", len(pathways))
	}

	links := container.GetGeneLinks()
	if len(links) != 1 {
		t.Fatalf("Expected 1 gene link, got %d", len(links))
	}
	if links[0].PathwayID != "eco00010" {
		t.Errorf("Expected namespace prefix stripped, got %q", links[0].PathwayID)
	}
	if links[0].Description != "Glycolysis / Gluconeogenesis" {
		t.Errorf("Expected link annotated with pathway description, got %q", links[0].Description)
	}

	index := container.GetPathwayIndex()
	if index["eco00020"] != "Citrate cycle (TCA cycle)" {
		t.Errorf("Unexpected pathway index: %v", index)
	}

	annotations := container.GetAnnotations()
	if len(annotations) != 1 || annotations[0].Gene != "eco:b0002" {
		t.Errorf("Unexpected annotations: %v", annotations)
	}

	if container.GetLastUpdated().IsZero() {
		t.Error("Expected last updated to be set")
	}
	if container.IsUpdating() {
		t.Error("Expected update flag cleared after refresh")
	}
}

func TestRefreshPropagatesFetchErrors(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	container := data.NewContainer()
	s := NewScheduler(container, fetcher, "eco")

	if err := s.Refresh(); err == nil {
		t.Fatal("Expected an error when fetching fails")
	}

	if len(container.GetPathways()) != 0 {
		t.Error("Expected data store untouched after a failed refresh")
	}
	if container.IsUpdating() {
		t.Error("Expected update flag cleared after a failed refresh")
	}
}

func TestRefreshSkipsWhenUpdateInProgress(t *testing.T) {
	fetcher := &fakeFetcher{}
	container := data.NewContainer()
	s := NewScheduler(container, fetcher, "eco")

	if !container.BeginUpdate() {
		t.Fatal("Expected BeginUpdate to succeed")
	}
	defer container.EndUpdate()

	if err := s.Refresh(); err != nil {
		t.Fatalf("Expected concurrent refresh to be a no-op, got %v", err)
	}
	if fetcher.calls.Load() != 0 {
		t.Errorf("Expected no fetches while an update is in progress, got %d", fetcher.calls.Load())
	}
}
