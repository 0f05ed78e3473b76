package data

import (
	"testing"
	"time"

	"github.com/giygas/kegg-api/keggparser/entities"
)

func TestNewContainerStartsEmpty(t *testing.T) {
	c := NewContainer()

	if got := c.GetPathways(); len(got) != 0 {
		t.Errorf("Expected no pathways, got %d", len(got))
	}
	if got := c.GetGeneLinks(); len(got) != 0 {
		t.Errorf("Expected no gene links, got %d", len(got))
	}
	if got := c.GetAnnotations(); len(got) != 0 {
		t.Errorf("Expected no annotations, got %d", len(got))
	}
	if got := c.GetPathwayIndex(); len(got) != 0 {
		t.Errorf("Expected empty pathway index, got %d entries", len(got))
	}
	if !c.GetLastUpdated().IsZero() {
		t.Error("Expected zero last updated time")
	}
	if c.IsUpdating() {
		t.Error("Expected container to not be updating")
	}
}

func TestUpdateDataSwapsEverything(t *testing.T) {
	c := NewContainer()

	pathways := []entities.PathwayRef{{ID: "eco00010", Description: "Glycolysis"}}
	index := map[string]string{"eco00010": "Glycolysis"}
	links := []entities.GeneLink{{PathwayID: "eco00010", Gene: "eco:b0002"}}
	annotations := []entities.GeneAnnotation{{Gene: "eco:b0002", Feature: "CDS"}}

	before := time.Now()
	c.UpdateData(pathways, index, links, annotations)

	if got := c.GetPathways(); len(got) != 1 || got[0].ID != "eco00010" {
		t.Errorf("Unexpected pathways: %v", got)
	}
	if got := c.GetPathwayIndex(); got["eco00010"] != "Glycolysis" {
		t.Errorf("Unexpected index: %v", got)
	}
	if got := c.GetGeneLinks(); len(got) != 1 || got[0].Gene != "eco:b0002" {
		t.Errorf("Unexpected links: %v", got)
	}
	if got := c.GetAnnotations(); len(got) != 1 {
		t.Errorf("Unexpected annotations: %v", got)
	}
	if c.GetLastUpdated().Before(before) {
		t.Error("Expected last updated to advance")
	}
}

func TestBeginUpdateIsExclusive(t *testing.T) {
	c := NewContainer()

	if !c.BeginUpdate() {
		t.Fatal("Expected first BeginUpdate to succeed")
	}
	if c.BeginUpdate() {
		t.Error("Expected second BeginUpdate to fail while updating")
	}
	if !c.IsUpdating() {
		t.Error("Expected IsUpdating to report true")
	}

	c.EndUpdate()

	if c.IsUpdating() {
		t.Error("Expected IsUpdating to report false after EndUpdate")
	}
	if !c.BeginUpdate() {
		t.Error("Expected BeginUpdate to succeed after EndUpdate")
	}
	c.EndUpdate()
}

func TestServerStartTime(t *testing.T) {
	c := NewContainer()
	start := time.Now().Add(-time.Hour)

	c.SetServerStartTime(start)

	if !c.GetServerStartTime().Equal(start) {
		t.Errorf("Expected start time %v, got %v", start, c.GetServerStartTime())
	}
}
