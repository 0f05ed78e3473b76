package keggparser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// Tag columns are fixed at 12 characters, so fixtures pad every tag with
// spaces up to that width.
const samplePathwayRecord = "ENTRY       eco00190                    Pathway\n" +
	"NAME        Oxidative phosphorylation - Escherichia coli K-12 MG1655\n" +
	"GENE        b0978  appC; cytochrome bd-II oxidase, subunit I\n" +
	"            b0979  appB; cytochrome bd-II oxidase, subunit II\n" +
	"///\n"

func TestTokenizeGroupsContinuationLines(t *testing.T) {
	record, err := Tokenize(samplePathwayRecord)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines, ok := record.Lines("GENE")
	if !ok {
		t.Fatal("Expected GENE tag to be present")
	}

	expected := []string{
		"b0978  appC; cytochrome bd-II oxidase, subunit I",
		"b0979  appB; cytochrome bd-II oxidase, subunit II",
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("Expected GENE lines %v, got %v", expected, lines)
	}
}

func TestTokenizePreservesTagOrder(t *testing.T) {
	record, err := Tokenize(samplePathwayRecord)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{"ENTRY", "NAME", "GENE"}
	if !reflect.DeepEqual(record.Tags(), expected) {
		t.Errorf("Expected tag order %v, got %v", expected, record.Tags())
	}
}

func TestTokenizeStopsAtTerminator(t *testing.T) {
	text := "NAME        first record\n" +
		"///\n" +
		"NAME        second record\n"

	record, err := Tokenize(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines, _ := record.Lines("NAME")
	if len(lines) != 1 || lines[0] != "first record" {
		t.Errorf("Expected only the first record's NAME, got %v", lines)
	}
}

func TestTokenizeRepeatedTagResets(t *testing.T) {
	text := "NAME        old value\n" +
		"NAME        new value\n"

	record, err := Tokenize(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines, _ := record.Lines("NAME")
	if !reflect.DeepEqual(lines, []string{"new value"}) {
		t.Errorf("Expected repeated tag to reset its lines, got %v", lines)
	}
	if record.Len() != 1 {
		t.Errorf("Expected 1 tag, got %d", record.Len())
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	for _, text := range []string{"", "///\n", "///"} {
		record, err := Tokenize(text)
		if err != nil {
			t.Fatalf("Expected no error for %q, got %v", text, err)
		}
		if record.Len() != 0 {
			t.Errorf("Expected empty record for %q, got %d tags", text, record.Len())
		}
	}
}

func TestTokenizeContinuationBeforeTag(t *testing.T) {
	text := "            orphan continuation line\n" +
		"NAME        too late\n"

	_, err := Tokenize(text)
	if err == nil {
		t.Fatal("Expected an error for continuation before any tag")
	}
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord, got %v", err)
	}
}

func TestTokenizeShortLineIsBareTag(t *testing.T) {
	// A line at or under the tag width carries no value portion
	record, err := Tokenize("COMMENT\n" + strings.Repeat(" ", 12) + "actual text\n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines, ok := record.Lines("COMMENT")
	if !ok {
		t.Fatal("Expected COMMENT tag to be present")
	}
	if !reflect.DeepEqual(lines, []string{"", "actual text"}) {
		t.Errorf("Expected empty opening line then continuation, got %v", lines)
	}
}
