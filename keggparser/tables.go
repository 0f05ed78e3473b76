package keggparser

import (
	"bufio"
	"strings"

	"github.com/giygas/kegg-api/keggparser/entities"
	"github.com/giygas/kegg-api/logging"
)

// pathwayPrefix is the namespace KEGG puts on pathway ids in link
// responses; list responses carry the bare id.
const pathwayPrefix = "path:"

// ReadPathwayList converts a list/pathway/{org} response into pathway
// references. Blank and short lines are skipped and counted.
func ReadPathwayList(text string) []entities.PathwayRef {
	var pathways []entities.PathwayRef
	skipped := scanTSV(text, 2, func(fields []string) {
		pathways = append(pathways, entities.PathwayRef{
			ID:          fields[0],
			Description: fields[1],
		})
	})
	skipped.log("pathway list", len(pathways))
	return pathways
}

// ReadGeneLinks converts a link/{org}/pathway response into gene links.
// The "path:" namespace prefix is stripped from pathway ids so they match
// the ids used by the pathway listing.
func ReadGeneLinks(text string) []entities.GeneLink {
	var links []entities.GeneLink
	skipped := scanTSV(text, 2, func(fields []string) {
		links = append(links, entities.GeneLink{
			PathwayID: strings.TrimPrefix(fields[0], pathwayPrefix),
			Gene:      fields[1],
		})
	})
	skipped.log("gene links", len(links))
	return links
}

// ReadOrganismGenes converts a list/{org} response into gene annotations.
func ReadOrganismGenes(text string) []entities.GeneAnnotation {
	var annotations []entities.GeneAnnotation
	skipped := scanTSV(text, 4, func(fields []string) {
		annotations = append(annotations, entities.GeneAnnotation{
			Gene:       fields[0],
			Feature:    fields[1],
			Position:   fields[2],
			Annotation: fields[3],
		})
	})
	skipped.log("organism genes", len(annotations))
	return annotations
}

// AnnotateGeneLinks fills in each link's pathway description from the
// pathway listing. Links whose pathway id has no listing entry keep an
// empty description.
func AnnotateGeneLinks(links []entities.GeneLink, pathways []entities.PathwayRef) []entities.GeneLink {
	index := make(map[string]string, len(pathways))
	for _, p := range pathways {
		index[p.ID] = p.Description
	}

	annotated := make([]entities.GeneLink, len(links))
	for i, link := range links {
		link.Description = index[link.PathwayID]
		annotated[i] = link
	}
	return annotated
}

// PathwayTable renders pathway references as a two-column table.
func PathwayTable(pathways []entities.PathwayRef) *entities.Table {
	table := entities.NewTable("pathid", "description")
	for _, p := range pathways {
		table.Append([]string{p.ID, p.Description})
	}
	return table
}

// GeneLinkTable renders gene links as a three-column table.
func GeneLinkTable(links []entities.GeneLink) *entities.Table {
	table := entities.NewTable("pathid", "gene", "description")
	for _, l := range links {
		table.Append([]string{l.PathwayID, l.Gene, l.Description})
	}
	return table
}

// AnnotationTable renders gene annotations as a four-column table.
func AnnotationTable(annotations []entities.GeneAnnotation) *entities.Table {
	table := entities.NewTable("gene", "feature", "position", "annotation")
	for _, a := range annotations {
		table.Append([]string{a.Gene, a.Feature, a.Position, a.Annotation})
	}
	return table
}

// skipStats counts lines that could not become rows.
type skipStats struct {
	emptyLines     int
	missingColumns int
	totalLines     int
}

func (s skipStats) log(source string, parsed int) {
	if s.missingColumns == 0 {
		return
	}
	logging.Info("TSV skip statistics",
		"source", source,
		"empty_lines", s.emptyLines,
		"missing_columns", s.missingColumns,
		"total_lines", s.totalLines,
		"records_parsed", parsed)
}

// scanTSV walks tab-delimited text line by line and hands each row with at
// least minColumns fields to emit. Empty lines are expected in KEGG
// responses and skipped silently.
func scanTSV(text string, minColumns int, emit func(fields []string)) skipStats {
	var stats skipStats

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	for scanner.Scan() {
		stats.totalLines++
		line := scanner.Text()

		if len(line) == 0 {
			stats.emptyLines++
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			stats.missingColumns++
			continue
		}

		emit(fields)
	}

	return stats
}
