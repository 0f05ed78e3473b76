// Package handlers provides the HTTP request handlers for the KEGG API
// endpoints: dataset listings from the in-memory container, on-demand
// record fetching and parsing, TSV export and health checks.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/giygas/kegg-api/data"
	"github.com/giygas/kegg-api/interfaces"
	"github.com/giygas/kegg-api/keggclient"
	"github.com/giygas/kegg-api/keggparser"
	"github.com/giygas/kegg-api/logging"
	"github.com/giygas/kegg-api/validation"
	"github.com/go-chi/chi/v5"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(body)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	RespondWithJSON(w, code, errorResponse)
}

// respondWithTSV writes tab-delimited text
func respondWithTSV(w http.ResponseWriter, tsv string) {
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(tsv))
}

// ServePathways returns the organism's pathway listing
func ServePathways(dc *data.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathways := dc.GetPathways()
		RespondWithJSON(w, http.StatusOK, pathways)
	}
}

// ServeGeneLinks returns the annotated gene to pathway links
func ServeGeneLinks(dc *data.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := dc.GetGeneLinks()
		RespondWithJSON(w, http.StatusOK, links)
	}
}

// ServeAnnotations returns the organism's gene annotations
func ServeAnnotations(dc *data.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		annotations := dc.GetAnnotations()
		RespondWithJSON(w, http.StatusOK, annotations)
	}
}

// serveParsedRecord fetches one flat-file record and returns it parsed.
func serveParsedRecord(w http.ResponseWriter, r *http.Request, fetch func() (string, error), id string) {
	text, err := fetch()
	if err != nil {
		var fetchErr *keggclient.FetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
			RespondWithError(w, http.StatusNotFound, "Entry not found: "+id)
			return
		}
		logging.Error("Failed to fetch entry", "id", id, "error", err)
		RespondWithError(w, http.StatusBadGateway, "Upstream fetch failed")
		return
	}

	entry, err := keggparser.ParseEntry(text)
	if err != nil {
		logging.Error("Failed to parse entry", "id", id, "error", err)
		RespondWithError(w, http.StatusBadGateway, "Entry text is not usable")
		return
	}

	if entry.Len() == 0 {
		RespondWithError(w, http.StatusNotFound, "Entry not found: "+id)
		return
	}

	RespondWithJSON(w, http.StatusOK, entry)
}

// ServePathwayEntry fetches and parses one pathway record
func ServePathwayEntry(fetcher interfaces.Fetcher, validator *validation.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathid := chi.URLParam(r, "pathid")
		if err := validator.ValidateEntryID(pathid); err != nil {
			logging.Warn("Unusual user input", "pathid", pathid)
			RespondWithError(w, http.StatusBadRequest, "Invalid pathway id")
			return
		}

		serveParsedRecord(w, r, func() (string, error) {
			return fetcher.GetPathway(r.Context(), pathid)
		}, pathid)
	}
}

// ServeModuleEntry fetches and parses one module record
func ServeModuleEntry(fetcher interfaces.Fetcher, validator *validation.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mdid := chi.URLParam(r, "mdid")
		if err := validator.ValidateEntryID(mdid); err != nil {
			logging.Warn("Unusual user input", "mdid", mdid)
			RespondWithError(w, http.StatusBadRequest, "Invalid module id")
			return
		}

		serveParsedRecord(w, r, func() (string, error) {
			return fetcher.GetModule(r.Context(), mdid)
		}, mdid)
	}
}

// ServeEntry fetches and parses an arbitrary entry record
func ServeEntry(fetcher interfaces.Fetcher, validator *validation.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID := chi.URLParam(r, "entryID")
		if err := validator.ValidateEntryID(entryID); err != nil {
			logging.Warn("Unusual user input", "entry_id", entryID)
			RespondWithError(w, http.StatusBadRequest, "Invalid entry id")
			return
		}

		serveParsedRecord(w, r, func() (string, error) {
			return fetcher.GetEntry(r.Context(), entryID)
		}, entryID)
	}
}

// ExportPathways renders the pathway listing as TSV
func ExportPathways(dc *data.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := keggparser.PathwayTable(dc.GetPathways())
		respondWithTSV(w, table.TSV())
	}
}

// ExportGeneLinks renders the gene to pathway links as TSV
func ExportGeneLinks(dc *data.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := keggparser.GeneLinkTable(dc.GetGeneLinks())
		respondWithTSV(w, table.TSV())
	}
}

// ExportAnnotations renders the gene annotations as TSV
func ExportAnnotations(dc *data.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := keggparser.AnnotationTable(dc.GetAnnotations())
		respondWithTSV(w, table.TSV())
	}
}

// HealthCheck returns server health information
func HealthCheck(checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, healthData, httpStatus := checker.HealthCheck()

		response := map[string]interface{}{
			"status": status,
			"data":   healthData,
		}

		RespondWithJSON(w, httpStatus, response)
	}
}
