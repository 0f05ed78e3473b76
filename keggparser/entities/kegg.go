package entities

// PathwayRef is one row of a KEGG pathway listing (list/pathway/{org}).
type PathwayRef struct {
	ID          string `json:"pathid"`
	Description string `json:"description"`
}

// GeneLink is one row of a gene to pathway mapping (link/{org}/pathway).
// Description is filled in when the link has been annotated against a
// pathway listing.
type GeneLink struct {
	PathwayID   string `json:"pathid"`
	Gene        string `json:"gene"`
	Description string `json:"description,omitempty"`
}

// GeneAnnotation is one row of an organism gene listing (list/{org}).
type GeneAnnotation struct {
	Gene       string `json:"gene"`
	Feature    string `json:"feature"`
	Position   string `json:"position"`
	Annotation string `json:"annotation"`
}
