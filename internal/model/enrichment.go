package model

// EnrichmentStatus is the outcome of one external-knowledge lookup.
type EnrichmentStatus string

const (
	// EnrichResolved means a summary and canonical link were found.
	EnrichResolved EnrichmentStatus = "resolved"
	// EnrichNotFound means the lookup succeeded but no entry exists for
	// the concept. Distinct from a transport failure.
	EnrichNotFound EnrichmentStatus = "not_found"
	// EnrichFailed means the lookup could not complete (network error,
	// timeout, non-2xx). Never fatal to the run.
	EnrichFailed EnrichmentStatus = "failed"
)

// EnrichmentRecord augments one distinct concept (entity canonical name or
// phenomenon text) with external knowledge. Keyed by the normalized
// concept string; cached for the duration of a single run only.
type EnrichmentRecord struct {
	Concept string           `json:"concept"`
	Summary string           `json:"summary,omitempty"`
	URL     string           `json:"url,omitempty"`
	Status  EnrichmentStatus `json:"status"`
	Error   string           `json:"error,omitempty"`
}
