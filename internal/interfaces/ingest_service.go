package interfaces

import (
	"io"
)

// IngestService coordinates the load -> chunk -> embed -> index pipeline.
type IngestService interface {
	// Trigger starts an asynchronous ingestion for one domain, or for all
	// four when domain is "all". Returns ErrIngestRunning if a build for
	// the domain is already in flight; completion is observed by polling
	// bot availability.
	Trigger(domain string) error

	// Running reports whether an ingestion is currently in flight for the
	// domain.
	Running(domain string) bool

	// Upload stores a source file under the domain's documents directory
	// for later ingestion. Only .pdf and .txt files are accepted.
	Upload(domain, filename string, content io.Reader) error
}
